package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskforge/bountyboard/internal/config"
	"github.com/taskforge/bountyboard/internal/middleware"
	"github.com/taskforge/bountyboard/internal/service"
)

// Handler holds all dependencies needed by the HTTP routes.
type Handler struct {
	cfg       *config.Config
	users     *service.UserService
	wallets   *service.WalletService
	txs       *service.TransactionService
	checkin   *service.CheckinService
	exchange  *service.ExchangeService
	tasks     *service.TaskService
	taskHours *service.TaskHoursService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg       *config.Config
	Users     *service.UserService
	Wallets   *service.WalletService
	Txs       *service.TransactionService
	Checkin   *service.CheckinService
	Exchange  *service.ExchangeService
	Tasks     *service.TaskService
	TaskHours *service.TaskHoursService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:       deps.Cfg,
		users:     deps.Users,
		wallets:   deps.Wallets,
		txs:       deps.Txs,
		checkin:   deps.Checkin,
		exchange:  deps.Exchange,
		tasks:     deps.Tasks,
		taskHours: deps.TaskHours,
	}
}

// Routes builds the full router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover)
	r.Use(middleware.Logging)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", h.createUser)
		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", h.getUser)
			r.Patch("/status", h.setUserStatus)
			r.Get("/wallet", h.getWallet)
			r.Post("/wallet/freeze", h.freezeBalance)
			r.Get("/transactions", h.listTransactions)
			r.Post("/transactions", h.createTransaction)
			r.Get("/checkin", h.checkinStatus)
			r.Post("/checkin", h.performCheckin)
			r.Post("/exchange", h.performExchange)
			r.Post("/transfers", h.createTransfer)
		})

		r.Post("/tasks", h.createTask)
		r.Route("/tasks/{id}", func(r chi.Router) {
			r.Get("/", h.getTask)
			r.Patch("/hours", h.updateTaskHours)
			r.Get("/hours", h.taskHoursReport)
			r.Post("/complete", h.completeTask)
		})

		r.Get("/reports/leaderboard", h.leaderboard)
		r.Get("/reports/activity", h.recentActivity)
	})

	return r
}
