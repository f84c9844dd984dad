package domain

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrWalletNotFound         = errors.New("wallet not found")
	ErrTaskNotFound           = errors.New("task not found")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidCurrency        = errors.New("invalid currency")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrAlreadyCheckedIn       = errors.New("already checked in today")
	ErrInvalidExchange        = errors.New("invalid exchange")
	ErrInvalidTransfer        = errors.New("invalid transfer")
	ErrExchangeTooSmall       = errors.New("exchange amount too small")
	ErrCycleDetected          = errors.New("cycle detected in task tree")
	ErrTaskAlreadyDone        = errors.New("task already completed")
	ErrUserDisabled           = errors.New("user is disabled")
)
