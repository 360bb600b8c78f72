package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidDraft      = errors.New("invalid order draft")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTerminalStatus    = errors.New("terminal status")
)
