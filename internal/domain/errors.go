package domain

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnsupportedFormat     = errors.New("unsupported file format")
	ErrOrderAlreadyConfirmed = errors.New("order already confirmed")
	ErrEmptyOrder            = errors.New("order has no files")
	ErrSessionNotFound       = errors.New("session not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrPrinterNotReady       = errors.New("printer not ready")
	ErrAllMethodsFailed      = errors.New("all print methods failed")
)
