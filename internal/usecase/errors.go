package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("resource not found")
	ErrCapExceeded        = errors.New("salary cap exceeded")
	ErrInsufficientPoints = errors.New("insufficient shop points")
	ErrTradeLimit         = errors.New("trade limit reached")
	ErrPhaseOrder         = errors.New("operation not allowed in current phase")
)
