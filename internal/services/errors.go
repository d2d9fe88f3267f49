package services

import "errors"

// Conversation errors. They are turned into replies by the router and never reach the transport.
var (
	ErrUnknownProduct     = errors.New("unknown product")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrQuantityTooLarge   = errors.New("quantity too large")
	ErrCartFull           = errors.New("cart is full")
)
