package service

import "errors"

var (
	ErrValidation = errors.New("validation")
	ErrEmptyCart  = errors.New("cart is empty")
)
