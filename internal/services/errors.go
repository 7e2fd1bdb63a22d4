package services

import "errors"

var (
	// Product store errors
	ErrProductNotFound = errors.New("product not found")
	ErrNoProducts      = errors.New("no products available")

	// Request errors
	ErrInvalidRange    = errors.New("invalid range code")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrInvalidInput    = errors.New("invalid input")
)
