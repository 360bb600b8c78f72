package book

import "errors"

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrInvalidISBN     = errors.New("invalid isbn checksum")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidStatus   = errors.New("invalid book status")
	ErrInvalidInput    = errors.New("invalid book input")
)
