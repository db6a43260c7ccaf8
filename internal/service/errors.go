package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrAlreadyFavorite    = errors.New("item is already in favorites")
	ErrNotFavorite        = errors.New("item is not in favorites")
	ErrEmptyBasket        = errors.New("basket is empty")
	ErrInvalidRate        = errors.New("rate must be between 0 and 100")
	ErrSlugTaken          = errors.New("slug is already in use")
	ErrCategoryCycle      = errors.New("category parent relation would form a cycle")
)

// ValidationError carries per-field messages for a rejected form. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
