package service

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"vendorhub/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrStatusConflict     = errors.New("order status changed by another request")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError lists the fields of a form that were rejected, keyed by
// the JSON field name.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type validator struct {
	fields map[string]string
}

func (v *validator) fail(field, msg string) {
	if v.fields == nil {
		v.fields = make(map[string]string)
	}
	if _, ok := v.fields[field]; !ok {
		v.fields[field] = msg
	}
}

func (v *validator) minLen(field, value string, n int, msg string) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		v.fail(field, msg)
	}
}

func (v *validator) email(field, value string) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.fail(field, "Please enter a valid email address.")
	}
}

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func (v *validator) clock(field, value string) {
	if !clockRe.MatchString(value) {
		v.fail(field, "Please enter a time as HH:MM.")
	}
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// storeErr maps repository sentinels onto service ones.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrStatusConflict):
		return ErrStatusConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
