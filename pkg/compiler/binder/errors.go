// Package binder performs semantic analysis: it checks a parsed script
// against the action registry and applies it to a patch context.
package binder

import (
	"fmt"

	"github.com/zurustar/decopatch/pkg/compiler/lexer"
)

// ErrorKind classifies a semantic error.
type ErrorKind int

const (
	ErrUnknownAction ErrorKind = iota
	ErrApplicabilityMismatch
	ErrTierViolation
	ErrArityMismatch
	ErrTypeMismatch
	ErrDuplicateLabel
	ErrDuplicateAlias
	ErrLabelNotFound
)

var errorKindNames = map[ErrorKind]string{
	ErrUnknownAction:         "UnknownAction",
	ErrApplicabilityMismatch: "ApplicabilityMismatch",
	ErrTierViolation:         "TierViolation",
	ErrArityMismatch:         "ArityMismatch",
	ErrTypeMismatch:          "TypeMismatch",
	ErrDuplicateLabel:        "DuplicateLabel",
	ErrDuplicateAlias:        "DuplicateAlias",
	ErrLabelNotFound:         "LabelNotFound",
}

// String returns the error kind name used in diagnostics.
func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// BindError is one semantic diagnostic with its source position. Binding
// stops at the first error.
type BindError struct {
	Kind    ErrorKind
	Line    int
	Column  int
	Message string
}

func (e *BindError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

func newError(kind ErrorKind, tok lexer.Token, msg string) *BindError {
	return &BindError{Kind: kind, Line: tok.Line, Column: tok.Column, Message: msg}
}
