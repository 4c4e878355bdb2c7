// Package compiler provides the compilation pipeline for patch scripts.
// This file defines the CompileError type for structured error reporting.
package compiler

import (
	"fmt"
	"strings"
)

// CompileError represents a structured compilation error with location
// information. It implements the error interface and carries the source
// context around the failure.
type CompileError struct {
	// Phase indicates which compilation phase generated the error.
	// Valid values: "preprocessor", "parser", "binder"
	Phase string

	// Message is the human-readable error description.
	Message string

	// Line is the 1-indexed line number where the error occurred.
	Line int

	// Column is the 1-indexed column number where the error occurred.
	Column int

	// Context contains the source code around the error location, with a
	// pointer (^) indicating the error column.
	Context string

	// Err is the underlying phase error, if any.
	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s error at line %d, column %d: %s\n%s",
			e.Phase, e.Line, e.Column, e.Message, e.Context)
	}
	return fmt.Sprintf("%s error at line %d, column %d: %s",
		e.Phase, e.Line, e.Column, e.Message)
}

// Unwrap returns the underlying phase error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// NewParserErrorWithContext creates a CompileError for parser phase errors
// with source context.
func NewParserErrorWithContext(message string, line, column int, source string, err error) *CompileError {
	return &CompileError{
		Phase:   "parser",
		Message: message,
		Line:    line,
		Column:  column,
		Context: GenerateErrorContext(source, line, column),
		Err:     err,
	}
}

// NewBinderErrorWithContext creates a CompileError for binder phase errors
// with source context.
func NewBinderErrorWithContext(message string, line, column int, source string, err error) *CompileError {
	return &CompileError{
		Phase:   "binder",
		Message: message,
		Line:    line,
		Column:  column,
		Context: GenerateErrorContext(source, line, column),
		Err:     err,
	}
}

// GenerateErrorContext generates source code context around an error
// location. It includes 2 lines before and 2 lines after the error line,
// with line numbers and a pointer (^) indicating the error column.
//
// Example output:
//
//	  2 | thing 3 {
//	  3 |   health = 60
//	> 4 |   speed = fast
//	    |           ^
//	  5 | }
func GenerateErrorContext(source string, line, column int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	// Show 2 lines of context on each side
	start := line - 3
	if start < 0 {
		start = 0
	}
	end := line + 2
	if end > len(lines) {
		end = len(lines)
	}

	var buf strings.Builder

	lineNumWidth := len(fmt.Sprintf("%d", end))

	for i := start; i < end; i++ {
		lineNum := i + 1
		lineContent := lines[i]

		if lineNum == line {
			// Error line - mark with >
			buf.WriteString(fmt.Sprintf("> %*d | %s\n", lineNumWidth, lineNum, lineContent))
			// Pointer line: "> " + lineNumWidth + " | " then the column
			pointerIndent := 2 + lineNumWidth + 3
			if column > 0 {
				buf.WriteString(fmt.Sprintf("%s%s^\n", strings.Repeat(" ", pointerIndent), strings.Repeat(" ", column-1)))
			} else {
				buf.WriteString(fmt.Sprintf("%s^\n", strings.Repeat(" ", pointerIndent)))
			}
		} else {
			buf.WriteString(fmt.Sprintf("  %*d | %s\n", lineNumWidth, lineNum, lineContent))
		}
	}

	return buf.String()
}
