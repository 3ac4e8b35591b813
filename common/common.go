// Package common holds shared constants and helpers with no better home
package common

import (
	"strings"
)

const (
	// SimpleTimeFormat a common, but non-implemented time format in golang
	SimpleTimeFormat = "2006-01-02 15:04:05"
	// SimpleTimeFormatWithTimezone a common, but non-implemented time format
	// in golang
	SimpleTimeFormatWithTimezone = "2006-01-02 15:04:05 MST"
)

// Errors defines multiple errors
type Errors []error

// Error implements error interface
func (e Errors) Error() string {
	strs := make([]string, len(e))
	for i := range e {
		strs[i] = e[i].Error()
	}
	return strings.Join(strs, ", ")
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (e Errors) Unwrap() []error {
	return e
}
