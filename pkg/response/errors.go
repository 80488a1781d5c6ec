// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package response

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched (errors.Is) by every ArgumentError. Construction functions return it
// when a caller asks for a combination that breaks a result invariant.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports a rejected construction argument. These are programming errors, not runtime
// conditions.
type ArgumentError struct {
	// Param is the name of the offending parameter.
	Param string
	// Reason describes the violated rule.
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument '%s': %s", e.Param, e.Reason)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewArgumentError creates an ArgumentError for param.
func NewArgumentError(param string, reason string) *ArgumentError {
	return &ArgumentError{Param: param, Reason: reason}
}

// NilArgument reports a required argument that was nil.
func NilArgument(param string) *ArgumentError {
	return NewArgumentError(param, "value cannot be nil")
}

// Messages used by the construction checks.
const (
	ReasonSuccessWithoutValue = "the status is Success and no value was specified"
	ReasonFailureWithValue    = "the status is Failure and a value was specified"
	ReasonUnknownStatus       = "the status is not a defined response status"
	ReasonStatusIsNotFailure  = "the status in the response is not Failure"
	ReasonEmptyMessageKey     = "message keys cannot be empty"
)
