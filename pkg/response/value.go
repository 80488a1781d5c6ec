// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package response

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
)

// ValueResult is a result that may carry a value of type T.
//
// A value is absent only when T is a nil-able kind (pointer, interface, map, slice, channel,
// function) and the value is nil. Zero values of other kinds are present values.
type ValueResult[T any] struct {
	Response
	value    T
	hasValue bool
}

func newValue[T any](status Status, err error, value T) *ValueResult[T] {
	return &ValueResult[T]{
		Response: newResponse(status, err),
		value:    value,
		hasValue: isPresent(value),
	}
}

// NewValue creates a value result with the given status. A Success requires a value, a Failure
// rejects one.
func NewValue[T any](status Status, value T) (*ValueResult[T], error) {
	if !status.IsValid() {
		return nil, NewArgumentError("status", ReasonUnknownStatus)
	}

	present := isPresent(value)
	switch {
	case status == Success && !present:
		return nil, NewArgumentError("value", ReasonSuccessWithoutValue)
	case status == Failure && present:
		return nil, NewArgumentError("value", ReasonFailureWithValue)
	}

	return newValue(status, nil, value), nil
}

// SuccessfulValue creates a Success result carrying value.
func SuccessfulValue[T any](value T) (*ValueResult[T], error) {
	return NewValue(Success, value)
}

// WarningValue creates a Warning result carrying value, which may be absent.
func WarningValue[T any](value T) *ValueResult[T] {
	return newValue(Warning, nil, value)
}

// WarningEmpty creates a Warning result without a value.
func WarningEmpty[T any]() *ValueResult[T] {
	var zero T
	r := newValue(Warning, nil, zero)
	r.hasValue = false
	return r
}

// FailureValue creates a Failure result without a value or error.
func FailureValue[T any]() *ValueResult[T] {
	var zero T
	r := newValue(Failure, nil, zero)
	r.hasValue = false
	return r
}

// FailureValueFrom creates a Failure result carrying err.
func FailureValueFrom[T any](err error) (*ValueResult[T], error) {
	if err == nil {
		return nil, NilArgument("err")
	}

	var zero T
	r := newValue(Failure, err, zero)
	r.hasValue = false
	return r, nil
}

// Must returns r and panics if err is not nil. It is meant for call sites whose arguments are
// known to satisfy the construction rules.
func Must[R any](r R, err error) R {
	if err != nil {
		panic(err)
	}

	return r
}

// Value returns the carried value, or the zero value of T when absent.
func (r *ValueResult[T]) Value() T {
	return r.value
}

// ValueOk returns the carried value and whether it is present.
func (r *ValueResult[T]) ValueOk() (T, bool) {
	return r.value, r.hasValue
}

// HasValue reports whether a value is present.
func (r *ValueResult[T]) HasValue() bool {
	return r.hasValue
}

// BuildVerbose builds the diagnostic dump of the result, including the value section.
func (r *ValueResult[T]) BuildVerbose() *messages.Bag {
	verbose := r.Response.BuildVerbose()
	r.AppendValueVerbose(verbose)
	return verbose
}

// AppendValueVerbose adds HasValue and, when a value is present, its type and text to verbose.
func (r *ValueResult[T]) AppendValueVerbose(verbose *messages.Bag) {
	verbose.AddOrRename(VerboseHasValue, strconv.FormatBool(r.hasValue))
	if !r.hasValue {
		return
	}

	verbose.AddOrRename(VerboseValueType, fmt.Sprintf("%T", r.value))
	verbose.AddOrRename(VerboseValue, fmt.Sprint(r.value))
}

func isPresent[T any](value T) bool {
	v := reflect.ValueOf(&value).Elem()
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.UnsafePointer:
		return !v.IsNil()
	default:
		return true
	}
}

var _ Result = (*ValueResult[any])(nil)
