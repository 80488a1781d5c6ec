// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package errchain flattens an error and everything it wraps into ordered lists of messages and
// stack traces, for diagnostic dumps.
package errchain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Separator joins the entries produced by JoinMessages and JoinStackTraces.
const Separator = " --> "

// stackTracer is implemented by errors created or wrapped with github.com/pkg/errors.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Walk visits err and every error it wraps, depth first. Errors joined with errors.Join (or any
// error exposing Unwrap() []error) are visited in order. Walking stops when visit returns false.
func Walk(err error, visit func(error) bool) {
	walk(err, visit)
}

func walk(err error, visit func(error) bool) bool {
	if err == nil {
		return true
	}

	if !visit(err) {
		return false
	}

	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if !walk(inner, visit) {
				return false
			}
		}
		return true
	default:
		return walk(errors.Unwrap(err), visit)
	}
}

// Messages returns the message of err and of every error it wraps, outermost first. Consecutive
// duplicates (a pkg/errors stack wrapper around its message wrapper) are collapsed.
func Messages(err error) []string {
	var messages []string
	Walk(err, func(e error) bool {
		msg := e.Error()
		if len(messages) > 0 && messages[len(messages)-1] == msg {
			return true
		}
		messages = append(messages, msg)
		return true
	})

	return messages
}

// StackTraces returns the stack traces recorded along the chain, outermost first. Only errors that
// carry a stack (github.com/pkg/errors) contribute.
func StackTraces(err error) []string {
	var traces []string
	Walk(err, func(e error) bool {
		if tracer, ok := e.(stackTracer); ok {
			traces = append(traces, strings.TrimSpace(fmt.Sprintf("%+v", tracer.StackTrace())))
		}
		return true
	})

	return traces
}

// JoinMessages joins Messages(err) with Separator.
func JoinMessages(err error) string {
	return strings.Join(Messages(err), Separator)
}

// JoinStackTraces joins StackTraces(err) with Separator. It returns "" when no stack was recorded.
func JoinStackTraces(err error) string {
	return strings.Join(StackTraces(err), Separator)
}

// TypeName returns the qualified type name of v, e.g. "*azcore.ResponseError".
func TypeName(v any) string {
	if v == nil {
		return "<nil>"
	}

	return reflect.TypeOf(v).String()
}
