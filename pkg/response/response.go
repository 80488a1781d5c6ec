// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package response provides the immutable result types used to report the outcome of storage
// operations: a three-state Status, an optional error, an optional value and an ordered bag of
// diagnostic messages.
//
// Results are built once through the constructor functions in this package, which reject any
// combination that breaks an invariant:
//
//   - an error is only ever attached to a Failure
//   - a Success value result always carries a value
//   - a Failure value result never carries a value
//
// The only mutation allowed after construction is adding messages.
package response

import (
	"strconv"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/errchain"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
)

// Result is the read side shared by every result shape.
type Result interface {
	Status() Status
	Err() error
	Messages() *messages.Bag
	BuildVerbose() *messages.Bag
}

// Keys of the verbose dump.
const (
	VerboseIsError              = "IsError"
	VerboseStatus               = "Status"
	VerboseHasException         = "HasException"
	VerboseExceptionType        = "Exception.Type"
	VerboseExceptionMessages    = "Exception.Messages"
	VerboseExceptionStackTrace  = "Exception.StackTrace"
	VerboseHasMessage           = "HasMessage"
	VerboseHasValue             = "HasValue"
	VerboseValueType            = "Value.Type"
	VerboseValue                = "Value"
	VerboseStackTraceUndefined  = "The stack trace is not defined."
	verboseDefaultCapacity      = 8
	verboseValueDefaultCapacity = 3
)

// Response is the result of an operation that produces no value.
type Response struct {
	status   Status
	err      error
	messages *messages.Bag
}

func newResponse(status Status, err error) Response {
	return Response{
		status:   status,
		err:      err,
		messages: messages.New(),
	}
}

// New creates a result with the given status.
func New(status Status) (*Response, error) {
	if !status.IsValid() {
		return nil, NewArgumentError("status", ReasonUnknownStatus)
	}

	r := newResponse(status, nil)
	return &r, nil
}

// Successful creates a Success result.
func Successful() *Response {
	r := newResponse(Success, nil)
	return &r
}

// Warned creates a Warning result.
func Warned() *Response {
	r := newResponse(Warning, nil)
	return &r
}

// Failed creates a Failure result that carries no error.
func Failed() *Response {
	r := newResponse(Failure, nil)
	return &r
}

// FailedFrom creates a Failure result carrying err.
func FailedFrom(err error) (*Response, error) {
	if err == nil {
		return nil, NilArgument("err")
	}

	r := newResponse(Failure, err)
	return &r, nil
}

// From creates a new result with the status, error and messages of r. Message keys are copied
// with the Rename policy.
func From(r Result) (*Response, error) {
	if r == nil {
		return nil, NilArgument("result")
	}

	out := newResponse(r.Status(), r.Err())
	out.messages.TryAddRange(r.Messages(), messages.Rename)
	return &out, nil
}

// FromFailure is From restricted to Failure results.
func FromFailure(r Result) (*Response, error) {
	if err := AssertFailure(r, "result"); err != nil {
		return nil, err
	}

	return From(r)
}

// AssertFailure returns an ArgumentError when r is nil or its status is not Failure.
func AssertFailure(r Result, param string) error {
	if r == nil {
		return NilArgument(param)
	}
	if r.Status() != Failure {
		return NewArgumentError(param, ReasonStatusIsNotFailure)
	}

	return nil
}

// Status returns the outcome classification.
func (r *Response) Status() Status {
	return r.status
}

// IsSuccess reports whether the status is Success.
func (r *Response) IsSuccess() bool {
	return r.status == Success
}

// IsWarning reports whether the status is Warning.
func (r *Response) IsWarning() bool {
	return r.status == Warning
}

// IsFailure reports whether the status is Failure.
func (r *Response) IsFailure() bool {
	return r.status == Failure
}

// Err returns the error attached to a Failure, if any.
func (r *Response) Err() error {
	return r.err
}

// HasErr reports whether an error is attached.
func (r *Response) HasErr() bool {
	return r.err != nil
}

// Messages returns the message bag. The bag is shared; adding to it is the one mutation a result
// allows after construction.
func (r *Response) Messages() *messages.Bag {
	if r.messages == nil {
		r.messages = messages.New()
	}

	return r.messages
}

// HasMessages reports whether at least one message was added.
func (r *Response) HasMessages() bool {
	return r.messages.Len() > 0
}

// AddMessage adds a message, renaming the key if it is already taken. The key actually used is
// returned.
func (r *Response) AddMessage(key, value string) (string, error) {
	if key == "" {
		return "", NewArgumentError("key", ReasonEmptyMessageKey)
	}

	return r.Messages().AddOrRename(key, value), nil
}

// AddMessages merges the messages of other using action and returns the keys skipped by Ignore.
func (r *Response) AddMessages(other *messages.Bag, action messages.KeyExistAction) []string {
	return r.Messages().TryAddRange(other, action)
}

// AddMessagesFrom merges the messages of another result.
func (r *Response) AddMessagesFrom(other Result, action messages.KeyExistAction) []string {
	if other == nil {
		return nil
	}

	return r.AddMessages(other.Messages(), action)
}

// BuildVerbose builds the diagnostic dump of the result: IsError, Status, the exception entries,
// HasMessage and then the messages.
func (r *Response) BuildVerbose() *messages.Bag {
	verbose := messages.NewWithCapacity(verboseDefaultCapacity + r.messages.Len())

	verbose.AddOrRename(VerboseIsError, strconv.FormatBool(r.IsFailure()))
	verbose.AddOrRename(VerboseStatus, r.status.Qualified())

	verbose.AddOrRename(VerboseHasException, strconv.FormatBool(r.HasErr()))
	if r.HasErr() {
		verbose.AddOrRename(VerboseExceptionType, errchain.TypeName(r.err))
		verbose.AddOrRename(VerboseExceptionMessages, errchain.JoinMessages(r.err))

		stackTrace := errchain.JoinStackTraces(r.err)
		if stackTrace == "" {
			stackTrace = VerboseStackTraceUndefined
		}
		verbose.AddOrRename(VerboseExceptionStackTrace, stackTrace)
	}

	verbose.AddOrRename(VerboseHasMessage, strconv.FormatBool(r.HasMessages()))
	verbose.TryAddRange(r.messages, messages.Rename)

	return verbose
}

var _ Result = (*Response)(nil)
