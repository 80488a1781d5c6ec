// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package azresponse layers the storage service outcome on top of the results of package response.
//
// A Response[R] or ValueResponse[T, R] carries, next to the status, error and messages, the native
// outcome R of the service call (a *BlobStorageResponse or a *TableServiceResponse). A native
// outcome that is an error forces the result to be a Failure.
package azresponse

import (
	"reflect"
	"strconv"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/errchain"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

// Keys of the cloud section of the verbose dump.
const (
	VerboseHasAzureResponse  = "HasAzureResponse"
	VerboseAzureResponseType = "AzureResponse.Type"
)

// CloudResult is a result that may carry the native outcome of a service call.
type CloudResult[R AzureResponse] interface {
	response.Result
	AzureResponse() (R, bool)
	IncludeAzureVerbose() bool
}

// azureState is the cloud part shared by Response and ValueResponse.
type azureState[R AzureResponse] struct {
	native              R
	hasNative           bool
	includeAzureVerbose bool
}

func newAzureState[R AzureResponse](status response.Status, native R, includeVerbose bool) (azureState[R], error) {
	state := azureState[R]{includeAzureVerbose: includeVerbose}
	if isNil(native) {
		return state, nil
	}
	if native.IsError() && status != response.Failure {
		return state, response.NewArgumentError("status", ReasonStatusDoesNotMatchResponse)
	}

	state.native = native
	state.hasNative = true
	return state, nil
}

// AzureResponse returns the native outcome and whether it is present.
func (s *azureState[R]) AzureResponse() (R, bool) {
	return s.native, s.hasNative
}

// HasAzureResponse reports whether the native outcome is present.
func (s *azureState[R]) HasAzureResponse() bool {
	return s.hasNative
}

// IncludeAzureVerbose reports whether the native dump is merged into BuildVerbose.
func (s *azureState[R]) IncludeAzureVerbose() bool {
	return s.includeAzureVerbose
}

func (s *azureState[R]) nativeResponse() (AzureResponse, bool) {
	if !s.hasNative {
		return nil, false
	}

	return s.native, true
}

func (s *azureState[R]) appendVerbose(verbose *messages.Bag) {
	verbose.AddOrRename(VerboseHasAzureResponse, strconv.FormatBool(s.hasNative))
	if !s.hasNative {
		return
	}

	verbose.AddOrRename(VerboseAzureResponseType, errchain.TypeName(s.native))
	if s.includeAzureVerbose {
		verbose.TryAddRange(s.native.BuildVerbose(), messages.Rename)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// Response is a result without a value that may carry the native outcome of a service call.
type Response[R AzureResponse] struct {
	response.Response
	azureState[R]
}

func wrapResponse[R AzureResponse](core *response.Response, state azureState[R]) *Response[R] {
	return &Response[R]{Response: *core, azureState: state}
}

// NewResponse creates a result with the given status and no native outcome.
func NewResponse[R AzureResponse](status response.Status) (*Response[R], error) {
	core, err := response.New(status)
	if err != nil {
		return nil, err
	}

	return wrapResponse(core, azureState[R]{includeAzureVerbose: true}), nil
}

// ResponseFrom creates a result from the native outcome of a service call: a Failure when it is an
// error, a Success otherwise.
func ResponseFrom[R AzureResponse](native R) (*Response[R], error) {
	if isNil(native) {
		return nil, response.NilArgument("native")
	}

	status := response.Success
	if native.IsError() {
		status = response.Failure
	}

	core, err := response.New(status)
	if err != nil {
		return nil, err
	}

	state, err := newAzureState(status, native, true)
	if err != nil {
		return nil, err
	}

	return wrapResponse(core, state), nil
}

// ResponseFromError creates a Failure carrying err, without a native outcome.
func ResponseFromError[R AzureResponse](err error) (*Response[R], error) {
	core, ferr := response.FailedFrom(err)
	if ferr != nil {
		return nil, ferr
	}

	return wrapResponse(core, azureState[R]{includeAzureVerbose: true}), nil
}

// ResponseFromResult creates a result with the status, error and messages of r and the given native
// outcome, which must agree with the status.
func ResponseFromResult[R AzureResponse](r response.Result, native R, includeAzureVerbose bool) (*Response[R], error) {
	core, err := response.From(r)
	if err != nil {
		return nil, err
	}

	state, err := newAzureState(core.Status(), native, includeAzureVerbose)
	if err != nil {
		return nil, err
	}

	return wrapResponse(core, state), nil
}

// ResponseFromOther copies another cloud result, native outcome included.
func ResponseFromOther[R AzureResponse](other CloudResult[R]) (*Response[R], error) {
	if isNil(other) {
		return nil, response.NilArgument("other")
	}

	native, _ := other.AzureResponse()
	return ResponseFromResult(other, native, other.IncludeAzureVerbose())
}

// ResponseFromFailure re-wraps a Failure of any shape into a Response. The native outcome of a cloud
// result is kept.
func ResponseFromFailure[R AzureResponse](in response.Result) (*Response[R], error) {
	if err := response.AssertFailure(in, "in"); err != nil {
		return nil, err
	}

	if cloud, ok := in.(CloudResult[R]); ok {
		return ResponseFromOther(cloud)
	}

	var none R
	return ResponseFromResult(in, none, true)
}

// BuildVerbose builds the diagnostic dump: the result section, then the cloud section.
func (r *Response[R]) BuildVerbose() *messages.Bag {
	verbose := r.Response.BuildVerbose()
	r.appendVerbose(verbose)
	return verbose
}

var _ CloudResult[*BlobStorageResponse] = (*Response[*BlobStorageResponse])(nil)
