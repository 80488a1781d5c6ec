// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

// ValueResponse is a value result that may carry the native outcome of a service call.
type ValueResponse[T any, R AzureResponse] struct {
	response.ValueResult[T]
	azureState[R]
}

func wrapValue[T any, R AzureResponse](core *response.ValueResult[T], state azureState[R]) *ValueResponse[T, R] {
	return &ValueResponse[T, R]{ValueResult: *core, azureState: state}
}

// NewValueResponse creates a value result with the given status and no native outcome. A Success
// requires a value, a Failure rejects one.
func NewValueResponse[T any, R AzureResponse](status response.Status, value T) (*ValueResponse[T, R], error) {
	core, err := response.NewValue(status, value)
	if err != nil {
		return nil, err
	}

	return wrapValue(core, azureState[R]{includeAzureVerbose: true}), nil
}

// ValueResponseFrom creates a value result from the native outcome of a service call and the value
// it produced. The value is required when the call succeeded and rejected when it failed.
func ValueResponseFrom[T any, R AzureResponse](native R, value T) (*ValueResponse[T, R], error) {
	if isNil(native) {
		return nil, response.NilArgument("native")
	}

	status := response.Success
	if native.IsError() {
		status = response.Failure
	}

	core, err := response.NewValue(status, value)
	if err != nil {
		reason := ReasonSuccessfulResponseWithoutValue
		if native.IsError() {
			reason = ReasonErrorResponseWithValue
		}
		return nil, response.NewArgumentError("value", reason)
	}

	state, err := newAzureState(status, native, true)
	if err != nil {
		return nil, err
	}

	return wrapValue(core, state), nil
}

// ValueResponseFromError creates a Failure carrying err, without a value or native outcome.
func ValueResponseFromError[T any, R AzureResponse](err error) (*ValueResponse[T, R], error) {
	core, ferr := response.FailureValueFrom[T](err)
	if ferr != nil {
		return nil, ferr
	}

	return wrapValue(core, azureState[R]{includeAzureVerbose: true}), nil
}

// ValueResponseFromFailure re-wraps a Failure of any shape into a value result of type T. The error
// and messages are kept, and so is the native outcome of a cloud result.
func ValueResponseFromFailure[T any, R AzureResponse](in response.Result) (*ValueResponse[T, R], error) {
	return valueResponseFromFailure[T, R](in, messages.Rename)
}

func valueResponseFromFailure[T any, R AzureResponse](
	in response.Result,
	action messages.KeyExistAction,
) (*ValueResponse[T, R], error) {
	if err := response.AssertFailure(in, "in"); err != nil {
		return nil, err
	}

	core := response.FailureValue[T]()
	if in.Err() != nil {
		core = response.Must(response.FailureValueFrom[T](in.Err()))
	}
	core.AddMessages(in.Messages(), action)

	state := azureState[R]{includeAzureVerbose: true}
	if cloud, ok := in.(CloudResult[R]); ok {
		native, _ := cloud.AzureResponse()

		var err error
		if state, err = newAzureState(response.Failure, native, cloud.IncludeAzureVerbose()); err != nil {
			return nil, err
		}
	}

	return wrapValue(core, state), nil
}

// MapValue converts the value of in with convert, keeping its native outcome. Failures are
// propagated unchanged and messages are carried over with Rename.
func MapValue[TIn, TOut any, R AzureResponse](
	in *ValueResponse[TIn, R],
	convert func(TIn) TOut,
) (*ValueResponse[TOut, R], error) {
	return MapValueWith(in, convert, messages.Rename)
}

// MapValueWith is MapValue with an explicit policy for carrying over message keys.
func MapValueWith[TIn, TOut any, R AzureResponse](
	in *ValueResponse[TIn, R],
	convert func(TIn) TOut,
	action messages.KeyExistAction,
) (*ValueResponse[TOut, R], error) {
	if in == nil {
		return nil, response.NilArgument("in")
	}

	core, err := response.MapWith(&in.ValueResult, convert, action)
	if err != nil {
		return nil, err
	}

	return wrapValue(core, in.azureState), nil
}

// MapValueFromFailure re-wraps a failed value result into a value result of another type.
func MapValueFromFailure[TIn, TOut any, R AzureResponse](in *ValueResponse[TIn, R]) (*ValueResponse[TOut, R], error) {
	if in == nil {
		return nil, response.NilArgument("in")
	}

	return ValueResponseFromFailure[TOut, R](in)
}

// BuildVerbose builds the diagnostic dump: the result section, the cloud section and then the
// value section.
func (r *ValueResponse[T, R]) BuildVerbose() *messages.Bag {
	verbose := r.Response.BuildVerbose()
	r.appendVerbose(verbose)
	r.AppendValueVerbose(verbose)
	return verbose
}

var _ CloudResult[*TableServiceResponse] = (*ValueResponse[string, *TableServiceResponse])(nil)
