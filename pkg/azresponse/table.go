// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"net/http"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

// TableResponse is the result of a table operation without a value.
type TableResponse = Response[*TableServiceResponse]

// TableValueResponse is the result of a table operation that produces a T.
type TableValueResponse[T any] = ValueResponse[T, *TableServiceResponse]

// TableSuccessful creates a Success table result.
func TableSuccessful() *TableResponse {
	return wrapResponse(response.Successful(), noNative[*TableServiceResponse]())
}

// TableFailure creates a Failure table result without an error.
func TableFailure() *TableResponse {
	return wrapResponse(response.Failed(), noNative[*TableServiceResponse]())
}

// TableFailureFrom creates a Failure table result carrying err.
func TableFailureFrom(err error) (*TableResponse, error) {
	return ResponseFromError[*TableServiceResponse](err)
}

// TableFrom creates a table result from the HTTP response of a table service call.
func TableFrom(resp *http.Response) (*TableResponse, error) {
	native, err := NewTableServiceResponse(resp)
	if err != nil {
		return nil, err
	}

	return ResponseFrom(native)
}

// TableFromError creates a Failure table result from the error returned by a table service call.
func TableFromError(err error) (*TableResponse, error) {
	native, nerr := NewTableServiceResponseFromError(err)
	if nerr != nil {
		return nil, nerr
	}

	return responseFromNativeError(native, err)
}

// TableSuccessfulValue creates a Success table result carrying value.
func TableSuccessfulValue[T any](value T) (*TableValueResponse[T], error) {
	return NewValueResponse[T, *TableServiceResponse](response.Success, value)
}

// TableWarningValue creates a Warning table result carrying value, which may be absent.
func TableWarningValue[T any](value T) *TableValueResponse[T] {
	return wrapValue(response.WarningValue(value), noNative[*TableServiceResponse]())
}

// TableFailureValue creates a Failure table result without a value or error.
func TableFailureValue[T any]() *TableValueResponse[T] {
	return wrapValue(response.FailureValue[T](), noNative[*TableServiceResponse]())
}

// TableFailureValueFrom creates a Failure table result carrying err.
func TableFailureValueFrom[T any](err error) (*TableValueResponse[T], error) {
	return ValueResponseFromError[T, *TableServiceResponse](err)
}

// TableValueFrom creates a table result from the HTTP response of a table service call and the value
// it produced.
func TableValueFrom[T any](resp *http.Response, value T) (*TableValueResponse[T], error) {
	native, err := NewTableServiceResponse(resp)
	if err != nil {
		return nil, err
	}

	return ValueResponseFrom(native, value)
}

// TableValueFromError creates a Failure table result from the error returned by a table service call.
func TableValueFromError[T any](err error) (*TableValueResponse[T], error) {
	native, nerr := NewTableServiceResponseFromError(err)
	if nerr != nil {
		return nil, nerr
	}

	return valueFromNativeError[T](native, err)
}
