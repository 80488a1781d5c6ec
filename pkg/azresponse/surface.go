// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

// responseFromNativeError builds the Failure of a call that returned err. The error is kept both on
// the result and on its native outcome.
func responseFromNativeError[R AzureResponse](native R, err error) (*Response[R], error) {
	core, ferr := response.FailedFrom(err)
	if ferr != nil {
		return nil, ferr
	}

	return ResponseFromResult(core, native, true)
}

func valueFromNativeError[T any, R AzureResponse](native R, err error) (*ValueResponse[T, R], error) {
	core, ferr := response.FailureValueFrom[T](err)
	if ferr != nil {
		return nil, ferr
	}

	state, ferr := newAzureState(response.Failure, native, true)
	if ferr != nil {
		return nil, ferr
	}

	return wrapValue(core, state), nil
}

func noNative[R AzureResponse]() azureState[R] {
	return azureState[R]{includeAzureVerbose: true}
}
