// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/errchain"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

// BlobResponse is the result of a blob operation without a value.
type BlobResponse = Response[*BlobStorageResponse]

// BlobValueResponse is the result of a blob operation that produces a T.
type BlobValueResponse[T any] = ValueResponse[T, *BlobStorageResponse]

// Message keys added by BlobFromItem.
const (
	MessageBlobItemName = "BlobItem.Name"
	MessageBlobItemType = "BlobItem.Type"
)

// BlobSuccessful creates a Success blob result.
func BlobSuccessful() *BlobResponse {
	return wrapResponse(response.Successful(), noNative[*BlobStorageResponse]())
}

// BlobFailure creates a Failure blob result without an error.
func BlobFailure() *BlobResponse {
	return wrapResponse(response.Failed(), noNative[*BlobStorageResponse]())
}

// BlobFailureFrom creates a Failure blob result carrying err.
func BlobFailureFrom(err error) (*BlobResponse, error) {
	return ResponseFromError[*BlobStorageResponse](err)
}

// BlobFrom creates a blob result from the HTTP response of a blob service call.
func BlobFrom(resp *http.Response) (*BlobResponse, error) {
	native, err := NewBlobStorageResponse(resp)
	if err != nil {
		return nil, err
	}

	return ResponseFrom(native)
}

// BlobFromError creates a Failure blob result from the error returned by a blob service call.
func BlobFromError(err error) (*BlobResponse, error) {
	native, nerr := NewBlobStorageResponseFromError(err)
	if nerr != nil {
		return nil, nerr
	}

	return responseFromNativeError(native, err)
}

// BlobFromItem is BlobFrom for a call that returned a blob item. The item name and type are added
// as messages.
func BlobFromItem(resp *http.Response, item *container.BlobItem) (*BlobResponse, error) {
	if item == nil {
		return nil, response.NilArgument("item")
	}

	r, err := BlobFrom(resp)
	if err != nil {
		return nil, err
	}

	if item.Name != nil {
		r.Messages().AddOrRename(MessageBlobItemName, *item.Name)
	}
	r.Messages().AddOrRename(MessageBlobItemType, errchain.TypeName(item))

	return r, nil
}

// BlobSuccessfulValue creates a Success blob result carrying value.
func BlobSuccessfulValue[T any](value T) (*BlobValueResponse[T], error) {
	return NewValueResponse[T, *BlobStorageResponse](response.Success, value)
}

// BlobWarningValue creates a Warning blob result carrying value, which may be absent.
func BlobWarningValue[T any](value T) *BlobValueResponse[T] {
	return wrapValue(response.WarningValue(value), noNative[*BlobStorageResponse]())
}

// BlobFailureValue creates a Failure blob result without a value or error.
func BlobFailureValue[T any]() *BlobValueResponse[T] {
	return wrapValue(response.FailureValue[T](), noNative[*BlobStorageResponse]())
}

// BlobFailureValueFrom creates a Failure blob result carrying err.
func BlobFailureValueFrom[T any](err error) (*BlobValueResponse[T], error) {
	return ValueResponseFromError[T, *BlobStorageResponse](err)
}

// BlobValueFrom creates a blob result from the HTTP response of a blob service call and the value
// it produced.
func BlobValueFrom[T any](resp *http.Response, value T) (*BlobValueResponse[T], error) {
	native, err := NewBlobStorageResponse(resp)
	if err != nil {
		return nil, err
	}

	return ValueResponseFrom(native, value)
}

// BlobValueFromError creates a Failure blob result from the error returned by a blob service call.
func BlobValueFromError[T any](err error) (*BlobValueResponse[T], error) {
	native, nerr := NewBlobStorageResponseFromError(err)
	if nerr != nil {
		return nil, nerr
	}

	return valueFromNativeError[T](native, err)
}
