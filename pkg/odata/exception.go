// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package odata

import (
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// ServiceError is implemented by errors that carry a structured service error code.
type ServiceError interface {
	error
	ServiceErrorCode() string
}

// FromError extracts the error code and message of err. The code is taken from the first
// ServiceError or *azcore.ResponseError found in the chain of err; without a code nothing is
// extracted. The message is the first segment of the error text. For an *azcore.ResponseError the
// service message is read from the captured response body when possible, since its own text starts
// with the request line.
func FromError[C ~string](err error) Extraction[C] {
	if err == nil {
		return notFound[C]()
	}

	var serviceErr ServiceError
	if errors.As(err, &serviceErr) {
		return FromMessage[C](serviceErr.ServiceErrorCode(), serviceErr.Error())
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return FromMessage[C](respErr.ErrorCode, ResponseErrorMessage(respErr))
	}

	return notFound[C]()
}

// FromMessage builds an extraction from a service error code and a raw message, keeping the first
// segment of the message. The code alone decides the outcome; the message may be empty.
func FromMessage[C ~string](code, message string) Extraction[C] {
	if code == "" {
		return notFound[C]()
	}

	return Extraction[C]{
		Outcome: Found,
		Error: StructuredError[C]{
			Message:   FirstSegment(message),
			ErrorCode: C(code),
		},
	}
}

// ResponseErrorMessage returns the service message held in the raw response of respErr, falling back
// to the error text.
func ResponseErrorMessage(respErr *azcore.ResponseError) string {
	if respErr.RawResponse != nil {
		if table, ok := TableErrorFromResponse(respErr.RawResponse).Ok(); ok {
			return table.Message
		}
		if hasBody(respErr.RawResponse) {
			if blob, ok := BlobErrorFromResponse(respErr.RawResponse).Ok(); ok {
				return blob.Message
			}
		}
	}

	return respErr.Error()
}
