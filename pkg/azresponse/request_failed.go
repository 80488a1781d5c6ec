// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	pkgerrors "github.com/pkg/errors"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/odata"
)

// RequestFailedError is a failed service request: the HTTP status code, the service error code and
// the service message. It records the stack where it was created.
type RequestFailedError struct {
	StatusCode int
	ErrorCode  string
	Message    string

	cause error
}

// NewRequestFailedError creates a RequestFailedError. cause may be nil.
func NewRequestFailedError(statusCode int, errorCode, message string, cause error) *RequestFailedError {
	if cause == nil {
		cause = pkgerrors.New(requestFailedText(statusCode, errorCode, message))
	} else {
		cause = pkgerrors.WithStack(cause)
	}

	return &RequestFailedError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		cause:      cause,
	}
}

func (e *RequestFailedError) Error() string {
	return requestFailedText(e.StatusCode, e.ErrorCode, e.Message)
}

func (e *RequestFailedError) Unwrap() error {
	return e.cause
}

// ServiceErrorCode returns the service error code, if any.
func (e *RequestFailedError) ServiceErrorCode() string {
	return e.ErrorCode
}

func requestFailedText(statusCode int, errorCode, message string) string {
	switch {
	case message != "":
		return message
	case errorCode != "":
		return fmt.Sprintf("request failed with status %d (%s)", statusCode, errorCode)
	default:
		return fmt.Sprintf("request failed with status %d", statusCode)
	}
}

// AsRequestFailed finds the failed service request described by err. A *RequestFailedError in the
// chain is returned as is. An *azcore.ResponseError is converted, reading the service message from
// its captured response.
func AsRequestFailed(err error) (*RequestFailedError, bool) {
	if err == nil {
		return nil, false
	}

	var requestFailed *RequestFailedError
	if errors.As(err, &requestFailed) {
		return requestFailed, true
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return NewRequestFailedError(respErr.StatusCode, respErr.ErrorCode, odata.ResponseErrorMessage(respErr), err), true
	}

	return nil, false
}

var _ odata.ServiceError = (*RequestFailedError)(nil)
