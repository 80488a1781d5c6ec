// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/errchain"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

// AzureResponse is the outcome of a single storage service call, built either from the HTTP
// response or from the error returned by the SDK.
type AzureResponse interface {
	IsError() bool
	StatusCode() int
	BuildVerbose() *messages.Bag
}

// MessageNotRecovered is the message of an error response whose error code and message could not be
// extracted.
const MessageNotRecovered = "The 'ErrorCode' and the 'Message' could not be recovered from Azure Response"

// Keys of the native response dump.
const (
	VerboseHasResponse          = "HasResponse"
	VerboseResponseType         = "Response.Type"
	VerboseResponseStatus       = "Response.Status"
	VerboseResponseReasonPhrase = "Response.ReasonPhrase"
	VerboseResponseIsError      = "Response.IsError"
	VerboseResponseHeaderPrefix = "Response.Headers."
	VerboseExceptionStatus      = "Exception.Status"
	VerboseExceptionErrorCode   = "Exception.ErrorCode"
	VerboseMessage              = "Message"
	VerboseHasErrorCode         = "HasErrorCode"
	VerboseErrorCode            = "ErrorCode"
)

// azureResponse holds what both storage surfaces share.
type azureResponse struct {
	isError    bool
	statusCode int
	raw        *http.Response
	err        error
	message    string
}

func newAzureResponse(resp *http.Response) (azureResponse, error) {
	if resp == nil {
		return azureResponse{}, response.NilArgument("resp")
	}
	if http.StatusText(resp.StatusCode) == "" {
		return azureResponse{}, response.NewArgumentError("resp", fmt.Sprintf(ReasonUnknownStatusCode, resp.StatusCode))
	}

	return azureResponse{
		isError:    isErrorStatus(resp.StatusCode),
		statusCode: resp.StatusCode,
		raw:        resp,
	}, nil
}

// newAzureResponseFromError is always an error. The status code comes from the failed request in the
// chain of err; it is 0 when err carries none, e.g. a transport failure.
func newAzureResponseFromError(err error) (azureResponse, error) {
	if err == nil {
		return azureResponse{}, response.NilArgument("err")
	}

	statusCode := 0
	if requestFailed, ok := AsRequestFailed(err); ok {
		statusCode = requestFailed.StatusCode
		if http.StatusText(statusCode) == "" {
			return azureResponse{}, response.NewArgumentError("err", fmt.Sprintf(ReasonUnknownStatusCode, statusCode))
		}
	}

	return azureResponse{
		isError:    true,
		statusCode: statusCode,
		err:        err,
	}, nil
}

func isErrorStatus(statusCode int) bool {
	return statusCode >= http.StatusBadRequest
}

// IsError reports whether the call failed.
func (r *azureResponse) IsError() bool {
	return r.isError
}

// StatusCode returns the HTTP status code of the call, or 0 when unknown.
func (r *azureResponse) StatusCode() int {
	return r.statusCode
}

// Raw returns the captured HTTP response, if any.
func (r *azureResponse) Raw() *http.Response {
	return r.raw
}

// HasResponse reports whether the HTTP response was captured.
func (r *azureResponse) HasResponse() bool {
	return r.raw != nil
}

// Err returns the error the response was built from, if any.
func (r *azureResponse) Err() error {
	return r.err
}

// HasErr reports whether the response was built from an error.
func (r *azureResponse) HasErr() bool {
	return r.err != nil
}

// Message returns the service message of an error response.
func (r *azureResponse) Message() string {
	return r.message
}

// HasMessage reports whether a message is available.
func (r *azureResponse) HasMessage() bool {
	return r.message != ""
}

func (r *azureResponse) buildVerbose() *messages.Bag {
	verbose := messages.NewWithCapacity(8)

	verbose.AddOrRename(response.VerboseIsError, strconv.FormatBool(r.isError))
	verbose.AddOrRename(response.VerboseStatus, statusText(r.statusCode))

	verbose.AddOrRename(VerboseHasResponse, strconv.FormatBool(r.HasResponse()))
	if r.HasResponse() {
		verbose.AddOrRename(VerboseResponseType, errchain.TypeName(r.raw))
		verbose.AddOrRename(VerboseResponseStatus, strconv.Itoa(r.raw.StatusCode))
		verbose.AddOrRename(VerboseResponseReasonPhrase, reasonPhrase(r.raw))
		verbose.AddOrRename(VerboseResponseIsError, strconv.FormatBool(isErrorStatus(r.raw.StatusCode)))

		names := make([]string, 0, len(r.raw.Header))
		for name := range r.raw.Header {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			verbose.AddOrRename(VerboseResponseHeaderPrefix+name, strings.Join(r.raw.Header.Values(name), ", "))
		}
	}

	verbose.AddOrRename(response.VerboseHasException, strconv.FormatBool(r.HasErr()))
	if r.HasErr() {
		verbose.AddOrRename(response.VerboseExceptionType, errchain.TypeName(r.err))
		verbose.AddOrRename(response.VerboseExceptionMessages, errchain.JoinMessages(r.err))

		stackTrace := errchain.JoinStackTraces(r.err)
		if stackTrace == "" {
			stackTrace = response.VerboseStackTraceUndefined
		}
		verbose.AddOrRename(response.VerboseExceptionStackTrace, stackTrace)

		var errorCode string
		if requestFailed, ok := AsRequestFailed(r.err); ok {
			errorCode = requestFailed.ErrorCode
		}
		verbose.AddOrRename(VerboseExceptionStatus, strconv.Itoa(r.statusCode))
		verbose.AddOrRename(VerboseExceptionErrorCode, errorCode)
	}

	verbose.AddOrRename(response.VerboseHasMessage, strconv.FormatBool(r.HasMessage()))
	if r.HasMessage() {
		verbose.AddOrRename(VerboseMessage, r.message)
	}

	return verbose
}

// statusConstantOverrides holds the net/http constants whose names do not follow their status text.
var statusConstantOverrides = map[int]string{
	http.StatusNonAuthoritativeInfo: "StatusNonAuthoritativeInfo",
	http.StatusTeapot:               "StatusTeapot",
}

// statusText renders a status code as its net/http constant, e.g. "http.StatusNotFound". Codes
// without a constant are rendered as numbers.
func statusText(statusCode int) string {
	if name, ok := statusConstantOverrides[statusCode]; ok {
		return "http." + name
	}

	text := http.StatusText(statusCode)
	if text == "" {
		return strconv.Itoa(statusCode)
	}

	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, text)

	return "http.Status" + name
}

func reasonPhrase(resp *http.Response) string {
	// resp.Status is "404 The specified blob does not exist." when set by the transport
	if _, phrase, ok := strings.Cut(resp.Status, " "); ok && phrase != "" {
		return phrase
	}

	return http.StatusText(resp.StatusCode)
}
