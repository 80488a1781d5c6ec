// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

// Reasons reported by the construction checks of this package.
const (
	ReasonUnknownStatusCode              = "the status code %d is not an HTTP status code"
	ReasonStatusDoesNotMatchResponse     = "the status does not match the 'IsError' property of the Azure response"
	ReasonErrorResponseWithValue         = "the Azure response is an error and a value was specified"
	ReasonSuccessfulResponseWithoutValue = "the Azure response is not an error and no value was specified"
)
