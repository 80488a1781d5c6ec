// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"net/http"
	"strconv"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/odata"
)

const tableErrorCodeType = "aztables.TableErrorCode"

// TableServiceResponse is the outcome of a table service call.
type TableServiceResponse struct {
	azureResponse
	errorCode aztables.TableErrorCode
}

// NewTableServiceResponse wraps the HTTP response of a table service call. The error code and message
// of an error response are read from its OData JSON body.
func NewTableServiceResponse(resp *http.Response) (*TableServiceResponse, error) {
	base, err := newAzureResponse(resp)
	if err != nil {
		return nil, err
	}

	r := &TableServiceResponse{azureResponse: base}
	if r.isError {
		r.apply(odata.TableErrorFromResponse(resp))
	}

	return r, nil
}

// NewTableServiceResponseFromError wraps the error returned by a table service call.
func NewTableServiceResponseFromError(err error) (*TableServiceResponse, error) {
	base, err := newAzureResponseFromError(err)
	if err != nil {
		return nil, err
	}

	r := &TableServiceResponse{azureResponse: base}
	r.apply(odata.FromError[aztables.TableErrorCode](base.err))

	return r, nil
}

func (r *TableServiceResponse) apply(extraction odata.Extraction[aztables.TableErrorCode]) {
	tableErr, ok := extraction.Ok()
	if !ok {
		r.message = MessageNotRecovered
		return
	}

	r.message = tableErr.Message
	r.errorCode = tableErr.ErrorCode
}

// ErrorCode returns the service error code of an error response.
func (r *TableServiceResponse) ErrorCode() aztables.TableErrorCode {
	return r.errorCode
}

// HasErrorCode reports whether an error code was recovered.
func (r *TableServiceResponse) HasErrorCode() bool {
	return r.errorCode != ""
}

// ServiceErrorCode returns the error code as a string.
func (r *TableServiceResponse) ServiceErrorCode() string {
	return string(r.errorCode)
}

func (r *TableServiceResponse) BuildVerbose() *messages.Bag {
	verbose := r.buildVerbose()
	verbose.AddOrRename(VerboseHasErrorCode, strconv.FormatBool(r.HasErrorCode()))
	if r.HasErrorCode() {
		verbose.AddOrRename(VerboseErrorCode, tableErrorCodeType+"."+string(r.errorCode))
	}

	return verbose
}

var _ AzureResponse = (*TableServiceResponse)(nil)
