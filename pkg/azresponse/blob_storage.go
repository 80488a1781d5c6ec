// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"net/http"
	"strconv"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/odata"
)

const blobErrorCodeType = "bloberror.Code"

// BlobStorageResponse is the outcome of a blob service call.
type BlobStorageResponse struct {
	azureResponse
	errorCode bloberror.Code
}

// NewBlobStorageResponse wraps the HTTP response of a blob service call. The error code and message
// of an error response are read from its body or its x-ms-error-code header.
func NewBlobStorageResponse(resp *http.Response) (*BlobStorageResponse, error) {
	base, err := newAzureResponse(resp)
	if err != nil {
		return nil, err
	}

	r := &BlobStorageResponse{azureResponse: base}
	if r.isError {
		r.apply(odata.BlobErrorFromResponse(resp))
	}

	return r, nil
}

// NewBlobStorageResponseFromError wraps the error returned by a blob service call.
func NewBlobStorageResponseFromError(err error) (*BlobStorageResponse, error) {
	base, err := newAzureResponseFromError(err)
	if err != nil {
		return nil, err
	}

	r := &BlobStorageResponse{azureResponse: base}
	r.apply(odata.FromError[bloberror.Code](base.err))

	return r, nil
}

func (r *BlobStorageResponse) apply(extraction odata.Extraction[bloberror.Code]) {
	blobErr, ok := extraction.Ok()
	if !ok {
		r.message = MessageNotRecovered
		return
	}

	r.message = blobErr.Message
	r.errorCode = blobErr.ErrorCode
}

// ErrorCode returns the service error code of an error response.
func (r *BlobStorageResponse) ErrorCode() bloberror.Code {
	return r.errorCode
}

// HasErrorCode reports whether an error code was recovered.
func (r *BlobStorageResponse) HasErrorCode() bool {
	return r.errorCode != ""
}

// ServiceErrorCode returns the error code as a string.
func (r *BlobStorageResponse) ServiceErrorCode() string {
	return string(r.errorCode)
}

func (r *BlobStorageResponse) BuildVerbose() *messages.Bag {
	verbose := r.buildVerbose()
	verbose.AddOrRename(VerboseHasErrorCode, strconv.FormatBool(r.HasErrorCode()))
	if r.HasErrorCode() {
		verbose.AddOrRename(VerboseErrorCode, blobErrorCodeType+"."+string(r.errorCode))
	}

	return verbose
}

var _ AzureResponse = (*BlobStorageResponse)(nil)
