// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package storage

import (
	"net/http"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/azresponse"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

// The helpers below turn the outcome of an SDK call into a result. raw is the response captured with
// runtime.WithCaptureResponse, err the error returned by the call. A factory rejection never escapes:
// it becomes the error of a Failure.

func blobResult(raw *http.Response, err error) *azresponse.BlobResponse {
	if err != nil {
		r, ferr := azresponse.BlobFromError(err)
		if ferr != nil {
			return response.Must(azresponse.BlobFailureFrom(ferr))
		}
		return r
	}

	if raw == nil {
		return azresponse.BlobSuccessful()
	}

	r, ferr := azresponse.BlobFrom(raw)
	if ferr != nil {
		return response.Must(azresponse.BlobFailureFrom(ferr))
	}
	return r
}

func blobValueResult[T any](raw *http.Response, value T, err error) *azresponse.BlobValueResponse[T] {
	if err != nil {
		r, ferr := azresponse.BlobValueFromError[T](err)
		if ferr != nil {
			return response.Must(azresponse.BlobFailureValueFrom[T](ferr))
		}
		return r
	}

	var (
		r    *azresponse.BlobValueResponse[T]
		ferr error
	)
	if raw == nil {
		r, ferr = azresponse.BlobSuccessfulValue(value)
	} else {
		r, ferr = azresponse.BlobValueFrom(raw, value)
	}
	if ferr != nil {
		return response.Must(azresponse.BlobFailureValueFrom[T](ferr))
	}
	return r
}

func tableResult(raw *http.Response, err error) *azresponse.TableResponse {
	if err != nil {
		r, ferr := azresponse.TableFromError(err)
		if ferr != nil {
			return response.Must(azresponse.TableFailureFrom(ferr))
		}
		return r
	}

	if raw == nil {
		return azresponse.TableSuccessful()
	}

	r, ferr := azresponse.TableFrom(raw)
	if ferr != nil {
		return response.Must(azresponse.TableFailureFrom(ferr))
	}
	return r
}

func tableValueResult[T any](raw *http.Response, value T, err error) *azresponse.TableValueResponse[T] {
	if err != nil {
		r, ferr := azresponse.TableValueFromError[T](err)
		if ferr != nil {
			return response.Must(azresponse.TableFailureValueFrom[T](ferr))
		}
		return r
	}

	var (
		r    *azresponse.TableValueResponse[T]
		ferr error
	)
	if raw == nil {
		r, ferr = azresponse.TableSuccessfulValue(value)
	} else {
		r, ferr = azresponse.TableValueFrom(raw, value)
	}
	if ferr != nil {
		return response.Must(azresponse.TableFailureValueFrom[T](ferr))
	}
	return r
}
