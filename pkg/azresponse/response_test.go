// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/stretchr/testify/require"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

func mustBlobNative(t *testing.T, resp *http.Response) *BlobStorageResponse {
	native, err := NewBlobStorageResponse(resp)
	require.NoError(t, err)
	return native
}

func Test_ResponseFrom(t *testing.T) {
	t.Run("SuccessfulCall", func(t *testing.T) {
		r, err := BlobFrom(newHTTPResponse(http.StatusCreated, "", ""))
		require.NoError(t, err)
		require.True(t, r.IsSuccess())
		require.True(t, r.HasAzureResponse())
		require.Nil(t, r.Err())
	})

	t.Run("FailedCall", func(t *testing.T) {
		r, err := BlobFrom(newHTTPResponse(http.StatusNotFound, "application/xml", blobNotFoundXML))
		require.NoError(t, err)
		require.True(t, r.IsFailure())

		native, has := r.AzureResponse()
		require.True(t, has)
		require.Equal(t, bloberror.BlobNotFound, native.ErrorCode())
	})

	t.Run("RejectsNilNative", func(t *testing.T) {
		_, err := ResponseFrom[*BlobStorageResponse](nil)
		require.ErrorIs(t, err, response.ErrInvalidArgument)
	})
}

func Test_ResponseFromResult(t *testing.T) {
	errorNative := mustBlobNative(t, newHTTPResponse(http.StatusNotFound, "application/xml", blobNotFoundXML))

	t.Run("RejectsStatusMismatch", func(t *testing.T) {
		_, err := ResponseFromResult(response.Successful(), errorNative, true)
		require.ErrorIs(t, err, response.ErrInvalidArgument)
		require.Contains(t, err.Error(), ReasonStatusDoesNotMatchResponse)

		_, err = ResponseFromResult(response.Warned(), errorNative, true)
		require.ErrorIs(t, err, response.ErrInvalidArgument)
	})

	t.Run("AcceptsFailure", func(t *testing.T) {
		core := response.Failed()
		_, _ = core.AddMessage("Operation", "delete")

		r, err := ResponseFromResult(core, errorNative, false)
		require.NoError(t, err)
		require.True(t, r.IsFailure())
		require.False(t, r.IncludeAzureVerbose())
		require.Equal(t, []string{"Operation"}, r.Messages().Keys())
	})

	t.Run("NilNativeIsAbsent", func(t *testing.T) {
		r, err := ResponseFromResult[*BlobStorageResponse](response.Successful(), nil, true)
		require.NoError(t, err)
		require.False(t, r.HasAzureResponse())
	})
}

func Test_BlobFromError(t *testing.T) {
	cause := NewRequestFailedError(http.StatusNotFound, "BlobNotFound", "The specified blob does not exist.", nil)

	r, err := BlobFromError(cause)
	require.NoError(t, err)
	require.True(t, r.IsFailure())
	require.ErrorIs(t, r.Err(), cause)

	native, has := r.AzureResponse()
	require.True(t, has)
	require.Equal(t, bloberror.BlobNotFound, native.ErrorCode())

	_, err = BlobFromError(nil)
	require.ErrorIs(t, err, response.ErrInvalidArgument)
}

func Test_BlobFromItem(t *testing.T) {
	item := &container.BlobItem{Name: to.Ptr("reports/2024.csv")}

	r, err := BlobFromItem(newHTTPResponse(http.StatusOK, "", ""), item)
	require.NoError(t, err)
	require.True(t, r.IsSuccess())

	name, _ := r.Messages().Get(MessageBlobItemName)
	require.Equal(t, "reports/2024.csv", name)
	itemType, _ := r.Messages().Get(MessageBlobItemType)
	require.Equal(t, "*container.BlobItem", itemType)

	_, err = BlobFromItem(newHTTPResponse(http.StatusOK, "", ""), nil)
	require.ErrorIs(t, err, response.ErrInvalidArgument)
}

func Test_Response_BuildVerbose(t *testing.T) {
	newFailure := func(t *testing.T, includeAzureVerbose bool) *BlobResponse {
		resp := newHTTPResponse(http.StatusNotFound, "application/xml", blobNotFoundXML)
		core := response.Failed()
		_, _ = core.AddMessage("Operation", "download")

		r, err := ResponseFromResult(core, mustBlobNative(t, resp), includeAzureVerbose)
		require.NoError(t, err)
		return r
	}

	t.Run("IncludesNativeDump", func(t *testing.T) {
		verbose := newFailure(t, true).BuildVerbose()

		keys := verbose.Keys()
		require.Equal(t, []string{
			response.VerboseIsError,
			response.VerboseStatus,
			response.VerboseHasException,
			response.VerboseHasMessage,
			"Operation",
			VerboseHasAzureResponse,
			VerboseAzureResponseType,
			response.VerboseIsError + "_1",
			response.VerboseStatus + "_1",
			VerboseHasResponse,
		}, keys[:10])
		require.Equal(t, VerboseErrorCode, keys[len(keys)-1])

		azureType, _ := verbose.Get(VerboseAzureResponseType)
		require.Equal(t, "*azresponse.BlobStorageResponse", azureType)
		status, _ := verbose.Get(response.VerboseStatus)
		require.Equal(t, "response.Status.Failure", status)
		nativeStatus, _ := verbose.Get(response.VerboseStatus + "_1")
		require.Equal(t, "http.StatusNotFound", nativeStatus)
	})

	t.Run("ExcludesNativeDump", func(t *testing.T) {
		verbose := newFailure(t, false).BuildVerbose()

		require.True(t, verbose.Has(VerboseAzureResponseType))
		require.False(t, verbose.Has(VerboseHasResponse))
		require.False(t, verbose.Has(response.VerboseIsError+"_1"))
	})

	t.Run("WithoutNative", func(t *testing.T) {
		verbose := BlobSuccessful().BuildVerbose()

		hasAzure, _ := verbose.Get(VerboseHasAzureResponse)
		require.Equal(t, "false", hasAzure)
		require.False(t, verbose.Has(VerboseAzureResponseType))
	})

	t.Run("Deterministic", func(t *testing.T) {
		r := newFailure(t, true)
		require.Equal(t, r.BuildVerbose().String(), r.BuildVerbose().String())
	})
}

func Test_ValueResponseFrom(t *testing.T) {
	okNative := mustBlobNative(t, newHTTPResponse(http.StatusOK, "", ""))
	errorNative := mustBlobNative(t, newHTTPResponse(http.StatusNotFound, "application/xml", blobNotFoundXML))

	t.Run("SuccessWithValue", func(t *testing.T) {
		r, err := ValueResponseFrom(okNative, []byte("content"))
		require.NoError(t, err)
		require.True(t, r.IsSuccess())
		require.Equal(t, []byte("content"), r.Value())
	})

	t.Run("SuccessRequiresValue", func(t *testing.T) {
		_, err := ValueResponseFrom[[]byte](okNative, nil)
		require.ErrorIs(t, err, response.ErrInvalidArgument)
		require.Contains(t, err.Error(), ReasonSuccessfulResponseWithoutValue)
	})

	t.Run("ErrorRejectsValue", func(t *testing.T) {
		_, err := ValueResponseFrom(errorNative, []byte("content"))
		require.ErrorIs(t, err, response.ErrInvalidArgument)
		require.Contains(t, err.Error(), ReasonErrorResponseWithValue)
	})

	t.Run("ErrorWithoutValue", func(t *testing.T) {
		r, err := ValueResponseFrom[[]byte](errorNative, nil)
		require.NoError(t, err)
		require.True(t, r.IsFailure())
		require.False(t, r.HasValue())
	})
}

func Test_MapValue(t *testing.T) {
	okNative := mustBlobNative(t, newHTTPResponse(http.StatusOK, "", ""))

	t.Run("SuccessKeepsNative", func(t *testing.T) {
		in, err := ValueResponseFrom(okNative, []byte("hello"))
		require.NoError(t, err)
		_, _ = in.AddMessage("Blob", "greeting.txt")

		out, err := MapValue(in, func(b []byte) string { return strings.ToUpper(string(b)) })
		require.NoError(t, err)
		require.True(t, out.IsSuccess())
		require.Equal(t, "HELLO", out.Value())
		require.Equal(t, []string{"Blob"}, out.Messages().Keys())

		native, has := out.AzureResponse()
		require.True(t, has)
		require.Same(t, okNative, native)
	})

	t.Run("FailurePropagates", func(t *testing.T) {
		cause := errors.New("boom")
		in, err := BlobValueFromError[[]byte](cause)
		require.NoError(t, err)

		called := false
		out, err := MapValue(in, func(b []byte) string {
			called = true
			return string(b)
		})
		require.NoError(t, err)
		require.False(t, called)
		require.True(t, out.IsFailure())
		require.False(t, out.HasValue())
		require.Same(t, cause, out.Err())
		require.True(t, out.HasAzureResponse())
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := MapValue[int, int, *BlobStorageResponse](nil, func(v int) int { return v })
		require.ErrorIs(t, err, response.ErrInvalidArgument)
	})
}

func Test_ValueResponseFromFailure(t *testing.T) {
	t.Run("FromCloudResultKeepsNative", func(t *testing.T) {
		in, err := BlobFrom(newHTTPResponse(http.StatusNotFound, "application/xml", blobNotFoundXML))
		require.NoError(t, err)
		_, _ = in.AddMessage("Operation", "download")

		out, err := ValueResponseFromFailure[[]byte, *BlobStorageResponse](in)
		require.NoError(t, err)
		require.True(t, out.IsFailure())
		require.True(t, out.HasAzureResponse())
		require.Equal(t, []string{"Operation"}, out.Messages().Keys())
	})

	t.Run("FromCoreResult", func(t *testing.T) {
		cause := errors.New("boom")
		in := response.Must(response.FailedFrom(cause))

		out, err := ValueResponseFromFailure[int, *TableServiceResponse](in)
		require.NoError(t, err)
		require.Same(t, cause, out.Err())
		require.False(t, out.HasAzureResponse())
	})

	t.Run("RejectsNonFailure", func(t *testing.T) {
		_, err := ValueResponseFromFailure[int, *BlobStorageResponse](BlobSuccessful())
		require.ErrorIs(t, err, response.ErrInvalidArgument)
	})
}

func Test_MapValueFromFailure(t *testing.T) {
	in := BlobFailureValue[string]()
	_, _ = in.AddMessage("K", "v")

	out, err := MapValueFromFailure[string, int](in)
	require.NoError(t, err)
	require.True(t, out.IsFailure())
	require.Equal(t, []string{"K"}, out.Messages().Keys())
}

func Test_ResponseFromFailure(t *testing.T) {
	in, err := BlobValueFrom[[]byte](newHTTPResponse(http.StatusNotFound, "application/xml", blobNotFoundXML), nil)
	require.NoError(t, err)

	out, err := ResponseFromFailure[*BlobStorageResponse](in)
	require.NoError(t, err)
	require.True(t, out.IsFailure())
	require.True(t, out.HasAzureResponse())

	_, err = ResponseFromFailure[*BlobStorageResponse](BlobSuccessful())
	require.ErrorIs(t, err, response.ErrInvalidArgument)
}

func Test_ValueResponse_BuildVerbose(t *testing.T) {
	r, err := TableValueFrom(newHTTPResponse(http.StatusOK, "", ""), 3)
	require.NoError(t, err)

	keys := r.BuildVerbose().Keys()
	require.Equal(t, []string{response.VerboseHasValue, response.VerboseValueType, response.VerboseValue}, keys[len(keys)-3:])
	require.Contains(t, keys, VerboseHasAzureResponse)
}

func Test_MapValueWith_Ignore(t *testing.T) {
	in, err := TableSuccessfulValue(1)
	require.NoError(t, err)
	_, _ = in.AddMessage("K", "first")

	out, err := MapValueWith(in, func(v int) int { return v + 1 }, messages.Ignore)
	require.NoError(t, err)
	value, _ := out.Messages().Get("K")
	require.Equal(t, "first", value)
	require.Equal(t, 2, out.Value())
}
