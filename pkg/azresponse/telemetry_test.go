// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/internal/tracing/fields"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

func attributeMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, attr := range attrs {
		m[attr.Key] = attr.Value
	}
	return m
}

func Test_Attributes(t *testing.T) {
	t.Run("BlobFailure", func(t *testing.T) {
		r, err := BlobFrom(newHTTPResponse(http.StatusNotFound, "application/xml", blobNotFoundXML))
		require.NoError(t, err)

		attrs := attributeMap(Attributes(r))
		require.Equal(t, "Failure", attrs[fields.ResultStatus.Key].AsString())
		require.Equal(t, "blob", attrs[fields.ServiceName.Key].AsString())
		require.Equal(t, int64(http.StatusNotFound), attrs[fields.ServiceStatusCode.Key].AsInt64())
		require.Equal(t, "BlobNotFound", attrs[fields.ServiceErrorCode.Key].AsString())
	})

	t.Run("ValueSuccess", func(t *testing.T) {
		r, err := TableValueFrom(newHTTPResponse(http.StatusOK, "", ""), "entity")
		require.NoError(t, err)

		attrs := attributeMap(Attributes(r))
		require.Equal(t, "Success", attrs[fields.ResultStatus.Key].AsString())
		require.True(t, attrs[fields.ResultHasValue.Key].AsBool())
		require.Equal(t, "table", attrs[fields.ServiceName.Key].AsString())
		require.NotContains(t, attrs, fields.ServiceErrorCode.Key)
	})

	t.Run("CoreResultWithRequestFailed", func(t *testing.T) {
		r := response.Must(response.FailedFrom(NewRequestFailedError(http.StatusConflict, "TableAlreadyExists", "exists", nil)))

		attrs := attributeMap(Attributes(r))
		require.Equal(t, int64(http.StatusConflict), attrs[fields.ServiceStatusCode.Key].AsInt64())
		require.Equal(t, "TableAlreadyExists", attrs[fields.ServiceErrorCode.Key].AsString())
		require.Equal(t, "*azresponse.RequestFailedError", attrs[fields.ErrType.Key].AsString())
	})

	t.Run("Nil", func(t *testing.T) {
		require.Nil(t, Attributes(nil))
	})
}

func Test_RecordSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanRecorder(recorder))
	tracer := provider.Tracer("azresponse")

	t.Run("Failure", func(t *testing.T) {
		cause := NewRequestFailedError(http.StatusNotFound, "BlobNotFound", "The specified blob does not exist.", nil)
		r, err := BlobFromError(cause)
		require.NoError(t, err)

		_, span := tracer.Start(context.Background(), "blob.download")
		RecordSpan(span, r)
		span.End()

		ended := recorder.Ended()
		require.NotEmpty(t, ended)
		recorded := ended[len(ended)-1]

		require.Equal(t, codes.Error, recorded.Status().Code)
		require.Equal(t, "The specified blob does not exist.", recorded.Status().Description)

		attrs := attributeMap(recorded.Attributes())
		require.Equal(t, "service.blob.404", attrs[fields.ErrCode.Key].AsString())
		require.Equal(t, "BlobNotFound", attrs[fields.ServiceErrorCode.Key].AsString())
		require.NotEmpty(t, recorded.Events())
	})

	t.Run("Success", func(t *testing.T) {
		_, span := tracer.Start(context.Background(), "blob.upload")
		RecordSpan(span, BlobSuccessful())
		span.End()

		ended := recorder.Ended()
		recorded := ended[len(ended)-1]
		require.Equal(t, codes.Unset, recorded.Status().Code)
		require.Equal(t, "Success", attributeMap(recorded.Attributes())[fields.ResultStatus.Key].AsString())
	})

	t.Run("FailureWithoutService", func(t *testing.T) {
		_, span := tracer.Start(context.Background(), "local")
		RecordSpan(span, response.Failed())
		span.End()

		ended := recorder.Ended()
		recorded := ended[len(ended)-1]
		require.Equal(t, codes.Error, recorded.Status().Code)
		require.Equal(t, "result.failure", attributeMap(recorded.Attributes())[fields.ErrCode.Key].AsString())
	})
}
