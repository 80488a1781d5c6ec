// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azresponse

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/internal/tracing/fields"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/errchain"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

type nativeCarrier interface {
	nativeResponse() (AzureResponse, bool)
}

type serviceErrorCoder interface {
	ServiceErrorCode() string
}

type valueCarrier interface {
	HasValue() bool
}

// Attributes returns the telemetry attributes describing r.
func Attributes(r response.Result) []attribute.KeyValue {
	if r == nil {
		return nil
	}

	attrs := []attribute.KeyValue{
		fields.ResultStatus.String(r.Status().String()),
		fields.ResultMessageCount.Int(r.Messages().Len()),
	}

	if v, ok := r.(valueCarrier); ok {
		attrs = append(attrs, fields.ResultHasValue.Bool(v.HasValue()))
	}

	var statusCode int
	var errorCode string
	if carrier, ok := r.(nativeCarrier); ok {
		if native, has := carrier.nativeResponse(); has {
			statusCode = native.StatusCode()
			attrs = append(attrs, fields.ServiceName.String(serviceName(native)))
			if coder, ok := native.(serviceErrorCoder); ok {
				errorCode = coder.ServiceErrorCode()
			}
		}
	}

	if err := r.Err(); err != nil {
		attrs = append(attrs, fields.ErrType.String(errchain.TypeName(err)))
		if requestFailed, ok := AsRequestFailed(err); ok {
			if statusCode == 0 {
				statusCode = requestFailed.StatusCode
			}
			if errorCode == "" {
				errorCode = requestFailed.ErrorCode
			}
		}
	}

	if statusCode > 0 {
		attrs = append(attrs, fields.ServiceStatusCode.Int(statusCode))
	}
	if errorCode != "" {
		attrs = append(attrs, fields.ServiceErrorCode.String(errorCode))
	}

	return attrs
}

// RecordSpan sets the attributes of r on span. A Failure marks the span as failed.
func RecordSpan(span trace.Span, r response.Result) {
	if span == nil || r == nil {
		return
	}

	attrs := Attributes(r)
	if r.Status() != response.Failure {
		span.SetAttributes(attrs...)
		return
	}

	errCode := errorCode(attrs)
	span.SetAttributes(append(attrs, fields.ErrCode.String(errCode))...)

	description := errCode
	if err := r.Err(); err != nil {
		span.RecordError(err)
		description = err.Error()
	}
	span.SetStatus(codes.Error, description)
}

// errorCode classifies a failure as "service.<name>.<status>", or "result.failure" when no service
// call is involved.
func errorCode(attrs []attribute.KeyValue) string {
	name := "other"
	statusCode := int64(-1)
	hasService := false
	for _, attr := range attrs {
		switch attr.Key {
		case fields.ServiceName.Key:
			name = attr.Value.AsString()
			hasService = true
		case fields.ServiceStatusCode.Key:
			statusCode = attr.Value.AsInt64()
			hasService = true
		}
	}

	if !hasService {
		return "result.failure"
	}

	return fmt.Sprintf("service.%s.%d", name, statusCode)
}

func serviceName(native AzureResponse) string {
	switch native.(type) {
	case *BlobStorageResponse:
		return "blob"
	case *TableServiceResponse:
		return "table"
	default:
		return "other"
	}
}
