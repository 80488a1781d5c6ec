// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azsdk

import (
	"context"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"go.opentelemetry.io/otel/trace"
)

// MsCorrelationIdHeader carries the trace ID of the caller to the service.
const MsCorrelationIdHeader = "x-ms-correlation-request-id"

// ClientRequestIdHeader is echoed back by the storage services in their responses.
const ClientRequestIdHeader = "x-ms-client-request-id"

// noOpPolicy is used when no trace context exists.
type noOpPolicy struct {
}

func (p *noOpPolicy) Do(req *policy.Request) (*http.Response, error) {
	return req.Next()
}

// correlationPolicy sets a correlation ID HTTP header.
type correlationPolicy struct {
	correlationId string
	header        string
}

func (p *correlationPolicy) Do(req *policy.Request) (*http.Response, error) {
	rawRequest := req.Raw()
	rawRequest.Header.Set(p.header, p.correlationId)

	return req.Next()
}

// NewMsCorrelationPolicy creates a policy that sets the Microsoft correlation ID header on HTTP requests.
//
// Correlation IDs are taken from the existing trace context. If no trace context exists, then this policy is a no-op.
func NewMsCorrelationPolicy(ctx context.Context) policy.Policy {
	return newCorrelationPolicy(ctx, MsCorrelationIdHeader)
}

// NewClientRequestIdPolicy creates a policy that sets the client request ID header from the trace context, so
// that storage diagnostics logs can be joined with the caller's traces.
func NewClientRequestIdPolicy(ctx context.Context) policy.Policy {
	return newCorrelationPolicy(ctx, ClientRequestIdHeader)
}

func newCorrelationPolicy(ctx context.Context, header string) policy.Policy {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return &noOpPolicy{}
	}

	return &correlationPolicy{
		correlationId: spanCtx.TraceID().String(),
		header:        header,
	}
}
