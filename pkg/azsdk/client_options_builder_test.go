// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azsdk

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/internal/mocks/mockhttp"
)

func TestCreateCoreOptions(t *testing.T) {
	t.Run("WithDefaults", func(t *testing.T) {
		coreOptions := NewClientOptionsBuilder().BuildCoreClientOptions()

		require.Nil(t, coreOptions.Transport)
		require.Nil(t, coreOptions.PerCallPolicies)
		require.Equal(t, policy.RetryOptions{}, coreOptions.Retry)
	})

	t.Run("WithOverrides", func(t *testing.T) {
		transport := mockhttp.NewMockHttpClient()
		testPolicy := &testPolicy{}

		coreOptions := NewClientOptionsBuilder().
			WithTransport(transport).
			WithPerCallPolicy(testPolicy).
			SetUserAgent("custom-user-agent").
			WithRetry(RetryOptions{MaxRetries: 2, Delay: time.Second}).
			BuildCoreClientOptions()

		require.Same(t, transport, coreOptions.Transport)
		require.Len(t, coreOptions.PerCallPolicies, 2)
		require.Same(t, testPolicy, coreOptions.PerCallPolicies[0])
		require.Equal(t, int32(2), coreOptions.Retry.MaxRetries)
		require.Equal(t, time.Second, coreOptions.Retry.RetryDelay)
	})

	t.Run("StorageOptions", func(t *testing.T) {
		transport := mockhttp.NewMockHttpClient()
		builder := NewClientOptionsBuilder().WithTransport(transport)

		require.Same(t, transport, builder.BuildBlobClientOptions().Transport)
		require.Same(t, transport, builder.BuildTableClientOptions().Transport)
	})
}

func TestPipelinePolicies(t *testing.T) {
	provider := sdktrace.NewTracerProvider()
	ctx, span := provider.Tracer("azsdk").Start(context.Background(), "request")
	defer span.End()

	transport := mockhttp.NewMockHttpClient()
	transport.When(mockhttp.Method(http.MethodGet, "/")).RespondFn(mockhttp.WithStatus(http.StatusOK, nil))

	options := DefaultClientOptionsBuilder(ctx, transport, "storage-results/1.0").
		WithPerCallPolicy(NewClientRequestIdPolicy(ctx)).
		BuildCoreClientOptions()

	pipeline := runtime.NewPipeline("azsdk", "v0.0.1", runtime.PipelineOptions{}, options)
	req, err := runtime.NewRequest(ctx, http.MethodGet, "https://account.blob.core.windows.net/")
	require.NoError(t, err)

	_, err = pipeline.Do(req)
	require.NoError(t, err)

	sent := transport.Requests()
	require.Len(t, sent, 1)

	traceID := span.SpanContext().TraceID().String()
	require.Equal(t, traceID, sent[0].Header.Get(MsCorrelationIdHeader))
	require.Equal(t, traceID, sent[0].Header.Get(ClientRequestIdHeader))
	require.Contains(t, sent[0].Header.Get(userAgentHeaderName), "storage-results/1.0")
}

func TestCorrelationPolicyWithoutTrace(t *testing.T) {
	require.IsType(t, &noOpPolicy{}, NewMsCorrelationPolicy(context.Background()))
}

type testPolicy struct {
}

func (p *testPolicy) Do(req *policy.Request) (*http.Response, error) {
	return req.Next()
}
