// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azsdk

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// RetryOptions is the subset of the azcore retry settings exposed through configuration. Zero values
// keep the azcore defaults.
type RetryOptions struct {
	MaxRetries int32
	Delay      time.Duration
	MaxDelay   time.Duration
	TryTimeout time.Duration
}

func (o RetryOptions) isZero() bool {
	return o == RetryOptions{}
}

func (o RetryOptions) toPolicy() policy.RetryOptions {
	return policy.RetryOptions{
		MaxRetries:    o.MaxRetries,
		RetryDelay:    o.Delay,
		MaxRetryDelay: o.MaxDelay,
		TryTimeout:    o.TryTimeout,
	}
}

type ClientOptionsBuilder struct {
	transport        policy.Transporter
	perCallPolicies  []policy.Policy
	perRetryPolicies []policy.Policy
	retry            RetryOptions

	userAgentPolicy   policy.Policy
	correlationPolicy policy.Policy
}

func NewClientOptionsBuilder() *ClientOptionsBuilder {
	return &ClientOptionsBuilder{}
}

// Sets the underlying transport used for executing HTTP requests
func (b *ClientOptionsBuilder) WithTransport(transport policy.Transporter) *ClientOptionsBuilder {
	b.transport = transport
	return b
}

// Sets the user agent to be used for all requests. Set userAgent to "" to not use a user agent policy.
func (b *ClientOptionsBuilder) SetUserAgent(userAgent string) *ClientOptionsBuilder {
	if userAgent == "" {
		b.userAgentPolicy = nil
	} else {
		b.userAgentPolicy = NewUserAgentPolicy(userAgent)
	}
	return b
}

// Sets the context to be used for all requests. Set ctx to nil to not use a correlation policy.
func (b *ClientOptionsBuilder) SetContext(ctx context.Context) *ClientOptionsBuilder {
	if ctx == nil {
		b.correlationPolicy = nil
	} else {
		b.correlationPolicy = NewMsCorrelationPolicy(ctx)
	}
	return b
}

// Sets the retry settings of the pipeline
func (b *ClientOptionsBuilder) WithRetry(retry RetryOptions) *ClientOptionsBuilder {
	b.retry = retry
	return b
}

// Appends per-call policies into the HTTP pipeline
func (b *ClientOptionsBuilder) WithPerCallPolicy(policy policy.Policy) *ClientOptionsBuilder {
	b.perCallPolicies = append(b.perCallPolicies, policy)
	return b
}

// Appends per-retry policies into the HTTP pipeline
func (b *ClientOptionsBuilder) WithPerRetryPolicy(policy policy.Policy) *ClientOptionsBuilder {
	b.perRetryPolicies = append(b.perRetryPolicies, policy)
	return b
}

// Combines the per-call policies with the user agent and correlation policies
func (b *ClientOptionsBuilder) buildPerCallPolicies() []policy.Policy {
	if b.perCallPolicies == nil && b.userAgentPolicy == nil && b.correlationPolicy == nil {
		return nil
	}

	policies := make([]policy.Policy, len(b.perCallPolicies))
	copy(policies, b.perCallPolicies)

	if b.userAgentPolicy != nil {
		policies = append(policies, b.userAgentPolicy)
	}
	if b.correlationPolicy != nil {
		policies = append(policies, b.correlationPolicy)
	}
	return policies
}

// Builds the az core client options shared by the storage clients.
func (b *ClientOptionsBuilder) BuildCoreClientOptions() *azcore.ClientOptions {
	options := &azcore.ClientOptions{
		// Supports mocking for unit tests
		Transport: b.transport,
		// Per request policies to inject into HTTP pipeline
		PerCallPolicies: b.buildPerCallPolicies(),
		// Per retry policies to inject into HTTP pipeline
		PerRetryPolicies: b.perRetryPolicies,
		// Always allow Azure correlation and storage error headers
		Logging: policy.LogOptions{
			AllowedHeaders: []string{MsCorrelationIdHeader, "x-ms-error-code"},
		},
	}

	if !b.retry.isZero() {
		options.Retry = b.retry.toPolicy()
	}

	return options
}

// Builds the blob service client options.
func (b *ClientOptionsBuilder) BuildBlobClientOptions() *azblob.ClientOptions {
	return &azblob.ClientOptions{ClientOptions: *b.BuildCoreClientOptions()}
}

// Builds the table service client options.
func (b *ClientOptionsBuilder) BuildTableClientOptions() *aztables.ClientOptions {
	return &aztables.ClientOptions{ClientOptions: *b.BuildCoreClientOptions()}
}
