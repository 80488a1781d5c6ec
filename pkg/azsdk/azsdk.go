// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package azsdk assembles azcore client options for the storage clients.
package azsdk

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// DefaultClientOptionsBuilder returns a builder with the given transport, user agent and the correlation
// policy for ctx.
func DefaultClientOptionsBuilder(
	ctx context.Context,
	transport policy.Transporter,
	userAgent string,
) *ClientOptionsBuilder {
	return NewClientOptionsBuilder().
		WithTransport(transport).
		SetUserAgent(userAgent).
		SetContext(ctx)
}
