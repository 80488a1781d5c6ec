// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package storage wraps the blob and table SDK clients so that every call returns an azresponse
// result instead of a bare error.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/internal/tracing/fields"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/azresponse"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

const (
	DefaultBlobEndpoint  = "blob.core.windows.net"
	DefaultTableEndpoint = "table.core.windows.net"

	// DefaultTake is the number of items a query returns when the caller does not say otherwise.
	DefaultTake = 1000
	// MaxPerPage is the largest page the table service returns.
	MaxPerPage = 1000

	tracerName = "github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/storage"
)

// Reasons reported when a query argument is rejected.
const (
	ReasonTakeNotPositive      = "the parameter 'take' must be greater than zero"
	ReasonMaxPerPageOutOfRange = "the parameter 'maxPerPage' is out of range. " +
		"The value of 'maxPerPage' must be between 0 and 1000"
)

// AccountConfig contains the configuration for connecting to a storage account
type AccountConfig struct {
	AccountName string
	// BlobEndpoint and TableEndpoint are either a DNS suffix appended to the account name or a full
	// service URL, as used by the storage emulator.
	BlobEndpoint  string
	TableEndpoint string
	// SASToken is appended to every service URL when set.
	SASToken string

	ContainerName string
	TableName     string
}

func (c AccountConfig) blobServiceURL() (string, error) {
	return serviceURL(c.AccountName, c.BlobEndpoint, DefaultBlobEndpoint, c.SASToken)
}

func (c AccountConfig) tableURL() (string, error) {
	base, err := serviceURL(c.AccountName, c.TableEndpoint, DefaultTableEndpoint, "")
	if err != nil {
		return "", err
	}

	tableURL, err := url.JoinPath(base, c.TableName)
	if err != nil {
		return "", fmt.Errorf("invalid table URL: %w", err)
	}

	return withSAS(tableURL, c.SASToken), nil
}

func serviceURL(account, endpoint, defaultEndpoint, sas string) (string, error) {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	if strings.Contains(endpoint, "://") {
		if _, err := url.Parse(endpoint); err != nil {
			return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
		}
		return withSAS(strings.TrimSuffix(endpoint, "/")+"/", sas), nil
	}

	if account == "" {
		return "", fmt.Errorf("the account name is required with endpoint %q", endpoint)
	}

	return withSAS(fmt.Sprintf("https://%s.%s/", account, endpoint), sas), nil
}

func withSAS(serviceURL, sas string) string {
	sas = strings.TrimPrefix(sas, "?")
	if sas == "" {
		return serviceURL
	}
	return serviceURL + "?" + sas
}

// Option configures a storage client.
type Option func(*options)

type options struct {
	logger          *zap.Logger
	tracer          trace.Tracer
	deletionBackoff func() retry.Backoff
}

func defaultDeletionBackoff() retry.Backoff {
	return retry.WithCappedDuration(30*time.Second, retry.WithMaxRetries(5, retry.NewExponential(time.Second)))
}

func newOptions(opts []Option) options {
	o := options{
		logger:          zap.NewNop(),
		tracer:          otel.Tracer(tracerName),
		deletionBackoff: defaultDeletionBackoff,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger failed calls are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracerProvider sets the provider of the tracer each call is recorded with.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *options) {
		if provider != nil {
			o.tracer = provider.Tracer(tracerName)
		}
	}
}

// WithDeletionBackoff sets the backoff used while a container or table with the same name is still
// being deleted by the service. newBackoff is called once per operation.
func WithDeletionBackoff(newBackoff func() retry.Backoff) Option {
	return func(o *options) {
		if newBackoff != nil {
			o.deletionBackoff = newBackoff
		}
	}
}

// createWhileBeingDeleted calls create until it no longer fails with an error isBeingDeleted accepts,
// or the deletion backoff gives up. The last error is returned.
func (o options) createWhileBeingDeleted(
	ctx context.Context,
	isBeingDeleted func(error) bool,
	create func(context.Context) error,
) error {
	return retry.Do(ctx, o.deletionBackoff(), func(ctx context.Context) error {
		err := create(ctx)
		if err != nil && isBeingDeleted(err) {
			o.logger.Debug("waiting for a pending deletion", zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
}

// start opens the span of a storage operation.
func (o options) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, fields.StorageOperation.String(operation))
	return o.tracer.Start(ctx, operation, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(attrs...))
}

// finish records r on span, ends it and logs r when it is not a Success.
func (o options) finish(span trace.Span, operation string, r response.Result) {
	azresponse.RecordSpan(span, r)
	span.End()

	switch r.Status() {
	case response.Failure:
		o.logger.Debug("storage call failed",
			zap.String(fields.StorageOperation.Key.String(), operation),
			zap.Object("response", r.BuildVerbose()))
	case response.Warning:
		o.logger.Debug("storage call completed with warnings",
			zap.String(fields.StorageOperation.Key.String(), operation),
			zap.Object("messages", r.Messages()))
	}
}

func validateQuery(take int, maxPerPage int32) error {
	if take <= 0 {
		return response.NewArgumentError("take", ReasonTakeNotPositive)
	}
	if maxPerPage < 0 || maxPerPage > MaxPerPage {
		return response.NewArgumentError("maxPerPage", ReasonMaxPerPageOutOfRange)
	}
	return nil
}
