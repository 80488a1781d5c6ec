// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/internal/tracing/fields"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/azresponse"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/azsdk"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/naming"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/tablequery"
)

// Message keys added to table results.
const (
	MessageEntityNotFound     = "EntityNotFound"
	MessageTableAlreadyExists = string(aztables.TableAlreadyExists)
	MessageAccountName        = "AccountName"
	MessageTableName          = "TableName"
)

// EntityNotFound describes the entity a point query did not find.
func EntityNotFound(partitionKey, rowKey string) string {
	return fmt.Sprintf("The entity with partition key '%s' and row key '%s' was not found.", partitionKey, rowKey)
}

// TableClient manages the entities of one table.
type TableClient struct {
	config  AccountConfig
	client  *aztables.Client
	options options
}

// NewTableClient creates a TableClient for config.TableName. A nil credential creates a client for
// SAS access. builder may be nil.
func NewTableClient(
	config AccountConfig,
	credential azcore.TokenCredential,
	builder *azsdk.ClientOptionsBuilder,
	opts ...Option,
) (*TableClient, error) {
	if err := naming.ValidateTableName(config.TableName); err != nil {
		return nil, err
	}

	tableURL, err := config.tableURL()
	if err != nil {
		return nil, err
	}

	if builder == nil {
		builder = azsdk.NewClientOptionsBuilder()
	}
	clientOptions := builder.BuildTableClientOptions()

	var client *aztables.Client
	if credential == nil {
		client, err = aztables.NewClientWithNoCredential(tableURL, clientOptions)
	} else {
		client, err = aztables.NewClient(tableURL, credential, clientOptions)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create table client")
	}

	return &TableClient{
		config:  config,
		client:  client,
		options: newOptions(opts),
	}, nil
}

// TableName returns the table the client works on.
func (tc *TableClient) TableName() string {
	return tc.config.TableName
}

func (tc *TableClient) attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		fields.StringHashed(fields.StorageAccount.Key, tc.config.AccountName),
		fields.StringHashed(fields.StorageContainer.Key, tc.config.TableName),
	}
}

// describe adds the account and table names to the messages of a failed result.
func (tc *TableClient) describe(r response.Result) {
	if r.Status() != response.Failure {
		return
	}

	r.Messages().AddOrRename(MessageAccountName, tc.config.AccountName)
	r.Messages().AddOrRename(MessageTableName, tc.config.TableName)
}

// CreateTable creates the table. An existing table is reported as a Warning. While a table with the
// same name is being deleted the creation is retried.
func (tc *TableClient) CreateTable(ctx context.Context) *azresponse.TableResponse {
	const operation = "table.create"
	ctx, span := tc.options.start(ctx, operation, tc.attributes()...)

	var raw *http.Response
	err := tc.options.createWhileBeingDeleted(ctx, hasTableErrorCode(aztables.TableBeingDeleted),
		func(ctx context.Context) error {
			_, err := tc.client.CreateTable(runtime.WithCaptureResponse(ctx, &raw), nil)
			return err
		})

	var r *azresponse.TableResponse
	if hasTableErrorCode(aztables.TableAlreadyExists)(err) {
		r = response.Must(azresponse.NewResponse[*azresponse.TableServiceResponse](response.Warning))
		r.Messages().AddOrRename(MessageTableAlreadyExists, tc.config.TableName)
	} else {
		r = tableResult(raw, wrap(err, "failed to create table '%s'", tc.config.TableName))
	}

	tc.describe(r)
	tc.options.finish(span, operation, r)
	return r
}

// AddEntity inserts entity, which must marshal to a JSON object with PartitionKey and RowKey.
func (tc *TableClient) AddEntity(ctx context.Context, entity any) *azresponse.TableResponse {
	return tc.write(ctx, "table.addEntity", entity, func(ctx context.Context, data []byte) error {
		_, err := tc.client.AddEntity(ctx, data, nil)
		return err
	})
}

// UpsertEntity inserts entity or replaces the entity with the same keys.
func (tc *TableClient) UpsertEntity(ctx context.Context, entity any) *azresponse.TableResponse {
	return tc.write(ctx, "table.upsertEntity", entity, func(ctx context.Context, data []byte) error {
		_, err := tc.client.UpsertEntity(ctx, data, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace})
		return err
	})
}

func (tc *TableClient) write(
	ctx context.Context,
	operation string,
	entity any,
	send func(context.Context, []byte) error,
) *azresponse.TableResponse {
	data, err := marshalEntity(entity)
	if err != nil {
		return response.Must(azresponse.TableFailureFrom(err))
	}

	ctx, span := tc.options.start(ctx, operation, tc.attributes()...)

	var raw *http.Response
	err = send(runtime.WithCaptureResponse(ctx, &raw), data)
	r := tableResult(raw, wrap(err, "%s failed on table '%s'", operation, tc.config.TableName))

	tc.describe(r)
	tc.options.finish(span, operation, r)
	return r
}

// DeleteEntity removes the entity with the given keys, whatever its ETag.
func (tc *TableClient) DeleteEntity(ctx context.Context, partitionKey, rowKey string) *azresponse.TableResponse {
	const operation = "table.deleteEntity"
	if err := naming.ValidateEntityKeys(partitionKey, rowKey); err != nil {
		return response.Must(azresponse.TableFailureFrom(err))
	}

	ctx, span := tc.options.start(ctx, operation, tc.attributes()...)

	var raw *http.Response
	_, err := tc.client.DeleteEntity(runtime.WithCaptureResponse(ctx, &raw), partitionKey, rowKey, nil)
	r := tableResult(raw, wrap(err, "failed to delete entity '%s'/'%s'", partitionKey, rowKey))

	tc.describe(r)
	tc.options.finish(span, operation, r)
	return r
}

// GetEntity reads the entity with the given keys into a T.
func GetEntity[T any](
	ctx context.Context,
	tc *TableClient,
	partitionKey, rowKey string,
) *azresponse.TableValueResponse[*T] {
	const operation = "table.getEntity"
	if err := naming.ValidateEntityKeys(partitionKey, rowKey); err != nil {
		return response.Must(azresponse.TableFailureValueFrom[*T](err))
	}

	ctx, span := tc.options.start(ctx, operation, tc.attributes()...)

	var raw *http.Response
	var entity *T
	resp, err := tc.client.GetEntity(runtime.WithCaptureResponse(ctx, &raw), partitionKey, rowKey, nil)
	if err == nil {
		entity, err = decodeEntity[T](resp.Value)
	}
	r := tableValueResult(raw, entity, wrap(err, "failed to get entity '%s'/'%s'", partitionKey, rowKey))

	tc.describe(r)
	tc.options.finish(span, operation, r)
	return r
}

// Query returns up to take entities matching filter. maxPerPage bounds the size of each page and
// must be within 0..1000, where 0 leaves the page size to the service.
func Query[T any](
	ctx context.Context,
	tc *TableClient,
	filter tablequery.Filter,
	take int,
	maxPerPage int32,
) *azresponse.TableValueResponse[[]T] {
	const operation = "table.query"
	if err := validateQuery(take, maxPerPage); err != nil {
		return response.Must(azresponse.TableFailureValueFrom[[]T](err))
	}

	ctx, span := tc.options.start(ctx, operation, tc.attributes()...)

	options := &aztables.ListEntitiesOptions{}
	if !filter.IsEmpty() {
		options.Filter = to.Ptr(filter.String())
	}
	if maxPerPage > 0 {
		options.Top = to.Ptr(maxPerPage)
	}

	var raw *http.Response
	pager := tc.client.NewListEntitiesPager(options)
	entities, err := Take(runtime.WithCaptureResponse(ctx, &raw), pager, take, decodePage[T])
	r := tableValueResult(raw, entities, wrap(err, "failed to query table '%s'", tc.config.TableName))

	tc.describe(r)
	tc.options.finish(span, operation, r)
	return r
}

// QueryAll returns up to take entities of the table.
func QueryAll[T any](ctx context.Context, tc *TableClient, take int) *azresponse.TableValueResponse[[]T] {
	return Query[T](ctx, tc, tablequery.Filter{}, take, MaxPerPage)
}

// QueryByPartitionKey returns up to take entities of one partition.
func QueryByPartitionKey[T any](
	ctx context.Context,
	tc *TableClient,
	partitionKey string,
	take int,
) *azresponse.TableValueResponse[[]T] {
	return Query[T](ctx, tc, tablequery.PartitionKey(tablequery.Equal, partitionKey), take, MaxPerPage)
}

// QueryByPartitionKeyStartPattern returns up to take entities whose partition key begins with
// startPattern.
func QueryByPartitionKeyStartPattern[T any](
	ctx context.Context,
	tc *TableClient,
	startPattern string,
	take int,
) *azresponse.TableValueResponse[[]T] {
	return Query[T](ctx, tc, tablequery.PartitionKeyStartsWith(startPattern), take, MaxPerPage)
}

// QueryByTimestamp returns up to take entities last modified between from and until, both inclusive.
func QueryByTimestamp[T any](
	ctx context.Context,
	tc *TableClient,
	from, until time.Time,
	take int,
) *azresponse.TableValueResponse[[]T] {
	filter := tablequery.Timestamp(tablequery.GreaterThanOrEqual, from).
		And(tablequery.Timestamp(tablequery.LessThan, until.Add(time.Millisecond)))

	return Query[T](ctx, tc, filter, take, MaxPerPage)
}

// QueryByPartitionKeyRowKey finds a single entity by its keys. When nothing matches the result is a
// Warning without a value and with an EntityNotFound message.
func QueryByPartitionKeyRowKey[T any](
	ctx context.Context,
	tc *TableClient,
	partitionKey, rowKey string,
) *azresponse.TableValueResponse[*T] {
	if err := naming.ValidateEntityKeys(partitionKey, rowKey); err != nil {
		return response.Must(azresponse.TableFailureValueFrom[*T](err))
	}

	found := Query[T](ctx, tc, tablequery.PartitionKeyRowKey(partitionKey, rowKey), 1, 1)
	if found.IsFailure() {
		return response.Must(azresponse.MapValueFromFailure[[]T, *T](found))
	}

	entities := found.Value()
	if len(entities) == 0 {
		r := azresponse.TableWarningValue[*T](nil)
		r.Messages().AddOrRename(MessageEntityNotFound, EntityNotFound(partitionKey, rowKey))
		return r
	}

	return response.Must(azresponse.MapValue(found, func(entities []T) *T { return &entities[0] }))
}

func hasTableErrorCode(code aztables.TableErrorCode) func(error) bool {
	return func(err error) bool {
		var respErr *azcore.ResponseError
		return errors.As(err, &respErr) && respErr.ErrorCode == string(code)
	}
}

func marshalEntity(entity any) ([]byte, error) {
	if entity == nil {
		return nil, response.NilArgument("entity")
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal the entity")
	}

	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, response.NewArgumentError("entity", "the entity must marshal to a JSON object")
	}

	keys := gjson.GetManyBytes(data, tablequery.PartitionKeyProperty, tablequery.RowKeyProperty)
	if err := naming.ValidateEntityKeys(keys[0].String(), keys[1].String()); err != nil {
		return nil, err
	}

	return data, nil
}

func decodeEntity[T any](data []byte) (*T, error) {
	entity := new(T)
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, errors.Wrap(err, "failed to decode the entity")
	}
	return entity, nil
}

func decodePage[T any](page aztables.ListEntitiesResponse) ([]T, error) {
	entities := make([]T, 0, len(page.Entities))
	for _, data := range page.Entities {
		entity, err := decodeEntity[T](data)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, nil
}
