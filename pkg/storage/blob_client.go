// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package storage

import (
	"context"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/pkg/errors"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/internal/tracing/fields"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/azresponse"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/azsdk"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/naming"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

// Message keys added to blob results.
const (
	MessageContainerAlreadyExists = string(bloberror.ContainerAlreadyExists)
	MessageBlobNotFound           = string(bloberror.BlobNotFound)
)

// BlobClient manages the blobs of one container.
type BlobClient struct {
	config  AccountConfig
	client  *azblob.Client
	options options
}

// NewBlobClient creates a BlobClient for config.ContainerName. A nil credential creates a client for
// anonymous or SAS access. builder may be nil.
func NewBlobClient(
	config AccountConfig,
	credential azcore.TokenCredential,
	builder *azsdk.ClientOptionsBuilder,
	opts ...Option,
) (*BlobClient, error) {
	if err := naming.ValidateBlobContainerName(config.ContainerName); err != nil {
		return nil, err
	}

	serviceURL, err := config.blobServiceURL()
	if err != nil {
		return nil, err
	}

	if builder == nil {
		builder = azsdk.NewClientOptionsBuilder()
	}
	clientOptions := builder.BuildBlobClientOptions()

	var client *azblob.Client
	if credential == nil {
		client, err = azblob.NewClientWithNoCredential(serviceURL, clientOptions)
	} else {
		client, err = azblob.NewClient(serviceURL, credential, clientOptions)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create blob client")
	}

	return &BlobClient{
		config:  config,
		client:  client,
		options: newOptions(opts),
	}, nil
}

// ContainerName returns the container the client works on.
func (bc *BlobClient) ContainerName() string {
	return bc.config.ContainerName
}

// EnsureContainer creates the container. An existing container is reported as a Warning. While a
// container with the same name is being deleted the creation is retried.
func (bc *BlobClient) EnsureContainer(ctx context.Context) *azresponse.BlobResponse {
	const operation = "blob.ensureContainer"
	ctx, span := bc.options.start(ctx, operation, fields.StringHashed(fields.StorageContainer.Key, bc.config.ContainerName))

	var raw *http.Response
	err := bc.options.createWhileBeingDeleted(ctx,
		func(err error) bool { return bloberror.HasCode(err, bloberror.ContainerBeingDeleted) },
		func(ctx context.Context) error {
			_, err := bc.client.CreateContainer(runtime.WithCaptureResponse(ctx, &raw), bc.config.ContainerName, nil)
			return err
		})

	var r *azresponse.BlobResponse
	if err != nil && bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		r = response.Must(azresponse.NewResponse[*azresponse.BlobStorageResponse](response.Warning))
		r.Messages().AddOrRename(MessageContainerAlreadyExists, bc.config.ContainerName)
	} else {
		r = blobResult(raw, wrap(err, "failed to create container '%s'", bc.config.ContainerName))
	}

	bc.options.finish(span, operation, r)
	return r
}

// Upload writes data to the blob, replacing any existing content.
func (bc *BlobClient) Upload(ctx context.Context, blobName string, data []byte) *azresponse.BlobResponse {
	const operation = "blob.upload"
	if err := naming.ValidateBlobPath(bc.config.ContainerName, blobName); err != nil {
		return response.Must(azresponse.BlobFailureFrom(err))
	}

	ctx, span := bc.options.start(ctx, operation, fields.StringHashed(fields.StorageContainer.Key, bc.config.ContainerName))

	var raw *http.Response
	_, err := bc.client.UploadBuffer(runtime.WithCaptureResponse(ctx, &raw), bc.config.ContainerName, blobName, data, nil)
	r := blobResult(raw, wrap(err, "failed to upload blob '%s'", blobName))

	bc.options.finish(span, operation, r)
	return r
}

// Download reads the content of the blob.
func (bc *BlobClient) Download(ctx context.Context, blobName string) *azresponse.BlobValueResponse[[]byte] {
	const operation = "blob.download"
	if err := naming.ValidateBlobPath(bc.config.ContainerName, blobName); err != nil {
		return response.Must(azresponse.BlobFailureValueFrom[[]byte](err))
	}

	ctx, span := bc.options.start(ctx, operation, fields.StringHashed(fields.StorageContainer.Key, bc.config.ContainerName))

	var raw *http.Response
	var content []byte
	resp, err := bc.client.DownloadStream(runtime.WithCaptureResponse(ctx, &raw), bc.config.ContainerName, blobName, nil)
	if err == nil {
		content, err = readAll(resp.Body)
	}
	r := blobValueResult(raw, content, wrap(err, "failed to download blob '%s'", blobName))

	bc.options.finish(span, operation, r)
	return r
}

// Delete removes the blob and its snapshots.
func (bc *BlobClient) Delete(ctx context.Context, blobName string) *azresponse.BlobResponse {
	const operation = "blob.delete"
	if err := naming.ValidateBlobPath(bc.config.ContainerName, blobName); err != nil {
		return response.Must(azresponse.BlobFailureFrom(err))
	}

	ctx, span := bc.options.start(ctx, operation, fields.StringHashed(fields.StorageContainer.Key, bc.config.ContainerName))

	var raw *http.Response
	_, err := bc.client.DeleteBlob(runtime.WithCaptureResponse(ctx, &raw), bc.config.ContainerName, blobName,
		&azblob.DeleteBlobOptions{DeleteSnapshots: to.Ptr(azblob.DeleteSnapshotsOptionTypeInclude)})
	r := blobResult(raw, wrap(err, "failed to delete blob '%s'", blobName))

	bc.options.finish(span, operation, r)
	return r
}

// Items lists up to take blobs whose names begin with prefix.
func (bc *BlobClient) Items(
	ctx context.Context,
	prefix string,
	take int,
) *azresponse.BlobValueResponse[[]*container.BlobItem] {
	const operation = "blob.items"
	if take <= 0 {
		return response.Must(azresponse.BlobFailureValueFrom[[]*container.BlobItem](
			response.NewArgumentError("take", ReasonTakeNotPositive)))
	}

	ctx, span := bc.options.start(ctx, operation, fields.StringHashed(fields.StorageContainer.Key, bc.config.ContainerName))

	var raw *http.Response
	items, err := Take(runtime.WithCaptureResponse(ctx, &raw), bc.listPager(prefix, take), take, blobItems)
	r := blobValueResult(raw, items, wrap(err, "failed to get next page of blobs"))

	bc.options.finish(span, operation, r)
	return r
}

// Find looks up a single blob by name. The result carries the item name and type as messages, or a
// BlobNotFound message and a Warning status when the blob does not exist.
func (bc *BlobClient) Find(ctx context.Context, blobName string) *azresponse.BlobResponse {
	const operation = "blob.find"
	if err := naming.ValidateBlobPath(bc.config.ContainerName, blobName); err != nil {
		return response.Must(azresponse.BlobFailureFrom(err))
	}

	ctx, span := bc.options.start(ctx, operation, fields.StringHashed(fields.StorageContainer.Key, bc.config.ContainerName))

	var raw *http.Response
	items, err := Take(runtime.WithCaptureResponse(ctx, &raw), bc.listPager(blobName, 1), 1, blobItems)

	var r *azresponse.BlobResponse
	switch {
	case err != nil:
		r = blobResult(raw, wrap(err, "failed to find blob '%s'", blobName))
	case len(items) == 0 || items[0].Name == nil || *items[0].Name != blobName:
		r = response.Must(azresponse.NewResponse[*azresponse.BlobStorageResponse](response.Warning))
		r.Messages().AddOrRename(MessageBlobNotFound, blobName)
	default:
		var ferr error
		if r, ferr = azresponse.BlobFromItem(raw, items[0]); ferr != nil {
			r = response.Must(azresponse.BlobFailureFrom(ferr))
		}
	}

	bc.options.finish(span, operation, r)
	return r
}

func (bc *BlobClient) listPager(prefix string, take int) *runtime.Pager[azblob.ListBlobsFlatResponse] {
	options := &azblob.ListBlobsFlatOptions{
		MaxResults: to.Ptr(int32(min(take, MaxListResults))),
	}
	if prefix != "" {
		options.Prefix = to.Ptr(prefix)
	}

	return bc.client.NewListBlobsFlatPager(bc.config.ContainerName, options)
}

// MaxListResults is the largest page the blob service returns when listing.
const MaxListResults = 5000

func blobItems(page azblob.ListBlobsFlatResponse) ([]*container.BlobItem, error) {
	if page.Segment == nil {
		return nil, nil
	}
	return page.Segment.BlobItems, nil
}

func readAll(body io.ReadCloser) ([]byte, error) {
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed reading the blob content")
	}
	return content, nil
}

// wrap annotates an SDK error with the operation and captures a stack trace.
func wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
