// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package fields provides the telemetry attribute keys recorded for storage results.
package fields

import (
	"go.opentelemetry.io/otel/attribute"
)

// AttributeKey represents an attribute key with additional metadata.
type AttributeKey struct {
	attribute.Key
	Classification Classification
	Purpose        Purpose
}

type Classification string

const (
	SystemMetadata                  Classification = "SystemMetadata"
	CallstackOrException            Classification = "CallstackOrException"
	CustomerContent                 Classification = "CustomerContent"
	EndUserPseudonymizedInformation Classification = "EndUserPseudonymizedInformation"
)

type Purpose string

const (
	FeatureInsight       Purpose = "FeatureInsight"
	PerformanceAndHealth Purpose = "PerformanceAndHealth"
)

// Result related fields.
var (
	// Status of the result: Success, Warning or Failure.
	ResultStatus = AttributeKey{
		Key:            attribute.Key("result.status"),
		Classification: SystemMetadata,
		Purpose:        PerformanceAndHealth,
	}

	// Whether the result carries a value.
	ResultHasValue = AttributeKey{
		Key:            attribute.Key("result.hasValue"),
		Classification: SystemMetadata,
		Purpose:        FeatureInsight,
	}

	// Number of messages attached to the result.
	ResultMessageCount = AttributeKey{
		Key:            attribute.Key("result.messageCount"),
		Classification: SystemMetadata,
		Purpose:        FeatureInsight,
	}
)

// Error related fields
var (
	// Error code that describes an error.
	ErrCode = AttributeKey{
		Key:            attribute.Key("error.code"),
		Classification: SystemMetadata,
		Purpose:        PerformanceAndHealth,
	}

	// Type of the error attached to a result.
	ErrType = AttributeKey{
		Key:            attribute.Key("error.type"),
		Classification: CallstackOrException,
		Purpose:        PerformanceAndHealth,
	}
)

// Service related fields.
var (
	// Name of the storage service: "blob" or "table".
	ServiceName = AttributeKey{
		Key:            attribute.Key("service.name"),
		Classification: SystemMetadata,
		Purpose:        PerformanceAndHealth,
	}

	// Status code of a response returned by the service.
	// For HTTP, this corresponds to the HTTP status code.
	ServiceStatusCode = AttributeKey{
		Key:            attribute.Key("service.statusCode"),
		Classification: SystemMetadata,
		Purpose:        PerformanceAndHealth,
	}

	// An error code returned by the service in a response.
	// For HTTP, the error code can be found in the response header or body.
	ServiceErrorCode = AttributeKey{
		Key:            attribute.Key("service.errorCode"),
		Classification: SystemMetadata,
		Purpose:        PerformanceAndHealth,
	}
)

// Storage related fields.
var (
	// Hashed name of the storage account.
	StorageAccount = AttributeKey{
		Key:            attribute.Key("storage.account"),
		Classification: EndUserPseudonymizedInformation,
		Purpose:        FeatureInsight,
	}

	// Hashed name of the blob container or table.
	StorageContainer = AttributeKey{
		Key:            attribute.Key("storage.container"),
		Classification: CustomerContent,
		Purpose:        FeatureInsight,
	}

	// Operation performed against the service, e.g. "blob.upload".
	StorageOperation = AttributeKey{
		Key:            attribute.Key("storage.operation"),
		Classification: SystemMetadata,
		Purpose:        FeatureInsight,
	}
)
