// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package naming validates the names of storage resources before they are sent to the service.
package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

// ErrInvalidName is matched by every error returned from this package.
var ErrInvalidName = errors.New("invalid name")

// Kind is the storage resource a name belongs to.
type Kind string

const (
	Table         Kind = "table"
	BlobContainer Kind = "blob container"
	Blob          Kind = "blob"
	PartitionKey  Kind = "partition key"
	RowKey        Kind = "row key"
)

const (
	minTableNameLength     = 3
	maxTableNameLength     = 63
	minContainerNameLength = 3
	maxContainerNameLength = 63
	maxBlobNameLength      = 1024
	maxBlobSegments        = 254
)

// reservedTableNames cannot be created by clients.
var reservedTableNames = map[string]struct{}{
	"tables": {},
}

var (
	tableNameRegex     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
	containerNameRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
	// the service rejects these characters in partition and row keys
	invalidKeyChars = "/\\#?"
)

// NameError describes why a name was rejected.
type NameError struct {
	Kind   Kind
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("the name of the %s %q is not valid: %s", e.Kind, e.Name, e.Reason)
}

func (e *NameError) Is(target error) bool {
	return target == ErrInvalidName
}

func invalid(kind Kind, name, format string, args ...any) error {
	return &NameError{Kind: kind, Name: name, Reason: fmt.Sprintf(format, args...)}
}

// ValidateTableName checks a table name: 3 to 63 alphanumeric characters starting with a letter,
// and not a reserved name.
func ValidateTableName(name string) error {
	if name == "" {
		return invalid(Table, name, "the name is empty")
	}
	if _, reserved := reservedTableNames[strings.ToLower(name)]; reserved {
		return invalid(Table, name, "the name is reserved")
	}
	if len(name) < minTableNameLength || len(name) > maxTableNameLength {
		return invalid(Table, name, "table names must be from %d to %d characters long",
			minTableNameLength, maxTableNameLength)
	}
	if !tableNameRegex.MatchString(name) {
		return invalid(Table, name, "table names must begin with a letter and may contain only alphanumeric characters")
	}

	return nil
}

// ValidateBlobContainerName checks a container name: 3 to 63 lowercase letters, digits and
// single hyphens, starting and ending with a letter or digit.
func ValidateBlobContainerName(name string) error {
	if name == "" {
		return invalid(BlobContainer, name, "the name is empty")
	}
	if len(name) < minContainerNameLength || len(name) > maxContainerNameLength {
		return invalid(BlobContainer, name, "container names must be from %d to %d characters long",
			minContainerNameLength, maxContainerNameLength)
	}
	if !containerNameRegex.MatchString(name) {
		return invalid(BlobContainer, name,
			"container names must be lowercase and start and end with a letter or digit")
	}
	if strings.Contains(name, "--") {
		return invalid(BlobContainer, name, "container names cannot contain consecutive hyphens")
	}

	return nil
}

// ValidateBlobName checks a blob name, including its virtual directories. Names are 1 to 1024
// characters long, and no path segment may consist only of dots.
func ValidateBlobName(name string) error {
	if name == "" {
		return invalid(Blob, name, "the name is empty")
	}
	if len(name) > maxBlobNameLength {
		return invalid(Blob, name, "blob names must be from 1 to %d characters long", maxBlobNameLength)
	}

	segments := strings.Split(name, "/")
	if len(segments) > maxBlobSegments {
		return invalid(Blob, name, "blob names cannot have more than %d path segments", maxBlobSegments)
	}
	for _, segment := range segments {
		if segment != "" && strings.Trim(segment, ".") == "" {
			return invalid(Blob, name, "the path segment %q consists only of dots", segment)
		}
	}

	return nil
}

// ValidateBlobPath checks a container name and a blob name together. All violations are returned.
func ValidateBlobPath(containerName, blobName string) error {
	return multierr.Combine(
		ValidateBlobContainerName(containerName),
		ValidateBlobName(blobName),
	)
}

// ValidateEntityKeys checks the partition and row keys of a table entity. All violations are
// returned.
func ValidateEntityKeys(partitionKey, rowKey string) error {
	return multierr.Combine(
		validateKey(PartitionKey, partitionKey),
		validateKey(RowKey, rowKey),
	)
}

func validateKey(kind Kind, key string) error {
	if key == "" {
		return invalid(kind, key, "the key is empty")
	}
	if i := strings.IndexAny(key, invalidKeyChars); i >= 0 {
		return invalid(kind, key, "the character %q is not allowed", key[i])
	}
	for _, r := range key {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return invalid(kind, key, "control characters are not allowed")
		}
	}

	return nil
}
