// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package config loads the storage settings used by the command line tools.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/azsdk"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/naming"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/storage"
)

// DefaultUserAgent is sent when the configuration does not set one.
const DefaultUserAgent = "azresp"

// StorageConfig is the YAML document describing a storage account:
//
//	account: ${STORAGE_ACCOUNT}
//	sasToken: ${STORAGE_SAS}
//	container: reports
//	table: orders
//	retry:
//	  maxRetries: 2
//	  delay: 500ms
//
// Account, endpoints and SAS token may reference environment variables.
type StorageConfig struct {
	Account       ExpandableString `yaml:"account"`
	BlobEndpoint  ExpandableString `yaml:"blobEndpoint,omitempty"`
	TableEndpoint ExpandableString `yaml:"tableEndpoint,omitempty"`
	SASToken      ExpandableString `yaml:"sasToken,omitempty"`
	Container     string           `yaml:"container,omitempty"`
	Table         string           `yaml:"table,omitempty"`
	UserAgent     string           `yaml:"userAgent,omitempty"`
	Retry         RetryConfig      `yaml:"retry,omitempty"`
}

// RetryConfig maps onto the azcore retry policy. Durations use the time.ParseDuration syntax.
type RetryConfig struct {
	MaxRetries int32         `yaml:"maxRetries,omitempty"`
	Delay      time.Duration `yaml:"delay,omitempty"`
	MaxDelay   time.Duration `yaml:"maxDelay,omitempty"`
	TryTimeout time.Duration `yaml:"tryTimeout,omitempty"`
}

// Parse reads a StorageConfig from YAML and validates it.
func Parse(yamlContent string) (*StorageConfig, error) {
	if strings.TrimSpace(yamlContent) == "" {
		return nil, fmt.Errorf("unable to parse storage configuration. File is empty.")
	}

	var config StorageConfig
	if err := yaml.Unmarshal([]byte(yamlContent), &config); err != nil {
		return nil, fmt.Errorf("unable to parse storage configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Load reads the storage configuration file at path.
func Load(path string) (*StorageConfig, error) {
	return LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadFS reads the storage configuration file name from fsys.
func LoadFS(fsys fs.FS, name string) (*StorageConfig, error) {
	bytes, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading storage configuration: %w", err)
	}

	config, err := Parse(string(bytes))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	return config, nil
}

// Environment returns the mapping used to expand the configuration. Names are looked up with getenv
// first and then in the dotenv file at envFile. A missing file contributes no values.
func Environment(envFile string, getenv func(string) string) (func(string) string, error) {
	if envFile == "" {
		return getenv, nil
	}

	values, err := godotenv.Read(envFile)
	if errors.Is(err, os.ErrNotExist) {
		return getenv, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading %s: %w", envFile, err)
	}

	return func(name string) string {
		if value := getenv(name); value != "" {
			return value
		}
		return values[name]
	}, nil
}

// Validate checks the parts of the configuration that do not depend on the environment.
func (c *StorageConfig) Validate() error {
	var errs error
	if strings.TrimSpace(c.Account.Template) == "" {
		errs = multierr.Append(errs, fmt.Errorf("'account' is required"))
	}
	if c.Container == "" && c.Table == "" {
		errs = multierr.Append(errs, fmt.Errorf("at least one of 'container' and 'table' is required"))
	}
	if c.Container != "" {
		errs = multierr.Append(errs, naming.ValidateBlobContainerName(c.Container))
	}
	if c.Table != "" {
		errs = multierr.Append(errs, naming.ValidateTableName(c.Table))
	}
	if c.Retry.MaxRetries < -1 {
		errs = multierr.Append(errs, fmt.Errorf("'retry.maxRetries' must be -1 or greater"))
	}
	if c.Retry.Delay < 0 || c.Retry.MaxDelay < 0 || c.Retry.TryTimeout < 0 {
		errs = multierr.Append(errs, fmt.Errorf("retry durations must not be negative"))
	}

	return errs
}

// AccountConfig evaluates the environment references with mapping and returns the account settings
// used by the storage clients.
func (c *StorageConfig) AccountConfig(mapping func(string) string) (storage.AccountConfig, error) {
	var values [4]string
	for i, field := range []struct {
		name  string
		value ExpandableString
	}{
		{"account", c.Account},
		{"blobEndpoint", c.BlobEndpoint},
		{"tableEndpoint", c.TableEndpoint},
		{"sasToken", c.SASToken},
	} {
		value, err := field.value.Envsubst(mapping)
		if err != nil {
			return storage.AccountConfig{}, fmt.Errorf("replacing environment references in '%s': %w", field.name, err)
		}
		values[i] = value
	}

	if values[0] == "" {
		return storage.AccountConfig{}, fmt.Errorf("'account' is empty after replacing environment references")
	}

	return storage.AccountConfig{
		AccountName:   values[0],
		BlobEndpoint:  values[1],
		TableEndpoint: values[2],
		SASToken:      values[3],
		ContainerName: c.Container,
		TableName:     c.Table,
	}, nil
}

// RetryOptions returns the retry settings for the client options builder.
func (c *StorageConfig) RetryOptions() azsdk.RetryOptions {
	return azsdk.RetryOptions{
		MaxRetries: c.Retry.MaxRetries,
		Delay:      c.Retry.Delay,
		MaxDelay:   c.Retry.MaxDelay,
		TryTimeout: c.Retry.TryTimeout,
	}
}

// ClientOptionsBuilder returns the azcore client options described by the configuration. transport
// may be nil to use the default HTTP client.
func (c *StorageConfig) ClientOptionsBuilder(ctx context.Context, transport policy.Transporter) *azsdk.ClientOptionsBuilder {
	userAgent := c.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return azsdk.DefaultClientOptionsBuilder(ctx, transport, userAgent).
		WithRetry(c.RetryOptions())
}
