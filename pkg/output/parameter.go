// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

const outputFlagName = "output"

// AddOutputFlag binds the --output/-o flag to value and documents the supported formats.
func AddOutputFlag(f *pflag.FlagSet, value *string, supportedFormats []Format, defaultFormat Format) {
	formatNames := make([]string, len(supportedFormats))
	for i, format := range supportedFormats {
		formatNames[i] = string(format)
	}

	description := fmt.Sprintf("The output format (the supported formats are %s).", strings.Join(formatNames, ", "))
	f.StringVarP(value, outputFlagName, "o", string(defaultFormat), description)
}

// ResolveFormatter returns the formatter for value, which must be one of supportedFormats.
func ResolveFormatter(value string, supportedFormats []Format) (Formatter, error) {
	desired := Format(strings.ToLower(strings.TrimSpace(value)))
	if !slices.Contains(supportedFormats, desired) {
		return nil, fmt.Errorf("unsupported format '%s'", desired)
	}

	return NewFormatter(string(desired))
}
