// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
)

type TableFormatter struct {
}

type TableFormatterOptions struct {
	// Headings of the key and value columns. Empty headings leave the heading row out.
	KeyHeading   string
	ValueHeading string
	// Highlight decorates each value before it is written. Nil writes values unchanged.
	Highlight func(key, value string) string
}

func (f *TableFormatter) Kind() Format {
	return TableFormat
}

// Format writes a *messages.Bag as two aligned columns, in the order of the bag. Continuation lines of
// multi-line values are indented under the value column.
func (f *TableFormatter) Format(obj interface{}, writer io.Writer, opts interface{}) error {
	bag, ok := obj.(*messages.Bag)
	if !ok || bag == nil {
		return errors.New("table formatter only supports message bags")
	}

	options, _ := opts.(TableFormatterOptions)

	tabs := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	if options.KeyHeading != "" || options.ValueHeading != "" {
		if _, err := fmt.Fprintf(tabs, "%s\t%s\n", options.KeyHeading, options.ValueHeading); err != nil {
			return err
		}
	}

	for key, value := range bag.All() {
		lines := strings.Split(value, "\n")
		for i, line := range lines {
			if options.Highlight != nil && len(lines) == 1 {
				line = options.Highlight(key, line)
			}

			column := key
			if i > 0 {
				column = ""
			}
			if _, err := fmt.Fprintf(tabs, "%s\t%s\n", column, line); err != nil {
				return err
			}
		}
	}

	return tabs.Flush()
}

var _ Formatter = (*TableFormatter)(nil)
