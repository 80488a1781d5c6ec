// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"encoding/json"
	"io"
)

type JsonFormatter struct {
}

// JsonFormatterOptions controls the layout of the JSON document.
type JsonFormatterOptions struct {
	// Compact writes the document on a single line.
	Compact bool
}

func (f *JsonFormatter) Kind() Format {
	return JsonFormat
}

func (f *JsonFormatter) Format(obj interface{}, writer io.Writer, opts interface{}) error {
	options, _ := opts.(JsonFormatterOptions)

	var b []byte
	var err error
	if options.Compact {
		b, err = json.Marshal(obj)
	} else {
		b, err = json.MarshalIndent(obj, "", "  ")
	}
	if err != nil {
		return err
	}

	if _, err := writer.Write(append(b, '\n')); err != nil {
		return err
	}

	return nil
}

var _ Formatter = (*JsonFormatter)(nil)
