// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
)

func verboseBag() *messages.Bag {
	return messages.FromPairs(
		"IsError", "true",
		"Status", "Failure",
		"Exception.StackTrace", "first frame\nsecond frame",
	)
}

func Test_NewFormatter(t *testing.T) {
	for _, format := range Formats {
		formatter, err := NewFormatter(string(format))
		require.NoError(t, err)
		require.Equal(t, format, formatter.Kind())
	}

	_, err := NewFormatter("yaml")
	require.Error(t, err)
}

func Test_JsonFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, (&JsonFormatter{}).Format(messages.FromPairs("Status", "Success", "HasValue", "true"), buf, nil))

	require.Equal(t, "{\n  \"Status\": \"Success\",\n  \"HasValue\": \"true\"\n}\n", buf.String())

	t.Run("Compact", func(t *testing.T) {
		buf := &bytes.Buffer{}
		err := (&JsonFormatter{}).Format(messages.FromPairs("Status", "Success", "HasValue", "true"), buf,
			JsonFormatterOptions{Compact: true})
		require.NoError(t, err)

		require.Equal(t, "{\"Status\":\"Success\",\"HasValue\":\"true\"}\n", buf.String())
	})
}

func Test_DisableColorsUnlessTerminal(t *testing.T) {
	noColor := color.NoColor
	t.Cleanup(func() { color.NoColor = noColor })

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	require.False(t, IsTerminal(f))

	color.NoColor = false
	DisableColorsUnlessTerminal(f)
	require.True(t, color.NoColor)
}

func Test_TableFormatter(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	t.Run("Rows", func(t *testing.T) {
		buf := &bytes.Buffer{}
		err := (&TableFormatter{}).Format(verboseBag(), buf, TableFormatterOptions{
			KeyHeading:   "KEY",
			ValueHeading: "VALUE",
			Highlight:    HighlightVerbose,
		})
		require.NoError(t, err)

		require.Equal(t, "KEY                   VALUE\n"+
			"IsError               true\n"+
			"Status                Failure\n"+
			"Exception.StackTrace  first frame\n"+
			"                      second frame\n", buf.String())
	})

	t.Run("Highlight", func(t *testing.T) {
		buf := &bytes.Buffer{}
		err := (&TableFormatter{}).Format(messages.FromPairs("IsError", "true"), buf, TableFormatterOptions{
			Highlight: func(key, value string) string { return "<" + value + ">" },
		})
		require.NoError(t, err)
		require.Equal(t, "IsError  <true>\n", buf.String())
	})

	t.Run("RejectsOtherObjects", func(t *testing.T) {
		err := (&TableFormatter{}).Format(map[string]string{}, &bytes.Buffer{}, nil)
		require.Error(t, err)
	})
}

func Test_NoneFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, (&NoneFormatter{}).Format(verboseBag(), buf, nil))
	require.Empty(t, buf.String())
}

func Test_Context(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, NoneFormat, GetFormatter(ctx).Kind())
	require.NotNil(t, GetWriter(ctx))

	buf := &bytes.Buffer{}
	ctx = WithWriter(WithFormatter(ctx, &JsonFormatter{}), buf)
	require.Equal(t, JsonFormat, GetFormatter(ctx).Kind())
	require.Same(t, buf, GetWriter(ctx))
}

func Test_OutputFlag(t *testing.T) {
	var value string
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddOutputFlag(flags, &value, []Format{JsonFormat, NoneFormat}, JsonFormat)

	require.NoError(t, flags.Parse([]string{"-o", " NONE "}))
	formatter, err := ResolveFormatter(value, []Format{JsonFormat, NoneFormat})
	require.NoError(t, err)
	require.Equal(t, NoneFormat, formatter.Kind())

	_, err = ResolveFormatter("table", []Format{JsonFormat, NoneFormat})
	require.EqualError(t, err, "unsupported format 'table'")
}
