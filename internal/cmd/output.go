// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/output"
)

var verboseFormats = []output.Format{output.TableFormat, output.JsonFormat, output.NoneFormat}

// outputFlags select how a command prints verbose dumps.
type outputFlags struct {
	output  string
	compact bool
}

func (f *outputFlags) Bind(local *pflag.FlagSet) {
	output.AddOutputFlag(local, &f.output, verboseFormats, output.TableFormat)
	local.BoolVar(&f.compact, "compact", false, "Prints each JSON document on a single line.")
}

// setupOutput resolves the formatter and stores it, with the command's output writer, in the
// command context.
func (f *outputFlags) setupOutput(cmd *cobra.Command) error {
	formatter, err := output.ResolveFormatter(f.output, verboseFormats)
	if err != nil {
		return err
	}

	ctx := output.WithFormatter(cmd.Context(), formatter)
	ctx = output.WithWriter(ctx, cmd.OutOrStdout())
	cmd.SetContext(ctx)

	return nil
}

func (f *outputFlags) formatOptions(kind output.Format) any {
	switch kind {
	case output.TableFormat:
		return output.TableFormatterOptions{Highlight: output.HighlightVerbose}
	case output.JsonFormat:
		return output.JsonFormatterOptions{Compact: f.compact}
	default:
		return nil
	}
}

// writeVerbose prints a verbose dump with the formatter and writer held by ctx.
func (f *outputFlags) writeVerbose(ctx context.Context, verbose *messages.Bag) error {
	formatter := output.GetFormatter(ctx)
	return formatter.Format(verbose, output.GetWriter(ctx), f.formatOptions(formatter.Kind()))
}
