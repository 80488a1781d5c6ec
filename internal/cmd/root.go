// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cmd contains the commands of the azresp tool.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dependencies are the process resources the commands use. Tests replace them.
type dependencies struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	// transport is nil outside tests, which selects the default HTTP client.
	transport  policy.Transporter
	credential func() (azcore.TokenCredential, error)
}

func defaultDependencies() dependencies {
	return dependencies{
		stdin:  os.Stdin,
		stdout: colorable.NewColorableStdout(),
		stderr: colorable.NewColorableStderr(),
		getenv: os.Getenv,
		credential: func() (azcore.TokenCredential, error) {
			return azidentity.NewAzureCLICredential(nil)
		},
	}
}

type globalFlags struct {
	debug bool
}

// app is shared by the commands of one invocation.
type app struct {
	deps   dependencies
	flags  globalFlags
	logger *zap.Logger
}

// NewRootCmd creates the azresp command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDependencies())
}

func newRootCmd(deps dependencies) *cobra.Command {
	a := &app{deps: deps, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "azresp",
		Short:         "Inspect Azure Storage responses the way the result layer sees them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = newLogger(a.flags.debug, a.deps.stderr)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetIn(deps.stdin)
	root.SetOut(deps.stdout)
	root.SetErr(deps.stderr)
	root.SetContext(context.Background())

	root.PersistentFlags().BoolVar(&a.flags.debug, "debug", false, "Enables debugging and diagnostics logging.")

	root.AddCommand(newInspectCmd(a))
	root.AddCommand(newProbeCmd(a))

	return root
}
