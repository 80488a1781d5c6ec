// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-colorable"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/internal/cmd"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/output"
)

func main() {
	output.DisableColorsUnlessTerminal(os.Stdout)
	restoreColorMode := colorable.EnableColorsStdout(nil)

	err := cmd.NewRootCmd().ExecuteContext(context.Background())
	restoreColorMode()

	if err != nil {
		fmt.Fprintln(os.Stderr, output.WithErrorFormat("ERROR: %v", err))
		os.Exit(1)
	}
}
