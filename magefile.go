//go:build mage
// +build mage

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

type AzResp mg.Namespace

// Build compiles the azresp tool into ./bin.
func (a AzResp) Build(ctx context.Context) error {
	cmdStr, cmd := runIn(
		".",
		"go",
		"build",
		"-o",
		"./bin/azresp",
		"./cmd/azresp",
	)
	fmt.Println(cmdStr)
	return cmd()
}

// Test runs the unit tests of every package.
func (a AzResp) Test(ctx context.Context) error {
	cmdStr, cmd := runIn(
		".",
		"go",
		"test",
		"./...",
	)
	fmt.Println(cmdStr)
	return cmd()
}

// Lint runs go vet over the module.
func (a AzResp) Lint(ctx context.Context) error {
	mg.CtxDeps(ctx, a.Build)

	cmdStr, cmd := runIn(
		".",
		"go",
		"vet",
		"./...",
	)
	fmt.Println(cmdStr)
	return cmd()
}

func runIn(cwd string, cmd string, args ...string) (string, func() error) {
	c := exec.Command(cmd, args...)
	c.Dir = cwd
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.String(), func() error {
		return c.Run()
	}
}
