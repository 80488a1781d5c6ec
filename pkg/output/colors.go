// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/azresponse"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

// IsTerminal reports whether f is attached to a terminal, including Cygwin and MSYS terminals.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DisableColorsUnlessTerminal turns colored output off when f is redirected to a file or a pipe.
func DisableColorsUnlessTerminal(f *os.File) {
	if !IsTerminal(f) {
		color.NoColor = true
	}
}

func WithErrorFormat(text string, a ...interface{}) string {
	return color.RedString(text, a...)
}

func WithWarningFormat(text string, a ...interface{}) string {
	return color.YellowString(text, a...)
}

func WithSuccessFormat(text string, a ...interface{}) string {
	return color.GreenString(text, a...)
}

// WithHighLightFormat creates string with highlight-looking color
func WithHighLightFormat(text string, a ...interface{}) string {
	return color.CyanString(text, a...)
}

// HighlightVerbose colors the entries of a verbose dump that tell whether the call failed.
func HighlightVerbose(key, value string) string {
	switch key {
	case response.VerboseIsError, azresponse.VerboseResponseIsError:
		if value == "true" {
			return WithErrorFormat(value)
		}
		return WithSuccessFormat(value)
	case azresponse.VerboseErrorCode, azresponse.VerboseExceptionErrorCode:
		return WithWarningFormat(value)
	case response.VerboseStatus:
		return WithHighLightFormat(value)
	default:
		return value
	}
}
