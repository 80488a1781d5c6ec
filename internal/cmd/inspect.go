// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/azresponse"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

const (
	surfaceBlob  = "blob"
	surfaceTable = "table"
)

type inspectFlags struct {
	status      int
	contentType string
	headers     []string
	surface     string
	asError     bool
	outputFlags
}

func (f *inspectFlags) Bind(local *pflag.FlagSet) {
	local.IntVar(&f.status, "status", 0, "The HTTP status code of the response.")
	local.StringVar(&f.contentType, "content-type", "", "The Content-Type of the payload.")
	local.StringArrayVar(&f.headers, "header", nil, "A response header as name=value. May be repeated.")
	local.StringVar(&f.surface, "surface", surfaceBlob, "The service the payload comes from (blob or table).")
	local.BoolVar(&f.asError, "as-error", false,
		"Treat the payload as the error returned by the SDK instead of the raw response.")
	f.outputFlags.Bind(local)
}

func newInspectCmd(a *app) *cobra.Command {
	flags := &inspectFlags{}
	cmd := &cobra.Command{
		Use:   "inspect [payload-file]",
		Short: "Build a result from a captured response payload and print its verbose dump.",
		Long: heredoc.Doc(`
			Build a result from a captured response payload and print its verbose dump.

			The payload is read from the given file, or from stdin when the file is omitted or '-'.
			Use --as-error to build the result from the error the SDK returns for the response.`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.setupOutput(cmd); err != nil {
				return err
			}

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}

			body, err := readPayload(path, cmd.InOrStdin())
			if err != nil {
				return err
			}

			resp, err := flags.response(body)
			if err != nil {
				return err
			}

			r, err := flags.result(resp)
			if err != nil {
				return err
			}

			a.logger.Debug("inspected payload",
				zap.String("surface", flags.surface),
				zap.Int("status", flags.status),
				zap.Stringer("result", r.Status()))

			return flags.writeVerbose(cmd.Context(), r.BuildVerbose())
		},
	}
	flags.Bind(cmd.Flags())

	return cmd
}

func readPayload(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading payload from stdin: %w", err)
		}
		return body, nil
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return body, nil
}

// response assembles the HTTP response the payload was captured from.
func (f *inspectFlags) response(body []byte) (*http.Response, error) {
	if http.StatusText(f.status) == "" {
		return nil, fmt.Errorf("'%d' is not a valid HTTP status code", f.status)
	}

	header := http.Header{}
	if f.contentType != "" {
		header.Set("Content-Type", f.contentType)
	}
	for _, pair := range f.headers {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header '%s', expected name=value", pair)
		}
		header.Add(strings.TrimSpace(name), value)
	}

	request, err := http.NewRequest(http.MethodGet, "https://localhost/"+f.surface, nil)
	if err != nil {
		return nil, err
	}

	return &http.Response{
		StatusCode:    f.status,
		Status:        fmt.Sprintf("%d %s", f.status, http.StatusText(f.status)),
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       request,
	}, nil
}

// result runs the factory of the selected surface on resp.
func (f *inspectFlags) result(resp *http.Response) (response.Result, error) {
	switch f.surface {
	case surfaceBlob:
		if f.asError {
			return azresponse.BlobFromError(runtime.NewResponseError(resp))
		}
		return azresponse.BlobFrom(resp)
	case surfaceTable:
		if f.asError {
			return azresponse.TableFromError(runtime.NewResponseError(resp))
		}
		return azresponse.TableFrom(resp)
	default:
		return nil, fmt.Errorf("unsupported surface '%s', expected %s or %s", f.surface, surfaceBlob, surfaceTable)
	}
}
