// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/config"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/output"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/storage"
)

var errProbeFailed = errors.New("at least one storage resource could not be ensured")

type probeFlags struct {
	configPath string
	envFile    string
	outputFlags
}

func (f *probeFlags) Bind(local *pflag.FlagSet) {
	local.StringVarP(&f.configPath, "config", "c", "storage.yaml", "The storage configuration file.")
	local.StringVar(&f.envFile, "env-file", ".env",
		"A dotenv file with values for the ${VAR} references of the configuration. Ignored when missing.")
	f.outputFlags.Bind(local)
}

// probeReport is the verbose dump of each resource the probe ensured, in the order they were checked.
type probeReport struct {
	Container *messages.Bag `json:"container,omitempty"`
	Table     *messages.Bag `json:"table,omitempty"`
}

func newProbeCmd(a *app) *cobra.Command {
	flags := &probeFlags{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Ensure the configured container and table exist and print the results.",
		Long: heredoc.Doc(`
			Ensure the configured container and table exist and print the results.

			References such as ${STORAGE_ACCOUNT} in the configuration are resolved from the
			process environment first and then from the dotenv file given by --env-file.
			The command fails when a resource could not be ensured. An existing resource is a warning.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.setupOutput(cmd); err != nil {
				return err
			}

			storageConfig, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}

			getenv, err := config.Environment(flags.envFile, a.deps.getenv)
			if err != nil {
				return err
			}

			report, failed, err := a.probe(cmd, storageConfig, getenv)
			if err != nil {
				return err
			}

			if err := flags.writeReport(cmd.Context(), report); err != nil {
				return err
			}

			if failed {
				return errProbeFailed
			}
			return nil
		},
	}
	flags.Bind(cmd.Flags())

	return cmd
}

func (a *app) probe(
	cmd *cobra.Command,
	storageConfig *config.StorageConfig,
	getenv func(string) string,
) (probeReport, bool, error) {
	ctx := cmd.Context()

	account, err := storageConfig.AccountConfig(getenv)
	if err != nil {
		return probeReport{}, false, err
	}

	var credential azcore.TokenCredential
	if account.SASToken == "" {
		if credential, err = a.deps.credential(); err != nil {
			return probeReport{}, false, fmt.Errorf("getting azure credentials: %w", err)
		}
	}

	builder := storageConfig.ClientOptionsBuilder(ctx, a.deps.transport)
	options := []storage.Option{storage.WithLogger(a.logger)}

	var report probeReport
	failed := false

	if account.ContainerName != "" {
		blobClient, err := storage.NewBlobClient(account, credential, builder, options...)
		if err != nil {
			return probeReport{}, false, err
		}

		r := blobClient.EnsureContainer(ctx)
		report.Container = r.BuildVerbose()
		failed = failed || r.Status() == response.Failure
	}

	if account.TableName != "" {
		tableClient, err := storage.NewTableClient(account, credential, builder, options...)
		if err != nil {
			return probeReport{}, false, err
		}

		r := tableClient.CreateTable(ctx)
		report.Table = r.BuildVerbose()
		failed = failed || r.Status() == response.Failure
	}

	return report, failed, nil
}

func (f *probeFlags) writeReport(ctx context.Context, report probeReport) error {
	formatter := output.GetFormatter(ctx)
	writer := output.GetWriter(ctx)
	if formatter.Kind() != output.TableFormat {
		return formatter.Format(report, writer, f.formatOptions(formatter.Kind()))
	}

	for _, section := range []struct {
		title   string
		verbose *messages.Bag
	}{
		{"container", report.Container},
		{"table", report.Table},
	} {
		if section.verbose == nil {
			continue
		}

		if _, err := fmt.Fprintf(writer, "%s\n", output.WithHighLightFormat(section.title)); err != nil {
			return err
		}
		if err := f.writeVerbose(ctx, section.verbose); err != nil {
			return err
		}
	}

	return nil
}
