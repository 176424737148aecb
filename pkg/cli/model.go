/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/confmodel/pkg/header"
	"github.com/NVIDIA/confmodel/pkg/model"
)

// modelOutput is the document written by the model command.
type modelOutput struct {
	header.Header   `json:",inline" yaml:",inline"`
	model.ModelView `json:",inline" yaml:",inline"`
}

func modelCmd() *cli.Command {
	return &cli.Command{
		Name:                  "model",
		EnableShellCompletion: true,
		Usage:                 "Show the parsed configuration model",
		Description: `Parse the given top-level classes and print the model in render order:
declaring classes, then imports, then the class itself. The model is not
validated.

# Examples

  confmodel model -d descriptors -c com.acme.AppConfig -t yaml`,
		Flags: modelFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			m, classes, err := parseModel(ctx, cfg)
			if err != nil {
				return err
			}

			out := modelOutput{ModelView: m.View()}
			out.Init(header.KindConfigurationModel, version)
			out.SetMetadata("classes", joinClasses(classes))
			return writeOutput(ctx, cfg, out)
		},
	}
}

func joinClasses(classes []string) string {
	return strings.Join(classes, ",")
}
