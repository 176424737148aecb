/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Parse configuration classes and report validation errors",
		Description: `Parse the given top-level classes with everything they import and
check the resulting model. Every rule violation is reported, not only the first.

Parse failures (unknown class, circular import, contradictory markers) abort
before validation.

# Examples

Validate one class from a descriptor tree:
  confmodel validate --dir descriptors --class com.acme.AppConfig

Validate every class in the tree and write YAML:
  confmodel validate -d descriptors -t yaml -o result.yaml

Report without failing the command:
  confmodel validate -d descriptors --fail-on-error=false`,
		Flags: append(modelFlags(),
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Value: true,
				Usage: "Exit with non-zero status when the model is invalid",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			m, classes, err := parseModel(ctx, cfg)
			if err != nil {
				return err
			}

			result, err := validator.New(validator.WithVersion(version)).Check(ctx, m)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, "validation failed", err)
			}
			result.SetMetadata("classes", joinClasses(classes))

			if err := writeOutput(ctx, cfg, result); err != nil {
				return err
			}

			slog.Info("validation completed",
				"status", result.Summary.Status,
				"classes", result.Summary.Classes,
				"errors", result.Summary.Errors,
				"duration", result.Summary.Duration)

			if cmd.Bool("fail-on-error") && !result.IsValid() {
				return errors.NewWithContext(errors.ErrCodeMalformedConfiguration,
					"configuration model is invalid",
					map[string]any{"errors": result.Summary.Errors})
			}
			return nil
		},
	}
}
