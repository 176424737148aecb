/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/confmodel/pkg/pipeline"
	"github.com/NVIDIA/confmodel/pkg/registry"
	"github.com/NVIDIA/confmodel/pkg/renderer"
)

// renderOutput is the document written by the render command.
type renderOutput struct {
	Report   *renderer.Report   `json:"report" yaml:"report"`
	Registry *registry.Snapshot `json:"registry,omitempty" yaml:"registry,omitempty"`
}

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:                  "render",
		EnableShellCompletion: true,
		Usage:                 "Render configuration classes into registry records",
		Description: `Parse the given top-level classes, refuse the model unless it is valid
and render it into an in-memory registry. The output holds the render report
(records per class and per top-level class) and the registry contents.

Non-public methods produce hidden records. Scoped proxies and hot-swappable
beans produce a hidden target plus a visible proxy record.

# Examples

Render with qualified record names:
  confmodel render -d descriptors -c com.acme.AppConfig --naming qualified

Wrap hot-swappable beans and trace every event:
  confmodel render -d descriptors --listener hot-swap --listener trace --log-level debug

Report counts only:
  confmodel render -d descriptors --summary -t table`,
		Flags: append(modelFlags(),
			namingFlag(),
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "Write only the render report, without the registry contents",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			src, classes, err := openSource(ctx, cfg)
			if err != nil {
				return err
			}

			naming, err := cfg.NamingStrategy()
			if err != nil {
				return err
			}

			reg := registry.NewMemory()
			res, err := pipeline.New(src, reg,
				pipeline.WithNamingStrategy(naming),
				pipeline.WithListeners(cfg.ListenerChain(slog.Default())),
				pipeline.WithVersion(version),
			).Process(ctx, classes...)
			if err != nil {
				return err
			}

			out := renderOutput{Report: res.Report}
			if !cmd.Bool("summary") {
				out.Registry = reg.Snapshot()
			}
			if err := writeOutput(ctx, cfg, out); err != nil {
				return err
			}

			slog.Info("render completed",
				"pass", res.PassID(),
				"records", res.Records,
				"public", reg.Count(registry.VisibilityPublic),
				"hidden", reg.Count(registry.VisibilityHidden),
				"duration", res.Duration)
			return nil
		},
	}
}
