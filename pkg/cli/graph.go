/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/confmodel/pkg/graph"
)

func graphCmd() *cli.Command {
	return &cli.Command{
		Name:                  "graph",
		EnableShellCompletion: true,
		Usage:                 "Show the import graph of configuration classes",
		Description: `Parse the given top-level classes and print the import graph of the
model: every class with what it imports and what imports it, the root
classes, a dependency order (imported classes first) and any import cycles.

# Examples

  confmodel graph -d descriptors -c com.acme.AppConfig -t yaml`,
		Flags: modelFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			m, _, err := parseModel(ctx, cfg)
			if err != nil {
				return err
			}

			g := graph.Build(m)
			if g.HasCycles() {
				slog.Warn("import graph has cycles", "cycles", len(g.Cycles()))
			}
			return writeOutput(ctx, cfg, g.View(version))
		},
	}
}
