/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/confmodel/pkg/config"
	"github.com/NVIDIA/confmodel/pkg/descriptor"
	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/model"
	"github.com/NVIDIA/confmodel/pkg/parser"
	"github.com/NVIDIA/confmodel/pkg/pipeline"
	"github.com/NVIDIA/confmodel/pkg/renderer"
	"github.com/NVIDIA/confmodel/pkg/serializer"
)

// Flags are built per command; urfave flags hold parse state.

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "Root directory of the class descriptors (default: .)",
	}
}

func classFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "class",
		Aliases: []string{"c"},
		Usage: `Top-level class to process, repeatable. Positional arguments are classes too.
	With the eager source and no classes, every class in the directory is processed.`,
	}
}

func sourceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "source",
		Usage: fmt.Sprintf("Descriptor loading mode (%s)", strings.Join(config.GetSourceModes(), ", ")),
	}
}

func varFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "var",
		Usage: "HCL variable as key=value, available as var.<key>, repeatable",
	}
}

func listenerFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "listener",
		Usage: fmt.Sprintf("Listener to enable, repeatable (%s)", strings.Join(config.GetListeners(), ", ")),
	}
}

func namingFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "naming",
		Usage: fmt.Sprintf("Record naming strategy (%s)", strings.Join(renderer.NamingStrategies(), ", ")),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("Output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func modelFlags() []cli.Flag {
	return []cli.Flag{dirFlag(), classFlag(), sourceFlag(), varFlag(), listenerFlag(), outputFlag(), formatFlag()}
}

// parseOutputFormat returns the --format value.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q (must be one of: %s)", f, strings.Join(serializer.SupportedFormats(), ", ")))
	}
	return f, nil
}

// parseVars parses key=value pairs.
func parseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid --var %q, expected key=value", pair))
		}
		vars[k] = v
	}
	return vars, nil
}

// loadConfig merges the config file with the flags set on cmd. Flags win.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	opts := []config.Option{config.WithVersion(version)}

	if path := cmd.String("config"); path != "" {
		f, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, f.Options()...)
	}

	if cmd.IsSet("dir") {
		opts = append(opts, config.WithDir(cmd.String("dir")))
	}
	classes := append(cmd.StringSlice("class"), cmd.Args().Slice()...)
	if len(classes) > 0 {
		opts = append(opts, config.WithClasses(classes...))
	}
	if cmd.IsSet("source") {
		opts = append(opts, config.WithSource(config.SourceMode(cmd.String("source"))))
	}
	if cmd.IsSet("naming") {
		opts = append(opts, config.WithNaming(cmd.String("naming")))
	}
	if cmd.IsSet("format") {
		f, err := parseOutputFormat(cmd)
		if err != nil {
			return nil, err
		}
		opts = append(opts, config.WithFormat(f))
	}
	if cmd.IsSet("output") {
		opts = append(opts, config.WithOutput(cmd.String("output")))
	}
	if cmd.IsSet("log-level") {
		opts = append(opts, config.WithLogLevel(cmd.String("log-level")))
	}
	if pairs := cmd.StringSlice("var"); len(pairs) > 0 {
		vars, err := parseVars(pairs)
		if err != nil {
			return nil, err
		}
		opts = append(opts, config.WithVars(vars))
	}
	if names := cmd.StringSlice("listener"); len(names) > 0 {
		opts = append(opts, config.WithListeners(names...))
	}

	cfg := config.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cmd.IsSet("log-level") {
		initLogger(cfg.LogLevel())
	}
	return cfg, nil
}

// openSource opens the descriptor source and resolves the top-level
// classes to process.
func openSource(ctx context.Context, cfg *config.Config) (descriptor.Source, []string, error) {
	src, err := cfg.OpenSource(ctx)
	if err != nil {
		return nil, nil, err
	}

	classes := cfg.Classes()
	if len(classes) == 0 {
		cat, ok := src.(*descriptor.Catalog)
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidRequest,
				"at least one --class is required with the deferred source")
		}
		classes = cat.Names()
		if len(classes) == 0 {
			return nil, nil, errors.NewWithContext(errors.ErrCodeNotFound, "no class descriptors found",
				map[string]any{"dir": cfg.Dir()})
		}
	}

	slog.Info("descriptor source opened",
		"dir", cfg.Dir(),
		"source", cfg.Source(),
		"classes", len(classes))
	return src, classes, nil
}

// parseModel builds the model of the configured classes.
func parseModel(ctx context.Context, cfg *config.Config) (*model.ConfigurationModel, []string, error) {
	src, classes, err := openSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	m, err := pipeline.Parse(src, classes, parser.WithListeners(cfg.ListenerChain(slog.Default())))
	if err != nil {
		return nil, nil, err
	}
	return m, classes, nil
}

// writeOutput serializes v to the configured output.
func writeOutput(ctx context.Context, cfg *config.Config, v any) error {
	w, err := serializer.NewFileWriter(cfg.Format(), cfg.Output())
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close output", "error", err)
		}
	}()

	if err := w.Serialize(ctx, v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to serialize output", err)
	}
	return nil
}
