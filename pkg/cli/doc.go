/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the confmodel command-line interface.
//
// # Commands
//
// validate - parse classes and report validation errors:
//
//	confmodel validate --dir descriptors --class com.acme.AppConfig
//
// Exits non-zero when the model is invalid unless --fail-on-error=false.
//
// render - parse, validate and render classes into registry records:
//
//	confmodel render --dir descriptors --naming qualified --listener hot-swap
//
// graph - show the import graph, dependency order and cycles:
//
//	confmodel graph --dir descriptors --format yaml
//
// model - show the parsed model in render order:
//
//	confmodel model --dir descriptors --class com.acme.AppConfig
//
// # Flags
//
//	--config         YAML or JSON config file (see package config)
//	--log-level      debug, info, warn, error (env LOG_LEVEL)
//	--dir, -d        descriptor root directory
//	--class, -c      top-level class, repeatable; positional arguments too
//	--source         eager (default) or deferred descriptor loading
//	--var            HCL variable key=value, repeatable
//	--listener       hot-swap, trace; repeatable
//	--naming         method (default) or qualified (render only)
//	--output, -o     output file path (default: stdout)
//	--format, -t     json (default), yaml, table
//
// Flags override values from the config file.
//
// # Exit Codes
//
//	0  Success
//	1  Invalid input, invalid model or execution failure
package cli
