// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer reads and writes the documents the CLI consumes and
// emits.
//
// Output formats:
//   - JSON: indented, machine readable
//   - YAML: two-space indented
//   - Table: sorted FIELD/VALUE rows of keys flattened along json tags
//
// Usage:
//
//	w, err := serializer.NewFileWriter(serializer.FormatYAML, path)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	err = w.Serialize(ctx, report)
//
// Reading a configuration file, format chosen by extension:
//
//	cfg, err := serializer.FromFile[config.File]("confmodel.yaml")
//
// YAML documents are decoded strictly: unknown keys are an error.
package serializer
