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

// Package pipeline runs the three stages of processing a configuration:
// parse the named classes into a model, refuse the model unless it is valid,
// then render it into a registry.
//
//	src, err := descriptor.LoadDir(ctx, "configs")
//	reg := registry.NewMemory()
//	res, err := pipeline.New(src, reg,
//	    pipeline.WithListeners(listener.NewChain(listener.NewHotSwapListener())),
//	).Process(ctx, "com.acme.AppConfig")
//
// A Processor runs once. A second Process call fails with ALREADY_PROCESSED
// whether or not the first succeeded.
package pipeline
