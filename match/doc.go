// Copyright 2025 Poiesic Systems
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


// Package match finds materials similar to a source material.
//
// Every material is reduced to a FeatureSet (filename keywords, shader path
// tokens, sampler buckets, parameters) and compared on six features:
//
//	sampler_types, shader_path, sampler_count, parameters,
//	material_keywords, sampler_paths
//
// Each feature scores 0-100. An operator's priority ordering, such as
//
//	sampler_types>shader_path=material_keywords>sampler_count
//
// is resolved into a WeightVector by ResolveWeights, and Score combines the
// feature scores into a penalized total.
//
// # Searching
//
// An Engine owns a worker pool and a feature cache:
//
//	engine, err := match.NewEngine(repo, match.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer engine.Release()
//
//	outcome, err := engine.Search(ctx, match.Request{
//		Source:        source,
//		TargetLibrary: lib,
//		Priority:      match.DefaultPriority(),
//		Threshold:     60,
//	})
//
// A tiered search (the default) runs a cheap prefilter over every candidate
// and scores the survivors. When nothing reaches the threshold it scores
// every candidate with a relaxed cutoff, then keeps only results at or
// above the threshold. Progress snapshots can be received on
// Request.Progress, and a SearchMonitor observes status changes.
//
// # Cancellation
//
// Cancelling ctx, or calling Engine.Cancel, stops a search between
// candidates. A cancelled search never returns partial results.
package match
