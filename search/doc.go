// Copyright 2025 Tastegraph
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package search implements the ingredients-first recipe search pipeline.
//
// The Searcher type runs a strict two-phase search:
//   - Filter phase: hard constraints (ingredient includes/excludes,
//     required tags, alternative tag-sets, tag exclusions) evaluated
//     against canonical identities
//   - Ranking phase: embedding-similarity ordering of the survivors
//
// The phases never blend into one score; semantic similarity cannot
// override a hard dietary or ingredient constraint. When the filter phase
// yields nothing, a fixed relaxation ladder loosens the least critical
// constraints first and reports every step it takes. Dietary exclusions
// and explicit ingredient includes are never relaxed.
package search
