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

// Package conversation maintains the mergeable search state of a recipe
// chat session across turns.
//
// Each turn runs through a fixed pipeline: continuation classification
// (does this message refine the current search or start a new one),
// extraction and canonical resolution, the merge engine, the search
// pipeline, and finally persistence. Contradictions between turns are
// resolved deterministically — the most recently stated directive for an
// identity wins — and every override is recorded as a conflict for
// telemetry, never surfaced as an error.
//
// Turns within one session are strictly serialized, and session state is
// written only after the whole turn succeeds, so a failed turn never
// persists a partially merged query.
package conversation
