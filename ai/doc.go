// Copyright 2025 Tastegraph
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


// Package ai provides abstractions for the external AI oracles used in
// recipechat.
//
// The core pipeline depends on two oracles: an Embedder that turns text into
// vectors for semantic search, and a QueryExtractor that turns raw user
// messages into structured search intent (ingredient mentions, tag mentions,
// a continuation hint). This package defines their interfaces so the domain
// logic never couples to a concrete service.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//     via langchaingo (works with Ollama, LocalAI, vLLM, OpenAI)
//   - ai/mock: deterministic test doubles for unit testing without
//     external dependencies
//
// Public constructors in the implementation packages return interface types
// to enforce abstraction; mock constructors return concrete types so tests
// can inject behavior and assert call counts.
package ai
