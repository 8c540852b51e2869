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

package conversation

import "errors"

var (
	// ErrSessionRepositoryRequired is returned when a session repository is not provided.
	ErrSessionRepositoryRequired = errors.New("session repository required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrReferenceCacheRequired is returned when a reference cache is not provided.
	ErrReferenceCacheRequired = errors.New("reference cache required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrSessionKeyRequired is returned when a turn arrives without a session key.
	ErrSessionKeyRequired = errors.New("session key required")

	// ErrEmptyMessage is returned when a turn arrives with no message text.
	ErrEmptyMessage = errors.New("empty message")

	// ErrExtractionFailed is returned when the extraction oracle keeps
	// failing after retries. The session state is left unchanged; the user
	// can rephrase and try again.
	ErrExtractionFailed = errors.New("could not understand the request")
)
