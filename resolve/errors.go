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


package resolve

import "errors"

var (
	// ErrCacheEmpty indicates the reference snapshot has not been loaded yet.
	ErrCacheEmpty = errors.New("reference cache is empty")

	// ErrReferenceUnavailable indicates the reference data store could not
	// be read. Fatal for the current operation; the previous snapshot, if
	// any, remains valid.
	ErrReferenceUnavailable = errors.New("reference data unavailable")
)
