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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecipe indicates a Recipe failed validation.
	ErrInvalidRecipe = errors.New("invalid recipe")

	// ErrInvalidQuery indicates a RecipeQuery failed validation.
	ErrInvalidQuery = errors.New("invalid recipe query")

	// ErrInvalidIngredient indicates a CanonicalIngredient failed validation.
	ErrInvalidIngredient = errors.New("invalid ingredient")

	// ErrInvalidTag indicates a Tag failed validation.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidSession indicates a SessionState failed validation.
	ErrInvalidSession = errors.New("invalid session state")

	// ErrEmptyName indicates a required name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrUnknownTagGroup indicates a tag group name outside the fixed taxonomy.
	ErrUnknownTagGroup = errors.New("unknown tag group")

	// ErrConflictingDirectives indicates an identity present in both an
	// include/require set and its exclude set.
	ErrConflictingDirectives = errors.New("identity stated as both include and exclude")

	// ErrResultCountOutOfRange indicates a result count outside [1, 10].
	ErrResultCountOutOfRange = errors.New("result count out of range")

	// ErrCorruptData indicates serialized data that cannot be decoded.
	ErrCorruptData = errors.New("corrupt serialized data")
)
