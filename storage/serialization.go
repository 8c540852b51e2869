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


package storage

import (
	"github.com/tastegraph/recipechat/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalRecipe serializes a Recipe to bytes.
func MarshalRecipe(recipe *core.Recipe) []byte {
	buf := make([]byte, core.RecipeMUS.Size(*recipe))
	core.RecipeMUS.Marshal(*recipe, buf)
	return buf
}

// UnmarshalRecipe deserializes a Recipe from bytes.
func UnmarshalRecipe(data []byte) (*core.Recipe, error) {
	recipe, _, err := core.RecipeMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// MarshalIngredient serializes a CanonicalIngredient to bytes.
func MarshalIngredient(ingredient *core.CanonicalIngredient) []byte {
	buf := make([]byte, core.IngredientMUS.Size(*ingredient))
	core.IngredientMUS.Marshal(*ingredient, buf)
	return buf
}

// UnmarshalIngredient deserializes a CanonicalIngredient from bytes.
func UnmarshalIngredient(data []byte) (*core.CanonicalIngredient, error) {
	ingredient, _, err := core.IngredientMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// MarshalTag serializes a Tag to bytes.
func MarshalTag(tag *core.Tag) []byte {
	buf := make([]byte, core.TagMUS.Size(*tag))
	core.TagMUS.Marshal(*tag, buf)
	return buf
}

// UnmarshalTag deserializes a Tag from bytes.
func UnmarshalTag(data []byte) (*core.Tag, error) {
	tag, _, err := core.TagMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// MarshalSessionState serializes a SessionState to bytes.
func MarshalSessionState(state *core.SessionState) []byte {
	buf := make([]byte, core.SessionStateMUS.Size(*state))
	core.SessionStateMUS.Marshal(*state, buf)
	return buf
}

// UnmarshalSessionState deserializes a SessionState from bytes.
func UnmarshalSessionState(data []byte) (*core.SessionState, error) {
	state, _, err := core.SessionStateMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &state, nil
}
