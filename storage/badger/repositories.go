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


package badger

import (
	"github.com/tastegraph/recipechat/storage"
)

// Repositories bundles all repository implementations sharing one backend.
type Repositories struct {
	Recipes     storage.RecipeRepository
	Ingredients storage.IngredientRepository
	Tags        storage.TagRepository
	Sessions    storage.SessionRepository

	backend *Backend
}

// OpenRepositories opens a BadgerDB database at the given path and creates
// all repositories over it. The caller must Close when done.
func OpenRepositories(path string) (*Repositories, error) {
	return openRepositories(path, false)
}

func openRepositories(path string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	recipes, err := NewRecipeRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	ingredients, err := NewIngredientRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	tags, err := NewTagRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	sessions, err := NewSessionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Recipes:     recipes,
		Ingredients: ingredients,
		Tags:        tags,
		Sessions:    sessions,
		backend:     backend,
	}, nil
}

// Close closes the shared backend.
func (r *Repositories) Close() error {
	return r.backend.Close()
}
