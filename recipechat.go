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

// Package recipechat wires the conversational recipe search system
// together: storage, the reference snapshot cache, the AI provider, the
// search pipeline and the per-session turn manager.
package recipechat

import (
	"context"
	"log/slog"

	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/ai/openai"
	"github.com/tastegraph/recipechat/conversation"
	"github.com/tastegraph/recipechat/ingest"
	"github.com/tastegraph/recipechat/resolve"
	"github.com/tastegraph/recipechat/search"
	"github.com/tastegraph/recipechat/storage"
	"github.com/tastegraph/recipechat/storage/badger"
)

// App owns the corpus storage, the reference cache and the AI provider,
// and builds the searcher, turn manager and seeding pipeline on top.
type App struct {
	repos    *badger.Repositories
	sessions storage.SessionRepository
	cache    *resolve.Cache
	provider ai.AIProvider
	aiConfig *ai.Config
	logger   *slog.Logger
}

// AppOption configures an App.
type AppOption func(*appOptions)

type appOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	sessions storage.SessionRepository
}

// WithAIConfig sets the AI configuration used to build the provider.
func WithAIConfig(cfg *ai.Config) AppOption {
	return func(o *appOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a pre-built AI provider, bypassing the config.
func WithProvider(provider ai.AIProvider) AppOption {
	return func(o *appOptions) {
		o.provider = provider
	}
}

// WithSessionRepository moves session state off the corpus store, for
// example onto redis in multi-process deployments.
func WithSessionRepository(sessions storage.SessionRepository) AppOption {
	return func(o *appOptions) {
		o.sessions = sessions
	}
}

// NewApp opens storage at filePath and wires the system. The reference
// cache is loaded immediately; an empty vocabulary is fine until seeding.
func NewApp(ctx context.Context, filePath string, opts ...AppOption) (*App, error) {
	options := &appOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	repos, err := badger.OpenRepositories(filePath)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	sessions := options.sessions
	if sessions == nil {
		sessions = repos.Sessions
	}

	cache := resolve.NewCache(repos.Ingredients, repos.Tags)
	if err := cache.Reload(ctx); err != nil {
		provider.Close()
		repos.Close()
		return nil, err
	}

	return &App{
		repos:    repos,
		sessions: sessions,
		cache:    cache,
		provider: provider,
		aiConfig: options.aiConfig,
		logger:   slog.Default(),
	}, nil
}

// Close releases the provider and storage.
func (a *App) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	return a.repos.Close()
}

// Repositories returns the underlying storage repositories.
func (a *App) Repositories() *badger.Repositories {
	return a.repos
}

// Cache returns the reference snapshot cache.
func (a *App) Cache() *resolve.Cache {
	return a.cache
}

// ReloadReference rebuilds the reference snapshot, typically after seeding.
func (a *App) ReloadReference(ctx context.Context) error {
	return a.cache.Reload(ctx)
}

// NewSearcher builds the two-phase searcher over the corpus.
func (a *App) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(a.repos.Recipes, a.cache, a.provider, opts...)
}

// NewManager builds the per-session turn manager. The configured match
// thresholds feed the ingredient resolver and tag classifier.
func (a *App) NewManager(opts ...conversation.ManagerOption) (*conversation.Manager, error) {
	searcher, err := a.NewSearcher()
	if err != nil {
		return nil, err
	}

	resolver := resolve.NewResolver(a.cache, a.provider.Embedder(),
		resolve.WithIngredientThreshold(a.aiConfig.IngredientThreshold))
	classifier := resolve.NewTagClassifier(a.cache, a.provider.Embedder(),
		resolve.WithTagThreshold(a.aiConfig.TagThreshold))

	managerOpts := append([]conversation.ManagerOption{
		conversation.WithResolver(resolver),
		conversation.WithTagClassifier(classifier),
	}, opts...)
	return conversation.NewManager(a.sessions, searcher, a.cache, a.provider, managerOpts...)
}

// NewIngestPipeline builds the seeding pipeline.
func (a *App) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(a.repos.Recipes, a.repos.Ingredients, a.repos.Tags, a.provider, opts...)
}
