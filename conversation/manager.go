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

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/resolve"
	"github.com/tastegraph/recipechat/search"
	"github.com/tastegraph/recipechat/storage"
)

// TurnResult is the outcome of one fully processed turn.
type TurnResult struct {
	// Seq is the sequence number the turn received within its session.
	Seq int
	// Reset reports whether the turn started a new search.
	Reset bool
	// Query is the accumulated query after this turn.
	Query core.RecipeQuery
	// Summary is a natural-language description of the query and outcome.
	Summary string
	// Recipes are the ranked search results.
	Recipes []*core.RankedRecipe
	// Relaxations lists the constraints the search had to loosen.
	Relaxations []search.RelaxationStep
	// Conflicts lists the directives this turn overrode. Telemetry only.
	Conflicts []core.Conflict
	// Misses lists the terms that resolved to nothing and were dropped.
	Misses []string
	// Exhausted reports a zero-result search after full relaxation.
	Exhausted bool
}

// Manager owns turn processing: continuation classification, extraction,
// resolution, merge, search, and persistence. Turns within one session are
// strictly serialized; session state is only written after the whole turn
// has succeeded, so a failed turn never leaves a partially merged query
// behind.
type Manager struct {
	sessions   storage.SessionRepository
	searcher   *search.Searcher
	cache      *resolve.Cache
	extractor  ai.QueryExtractor
	resolver   *resolve.Resolver
	classifier *resolve.TagClassifier
	logger     *slog.Logger

	attempts int
	backoff  time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets a custom logger.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithExtractionAttempts sets how many times a failing oracle call is tried
// before the turn is given up. Default is 3.
func WithExtractionAttempts(attempts int) ManagerOption {
	return func(m *Manager) {
		if attempts > 0 {
			m.attempts = attempts
		}
	}
}

// WithRetryBackoff sets the initial delay between oracle retries. The delay
// doubles after each failed attempt. Default is 200ms.
func WithRetryBackoff(backoff time.Duration) ManagerOption {
	return func(m *Manager) {
		if backoff > 0 {
			m.backoff = backoff
		}
	}
}

// WithResolver replaces the default ingredient resolver.
func WithResolver(resolver *resolve.Resolver) ManagerOption {
	return func(m *Manager) {
		m.resolver = resolver
	}
}

// WithTagClassifier replaces the default tag classifier.
func WithTagClassifier(classifier *resolve.TagClassifier) ManagerOption {
	return func(m *Manager) {
		m.classifier = classifier
	}
}

// NewManager creates a turn manager. A default ingredient resolver and tag
// classifier are built over the given cache and provider unless overridden.
func NewManager(
	sessions storage.SessionRepository,
	searcher *search.Searcher,
	cache *resolve.Cache,
	provider ai.AIProvider,
	opts ...ManagerOption,
) (*Manager, error) {
	if sessions == nil {
		return nil, ErrSessionRepositoryRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if cache == nil {
		return nil, ErrReferenceCacheRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	m := &Manager{
		sessions:  sessions,
		searcher:  searcher,
		cache:     cache,
		extractor: provider.QueryExtractor(),
		logger:    slog.Default().With("component", "conversation-manager"),
		attempts:  3,
		backoff:   200 * time.Millisecond,
		locks:     make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.resolver == nil {
		m.resolver = resolve.NewResolver(cache, provider.Embedder())
	}
	if m.classifier == nil {
		m.classifier = resolve.NewTagClassifier(cache, provider.Embedder())
	}
	return m, nil
}

// SubmitTurn processes one user message end to end and returns the turn's
// outcome. Concurrent calls for the same session key are serialized;
// distinct sessions proceed in parallel.
func (m *Manager) SubmitTurn(ctx context.Context, sessionKey, message string) (*TurnResult, error) {
	if sessionKey == "" {
		return nil, ErrSessionKeyRequired
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	unlock := m.lockSession(sessionKey)
	defer unlock()

	state, err := m.sessions.LoadSession(ctx, sessionKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		state = core.NewSessionState(sessionKey)
	case err != nil:
		return nil, err
	}

	extracted, mentions, hint, hintReason, err := m.extract(ctx, state.History(), message)
	if err != nil {
		m.logger.Error("extraction failed after retries", "session", sessionKey, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	partial, misses, err := m.resolveExtraction(ctx, extracted, mentions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	snap, err := m.cache.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", search.ErrCorpusUnavailable, err)
	}

	decision := DecideContinuation(hint, hintReason, state.Current, partial, snap)
	if decision.Reset {
		m.logger.Info("session reset", "session", sessionKey, "reason", decision.Reason)
	}

	seq := state.NextSeq()
	base := state.Current
	if decision.Reset || len(state.Turns) == 0 {
		base = core.NewRecipeQuery()
	}
	merged, conflicts := Merge(base, partial, seq)
	annotateConflicts(conflicts, snap)
	for _, c := range conflicts {
		m.logger.Debug("merge conflict auto-resolved",
			"session", sessionKey,
			"name", c.Name,
			"previous", c.Previous.String(),
			"new", c.New.String(),
			"turn", c.TurnSeq)
	}

	searched, err := m.searcher.Search(ctx, merged)
	if err != nil {
		// Session state deliberately untouched; the previous query is
		// still valid and the user can retry.
		return nil, err
	}

	resultIds := make([]core.ID, 0, len(searched.Recipes))
	for _, r := range searched.Recipes {
		resultIds = append(resultIds, r.Recipe.Id)
	}

	state.AppendTurn(core.ConversationTurn{
		Seq:       seq,
		Message:   message,
		Extracted: partial,
		Merged:    merged,
		ResultIds: resultIds,
		Reset:     decision.Reset,
		Timestamp: time.Now().UTC(),
	})
	if err := m.sessions.SaveSession(ctx, state); err != nil {
		return nil, err
	}

	return &TurnResult{
		Seq:         seq,
		Reset:       decision.Reset,
		Query:       merged,
		Summary:     Summarize(merged, searched, snap),
		Recipes:     searched.Recipes,
		Relaxations: searched.Relaxations,
		Conflicts:   conflicts,
		Misses:      misses,
		Exhausted:   searched.Exhausted,
	}, nil
}

// ResetSession discards the stored state for a key. Missing sessions are
// not an error.
func (m *Manager) ResetSession(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return ErrSessionKeyRequired
	}
	unlock := m.lockSession(sessionKey)
	defer unlock()
	return m.sessions.DeleteSession(ctx, sessionKey)
}

// Session returns the stored state for a key, or storage.ErrNotFound.
func (m *Manager) Session(ctx context.Context, sessionKey string) (*core.SessionState, error) {
	return m.sessions.LoadSession(ctx, sessionKey)
}

// extract runs the three oracle calls for a turn, each with retry.
func (m *Manager) extract(ctx context.Context, history []string, message string) (*ai.ExtractedQuery, *ai.TagMentions, ai.ContinuationHint, string, error) {
	var (
		extracted  *ai.ExtractedQuery
		mentions   *ai.TagMentions
		hint       ai.ContinuationHint
		hintReason string
	)

	err := m.withRetry(ctx, "extract-query", func() error {
		var err error
		extracted, err = m.extractor.ExtractQuery(ctx, message)
		return err
	})
	if err != nil {
		return nil, nil, ai.HintNone, "", err
	}

	err = m.withRetry(ctx, "extract-tags", func() error {
		var err error
		mentions, err = m.extractor.ExtractTags(ctx, message)
		return err
	})
	if err != nil {
		return nil, nil, ai.HintNone, "", err
	}

	// A failed continuation call degrades to the deterministic fallback
	// instead of failing the turn.
	err = m.withRetry(ctx, "classify-continuation", func() error {
		var err error
		hint, hintReason, err = m.extractor.ClassifyContinuation(ctx, history, message)
		return err
	})
	if err != nil {
		m.logger.Warn("continuation oracle unavailable, using overlap fallback", "err", err)
		hint, hintReason = ai.HintNone, ""
	}

	return extracted, mentions, hint, hintReason, nil
}

// resolveExtraction maps raw extraction output onto canonical identities.
// Unresolvable terms are dropped and reported, never fatal.
func (m *Manager) resolveExtraction(ctx context.Context, extracted *ai.ExtractedQuery, mentions *ai.TagMentions) (core.RecipeQuery, []string, error) {
	var partial core.RecipeQuery
	var misses []string

	includes, missed, err := m.resolver.ResolveIngredients(ctx, extracted.IncludeIngredients)
	if err != nil {
		return partial, nil, err
	}
	misses = append(misses, missed...)

	excludes, missed, err := m.resolver.ResolveIngredients(ctx, extracted.ExcludeIngredients)
	if err != nil {
		return partial, nil, err
	}
	misses = append(misses, missed...)

	tags, err := m.classifier.Classify(ctx, mentions)
	if err != nil {
		return partial, nil, err
	}
	misses = append(misses, tags.Misses...)

	partial.FreeText = extracted.FreeText
	partial.IncludeIngredients = includes
	partial.ExcludeIngredients = excludes
	partial.RequiredTags = tags.RequiredTags
	partial.TagAlternatives = tags.TagAlternatives
	partial.ResultCount = extracted.ResultCount
	return partial, misses, nil
}

// withRetry runs fn up to m.attempts times with doubling backoff.
func (m *Manager) withRetry(ctx context.Context, op string, fn func() error) error {
	backoff := m.backoff
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt >= m.attempts {
			return err
		}
		m.logger.Warn("oracle call failed, retrying",
			"op", op, "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// lockSession serializes turn processing per session key. Lock entries are
// kept for the manager's lifetime; session counts are bounded by the
// session store's expiry policy.
func (m *Manager) lockSession(key string) func() {
	m.mu.Lock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// annotateConflicts fills in display names for conflict records.
func annotateConflicts(conflicts []core.Conflict, snap *resolve.Snapshot) {
	for i := range conflicts {
		id := conflicts[i].Identity
		if ing := snap.IngredientByID(id); ing != nil {
			conflicts[i].Name = ing.Name
			continue
		}
		if tag := snap.TagByID(id); tag != nil {
			conflicts[i].Name = tag.Name
		}
	}
}
