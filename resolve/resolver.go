package resolve

import (
	"context"
	"log/slog"

	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/core"
)

// Resolver maps free-text ingredient mentions onto canonical identities.
// Resolution is exact-first: a normalized variant lookup wins outright, and
// only unmatched terms fall back to embedding similarity. A term that fails
// both stages is dropped, never an error; the caller decides whether to
// surface the miss.
type Resolver struct {
	cache               *Cache
	embedder            ai.Embedder
	ingredientThreshold float32
	logger              *slog.Logger
}

// ResolverOption is a functional option for configuring a Resolver.
type ResolverOption func(*Resolver)

// WithIngredientThreshold sets the minimum similarity for a fuzzy match.
func WithIngredientThreshold(threshold float32) ResolverOption {
	return func(r *Resolver) {
		r.ingredientThreshold = threshold
	}
}

// WithResolverLogger sets a custom logger.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates an ingredient resolver over the reference cache.
func NewResolver(cache *Cache, embedder ai.Embedder, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		cache:               cache,
		embedder:            embedder,
		ingredientThreshold: 0.65,
		logger:              slog.Default().With("component", "ingredient-resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveIngredient maps one mention to its canonical ingredient.
// Returns nil (with no error) when the term cannot be resolved.
func (r *Resolver) ResolveIngredient(ctx context.Context, term string) (*core.CanonicalIngredient, error) {
	snap, err := r.cache.Snapshot()
	if err != nil {
		return nil, err
	}

	// Exact variant match is deterministic and needs no oracle call.
	if ing := snap.IngredientByVariant(term); ing != nil {
		return ing, nil
	}

	vector, err := r.embedder.EmbedText(ctx, normalizeTerm(term))
	if err != nil {
		return nil, err
	}

	best, score := snap.MostSimilarIngredient(vector, r.ingredientThreshold)
	if best == nil {
		r.logger.Debug("ingredient resolution miss", "term", term)
		return nil, nil
	}

	r.logger.Debug("fuzzy ingredient match",
		"term", term,
		"canonical", best.Name,
		"similarity", score)
	return best, nil
}

// ResolveIngredients maps each mention to a canonical ID, preserving order
// and dropping duplicates. Unresolvable terms are returned separately so
// the caller can report them without failing the turn.
func (r *Resolver) ResolveIngredients(ctx context.Context, terms []string) (resolved []core.ID, misses []string, err error) {
	seen := make(map[core.ID]struct{}, len(terms))
	for _, term := range terms {
		ing, err := r.ResolveIngredient(ctx, term)
		if err != nil {
			return nil, nil, err
		}
		if ing == nil {
			misses = append(misses, term)
			continue
		}
		if _, dup := seen[ing.Id]; dup {
			continue
		}
		seen[ing.Id] = struct{}{}
		resolved = append(resolved, ing.Id)
	}
	return resolved, misses, nil
}
