package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryExtractor turns a raw user message into structured search intent.
// Implementations must be thread-safe for concurrent use. Each call must be
// idempotent: the same message yields the same extraction.
type QueryExtractor interface {
	// ExtractQuery extracts the structured recipe query from a user message:
	// the ingredient mentions with include/exclude polarity, the requested
	// result count, and the free-text remainder stripped of ingredients.
	ExtractQuery(ctx context.Context, message string) (*ExtractedQuery, error)

	// ExtractTags extracts the semantic tag mentions from a user message,
	// one field per extraction group. Fields hold the user's original
	// phrasing; empty fields mean the group was not mentioned.
	ExtractTags(ctx context.Context, message string) (*TagMentions, error)

	// ClassifyContinuation decides whether the message continues the
	// conversation described by history or starts a new search. The returned
	// hint may be HintNone when the oracle cannot tell; the caller then
	// falls back to a deterministic overlap policy.
	ClassifyContinuation(ctx context.Context, history []string, message string) (ContinuationHint, string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// QueryExtractor instances, ensuring they share configuration and resources.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// QueryExtractor returns the query extraction service.
	// The returned QueryExtractor is safe for concurrent use.
	QueryExtractor() QueryExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
