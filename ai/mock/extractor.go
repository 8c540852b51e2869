package mock

import (
	"context"
	"strings"

	"github.com/tastegraph/recipechat/ai"
)

// MockQueryExtractor is a test double for ai.QueryExtractor.
// It allows custom behavior injection via function fields.
type MockQueryExtractor struct {
	// ExtractQueryFunc is called by ExtractQuery if set.
	// If nil, uses default heuristic extraction.
	ExtractQueryFunc func(ctx context.Context, message string) (*ai.ExtractedQuery, error)

	// ExtractTagsFunc is called by ExtractTags if set.
	// If nil, returns empty tag mentions.
	ExtractTagsFunc func(ctx context.Context, message string) (*ai.TagMentions, error)

	// ClassifyContinuationFunc is called by ClassifyContinuation if set.
	// If nil, always reports a continuation.
	ClassifyContinuationFunc func(ctx context.Context, history []string, message string) (ai.ContinuationHint, string, error)

	callCount int
}

// NewMockQueryExtractor creates a mock query extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockQueryExtractor() *MockQueryExtractor {
	return &MockQueryExtractor{}
}

// ExtractQuery extracts a simple mock query from the message.
// Default behavior: treats the whole message as free text and picks
// exclusions from "no <word>" / "without <word>" phrases.
func (m *MockQueryExtractor) ExtractQuery(ctx context.Context, message string) (*ai.ExtractedQuery, error) {
	m.callCount++

	if m.ExtractQueryFunc != nil {
		return m.ExtractQueryFunc(ctx, message)
	}

	extracted := &ai.ExtractedQuery{
		FreeText: strings.TrimSpace(strings.ToLower(message)),
	}

	// Default: naive "no X" / "without X" exclusion detection
	words := strings.Fields(strings.ToLower(message))
	for i, word := range words {
		if (word == "no" || word == "without") && i+1 < len(words) {
			term := strings.Trim(words[i+1], ".,!?;:\"'()")
			if term != "" {
				extracted.ExcludeIngredients = append(extracted.ExcludeIngredients, term)
			}
		}
	}

	return extracted, nil
}

// ExtractTags extracts mock tag mentions from the message.
// Default behavior: returns empty mentions (no tags detected).
func (m *MockQueryExtractor) ExtractTags(ctx context.Context, message string) (*ai.TagMentions, error) {
	m.callCount++

	if m.ExtractTagsFunc != nil {
		return m.ExtractTagsFunc(ctx, message)
	}

	return &ai.TagMentions{}, nil
}

// ClassifyContinuation classifies whether the message continues the conversation.
// Default behavior: empty history yields no hint, otherwise a continuation.
func (m *MockQueryExtractor) ClassifyContinuation(ctx context.Context, history []string, message string) (ai.ContinuationHint, string, error) {
	m.callCount++

	if m.ClassifyContinuationFunc != nil {
		return m.ClassifyContinuationFunc(ctx, history, message)
	}

	if len(history) == 0 {
		return ai.HintNone, "no prior turns", nil
	}
	return ai.HintContinue, "default mock continuation", nil
}

// CallCount returns the number of times any method was called.
func (m *MockQueryExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockQueryExtractor) Reset() {
	m.callCount = 0
	m.ExtractQueryFunc = nil
	m.ExtractTagsFunc = nil
	m.ClassifyContinuationFunc = nil
}
