// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.QueryExtractor,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockExtractor := mock.NewMockQueryExtractor()
//	mockExtractor.ExtractQueryFunc = func(ctx context.Context, message string) (*ai.ExtractedQuery, error) {
//	    return &ai.ExtractedQuery{IncludeIngredients: []string{"tomato"}}, nil
//	}
//
//	// Check call counts
//	count := mockExtractor.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockQueryExtractor: Treats the message as free text and detects
//     naive "no X" exclusions; reports continuation for non-empty history
//   - MockProvider: Aggregates mock embedder and extractor
package mock
