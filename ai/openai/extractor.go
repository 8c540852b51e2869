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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tastegraph/recipechat/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const maxParseAttempts = 3

// QueryExtractor implements ai.QueryExtractor using OpenAI-compatible chat APIs.
type QueryExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// extractedQuery matches the JSON the extraction prompt demands.
type extractedQuery struct {
	Query              string   `json:"query"`
	IncludeIngredients []string `json:"include_ingredients"`
	ExcludeIngredients []string `json:"exclude_ingredients"`
	Count              int      `json:"count"`
}

// extractedTags matches the JSON the tag prompt demands.
type extractedTags struct {
	TimeDuration      string `json:"TIME_DURATION"`
	DifficultyScale   string `json:"DIFFICULTY_SCALE"`
	Scale             string `json:"SCALE"`
	FreeOf            string `json:"FREE_OF"`
	Diets             string `json:"DIETS"`
	CuisinesRegional  string `json:"CUISINES_REGIONAL"`
	MealCourses       string `json:"MEAL_COURSES"`
	PreparationMethod string `json:"PREPARATION_METHOD"`
}

// continuation matches the JSON the continuity prompt demands.
type continuation struct {
	Continue bool   `json:"continue"`
	Reason   string `json:"reason"`
}

// newQueryExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryExtractor(config *ai.Config) (*QueryExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewQueryExtractor creates a new query extractor using the provided configuration.
//
// Returns ai.QueryExtractor interface to enforce abstraction.
func NewQueryExtractor(config *ai.Config) (ai.QueryExtractor, error) {
	return newQueryExtractor(config)
}

// ExtractQuery extracts the structured recipe query from a user message.
func (e *QueryExtractor) ExtractQuery(ctx context.Context, message string) (*ai.ExtractedQuery, error) {
	var result extractedQuery
	if err := e.generateJSON(ctx, queryPromptTemplate, message, &result); err != nil {
		return nil, err
	}

	return &ai.ExtractedQuery{
		FreeText:           strings.TrimSpace(result.Query),
		IncludeIngredients: cleanTerms(result.IncludeIngredients),
		ExcludeIngredients: cleanTerms(result.ExcludeIngredients),
		ResultCount:        result.Count,
	}, nil
}

// ExtractTags extracts the semantic tag mentions from a user message.
func (e *QueryExtractor) ExtractTags(ctx context.Context, message string) (*ai.TagMentions, error) {
	var result extractedTags
	if err := e.generateJSON(ctx, tagsPromptTemplate, message, &result); err != nil {
		return nil, err
	}

	return &ai.TagMentions{
		TimeDuration:      strings.TrimSpace(result.TimeDuration),
		DifficultyScale:   strings.TrimSpace(result.DifficultyScale),
		Scale:             strings.TrimSpace(result.Scale),
		FreeOf:            strings.TrimSpace(result.FreeOf),
		Diets:             strings.TrimSpace(result.Diets),
		CuisinesRegional:  strings.TrimSpace(result.CuisinesRegional),
		MealCourses:       strings.TrimSpace(result.MealCourses),
		PreparationMethod: strings.TrimSpace(result.PreparationMethod),
	}, nil
}

// ClassifyContinuation decides whether the message continues the current search.
func (e *QueryExtractor) ClassifyContinuation(ctx context.Context, history []string, message string) (ai.ContinuationHint, string, error) {
	if len(history) == 0 {
		// Nothing to continue from
		return ai.HintNone, "", nil
	}

	var sb strings.Builder
	sb.WriteString("Conversation history:\n")
	for i, msg := range history {
		fmt.Fprintf(&sb, "Message %d: %s\n", i+1, msg)
	}
	fmt.Fprintf(&sb, "\nCurrent message: %s", message)

	var result continuation
	if err := e.generateJSON(ctx, continuationPromptTemplate, sb.String(), &result); err != nil {
		return ai.HintNone, "", err
	}

	if result.Continue {
		return ai.HintContinue, result.Reason, nil
	}
	return ai.HintReset, result.Reason, nil
}

// generateJSON runs one chat completion and unmarshals the JSON response
// into out, retrying on malformed output.
func (e *QueryExtractor) generateJSON(ctx context.Context, systemPrompt, userPrompt string, out any) error {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	var lastErr error
	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return ErrEmptyResponse
		}

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(response.Choices[0].Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), out); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		return nil
	}

	e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
	return lastErr
}

// cleanTerms lowercases, trims, and drops empty ingredient mentions.
func cleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
