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

// Package nutrition looks up per-serving nutrition facts for a recipe's
// ingredient lines from an Edamam-style analysis API. It is used at seed
// time only; turn processing never calls out here.
package nutrition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tastegraph/recipechat/core"
)

var (
	// ErrBaseURLRequired is returned when no API base URL is provided.
	ErrBaseURLRequired = errors.New("nutrition API base URL required")

	// ErrLookupFailed is returned when the API rejects a lookup.
	ErrLookupFailed = errors.New("nutrition lookup failed")
)

// Client calls the nutrition analysis API.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Default is 15s.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.SetTimeout(timeout)
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a nutrition client. appID and appKey are passed as
// query credentials on every request, matching the API's auth scheme.
func NewClient(baseURL, appID, appKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second).
			SetQueryParam("app_id", appID).
			SetQueryParam("app_key", appKey),
		logger: slog.Default().With("component", "nutrition-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// analysisRequest is the API's ingredient-lines payload.
type analysisRequest struct {
	Title       string   `json:"title,omitempty"`
	Ingredients []string `json:"ingr"`
}

// analysisResponse carries the totals we use; the API returns far more.
type analysisResponse struct {
	Calories       float64 `json:"calories"`
	TotalNutrients struct {
		Fat     nutrientValue `json:"FAT"`
		Carbs   nutrientValue `json:"CHOCDF"`
		Protein nutrientValue `json:"PROCNT"`
	} `json:"totalNutrients"`
}

type nutrientValue struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Analyze returns per-serving nutrition for the given ingredient lines.
// The API reports whole-recipe totals; servings divides them down, with
// servings < 1 treated as 1.
func (c *Client) Analyze(ctx context.Context, title string, ingredientLines []string, servings int) (*core.Nutrition, error) {
	if len(ingredientLines) == 0 {
		return &core.Nutrition{}, nil
	}
	if servings < 1 {
		servings = 1
	}

	var parsed analysisResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(analysisRequest{Title: title, Ingredients: ingredientLines}).
		SetResult(&parsed).
		Post("/api/nutrition-details")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if resp.StatusCode() != http.StatusOK {
		c.logger.Warn("nutrition API rejected lookup",
			"status", resp.StatusCode(), "title", title)
		return nil, fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode())
	}

	n := float64(servings)
	return &core.Nutrition{
		CaloriesKcal: parsed.Calories / n,
		FatG:         parsed.TotalNutrients.Fat.Quantity / n,
		CarbsG:       parsed.TotalNutrients.Carbs.Quantity / n,
		ProteinG:     parsed.TotalNutrients.Protein.Quantity / n,
	}, nil
}
