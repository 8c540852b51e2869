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

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tastegraph/recipechat"
	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/ai/openai"
	"github.com/tastegraph/recipechat/conversation"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/reembed"
	"github.com/tastegraph/recipechat/search"
	"github.com/tastegraph/recipechat/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "recipechat",
		Usage: "Conversational recipe search over a local corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Interactive conversation: each line refines or restarts the search",
				Action: chatCommand,
				Flags:  appFlags(),
			},
			{
				Name:      "search",
				Usage:     "One-shot search from a single message",
				ArgsUsage: "<message>",
				Action:    searchCommand,
				Flags:     appFlags(),
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate all stored embeddings with a new model",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./recipe_db",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entities to embed in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entities",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func appFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   "./recipe_db",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL for embedding and extraction",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "extractor-model",
			Usage: "Extraction model name",
			Value: "qwen2.5:3b",
		},
		&cli.Float64Flag{
			Name:  "ingredient-threshold",
			Usage: "Minimum similarity for fuzzy ingredient matches",
			Value: 0.65,
		},
		&cli.Float64Flag{
			Name:  "tag-threshold",
			Usage: "Minimum similarity for fuzzy tag matches",
			Value: 0.70,
		},
	}
}

func openApp(ctx context.Context, c *cli.Context) (*recipechat.App, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithExtractorModel(c.String("extractor-model")),
		ai.WithIngredientThreshold(float32(c.Float64("ingredient-threshold"))),
		ai.WithTagThreshold(float32(c.Float64("tag-threshold"))),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return recipechat.NewApp(ctx, c.String("db"), recipechat.WithAIConfig(aiConfig))
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	app, err := openApp(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer app.Close()

	manager, err := app.NewManager()
	if err != nil {
		return fmt.Errorf("failed to build conversation manager: %w", err)
	}

	sessionKey := uuid.NewString()
	fmt.Println("Describe what you want to cook. An empty line quits.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			break
		}

		result, err := manager.SubmitTurn(ctx, sessionKey, message)
		if err != nil {
			printTurnError(err)
			continue
		}
		printResult(result)
	}
	return scanner.Err()
}

func searchCommand(c *cli.Context) error {
	message := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if message == "" {
		return fmt.Errorf("a search message is required")
	}

	ctx := context.Background()
	app, err := openApp(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer app.Close()

	manager, err := app.NewManager()
	if err != nil {
		return fmt.Errorf("failed to build conversation manager: %w", err)
	}

	result, err := manager.SubmitTurn(ctx, uuid.NewString(), message)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	repos, err := badger.OpenRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	reembedder := reembed.NewReembedder(repos.Recipes, repos.Ingredients, repos.Tags,
		embedder, config, os.Stderr)
	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func printTurnError(err error) {
	switch {
	case errors.Is(err, conversation.ErrExtractionFailed):
		fmt.Println("I could not understand that, please rephrase.")
	case errors.Is(err, search.ErrCorpusUnavailable):
		fmt.Println("The recipe corpus is unavailable right now, please retry.")
	default:
		fmt.Printf("Something went wrong: %v\n", err)
	}
}

func printResult(result *conversation.TurnResult) {
	if result.Reset {
		fmt.Println("(starting a fresh search)")
	}
	for _, conflict := range result.Conflicts {
		fmt.Printf("(switched %q from %s to %s)\n",
			conflict.Name, conflict.Previous, conflict.New)
	}
	for _, miss := range result.Misses {
		fmt.Printf("(I don't know %q, ignoring it)\n", miss)
	}

	fmt.Println(result.Summary)
	for i, ranked := range result.Recipes {
		r := ranked.Recipe
		fmt.Printf("  %d. %s (%.2f)\n", i+1, r.Name, ranked.Score)
		if r.Description != "" {
			fmt.Printf("     %s\n", r.Description)
		}
		if r.Nutrition != (core.Nutrition{}) {
			fmt.Printf("     %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat per serving\n",
				r.Nutrition.CaloriesKcal, r.Nutrition.ProteinG,
				r.Nutrition.CarbsG, r.Nutrition.FatG)
		}
	}
	if len(result.Recipes) == 0 {
		fmt.Println("  no recipes matched")
	}
	fmt.Println()
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
