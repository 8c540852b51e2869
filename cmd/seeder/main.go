package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tastegraph/recipechat"
	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/ingest"
	"github.com/tastegraph/recipechat/nutrition"
)

var (
	dbPath       = flag.String("db", "./recipe_db", "path to BadgerDB database directory")
	seedFileName = flag.String("src", "", "JSON file of seed data (defaults to the built-in demo corpus)")
	aiHost       = flag.String("host", "http://localhost:11434/v1", "OpenAI-compatible embedding service host")
	poolSize     = flag.Int("pool-size", 4, "number of concurrent embedding workers")
	batchSize    = flag.Int("batch-size", 32, "items per embedding batch")

	nutritionURL = flag.String("nutrition-url", "", "nutrition analysis API base URL (empty disables enrichment)")
	nutritionID  = flag.String("nutrition-app-id", "", "nutrition API application id")
	nutritionKey = flag.String("nutrition-app-key", "", "nutrition API application key")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// seedDocument is the on-disk seed format. Recipes refer to ingredients by
// canonical name and to tags as "GROUP:name".
type seedDocument struct {
	Ingredients []seedIngredient `json:"ingredients"`
	Tags        []string         `json:"tags"`
	Recipes     []seedRecipe     `json:"recipes"`
}

type seedIngredient struct {
	Name     string   `json:"name"`
	Variants []string `json:"variants,omitempty"`
}

type seedRecipe struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Ingredients    []string `json:"ingredients"`
	RawIngredients []string `json:"raw_ingredients,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Steps          []string `json:"steps,omitempty"`
	Servings       int      `json:"servings,omitempty"`
}

func loadSeedDocument(filename string) (*seedDocument, error) {
	if filename == "" {
		return &demoCorpus, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var doc seedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &doc, nil
}

func parseTagRef(ref string) (*core.Tag, error) {
	groupName, tagName, ok := strings.Cut(ref, ":")
	if !ok {
		return nil, fmt.Errorf("malformed tag %q: want GROUP:name", ref)
	}
	group, err := core.ParseTagGroup(groupName)
	if err != nil {
		return nil, err
	}
	return &core.Tag{Name: tagName, Group: group}, nil
}

func buildCorpus(doc *seedDocument) ([]*core.CanonicalIngredient, []*core.Tag, []*core.Recipe, error) {
	ingredients := make([]*core.CanonicalIngredient, 0, len(doc.Ingredients))
	known := make(map[string]bool, len(doc.Ingredients))
	for _, seed := range doc.Ingredients {
		ingredients = append(ingredients, &core.CanonicalIngredient{
			Name:     seed.Name,
			Variants: seed.Variants,
		})
		known[seed.Name] = true
	}

	tags := make([]*core.Tag, 0, len(doc.Tags))
	for _, ref := range doc.Tags {
		tag, err := parseTagRef(ref)
		if err != nil {
			return nil, nil, nil, err
		}
		tags = append(tags, tag)
	}

	recipes := make([]*core.Recipe, 0, len(doc.Recipes))
	for _, seed := range doc.Recipes {
		recipe := &core.Recipe{
			Name:           seed.Name,
			Description:    seed.Description,
			RawIngredients: seed.RawIngredients,
			Steps:          seed.Steps,
			Servings:       seed.Servings,
		}
		for _, name := range seed.Ingredients {
			if !known[name] {
				return nil, nil, nil, fmt.Errorf("recipe %q uses unknown ingredient %q", seed.Name, name)
			}
			recipe.Ingredients = append(recipe.Ingredients, core.IngredientIDFromName(name))
		}
		for _, ref := range seed.Tags {
			tag, err := parseTagRef(ref)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("recipe %q: %w", seed.Name, err)
			}
			recipe.Tags = append(recipe.Tags, core.TagIDFromName(tag.Group, tag.Name))
		}
		recipes = append(recipes, recipe)
	}

	return ingredients, tags, recipes, nil
}

func aiConfigFromFlags() *ai.Config {
	return ai.NewConfig(ai.WithHost(*aiHost))
}

func main() {
	ctx := context.Background()
	logger := slog.Default().With("component", "seeder")

	doc, err := loadSeedDocument(*seedFileName)
	if err != nil {
		logger.Error("loading seed data failed", "err", err)
		os.Exit(1)
	}

	ingredients, tags, recipes, err := buildCorpus(doc)
	if err != nil {
		logger.Error("invalid seed data", "err", err)
		os.Exit(1)
	}

	app, err := recipechat.NewApp(ctx, *dbPath,
		recipechat.WithAIConfig(aiConfigFromFlags()))
	if err != nil {
		logger.Error("opening database failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	pipelineOpts := []ingest.Option{
		ingest.WithPoolSize(*poolSize),
		ingest.WithBatchSize(*batchSize),
	}
	if *nutritionURL != "" {
		client, err := nutrition.NewClient(*nutritionURL, *nutritionID, *nutritionKey)
		if err != nil {
			logger.Error("nutrition client setup failed", "err", err)
			os.Exit(1)
		}
		pipelineOpts = append(pipelineOpts, ingest.WithNutrition(client))
	}

	pipeline, err := app.NewIngestPipeline(pipelineOpts...)
	if err != nil {
		logger.Error("pipeline setup failed", "err", err)
		os.Exit(1)
	}
	defer pipeline.Release()

	if err := pipeline.SeedIngredients(ctx, ingredients); err != nil {
		logger.Error("seeding ingredients failed", "err", err)
		os.Exit(1)
	}
	if err := pipeline.SeedTags(ctx, tags); err != nil {
		logger.Error("seeding tags failed", "err", err)
		os.Exit(1)
	}
	if err := pipeline.SeedRecipes(ctx, recipes); err != nil {
		logger.Error("seeding recipes failed", "err", err)
		os.Exit(1)
	}

	if err := app.ReloadReference(ctx); err != nil {
		logger.Error("reloading reference cache failed", "err", err)
		os.Exit(1)
	}

	logger.Info("seeding complete",
		"ingredients", len(ingredients),
		"tags", len(tags),
		"recipes", len(recipes))
}
