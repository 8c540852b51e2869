package ingest

import (
	"strings"

	"github.com/tastegraph/recipechat/core"
)

// IngredientText is the embedding text for a canonical ingredient: the
// name plus every known variant.
func IngredientText(ing *core.CanonicalIngredient) string {
	if len(ing.Variants) == 0 {
		return ing.Name
	}
	return ing.Name + ", " + strings.Join(ing.Variants, ", ")
}

// TagText is the embedding text for a tag: the de-hyphenated name,
// matching how users phrase tags.
func TagText(tag *core.Tag) string {
	return strings.ReplaceAll(tag.Name, "-", " ")
}

// RecipeText is the embedding text for a recipe: name, description and the
// raw ingredient lines. Tag and canonical-ingredient IDs carry no text and
// contribute through the query side instead.
func RecipeText(r *core.Recipe) string {
	parts := make([]string, 0, 2+len(r.RawIngredients))
	parts = append(parts, r.Name)
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	parts = append(parts, r.RawIngredients...)
	return strings.Join(parts, ". ")
}
