package badger

import (
	"fmt"
	"strings"

	"github.com/tastegraph/recipechat/core"
)

// Key prefixes for different data types
const (
	recipeRecordPrefix      = "recrec"
	ingredientRecordPrefix  = "ingrec"
	ingredientVariantPrefix = "ingvar"
	tagRecordPrefix         = "tagrec"
	tagNamePrefix           = "tagnam"
	sessionRecordPrefix     = "sesrec"
)

// makeRecipeKey generates a key for a recipe by ID.
func makeRecipeKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", recipeRecordPrefix, id))
}

// makeIngredientKey generates a key for a canonical ingredient by ID.
func makeIngredientKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", ingredientRecordPrefix, id))
}

// makeVariantKey generates a key for the variant index.
// Variants are normalized to lowercase trimmed form so lookups are exact.
// Format: prefix:variant
func makeVariantKey(variant string) []byte {
	return []byte(ingredientVariantPrefix + ":" + normalizeTerm(variant))
}

// makeTagKey generates a key for a tag by ID.
func makeTagKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", tagRecordPrefix, id))
}

// makeTagNameKey generates a composite key for tag lookup by (group, name).
// Format: prefix:group:name
func makeTagNameKey(group core.TagGroup, name string) []byte {
	return []byte(tagNamePrefix + ":" + group.String() + ":" + normalizeTerm(name))
}

// makeSessionKey generates a key for a session by its key string.
func makeSessionKey(key string) []byte {
	return []byte(sessionRecordPrefix + ":" + key)
}

// normalizeTerm lowercases and trims a surface form for index keys.
func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
