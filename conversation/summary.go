package conversation

import (
	"fmt"
	"strings"

	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/resolve"
	"github.com/tastegraph/recipechat/search"
)

// Summarize renders the accumulated query and search outcome as one
// natural-language sentence for the conversation UI.
func Summarize(q core.RecipeQuery, result *search.Result, snap *resolve.Snapshot) string {
	var sb strings.Builder

	switch {
	case result.Exhausted:
		sb.WriteString("No recipes matched, even after loosening the least important constraints")
	case len(result.Recipes) == 1:
		sb.WriteString("Found 1 recipe")
	default:
		fmt.Fprintf(&sb, "Found %d recipes", len(result.Recipes))
	}

	if clause := describeQuery(q, snap); clause != "" {
		sb.WriteString(" ")
		sb.WriteString(clause)
	}
	sb.WriteString(".")

	if len(result.Relaxations) > 0 {
		steps := make([]string, 0, len(result.Relaxations))
		for _, step := range result.Relaxations {
			steps = append(steps, step.Describe())
		}
		sb.WriteString(" To find matches I ")
		sb.WriteString(strings.Join(steps, ", then "))
		sb.WriteString(".")
	}

	return sb.String()
}

func describeQuery(q core.RecipeQuery, snap *resolve.Snapshot) string {
	var clauses []string

	if names := ingredientNames(q.IncludeIngredients, snap); len(names) > 0 {
		clauses = append(clauses, "with "+joinNames(names))
	}
	for _, group := range q.IncludeGroups {
		if group.Name != "" {
			clauses = append(clauses, "with some "+group.Name)
		}
	}
	if names := ingredientNames(q.ExcludeIngredients, snap); len(names) > 0 {
		clauses = append(clauses, "without "+joinNames(names))
	}
	if names := tagNames(q.RequiredTags, snap); len(names) > 0 {
		clauses = append(clauses, "matching "+joinNames(names))
	}
	for _, alt := range q.TagAlternatives {
		if names := tagNames(alt, snap); len(names) > 0 {
			clauses = append(clauses, "matching "+strings.Join(names, " or "))
		}
	}
	if names := tagNames(q.ExcludedTags, snap); len(names) > 0 {
		clauses = append(clauses, "excluding "+joinNames(names))
	}
	if q.FreeText != "" {
		clauses = append(clauses, fmt.Sprintf("like %q", q.FreeText))
	}

	return strings.Join(clauses, ", ")
}

func ingredientNames(ids []core.ID, snap *resolve.Snapshot) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if ing := snap.IngredientByID(id); ing != nil {
			names = append(names, ing.Name)
		}
	}
	return names
}

func tagNames(ids []core.ID, snap *resolve.Snapshot) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if tag := snap.TagByID(id); tag != nil {
			names = append(names, strings.ReplaceAll(tag.Name, "-", " "))
		}
	}
	return names
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
