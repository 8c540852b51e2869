package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/core"
)

// tagTable is a map-backed TagGroupLookup for tests.
type tagTable map[core.ID]*core.Tag

func (t tagTable) TagByID(id core.ID) *core.Tag { return t[id] }

func newTagTable(tags ...*core.Tag) tagTable {
	table := make(tagTable, len(tags))
	for _, tag := range tags {
		tag.Id = core.TagIDFromName(tag.Group, tag.Name)
		table[tag.Id] = tag
	}
	return table
}

func cuisine(name string) core.ID { return core.TagIDFromName(core.TagGroupCuisinesRegional, name) }

func meal(name string) core.ID { return core.TagIDFromName(core.TagGroupMealCourses, name) }

func testTags() tagTable {
	return newTagTable(
		&core.Tag{Name: "mexican", Group: core.TagGroupCuisinesRegional},
		&core.Tag{Name: "breakfast", Group: core.TagGroupMealCourses},
		&core.Tag{Name: "vegetarian", Group: core.TagGroupDietaryHealth},
		&core.Tag{Name: "30-minutes-or-less", Group: core.TagGroupTimeDuration},
	)
}

func TestDecideContinuation_OracleHintWins(t *testing.T) {
	current := core.NewRecipeQuery()
	current.IncludeIngredients = []core.ID{ing("tomato")}
	extracted := core.RecipeQuery{IncludeIngredients: []core.ID{ing("tomato")}}

	// A reset hint overrides the overlap policy even with shared members.
	d := DecideContinuation(ai.HintReset, "user said instead", current, extracted, testTags())
	assert.True(t, d.Reset)
	assert.Equal(t, "user said instead", d.Reason)

	d = DecideContinuation(ai.HintContinue, "refinement", current, extracted, testTags())
	assert.False(t, d.Reset)
}

func TestDecideContinuation_FirstTurnContinues(t *testing.T) {
	d := DecideContinuation(ai.HintNone, "", core.NewRecipeQuery(), core.RecipeQuery{
		RequiredTags: []core.ID{cuisine("mexican")},
	}, testTags())
	assert.False(t, d.Reset)
}

func TestDecideContinuation_SharedMemberContinues(t *testing.T) {
	current := core.NewRecipeQuery()
	current.RequiredTags = []core.ID{meal("breakfast")}

	// New cuisine tag, but breakfast is restated: continuation.
	extracted := core.RecipeQuery{
		RequiredTags: []core.ID{meal("breakfast"), cuisine("mexican")},
	}
	d := DecideContinuation(ai.HintNone, "", current, extracted, testTags())
	assert.False(t, d.Reset)
}

func TestDecideContinuation_DisjointWithTopicTagResets(t *testing.T) {
	current := core.NewRecipeQuery()
	current.IncludeIngredients = []core.ID{ing("tomato")}
	current.RequiredTags = []core.ID{meal("breakfast")}

	extracted := core.RecipeQuery{
		RequiredTags: []core.ID{cuisine("mexican")},
	}
	d := DecideContinuation(ai.HintNone, "", current, extracted, testTags())
	assert.True(t, d.Reset)
}

func TestDecideContinuation_DisjointWithoutTopicTagContinues(t *testing.T) {
	current := core.NewRecipeQuery()
	current.IncludeIngredients = []core.ID{ing("tomato")}

	// Disjoint constraints, but only a time tag: treated as refinement.
	extracted := core.RecipeQuery{
		RequiredTags: []core.ID{core.TagIDFromName(core.TagGroupTimeDuration, "30-minutes-or-less")},
	}
	d := DecideContinuation(ai.HintNone, "", current, extracted, testTags())
	assert.False(t, d.Reset)
}

func TestDecideContinuation_TopicTagInAlternatives(t *testing.T) {
	current := core.NewRecipeQuery()
	current.IncludeIngredients = []core.ID{ing("tomato")}

	extracted := core.RecipeQuery{
		TagAlternatives: [][]core.ID{{cuisine("mexican"), meal("breakfast")}},
	}
	d := DecideContinuation(ai.HintNone, "", current, extracted, testTags())
	assert.True(t, d.Reset)
}
