package core

import "fmt"

// TagGroup partitions the tag vocabulary. Every tag belongs to exactly
// one group. Groups drive the default OR-vs-AND interpretation of multiple
// tag mentions and the relaxation ordering during search.
type TagGroup int

const (
	TagGroupUnknown TagGroup = iota
	// TagGroupTimeDuration covers cooking/prep time tags such as
	// "30-minutes-or-less".
	TagGroupTimeDuration
	// TagGroupDifficultyScale covers skill level, simplicity and serving
	// scale tags.
	TagGroupDifficultyScale
	// TagGroupDietaryHealth covers diets and allergen exclusions. Tags in
	// this group are never dropped by the relaxation ladder.
	TagGroupDietaryHealth
	// TagGroupCuisinesRegional covers geographic and cultural origins.
	TagGroupCuisinesRegional
	// TagGroupMealCourses covers meal type and course tags.
	TagGroupMealCourses
	// TagGroupPreparationMethod covers how the food is cooked.
	TagGroupPreparationMethod
)

var tagGroupNames = map[TagGroup]string{
	TagGroupTimeDuration:      "TIME_DURATION",
	TagGroupDifficultyScale:   "DIFFICULTY_SCALE",
	TagGroupDietaryHealth:     "DIETARY_HEALTH",
	TagGroupCuisinesRegional:  "CUISINES_REGIONAL",
	TagGroupMealCourses:       "MEAL_COURSES",
	TagGroupPreparationMethod: "PREPARATION_METHOD",
}

// extractionGroupAliases folds the extraction-side field names onto the
// stored groups: diets and allergen exclusions share one dietary group, and
// serving scale shares the difficulty group.
var extractionGroupAliases = map[string]TagGroup{
	"DIETS":   TagGroupDietaryHealth,
	"FREE_OF": TagGroupDietaryHealth,
	"SCALE":   TagGroupDifficultyScale,
}

// String returns the storage-side group name.
func (g TagGroup) String() string {
	if name, ok := tagGroupNames[g]; ok {
		return name
	}
	return "UNKNOWN"
}

// Critical reports whether tags in this group are protected from relaxation.
func (g TagGroup) Critical() bool {
	return g == TagGroupDietaryHealth
}

// TagGroups returns all valid groups in declaration order.
func TagGroups() []TagGroup {
	return []TagGroup{
		TagGroupTimeDuration,
		TagGroupDifficultyScale,
		TagGroupDietaryHealth,
		TagGroupCuisinesRegional,
		TagGroupMealCourses,
		TagGroupPreparationMethod,
	}
}

// ParseTagGroup maps a group name (storage-side or extraction-side) to a
// TagGroup. Unknown names are rejected so invalid vocabulary fails at the
// resolver boundary instead of propagating as a silent no-op.
func ParseTagGroup(name string) (TagGroup, error) {
	for g, n := range tagGroupNames {
		if n == name {
			return g, nil
		}
	}
	if g, ok := extractionGroupAliases[name]; ok {
		return g, nil
	}
	return TagGroupUnknown, fmt.Errorf("%w: %q", ErrUnknownTagGroup, name)
}

// QuickTimeTags are the time-duration tags the corpus uses for "quick"
// style requests, fastest first.
var QuickTimeTags = []string{
	"15-minutes-or-less",
	"30-minutes-or-less",
	"60-minutes-or-less",
}
