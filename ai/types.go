package ai

// ExtractedQuery is the structured part of one message: explicitly mentioned
// ingredients with polarity, the requested result count, and the remaining
// free text. All fields are raw user phrasing; canonical resolution happens
// downstream.
type ExtractedQuery struct {
	// FreeText is the natural-language summary of the desired recipes,
	// excluding specific ingredient mentions.
	FreeText string

	// IncludeIngredients are ingredients the user explicitly wants present.
	IncludeIngredients []string

	// ExcludeIngredients are ingredients the user explicitly wants absent.
	ExcludeIngredients []string

	// ResultCount is the requested number of results, 0 when unstated.
	ResultCount int
}

// TagMentions holds the user's phrasing per extraction group. A mention may
// contain several comma- or "or"-separated terms ("vegetarian or vegan");
// splitting is the tag classifier's job.
type TagMentions struct {
	TimeDuration      string // how long the recipe may take
	DifficultyScale   string // ease or complexity
	Scale             string // serving size or portions
	FreeOf            string // allergens or ingredients to avoid
	Diets             string // named dietary patterns
	CuisinesRegional  string // cultural or regional cuisine
	MealCourses       string // meal type or course
	PreparationMethod string // how the food is cooked
}

// Empty reports whether no group was mentioned.
func (t *TagMentions) Empty() bool {
	return t == nil || (t.TimeDuration == "" && t.DifficultyScale == "" &&
		t.Scale == "" && t.FreeOf == "" && t.Diets == "" &&
		t.CuisinesRegional == "" && t.MealCourses == "" && t.PreparationMethod == "")
}

// Fields returns the non-empty mentions keyed by extraction group name.
func (t *TagMentions) Fields() map[string]string {
	if t == nil {
		return nil
	}
	out := make(map[string]string, 8)
	for name, value := range map[string]string{
		"TIME_DURATION":      t.TimeDuration,
		"DIFFICULTY_SCALE":   t.DifficultyScale,
		"SCALE":              t.Scale,
		"FREE_OF":            t.FreeOf,
		"DIETS":              t.Diets,
		"CUISINES_REGIONAL":  t.CuisinesRegional,
		"MEAL_COURSES":       t.MealCourses,
		"PREPARATION_METHOD": t.PreparationMethod,
	} {
		if value != "" {
			out[name] = value
		}
	}
	return out
}

// ContinuationHint is the oracle's opinion on whether a message continues
// the current search.
type ContinuationHint int

const (
	// HintNone means the oracle gave no usable signal.
	HintNone ContinuationHint = iota
	// HintContinue means the message refines the existing search.
	HintContinue
	// HintReset means the message starts a new search.
	HintReset
)

// String returns a human-readable hint name.
func (h ContinuationHint) String() string {
	switch h {
	case HintContinue:
		return "continue"
	case HintReset:
		return "reset"
	default:
		return "none"
	}
}
