package resolve

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/core"
)

// extractionFieldOrder fixes the iteration order over extraction groups so
// classification output is deterministic for a given set of mentions.
var extractionFieldOrder = []string{
	"TIME_DURATION",
	"DIFFICULTY_SCALE",
	"SCALE",
	"FREE_OF",
	"DIETS",
	"CUISINES_REGIONAL",
	"MEAL_COURSES",
	"PREPARATION_METHOD",
}

// TagResolution is the classifier's output: conjunctive requirements plus
// alternative sets, with unresolvable mentions reported separately.
type TagResolution struct {
	RequiredTags    []core.ID
	TagAlternatives [][]core.ID
	Misses          []string
}

// Empty reports whether nothing was resolved and nothing missed.
func (t *TagResolution) Empty() bool {
	return len(t.RequiredTags) == 0 && len(t.TagAlternatives) == 0 && len(t.Misses) == 0
}

// TagClassifier maps extracted tag mentions onto the stored tag vocabulary.
//
// Grouping policy lives here and only here: multiple mentions from the same
// group without an explicit conjunction become one alternative set (OR),
// while mentions from different groups — and explicitly conjoined mentions —
// are all required (AND).
type TagClassifier struct {
	cache        *Cache
	embedder     ai.Embedder
	tagThreshold float32
	logger       *slog.Logger
}

// ClassifierOption is a functional option for configuring a TagClassifier.
type ClassifierOption func(*TagClassifier)

// WithTagThreshold sets the minimum similarity for a fuzzy tag match.
func WithTagThreshold(threshold float32) ClassifierOption {
	return func(c *TagClassifier) {
		c.tagThreshold = threshold
	}
}

// WithClassifierLogger sets a custom logger.
func WithClassifierLogger(logger *slog.Logger) ClassifierOption {
	return func(c *TagClassifier) {
		c.logger = logger
	}
}

// NewTagClassifier creates a tag classifier over the reference cache.
func NewTagClassifier(cache *Cache, embedder ai.Embedder, opts ...ClassifierOption) *TagClassifier {
	c := &TagClassifier{
		cache:        cache,
		embedder:     embedder,
		tagThreshold: 0.70,
		logger:       slog.Default().With("component", "tag-classifier"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify resolves every mention in the extraction output.
// Unresolvable mentions are dropped and reported, never fatal.
func (c *TagClassifier) Classify(ctx context.Context, mentions *ai.TagMentions) (*TagResolution, error) {
	result := &TagResolution{}
	if mentions == nil || mentions.Empty() {
		return result, nil
	}

	snap, err := c.cache.Snapshot()
	if err != nil {
		return nil, err
	}

	fields := mentions.Fields()
	for _, fieldName := range extractionFieldOrder {
		field := strings.TrimSpace(fields[fieldName])
		if field == "" {
			continue
		}

		group, err := core.ParseTagGroup(fieldName)
		if err != nil {
			// Closed vocabulary; a name not in the taxonomy is a bug in
			// the extraction wiring, not user input.
			return nil, err
		}

		// A whole-field exact match wins before any splitting, so tag
		// names that contain conjunctions ("30 minutes or less") are not
		// torn apart.
		if tag := exactTagMatch(snap, group, field); tag != nil {
			result.RequiredTags = append(result.RequiredTags, tag.Id)
			continue
		}

		terms, conjunctive := splitMentions(field)

		var resolved []core.ID
		for _, term := range terms {
			if group == core.TagGroupTimeDuration && isQuickMention(term) {
				resolved = append(resolved, c.resolveQuickTags(snap)...)
				continue
			}

			tag, err := c.resolveMention(ctx, snap, group, term)
			if err != nil {
				return nil, err
			}
			if tag == nil {
				c.logger.Debug("tag resolution miss", "group", group.String(), "term", term)
				result.Misses = append(result.Misses, term)
				continue
			}
			resolved = append(resolved, tag.Id)
		}

		resolved = dedupeIDs(resolved)
		switch {
		case len(resolved) == 0:
			// nothing resolved in this group
		case len(resolved) == 1 || conjunctive:
			result.RequiredTags = append(result.RequiredTags, resolved...)
		default:
			// Same group, no explicit conjunction: alternatives.
			result.TagAlternatives = append(result.TagAlternatives, resolved)
		}
	}

	return result, nil
}

// resolveMention maps one mention to a tag: exact name first (both the raw
// normalized form and its hyphenated spelling, since stored tags are
// hyphenated), then embedding similarity within the group.
func (c *TagClassifier) resolveMention(ctx context.Context, snap *Snapshot, group core.TagGroup, term string) (*core.Tag, error) {
	normalized := normalizeTerm(term)
	if tag := exactTagMatch(snap, group, normalized); tag != nil {
		return tag, nil
	}

	vector, err := c.embedder.EmbedText(ctx, normalized)
	if err != nil {
		return nil, err
	}
	tag, score := snap.MostSimilarTag(group, vector, c.tagThreshold)
	if tag != nil {
		c.logger.Debug("fuzzy tag match",
			"term", term,
			"tag", tag.Name,
			"group", tag.Group.String(),
			"similarity", score)
	}
	return tag, nil
}

// exactTagMatch looks a mention up by its normalized form and by its
// hyphenated spelling, since stored tag names are hyphenated.
func exactTagMatch(snap *Snapshot, group core.TagGroup, term string) *core.Tag {
	normalized := normalizeTerm(term)
	if tag := snap.TagByName(group, normalized); tag != nil {
		return tag
	}
	return snap.TagByName(group, strings.ReplaceAll(normalized, " ", "-"))
}

// resolveQuickTags expands a "quick" style mention into the known
// quick-time tags present in the vocabulary, fastest first.
func (c *TagClassifier) resolveQuickTags(snap *Snapshot) []core.ID {
	var ids []core.ID
	for _, name := range core.QuickTimeTags {
		if tag := snap.TagByName(core.TagGroupTimeDuration, name); tag != nil {
			ids = append(ids, tag.Id)
		}
	}
	return ids
}

// splitMentions splits a mention field into individual terms and reports
// whether the user stated an explicit conjunction.
func splitMentions(field string) (terms []string, conjunctive bool) {
	lower := strings.ToLower(field)
	conjunctive = strings.Contains(lower, " and ")

	replaced := strings.ReplaceAll(lower, " and ", ",")
	replaced = strings.ReplaceAll(replaced, " or ", ",")
	for _, part := range strings.Split(replaced, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			terms = append(terms, part)
		}
	}
	return terms, conjunctive
}

// isQuickMention reports whether a time mention asks for "quick" food
// without naming a concrete duration.
func isQuickMention(term string) bool {
	switch normalizeTerm(term) {
	case "quick", "fast", "quick meals", "in a hurry":
		return true
	}
	return false
}

func dedupeIDs(ids []core.ID) []core.ID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[core.ID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
