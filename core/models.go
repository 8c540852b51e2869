package core

import (
	"encoding/binary"
	"slices"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so identical content
// always produces the same identity.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IngredientIDFromName generates the canonical ID for an ingredient name.
// Names are lowercased and trimmed before hashing so "Tomatoes " and
// "tomatoes" resolve to the same identity.
func IngredientIDFromName(name string) ID {
	return IDFromContent("ing:" + strings.ToLower(strings.TrimSpace(name)))
}

// TagIDFromName generates the canonical ID for a tag name within a group.
func TagIDFromName(group TagGroup, name string) ID {
	return IDFromContent("tag:" + group.String() + ":" + strings.ToLower(strings.TrimSpace(name)))
}

// RecipeIDFromName generates the canonical ID for a recipe by name.
func RecipeIDFromName(name string) ID {
	return IDFromContent("rec:" + strings.ToLower(strings.TrimSpace(name)))
}

// Result count bounds for a single search.
const (
	MinResultCount     = 1
	MaxResultCount     = 10
	DefaultResultCount = 5
)

// CanonicalIngredient is the authoritative identity for an ingredient.
// Many textual variants map to one canonical ingredient; a variant string
// is unique across the whole vocabulary.
type CanonicalIngredient struct {
	Id         ID
	Name       string
	Variants   []string
	Vector     []float32 // Embedding of the canonical name (populated at seed time)
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// IngredientGroup is a broader ingredient category (e.g. "protein")
// satisfied by any of its members.
type IngredientGroup struct {
	Name    string
	Members []ID
}

// Tag is a canonical search tag. A tag belongs to exactly one group.
type Tag struct {
	Id         ID
	Name       string
	Group      TagGroup
	Vector     []float32
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Nutrition holds per-serving nutrition facts.
type Nutrition struct {
	CaloriesKcal float64
	FatG         float64
	CarbsG       float64
	ProteinG     float64
}

// Recipe is one corpus entry. Ingredient and tag membership is stored as
// canonical identities; RawIngredients keeps the original ingredient lines
// for display.
type Recipe struct {
	Id             ID
	Name           string
	Description    string
	Ingredients    []ID
	RawIngredients []string
	Tags           []ID
	Steps          []string
	Servings       int
	ServingSize    string
	Nutrition      Nutrition
	Vector         []float32 // Embedding of the recipe's semantic text (populated at seed time)
	InsertedAt     time.Time
	UpdatedAt      time.Time
}

// HasIngredient reports whether the recipe contains the canonical ingredient.
func (r *Recipe) HasIngredient(id ID) bool {
	return slices.Contains(r.Ingredients, id)
}

// HasTag reports whether the recipe carries the canonical tag.
func (r *Recipe) HasTag(id ID) bool {
	return slices.Contains(r.Tags, id)
}

// RankedRecipe is a recipe plus its similarity score against the query's
// semantic representation. The score orders results, it never filters them.
type RankedRecipe struct {
	Recipe *Recipe
	Score  float32
}

// Directive is the polarity of the most recent user statement about an
// ingredient or tag identity.
type Directive int

const (
	DirectiveNone Directive = iota
	// DirectiveInclude means the identity must be present.
	DirectiveInclude
	// DirectiveExclude means the identity must be absent.
	DirectiveExclude
)

// String returns a human-readable directive name.
func (d Directive) String() string {
	switch d {
	case DirectiveInclude:
		return "include"
	case DirectiveExclude:
		return "exclude"
	default:
		return "none"
	}
}

// Conflict records one override applied during a merge: the newest directive
// for an identity displaced an older one. Conflicts are telemetry only and
// never surface as errors.
type Conflict struct {
	Identity ID
	Name     string
	Previous Directive
	New      Directive
	TurnSeq  int
}

// ConversationTurn is an immutable record of one processed message.
type ConversationTurn struct {
	Seq       int
	Message   string
	Extracted RecipeQuery // partial query before merging
	Merged    RecipeQuery // accumulated query after this turn
	ResultIds []ID
	Reset     bool
	Timestamp time.Time
}

// SessionState owns the ordered turn history of one conversation and the
// current accumulated query. Turns are append-only; insertion order is
// chronological order.
type SessionState struct {
	Key       string
	Turns     []ConversationTurn
	Current   RecipeQuery
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSessionState creates an empty session for the given opaque key.
func NewSessionState(key string) *SessionState {
	now := time.Now().UTC()
	return &SessionState{
		Key:       key,
		Current:   NewRecipeQuery(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NextSeq returns the sequence number the next turn will receive.
func (s *SessionState) NextSeq() int {
	return len(s.Turns) + 1
}

// AppendTurn records a completed turn and replaces the current query.
func (s *SessionState) AppendTurn(turn ConversationTurn) {
	s.Turns = append(s.Turns, turn)
	s.Current = turn.Merged.Clone()
	s.UpdatedAt = time.Now().UTC()
}

// History returns the raw user messages in chronological order.
func (s *SessionState) History() []string {
	msgs := make([]string, 0, len(s.Turns))
	for _, t := range s.Turns {
		msgs = append(msgs, t.Message)
	}
	return msgs
}
