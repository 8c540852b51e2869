package core

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the stored domain types. The stored
// vocabulary is small and closed, so the serializers are maintained by hand
// instead of generated. Field order is part of the on-disk format: append
// new fields at the end only.

// IDMUS serializes IDs.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

// Timestamps are stored as Unix microseconds, UTC.

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func unmarshalLen(bs []byte) (int, int, error) {
	l, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return 0, n, err
	}
	if l < 0 {
		return 0, n, fmt.Errorf("%w: negative length %d", ErrCorruptData, l)
	}
	return l, n, nil
}

func marshalIDSlice(s []ID, bs []byte) int {
	n := varint.Int.Marshal(len(s), bs)
	for _, id := range s {
		n += IDMUS.Marshal(id, bs[n:])
	}
	return n
}

func unmarshalIDSlice(bs []byte) ([]ID, int, error) {
	l, n, err := unmarshalLen(bs)
	if err != nil {
		return nil, n, err
	}
	if l == 0 {
		return nil, n, nil
	}
	s := make([]ID, l)
	for i := range s {
		var c int
		s[i], c, err = IDMUS.Unmarshal(bs[n:])
		n += c
		if err != nil {
			return nil, n, err
		}
	}
	return s, n, nil
}

func sizeIDSlice(s []ID) int {
	size := varint.Int.Size(len(s))
	for _, id := range s {
		size += IDMUS.Size(id)
	}
	return size
}

func marshalStringSlice(s []string, bs []byte) int {
	n := varint.Int.Marshal(len(s), bs)
	for _, v := range s {
		n += ord.String.Marshal(v, bs[n:])
	}
	return n
}

func unmarshalStringSlice(bs []byte) ([]string, int, error) {
	l, n, err := unmarshalLen(bs)
	if err != nil {
		return nil, n, err
	}
	if l == 0 {
		return nil, n, nil
	}
	s := make([]string, l)
	for i := range s {
		var c int
		s[i], c, err = ord.String.Unmarshal(bs[n:])
		n += c
		if err != nil {
			return nil, n, err
		}
	}
	return s, n, nil
}

func sizeStringSlice(s []string) int {
	size := varint.Int.Size(len(s))
	for _, v := range s {
		size += ord.String.Size(v)
	}
	return size
}

func marshalVector(v []float32, bs []byte) int {
	n := varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func unmarshalVector(bs []byte) ([]float32, int, error) {
	l, n, err := unmarshalLen(bs)
	if err != nil {
		return nil, n, err
	}
	if l == 0 {
		return nil, n, nil
	}
	v := make([]float32, l)
	for i := range v {
		var c int
		v[i], c, err = raw.Float32.Unmarshal(bs[n:])
		n += c
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func sizeVector(v []float32) int {
	size := varint.Int.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}

// IngredientMUS serializes CanonicalIngredient values.
var IngredientMUS = ingredientMUS{}

type ingredientMUS struct{}

func (ingredientMUS) Marshal(v CanonicalIngredient, bs []byte) int {
	n := IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += marshalStringSlice(v.Variants, bs[n:])
	n += marshalVector(v.Vector, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (ingredientMUS) Unmarshal(bs []byte) (v CanonicalIngredient, n int, err error) {
	var c int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Name, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Variants, c, err = unmarshalStringSlice(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Vector, c, err = unmarshalVector(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.InsertedAt, c, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.UpdatedAt, c, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	return v, n, nil
}

func (ingredientMUS) Size(v CanonicalIngredient) int {
	return IDMUS.Size(v.Id) +
		ord.String.Size(v.Name) +
		sizeStringSlice(v.Variants) +
		sizeVector(v.Vector) +
		sizeTime(v.InsertedAt) +
		sizeTime(v.UpdatedAt)
}

// TagMUS serializes Tag values.
var TagMUS = tagMUS{}

type tagMUS struct{}

func (tagMUS) Marshal(v Tag, bs []byte) int {
	n := IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += varint.Int.Marshal(int(v.Group), bs[n:])
	n += marshalVector(v.Vector, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (tagMUS) Unmarshal(bs []byte) (v Tag, n int, err error) {
	var c int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Name, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	var group int
	if group, c, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	v.Group = TagGroup(group)
	if v.Vector, c, err = unmarshalVector(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.InsertedAt, c, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.UpdatedAt, c, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	return v, n, nil
}

func (tagMUS) Size(v Tag) int {
	return IDMUS.Size(v.Id) +
		ord.String.Size(v.Name) +
		varint.Int.Size(int(v.Group)) +
		sizeVector(v.Vector) +
		sizeTime(v.InsertedAt) +
		sizeTime(v.UpdatedAt)
}

// RecipeMUS serializes Recipe values.
var RecipeMUS = recipeMUS{}

type recipeMUS struct{}

func (recipeMUS) Marshal(v Recipe, bs []byte) int {
	n := IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += marshalIDSlice(v.Ingredients, bs[n:])
	n += marshalStringSlice(v.RawIngredients, bs[n:])
	n += marshalIDSlice(v.Tags, bs[n:])
	n += marshalStringSlice(v.Steps, bs[n:])
	n += varint.Int.Marshal(v.Servings, bs[n:])
	n += ord.String.Marshal(v.ServingSize, bs[n:])
	n += raw.Float64.Marshal(v.Nutrition.CaloriesKcal, bs[n:])
	n += raw.Float64.Marshal(v.Nutrition.FatG, bs[n:])
	n += raw.Float64.Marshal(v.Nutrition.CarbsG, bs[n:])
	n += raw.Float64.Marshal(v.Nutrition.ProteinG, bs[n:])
	n += marshalVector(v.Vector, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (recipeMUS) Unmarshal(bs []byte) (v Recipe, n int, err error) {
	var c int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Name, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Description, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Ingredients, c, err = unmarshalIDSlice(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.RawIngredients, c, err = unmarshalStringSlice(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Tags, c, err = unmarshalIDSlice(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Steps, c, err = unmarshalStringSlice(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Servings, c, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.ServingSize, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Nutrition.CaloriesKcal, c, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Nutrition.FatG, c, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Nutrition.CarbsG, c, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Nutrition.ProteinG, c, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.Vector, c, err = unmarshalVector(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.InsertedAt, c, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.UpdatedAt, c, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	return v, n, nil
}

func (recipeMUS) Size(v Recipe) int {
	return IDMUS.Size(v.Id) +
		ord.String.Size(v.Name) +
		ord.String.Size(v.Description) +
		sizeIDSlice(v.Ingredients) +
		sizeStringSlice(v.RawIngredients) +
		sizeIDSlice(v.Tags) +
		sizeStringSlice(v.Steps) +
		varint.Int.Size(v.Servings) +
		ord.String.Size(v.ServingSize) +
		raw.Float64.Size(v.Nutrition.CaloriesKcal) +
		raw.Float64.Size(v.Nutrition.FatG) +
		raw.Float64.Size(v.Nutrition.CarbsG) +
		raw.Float64.Size(v.Nutrition.ProteinG) +
		sizeVector(v.Vector) +
		sizeTime(v.InsertedAt) +
		sizeTime(v.UpdatedAt)
}

func marshalGroup(g IngredientGroup, bs []byte) int {
	n := ord.String.Marshal(g.Name, bs)
	n += marshalIDSlice(g.Members, bs[n:])
	return n
}

func unmarshalGroup(bs []byte) (g IngredientGroup, n int, err error) {
	var c int
	if g.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if g.Members, c, err = unmarshalIDSlice(bs[n:]); err != nil {
		return g, n + c, err
	}
	n += c
	return g, n, nil
}

func sizeGroup(g IngredientGroup) int {
	return ord.String.Size(g.Name) + sizeIDSlice(g.Members)
}

// RecipeQueryMUS serializes RecipeQuery values.
var RecipeQueryMUS = recipeQueryMUS{}

type recipeQueryMUS struct{}

func (recipeQueryMUS) Marshal(v RecipeQuery, bs []byte) int {
	n := ord.String.Marshal(v.FreeText, bs)
	n += marshalIDSlice(v.IncludeIngredients, bs[n:])
	n += varint.Int.Marshal(len(v.IncludeGroups), bs[n:])
	for _, g := range v.IncludeGroups {
		n += marshalGroup(g, bs[n:])
	}
	n += marshalIDSlice(v.ExcludeIngredients, bs[n:])
	n += marshalIDSlice(v.RequiredTags, bs[n:])
	n += varint.Int.Marshal(len(v.TagAlternatives), bs[n:])
	for _, alt := range v.TagAlternatives {
		n += marshalIDSlice(alt, bs[n:])
	}
	n += marshalIDSlice(v.ExcludedTags, bs[n:])
	n += varint.Int.Marshal(v.ResultCount, bs[n:])
	return n
}

func (recipeQueryMUS) Unmarshal(bs []byte) (v RecipeQuery, n int, err error) {
	var c int
	if v.FreeText, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.IncludeIngredients, c, err = unmarshalIDSlice(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	var l int
	if l, c, err = unmarshalLen(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if l > 0 {
		v.IncludeGroups = make([]IngredientGroup, l)
		for i := range v.IncludeGroups {
			if v.IncludeGroups[i], c, err = unmarshalGroup(bs[n:]); err != nil {
				return v, n + c, err
			}
			n += c
		}
	}
	if v.ExcludeIngredients, c, err = unmarshalIDSlice(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.RequiredTags, c, err = unmarshalIDSlice(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if l, c, err = unmarshalLen(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if l > 0 {
		v.TagAlternatives = make([][]ID, l)
		for i := range v.TagAlternatives {
			if v.TagAlternatives[i], c, err = unmarshalIDSlice(bs[n:]); err != nil {
				return v, n + c, err
			}
			n += c
		}
	}
	if v.ExcludedTags, c, err = unmarshalIDSlice(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.ResultCount, c, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	return v, n, nil
}

func (recipeQueryMUS) Size(v RecipeQuery) int {
	size := ord.String.Size(v.FreeText) +
		sizeIDSlice(v.IncludeIngredients) +
		varint.Int.Size(len(v.IncludeGroups))
	for _, g := range v.IncludeGroups {
		size += sizeGroup(g)
	}
	size += sizeIDSlice(v.ExcludeIngredients) +
		sizeIDSlice(v.RequiredTags) +
		varint.Int.Size(len(v.TagAlternatives))
	for _, alt := range v.TagAlternatives {
		size += sizeIDSlice(alt)
	}
	size += sizeIDSlice(v.ExcludedTags) +
		varint.Int.Size(v.ResultCount)
	return size
}

func marshalTurn(t ConversationTurn, bs []byte) int {
	n := varint.Int.Marshal(t.Seq, bs)
	n += ord.String.Marshal(t.Message, bs[n:])
	n += RecipeQueryMUS.Marshal(t.Extracted, bs[n:])
	n += RecipeQueryMUS.Marshal(t.Merged, bs[n:])
	n += marshalIDSlice(t.ResultIds, bs[n:])
	n += ord.Bool.Marshal(t.Reset, bs[n:])
	n += marshalTime(t.Timestamp, bs[n:])
	return n
}

func unmarshalTurn(bs []byte) (t ConversationTurn, n int, err error) {
	var c int
	if t.Seq, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	if t.Message, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return t, n + c, err
	}
	n += c
	if t.Extracted, c, err = RecipeQueryMUS.Unmarshal(bs[n:]); err != nil {
		return t, n + c, err
	}
	n += c
	if t.Merged, c, err = RecipeQueryMUS.Unmarshal(bs[n:]); err != nil {
		return t, n + c, err
	}
	n += c
	if t.ResultIds, c, err = unmarshalIDSlice(bs[n:]); err != nil {
		return t, n + c, err
	}
	n += c
	if t.Reset, c, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return t, n + c, err
	}
	n += c
	if t.Timestamp, c, err = unmarshalTime(bs[n:]); err != nil {
		return t, n + c, err
	}
	n += c
	return t, n, nil
}

func sizeTurn(t ConversationTurn) int {
	return varint.Int.Size(t.Seq) +
		ord.String.Size(t.Message) +
		RecipeQueryMUS.Size(t.Extracted) +
		RecipeQueryMUS.Size(t.Merged) +
		sizeIDSlice(t.ResultIds) +
		ord.Bool.Size(t.Reset) +
		sizeTime(t.Timestamp)
}

// SessionStateMUS serializes SessionState values.
var SessionStateMUS = sessionStateMUS{}

type sessionStateMUS struct{}

func (sessionStateMUS) Marshal(v SessionState, bs []byte) int {
	n := ord.String.Marshal(v.Key, bs)
	n += varint.Int.Marshal(len(v.Turns), bs[n:])
	for _, t := range v.Turns {
		n += marshalTurn(t, bs[n:])
	}
	n += RecipeQueryMUS.Marshal(v.Current, bs[n:])
	n += marshalTime(v.CreatedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (sessionStateMUS) Unmarshal(bs []byte) (v SessionState, n int, err error) {
	var c int
	if v.Key, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	var l int
	if l, c, err = unmarshalLen(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if l > 0 {
		v.Turns = make([]ConversationTurn, l)
		for i := range v.Turns {
			if v.Turns[i], c, err = unmarshalTurn(bs[n:]); err != nil {
				return v, n + c, err
			}
			n += c
		}
	}
	if v.Current, c, err = RecipeQueryMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.CreatedAt, c, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	if v.UpdatedAt, c, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + c, err
	}
	n += c
	return v, n, nil
}

func (sessionStateMUS) Size(v SessionState) int {
	size := ord.String.Size(v.Key) + varint.Int.Size(len(v.Turns))
	for _, t := range v.Turns {
		size += sizeTurn(t)
	}
	return size +
		RecipeQueryMUS.Size(v.Current) +
		sizeTime(v.CreatedAt) +
		sizeTime(v.UpdatedAt)
}
