// Package reembed regenerates stored embeddings after an embedding model
// change. Recipes, the ingredient vocabulary and the tag vocabulary are
// processed in batches; the embedding text for each entity is the same
// text the ingest pipeline used at seed time.
package reembed
