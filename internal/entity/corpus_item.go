package entity

// ItemKind classifies a corpus entry.
type ItemKind string

const (
	ItemKindFunction ItemKind = "function"
	ItemKindSnippet  ItemKind = "snippet"
	ItemKindDoc      ItemKind = "doc"
)

// CorpusItem is one entry of the code corpus. Items are immutable after load;
// identity is the Id, unique across the snapshot.
type CorpusItem struct {
	Id        string
	Text      string
	Doc       string // docstring kept alongside the code, may be empty
	Kind      ItemKind
	Embedding []float32
}

// SearchResult is produced fresh per query. Rank is 0-based; ties on Score are
// broken by ascending ItemId so repeated identical queries order identically.
type SearchResult struct {
	ItemId string
	Score  float64
	Rank   int
}
