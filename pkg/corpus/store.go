// Package corpus holds the static snapshot of code the assistant answers
// against. The store is read-only after Load for the lifetime of the process.
package corpus

import (
	"strings"

	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/pkg/apperrors"
)

// Store maps item ids to corpus items and keeps the load order so the
// embedding index stays position-aligned with the snapshot.
type Store struct {
	items []entity.CorpusItem
	byId  map[string]int
}

// Load validates the snapshot records and builds the store. Any malformed
// record fails the whole load; there is no partial-load mode.
func Load(items []entity.CorpusItem) (*Store, error) {
	s := &Store{
		items: items,
		byId:  make(map[string]int, len(items)),
	}

	for i, item := range items {
		if item.Id == "" {
			return nil, apperrors.MalformedSnapshotf("record %d has an empty id", i)
		}
		if item.Text == "" {
			return nil, apperrors.MalformedSnapshotf("record %q has an empty text field", item.Id)
		}
		if _, exists := s.byId[item.Id]; exists {
			return nil, apperrors.MalformedSnapshotf("duplicate id %q", item.Id)
		}
		s.byId[item.Id] = i
	}

	return s, nil
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (entity.CorpusItem, error) {
	i, ok := s.byId[id]
	if !ok {
		return entity.CorpusItem{}, apperrors.NotFoundf("corpus item %q", id)
	}
	return s.items[i], nil
}

// Items returns the snapshot in load order. Callers must not mutate it.
func (s *Store) Items() []entity.CorpusItem { return s.items }

// Size returns the number of corpus items.
func (s *Store) Size() int { return len(s.items) }

// Resolve maps a function reference from an utterance to a corpus item.
// Exact id match wins. Otherwise a case-insensitive substring match is tried:
// the candidate whose id is closest in length to the reference scores highest,
// and a score tie between distinct candidates is ambiguous.
func (s *Store) Resolve(ref string) (entity.CorpusItem, error) {
	ref = strings.TrimSuffix(strings.TrimSpace(ref), "()")
	if ref == "" {
		return entity.CorpusItem{}, apperrors.InvalidArgumentf("empty function reference")
	}

	if i, ok := s.byId[ref]; ok {
		return s.items[i], nil
	}

	lowered := strings.ToLower(ref)

	var (
		best      []int
		bestScore float64
	)
	for i, item := range s.items {
		id := strings.ToLower(item.Id)
		if !strings.Contains(id, lowered) && !strings.Contains(lowered, id) {
			continue
		}
		// Tighter ids are better matches: "pairplot" should prefer
		// "seaborn.pairplot" over "seaborn.pairplot_legacy_compat".
		score := float64(len(lowered)) / float64(len(id))
		if score > 1 {
			score = 1 / score
		}
		switch {
		case score > bestScore:
			bestScore = score
			best = []int{i}
		case score == bestScore:
			best = append(best, i)
		}
	}

	switch len(best) {
	case 0:
		return entity.CorpusItem{}, apperrors.NotFoundf("no corpus item matches %q", ref)
	case 1:
		return s.items[best[0]], nil
	default:
		ids := make([]string, len(best))
		for i, idx := range best {
			ids[i] = s.items[idx].Id
		}
		return entity.CorpusItem{}, apperrors.InvalidArgumentf("%q matches %s: %w",
			ref, strings.Join(ids, ", "), apperrors.ErrAmbiguousReference)
	}
}
