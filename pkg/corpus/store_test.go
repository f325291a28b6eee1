package corpus

import (
	"errors"
	"testing"

	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/pkg/apperrors"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load([]entity.CorpusItem{
		{Id: "pandas.DataFrame", Text: "class DataFrame: ...", Kind: entity.ItemKindFunction},
		{Id: "pandas.read_csv", Text: "def read_csv(path): ...", Kind: entity.ItemKindFunction},
		{Id: "seaborn.pairplot", Text: "def pairplot(data): ...", Kind: entity.ItemKindFunction},
		{Id: "os.path.join", Text: "def join(*paths): ...", Kind: entity.ItemKindFunction},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		items []entity.CorpusItem
	}{
		{"empty id", []entity.CorpusItem{{Id: "", Text: "x"}}},
		{"empty text", []entity.CorpusItem{{Id: "a", Text: ""}}},
		{"duplicate id", []entity.CorpusItem{{Id: "a", Text: "x"}, {Id: "a", Text: "y"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.items)
			if !errors.Is(err, apperrors.ErrMalformedSnapshot) {
				t.Fatalf("want ErrMalformedSnapshot, got %v", err)
			}
		})
	}
}

func TestGet(t *testing.T) {
	s := testStore(t)

	item, err := s.Get("pandas.read_csv")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item.Id != "pandas.read_csv" {
		t.Errorf("got %s", item.Id)
	}

	_, err = s.Get("numpy.array")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	s := testStore(t)

	tests := []struct {
		name    string
		ref     string
		wantId  string
		wantErr error
	}{
		{name: "exact id", ref: "seaborn.pairplot", wantId: "seaborn.pairplot"},
		{name: "exact id with parens", ref: "seaborn.pairplot()", wantId: "seaborn.pairplot"},
		{name: "suffix match", ref: "pairplot", wantId: "seaborn.pairplot"},
		{name: "case insensitive", ref: "PANDAS.READ_CSV", wantId: "pandas.read_csv"},
		{name: "no match", ref: "numpy.array", wantErr: apperrors.ErrNotFound},
		{name: "empty", ref: "  ", wantErr: apperrors.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := s.Resolve(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.ref, err)
			}
			if item.Id != tt.wantId {
				t.Errorf("Resolve(%q) = %s, want %s", tt.ref, item.Id, tt.wantId)
			}
		})
	}
}

func TestResolveAmbiguous(t *testing.T) {
	s, err := Load([]entity.CorpusItem{
		{Id: "pkg_a.render", Text: "def render(): ..."},
		{Id: "pkg_b.render", Text: "def render(): ..."},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err = s.Resolve("render")
	if !errors.Is(err, apperrors.ErrAmbiguousReference) {
		t.Fatalf("want ErrAmbiguousReference, got %v", err)
	}
}
