package explain

import (
	"context"
	"errors"
	"testing"
	"time"

	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/pkg/apperrors"
	"code-assistant-be/pkg/llm"
)

type stubProvider struct {
	response string
	err      error
	prompts  []string
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestExplainParaphrasesDoc(t *testing.T) {
	provider := &stubProvider{response: "Reads a CSV file and returns a table of its contents."}
	e := NewExplainer(provider, time.Second, nil)

	item := &entity.CorpusItem{
		Id:   "pandas.read_csv",
		Text: "def read_csv(path): ...",
		Doc:  "Read a comma-separated values file into DataFrame.",
	}
	got, err := e.Explain(context.Background(), item)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if got != provider.response {
		t.Errorf("explanation = %q", got)
	}
	if len(provider.prompts) != 1 {
		t.Fatalf("provider called %d times", len(provider.prompts))
	}
}

func TestExplainFallsBackToSnippetDocstring(t *testing.T) {
	provider := &stubProvider{response: "Joins path parts together."}
	e := NewExplainer(provider, time.Second, nil)

	item := &entity.CorpusItem{
		Id:   "os.path.join",
		Text: "def join(*paths):\n    \"\"\"Join path components.\"\"\"\n    ...",
	}
	if _, err := e.Explain(context.Background(), item); err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if len(provider.prompts) != 1 {
		t.Fatalf("provider not called for snippet docstring")
	}
}

func TestExplainWithoutDocumentation(t *testing.T) {
	provider := &stubProvider{response: "should not be used"}
	e := NewExplainer(provider, time.Second, nil)

	item := &entity.CorpusItem{Id: "util.helper", Text: "x = 1"}
	got, err := e.Explain(context.Background(), item)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if got != NoSourceMessage {
		t.Errorf("got %q, want canned no-source message", got)
	}
	if len(provider.prompts) != 0 {
		t.Errorf("provider called despite missing documentation")
	}
}

func TestExplainProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("model offline")}
	e := NewExplainer(provider, time.Second, nil)

	item := &entity.CorpusItem{Id: "f", Text: "def f(): ...", Doc: "Does f things."}
	_, err := e.Explain(context.Background(), item)
	if !errors.Is(err, apperrors.ErrExplanationUnavailable) {
		t.Fatalf("want ErrExplanationUnavailable, got %v", err)
	}
}

func TestExplainNilProviderServesRawDoc(t *testing.T) {
	e := NewExplainer(nil, time.Second, nil)

	item := &entity.CorpusItem{Id: "f", Text: "def f(): ...", Doc: "Does f things."}
	got, err := e.Explain(context.Background(), item)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if got != "Does f things." {
		t.Errorf("got %q", got)
	}
}
