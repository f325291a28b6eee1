// Seeds a small sample corpus for local development. The snippets mirror the
// kind of library functions the assistant is meant to answer about; run
// cmd/embed-corpus afterwards to produce the vectors file.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

type record struct {
	Id   string `json:"id"`
	Text string `json:"text"`
	Doc  string `json:"doc,omitempty"`
	Kind string `json:"kind,omitempty"`
}

var samples = []record{
	{
		Id:   "pandas.DataFrame",
		Text: "class DataFrame(NDFrame):\n    \"\"\"Two-dimensional, size-mutable, potentially heterogeneous tabular data.\"\"\"",
		Doc:  "Two-dimensional, size-mutable, potentially heterogeneous tabular data.",
		Kind: "function",
	},
	{
		Id:   "pandas.Series",
		Text: "class Series(base.IndexOpsMixin, NDFrame):\n    \"\"\"One-dimensional ndarray with axis labels.\"\"\"",
		Doc:  "One-dimensional ndarray with axis labels (including time series).",
		Kind: "function",
	},
	{
		Id:   "pandas.read_csv",
		Text: "def read_csv(filepath_or_buffer, sep=','):\n    \"\"\"Read a comma-separated values (csv) file into DataFrame.\"\"\"",
		Doc:  "Read a comma-separated values (csv) file into DataFrame.",
		Kind: "function",
	},
	{
		Id:   "seaborn.pairplot",
		Text: "def pairplot(data, hue=None):\n    \"\"\"Plot pairwise relationships in a dataset.\"\"\"",
		Doc:  "Plot pairwise relationships in a dataset.",
		Kind: "function",
	},
	{
		Id:   "os.path.join",
		Text: "def join(a, *p):\n    \"\"\"Join two or more pathname components.\"\"\"",
		Doc:  "Join two or more pathname components, inserting '/' as needed.",
		Kind: "function",
	},
	{
		Id:   "json.loads",
		Text: "def loads(s, **kw):\n    \"\"\"Deserialize a str instance containing a JSON document to a Python object.\"\"\"",
		Doc:  "Deserialize a JSON document string to a Python object.",
		Kind: "function",
	},
	{
		Id:   "snippet.sort_dicts",
		Text: "rows.sort(key=lambda r: r['created_at'], reverse=True)",
		Kind: "snippet",
	},
}

func main() {
	out := "data/corpus.jsonl"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		color.Red("Failed to create directory: %v", err)
		os.Exit(1)
	}

	f, err := os.Create(out)
	if err != nil {
		color.Red("Failed to create %s: %v", out, err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range samples {
		if err := enc.Encode(rec); err != nil {
			color.Red("Failed to write record %s: %v", rec.Id, err)
			os.Exit(1)
		}
	}

	color.Green("✅ Seeded %d corpus records to %s", len(samples), out)
	color.Yellow("Next: go run ./cmd/embed-corpus to generate the vectors file")
}
