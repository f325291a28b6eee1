package explain

import "testing"

func TestExtractDocstring(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "python triple double quotes",
			code: "def read_csv(path):\n    \"\"\"Read a comma-separated values file into a DataFrame.\"\"\"\n    return parse(path)",
			want: "Read a comma-separated values file into a DataFrame.",
		},
		{
			name: "python triple single quotes",
			code: "def join(*paths):\n    '''Join path components.'''\n    ...",
			want: "Join path components.",
		},
		{
			name: "multiline docstring",
			code: "def pairplot(data):\n    \"\"\"Plot pairwise relationships.\n\n    Parameters are forwarded to the grid.\n    \"\"\"\n    ...",
			want: "Plot pairwise relationships.\n\n    Parameters are forwarded to the grid.",
		},
		{
			name: "leading line comments",
			code: "// Join concatenates path elements.\n// Empty elements are ignored.\nfunc Join(elem ...string) string { return \"\" }",
			want: "Join concatenates path elements. Empty elements are ignored.",
		},
		{
			name: "hash comments",
			code: "# Compute the mean.\ndef mean(xs): ...",
			want: "Compute the mean.",
		},
		{
			name: "no documentation",
			code: "x = compute(1, 2)",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractDocstring(tt.code); got != tt.want {
				t.Errorf("ExtractDocstring() = %q, want %q", got, tt.want)
			}
		})
	}
}
