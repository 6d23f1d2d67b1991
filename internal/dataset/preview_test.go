// internal/dataset/preview_test.go
package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSniff(t *testing.T) {
	cases := map[string]struct {
		data string
		want rune
	}{
		"comma":     {"a,b\n1,2\n", ','},
		"semicolon": {"a;b\n1;2\n", ';'},
		"tab":       {"a\tb\n1\t2\n", '\t'},
		"pipe":      {"a|b\n1|2\n", '|'},
		"single":    {"a\n1\n", ','},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Sniff([]byte(tc.data))
			if err != nil {
				t.Fatalf("Sniff error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
	if _, err := Sniff([]byte("  \n")); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows for blank input, got %v", err)
	}
}

func TestParsePreview(t *testing.T) {
	data := "sepal,petal,species\n5.1,1.4,setosa\n4.9,,setosa\n\n6.3,4.9,NA\n7.0,4.7\n"
	p, err := ParsePreview("iris.csv", []byte(data), 2)
	if err != nil {
		t.Fatalf("ParsePreview error: %v", err)
	}
	if p.Filename != "iris.csv" || p.NRows != 4 || p.NCols != 3 {
		t.Fatalf("unexpected shape: %+v", p)
	}
	// empty petal, NA species, and the absent trailing cell
	if p.MissingCount != 3 {
		t.Fatalf("expected 3 missing cells, got %d", p.MissingCount)
	}
	want := [][]any{
		{5.1, 1.4, "setosa"},
		{4.9, nil, "setosa"},
	}
	if diff := cmp.Diff(want, p.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if p.Columns[0].Kind != Numeric || p.Columns[2].Kind != Categorical {
		t.Fatalf("unexpected column kinds: %+v", p.Columns)
	}
	if p.Columns[2].Unique != 1 || p.Columns[2].Missing != 2 {
		t.Fatalf("unexpected species summary: %+v", p.Columns[2])
	}
}

func TestParsePreviewRowBounds(t *testing.T) {
	p, err := ParsePreview("x.csv", []byte("a;b\n1;2\n"), 20)
	if err != nil {
		t.Fatalf("ParsePreview error: %v", err)
	}
	if len(p.Rows) != 1 || p.Delimiter != ";" {
		t.Fatalf("unexpected preview: %+v", p)
	}
	p, err = ParsePreview("x.csv", []byte("a;b\n1;2\n"), -1)
	if err != nil || len(p.Rows) != 0 {
		t.Fatalf("negative rows should keep none: %+v %v", p, err)
	}
}

func TestParsePreviewErrors(t *testing.T) {
	if _, err := ParsePreview("x.csv", []byte("a,b\n"), 5); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if _, err := ParsePreview("x.csv", []byte("a\n1\n2\n"), 5); !errors.Is(err, ErrTooFewColumns) {
		t.Fatalf("expected ErrTooFewColumns, got %v", err)
	}
}

func TestReadPreview(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("x,y,label\n1,2,a\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := ReadPreview(path, 5)
	if err != nil {
		t.Fatalf("ReadPreview error: %v", err)
	}
	if p.Filename != "data.csv" || len(p.Rows) != 1 {
		t.Fatalf("unexpected preview: %+v", p)
	}
	if _, err := ReadPreview(filepath.Join(dir, "missing.csv"), 5); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestHeaderRow(t *testing.T) {
	header, err := HeaderRow([]byte("x|y|z\n1|2|3\n"))
	if err != nil {
		t.Fatalf("HeaderRow error: %v", err)
	}
	if diff := cmp.Diff([]string{"x", "y", "z"}, header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
}
