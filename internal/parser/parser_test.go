package parser

import (
	"reflect"
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\napp: Code\ntitle: main.go - project\ntimestamp: 1756100000\ntags:\n  - focus\n---\nfunc main() {\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.App != "Code" {
		t.Errorf("app = %q, want Code", r.App)
	}
	if r.Title != "main.go - project" {
		t.Errorf("title = %q", r.Title)
	}
	if r.Timestamp != 1756100000 {
		t.Errorf("timestamp = %d", r.Timestamp)
	}
	if !reflect.DeepEqual(r.Tags, []string{"focus"}) {
		t.Errorf("tags = %v", r.Tags)
	}
	if r.Body != "func main() {\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("just some ocr text\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.App != "" || r.Timestamp != 0 {
		t.Errorf("expected empty metadata, got %+v", r)
	}
	if r.Body != "just some ocr text\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Invalid YAML falls back to treating everything as body.
	if r.App != "" {
		t.Errorf("expected no metadata on invalid YAML, got app %q", r.App)
	}
	if r.Body == "" {
		t.Error("body should hold the raw content")
	}
}

func TestParse_UnclosedFrontmatter(t *testing.T) {
	input := []byte("---\napp: Code\nno closing delimiter")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.App != "" {
		t.Errorf("unclosed frontmatter should be body, got app %q", r.App)
	}
}

func TestTimestampFromPath(t *testing.T) {
	tests := []struct {
		path string
		want int64
	}{
		{"1756100000.md", 1756100000},
		{"2026/08/1756100000.md", 1756100000},
		{"notes.md", 0},
		{"-5.md", 0},
	}
	for _, tt := range tests {
		if got := TimestampFromPath(tt.path); got != tt.want {
			t.Errorf("TimestampFromPath(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}
