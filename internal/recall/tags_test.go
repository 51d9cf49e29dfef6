package recall

import (
	"reflect"
	"testing"
)

func TestDeriveTags(t *testing.T) {
	tests := []struct {
		name  string
		app   string
		title string
		want  []string
	}{
		{"category plus app name", "Slack", "general", []string{"Communication", "Slack"}},
		{"extension tag from title", "VS Code", "main.go - project", []string{"Development", "VS Code", "Go"}},
		{"exe suffix stripped", "Code.exe", "", []string{"Development", "Code"}},
		{"unknown app yields nothing", "Unknown", "", nil},
		{"unrecognised extension ignored", "Chrome", "report.xyz - page", []string{"Browser", "Chrome"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTags(tt.app, tt.title)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DeriveTags(%q, %q) = %v, want %v", tt.app, tt.title, got, tt.want)
			}
		})
	}
}

func TestDeriveTagsDedup(t *testing.T) {
	// App name equal to its category tag must not repeat.
	got := DeriveTags("Notes", "todo.md")
	want := []string{"Productivity", "Notes", "Markdown"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveTags = %v, want %v", got, want)
	}
}

func TestCategoryFor(t *testing.T) {
	if c := CategoryFor("Google Chrome"); c == nil || *c != "Browser" {
		t.Errorf("CategoryFor(Google Chrome) = %v, want Browser", c)
	}
	if c := CategoryFor("SomeRandomApp"); c != nil {
		t.Errorf("CategoryFor(SomeRandomApp) = %q, want nil", *c)
	}
}
