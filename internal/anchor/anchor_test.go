package anchor

import (
	"reflect"
	"testing"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "The Arrival", "the-arrival"},
		{"punctuation collapsed", "Chapter 1: Hello, World!", "chapter-1-hello-world"},
		{"leading and trailing trimmed", "  --Intro--  ", "intro"},
		{"digits kept", "1984", "1984"},
		{"non latin dropped", "Café Noir", "caf-noir"},
		{"all punctuation", "***", ""},
		{"empty", "", ""},
		{"underscores are separators", "snake_case_title", "snake-case-title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Slug(tt.input); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"the-arrival", "act-one", "1984", "a-b-c-1-2-3", "", "x"}
	for _, in := range inputs {
		if got := Slug(in); got != in {
			t.Errorf("Slug(%q) = %q, want unchanged", in, got)
		}
		if once, twice := Slug("Mixed Case & Stuff "+in), Slug(Slug("Mixed Case & Stuff "+in)); once != twice {
			t.Errorf("Slug not idempotent: %q then %q", once, twice)
		}
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	steps := []struct {
		title     string
		wantID    string
		wantFirst bool
	}{
		{"Act One", "act-one", true},
		{"The Arrival", "the-arrival", true},
		{"Act One", "act-one", false},
		{"ACT ONE!", "act-one", false},
		{"???", "", false},
	}
	for _, s := range steps {
		id, first := r.Resolve(s.title)
		if id != s.wantID || first != s.wantFirst {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", s.title, id, first, s.wantID, s.wantFirst)
		}
	}

	want := []Collision{{Anchor: "act-one", First: "Act One", Duplicate: "ACT ONE!"}}
	if got := r.Collisions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Collisions() = %+v, want %+v", got, want)
	}
}
