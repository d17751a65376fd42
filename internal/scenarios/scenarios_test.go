package scenarios

import (
	"testing"

	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/pages"
)

func TestAll_UniqueTitles(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range All() {
		if seen[s.Title()] {
			t.Errorf("Duplicate scenario %q", s.Title())
		}
		seen[s.Title()] = true
		if s.Run == nil {
			t.Errorf("Scenario %q has no Run func", s.Title())
		}
		if s.Only {
			t.Errorf("Scenario %q is focused", s.Title())
		}
	}
	if len(seen) < 30 {
		t.Errorf("Expected at least 30 scenarios, got %d", len(seen))
	}
}

func TestAll_ProfileRestrictionsAreKnown(t *testing.T) {
	all := config.DefaultProfiles()
	for _, s := range All() {
		if _, err := config.SelectProfiles(all, s.Profiles); err != nil {
			t.Errorf("Scenario %q: %v", s.Title(), err)
		}
	}
}

func TestAll_DietScenarios(t *testing.T) {
	want := map[string]bool{
		"Search and Filter > applies the vegan filter":      false,
		"Search and Filter > applies the vegetarian filter": false,
	}
	for _, s := range All() {
		if _, ok := want[s.Title()]; ok {
			want[s.Title()] = true
		}
	}
	for title, found := range want {
		if !found {
			t.Errorf("Expected scenario %q", title)
		}
	}
}

func TestHomeURL(t *testing.T) {
	tests := []struct {
		menu string
		want string
	}{
		{"https://www.greggs.com/menu", "https://www.greggs.com/"},
		{"http://127.0.0.1:8080/menu?consent=reject", "http://127.0.0.1:8080/"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		if got := homeURL(tt.menu); got != tt.want {
			t.Errorf("homeURL(%q): expected %q, got %q", tt.menu, tt.want, got)
		}
	}
}

func TestHomePattern(t *testing.T) {
	re := homePattern("https://www.greggs.com/menu")

	for _, u := range []string{"https://www.greggs.com/", "https://www.greggs.com", "https://www.greggs.com/?ref=logo"} {
		if !re.MatchString(u) {
			t.Errorf("Expected %q to match", u)
		}
	}
	if re.MatchString("https://www.greggs.com/menu") {
		t.Error("Expected the menu not to match the home pattern")
	}
}

func TestCategoriesHaveSlugs(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Categories {
		slug := pages.CategorySlug(c)
		if slug == "" {
			t.Errorf("Category %q has an empty slug", c)
		}
		if seen[slug] {
			t.Errorf("Category slug %q is not unique", slug)
		}
		seen[slug] = true
	}
}
