package pages

import "testing"

func TestCategorySlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Breakfast", "breakfast"},
		{"Savouries & Bakes", "savouries-bakes"},
		{"Sweet Treats", "sweet-treats"},
		{"Hot Food", "hot-food"},
		{"  All ", "all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorySlug(tt.name); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]int{
		"3":   3,
		" 2 ": 2,
		"":    1,
		"0":   1,
		"abc": 1,
	}
	for in, want := range tests {
		if got := parseQuantity(in); got != want {
			t.Errorf("parseQuantity(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestDecode(t *testing.T) {
	res := []interface{}{
		map[string]interface{}{
			"index":     float64(0),
			"name":      "Sausage Roll",
			"price":     "£1.25",
			"imageAlt":  "Sausage Roll",
			"dietary":   []interface{}{"Vegan"},
			"tabIndex":  "",
			"unrelated": true,
		},
	}

	var cards []Card
	if err := decode(res, &cards); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("Expected 1 card, got %d", len(cards))
	}
	if cards[0].Name != "Sausage Roll" || cards[0].Price != "£1.25" {
		t.Errorf("Unexpected card %+v", cards[0])
	}
	if len(cards[0].Dietary) != 1 || cards[0].Dietary[0] != "Vegan" {
		t.Errorf("Expected dietary [Vegan], got %v", cards[0].Dietary)
	}
}

func TestTrim(t *testing.T) {
	if got := trim("  Sausage \n  Roll "); got != "Sausage Roll" {
		t.Errorf("Expected collapsed whitespace, got %q", got)
	}
}
