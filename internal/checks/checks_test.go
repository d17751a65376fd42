package checks

import (
	"errors"
	"math"
	"testing"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		text   string
		want   float64
		wantOK bool
	}{
		{"£1.25", 1.25, true},
		{"Sausage Roll £1.10 each", 1.10, true},
		{"£3", 3, true},
		{"from £2.50 to £4.00", 2.50, true},
		{"1.25", 0, false},
		{"", 0, false},
		{"Free", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractPrice(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok %v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidPriceFormat(t *testing.T) {
	if !ValidPriceFormat("£0.95") {
		t.Error("Expected £0.95 to be valid")
	}
	if ValidPriceFormat("$0.95") {
		t.Error("Expected $0.95 to be invalid")
	}
}

func TestPriceInRange(t *testing.T) {
	tests := []struct {
		price float64
		want  bool
	}{
		{0.5, true},
		{15, true},
		{0.49, false},
		{15.01, false},
		{4.2, true},
	}
	for _, tt := range tests {
		if got := PriceInRange(tt.price, 0.5, 15); got != tt.want {
			t.Errorf("PriceInRange(%v): expected %v, got %v", tt.price, tt.want, got)
		}
	}
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"rgb(34, 34, 34)", RGB{34, 34, 34}, false},
		{"rgba(0, 94, 184, 0.5)", RGB{0, 94, 184}, false},
		{"rgb(255,255,255)", RGB{255, 255, 255}, false},
		{"transparent", RGB{}, true},
		{"rgb(10, 20)", RGB{}, true},
		{"rgb(300, 0, 0)", RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRGB(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("Expected ErrInvalidColor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestContrastRatio(t *testing.T) {
	black, white := RGB{0, 0, 0}, RGB{255, 255, 255}

	if got := ContrastRatio(black, white); math.Abs(got-21) > 0.001 {
		t.Errorf("Expected 21, got %v", got)
	}
	if got := ContrastRatio(white, black); math.Abs(got-21) > 0.001 {
		t.Errorf("Expected order not to matter, got %v", got)
	}
	if got := ContrastRatio(white, white); got != 1 {
		t.Errorf("Expected 1 for identical colours, got %v", got)
	}
}

func TestSufficientContrast(t *testing.T) {
	tests := []struct {
		name    string
		fg, bg  string
		want    bool
		wantErr bool
	}{
		{"black on white", "rgb(0, 0, 0)", "rgb(255, 255, 255)", true, false},
		{"just below AA", "rgb(119, 119, 119)", "rgb(255, 255, 255)", false, false},
		{"just above AA", "rgb(118, 118, 118)", "rgb(255, 255, 255)", true, false},
		{"brand blue", "rgb(255, 255, 255)", "rgb(0, 94, 184)", true, false},
		{"bad foreground", "inherit", "rgb(255, 255, 255)", false, true},
		{"bad background", "rgb(0, 0, 0)", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := SufficientContrast(tt.fg, tt.bg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAltMatchesName(t *testing.T) {
	tests := []struct {
		alt, name string
		want      bool
	}{
		{"Sausage Roll", "Sausage Roll", true},
		{"sausage roll ", "Sausage Roll", true},
		{"Sausage Rolls", "Sausage Roll", true},
		{"Sausge Rol", "Sausage Roll", true},
		{"Sasge Rol", "Sausage Roll", false},
		{"Product image", "Sausage Roll", false},
		{"", "Sausage Roll", false},
	}

	for _, tt := range tests {
		t.Run(tt.alt, func(t *testing.T) {
			if got := AltMatchesName(tt.alt, tt.name); got != tt.want {
				t.Errorf("Expected %v (distance %d), got %v", tt.want, EditDistance(tt.alt, tt.name), got)
			}
		})
	}
}

func TestDescriptiveLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"View Sausage Roll", true},
		{"Link", false},
		{"button", false},
		{"Image", false},
		{"Menu", false},
		{"Open", false},
		{"  abc  ", false},
	}
	for _, tt := range tests {
		if got := DescriptiveLabel(tt.label); got != tt.want {
			t.Errorf("DescriptiveLabel(%q): expected %v, got %v", tt.label, tt.want, got)
		}
	}
}

func TestValidTabIndex(t *testing.T) {
	tests := map[string]bool{
		"":    true,
		"0":   true,
		"-1":  true,
		"1":   false,
		"abc": false,
	}
	for in, want := range tests {
		if got := ValidTabIndex(in); got != want {
			t.Errorf("ValidTabIndex(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestAudit(t *testing.T) {
	controls := []Control{
		{Tag: "a", Text: "Breakfast"},
		{Tag: "button", AriaLabel: "Open filters"},
		{Tag: "button"},
		{Tag: "input", Placeholder: "Search"},
		{Tag: "input", ID: "qty"},
		{Tag: "a", AriaLabel: "link"},
		{Tag: "div", AriaLabelledBy: "heading"},
	}

	issues := Audit(controls)
	if len(issues) != 3 {
		t.Fatalf("Expected 3 issues, got %d: %v", len(issues), issues)
	}
	if issues[1].String() != "input#qty: missing accessible label" {
		t.Errorf("Unexpected issue text %q", issues[1].String())
	}
	if issues[2].Problem != `generic aria-label "link"` {
		t.Errorf("Unexpected problem %q", issues[2].Problem)
	}
}

func TestLayout(t *testing.T) {
	vp := Viewport{Width: 375, Height: 667}

	t.Run("in viewport", func(t *testing.T) {
		if !InViewport(Rect{10, 10, 300, 200}, vp) {
			t.Error("Expected box to be inside")
		}
		if InViewport(Rect{100, 10, 300, 200}, vp) {
			t.Error("Expected box overflowing right edge to be outside")
		}
		if InViewport(Rect{-1, 10, 10, 10}, vp) {
			t.Error("Expected negative x to be outside")
		}
	})

	t.Run("stacked", func(t *testing.T) {
		first := Rect{0, 100, 375, 200}
		if !StackedVertically(first, Rect{0, 260, 375, 200}) {
			t.Error("Expected 40px overlap to count as stacked")
		}
		if StackedVertically(first, Rect{0, 240, 375, 200}) {
			t.Error("Expected 60px overlap not to count as stacked")
		}
	})

	t.Run("same row", func(t *testing.T) {
		if !SameRow(Rect{Y: 400}, Rect{Y: 480}) {
			t.Error("Expected 80px spread to be one row")
		}
		if SameRow(Rect{Y: 400}, Rect{Y: 500}) {
			t.Error("Expected 100px spread to be two rows")
		}
	})

	t.Run("fits width", func(t *testing.T) {
		if !FitsWidth(Rect{0, 0, 375.5, 10}, vp) {
			t.Error("Expected subpixel overflow to fit")
		}
		if FitsWidth(Rect{0, 0, 400, 10}, vp) {
			t.Error("Expected 400px box not to fit")
		}
	})
}
