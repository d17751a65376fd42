package checks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xrash/smetrics"
)

// MaxAltDistance is how many edits alt text may be away from the item name
const MaxAltDistance = 2

var genericLabels = map[string]bool{
	"link":   true,
	"button": true,
	"image":  true,
	"menu":   true,
}

// EditDistance is the Levenshtein distance of the trimmed, lower-cased strings
func EditDistance(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return smetrics.WagnerFischer(a, b, 1, 1, 1)
}

// AltMatchesName reports whether alt text is within MaxAltDistance of name
func AltMatchesName(alt, name string) bool {
	return EditDistance(alt, name) <= MaxAltDistance
}

// DescriptiveLabel reports whether an aria-label says more than its role
func DescriptiveLabel(label string) bool {
	label = strings.TrimSpace(label)
	return len(label) > 5 && !genericLabels[strings.ToLower(label)]
}

// ValidTabIndex rejects positive tabindex values, which break tab order.
// An empty value counts as absent.
func ValidTabIndex(v string) bool {
	if v == "" {
		return true
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	return n <= 0
}

// Control describes an interactive element as read from the DOM
type Control struct {
	Tag            string `json:"tag"`
	ID             string `json:"id"`
	AriaLabel      string `json:"ariaLabel"`
	AriaLabelledBy string `json:"ariaLabelledBy"`
	Text           string `json:"text"`
	HasLabelFor    bool   `json:"hasLabelFor"`
	Placeholder    string `json:"placeholder"`
}

// Issue is one accessibility problem found on a control
type Issue struct {
	Control Control
	Problem string
}

func (i Issue) String() string {
	if i.Control.ID != "" {
		return fmt.Sprintf("%s#%s: %s", i.Control.Tag, i.Control.ID, i.Problem)
	}
	return fmt.Sprintf("%s: %s", i.Control.Tag, i.Problem)
}

// AccessibleName returns where the control's name comes from, or "" when
// it has none.
func (c Control) AccessibleName() string {
	switch {
	case c.AriaLabel != "":
		return "aria-label"
	case c.AriaLabelledBy != "":
		return "aria-labelledby"
	case (c.Tag == "a" || c.Tag == "button") && strings.TrimSpace(c.Text) != "":
		return "text"
	case c.Tag == "input" && c.HasLabelFor:
		return "label"
	case c.Tag == "input" && c.Placeholder != "":
		return "placeholder"
	}
	return ""
}

// Audit lists missing and generic labels across controls
func Audit(controls []Control) []Issue {
	var issues []Issue
	for _, c := range controls {
		if c.AccessibleName() == "" {
			issues = append(issues, Issue{c, "missing accessible label"})
		}
		if c.AriaLabel != "" && genericLabels[strings.ToLower(c.AriaLabel)] {
			issues = append(issues, Issue{c, fmt.Sprintf("generic aria-label %q", c.AriaLabel)})
		}
	}
	return issues
}
