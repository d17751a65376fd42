package scenarios

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/menucheck/internal/checks"
	"github.com/themizzi/menucheck/internal/runner"
)

const ariaSuite = "ARIA Labels"

// MaxAccessibilityIssues is how many audit findings are tolerated
const MaxAccessibilityIssues = 50

func ariaScenarios() []runner.Scenario {
	return []runner.Scenario{
		{Suite: ariaSuite, Name: "menu item links are labelled", Run: cardLabels},
		{Suite: ariaSuite, Name: "interactive elements have accessible names", Run: controlAudit},
		{Suite: ariaSuite, Name: "item names have sufficient contrast", Run: nameContrast},
	}
}

func cardLabels(t *runner.T) {
	m := openMenu(t)
	cards, err := m.Cards()
	require.NoError(t, err)
	require.NotEmpty(t, cards)
	t.Logf("validating %d menu items", len(cards))

	for _, c := range cards {
		who := fmt.Sprintf("item %q (%s)", c.Name, c.TestCardID)

		if c.AriaLabel != "" {
			assert.True(t, checks.DescriptiveLabel(c.AriaLabel), "%s: aria-label %q is not descriptive", who, c.AriaLabel)
		} else {
			assert.NotEmpty(t, c.Name, "%s: needs an aria-label or visible text", who)
		}

		if assert.NotEmpty(t, c.ImageAlt, "%s: image has no alt text", who) {
			assert.Greater(t, len(c.ImageAlt), 3, "%s: alt text %q is too short", who, c.ImageAlt)
			assert.True(t, checks.AltMatchesName(c.ImageAlt, c.Name),
				"%s: alt text %q is %d edits from the name", who, c.ImageAlt, checks.EditDistance(c.ImageAlt, c.Name))
		}

		if c.ImageAriaLabel != "" && c.ImageAlt != "" {
			t.Logf("%s: image has both aria-label and alt", who)
		}
		if c.ImageAriaHidden == "true" {
			assert.True(t, c.AriaLabel != "" || c.Name != "", "%s: image is aria-hidden and the link is unlabelled", who)
		}
		if c.AriaDescribedBy != "" {
			n, err := t.Page.Locator("#" + c.AriaDescribedBy).Count()
			require.NoError(t, err)
			assert.Greater(t, n, 0, "%s: aria-describedby #%s does not exist", who, c.AriaDescribedBy)
		}
		assert.True(t, checks.ValidTabIndex(c.TabIndex), "%s: positive tabindex %q", who, c.TabIndex)
	}
}

func controlAudit(t *runner.T) {
	m := openMenu(t)
	controls, err := m.Controls()
	require.NoError(t, err)

	issues := checks.Audit(controls)
	for i, issue := range issues {
		t.Logf("%d. %s", i+1, issue)
	}
	assert.Less(t, len(issues), MaxAccessibilityIssues, "%d accessibility issues across %d controls", len(issues), len(controls))
}

func nameContrast(t *runner.T) {
	m := openMenu(t)
	n, err := m.ItemCount()
	require.NoError(t, err)

	for i := 0; i < minInt(n, 5); i++ {
		item := m.Item(i)
		name, _ := item.Name()

		fg, err := m.ComputedStyle(item.NameText, "color")
		require.NoError(t, err)
		bg, err := m.EffectiveBackground(item.NameText)
		require.NoError(t, err)

		ok, ratio, err := checks.SufficientContrast(fg, bg)
		if err != nil {
			t.Logf("%s: %v", name, err)
			continue
		}
		assert.True(t, ok, "%s: contrast %.2f:1 of %s on %s is below %.1f:1", name, ratio, fg, bg, checks.MinContrastAA)
	}
}
