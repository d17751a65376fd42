// Package browsertest provides an in-memory page for exercising code written
// against browser.Page without launching a browser.
package browsertest

import (
	"fmt"
	"slices"
	"time"

	"github.com/themizzi/menucheck/internal/browser"
)

// Element is a node of the fake document
type Element struct {
	Name      string
	Selectors []string
	Parent    *Element
	Visible   bool
	ZIndex    int
	Box       *browser.Box

	// PointerEventsDisabled is set when an overlay sweep neutralizes the element.
	PointerEventsDisabled bool
	Removed               bool

	// OnClick runs after a successful click on the element.
	OnClick func(p *Page)
	// DismissOnKey hides the element when the key is pressed.
	DismissOnKey string
	// DismissOnOutsideClick hides the element on a click outside its box.
	DismissOnOutsideClick bool
	// FailClick makes clicks on the element return an error.
	FailClick bool
}

// Shown reports whether the element and all of its ancestors are visible and attached
func (e *Element) Shown() bool {
	for el := e; el != nil; el = el.Parent {
		if el.Removed || !el.Visible {
			return false
		}
	}
	return true
}

func (e *Element) matches(selector string) bool {
	return slices.Contains(e.Selectors, selector)
}

func (e *Element) within(ancestor *Element) bool {
	for el := e.Parent; el != nil; el = el.Parent {
		if el == ancestor {
			return true
		}
	}
	return false
}

// Page is a fake browser.Page. Elements are kept in document order.
type Page struct {
	Elements []*Element

	// Err is returned from every operation when set.
	Err error
	// Panic makes every locator lookup panic.
	Panic bool

	Clicks      []string
	Keys        []string
	PointClicks [][2]float64
	Waits       []time.Duration
	// WaitTimeouts records every timeout passed to Locator.WaitFor.
	WaitTimeouts []time.Duration
	Mutations    int

	NetworkIdleErr error
}

// NewPage returns a page holding the given elements
func NewPage(elements ...*Element) *Page {
	return &Page{Elements: elements}
}

// Add appends elements to the document
func (p *Page) Add(elements ...*Element) {
	p.Elements = append(p.Elements, elements...)
}

// Find returns the element with the given name
func (p *Page) Find(name string) *Element {
	for _, el := range p.Elements {
		if el.Name == name {
			return el
		}
	}
	return nil
}

// CountMatching counts attached elements matching any of the selectors
func (p *Page) CountMatching(selectors []string) int {
	n := 0
	for _, el := range p.Elements {
		if el.Removed {
			continue
		}
		for _, sel := range selectors {
			if el.matches(sel) {
				n++
				break
			}
		}
	}
	return n
}

func (p *Page) Locator(selector string) browser.Locator {
	if p.Panic {
		panic(fmt.Sprintf("browsertest: locator %q exploded", selector))
	}
	return &locator{page: p, resolve: func() []*Element {
		var out []*Element
		for _, el := range p.Elements {
			if !el.Removed && el.matches(selector) {
				out = append(out, el)
			}
		}
		return out
	}}
}

func (p *Page) Press(key string) error {
	if p.Err != nil {
		return p.Err
	}
	p.Keys = append(p.Keys, key)
	for _, el := range p.Elements {
		if el.DismissOnKey == key && el.Shown() {
			el.Visible = false
		}
	}
	return nil
}

func (p *Page) ClickAt(x, y float64, _ time.Duration) error {
	if p.Err != nil {
		return p.Err
	}
	p.PointClicks = append(p.PointClicks, [2]float64{x, y})
	for _, el := range p.Elements {
		if !el.DismissOnOutsideClick || !el.Shown() {
			continue
		}
		if el.Box == nil || !el.Box.Contains(x, y) {
			el.Visible = false
		}
	}
	return nil
}

func (p *Page) Wait(d time.Duration) {
	p.Waits = append(p.Waits, d)
}

func (p *Page) WaitForNetworkIdle(timeout time.Duration) error {
	if p.Err != nil {
		return p.Err
	}
	return p.NetworkIdleErr
}

func (p *Page) RemoveElements(selectors []string) (int, error) {
	if p.Err != nil {
		return 0, p.Err
	}
	removed := 0
	for _, el := range p.Elements {
		if el.Removed {
			continue
		}
		for _, sel := range selectors {
			if el.matches(sel) {
				el.Removed = true
				removed++
				break
			}
		}
	}
	if removed > 0 {
		p.Mutations++
	}
	return removed, nil
}

func (p *Page) NeutralizeOverlays(minZIndex int) (int, error) {
	if p.Err != nil {
		return 0, p.Err
	}
	count := 0
	for _, el := range p.Elements {
		if el.Removed || el.ZIndex <= minZIndex || !el.Visible {
			continue
		}
		el.Visible = false
		el.PointerEventsDisabled = true
		count++
	}
	if count > 0 {
		p.Mutations++
	}
	return count, nil
}

type locator struct {
	page    *Page
	resolve func() []*Element
}

func (l *locator) Locator(selector string) browser.Locator {
	if l.page.Panic {
		panic(fmt.Sprintf("browsertest: locator %q exploded", selector))
	}
	return &locator{page: l.page, resolve: func() []*Element {
		parents := l.resolve()
		var out []*Element
		for _, el := range l.page.Elements {
			if el.Removed || !el.matches(selector) {
				continue
			}
			for _, parent := range parents {
				if el.within(parent) {
					out = append(out, el)
					break
				}
			}
		}
		return out
	}}
}

// Or keeps document order across both sides, like playwright does.
func (l *locator) Or(other browser.Locator) browser.Locator {
	o, ok := other.(*locator)
	if !ok {
		return l
	}
	return &locator{page: l.page, resolve: func() []*Element {
		left, right := l.resolve(), o.resolve()
		var out []*Element
		for _, el := range l.page.Elements {
			if slices.Contains(left, el) || slices.Contains(right, el) {
				out = append(out, el)
			}
		}
		return out
	}}
}

func (l *locator) First() browser.Locator {
	return &locator{page: l.page, resolve: func() []*Element {
		els := l.resolve()
		if len(els) == 0 {
			return nil
		}
		return els[:1]
	}}
}

func (l *locator) Visible() browser.Locator {
	return &locator{page: l.page, resolve: func() []*Element {
		var out []*Element
		for _, el := range l.resolve() {
			if el.Shown() {
				out = append(out, el)
			}
		}
		return out
	}}
}

func (l *locator) WaitFor(state browser.State, timeout time.Duration) error {
	if l.page.Err != nil {
		return l.page.Err
	}
	l.page.WaitTimeouts = append(l.page.WaitTimeouts, timeout)
	els := l.resolve()
	switch state {
	case browser.StateHidden:
		for _, el := range els {
			if el.Shown() {
				return browser.ErrTimeout
			}
		}
		return nil
	case browser.StateAttached:
		if len(els) == 0 {
			return browser.ErrTimeout
		}
		return nil
	default:
		for _, el := range els {
			if el.Shown() {
				return nil
			}
		}
		return browser.ErrTimeout
	}
}

func (l *locator) IsVisible() (bool, error) {
	if l.page.Err != nil {
		return false, l.page.Err
	}
	for _, el := range l.resolve() {
		if el.Shown() {
			return true, nil
		}
	}
	return false, nil
}

func (l *locator) Click(_ time.Duration) error {
	if l.page.Err != nil {
		return l.page.Err
	}
	els := l.resolve()
	if len(els) == 0 || !els[0].Shown() {
		return browser.ErrTimeout
	}
	el := els[0]
	if el.FailClick {
		return fmt.Errorf("browsertest: click on %s intercepted", el.Name)
	}
	l.page.Clicks = append(l.page.Clicks, el.Name)
	if el.OnClick != nil {
		el.OnClick(l.page)
	}
	return nil
}

func (l *locator) BoundingBox() (*browser.Box, error) {
	if l.page.Err != nil {
		return nil, l.page.Err
	}
	els := l.resolve()
	if len(els) == 0 || !els[0].Shown() {
		return nil, nil
	}
	return els[0].Box, nil
}

func (l *locator) Count() (int, error) {
	if l.page.Err != nil {
		return 0, l.page.Err
	}
	return len(l.resolve()), nil
}
