package ui

import (
	"slices"

	"github.com/rivo/tview"
)

// Pages is a stack-based page manager wrapping tview.Pages. Overlays are
// pushed on top of the current page without hiding it, so dialogs render
// over the screen that opened them.
type Pages struct {
	*tview.Pages
	stack    []string
	overlays map[string]bool
	onChange func(stack []string)
}

// NewPages creates a new stack-based page manager.
func NewPages() *Pages {
	return &Pages{
		Pages:    tview.NewPages(),
		overlays: make(map[string]bool),
	}
}

// SetOnChange sets a callback that fires when the stack changes.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// Push hides the current page and shows name on top of the stack.
// Pushing the page that is already on top is a no-op.
func (p *Pages) Push(name string) {
	p.push(name, false)
}

// PushOverlay shows name on top of the stack, leaving the pages below
// visible.
func (p *Pages) PushOverlay(name string) {
	p.push(name, true)
}

func (p *Pages) push(name string, overlay bool) {
	if p.Current() == name {
		return
	}
	if !overlay && len(p.stack) > 0 {
		p.HidePage(p.stack[len(p.stack)-1])
	}
	p.stack = append(p.stack, name)
	p.overlays[name] = overlay
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify()
}

// Pop removes the top page and shows the previous one. The bottom page is
// never popped. It returns the popped page, or "" if nothing was popped.
func (p *Pages) Pop() string {
	if len(p.stack) < 2 {
		return ""
	}
	top := p.stack[len(p.stack)-1]
	p.HidePage(top)
	p.stack = p.stack[:len(p.stack)-1]
	overlay := p.overlays[top]
	delete(p.overlays, top)

	current := p.stack[len(p.stack)-1]
	if !overlay {
		p.ShowPage(current)
	}
	p.SendToFront(current)
	p.notify()
	return top
}

// Current returns the name of the top page.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// Contains reports whether name is anywhere on the stack.
func (p *Pages) Contains(name string) bool {
	return slices.Contains(p.stack, name)
}

// Stack returns a copy of the current page stack.
func (p *Pages) Stack() []string {
	return slices.Clone(p.stack)
}

// Depth returns the current stack depth.
func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset clears the stack and shows only the given page.
func (p *Pages) Reset(name string) {
	for _, n := range p.stack {
		p.HidePage(n)
	}
	clear(p.overlays)
	p.stack = []string{name}
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify()
}

func (p *Pages) notify() {
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}
