package surface

import (
	"slices"
	"sort"
	"strings"
	"sync"

	authpages "github.com/goliatone/go-auth-pages"
)

// Element is a node of a Document.
type Element struct {
	mu       sync.Mutex
	id       string
	value    string
	text     string
	visible  bool
	disabled bool
	classes  map[string]bool
	handlers map[string][]func(authpages.Event)
}

// ElementView is the template facing copy of an element.
type ElementView struct {
	ID        string
	Value     string
	Text      string
	Visible   bool
	Disabled  bool
	ClassName string
}

// ID satisfies authpages.Element.
func (e *Element) ID() string { return e.id }

// Value satisfies authpages.Element.
func (e *Element) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

// SetValue sets the input value.
func (e *Element) SetValue(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = v
}

// Text satisfies authpages.Element.
func (e *Element) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// SetText satisfies authpages.Element.
func (e *Element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

// Visible reports the display state.
func (e *Element) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

// SetVisible satisfies authpages.Element.
func (e *Element) SetVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = visible
}

// Disabled reports the disabled state.
func (e *Element) Disabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disabled
}

// SetDisabled satisfies authpages.Element.
func (e *Element) SetDisabled(disabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disabled = disabled
}

// SetClassName replaces every class.
func (e *Element) SetClassName(className string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.classes = map[string]bool{}
	for _, c := range strings.Fields(className) {
		e.classes[c] = true
	}
}

// AddClass satisfies authpages.Element.
func (e *Element) AddClass(className string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.classes[className] = true
}

// RemoveClass satisfies authpages.Element.
func (e *Element) RemoveClass(className string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.classes, className)
}

// HasClass reports whether className is set.
func (e *Element) HasClass(className string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.classes[className]
}

// ClassName returns the classes sorted and space separated.
func (e *Element) ClassName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.className()
}

func (e *Element) className() string {
	names := make([]string, 0, len(e.classes))
	for c := range e.classes {
		names = append(names, c)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

// On satisfies authpages.Element.
func (e *Element) On(event string, handler func(authpages.Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[event] = append(e.handlers[event], handler)
}

// Listeners reports how many handlers are registered for event.
func (e *Element) Listeners(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[event])
}

// Dispatch satisfies authpages.Element. Handlers run outside the element
// lock so they may mutate the element.
func (e *Element) Dispatch(ev authpages.Event) {
	e.mu.Lock()
	handlers := slices.Clone(e.handlers[ev.Type])
	e.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Submit dispatches a submit event.
func (e *Element) Submit() { e.Dispatch(authpages.Event{Type: authpages.EventSubmit}) }

// Click dispatches a click event.
func (e *Element) Click() { e.Dispatch(authpages.Event{Type: authpages.EventClick}) }

// Input dispatches an input event.
func (e *Element) Input() { e.Dispatch(authpages.Event{Type: authpages.EventInput}) }

// View copies the element state.
func (e *Element) View() ElementView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ElementView{
		ID:        e.id,
		Value:     e.value,
		Text:      e.text,
		Visible:   e.visible,
		Disabled:  e.disabled,
		ClassName: e.className(),
	}
}
