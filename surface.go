package authpages

import "net/url"

// Event names raised by surface elements.
const (
	EventSubmit  = "submit"
	EventClick   = "click"
	EventInput   = "input"
	EventKeyDown = "keydown"
)

// Event describes a UI event delivered to a handler.
type Event struct {
	Type string
	// Key is set for keydown events.
	Key string
	// TargetTag is the tag of the element that had focus, upper case as in
	// the DOM ("INPUT", "BUTTON").
	TargetTag string
}

// Element is a single addressable node of the page.
type Element interface {
	ID() string
	Value() string
	Text() string
	SetText(text string)
	SetVisible(visible bool)
	SetDisabled(disabled bool)
	SetClassName(className string)
	AddClass(className string)
	RemoveClass(className string)
	On(event string, handler func(Event))
	Dispatch(ev Event)
}

// Location is the current page address.
type Location interface {
	Path() string
	Query() url.Values
}

// Navigator performs a full page navigation.
type Navigator interface {
	Navigate(target string)
}

// Surface is everything a page controller touches: elements, the document
// level key listener, the current address and navigation.
type Surface interface {
	Location
	Navigator
	Element(id string) Element
	OnKeyDown(handler func(Event))
}
