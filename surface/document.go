// Package surface provides an in-memory page that implements the pages'
// Surface and Scheduler. It backs the HTTP host, which renders it after
// replaying a request, and the controller tests.
package surface

import (
	"net/url"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	authpages "github.com/goliatone/go-auth-pages"
)

// Navigation is a recorded navigation. Delay is zero for immediate ones and
// the timer delay for navigations scheduled through AfterFunc.
type Navigation struct {
	URL   string
	Delay time.Duration
}

type timer struct {
	delay time.Duration
	fn    func()
}

// Document is a page made of elements addressed by id.
type Document struct {
	mu          sync.Mutex
	path        string
	query       url.Values
	elements    map[string]*Element
	keyHandlers []func(authpages.Event)
	navigations []Navigation
	timers      []timer
	firing      time.Duration
}

// New returns a document located at rawURL with the given element ids.
func New(rawURL string, ids ...string) *Document {
	d := &Document{
		elements: make(map[string]*Element, len(ids)),
		query:    url.Values{},
		path:     "/",
	}
	d.SetLocation(rawURL)
	for _, id := range ids {
		d.Add(id)
	}
	return d
}

// SetLocation parses rawURL into path and query.
func (d *Document) SetLocation(rawURL string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		d.path = "/"
		d.query = url.Values{}
		return
	}
	d.path = u.Path
	d.query = u.Query()
}

// Add creates an element if it does not exist yet and returns it.
func (d *Document) Add(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[id]; ok {
		return el
	}
	el := &Element{id: id, visible: true, classes: map[string]bool{}, handlers: map[string][]func(authpages.Event){}}
	d.elements[id] = el
	return el
}

// Element satisfies authpages.Surface. Unknown ids return nil.
func (d *Document) Element(id string) authpages.Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, ok := d.elements[id]
	if !ok {
		return nil
	}
	return el
}

// Get returns the concrete element or nil.
func (d *Document) Get(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elements[id]
}

// IDs lists element ids in sorted order.
func (d *Document) IDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]string, 0, len(d.elements))
	for id := range d.elements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Path satisfies authpages.Location.
func (d *Document) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// Query satisfies authpages.Location. The result is a copy.
func (d *Document) Query() url.Values {
	d.mu.Lock()
	defer d.mu.Unlock()

	q := make(url.Values, len(d.query))
	for k, v := range d.query {
		q[k] = append([]string(nil), v...)
	}
	return q
}

// Navigate records a navigation. Inside a timer fired by Flush the
// navigation carries that timer's delay.
func (d *Document) Navigate(target string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.navigations = append(d.navigations, Navigation{URL: target, Delay: d.firing})
}

// Navigations returns every recorded navigation in order.
func (d *Document) Navigations() []Navigation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Navigation(nil), d.navigations...)
}

// LastNavigation returns the most recent navigation.
func (d *Document) LastNavigation() (Navigation, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.navigations) == 0 {
		return Navigation{}, false
	}
	return d.navigations[len(d.navigations)-1], true
}

// OnKeyDown satisfies authpages.Surface.
func (d *Document) OnKeyDown(handler func(authpages.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keyHandlers = append(d.keyHandlers, handler)
}

// KeyDown raises a document level keydown.
func (d *Document) KeyDown(key, targetTag string) {
	d.mu.Lock()
	handlers := slices.Clone(d.keyHandlers)
	d.mu.Unlock()

	ev := authpages.Event{Type: authpages.EventKeyDown, Key: key, TargetTag: strings.ToUpper(targetTag)}
	for _, h := range handlers {
		h(ev)
	}
}

// AfterFunc satisfies authpages.Scheduler. Timers wait for Flush.
func (d *Document) AfterFunc(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timers = append(d.timers, timer{delay: delay, fn: fn})
}

// Pending reports how many timers wait for Flush.
func (d *Document) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// Flush fires pending timers in delay order, including timers scheduled
// while flushing.
func (d *Document) Flush() {
	for {
		d.mu.Lock()
		if len(d.timers) == 0 {
			d.firing = 0
			d.mu.Unlock()
			return
		}
		sort.SliceStable(d.timers, func(i, j int) bool { return d.timers[i].delay < d.timers[j].delay })
		next := d.timers[0]
		d.timers = d.timers[1:]
		d.firing = next.delay
		d.mu.Unlock()

		next.fn()
	}
}

// Fill sets input values from a map of id to value. Unknown ids are skipped.
func (d *Document) Fill(values map[string]string) {
	for id, v := range values {
		if el := d.Get(id); el != nil {
			el.SetValue(v)
		}
	}
}

// Snapshot returns a read-only view of every element keyed by id.
func (d *Document) Snapshot() map[string]ElementView {
	d.mu.Lock()
	els := make([]*Element, 0, len(d.elements))
	for _, el := range d.elements {
		els = append(els, el)
	}
	d.mu.Unlock()

	out := make(map[string]ElementView, len(els))
	for _, el := range els {
		out[el.id] = el.View()
	}
	return out
}
