// SPDX-License-Identifier: MIT

// Package domtest provides a scriptable in-memory implementation of the
// fullscreen environment abstraction. It backs the core and API tests and
// the daemon's -fake mode.
package domtest

import (
	"fmt"
	"sync"

	"github.com/rysi3k/video-fullscreen/internal/fullscreen"
)

// Elem is a fake document element. It records every method invocation and
// returns the configured result.
type Elem struct {
	ID     string
	Calls  []string
	Result any
	Err    error
}

// Call records the invocation and returns the configured result pair.
func (e *Elem) Call(method string) (any, error) {
	e.Calls = append(e.Calls, method)
	return e.Result, e.Err
}

// Vid is a fake video element carrying the legacy entry points. A
// successful legacy enter call sets the displaying flag; a successful exit
// clears it, mirroring how real elements self-report.
type Vid struct {
	Elem
	Props map[string]bool // property presence (legacy entry points)
	Flags map[string]bool // boolean property values
}

// NewVid returns a video that exposes the legacy fullscreen entry points.
func NewVid(id string) *Vid {
	return &Vid{
		Elem: Elem{ID: id},
		Props: map[string]bool{
			fullscreen.LegacyEnter: true,
			fullscreen.LegacyExit:  true,
		},
		Flags: map[string]bool{},
	}
}

// Has reports property presence on the video.
func (v *Vid) Has(name string) bool { return v.Props[name] }

// Flag reads a boolean property on the video.
func (v *Vid) Flag(name string) bool { return v.Flags[name] }

// Call records the invocation, fails with the configured error, and keeps
// the displaying flag in sync for the legacy enter/exit pair.
func (v *Vid) Call(method string) (any, error) {
	v.Calls = append(v.Calls, method)
	if v.Err != nil {
		return nil, v.Err
	}
	switch method {
	case fullscreen.LegacyEnter:
		v.Flags[fullscreen.LegacyShowing] = true
	case fullscreen.LegacyExit:
		v.Flags[fullscreen.LegacyShowing] = false
	}
	return v.Result, nil
}

type listenerEntry struct {
	id int64
	fn fullscreen.EventFunc
}

// Doc is a fake document. Zero value is not usable; construct with NewDoc.
type Doc struct {
	mu sync.Mutex

	// Caps is the property presence set probed by the resolver.
	Caps fullscreen.CapabilitySet

	// EnabledProps holds the values of fullscreen-enabled flags.
	EnabledProps map[string]bool

	// Cur is the current-fullscreen-element for every element property
	// name. Tests set it directly.
	Cur fullscreen.Element

	// RootEl is returned by Root.
	RootEl *Elem

	// ProbeVideo is returned by NewVideo; nil means the environment
	// cannot create elements.
	ProbeVideo *Vid

	// ExecCalls records document-level method invocations.
	ExecCalls  []string
	ExecResult any
	ExecErr    error

	// Elements and Videos are the nodes handlers can look up by selector.
	Elements map[string]*Elem
	Videos   map[string]*Vid

	listeners map[string][]listenerEntry
	nextID    int64
}

// NewDoc returns an empty fake document with no capabilities.
func NewDoc() *Doc {
	return &Doc{
		Caps:         fullscreen.NewCapabilitySet(),
		EnabledProps: map[string]bool{},
		RootEl:       &Elem{ID: ":root"},
		Elements:     map[string]*Elem{},
		Videos:       map[string]*Vid{},
		listeners:    map[string][]listenerEntry{},
	}
}

// NewStandardDoc returns a document exposing the standard API bundle with
// the enabled flag set, plus a body element and a #player video.
func NewStandardDoc() *Doc {
	d := NewDoc()
	std := fullscreen.DefaultVendors()[0]
	d.Caps = fullscreen.NewCapabilitySet(std.Request, std.Exit, std.Element, std.Enabled)
	d.EnabledProps[std.Enabled] = true
	d.Elements["body"] = &Elem{ID: "body"}
	d.Videos["#player"] = NewVid("#player")
	d.ProbeVideo = NewVid("probe")
	return d
}

// NewLegacyDoc returns a document with no standard API but a probe video
// exposing the legacy entry point, plus a #player video.
func NewLegacyDoc() *Doc {
	d := NewDoc()
	d.ProbeVideo = NewVid("probe")
	d.Videos["#player"] = NewVid("#player")
	return d
}

// Has reports property presence on the document.
func (d *Doc) Has(name string) bool { return d.Caps.Has(name) }

// Enabled reads a fullscreen-enabled flag.
func (d *Doc) Enabled(prop string) bool { return d.EnabledProps[prop] }

// Current reads the current-fullscreen-element property.
func (d *Doc) Current(string) fullscreen.Element { return d.Cur }

// Exec records a document-level method invocation.
func (d *Doc) Exec(method string) (any, error) {
	d.ExecCalls = append(d.ExecCalls, method)
	return d.ExecResult, d.ExecErr
}

// Root returns the document root element.
func (d *Doc) Root() fullscreen.Element { return d.RootEl }

// NewVideo returns the configured probe video, or nil.
func (d *Doc) NewVideo() fullscreen.Video {
	if d.ProbeVideo == nil {
		return nil
	}
	return d.ProbeVideo
}

// Listen registers fn for the named event and returns its unsubscribe.
func (d *Doc) Listen(event string, fn fullscreen.EventFunc) (off func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.listeners[event] = append(d.listeners[event], listenerEntry{id: id, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		entries := d.listeners[event]
		for i, e := range entries {
			if e.id == id {
				d.listeners[event] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Dispatch synchronously invokes every listener registered for event, in
// registration order.
func (d *Doc) Dispatch(event string) {
	d.mu.Lock()
	entries := make([]listenerEntry, len(d.listeners[event]))
	copy(entries, d.listeners[event])
	d.mu.Unlock()
	for _, e := range entries {
		e.fn(fullscreen.Event{Type: event})
	}
}

// ListenerCount reports how many listeners are registered for event.
func (d *Doc) ListenerCount(event string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[event])
}

// LookupElement returns the node registered under selector. Videos are
// elements too, so the video map is consulted as well.
func (d *Doc) LookupElement(selector string) (fullscreen.Element, error) {
	if el, ok := d.Elements[selector]; ok {
		return el, nil
	}
	if v, ok := d.Videos[selector]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("domtest: no element for selector %q", selector)
}

// LookupVideo returns the video registered under selector.
func (d *Doc) LookupVideo(selector string) (fullscreen.Video, error) {
	if v, ok := d.Videos[selector]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("domtest: no video for selector %q", selector)
}
