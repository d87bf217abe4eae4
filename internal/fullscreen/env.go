// SPDX-License-Identifier: MIT

package fullscreen

// Event is the notification delivered to change and error listeners.
type Event struct {
	// Type is the native event name the host dispatched.
	Type string
}

// EventFunc receives fullscreen change or error notifications.
type EventFunc func(Event)

// Element is a document element the fullscreen API can target. The
// controller compares Element values with ==, so implementations must be
// comparable and an environment must return identical values for the same
// underlying node.
type Element interface {
	// Call invokes the named zero-argument method on the element and
	// forwards whatever the native call returns.
	Call(method string) (any, error)
}

// Video is a video element, which additionally carries the legacy
// single-element fullscreen entry points.
type Video interface {
	Element

	// Has reports whether the named property exists on the element.
	Has(name string) bool

	// Flag reads the named boolean property, e.g. the element's
	// self-reported fullscreen state.
	Flag(name string) bool
}

// Document is the subset of the host environment the controller touches.
type Document interface {
	Capabilities

	// Enabled reads the named fullscreen-enabled flag as a boolean.
	Enabled(prop string) bool

	// Current reads the named current-fullscreen-element property.
	// It returns nil when no element is fullscreen.
	Current(prop string) Element

	// Exec invokes the named zero-argument method on the document.
	Exec(method string) (any, error)

	// Root returns the document's root element, the default target for
	// fullscreen requests.
	Root() Element

	// Listen subscribes fn to the named event with capture false and
	// returns the matching unsubscribe. Listener invocation order is the
	// host's own dispatch order.
	Listen(event string, fn EventFunc) (off func())

	// NewVideo creates a detached probe video used for capability tests.
	// Environments that cannot create elements return nil.
	NewVideo() Video
}
