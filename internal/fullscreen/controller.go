// SPDX-License-Identifier: MIT

package fullscreen

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/rysi3k/video-fullscreen/internal/log"
)

// Legacy single-element fullscreen entry points. Platforms that never
// implemented the element API expose these on video elements only.
const (
	LegacyEnter   = "webkitEnterFullscreen"
	LegacyExit    = "webkitExitFullscreen"
	LegacyShowing = "webkitDisplayingFullscreen"
)

// ErrSlotConflict is returned by Request in strict-slot mode when a
// different video is still occupying legacy fullscreen.
var ErrSlotConflict = errors.New("fullscreen: another video is still in legacy fullscreen")

// Target names what an operation should act on. El selects the standard
// path target; Video selects the legacy path target. Both may be nil, in
// which case Request falls back to the document root (standard mode) and
// IsFullscreen answers for "anything fullscreen at all".
type Target struct {
	El    Element
	Video Video
}

// Option configures a Controller.
type Option func(*Controller)

// WithVendors overrides the built-in candidate list. The first bundle
// supplies the canonical names of the resolved mapping.
func WithVendors(vendors []Vendor) Option {
	return func(c *Controller) { c.vendors = vendors }
}

// WithStrictSlot makes legacy Request fail with ErrSlotConflict instead of
// silently replacing the tracked video while a different one still reports
// fullscreen.
func WithStrictSlot() Option {
	return func(c *Controller) { c.strict = true }
}

// Controller is the uniform fullscreen interface over one environment. Its
// mode is fixed at construction: when a vendor bundle resolved, every
// operation forwards to the environment under the resolved names; otherwise
// it manages the single-video legacy path.
//
// The controller is not safe for concurrent use; it mirrors the
// cooperative, single-threaded model of the event environment it fronts.
// Callers that serve parallel requests must serialize access.
type Controller struct {
	doc     Document
	vendors []Vendor
	vendor  Vendor  // matched bundle, zero when unsupported
	names   NameMap // nil when unsupported
	strict  bool

	// video is the active legacy video slot: non-nil only between a
	// successful legacy request and the next exit. Failed requests roll
	// it back.
	video Video

	logger zerolog.Logger
}

// New resolves the environment's capabilities once and returns a controller
// bound to doc. Multiple controllers over distinct environments can
// coexist; there is no shared global state.
func New(doc Document, opts ...Option) *Controller {
	c := &Controller{
		doc:     doc,
		vendors: DefaultVendors(),
		logger:  log.WithComponent("fullscreen"),
	}
	for _, opt := range opts {
		opt(c)
	}
	var ok bool
	c.vendor, c.names, ok = Resolve(c.vendors, doc)
	if ok {
		c.logger.Debug().
			Str("event", "resolver.detected").
			Str("exit_method", c.vendor.Exit).
			Msg("standard fullscreen API detected")
	} else {
		c.logger.Debug().
			Str("event", "resolver.unsupported").
			Msg("no fullscreen API variant detected, using legacy video path")
	}
	return c
}

// API returns the resolved name mapping, or nil when no candidate bundle
// matched. Callers must treat the map as read-only.
func (c *Controller) API() NameMap {
	return c.names
}

// supported reports whether the standard path is active.
func (c *Controller) supported() bool {
	return c.names != nil
}

// videoEnabled probes whether the legacy single-element entry point exists.
func (c *Controller) videoEnabled() bool {
	v := c.doc.NewVideo()
	return v != nil && v.Has(LegacyEnter)
}

// Enabled reports whether fullscreen can be requested at all: the resolved
// enabled flag when the standard API is present, OR the legacy video
// capability, which is probed independently of the active mode.
func (c *Controller) Enabled() bool {
	if c.supported() && c.doc.Enabled(c.vendor.Enabled) {
		return true
	}
	return c.videoEnabled()
}

// Element returns the element currently displaying fullscreen, or nil.
//
// In legacy mode the tracked video is returned iff its own fullscreen flag
// reads true; the controller trusts that self-reported state without
// re-verification, so a video that left fullscreen by outside means (user
// pressed Escape) is reported stale for as long as its flag stays set.
func (c *Controller) Element() Element {
	if c.supported() {
		return c.doc.Current(c.vendor.Element)
	}
	if c.video != nil && c.video.Flag(LegacyShowing) {
		return c.video
	}
	return nil
}

// IsFullscreen reports whether the targeted element is fullscreen, or, with
// an empty target, whether anything is.
func (c *Controller) IsFullscreen(t Target) bool {
	cur := c.Element()
	if c.supported() {
		if t.El != nil {
			return cur == t.El
		}
	} else if t.Video != nil {
		return cur == Element(t.Video)
	}
	return cur != nil
}

// Request asks the environment to enter fullscreen.
//
// Standard mode: the resolved request method is invoked on t.El, or on the
// document root when the target is empty. The native result and any native
// failure are forwarded unmodified; completion signaling is the platform's
// own (observe OnError for the event-based variant).
//
// Legacy mode: requires t.Video. The video becomes the tracked legacy slot
// before the native enter call; on native failure the slot is rolled back
// to nil and the failure is swallowed, so the call completes silently. With
// WithStrictSlot, a different video still reporting fullscreen makes the
// call fail with ErrSlotConflict instead of replacing the slot.
func (c *Controller) Request(t Target) (any, error) {
	if c.supported() {
		el := t.El
		if el == nil {
			el = c.doc.Root()
		}
		return el.Call(c.vendor.Request)
	}

	if t.Video == nil {
		c.logger.Debug().
			Str("event", "fullscreen.request_ignored").
			Msg("legacy request without a video target")
		return nil, nil
	}
	if c.strict && c.video != nil && c.video != t.Video && c.video.Flag(LegacyShowing) {
		return nil, ErrSlotConflict
	}
	c.video = t.Video
	if _, err := t.Video.Call(LegacyEnter); err != nil {
		c.video = nil
		c.logger.Debug().
			Err(err).
			Str("event", "fullscreen.request_failed").
			Msg("legacy enter call failed, state rolled back")
	}
	return nil, nil
}

// Exit leaves fullscreen.
//
// Standard mode: the resolved exit method is invoked on the document and
// its result and failure are forwarded unmodified.
//
// Legacy mode: the slot is cleared before the native exit call so that a
// throwing call still leaves the tracked state clean, but the call is
// issued on the video captured beforehand; failures are swallowed.
func (c *Controller) Exit() (any, error) {
	if c.supported() {
		return c.doc.Exec(c.vendor.Exit)
	}

	v := c.video
	c.video = nil
	if v == nil {
		return nil, nil
	}
	if _, err := v.Call(LegacyExit); err != nil {
		c.logger.Debug().
			Err(err).
			Str("event", "fullscreen.exit_failed").
			Msg("legacy exit call failed")
	}
	return nil, nil
}

// Toggle exits when the target is fullscreen and requests otherwise. It is
// exactly IsFullscreen(t) ? Exit() : Request(t) in both modes.
func (c *Controller) Toggle(t Target) error {
	var err error
	if c.IsFullscreen(t) {
		_, err = c.Exit()
	} else {
		_, err = c.Request(t)
	}
	return err
}

// OnChange subscribes fn to the resolved fullscreen-change event and
// returns the unsubscribe. In legacy mode there is no change event; the
// subscription is a no-op and the returned func does nothing.
func (c *Controller) OnChange(fn EventFunc) (off func()) {
	if !c.supported() {
		return func() {}
	}
	return c.doc.Listen(c.vendor.Change, fn)
}

// OnError subscribes fn to the resolved fullscreen-error event; no-op in
// legacy mode, like OnChange.
func (c *Controller) OnError(fn EventFunc) (off func()) {
	if !c.supported() {
		return func() {}
	}
	return c.doc.Listen(c.vendor.Error, fn)
}
