// SPDX-License-Identifier: MIT

package cdp

import (
	"errors"

	"github.com/rysi3k/video-fullscreen/internal/fullscreen"
)

// element is an interned page element addressed by selector.
type element struct {
	p   *Page
	sel string
}

// Call invokes a zero-argument method on the element, awaiting promise
// results, and forwards whatever the page returns.
func (e *element) Call(method string) (any, error) {
	var res any
	err := e.p.eval(callExpr(selectorExpr(e.sel), method), &res)
	return res, err
}

// video decorates an interned element with the legacy entry-point probes.
type video struct {
	*element
}

var _ fullscreen.Video = (*video)(nil)

// Has reports property presence on the underlying element.
func (v *video) Has(name string) bool {
	return v.p.evalBool(videoHasExpr(v.sel, name))
}

// Flag reads a boolean property on the underlying element.
func (v *video) Flag(name string) bool {
	return v.p.evalBool(videoFlagExpr(v.sel, name))
}

// probeVideo runs capability tests against a detached video element. It is
// never attached to the page and cannot be a fullscreen target.
type probeVideo struct {
	p *Page
}

var _ fullscreen.Video = (*probeVideo)(nil)

func (v *probeVideo) Has(name string) bool {
	return v.p.evalBool(probeHasExpr(name))
}

func (v *probeVideo) Flag(string) bool { return false }

func (v *probeVideo) Call(string) (any, error) {
	return nil, errors.New("cdp: probe video is detached")
}
