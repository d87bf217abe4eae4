// SPDX-License-Identifier: MIT

// Package fullscreen hides the historical fragmentation of the browser
// Fullscreen API behind one stable contract. A prioritized list of vendor
// name bundles is resolved once against the host document's capabilities;
// the resulting controller either forwards to the detected standard API or
// falls back to the video-only legacy fullscreen mode older WebKit ports
// shipped instead of the element API.
package fullscreen

// Vendor is one naming variant of the fullscreen API: the six names a
// particular engine generation uses for the request method, exit method,
// current-element property, enabled property and the two event types.
type Vendor struct {
	Request string `yaml:"request"`
	Exit    string `yaml:"exit"`
	Element string `yaml:"element"`
	Enabled string `yaml:"enabled"`
	Change  string `yaml:"change"`
	Error   string `yaml:"error"`
}

// names returns the bundle in canonical order.
func (v Vendor) names() [6]string {
	return [6]string{v.Request, v.Exit, v.Element, v.Enabled, v.Change, v.Error}
}

// Complete reports whether all six names are set. Resolution against a
// partially filled bundle would produce a mapping with empty values, so
// config validation rejects incomplete bundles up front.
func (v Vendor) Complete() bool {
	for _, n := range v.names() {
		if n == "" {
			return false
		}
	}
	return true
}

// NameMap associates the canonical operation names (the first bundle's
// names) with the names the host environment actually uses. It is built
// once by Resolve and never mutated.
type NameMap map[string]string

// DefaultVendors returns the built-in candidate list, standard name set
// first, then vendor variants in the order they should be tried.
func DefaultVendors() []Vendor {
	return []Vendor{
		{
			Request: "requestFullscreen",
			Exit:    "exitFullscreen",
			Element: "fullscreenElement",
			Enabled: "fullscreenEnabled",
			Change:  "fullscreenchange",
			Error:   "fullscreenerror",
		},
		{
			Request: "webkitRequestFullscreen",
			Exit:    "webkitExitFullscreen",
			Element: "webkitFullscreenElement",
			Enabled: "webkitFullscreenEnabled",
			Change:  "webkitfullscreenchange",
			Error:   "webkitfullscreenerror",
		},
		{
			// Old WebKit never exposed an enabled flag; the cancel method
			// doubles as the probe the way the historical shims did it.
			Request: "webkitRequestFullScreen",
			Exit:    "webkitCancelFullScreen",
			Element: "webkitCurrentFullScreenElement",
			Enabled: "webkitCancelFullScreen",
			Change:  "webkitfullscreenchange",
			Error:   "webkitfullscreenerror",
		},
		{
			Request: "mozRequestFullScreen",
			Exit:    "mozCancelFullScreen",
			Element: "mozFullScreenElement",
			Enabled: "mozFullScreenEnabled",
			Change:  "mozfullscreenchange",
			Error:   "mozfullscreenerror",
		},
		{
			Request: "msRequestFullscreen",
			Exit:    "msExitFullscreen",
			Element: "msFullscreenElement",
			Enabled: "msFullscreenEnabled",
			Change:  "MSFullscreenChange",
			Error:   "MSFullscreenError",
		},
	}
}
