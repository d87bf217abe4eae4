// SPDX-License-Identifier: MIT

package fullscreen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rysi3k/video-fullscreen/internal/fullscreen"
)

func TestResolveSelectsFirstMatchingVendor(t *testing.T) {
	vendors := fullscreen.DefaultVendors()

	tests := []struct {
		name     string
		caps     []string
		wantExit string
	}{
		{
			name:     "standard API present",
			caps:     []string{"exitFullscreen", "webkitExitFullscreen"},
			wantExit: "exitFullscreen",
		},
		{
			name:     "new webkit only",
			caps:     []string{"webkitExitFullscreen"},
			wantExit: "webkitExitFullscreen",
		},
		{
			name:     "old webkit only",
			caps:     []string{"webkitCancelFullScreen"},
			wantExit: "webkitCancelFullScreen",
		},
		{
			name:     "mozilla only",
			caps:     []string{"mozCancelFullScreen"},
			wantExit: "mozCancelFullScreen",
		},
		{
			name:     "microsoft only",
			caps:     []string{"msExitFullscreen"},
			wantExit: "msExitFullscreen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, names, ok := fullscreen.Resolve(vendors, fullscreen.NewCapabilitySet(tt.caps...))
			require.True(t, ok)
			assert.Equal(t, tt.wantExit, matched.Exit)
			assert.Equal(t, tt.wantExit, names["exitFullscreen"])
		})
	}
}

func TestResolveMapIsKeyedByFirstBundle(t *testing.T) {
	vendors := fullscreen.DefaultVendors()
	caps := fullscreen.NewCapabilitySet("webkitCancelFullScreen")

	matched, names, ok := fullscreen.Resolve(vendors, caps)
	require.True(t, ok)

	// Third candidate matched; keys stay the standard bundle's names,
	// values come from the matched bundle, position for position.
	assert.Equal(t, "webkitRequestFullScreen", matched.Request)
	want := fullscreen.NameMap{
		"requestFullscreen": "webkitRequestFullScreen",
		"exitFullscreen":    "webkitCancelFullScreen",
		"fullscreenElement": "webkitCurrentFullScreenElement",
		"fullscreenEnabled": "webkitCancelFullScreen",
		"fullscreenchange":  "webkitfullscreenchange",
		"fullscreenerror":   "webkitfullscreenerror",
	}
	assert.Equal(t, want, names)
}

func TestResolveNoMatchIsAbsentNotError(t *testing.T) {
	_, names, ok := fullscreen.Resolve(fullscreen.DefaultVendors(), fullscreen.NewCapabilitySet("someOtherProp"))
	assert.False(t, ok)
	assert.Nil(t, names)
}

func TestResolveEmptyCandidateList(t *testing.T) {
	_, names, ok := fullscreen.Resolve(nil, fullscreen.NewCapabilitySet("exitFullscreen"))
	assert.False(t, ok)
	assert.Nil(t, names)
}

// probeRecorder records which names were tested for presence.
type probeRecorder struct {
	set    fullscreen.CapabilitySet
	probed []string
}

func (p *probeRecorder) Has(name string) bool {
	p.probed = append(p.probed, name)
	return p.set.Has(name)
}

func TestResolveStopsAtFirstMatch(t *testing.T) {
	// Both the second and fourth bundles would match; only the second may
	// win and probing must stop there.
	rec := &probeRecorder{set: fullscreen.NewCapabilitySet("webkitExitFullscreen", "mozCancelFullScreen")}

	matched, _, ok := fullscreen.Resolve(fullscreen.DefaultVendors(), rec)
	require.True(t, ok)
	assert.Equal(t, "webkitExitFullscreen", matched.Exit)
	assert.Equal(t, []string{"exitFullscreen", "webkitExitFullscreen"}, rec.probed)
}

func TestResolveCustomFirstBundleSuppliesKeys(t *testing.T) {
	vendors := []fullscreen.Vendor{
		{Request: "enter", Exit: "leave", Element: "current", Enabled: "allowed", Change: "changed", Error: "failed"},
		{Request: "vEnter", Exit: "vLeave", Element: "vCurrent", Enabled: "vAllowed", Change: "vChanged", Error: "vFailed"},
	}

	_, names, ok := fullscreen.Resolve(vendors, fullscreen.NewCapabilitySet("vLeave"))
	require.True(t, ok)
	assert.Equal(t, fullscreen.NameMap{
		"enter":   "vEnter",
		"leave":   "vLeave",
		"current": "vCurrent",
		"allowed": "vAllowed",
		"changed": "vChanged",
		"failed":  "vFailed",
	}, names)
}

func TestVendorComplete(t *testing.T) {
	assert.True(t, fullscreen.DefaultVendors()[0].Complete())
	assert.False(t, fullscreen.Vendor{Request: "requestFullscreen"}.Complete())
	assert.False(t, fullscreen.Vendor{}.Complete())
}
