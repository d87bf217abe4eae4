// SPDX-License-Identifier: MIT

package fullscreen_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rysi3k/video-fullscreen/internal/domtest"
	"github.com/rysi3k/video-fullscreen/internal/fullscreen"
)

func TestStandardModeResolvedMapping(t *testing.T) {
	doc := domtest.NewStandardDoc()
	ctrl := fullscreen.New(doc)

	api := ctrl.API()
	require.NotNil(t, api)
	assert.Equal(t, "requestFullscreen", api["requestFullscreen"])
	assert.Equal(t, "exitFullscreen", api["exitFullscreen"])
}

func TestStandardModeEnabled(t *testing.T) {
	std := fullscreen.DefaultVendors()[0]

	t.Run("enabled flag set", func(t *testing.T) {
		doc := domtest.NewStandardDoc()
		assert.True(t, fullscreen.New(doc).Enabled())
	})

	t.Run("flag false but legacy video capability present", func(t *testing.T) {
		doc := domtest.NewStandardDoc()
		doc.EnabledProps[std.Enabled] = false
		assert.True(t, fullscreen.New(doc).Enabled())
	})

	t.Run("flag false and no element creation", func(t *testing.T) {
		doc := domtest.NewStandardDoc()
		doc.EnabledProps[std.Enabled] = false
		doc.ProbeVideo = nil
		assert.False(t, fullscreen.New(doc).Enabled())
	})

	t.Run("flag false and probe video lacks legacy entry point", func(t *testing.T) {
		doc := domtest.NewStandardDoc()
		doc.EnabledProps[std.Enabled] = false
		doc.ProbeVideo.Props = map[string]bool{}
		assert.False(t, fullscreen.New(doc).Enabled())
	})
}

func TestStandardModeIsFullscreen(t *testing.T) {
	doc := domtest.NewStandardDoc()
	ctrl := fullscreen.New(doc)
	body := doc.Elements["body"]
	other := &domtest.Elem{ID: "other"}

	assert.False(t, ctrl.IsFullscreen(fullscreen.Target{}))
	assert.False(t, ctrl.IsFullscreen(fullscreen.Target{El: body}))

	doc.Cur = body
	assert.True(t, ctrl.IsFullscreen(fullscreen.Target{}))
	assert.True(t, ctrl.IsFullscreen(fullscreen.Target{El: body}))
	assert.False(t, ctrl.IsFullscreen(fullscreen.Target{El: other}))
	assert.Equal(t, fullscreen.Element(body), ctrl.Element())
}

func TestStandardModeRequestTargetsElement(t *testing.T) {
	doc := domtest.NewStandardDoc()
	ctrl := fullscreen.New(doc)
	body := doc.Elements["body"]
	body.Result = "pending"

	res, err := ctrl.Request(fullscreen.Target{El: body})
	require.NoError(t, err)
	assert.Equal(t, "pending", res)
	assert.Equal(t, []string{"requestFullscreen"}, body.Calls)
	assert.Empty(t, doc.RootEl.Calls)
}

func TestStandardModeRequestDefaultsToRoot(t *testing.T) {
	doc := domtest.NewStandardDoc()
	ctrl := fullscreen.New(doc)

	_, err := ctrl.Request(fullscreen.Target{})
	require.NoError(t, err)
	assert.Equal(t, []string{"requestFullscreen"}, doc.RootEl.Calls)
}

func TestStandardModeNativeFailuresPropagate(t *testing.T) {
	doc := domtest.NewStandardDoc()
	ctrl := fullscreen.New(doc)
	nativeErr := errors.New("denied by user agent")

	doc.RootEl.Err = nativeErr
	_, err := ctrl.Request(fullscreen.Target{})
	assert.Equal(t, nativeErr, err)

	doc.ExecErr = nativeErr
	_, err = ctrl.Exit()
	assert.Equal(t, nativeErr, err)
}

func TestStandardModeExit(t *testing.T) {
	doc := domtest.NewStandardDoc()
	ctrl := fullscreen.New(doc)
	doc.ExecResult = "done"

	res, err := ctrl.Exit()
	require.NoError(t, err)
	assert.Equal(t, "done", res)
	assert.Equal(t, []string{"exitFullscreen"}, doc.ExecCalls)
}

func TestStandardModeListenersUseResolvedNames(t *testing.T) {
	// Old-WebKit document: registrations must use the vendor event names.
	std := fullscreen.DefaultVendors()
	doc := domtest.NewStandardDoc()
	doc.Caps = fullscreen.NewCapabilitySet("webkitCancelFullScreen")
	ctrl := fullscreen.New(doc)
	require.Equal(t, "webkitRequestFullScreen", ctrl.API()[std[0].Request])

	var changes, errs int
	offChange := ctrl.OnChange(func(fullscreen.Event) { changes++ })
	offErr := ctrl.OnError(func(fullscreen.Event) { errs++ })

	assert.Equal(t, 1, doc.ListenerCount("webkitfullscreenchange"))
	assert.Equal(t, 0, doc.ListenerCount("fullscreenchange"))

	doc.Dispatch("webkitfullscreenchange")
	doc.Dispatch("webkitfullscreenerror")
	assert.Equal(t, 1, changes)
	assert.Equal(t, 1, errs)

	offChange()
	offErr()
	assert.Equal(t, 0, doc.ListenerCount("webkitfullscreenchange"))
	assert.Equal(t, 0, doc.ListenerCount("webkitfullscreenerror"))

	doc.Dispatch("webkitfullscreenchange")
	assert.Equal(t, 1, changes)
}

func TestLegacyModeEnabled(t *testing.T) {
	t.Run("probe video has legacy entry point", func(t *testing.T) {
		doc := domtest.NewLegacyDoc()
		ctrl := fullscreen.New(doc)
		assert.Nil(t, ctrl.API())
		assert.True(t, ctrl.Enabled())
	})

	t.Run("no element creation", func(t *testing.T) {
		doc := domtest.NewLegacyDoc()
		doc.ProbeVideo = nil
		assert.False(t, fullscreen.New(doc).Enabled())
	})
}

func TestLegacyModeRequestTracksVideo(t *testing.T) {
	doc := domtest.NewLegacyDoc()
	ctrl := fullscreen.New(doc)
	v := doc.Videos["#player"]

	res, err := ctrl.Request(fullscreen.Target{Video: v})
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, []string{fullscreen.LegacyEnter}, v.Calls)

	// The element is reported for as long as the video's own flag holds.
	assert.Equal(t, fullscreen.Element(v), ctrl.Element())
	assert.True(t, ctrl.IsFullscreen(fullscreen.Target{Video: v}))
	assert.True(t, ctrl.IsFullscreen(fullscreen.Target{}))

	// Outside exit (user pressed Escape): flag clears, element goes away
	// even though the slot still holds the reference.
	v.Flags[fullscreen.LegacyShowing] = false
	assert.Nil(t, ctrl.Element())
	assert.False(t, ctrl.IsFullscreen(fullscreen.Target{}))
}

func TestLegacyModeFailedRequestRollsBack(t *testing.T) {
	doc := domtest.NewLegacyDoc()
	ctrl := fullscreen.New(doc)
	v := doc.Videos["#player"]
	v.Err = errors.New("not allowed")

	res, err := ctrl.Request(fullscreen.Target{Video: v})
	assert.NoError(t, err) // swallowed
	assert.Nil(t, res)
	assert.Nil(t, ctrl.Element())
	assert.False(t, ctrl.IsFullscreen(fullscreen.Target{}))
}

func TestLegacyModeRequestWithoutVideoIsNoop(t *testing.T) {
	doc := domtest.NewLegacyDoc()
	ctrl := fullscreen.New(doc)

	res, err := ctrl.Request(fullscreen.Target{})
	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Nil(t, ctrl.Element())
}

func TestLegacyExitCallsCapturedVideo(t *testing.T) {
	doc := domtest.NewLegacyDoc()
	ctrl := fullscreen.New(doc)
	v := doc.Videos["#player"]

	_, err := ctrl.Request(fullscreen.Target{Video: v})
	require.NoError(t, err)

	_, err = ctrl.Exit()
	require.NoError(t, err)

	// The slot was released, and the native exit fired on the video that
	// was captured before the release.
	assert.Nil(t, ctrl.Element())
	assert.Equal(t, []string{fullscreen.LegacyEnter, fullscreen.LegacyExit}, v.Calls)

	// Exit with an empty slot stays a silent no-op.
	_, err = ctrl.Exit()
	assert.NoError(t, err)
	assert.Equal(t, []string{fullscreen.LegacyEnter, fullscreen.LegacyExit}, v.Calls)
}

func TestLegacyExitSwallowsNativeFailure(t *testing.T) {
	doc := domtest.NewLegacyDoc()
	ctrl := fullscreen.New(doc)
	v := doc.Videos["#player"]

	_, err := ctrl.Request(fullscreen.Target{Video: v})
	require.NoError(t, err)

	v.Err = errors.New("exit refused")
	_, err = ctrl.Exit()
	assert.NoError(t, err)
	// A throwing exit still leaves the tracked state cleared.
	v.Err = nil
	v.Flags[fullscreen.LegacyShowing] = false
	assert.Nil(t, ctrl.Element())
}

func TestLegacySlotReplacement(t *testing.T) {
	doc := domtest.NewLegacyDoc()
	v1 := doc.Videos["#player"]
	v2 := domtest.NewVid("#second")
	doc.Videos["#second"] = v2

	t.Run("default replaces silently", func(t *testing.T) {
		ctrl := fullscreen.New(doc)
		_, err := ctrl.Request(fullscreen.Target{Video: v1})
		require.NoError(t, err)

		_, err = ctrl.Request(fullscreen.Target{Video: v2})
		require.NoError(t, err)
		assert.Equal(t, fullscreen.Element(v2), ctrl.Element())
		// The first video never received an exit call.
		assert.Equal(t, []string{fullscreen.LegacyEnter}, v1.Calls)
	})

	t.Run("strict slot rejects while occupant is still fullscreen", func(t *testing.T) {
		v1.Calls, v2.Calls = nil, nil
		v1.Flags[fullscreen.LegacyShowing] = false
		v2.Flags[fullscreen.LegacyShowing] = false

		ctrl := fullscreen.New(doc, fullscreen.WithStrictSlot())
		_, err := ctrl.Request(fullscreen.Target{Video: v1})
		require.NoError(t, err)

		_, err = ctrl.Request(fullscreen.Target{Video: v2})
		assert.ErrorIs(t, err, fullscreen.ErrSlotConflict)
		assert.Empty(t, v2.Calls)

		// Re-requesting the occupant itself is fine.
		_, err = ctrl.Request(fullscreen.Target{Video: v1})
		assert.NoError(t, err)

		// Once the occupant stops reporting fullscreen, the slot is free.
		v1.Flags[fullscreen.LegacyShowing] = false
		_, err = ctrl.Request(fullscreen.Target{Video: v2})
		assert.NoError(t, err)
		assert.Equal(t, fullscreen.Element(v2), ctrl.Element())
	})
}

func TestLegacyModeSubscriptionsAreNoops(t *testing.T) {
	doc := domtest.NewLegacyDoc()
	ctrl := fullscreen.New(doc)

	off1 := ctrl.OnChange(func(fullscreen.Event) { t.Fatal("must never fire") })
	off2 := ctrl.OnError(func(fullscreen.Event) { t.Fatal("must never fire") })
	require.NotNil(t, off1)
	require.NotNil(t, off2)
	off1()
	off2()

	assert.Equal(t, 0, doc.ListenerCount("fullscreenchange"))
	assert.Equal(t, 0, doc.ListenerCount("fullscreenerror"))
}

func TestToggleEquivalence(t *testing.T) {
	t.Run("standard not fullscreen requests", func(t *testing.T) {
		doc := domtest.NewStandardDoc()
		ctrl := fullscreen.New(doc)
		body := doc.Elements["body"]

		require.NoError(t, ctrl.Toggle(fullscreen.Target{El: body}))
		assert.Equal(t, []string{"requestFullscreen"}, body.Calls)
		assert.Empty(t, doc.ExecCalls)
	})

	t.Run("standard fullscreen exits", func(t *testing.T) {
		doc := domtest.NewStandardDoc()
		ctrl := fullscreen.New(doc)
		body := doc.Elements["body"]
		doc.Cur = body

		require.NoError(t, ctrl.Toggle(fullscreen.Target{El: body}))
		assert.Empty(t, body.Calls)
		assert.Equal(t, []string{"exitFullscreen"}, doc.ExecCalls)
	})

	t.Run("standard empty target follows current element", func(t *testing.T) {
		doc := domtest.NewStandardDoc()
		ctrl := fullscreen.New(doc)
		doc.Cur = doc.Elements["body"]

		require.NoError(t, ctrl.Toggle(fullscreen.Target{}))
		assert.Equal(t, []string{"exitFullscreen"}, doc.ExecCalls)
	})

	t.Run("legacy round trip", func(t *testing.T) {
		doc := domtest.NewLegacyDoc()
		ctrl := fullscreen.New(doc)
		v := doc.Videos["#player"]

		require.NoError(t, ctrl.Toggle(fullscreen.Target{Video: v}))
		assert.Equal(t, []string{fullscreen.LegacyEnter}, v.Calls)

		require.NoError(t, ctrl.Toggle(fullscreen.Target{Video: v}))
		assert.Equal(t, []string{fullscreen.LegacyEnter, fullscreen.LegacyExit}, v.Calls)
	})
}

func TestWithVendorsOverride(t *testing.T) {
	vendors := []fullscreen.Vendor{
		{Request: "enter", Exit: "leave", Element: "current", Enabled: "allowed", Change: "changed", Error: "failed"},
	}
	doc := domtest.NewDoc()
	doc.Caps = fullscreen.NewCapabilitySet("leave")
	doc.EnabledProps["allowed"] = true

	ctrl := fullscreen.New(doc, fullscreen.WithVendors(vendors))
	require.NotNil(t, ctrl.API())
	assert.Equal(t, "leave", ctrl.API()["leave"])
	assert.True(t, ctrl.Enabled())
}
