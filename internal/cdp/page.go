// SPDX-License-Identifier: MIT

// Package cdp implements the fullscreen environment abstraction over a
// live Chrome page driven through the DevTools Protocol.
package cdp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/rysi3k/video-fullscreen/internal/fullscreen"
	"github.com/rysi3k/video-fullscreen/internal/log"
)

const (
	bindingName     = "__fsdNotify"
	rootSelector    = ":root"
	foreignSelector = "*"
)

// Options configures how a Page reaches Chrome.
type Options struct {
	// RemoteURL is a DevTools websocket URL to attach to. When empty a
	// Chrome instance is spawned.
	RemoteURL string

	// PageURL is navigated to after launch when set.
	PageURL string

	// ExecPath overrides Chrome binary discovery when spawning.
	ExecPath string

	Headless bool
	Kiosk    bool

	// EvalTimeout bounds each protocol round-trip; zero means 10s.
	EvalTimeout time.Duration
}

// Page is a fullscreen.Document over one browser tab. Element values are
// interned per selector so repeated lookups return identical values, which
// the controller's equality comparisons rely on.
type Page struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
	logger      zerolog.Logger

	mu     sync.Mutex
	elems  map[string]*element
	videos map[string]*video
	hooks  map[string]map[int64]fullscreen.EventFunc
	next   int64
}

// Launch connects to Chrome per opts and returns a page bound to its
// active tab.
func Launch(ctx context.Context, opts Options) (*Page, error) {
	timeout := opts.EvalTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	p := &Page{
		timeout: timeout,
		logger:  log.WithComponent("cdp"),
		elems:   map[string]*element{},
		videos:  map[string]*video{},
		hooks:   map[string]map[int64]fullscreen.EventFunc{},
	}

	var allocCtx context.Context
	if opts.RemoteURL != "" {
		allocCtx, p.allocCancel = chromedp.NewRemoteAllocator(ctx, opts.RemoteURL)
	} else {
		execOpts := []chromedp.ExecAllocatorOption{
			chromedp.NoFirstRun,
			chromedp.NoDefaultBrowserCheck,
			chromedp.Flag("disable-infobars", true),
			chromedp.Flag("autoplay-policy", "no-user-gesture-required"),
			chromedp.Flag("hide-crash-restore-bubble", true),
		}
		if opts.Headless {
			execOpts = append(execOpts, chromedp.Headless)
		}
		if opts.Kiosk {
			execOpts = append(execOpts, chromedp.Flag("kiosk", true))
		}
		if opts.ExecPath != "" {
			execOpts = append(execOpts, chromedp.ExecPath(opts.ExecPath))
		}
		allocCtx, p.allocCancel = chromedp.NewExecAllocator(ctx, execOpts...)
	}

	p.ctx, p.cancel = chromedp.NewContext(allocCtx)

	chromedp.ListenTarget(p.ctx, func(ev interface{}) {
		if e, ok := ev.(*runtime.EventBindingCalled); ok && e.Name == bindingName {
			p.dispatch(trimQuotes(e.Payload))
		}
	})

	if err := chromedp.Run(p.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return runtime.AddBinding(bindingName).Do(ctx)
	})); err != nil {
		p.Close()
		return nil, fmt.Errorf("cdp: add binding: %w", err)
	}

	if opts.PageURL != "" {
		if err := chromedp.Run(p.ctx, chromedp.Navigate(opts.PageURL)); err != nil {
			p.Close()
			return nil, fmt.Errorf("cdp: navigate: %w", err)
		}
		// Best effort: pages that never settle should not wedge startup.
		waitCtx, cancel := context.WithTimeout(p.ctx, timeout)
		if err := chromedp.Run(waitCtx, chromedp.WaitReady("body")); err != nil {
			p.logger.Warn().
				Err(err).
				Str("event", "cdp.wait_ready_timeout").
				Msg("page did not become ready, continuing")
		}
		cancel()
	}

	p.logger.Info().
		Str("event", "cdp.connected").
		Str("page_url", opts.PageURL).
		Bool("remote", opts.RemoteURL != "").
		Msg("browser page connected")
	return p, nil
}

// Close tears down the browser contexts.
func (p *Page) Close() {
	if p.cancel != nil {
		p.cancel()
	}
	if p.allocCancel != nil {
		p.allocCancel()
	}
}

// eval runs expr and decodes the result into out (which may be nil),
// awaiting promises.
func (p *Page) eval(expr string, out any) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.Evaluate(expr, out,
		func(ep *runtime.EvaluateParams) *runtime.EvaluateParams {
			return ep.WithAwaitPromise(true)
		}))
}

// evalBool runs a boolean expression; protocol failures read as false.
func (p *Page) evalBool(expr string) bool {
	var res bool
	if err := p.eval(expr, &res); err != nil {
		p.logger.Debug().
			Err(err).
			Str("event", "cdp.eval_failed").
			Msg("boolean probe failed, treating as absent")
		return false
	}
	return res
}

// intern returns the canonical element value for a selector.
func (p *Page) intern(sel string) *element {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.elems[sel]; ok {
		return el
	}
	el := &element{p: p, sel: sel}
	p.elems[sel] = el
	return el
}

// trackedSelectors lists interned selectors eligible for current-element
// matching.
func (p *Page) trackedSelectors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	sels := make([]string, 0, len(p.elems))
	for sel := range p.elems {
		if sel != rootSelector && sel != foreignSelector {
			sels = append(sels, sel)
		}
	}
	return sels
}

// Has implements fullscreen.Capabilities against the live document.
func (p *Page) Has(name string) bool {
	return p.evalBool(hasExpr(name))
}

// Enabled reads the named fullscreen-enabled flag.
func (p *Page) Enabled(prop string) bool {
	return p.evalBool(enabledExpr(prop))
}

// Current resolves the named current-fullscreen-element property against
// the interned selectors.
func (p *Page) Current(prop string) fullscreen.Element {
	var sel string
	if err := p.eval(currentExpr(prop, p.trackedSelectors()), &sel); err != nil {
		p.logger.Debug().
			Err(err).
			Str("event", "cdp.eval_failed").
			Msg("current element read failed")
		return nil
	}
	if sel == "" {
		return nil
	}
	return p.intern(sel)
}

// Exec invokes the named method on the document.
func (p *Page) Exec(method string) (any, error) {
	var res any
	err := p.eval(callExpr("document", method), &res)
	return res, err
}

// Root returns the document root element.
func (p *Page) Root() fullscreen.Element {
	return p.intern(rootSelector)
}

// NewVideo returns a probe over a detached video element.
func (p *Page) NewVideo() fullscreen.Video {
	return &probeVideo{p: p}
}

// Listen installs a page-side trampoline for the event on first use and
// fans notifications out to registered funcs.
func (p *Page) Listen(event string, fn fullscreen.EventFunc) (off func()) {
	p.mu.Lock()
	hooks, ok := p.hooks[event]
	if !ok {
		hooks = map[int64]fullscreen.EventFunc{}
		p.hooks[event] = hooks
	}
	p.next++
	id := p.next
	hooks[id] = fn
	install := len(hooks) == 1
	p.mu.Unlock()

	if install {
		if err := p.eval(hookInstallExpr(event), nil); err != nil {
			p.logger.Warn().
				Err(err).
				Str("event", "cdp.hook_install_failed").
				Str("dom_event", event).
				Msg("could not install event hook")
		}
	}

	return func() {
		p.mu.Lock()
		delete(p.hooks[event], id)
		remove := len(p.hooks[event]) == 0
		if remove {
			delete(p.hooks, event)
		}
		p.mu.Unlock()
		if remove {
			if err := p.eval(hookRemoveExpr(event), nil); err != nil {
				p.logger.Debug().
					Err(err).
					Str("event", "cdp.hook_remove_failed").
					Str("dom_event", event).
					Msg("could not remove event hook")
			}
		}
	}
}

// dispatch fans a binding notification out to the event's listeners.
func (p *Page) dispatch(event string) {
	p.mu.Lock()
	fns := make([]fullscreen.EventFunc, 0, len(p.hooks[event]))
	for _, fn := range p.hooks[event] {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(fullscreen.Event{Type: event})
	}
}

// LookupElement interns the selector after verifying it matches.
func (p *Page) LookupElement(selector string) (fullscreen.Element, error) {
	if !p.evalBool(existsExpr(selector)) {
		return nil, fmt.Errorf("cdp: no element for selector %q", selector)
	}
	return p.intern(selector), nil
}

// LookupVideo interns the selector after verifying it matches a video.
// Videos are interned separately so the same selector yields the same
// value across lookups.
func (p *Page) LookupVideo(selector string) (fullscreen.Video, error) {
	if !p.evalBool(isVideoExpr(selector)) {
		return nil, fmt.Errorf("cdp: no video for selector %q", selector)
	}
	el := p.intern(selector)
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.videos[selector]; ok {
		return v, nil
	}
	v := &video{element: el}
	p.videos[selector] = v
	return v, nil
}

// trimQuotes strips one layer of JSON string quoting some binding
// transports add around the payload.
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
