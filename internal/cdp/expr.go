// SPDX-License-Identifier: MIT

package cdp

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// quote returns s as a JS string literal.
func quote(s string) string {
	return strconv.Quote(s)
}

// hasExpr tests property presence on the document.
func hasExpr(name string) string {
	return fmt.Sprintf(`(%s in document)`, quote(name))
}

// probeHasExpr tests property presence on a freshly created video element.
func probeHasExpr(name string) string {
	return fmt.Sprintf(`(function(){var v=document.createElement('video');return (%s in v);})()`, quote(name))
}

// enabledExpr reads a document boolean property.
func enabledExpr(prop string) string {
	return fmt.Sprintf(`!!document[%s]`, quote(prop))
}

// selectorExpr resolves a tracked selector to an element expression.
func selectorExpr(sel string) string {
	if sel == rootSelector {
		return "document.documentElement"
	}
	return fmt.Sprintf(`document.querySelector(%s)`, quote(sel))
}

// callExpr invokes a zero-argument method on the element expression,
// normalising undefined to null so the protocol round-trip can decode the
// result, and handing promises back for await.
func callExpr(objExpr, method string) string {
	return fmt.Sprintf(`(function(){
var el = %s;
if (!el) { throw new Error('fullscreen target not found'); }
var r = el[%s]();
if (r && typeof r.then === 'function') {
	return r.then(function(v){ return v === undefined ? null : v; });
}
return r === undefined ? null : r;
})()`, objExpr, quote(method))
}

// currentExpr resolves the current-fullscreen-element property against the
// tracked selectors, returning the matching selector, ":root" for the
// document element, "*" for an element this page object never handed out,
// or "" when nothing is fullscreen.
func currentExpr(prop string, selectors []string) string {
	sels, _ := json.Marshal(selectors)
	return fmt.Sprintf(`(function(){
var cur = document[%s];
if (!cur) { return ''; }
if (cur === document.documentElement) { return %s; }
var sels = %s;
for (var i = 0; i < sels.length; i++) {
	try { if (document.querySelector(sels[i]) === cur) { return sels[i]; } } catch (e) {}
}
return %s;
})()`, quote(prop), quote(rootSelector), sels, quote(foreignSelector))
}

// videoHasExpr tests property presence on the element behind a selector.
func videoHasExpr(sel, name string) string {
	return fmt.Sprintf(`(function(){var el=%s;return !!el && (%s in el);})()`, selectorExpr(sel), quote(name))
}

// videoFlagExpr reads a boolean property on the element behind a selector.
func videoFlagExpr(sel, name string) string {
	return fmt.Sprintf(`(function(){var el=%s;return !!(el && el[%s]);})()`, selectorExpr(sel), quote(name))
}

// existsExpr tests whether a selector matches anything.
func existsExpr(sel string) string {
	return fmt.Sprintf(`!!document.querySelector(%s)`, quote(sel))
}

// isVideoExpr tests whether a selector matches a video element.
func isVideoExpr(sel string) string {
	return fmt.Sprintf(`(function(){var el=document.querySelector(%s);return !!el && el.tagName === 'VIDEO';})()`, quote(sel))
}

// hookInstallExpr registers the page-side trampoline that forwards the
// named DOM event through the binding. Idempotent per event name.
func hookInstallExpr(event string) string {
	evt := quote(event)
	return fmt.Sprintf(`(function(){
window.__fsdHooks = window.__fsdHooks || {};
if (window.__fsdHooks[%s]) { return true; }
window.__fsdHooks[%s] = function(){ window[%s](%s); };
document.addEventListener(%s, window.__fsdHooks[%s], false);
return true;
})()`, evt, evt, quote(bindingName), evt, evt, evt)
}

// hookRemoveExpr tears the trampoline down again.
func hookRemoveExpr(event string) string {
	evt := quote(event)
	return fmt.Sprintf(`(function(){
var h = window.__fsdHooks && window.__fsdHooks[%s];
if (h) { document.removeEventListener(%s, h, false); delete window.__fsdHooks[%s]; }
return true;
})()`, evt, evt, evt)
}
