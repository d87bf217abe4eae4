// SPDX-License-Identifier: MIT

package fullscreen

// Capabilities reports which property names exist on the host document.
// Live environments implement it with a presence probe; tests use a
// CapabilitySet built from synthetic descriptors.
type Capabilities interface {
	Has(name string) bool
}

// CapabilitySet is an explicit capability descriptor: the set of property
// and method names a document is known to expose.
type CapabilitySet map[string]struct{}

// NewCapabilitySet builds a descriptor from the given names.
func NewCapabilitySet(names ...string) CapabilitySet {
	s := make(CapabilitySet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether the named property is in the set.
func (s CapabilitySet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Resolve walks vendors in priority order and returns the first variant
// whose exit-method name is present in caps, together with the name map
// keyed by the first bundle's canonical names. Iteration stops at the first
// match. Absence of support is a normal result, not an error: ok is false
// and both other results are zero.
//
// The exit method is probed rather than the request method because it has
// been the one name reliably present across every engine generation that
// shipped any of the bundles.
func Resolve(vendors []Vendor, caps Capabilities) (Vendor, NameMap, bool) {
	if len(vendors) == 0 {
		return Vendor{}, nil, false
	}
	keys := vendors[0].names()
	for _, v := range vendors {
		if !caps.Has(v.Exit) {
			continue
		}
		found := v.names()
		m := make(NameMap, len(keys))
		for i, k := range keys {
			m[k] = found[i]
		}
		return v, m, true
	}
	return Vendor{}, nil, false
}
