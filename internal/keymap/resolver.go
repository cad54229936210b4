package keymap

import (
	"slices"
	"strings"
)

// Resolver maps key strings to actions and actions back to their keys.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
}

// NewResolver indexes bindings. A key claimed by two bindings belongs to the
// first.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			if _, taken := r.actions[k]; !taken {
				r.actions[k] = b.Action
			}
			if !slices.Contains(r.keys[b.Action], k) {
				r.keys[b.Action] = append(r.keys[b.Action], k)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key, or "" if none.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys bound to action in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}

// Label renders an action's keys for the help view: "q/ctrl+c", with a
// literal space shown as "space" and the digit row collapsed to "0-9".
func (r *Resolver) Label(action Action) string {
	keys := r.KeysFor(action)
	if len(keys) == 10 && keys[0] == "0" && keys[9] == "9" {
		return "0-9"
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return strings.Join(out, "/")
}
