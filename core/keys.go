package core

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) Register(binding KeyBinding) {
	r.bindings = append(r.bindings, binding)
}

// BindingsForScope lists bindings shown in the footer for scope. Pane
// specific bindings come first.
func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	local := make([]KeyBinding, 0, len(r.bindings))
	global := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		switch {
		case scopeListed(scope, b.Scopes):
			local = append(local, b)
		case scopeMatch(scope, b.Scopes):
			global = append(global, b)
		}
	}
	return append(local, global...)
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		if slices.ContainsFunc(b.Keys, func(k string) bool { return normalizeKey(k) == pressed }) {
			return true
		}
	}
	return false
}

// ScopedAction resolves msg against bindings that name scope explicitly.
// Wildcard bindings never match here.
func (r *KeyRegistry) ScopedAction(msg tea.KeyMsg, scope string) (string, bool) {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeListed(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action, true
			}
		}
	}
	return "", false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	return slices.Contains(scopes, "*") || slices.Contains(scopes, scope)
}

func scopeListed(scope string, scopes []string) bool {
	return scope != "" && slices.Contains(scopes, scope)
}
