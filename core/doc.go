// Package core contains the dashboard shell: model routing, message
// contracts, key and command registries, and tab/pane focus policy.
//
// Concrete panes and modal screens live elsewhere; rendering primitives live
// in core/widgets.
package core
