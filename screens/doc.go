// Package screens contains overlay flows rendered on top of tabs.
//
// Allowed here:
// - screen implementations that satisfy core.Screen (the command palette)
// - modal-specific presentation and interaction wiring
//
// Not allowed here:
// - app-wide routing tables and key registry ownership
// - wallet, transfer or board logic
package screens
