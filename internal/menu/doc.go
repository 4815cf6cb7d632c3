// Package menu implements headless popup menu state machines.
//
// A Menu tracks whether the popup is open, which item holds keyboard focus
// and which submenu is expanded. Keyboard events and pointer events are fed
// in as method calls and the menu reports what they did; rendering is left
// to the caller. A Palette is the grouped, query-filtered command menu built
// on the same focus rules.
package menu
