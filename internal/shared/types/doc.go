// Package types defines the shared data model for navd.
//
// Core Types:
//   - Page: Immutable, comparable value describing a navigable destination
//   - Snapshot: Ordered copy of the page stack at a point in time
//   - View: Renderer output for a page (title, props, interactive flag)
//
// Pages are a closed set of variants (home, login, profile, detail), each
// carrying its own payload fields. A page's Key is derived from its kind and
// payload and identifies the page value, not its position: the same page may
// legitimately appear more than once in a stack.
package types
