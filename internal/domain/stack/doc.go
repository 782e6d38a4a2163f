// Package stack implements the page-stack navigation controller.
//
// The Manager owns an ordered sequence of pages. Index 0 is the root, the
// last element is the visible top. The stack is never empty: it is created
// with a root page and Pop refuses to remove the final element.
//
// Every mutation emits a new immutable Snapshot to all subscribers. Mutations
// and fan-out happen under one lock, so a subscriber observes snapshots in
// exactly the order the mutations were applied and never sees a
// partially-applied mutation. Subscriber callbacks therefore must not call
// back into the Manager.
//
// Operations:
//   - Push: append a page, emit
//   - Pop: remove the top unless it is the sole page; reports whether it popped
//   - Replace: swap the top (plain push on a single-page stack), one emission
//   - ReplaceAll: reset to a single page, one emission
package stack
