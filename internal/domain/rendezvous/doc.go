// Package rendezvous implements push-and-await-result navigation on top of
// the page stack.
//
// WaitForResult pushes a page and suspends the calling goroutine until a
// matching ReturnWith supplies the value. One completion slot exists at a
// time: starting a second WaitForResult while one is pending resolves the
// first waiter with ErrSuperseded rather than leaving it hanging. A waiter
// is always completed exactly once — with a value, ErrSuperseded,
// ErrCanceled, or its context's error.
//
// ReturnWith pops the top page even when no waiter is pending; the unmatched
// return is logged and counted but is not an error.
//
// Known limitation: the single slot means concurrent WaitForResult calls
// supersede each other (last writer wins). Callers that need overlapping
// result flows must serialize them.
package rendezvous
