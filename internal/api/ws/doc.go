// Package ws streams stack snapshots to the presentation layer and accepts
// navigation commands over a WebSocket connection.
//
// On connect the client receives a system hello, the current snapshot, and
// then every subsequent snapshot in mutation order. A connection that cannot
// keep up with the snapshot stream is closed rather than given a reordered or
// thinned view of the stack.
//
// Inbound message types: push, pop, replace, reset, return, wait_for_result,
// ping. wait_for_result suspends in its own goroutine, so the connection
// keeps handling other commands while the waiter is pending; the outcome
// arrives later as a result message. Waiters started by a connection are
// canceled when that connection goes away.
package ws
