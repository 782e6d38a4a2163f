// Package http exposes the navigation controller's mutation and query calls
// over a gin REST surface.
//
// Routes (wired by the infrastructure server):
//
//	GET  /               service info
//	GET  /health         liveness
//	GET  /stack          current snapshot
//	GET  /stack/views    rendered views, top marked interactive
//	GET  /stack/stats    stack + rendezvous statistics
//	POST /stack/push     {page}
//	POST /stack/pop      → {did_pop}
//	POST /stack/replace  {page}
//	POST /stack/reset    {page}; cancels any pending rendezvous first
//	POST /rendezvous/return  {value} → {delivered, did_pop}
//
// Suspending waits (waitForResult) are a WebSocket concern: an HTTP request
// that parks until another request resolves it makes a poor API, so the ws
// package owns that call.
package http
