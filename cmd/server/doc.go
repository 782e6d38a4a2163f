// Command server runs the navd navigation controller: an HTTP and WebSocket
// service that owns a page stack and mediates result rendezvous between
// navigation callers.
//
// Configuration is read from the environment; see internal/infrastructure/config.
package main
