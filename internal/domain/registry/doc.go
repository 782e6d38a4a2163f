// Package registry maps page kinds to view renderers.
//
// The navigation core stays renderer-agnostic: the presentation layer (or the
// seeder's built-ins) registers one RenderFunc per page kind, and the registry
// dispatches on the page's kind when a view is requested. RenderStack renders
// a whole snapshot and marks only the top view interactive — lower pages are
// retained but suppressed.
package registry
