// Package viewmodel is the composition and lifecycle engine of the renderer.
//
// A view-model is a Go type embedding Node and implementing Render. Nodes form
// a tree: each node owns its children exclusively and exactly one surface
// element once mounted. Children keep a non-owning pointer to their parent for
// upward lookups only.
//
// Lifecycle:
//
//	Constructed -> Waiting -> Rendering -> Active -> TornDown
//
// A node waits for the process-wide ready signal before its first render. A
// node added after the signal fired renders synchronously inside Add, once it
// is already part of its parent's children.
//
// Every method must be called on the UI loop.
package viewmodel
