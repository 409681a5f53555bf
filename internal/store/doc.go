// Package store persists experiment artifacts crash-safely. Every write
// lands in a uniquely named temporary file in the destination directory and
// is renamed over the final path only once fully written, so a reader (or a
// process that crashes mid-write) observes the old payload, the new payload,
// or nothing — never a torn file.
//
// Three payload kinds are supported, each with a reader matching its
// writer's exact format: gob-encoded object graphs (a private binary format
// understood only by this store), pretty-printed JSON with lexically sorted
// keys for reproducible diffs, and raw byte blobs such as images.
//
// Concurrent writers to different paths need no coordination. Concurrent
// writers to the same path are last-writer-wins: the last rename to complete
// determines what readers see, and the unique temp names keep in-flight
// writers from clobbering each other's scratch files.
package store
