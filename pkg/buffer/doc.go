// Package buffer defines the public contract of the dual-mode byte-buffer
// manager: a single-threaded, synchronous send/receive staging buffer that
// is backed by either a fixed-size circular region (static mode) or a
// linked sequence of heap blocks (dynamic mode), without changing the
// operations callers see.
//
// The implementation lives in internal/buffer; this package only carries
// the interface, the error taxonomy, and the small value types operations
// return.
package buffer
