// Package buffer implements the two backends behind pkg/buffer.Manager: a
// static circular ring (ring.go) and a dynamic linked list of heap blocks
// (list.go), sharing the block bookkeeping in block.go and dispatched by
// the façade in manager.go.
package buffer
