package buffer

import "github.com/jittakal/ringbuffer/pkg/varint"

// align is the payload alignment boundary: pointer size on every platform
// this targets.
const align = 8

// block is the bookkeeping shared by both backends. payload is a slice of
// exactly capacity bytes: either a window into the ring's backing array
// (static) or an owned allocation (dynamic). used and readOff delimit the
// currently readable window [readOff, used); bytes beyond used within
// capacity are reserved but unwritten.
//
// headerOff, payloadOff and footprint are meaningful only for blocks
// owned by a static ring; the dynamic list leaves them at zero.
type block struct {
	payload    []byte
	used       int
	readOff    int
	headerOff  int
	payloadOff int
	footprint  int
}

func (b *block) capacity() int { return len(b.payload) }

func (b *block) data() []byte { return b.payload[b.readOff:b.used] }

func (b *block) rawData() []byte { return b.payload }

func (b *block) size() int { return b.used - b.readOff }

func (b *block) rawSize() int { return len(b.payload) }

// instanceSize returns the bytes this block occupies in its backing
// store, including header and alignment padding for a static block. A
// dynamic block carries no in-band header, so its instance size is just
// its capacity.
func (b *block) instanceSize() int {
	if b.footprint > 0 {
		return b.footprint
	}
	return len(b.payload)
}

// pop advances readOff by min(n, used-readOff) and returns how much it
// actually advanced. It never releases the block; that is the caller's
// decision.
func (b *block) pop(n int) int {
	avail := b.used - b.readOff
	if n > avail {
		n = avail
	}
	b.readOff += n
	return n
}

// retract shrinks used by min(n, used-readOff), the pop_back counterpart
// of pop: it closes the readable window from the write end instead of the
// read end.
func (b *block) retract(n int) int {
	avail := b.used - b.readOff
	if n > avail {
		n = avail
	}
	b.used -= n
	return n
}

// drained reports whether this block's readable window is closed.
func (b *block) drained() bool { return b.readOff == b.used }

// hasSlack reports whether this block has reserved-but-unfilled capacity
// beyond its readable window, i.e. whether releasing it on a drained
// window is a free_unwritable decision rather than automatic.
func (b *block) hasSlack() bool { return b.used < b.capacity() }

// paddingFor returns the padding bytes needed after a header ending at
// byte offset off so the payload that follows begins on an align boundary.
func paddingFor(off int) int {
	rem := off % align
	if rem == 0 {
		return 0
	}
	return align - rem
}

// footprintFor returns the bytes a block of n payload bytes reserves in a
// static ring: the VarInt capacity prefix, the worst-case alignment
// padding, and the payload itself. Using the worst case unconditionally
// (rather than the minimal padding a given start offset would need) means
// a block's footprint never depends on where it lands, so operations that
// must land a block with its footprint ending at a specific pre-existing
// offset (push_front, merge_front) can always do so: any padding short of
// the worst case becomes trailing dead bytes within that same footprint.
func footprintFor(n int) int {
	return varint.Len(uint64(n)) + (align - 1) + n
}

// layoutFrom places a block of payload size n with its footprint starting
// at off: it writes nothing, only computes the header offset (== off),
// the aligned payload offset, and the full worst-case footprint length.
func layoutFrom(off, n int) (payloadOff, footprint int) {
	headerLen := varint.Len(uint64(n))
	pad := paddingFor(off + headerLen)
	payloadOff = off + headerLen + pad
	footprint = footprintFor(n)
	return payloadOff, footprint
}
