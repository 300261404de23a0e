package buffer

// Cursor is the readable/writable view into an end block, as returned by
// Front and Back. Data holds the bytes currently readable from that end;
// WritableTail is how many more bytes could still be written into the
// block before it runs out of reserved capacity (capacity - used).
// InstanceSize is the bytes that block occupies in its backing store,
// including header and alignment padding in static mode.
type Cursor struct {
	Data         []byte
	WritableTail int
	InstanceSize int
}

// Limits is a point-in-time snapshot of the manager's configured caps and
// current reservation cost. A zero LimitBytes or LimitCount means
// unlimited on that axis.
type Limits struct {
	LimitBytes int64
	LimitCount int64
	CostBytes  int64
	CostCount  int64
}

// Manager is the façade every caller programs against, regardless of
// whether it is backed by a static ring or a dynamic list.
//
// It is not safe for concurrent use: every operation must be serialized by
// the caller. Pointers returned by PushBack/PushFront/MergeBack/MergeFront
// remain valid until a pop on the same end removes that block, a merge on
// that same end moves its bytes, or Reset/SetMode is called. A merge moves
// the block's bytes in both modes: in dynamic mode every merge reallocates
// the end block; in static mode MergeFront always shifts the block's
// unread bytes within the ring, and MergeBack shifts them whenever the
// longer capacity prefix pushes the aligned payload start forward.
type Manager interface {
	// SetMode reconfigures the backend. ringSize > 0 selects static mode
	// with a ring of that many bytes and up to maxBlocks live blocks;
	// ringSize == 0 selects dynamic mode (maxBlocks still bounds the live
	// block count). Any live blocks are dropped and cost_* reset to zero.
	SetMode(ringSize, maxBlocks int) error

	// SetLimit updates the reservation caps. 0 means unlimited on that
	// axis. Lowering a cap below the current cost does not drop existing
	// blocks; it only blocks further growth until cost falls back under
	// the new cap.
	SetLimit(maxBytes, maxCount int64)

	// Limit returns a snapshot of the current caps and costs.
	Limit() Limits

	// PushBack reserves a new block of n payload bytes at the back end
	// and returns a writable view of it.
	PushBack(n int) ([]byte, error)
	// PushFront is the symmetric operation at the front end.
	PushFront(n int) ([]byte, error)

	// MergeBack extends the current back block's capacity by n bytes if
	// the backend can do so in place, returning a writable view of only
	// the newly added region; otherwise it behaves like PushBack.
	MergeBack(n int) ([]byte, error)
	// MergeFront is the symmetric operation at the front end.
	MergeFront(n int) ([]byte, error)

	// PopFront drops up to n bytes from the front end's readable window,
	// releasing blocks whose window closes. If freeUnwritable is true, a
	// block whose window closes with used < capacity (reserved but never
	// filled) is also released; otherwise popping stops there. Returns
	// the number of bytes actually dropped.
	PopFront(n int, freeUnwritable bool) (int, error)
	// PopBack is the symmetric operation at the back end.
	PopBack(n int, freeUnwritable bool) (int, error)

	// Front returns the current front block's readable window.
	Front() (Cursor, error)
	// Back returns the current back block's readable window.
	Back() (Cursor, error)

	// Empty reports whether the manager holds no live blocks.
	Empty() bool
	// Reset drops all live blocks. In static mode the ring region is kept
	// and head/tail reset to zero; it is not released.
	Reset()
}
