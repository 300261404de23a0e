package buffer

import (
	pub "github.com/jittakal/ringbuffer/pkg/buffer"
)

// backend is the subset of staticRing/dynamicList that Manager dispatches
// to. Both types satisfy it identically; Manager never branches on which
// one is active except inside SetMode and RawRing.
type backend interface {
	pushBack(n int) ([]byte, error)
	pushFront(n int) ([]byte, error)
	mergeBack(n int) ([]byte, error)
	mergeFront(n int) ([]byte, error)
	popFront(n int, freeUnwritable bool) int
	popBack(n int, freeUnwritable bool) int
	front() (pub.Cursor, error)
	back() (pub.Cursor, error)
	empty() bool
	reset()
	liveBytes() int64
	liveCount() int64
}

// Manager is the concrete pkg/buffer.Manager implementation. It owns
// exactly one active backend at a time and enforces the reservation caps
// set by SetLimit uniformly across both. cost_bytes/cost_count are always
// derived from the backend's live blocks rather than tracked
// incrementally, so they can never drift from what is actually held.
type Manager struct {
	backend  backend
	maxBytes int64
	maxCount int64
}

var _ pub.Manager = (*Manager)(nil)

// NewManager returns a Manager in dynamic mode whose list holds at most
// maxBlocks live blocks (1<<20 when maxBlocks <= 0), with no SetLimit byte
// or count cap in place. Call SetMode to switch to static mode.
func NewManager(maxBlocks int) *Manager {
	if maxBlocks <= 0 {
		maxBlocks = 1 << 20
	}
	return &Manager{backend: newDynamicList(maxBlocks)}
}

func (m *Manager) SetMode(ringSize, maxBlocks int) error {
	if ringSize < 0 || maxBlocks <= 0 {
		return pub.ErrInvalidArgument
	}
	if ringSize > 0 {
		m.backend = newStaticRing(ringSize, maxBlocks)
	} else {
		m.backend = newDynamicList(maxBlocks)
	}
	return nil
}

func (m *Manager) SetLimit(maxBytes, maxCount int64) {
	m.maxBytes = maxBytes
	m.maxCount = maxCount
}

func (m *Manager) Limit() pub.Limits {
	return pub.Limits{
		LimitBytes: m.maxBytes,
		LimitCount: m.maxCount,
		CostBytes:  m.backend.liveBytes(),
		CostCount:  m.backend.liveCount(),
	}
}

// withinLimit reports whether growing the current cost by addBytes and
// addCount would still respect the configured caps. A zero cap means
// unlimited on that axis. Lowering a cap below the cost already held is
// deliberately not enforced retroactively here: it only blocks the next
// op that would grow past it.
func (m *Manager) withinLimit(addBytes, addCount int64) bool {
	if m.maxBytes != 0 && m.backend.liveBytes()+addBytes > m.maxBytes {
		return false
	}
	if m.maxCount != 0 && m.backend.liveCount()+addCount > m.maxCount {
		return false
	}
	return true
}

func (m *Manager) PushBack(n int) ([]byte, error) {
	if n <= 0 {
		return nil, &pub.OpError{Op: "PushBack", N: n, Err: pub.ErrInvalidArgument}
	}
	if !m.withinLimit(int64(n), 1) {
		return nil, &pub.OpError{Op: "PushBack", N: n, Err: pub.ErrLimitExceeded}
	}
	b, err := m.backend.pushBack(n)
	if err != nil {
		return nil, &pub.OpError{Op: "PushBack", N: n, Err: err}
	}
	return b, nil
}

func (m *Manager) PushFront(n int) ([]byte, error) {
	if n <= 0 {
		return nil, &pub.OpError{Op: "PushFront", N: n, Err: pub.ErrInvalidArgument}
	}
	if !m.withinLimit(int64(n), 1) {
		return nil, &pub.OpError{Op: "PushFront", N: n, Err: pub.ErrLimitExceeded}
	}
	b, err := m.backend.pushFront(n)
	if err != nil {
		return nil, &pub.OpError{Op: "PushFront", N: n, Err: err}
	}
	return b, nil
}

func (m *Manager) MergeBack(n int) ([]byte, error) {
	if n <= 0 {
		return nil, &pub.OpError{Op: "MergeBack", N: n, Err: pub.ErrInvalidArgument}
	}
	addCount := int64(0)
	if m.backend.empty() {
		addCount = 1
	}
	if !m.withinLimit(int64(n), addCount) {
		return nil, &pub.OpError{Op: "MergeBack", N: n, Err: pub.ErrLimitExceeded}
	}
	b, err := m.backend.mergeBack(n)
	if err != nil {
		return nil, &pub.OpError{Op: "MergeBack", N: n, Err: err}
	}
	return b, nil
}

func (m *Manager) MergeFront(n int) ([]byte, error) {
	if n <= 0 {
		return nil, &pub.OpError{Op: "MergeFront", N: n, Err: pub.ErrInvalidArgument}
	}
	addCount := int64(0)
	if m.backend.empty() {
		addCount = 1
	}
	if !m.withinLimit(int64(n), addCount) {
		return nil, &pub.OpError{Op: "MergeFront", N: n, Err: pub.ErrLimitExceeded}
	}
	b, err := m.backend.mergeFront(n)
	if err != nil {
		return nil, &pub.OpError{Op: "MergeFront", N: n, Err: err}
	}
	return b, nil
}

func (m *Manager) PopFront(n int, freeUnwritable bool) (int, error) {
	if n < 0 {
		return 0, &pub.OpError{Op: "PopFront", N: n, Err: pub.ErrInvalidArgument}
	}
	if m.backend.empty() {
		return 0, &pub.OpError{Op: "PopFront", N: n, Err: pub.ErrNotFound}
	}
	return m.backend.popFront(n, freeUnwritable), nil
}

func (m *Manager) PopBack(n int, freeUnwritable bool) (int, error) {
	if n < 0 {
		return 0, &pub.OpError{Op: "PopBack", N: n, Err: pub.ErrInvalidArgument}
	}
	if m.backend.empty() {
		return 0, &pub.OpError{Op: "PopBack", N: n, Err: pub.ErrNotFound}
	}
	return m.backend.popBack(n, freeUnwritable), nil
}

func (m *Manager) Front() (pub.Cursor, error) { return m.backend.front() }

func (m *Manager) Back() (pub.Cursor, error) { return m.backend.back() }

func (m *Manager) Empty() bool { return m.backend.empty() }

func (m *Manager) Reset() { m.backend.reset() }

// RawRing exposes the static ring's independent header walk, used to
// verify the in-band VarInt framing stays consistent with the live-block
// index. It returns ErrNotFound when the manager is in dynamic mode.
func (m *Manager) RawRing() ([]int, error) {
	r, ok := m.backend.(*staticRing)
	if !ok {
		return nil, pub.ErrNotFound
	}
	return r.walk()
}
