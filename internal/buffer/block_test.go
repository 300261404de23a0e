package buffer

import "testing"

func TestBlockPopAdvancesReadOff(t *testing.T) {
	b := &block{payload: make([]byte, 8), used: 8}
	if n := b.pop(3); n != 3 {
		t.Fatalf("pop(3) = %d, want 3", n)
	}
	if b.readOff != 3 {
		t.Fatalf("readOff = %d, want 3", b.readOff)
	}
	if n := b.pop(10); n != 5 {
		t.Fatalf("pop(10) on 5 remaining = %d, want 5", n)
	}
	if !b.drained() {
		t.Fatalf("expected drained after consuming all bytes")
	}
}

func TestBlockRetractShrinksUsed(t *testing.T) {
	b := &block{payload: make([]byte, 8), used: 8}
	if n := b.retract(3); n != 3 {
		t.Fatalf("retract(3) = %d, want 3", n)
	}
	if b.used != 5 {
		t.Fatalf("used = %d, want 5", b.used)
	}
	if !b.hasSlack() {
		t.Fatalf("expected hasSlack after retract below capacity")
	}
}

func TestBlockInvariantReadOffLEUsedLECapacity(t *testing.T) {
	b := &block{payload: make([]byte, 10), used: 6}
	b.pop(4)
	if !(0 <= b.readOff && b.readOff <= b.used && b.used <= b.capacity()) {
		t.Fatalf("invariant violated: readOff=%d used=%d capacity=%d", b.readOff, b.used, b.capacity())
	}
}

// TestBlockInstanceSize checks both backends' interpretation: a static
// block (non-zero footprint) reports its full header+padding+payload
// footprint, while a dynamic block (no in-band header) reports just its
// capacity.
func TestBlockInstanceSize(t *testing.T) {
	static := &block{payload: make([]byte, 6), used: 6, footprint: footprintFor(6)}
	if got, want := static.instanceSize(), footprintFor(6); got != want {
		t.Fatalf("static instanceSize() = %d, want %d", got, want)
	}

	dynamic := &block{payload: make([]byte, 6), used: 6}
	if got, want := dynamic.instanceSize(), 6; got != want {
		t.Fatalf("dynamic instanceSize() = %d, want %d", got, want)
	}
}

func TestPaddingFor(t *testing.T) {
	cases := map[int]int{0: 0, 1: 7, 7: 1, 8: 0, 9: 7, 15: 1, 16: 0}
	for off, want := range cases {
		if got := paddingFor(off); got != want {
			t.Errorf("paddingFor(%d) = %d, want %d", off, got, want)
		}
	}
}

// TestLayoutFromFootprintIsPositionIndependent checks the property that
// makes exact-end anchoring work: footprintFor never depends on where a
// block lands, only on its payload size.
func TestLayoutFromFootprintIsPositionIndependent(t *testing.T) {
	for _, off := range []int{0, 1, 7, 8, 100} {
		_, footprint := layoutFrom(off, 20)
		if want := footprintFor(20); footprint != want {
			t.Fatalf("layoutFrom(%d, 20) footprint = %d, want %d", off, footprint, want)
		}
	}
}

func TestLayoutFromAlignsPayload(t *testing.T) {
	for _, off := range []int{0, 1, 7, 8, 15, 100} {
		payloadOff, _ := layoutFrom(off, 20)
		if payloadOff%align != 0 {
			t.Fatalf("layoutFrom(%d, 20) payloadOff = %d, not aligned to %d", off, payloadOff, align)
		}
	}
}
