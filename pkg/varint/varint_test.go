package varint

import (
	"bytes"
	"fmt"
	"math"
	"testing"
)

func TestLenAndRoundTrip(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 1},
		{1, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{math.MaxUint64, 10},
	}
	for _, c := range cases {
		if got := Len(c.v); got != c.want {
			t.Errorf("Len(%d) = %d, want %d", c.v, got, c.want)
		}
		buf := make([]byte, MaxLen)
		n := Encode(c.v, buf)
		if n != c.want {
			t.Fatalf("Encode(%d) wrote %d bytes, want %d", c.v, n, c.want)
		}
		got, consumed := Decode(buf[:n])
		if consumed != c.want || got != c.v {
			t.Errorf("Decode(Encode(%d)) = (%d, %d), want (%d, %d)", c.v, got, consumed, c.v, c.want)
		}
	}
}

func TestEncodeMinimality(t *testing.T) {
	buf := make([]byte, MaxLen)
	for _, v := range []uint64{0, 1, 300, 1 << 20} {
		n := Encode(v, buf)
		if v != 0 && buf[0] == 0 {
			t.Errorf("Encode(%d): leading byte is zero, not minimal", v)
		}
		_ = n
	}
}

func TestEncodeBufferTooSmall(t *testing.T) {
	buf := make([]byte, 1)
	if n := Encode(128, buf); n != 0 {
		t.Errorf("Encode into undersized buffer returned %d, want 0", n)
	}
}

func TestEncodeBigEndianGroupOrder(t *testing.T) {
	// 128 = 0b0000001_0000000 in two 7-bit groups (1, 0); MSB group first
	// means the first emitted byte carries the high group.
	buf := make([]byte, MaxLen)
	n := Encode(128, buf)
	want := []byte{0x81, 0x00}
	if n != 2 || !bytes.Equal(buf[:n], want) {
		t.Errorf("Encode(128) = %x, want %x", buf[:n], want)
	}
}

func TestDecodeTruncated(t *testing.T) {
	// Continuation bits set on every byte, no terminator.
	v, consumed := Decode([]byte{0x81, 0x82})
	if consumed != 0 || v != 0 {
		t.Errorf("Decode(truncated) = (%d, %d), want (0, 0)", v, consumed)
	}
}

func TestDecodeEmpty(t *testing.T) {
	if _, consumed := Decode(nil); consumed != 0 {
		t.Errorf("Decode(nil) consumed = %d, want 0", consumed)
	}
}

func TestDecodeOverflow(t *testing.T) {
	// 9 bytes of 0xFF (63 bits, all continuation) followed by a 10th byte:
	// groups are most-significant first, so a 10-byte value may carry only
	// one bit in its first byte, and 0xFF's seven bits overflow 64 bits.
	buf := make([]byte, 10)
	for i := 0; i < 9; i++ {
		buf[i] = 0xFF
	}
	buf[9] = 0x02
	if _, consumed := Decode(buf); consumed != 0 {
		t.Errorf("Decode(overflowing value) consumed = %d, want 0", consumed)
	}
}

func TestDecodeMaxUint64(t *testing.T) {
	buf := make([]byte, MaxLen)
	n := Encode(math.MaxUint64, buf)
	v, consumed := Decode(buf[:n])
	if consumed != n || v != math.MaxUint64 {
		t.Errorf("Decode(Encode(MaxUint64)) = (%d, %d), want (%d, %d)", v, consumed, uint64(math.MaxUint64), n)
	}
}

func ExampleEncode() {
	buf := make([]byte, MaxLen)
	n := Encode(300, buf)
	v, consumed := Decode(buf[:n])
	fmt.Println(v, consumed)
	// Output: 300 2
}
