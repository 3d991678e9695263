package blockstream

import "testing"

func TestGrow(t *testing.T) {
	buf := grow(nil, 10)
	if len(buf) != 10 || cap(buf) != 10 {
		t.Fatalf("len=%d cap=%d", len(buf), cap(buf))
	}
	// smaller request reuses the array
	small := grow(buf, 4)
	if len(small) != 4 || &small[0] != &buf[0] {
		t.Fatal("grow reallocated for a smaller size")
	}
	// 1.5x wins over a slightly larger request
	buf = grow(buf, 11)
	if len(buf) != 11 || cap(buf) != 15 {
		t.Fatalf("len=%d cap=%d, want 11/15", len(buf), cap(buf))
	}
	// a large request wins over 1.5x
	buf = grow(buf, 100)
	if len(buf) != 100 || cap(buf) != 100 {
		t.Fatalf("len=%d cap=%d, want 100/100", len(buf), cap(buf))
	}
	// capacity survives a shrink and a regrow within it
	buf = grow(grow(buf, 1), 100)
	if cap(buf) != 100 {
		t.Fatalf("cap=%d after shrink and regrow", cap(buf))
	}
}
