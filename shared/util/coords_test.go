package util

import "testing"

func TestWorldToChunk(t *testing.T) {
	cases := []struct {
		wx, wz         int32
		cx, cz, lx, lz int32
	}{
		{0, 0, 0, 0, 0, 0},
		{15, 15, 0, 0, 15, 15},
		{16, 0, 1, 0, 0, 0},
		{-1, -1, -1, -1, 15, 15},
		{-16, -16, -1, -1, 0, 0},
		{-17, 31, -2, 1, 15, 15},
		{100, -100, 6, -7, 4, 12},
	}
	for _, c := range cases {
		coord, lx, lz := WorldToChunk(c.wx, c.wz)
		if coord.X != c.cx || coord.Z != c.cz || lx != c.lx || lz != c.lz {
			t.Errorf("WorldToChunk(%d,%d) = (%d,%d) local (%d,%d); esperado (%d,%d) local (%d,%d)",
				c.wx, c.wz, coord.X, coord.Z, lx, lz, c.cx, c.cz, c.lx, c.lz)
		}
	}
}

func TestPackedRoundTrip(t *testing.T) {
	coords := []ChunkCoord{
		{0, 0}, {1, -1}, {-1, 1}, {123456, -654321},
		{-2147483648, 2147483647},
	}
	seen := make(map[uint64]bool)
	for _, c := range coords {
		key := c.Packed()
		if seen[key] {
			t.Fatalf("chave duplicada para %v", c)
		}
		seen[key] = true
		if got := UnpackCoord(key); got != c {
			t.Errorf("UnpackCoord(Packed(%v)) = %v", c, got)
		}
	}
}

func TestSpiralOffsets(t *testing.T) {
	offsets := SpiralOffsets(3)

	if offsets[0] != (ChunkCoord{0, 0}) {
		t.Fatalf("primeiro offset deve ser o centro, veio %v", offsets[0])
	}

	prev := int64(-1)
	for _, o := range offsets {
		d := int64(o.X)*int64(o.X) + int64(o.Z)*int64(o.Z)
		if d < prev {
			t.Fatalf("offsets fora de ordem de distância: %v depois de dist²=%d", o, prev)
		}
		if d > 9 {
			t.Fatalf("offset %v fora do raio", o)
		}
		prev = d
	}

	if got := len(SpiralOffsets(1)); got != 5 {
		t.Errorf("raio 1 deve ter 5 offsets, veio %d", got)
	}
}

func TestSpiralOffsetsDeterministic(t *testing.T) {
	a := SpiralOffsets(4)
	b := SpiralOffsets(4)
	if len(a) != len(b) {
		t.Fatalf("tamanhos diferentes: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("offset %d difere: %v vs %v", i, a[i], b[i])
		}
	}
}
