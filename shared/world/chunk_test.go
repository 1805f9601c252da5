package world

import (
	"testing"

	"VoxelVision/shared/util"
)

func TestBlockIndexLayout(t *testing.T) {
	// Fatia horizontal contígua: avançar 1 em X move 1 posição, 1 em Z
	// move 16, 1 em Y move 256.
	if blockIndex(1, 0, 0)-blockIndex(0, 0, 0) != 1 {
		t.Fatal("stride de X incorreto")
	}
	if blockIndex(0, 0, 1)-blockIndex(0, 0, 0) != ChunkSize {
		t.Fatal("stride de Z incorreto")
	}
	if blockIndex(0, 1, 0)-blockIndex(0, 0, 0) != ChunkSize*ChunkSize {
		t.Fatal("stride de Y incorreto")
	}
	if got := blockIndex(15, 255, 15); got != chunkVolume-1 {
		t.Fatalf("último índice = %d, esperado %d", got, chunkVolume-1)
	}
}

func TestSetGetBlock(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))

	c.SetBlock(3, 100, 7, BlockStone)
	if got := c.Block(3, 100, 7); got != BlockStone {
		t.Fatalf("Block = %v, esperado pedra", got)
	}
	if got := c.Block(3, 101, 7); got != BlockAir {
		t.Fatalf("voxel vizinho deveria continuar ar, veio %v", got)
	}

	// Fora dos limites: escrita é no-op, leitura é ar.
	c.SetBlock(-1, 100, 7, BlockStone)
	c.SetBlock(3, 256, 7, BlockStone)
	c.SetBlock(3, 100, 16, BlockStone)
	if c.Block(-1, 100, 7) != BlockAir || c.Block(3, 256, 7) != BlockAir {
		t.Fatal("leitura fora dos limites deveria ser ar")
	}
}

func TestSkyLightNibblePacking(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))

	// Voxels de índice par e ímpar dividem o mesmo byte; escrever um não
	// pode corromper o outro.
	c.setSkyLight(0, 0, 0, 15)
	c.setSkyLight(1, 0, 0, 7)
	if c.SkyLight(0, 0, 0) != 15 || c.SkyLight(1, 0, 0) != 7 {
		t.Fatalf("nibbles corrompidos: %d, %d", c.SkyLight(0, 0, 0), c.SkyLight(1, 0, 0))
	}
	c.setSkyLight(0, 0, 0, 3)
	if c.SkyLight(0, 0, 0) != 3 || c.SkyLight(1, 0, 0) != 7 {
		t.Fatal("reescrita do nibble par afetou o ímpar")
	}

	// Convenções de borda.
	if c.SkyLight(0, WorldHeight, 0) != 15 {
		t.Fatal("acima do mundo deve ser 15")
	}
	if c.SkyLight(0, -1, 0) != 0 {
		t.Fatal("abaixo do mundo deve ser 0")
	}
}

func TestRecomputeHeightMap(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	c.SetBlock(2, 60, 2, BlockStone)
	c.SetBlock(2, 80, 2, BlockOakLeaves) // semi-opaco também conta
	c.RecomputeHeightMap()

	if got := c.HeightAt(2, 2); got != 80 {
		t.Fatalf("HeightAt = %d, esperado 80", got)
	}
	if got := c.HeightAt(5, 5); got != -1 {
		t.Fatalf("coluna vazia deveria ser -1, veio %d", got)
	}
}

func TestChunkStateString(t *testing.T) {
	states := []ChunkState{StateEmpty, StateGenerating, StateGenerated,
		StateLighting, StateLighted, StateMeshing, StateReady}
	seen := make(map[string]bool)
	for _, s := range states {
		name := s.String()
		if name == "UNKNOWN" || seen[name] {
			t.Fatalf("String() inválida ou duplicada para %d: %q", s, name)
		}
		seen[name] = true
	}
	// A ordem dos valores expressa progressão no pipeline.
	if !(StateEmpty < StateGenerated && StateGenerated < StateLighted && StateLighted < StateReady) {
		t.Fatal("ordem dos estados quebrada")
	}
}
