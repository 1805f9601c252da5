package world

import (
	"testing"

	"VoxelVision/shared/util"
)

// fillLayer preenche uma camada horizontal inteira.
func fillLayer(c *Chunk, y int32, id BlockID) {
	for z := int32(0); z < ChunkSize; z++ {
		for x := int32(0); x < ChunkSize; x++ {
			c.SetBlock(x, y, z, id)
		}
	}
}

func TestSkyLightOpenColumn(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	fillLayer(c, 50, BlockStone)
	PropagateSkyLight(c)

	// Tudo acima da superfície recebe claridade total.
	for _, y := range []int32{51, 100, 200, 255} {
		if got := c.SkyLight(8, y, 8); got != 15 {
			t.Fatalf("luz em y=%d = %d, esperado 15", y, got)
		}
	}
	// A própria pedra não recebe luz.
	if got := c.SkyLight(8, 50, 8); got != 0 {
		t.Fatalf("pedra com luz %d, esperado 0", got)
	}
}

func TestSkyLightEnclosedShaft(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	// Bloco sólido de pedra de y=1 a y=70, com um poço vertical
	// completamente fechado no meio.
	for y := int32(1); y <= 70; y++ {
		fillLayer(c, y, BlockStone)
	}
	for y := int32(10); y <= 60; y++ {
		c.SetBlock(8, y, 8, BlockAir)
	}
	PropagateSkyLight(c)

	for y := int32(10); y <= 60; y++ {
		if got := c.SkyLight(8, y, 8); got != 0 {
			t.Fatalf("poço fechado com luz %d em y=%d, esperado 0", got, y)
		}
	}
}

func TestSkyLightSemiOpaqueAttenuation(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	// Todas as colunas tampadas com pedra em y=105, exceto a coluna de
	// teste, tampada com vidro. Assim a única luz abaixo do teto entra
	// pelo vidro.
	fillLayer(c, 100, BlockStone)
	fillLayer(c, 105, BlockStone)
	c.SetBlock(5, 105, 5, BlockGlass)
	PropagateSkyLight(c)

	// 15 de cima, menos 2 ao atravessar o vidro.
	if got := c.SkyLight(5, 105, 5); got != 13 {
		t.Fatalf("luz no vidro = %d, esperado 13", got)
	}
	// Entre o teto e o piso, a luz segue perdendo 1 por passo de ar.
	if got := c.SkyLight(5, 104, 5); got != 12 {
		t.Fatalf("luz sob o vidro = %d, esperado 12", got)
	}
	if got := c.SkyLight(5, 103, 5); got != 11 {
		t.Fatalf("luz dois abaixo do vidro = %d, esperado 11", got)
	}
	if got := c.SkyLight(6, 103, 5); got != 10 {
		t.Fatalf("luz ao lado = %d, esperado 10", got)
	}
}

func TestSkyLightAdjacencyInvariant(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	// Terreno irregular determinístico sem gerador: colunas com alturas
	// variadas e uma caverna aberta de lado.
	for z := int32(0); z < ChunkSize; z++ {
		for x := int32(0); x < ChunkSize; x++ {
			h := 40 + (x*7+z*13)%25
			for y := int32(1); y <= h; y++ {
				c.SetBlock(x, y, z, BlockStone)
			}
		}
	}
	for x := int32(2); x < 14; x++ {
		c.SetBlock(x, 45, 7, BlockAir)
		c.SetBlock(x, 46, 7, BlockAir)
	}
	PropagateSkyLight(c)

	// Dois voxels de ar adjacentes nunca diferem mais que 1 nível.
	dirs := [6][3]int32{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for y := int32(1); y < 80; y++ {
		for z := int32(0); z < ChunkSize; z++ {
			for x := int32(0); x < ChunkSize; x++ {
				if c.Block(x, y, z) != BlockAir {
					continue
				}
				l := int(c.SkyLight(x, y, z))
				for _, d := range dirs {
					nx, ny, nz := x+d[0], y+d[1], z+d[2]
					if !InBounds(nx, ny, nz) || c.Block(nx, ny, nz) != BlockAir {
						continue
					}
					nl := int(c.SkyLight(nx, ny, nz))
					diff := l - nl
					if diff < -1 || diff > 1 {
						t.Fatalf("delta de luz %d entre (%d,%d,%d)=%d e (%d,%d,%d)=%d",
							diff, x, y, z, l, nx, ny, nz, nl)
					}
				}
			}
		}
	}
}

func TestPropagateIsIdempotent(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	fillLayer(c, 30, BlockStone)
	c.SetBlock(4, 30, 4, BlockAir)
	PropagateSkyLight(c)
	snapshot := c.Clone()
	PropagateSkyLight(c)

	for y := int32(0); y < WorldHeight; y++ {
		for z := int32(0); z < ChunkSize; z++ {
			for x := int32(0); x < ChunkSize; x++ {
				if c.SkyLight(x, y, z) != snapshot.SkyLight(x, y, z) {
					t.Fatalf("recomputação mudou a luz em (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}
