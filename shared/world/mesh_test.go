package world

import (
	"reflect"
	"testing"

	"VoxelVision/shared/util"
)

func quadCount(g *Geometry) int {
	return len(g.Indices) / 6
}

func TestSingleCubeEmitsSixFaces(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	c.SetBlock(8, 8, 8, BlockStone)
	PropagateSkyLight(c)

	md := BuildMesh(c, [4]*Chunk{})
	if got := quadCount(&md.Opaque); got != 6 {
		t.Fatalf("cubo isolado gerou %d quads, esperado 6", got)
	}
	if len(md.Opaque.Vertices) != 6*4*3 {
		t.Fatalf("vertices = %d floats, esperado %d", len(md.Opaque.Vertices), 6*4*3)
	}
	if len(md.Transparent.Indices) != 0 {
		t.Fatal("pedra não deveria gerar geometria transparente")
	}
	// Normais, UVs e cores acompanham a contagem de vértices.
	verts := len(md.Opaque.Vertices) / 3
	if len(md.Opaque.Normals) != verts*3 || len(md.Opaque.UVs) != verts*2 || len(md.Opaque.Colors) != verts*4 {
		t.Fatal("buffers com tamanhos inconsistentes")
	}
}

func TestBuriedVoxelIsCulled(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	for y := int32(7); y <= 9; y++ {
		for z := int32(7); z <= 9; z++ {
			for x := int32(7); x <= 9; x++ {
				c.SetBlock(x, y, z, BlockStone)
			}
		}
	}
	PropagateSkyLight(c)

	md := BuildMesh(c, [4]*Chunk{})
	// Um cubo 3x3x3 expõe só a casca: 9 faces por lado.
	if got := quadCount(&md.Opaque); got != 54 {
		t.Fatalf("casca do cubo 3x3x3 gerou %d quads, esperado 54", got)
	}
}

func TestAdjacentSameTypeSharesNoFace(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	c.SetBlock(5, 8, 5, BlockStone)
	c.SetBlock(6, 8, 5, BlockStone)
	PropagateSkyLight(c)

	md := BuildMesh(c, [4]*Chunk{})
	if got := quadCount(&md.Opaque); got != 10 {
		t.Fatalf("par de cubos gerou %d quads, esperado 10", got)
	}
}

func TestBorderCullingUsesNeighbor(t *testing.T) {
	a := NewChunk(util.NewChunkCoord(0, 0))
	a.SetBlock(15, 8, 8, BlockStone)
	PropagateSkyLight(a)

	b := NewChunk(util.NewChunkCoord(1, 0))
	b.SetBlock(0, 8, 8, BlockStone)
	PropagateSkyLight(b)

	// Sem vizinho, a face leste aparece.
	md := BuildMesh(a, [4]*Chunk{})
	if got := quadCount(&md.Opaque); got != 6 {
		t.Fatalf("sem vizinho: %d quads, esperado 6", got)
	}

	// Com o vizinho presente, a face na borda é ocultada.
	var neighbors [4]*Chunk
	neighbors[NeighborEast] = b
	md = BuildMesh(a, neighbors)
	if got := quadCount(&md.Opaque); got != 5 {
		t.Fatalf("com vizinho: %d quads, esperado 5", got)
	}
}

func TestWaterSurfaceIsLowered(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	c.SetBlock(4, 59, 4, BlockStone)
	c.SetBlock(4, 60, 4, BlockWater)
	PropagateSkyLight(c)

	md := BuildMesh(c, [4]*Chunk{})
	if len(md.Transparent.Vertices) == 0 {
		t.Fatal("água deveria gerar geometria transparente")
	}
	maxY := float32(0)
	for i := 1; i < len(md.Transparent.Vertices); i += 3 {
		if v := md.Transparent.Vertices[i]; v > maxY {
			maxY = v
		}
	}
	want := float32(60) + waterSurface
	if maxY != want {
		t.Fatalf("topo da água em %v, esperado %v", maxY, want)
	}
}

func TestStackedWaterHasNoInternalFace(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	c.SetBlock(4, 60, 4, BlockWater)
	c.SetBlock(4, 61, 4, BlockWater)
	PropagateSkyLight(c)

	md := BuildMesh(c, [4]*Chunk{})
	// 4+4 laterais, topo de cima, fundo de baixo.
	if got := quadCount(&md.Transparent); got != 10 {
		t.Fatalf("coluna de água gerou %d quads, esperado 10", got)
	}
}

func TestBuildMeshDeterministic(t *testing.T) {
	build := func() *MeshData {
		c := NewChunk(util.NewChunkCoord(2, -3))
		for z := int32(0); z < ChunkSize; z++ {
			for x := int32(0); x < ChunkSize; x++ {
				h := 40 + (x*7+z*13)%25
				for y := int32(1); y <= h; y++ {
					c.SetBlock(x, y, z, BlockStone)
				}
				c.SetBlock(x, h, z, BlockGrass)
				if h < 50 {
					for y := h + 1; y <= 50; y++ {
						c.SetBlock(x, y, z, BlockWater)
					}
				}
			}
		}
		PropagateSkyLight(c)
		return BuildMesh(c, [4]*Chunk{})
	}

	first := build()
	second := build()
	if !reflect.DeepEqual(first, second) {
		t.Fatal("duas construções do mesmo chunk produziram buffers diferentes")
	}
}

func TestBuildMeshDoesNotMutateChunk(t *testing.T) {
	c := NewChunk(util.NewChunkCoord(0, 0))
	c.SetBlock(8, 8, 8, BlockGrass)
	PropagateSkyLight(c)
	snapshot := c.Clone()

	BuildMesh(c, [4]*Chunk{})

	for y := int32(0); y < 16; y++ {
		for z := int32(0); z < ChunkSize; z++ {
			for x := int32(0); x < ChunkSize; x++ {
				if c.Block(x, y, z) != snapshot.Block(x, y, z) ||
					c.SkyLight(x, y, z) != snapshot.SkyLight(x, y, z) {
					t.Fatalf("BuildMesh mutou o chunk em (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}
