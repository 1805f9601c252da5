package worldgen

import (
	"VoxelVision/shared/util"
	"VoxelVision/shared/world"
)

// Árvores: a decisão de plantar é um hash determinístico da coluna do
// mundo, então chunks vizinhos chegam à mesma conclusão sobre a mesma
// árvore. O chunk varre suas colunas com um halo de 2 para que copas
// enraizadas no vizinho entrem no nosso volume; tudo que cai fora é
// recortado pelo no-op de SetBlock.

const (
	treeHalo      = 2
	trunkMin      = 4
	canopyLeafTop = 2
)

func (g *Generator) plantTrees(c *world.Chunk) {
	baseX := c.Coord.X * world.ChunkSize
	baseZ := c.Coord.Z * world.ChunkSize

	for lz := int32(-treeHalo); lz < world.ChunkSize+treeHalo; lz++ {
		for lx := int32(-treeHalo); lx < world.ChunkSize+treeHalo; lx++ {
			wx := baseX + lx
			wz := baseZ + lz
			if !g.treeAt(wx, wz) {
				continue
			}
			h := g.SurfaceHeight(wx, wz)
			hash := columnHash(g.seed, wx, wz, saltTrees)
			trunkH := int32(trunkMin + (hash>>12)%3)
			g.buildOak(c, lx, lz, h, trunkH)
		}
	}
}

// treeAt decide se uma árvore nasce na coluna dada. Não depende do conteúdo
// de nenhum chunk, só da seed e da coluna.
func (g *Generator) treeAt(wx, wz int32) bool {
	if inSpawnArea(wx, wz) {
		return false
	}
	h := g.SurfaceHeight(wx, wz)
	if h <= SeaLevel || h >= snowLine {
		return false
	}
	b := g.biome01(wx, wz)
	if b < 0.22 {
		// Deserto: sem árvores.
		return false
	}

	// Faixa de bioma intermediária vira floresta densa.
	threshold := uint64(10)
	if b >= 0.35 && b <= 0.60 {
		threshold = 80
	}
	return columnHash(g.seed, wx, wz, saltTrees)%1024 < threshold
}

// buildOak constrói o carvalho com raiz na coluna local (lx, lz), que pode
// estar fora do chunk (halo). Tronco só substitui ar ou folhas; folhas só
// substituem ar. Nenhuma parte da árvore sobrescreve água, bedrock ou
// terreno sólido.
func (g *Generator) buildOak(c *world.Chunk, lx, lz, surfaceY, trunkH int32) {
	top := surfaceY + trunkH

	// Copa: duas camadas largas envolvendo o topo do tronco, uma camada
	// estreita e uma tampa em cruz.
	for dy := int32(-1); dy <= canopyLeafTop; dy++ {
		y := top + dy
		radius := int32(2)
		if dy >= 1 {
			radius = 1
		}
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				// Cantos cortados nas camadas largas; tampa em cruz.
				if radius == 2 && util.Abs(dx) == 2 && util.Abs(dz) == 2 {
					continue
				}
				if dy == canopyLeafTop && dx != 0 && dz != 0 {
					continue
				}
				setIfAir(c, lx+dx, y, lz+dz, world.BlockOakLeaves)
			}
		}
	}

	for dy := int32(1); dy <= trunkH; dy++ {
		setIfSoft(c, lx, surfaceY+dy, lz, world.BlockOakLog)
	}
}

func setIfAir(c *world.Chunk, x, y, z int32, id world.BlockID) {
	if c.Block(x, y, z) == world.BlockAir {
		c.SetBlock(x, y, z, id)
	}
}

func setIfSoft(c *world.Chunk, x, y, z int32, id world.BlockID) {
	cur := c.Block(x, y, z)
	if cur == world.BlockAir || cur == world.BlockOakLeaves {
		c.SetBlock(x, y, z, id)
	}
}
