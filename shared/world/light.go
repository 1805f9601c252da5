package world

// Propagação de luz do céu por BFS em duas fases, sempre por recomputação
// completa do chunk: edição de um voxel marca LightDirty e o pipeline refaz
// tudo. Retração incremental de luz não existe de propósito; o custo de
// recomputar um chunk inteiro é baixo e o resultado é sempre consistente.

type lightNode struct {
	x, y, z int32
	level   uint8
}

// PropagateSkyLight recalcula o mapa de altura e a luz do céu do chunk.
//
// Fase 1 (semeadura): todo voxel vazio estritamente acima da altura da
// coluna recebe nível 15 e entra na fila.
//
// Fase 2 (BFS): cada nó espalha para os 6 vizinhos dentro do chunk. Blocos
// opacos param a luz; semi-opacos custam 2 níveis; vazio custa 1. Um voxel
// só é atualizado se o novo nível for maior que o armazenado, o que garante
// término e níveis finais em [0,15].
//
// A propagação não cruza bordas de chunk. Acima de y=255 o mundo é
// considerado totalmente iluminado.
func PropagateSkyLight(c *Chunk) {
	c.RecomputeHeightMap()
	c.clearSkyLight()

	queue := make([]lightNode, 0, 4096)

	for z := int32(0); z < ChunkSize; z++ {
		for x := int32(0); x < ChunkSize; x++ {
			h := int32(c.HeightAt(x, z))
			for y := int32(WorldHeight - 1); y > h; y-- {
				if c.Block(x, y, z) != BlockAir {
					continue
				}
				c.setSkyLight(x, y, z, 15)
				queue = append(queue, lightNode{x, y, z, 15})
			}
		}
	}

	dirs := [6][3]int32{
		{0, 1, 0}, {0, -1, 0},
		{0, 0, -1}, {0, 0, 1},
		{-1, 0, 0}, {1, 0, 0},
	}

	for head := 0; head < len(queue); head++ {
		n := queue[head]
		for _, d := range dirs {
			nx, ny, nz := n.x+d[0], n.y+d[1], n.z+d[2]
			if !InBounds(nx, ny, nz) {
				continue
			}
			att, passes := LightAttenuation(c.Block(nx, ny, nz))
			if !passes {
				continue
			}
			if n.level <= att {
				continue
			}
			nl := n.level - att
			if nl <= c.SkyLight(nx, ny, nz) {
				continue
			}
			c.setSkyLight(nx, ny, nz, nl)
			queue = append(queue, lightNode{nx, ny, nz, nl})
		}
	}
}
