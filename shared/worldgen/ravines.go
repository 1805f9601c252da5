package worldgen

import (
	"math"
	"math/rand"

	"VoxelVision/shared/world"
)

// Ravinas: cortes verticais profundos e raros. Mesmo esquema de origem e
// determinismo das cavernas (varredura 5x5 de chunks de origem, RNG por
// origem), mas o percurso é mais reto, não ramifica e escava elipsoides
// esticados na vertical em vez de esferas.

const (
	ravineScanRadius  = 2
	ravineChance      = 0.04
	ravineVerticalMul = 3.0
)

func (g *Generator) carveRavines(c *world.Chunk) {
	for ox := c.Coord.X - ravineScanRadius; ox <= c.Coord.X+ravineScanRadius; ox++ {
		for oz := c.Coord.Z - ravineScanRadius; oz <= c.Coord.Z+ravineScanRadius; oz++ {
			rng := rand.New(rand.NewSource(chunkSeed(g.seed, ox, oz, saltRavines)))
			if rng.Float64() >= ravineChance {
				continue
			}

			x := float64(ox*world.ChunkSize) + rng.Float64()*world.ChunkSize
			y := 20.0 + rng.Float64()*40.0
			z := float64(oz*world.ChunkSize) + rng.Float64()*world.ChunkSize
			yaw := rng.Float64() * 2 * math.Pi
			pitch := (rng.Float64() - 0.5) * 0.2
			length := 90 + rng.Intn(60)
			width := 1.2 + rng.Float64()*1.2

			for step := 0; step < length; step++ {
				rh := width * (1.0 + 0.3*math.Sin(float64(step)*0.2))
				carveEllipsoid(c, x, y, z, rh, rh*ravineVerticalMul)

				x += math.Cos(yaw) * math.Cos(pitch)
				z += math.Sin(yaw) * math.Cos(pitch)
				y += math.Sin(pitch)

				// Deriva bem menor que a dos worms: ravinas são retas.
				yaw += (rng.Float64() - 0.5) * 0.15
				pitch += (rng.Float64() - 0.5) * 0.1
				pitch *= 0.7
			}
		}
	}
}

// carveEllipsoid escava um elipsoide alinhado aos eixos, com as mesmas
// proteções de carveSphere (bedrock, água, voxel sob água, spawn).
func carveEllipsoid(c *world.Chunk, x, y, z, rh, rv float64) {
	baseX := c.Coord.X * world.ChunkSize
	baseZ := c.Coord.Z * world.ChunkSize

	minX := int32(math.Floor(x - rh))
	maxX := int32(math.Ceil(x + rh))
	minY := int32(math.Floor(y - rv))
	maxY := int32(math.Ceil(y + rv))
	minZ := int32(math.Floor(z - rh))
	maxZ := int32(math.Ceil(z + rh))

	for wy := minY; wy <= maxY; wy++ {
		if wy < 1 || wy >= world.WorldHeight {
			continue
		}
		for wz := minZ; wz <= maxZ; wz++ {
			lz := wz - baseZ
			if lz < 0 || lz >= world.ChunkSize {
				continue
			}
			for wx := minX; wx <= maxX; wx++ {
				lx := wx - baseX
				if lx < 0 || lx >= world.ChunkSize {
					continue
				}
				dx := float64(wx) + 0.5 - x
				dy := float64(wy) + 0.5 - y
				dz := float64(wz) + 0.5 - z
				if (dx*dx+dz*dz)/(rh*rh)+(dy*dy)/(rv*rv) > 1.0 {
					continue
				}
				if inSpawnArea(wx, wz) {
					continue
				}
				cur := c.Block(lx, wy, lz)
				if cur == world.BlockBedrock || cur == world.BlockWater {
					continue
				}
				if c.Block(lx, wy+1, lz) == world.BlockWater {
					continue
				}
				if wy < caveLavaDepth {
					c.SetBlock(lx, wy, lz, world.BlockLava)
				} else {
					c.SetBlock(lx, wy, lz, world.BlockAir)
				}
			}
		}
	}
}
