package worldgen

import (
	"math"
	"math/rand"

	"VoxelVision/shared/world"
)

// Cavernas por "worms": tubos que serpenteiam pela pedra carregando um RNG
// próprio. Cada chunk de origem num raio de 2 ao redor do chunk alvo pode
// emitir worms; o worm inteiro é simulado para cada chunk alvo e só os
// voxels que caem dentro do alvo são escavados. Como a sequência do RNG não
// depende do alvo, as duas metades de uma caverna que cruza uma borda
// sempre se encaixam.

const (
	caveScanRadius = 2
	caveChance     = 0.25
	// Abaixo desta altura, escavação vira lava em vez de ar.
	caveLavaDepth = 11
)

type wormState struct {
	x, y, z    float64
	yaw, pitch float64
	step       int
	length     int
	radius     float64
	depth      int // 0 = tronco principal, 1 = ramo
}

func (g *Generator) carveCaves(c *world.Chunk) {
	for ox := c.Coord.X - caveScanRadius; ox <= c.Coord.X+caveScanRadius; ox++ {
		for oz := c.Coord.Z - caveScanRadius; oz <= c.Coord.Z+caveScanRadius; oz++ {
			rng := rand.New(rand.NewSource(chunkSeed(g.seed, ox, oz, saltCaves)))
			if rng.Float64() >= caveChance {
				continue
			}
			count := 1 + rng.Intn(2)
			for i := 0; i < count; i++ {
				start := wormState{
					x:      float64(ox*world.ChunkSize) + rng.Float64()*world.ChunkSize,
					y:      12.0 + rng.Float64()*52.0,
					z:      float64(oz*world.ChunkSize) + rng.Float64()*world.ChunkSize,
					yaw:    rng.Float64() * 2 * math.Pi,
					pitch:  (rng.Float64() - 0.5) * 0.5,
					length: 80 + rng.Intn(80),
					radius: 1.4 + rng.Float64()*1.4,
				}
				g.runWorm(c, rng, start)
			}
		}
	}
}

// runWorm simula um worm e seus ramos com uma fila de trabalho explícita.
// Ramos só nascem do tronco principal (um nível de ramificação), no terço
// central do percurso.
func (g *Generator) runWorm(c *world.Chunk, rng *rand.Rand, start wormState) {
	queue := []wormState{start}
	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]

		for ; w.step < w.length; w.step++ {
			// Bojos periódicos ao longo do tubo.
			r := w.radius * (1.0 + 0.5*math.Sin(float64(w.step)*0.25))
			carveSphere(c, w.x, w.y, w.z, r)

			w.x += math.Cos(w.yaw) * math.Cos(w.pitch)
			w.z += math.Sin(w.yaw) * math.Cos(w.pitch)
			w.y += math.Sin(w.pitch)

			w.yaw += (rng.Float64() - 0.5) * 0.4
			w.pitch += (rng.Float64() - 0.5) * 0.3
			w.pitch *= 0.9 // tende de volta à horizontal

			if w.depth == 0 && w.step > w.length/3 && w.step < 2*w.length/3 &&
				rng.Float64() < 0.03 {
				branch := w
				branch.depth = 1
				branch.yaw += math.Pi/2 + (rng.Float64()-0.5)*0.6
				branch.length = (w.length - w.step) / 2
				branch.step = 0
				branch.radius = w.radius * 0.8
				queue = append(queue, branch)
			}
		}
	}
}

// carveSphere escava uma esfera centrada em coordenadas de mundo, recortada
// ao chunk alvo. Nunca remove bedrock nem água, nunca escava o voxel
// imediatamente abaixo de água parada (para lagos não drenarem para dentro
// das cavernas) e nunca toca a plataforma de spawn.
func carveSphere(c *world.Chunk, x, y, z float64, r float64) {
	baseX := c.Coord.X * world.ChunkSize
	baseZ := c.Coord.Z * world.ChunkSize

	minX := int32(math.Floor(x - r))
	maxX := int32(math.Ceil(x + r))
	minY := int32(math.Floor(y - r))
	maxY := int32(math.Ceil(y + r))
	minZ := int32(math.Floor(z - r))
	maxZ := int32(math.Ceil(z + r))

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
				if dx*dx+dy*dy+dz*dz > r*r {
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
