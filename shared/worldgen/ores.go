package worldgen

import (
	"math"
	"math/rand"

	"VoxelVision/shared/world"
)

// Veios de minério: bolhas alongadas colocadas por tentativas por chunk,
// por cima da substituição por ruído feita no terreno. O veio caminha numa
// direção sorteada com raio em perfil de seno (fino nas pontas, grosso no
// meio) e só substitui pedra, então nunca fura cavernas, água ou bedrock.
// Veios são locais ao chunk; os que encostam na borda são recortados pelo
// no-op de SetBlock fora dos limites.

type veinSpec struct {
	block    world.BlockID
	attempts int
	minY     int32
	maxY     int32
	radius   float64
}

var veinSpecs = []veinSpec{
	{world.BlockCoalOre, 12, 8, 120, 1.6},
	{world.BlockIronOre, 8, 6, 56, 1.3},
	{world.BlockGoldOre, 3, 4, 30, 1.1},
	{world.BlockDiamondOre, 2, 2, 14, 0.9},
}

func (g *Generator) placeOreVeins(c *world.Chunk) {
	for ti, spec := range veinSpecs {
		rng := rand.New(rand.NewSource(chunkSeed(g.seed, c.Coord.X, c.Coord.Z, saltVeins+uint64(ti))))
		for a := 0; a < spec.attempts; a++ {
			g.placeVein(c, rng, spec)
		}
	}
}

func (g *Generator) placeVein(c *world.Chunk, rng *rand.Rand, spec veinSpec) {
	x := rng.Float64() * world.ChunkSize
	y := float64(spec.minY) + rng.Float64()*float64(spec.maxY-spec.minY)
	z := rng.Float64() * world.ChunkSize
	yaw := rng.Float64() * 2 * math.Pi
	pitch := (rng.Float64() - 0.5) * 0.8
	length := 4 + rng.Intn(5)

	for step := 0; step < length; step++ {
		// Perfil de seno: pontas finas, meio grosso.
		t := (float64(step) + 0.5) / float64(length)
		r := 0.5 + spec.radius*math.Sin(t*math.Pi)
		replaceStoneSphere(c, x, y, z, r, spec.block)

		x += math.Cos(yaw) * math.Cos(pitch)
		z += math.Sin(yaw) * math.Cos(pitch)
		y += math.Sin(pitch)
	}
}

func replaceStoneSphere(c *world.Chunk, x, y, z, r float64, ore world.BlockID) {
	minX := int32(math.Floor(x - r))
	maxX := int32(math.Ceil(x + r))
	minY := int32(math.Floor(y - r))
	maxY := int32(math.Ceil(y + r))
	minZ := int32(math.Floor(z - r))
	maxZ := int32(math.Ceil(z + r))

	for wy := minY; wy <= maxY; wy++ {
		for wz := minZ; wz <= maxZ; wz++ {
			for wx := minX; wx <= maxX; wx++ {
				dx := float64(wx) + 0.5 - x
				dy := float64(wy) + 0.5 - y
				dz := float64(wz) + 0.5 - z
				if dx*dx+dy*dy+dz*dz > r*r {
					continue
				}
				// Coordenadas já locais; fora do chunk Block devolve ar,
				// que não é pedra, então a borda recorta sozinha.
				if c.Block(wx, wy, wz) == world.BlockStone {
					c.SetBlock(wx, wy, wz, ore)
				}
			}
		}
	}
}
