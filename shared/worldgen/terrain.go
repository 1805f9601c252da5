package worldgen

import (
	"VoxelVision/shared/util"
	"VoxelVision/shared/world"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Constantes do mundo.
const (
	// SeaLevel é o Y da superfície da água em oceanos e lagos.
	SeaLevel = 62
	// PlatformHeight é a altura forçada do terreno perto da origem, para o
	// observador sempre nascer sobre chão plano e seguro.
	PlatformHeight = 63
	// SpawnRadius delimita (em voxels, por eixo) a área da plataforma de
	// spawn. Dentro dela nenhum decorador escava ou constrói.
	SpawnRadius = 8

	baseHeight = 64
	snowLine   = 96

	ampPlains    = 6.0
	ampMountains = 42.0
	// Acima deste valor de bioma, uma oitava extra de relevo acidentado
	// entra com peso crescente.
	ruggedThreshold = 0.65
)

// Generator produz chunks proceduralmente. Todas as decisões são funções
// puras de (seed, coordenadas): o mesmo chunk gerado duas vezes, em qualquer
// ordem e em qualquer worker, sai idêntico.
type Generator struct {
	seed int64

	heightNoise opensimplex.Noise
	ruggedNoise opensimplex.Noise
	biomeNoise  opensimplex.Noise
	oreNoise    [4]opensimplex.Noise
}

// New cria um gerador para a seed dada. Cada campo de ruído usa um offset
// de seed próprio.
func New(seed int64) *Generator {
	g := &Generator{
		seed:        seed,
		heightNoise: opensimplex.New(seed),
		ruggedNoise: opensimplex.New(seed + 1),
		biomeNoise:  opensimplex.New(seed + 2),
	}
	for i := range g.oreNoise {
		g.oreNoise[i] = opensimplex.New(seed + 100 + int64(i))
	}
	return g
}

// Seed retorna a seed do mundo.
func (g *Generator) Seed() int64 { return g.seed }

// biome01 retorna o campo de bioma em [0,1]: baixo = deserto/planície,
// alto = montanha. Frequência bem menor que a do relevo, então biomas são
// regiões largas.
func (g *Generator) biome01(wx, wz int32) float64 {
	v := g.biomeNoise.Eval2(float64(wx)/600.0, float64(wz)/600.0)
	return (v + 1.0) / 2.0
}

func inSpawnArea(wx, wz int32) bool {
	return util.Abs(wx) <= SpawnRadius && util.Abs(wz) <= SpawnRadius
}

// SurfaceHeight retorna a altura do terreno na coluna, antes de qualquer
// decorador. Perto da origem a altura é forçada para a plataforma de spawn.
func (g *Generator) SurfaceHeight(wx, wz int32) int32 {
	if inSpawnArea(wx, wz) {
		return PlatformHeight
	}

	b := g.biome01(wx, wz)
	// Interpolação cúbica entre a amplitude de planície e de montanha.
	amp := ampPlains + (ampMountains-ampPlains)*util.Smoothstep(b)

	h := float64(baseHeight) + fractal2(g.heightNoise, float64(wx), float64(wz), 4, 1.0/180.0)*amp

	if b > ruggedThreshold {
		w := (b - ruggedThreshold) / (1.0 - ruggedThreshold)
		h += fractal2(g.ruggedNoise, float64(wx), float64(wz), 2, 1.0/60.0) * 14.0 * w
	}

	return util.Clamp(int32(h), 1, world.WorldHeight-2)
}

// Generate preenche um chunk: terreno base e depois os decoradores, sempre
// nesta ordem. A ordem importa: cavernas e ravinas escavam pedra, veios
// substituem pedra restante, árvores nascem por último na superfície.
func (g *Generator) Generate(c *world.Chunk) {
	g.generateTerrain(c)
	g.carveCaves(c)
	g.carveRavines(c)
	g.placeOreVeins(c)
	g.plantTrees(c)
}

func (g *Generator) generateTerrain(c *world.Chunk) {
	baseX := c.Coord.X * world.ChunkSize
	baseZ := c.Coord.Z * world.ChunkSize

	for lz := int32(0); lz < world.ChunkSize; lz++ {
		for lx := int32(0); lx < world.ChunkSize; lx++ {
			wx := baseX + lx
			wz := baseZ + lz
			h := g.SurfaceHeight(wx, wz)
			surface, filler := g.surfaceBlocks(wx, wz, h)

			for y := int32(0); y < world.WorldHeight; y++ {
				var id world.BlockID
				switch {
				case y == 0:
					id = world.BlockBedrock
				case y <= h:
					depth := h - y
					switch {
					case depth == 0:
						id = surface
					case depth <= 3:
						id = filler
					default:
						id = g.deepBlock(wx, y, wz)
					}
				case y <= SeaLevel:
					id = world.BlockWater
				default:
					continue // ar, já é o valor zero
				}
				c.SetBlock(lx, y, lz, id)
			}
		}
	}
}

// surfaceBlocks escolhe o bloco de superfície e o de preenchimento logo
// abaixo, conforme bioma, altura e linha d'água.
func (g *Generator) surfaceBlocks(wx, wz int32, h int32) (surface, filler world.BlockID) {
	b := g.biome01(wx, wz)
	switch {
	case h < SeaLevel:
		// Fundo de oceano/lago.
		if b < 0.5 {
			return world.BlockSand, world.BlockSand
		}
		return world.BlockGravel, world.BlockGravel
	case h >= snowLine:
		return world.BlockSnow, world.BlockDirt
	case b < 0.22:
		// Deserto.
		return world.BlockSand, world.BlockSand
	default:
		return world.BlockGrass, world.BlockDirt
	}
}

// Faixas de minério por substituição direta de pedra durante o terreno,
// com campos de ruído 3D. Minérios mais raros só aparecem mais fundo.
var oreTiers = [4]struct {
	block     world.BlockID
	maxY      int32
	scale     float64
	threshold float64
}{
	{world.BlockCoalOre, 128, 1.0 / 9.0, 0.74},
	{world.BlockIronOre, 64, 1.0 / 8.0, 0.76},
	{world.BlockGoldOre, 32, 1.0 / 7.0, 0.80},
	{world.BlockDiamondOre, 16, 1.0 / 6.0, 0.84},
}

func (g *Generator) deepBlock(wx, y, wz int32) world.BlockID {
	for i, tier := range oreTiers {
		if y >= tier.maxY {
			continue
		}
		v := g.oreNoise[i].Eval3(float64(wx)*tier.scale, float64(y)*tier.scale, float64(wz)*tier.scale)
		if v > tier.threshold {
			return tier.block
		}
	}
	return world.BlockStone
}
