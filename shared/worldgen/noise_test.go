package worldgen

import (
	"testing"

	opensimplex "github.com/ojrac/opensimplex-go"
)

func TestChunkSeedVariesByCoordAndSalt(t *testing.T) {
	base := chunkSeed(42, 3, 7, saltCaves)
	if chunkSeed(42, 3, 7, saltCaves) != base {
		t.Fatal("chunkSeed não é determinística")
	}
	if chunkSeed(42, 4, 7, saltCaves) == base || chunkSeed(42, 3, 8, saltCaves) == base {
		t.Fatal("coordenadas vizinhas colidem")
	}
	if chunkSeed(42, 3, 7, saltRavines) == base {
		t.Fatal("salts diferentes deveriam produzir seeds diferentes")
	}
	if chunkSeed(43, 3, 7, saltCaves) == base {
		t.Fatal("seeds de mundo diferentes deveriam produzir seeds diferentes")
	}
	// Coordenadas negativas não podem espelhar as positivas.
	if chunkSeed(42, -3, -7, saltCaves) == base {
		t.Fatal("coordenadas negativas colidem com as positivas")
	}
}

func TestColumnHashDistribution(t *testing.T) {
	// A decisão de árvore usa hash % 1024 contra limiares pequenos; uma
	// distribuição grosseiramente uniforme basta. Conta quantas colunas de
	// uma grade caem abaixo de 10/1024 e confere a ordem de grandeza.
	hits := 0
	total := 0
	for wx := int32(0); wx < 256; wx++ {
		for wz := int32(0); wz < 256; wz++ {
			total++
			if columnHash(42, wx, wz, saltTrees)%1024 < 10 {
				hits++
			}
		}
	}
	// Esperado ~640 em 65536; uma faixa larga evita flakiness.
	if hits < 320 || hits > 1280 {
		t.Fatalf("%d acertos em %d, fora da faixa esperada", hits, total)
	}
}

func TestFractal2StaysNormalized(t *testing.T) {
	n := opensimplex.New(42)
	for x := -500.0; x <= 500.0; x += 13.0 {
		for z := -500.0; z <= 500.0; z += 17.0 {
			v := fractal2(n, x, z, 4, 1.0/180.0)
			if v < -1.0 || v > 1.0 {
				t.Fatalf("fractal2(%v,%v) = %v fora de [-1,1]", x, z, v)
			}
		}
	}
}
