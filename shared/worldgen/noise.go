package worldgen

import opensimplex "github.com/ojrac/opensimplex-go"

// Helpers de ruído fractal sobre opensimplex. Cada preocupação do gerador
// (altura, bioma, minério...) tem a sua própria instância de ruído criada
// com um offset de seed fixo, para que os campos sejam independentes mas
// totalmente determinados pela seed do mundo.

// fractal2 soma `octaves` oitavas de ruído 2D, cada uma com o dobro da
// frequência e metade da amplitude da anterior. Resultado em ~[-1, 1].
func fractal2(n opensimplex.Noise, x, z float64, octaves int, scale float64) float64 {
	sum := 0.0
	amp := 1.0
	freq := scale
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += n.Eval2(x*freq, z*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2.0
	}
	return sum / norm
}

// mix64 é o finalizador de hash do SplitMix64. Espalha bits de coordenadas
// para derivar seeds por chunk.
func mix64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return h
}

// Salts por preocupação: mantêm as sequências de RNG de cada decorador
// independentes mesmo partindo da mesma seed de mundo.
const (
	saltCaves   = 0x63617665734C5653 // "cavesLVS"
	saltRavines = 0x726176696E65734C
	saltVeins   = 0x76656E696F733131
	saltTrees   = 0x74726565734C5653
)

// chunkSeed deriva uma seed determinística para um chunk e uma preocupação.
func chunkSeed(seed int64, cx, cz int32, salt uint64) int64 {
	h := uint64(seed) ^ salt
	h ^= uint64(uint32(cx)) * 0x9E3779B97F4A7C15
	h = mix64(h)
	h ^= uint64(uint32(cz)) * 0xC2B2AE3D27D4EB4F
	return int64(mix64(h))
}

// columnHash deriva um hash determinístico para uma coluna do mundo.
func columnHash(seed int64, wx, wz int32, salt uint64) uint64 {
	h := uint64(seed) ^ salt
	h ^= uint64(uint32(wx)) * 0x9E3779B97F4A7C15
	h = mix64(h)
	h ^= uint64(uint32(wz)) * 0xC2B2AE3D27D4EB4F
	return mix64(h)
}
