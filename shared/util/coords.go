package util

import "sort"

// ChunkSize é a largura horizontal de um chunk em voxels.
const ChunkSize = 16

// ChunkCoord identifica um chunk pela sua posição na grade horizontal.
// As coordenadas são em unidades de chunk (mundo / 16), não em voxels.
type ChunkCoord struct {
	X int32
	Z int32
}

// NewChunkCoord cria uma coordenada de chunk.
func NewChunkCoord(x, z int32) ChunkCoord {
	return ChunkCoord{X: x, Z: z}
}

// Packed empacota a coordenada em uma única chave de 64 bits para uso em maps.
func (c ChunkCoord) Packed() uint64 {
	return uint64(uint32(c.X))<<32 | uint64(uint32(c.Z))
}

// UnpackCoord desfaz o empacotamento de Packed.
func UnpackCoord(key uint64) ChunkCoord {
	return ChunkCoord{
		X: int32(uint32(key >> 32)),
		Z: int32(uint32(key)),
	}
}

// Add desloca a coordenada pelo offset dado.
func (c ChunkCoord) Add(o ChunkCoord) ChunkCoord {
	return ChunkCoord{X: c.X + o.X, Z: c.Z + o.Z}
}

// DistSqTo retorna a distância quadrada (em chunks) até outra coordenada.
func (c ChunkCoord) DistSqTo(o ChunkCoord) int64 {
	dx := int64(c.X - o.X)
	dz := int64(c.Z - o.Z)
	return dx*dx + dz*dz
}

// WorldToChunk converte coordenadas de voxel do mundo para (chunk, local).
// Usa divisão com piso para que coordenadas negativas caiam no chunk correto.
func WorldToChunk(wx, wz int32) (coord ChunkCoord, lx, lz int32) {
	coord = ChunkCoord{X: floorDiv(wx, ChunkSize), Z: floorDiv(wz, ChunkSize)}
	lx = wx - coord.X*ChunkSize
	lz = wz - coord.Z*ChunkSize
	return coord, lx, lz
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// SpiralOffsets gera os offsets de chunk dentro do raio dado, ordenados do
// centro para fora. A ordem é determinística: distância primeiro, depois X e Z
// como desempate, para que a varredura do streaming seja estável entre frames.
func SpiralOffsets(radius int32) []ChunkCoord {
	offsets := make([]ChunkCoord, 0, (2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if int64(dx)*int64(dx)+int64(dz)*int64(dz) <= int64(radius)*int64(radius) {
				offsets = append(offsets, ChunkCoord{X: dx, Z: dz})
			}
		}
	}
	sort.Slice(offsets, func(i, j int) bool {
		di := int64(offsets[i].X)*int64(offsets[i].X) + int64(offsets[i].Z)*int64(offsets[i].Z)
		dj := int64(offsets[j].X)*int64(offsets[j].X) + int64(offsets[j].Z)*int64(offsets[j].Z)
		if di != dj {
			return di < dj
		}
		if offsets[i].X != offsets[j].X {
			return offsets[i].X < offsets[j].X
		}
		return offsets[i].Z < offsets[j].Z
	})
	return offsets
}
