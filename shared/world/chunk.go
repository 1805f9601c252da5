package world

import "VoxelVision/shared/util"

const (
	// ChunkSize é a largura horizontal do chunk (X e Z), em voxels.
	ChunkSize = util.ChunkSize
	// WorldHeight é a altura total do mundo, em voxels.
	WorldHeight = 256

	chunkArea   = ChunkSize * ChunkSize
	chunkVolume = chunkArea * WorldHeight
)

// ChunkState é o estágio do pipeline de streaming de um chunk.
// Os valores são ordenados: comparações com >= expressam "já passou por".
type ChunkState uint8

const (
	StateEmpty ChunkState = iota
	StateGenerating
	StateGenerated
	StateLighting
	StateLighted
	StateMeshing
	StateReady
)

func (s ChunkState) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateGenerating:
		return "GENERATING"
	case StateGenerated:
		return "GENERATED"
	case StateLighting:
		return "LIGHTING"
	case StateLighted:
		return "LIGHTED"
	case StateMeshing:
		return "MESHING"
	case StateReady:
		return "READY"
	}
	return "UNKNOWN"
}

// Chunk é uma coluna 16x256x16 de voxels com luz do céu e mapa de altura.
//
// Layout do array de blocos: índice = x + z*16 + y*256, de forma que uma
// fatia horizontal inteira (y fixo) é contígua em memória.
//
// A luz do céu é empacotada em nibbles de 4 bits, dois voxels por byte.
//
// Propriedade de concorrência: os buffers de um chunk só são escritos pelo
// worker que o detém (garantido pelo conjunto in-flight do store) ou pela
// thread principal quando nenhum worker o detém.
type Chunk struct {
	Coord util.ChunkCoord

	blocks    []BlockID
	skyLight  []uint8
	heightMap [chunkArea]int16

	State      ChunkState
	Dirty      bool // geometria desatualizada (edição externa)
	LightDirty bool // luz desatualizada (edição externa)
}

// NewChunk cria um chunk vazio na coordenada dada.
func NewChunk(coord util.ChunkCoord) *Chunk {
	return &Chunk{
		Coord:    coord,
		blocks:   make([]BlockID, chunkVolume),
		skyLight: make([]uint8, chunkVolume/2),
	}
}

func blockIndex(x, y, z int32) int32 {
	return x + z*ChunkSize + y*chunkArea
}

// InBounds reporta se a coordenada local está dentro do chunk.
func InBounds(x, y, z int32) bool {
	return x >= 0 && x < ChunkSize && z >= 0 && z < ChunkSize && y >= 0 && y < WorldHeight
}

// Block retorna o bloco na coordenada local. Fora dos limites retorna ar.
func (c *Chunk) Block(x, y, z int32) BlockID {
	if !InBounds(x, y, z) {
		return BlockAir
	}
	return c.blocks[blockIndex(x, y, z)]
}

// SetBlock grava o bloco na coordenada local. Fora dos limites é no-op
// silencioso; os decoradores de geração contam com isso para recortar
// estruturas que vazam da borda do chunk.
func (c *Chunk) SetBlock(x, y, z int32, id BlockID) {
	if !InBounds(x, y, z) {
		return
	}
	c.blocks[blockIndex(x, y, z)] = id
}

// SkyLight retorna o nível de luz do céu [0,15] na coordenada local.
// Acima do topo do mundo é sempre 15; abaixo de y=0 é 0. Fora dos limites
// horizontais retorna 15 (mesma convenção do store para chunks ausentes).
func (c *Chunk) SkyLight(x, y, z int32) uint8 {
	if y >= WorldHeight {
		return 15
	}
	if y < 0 {
		return 0
	}
	if x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize {
		return 15
	}
	idx := blockIndex(x, y, z)
	b := c.skyLight[idx>>1]
	if idx&1 == 0 {
		return b & 0x0F
	}
	return b >> 4
}

func (c *Chunk) setSkyLight(x, y, z int32, level uint8) {
	if !InBounds(x, y, z) {
		return
	}
	idx := blockIndex(x, y, z)
	i := idx >> 1
	if idx&1 == 0 {
		c.skyLight[i] = (c.skyLight[i] & 0xF0) | (level & 0x0F)
	} else {
		c.skyLight[i] = (c.skyLight[i] & 0x0F) | (level << 4)
	}
}

func (c *Chunk) clearSkyLight() {
	for i := range c.skyLight {
		c.skyLight[i] = 0
	}
}

// HeightAt retorna o Y do voxel mais alto que bloqueia ou atenua luz na
// coluna local, ou -1 se a coluna é toda ar.
func (c *Chunk) HeightAt(x, z int32) int16 {
	return c.heightMap[x+z*ChunkSize]
}

// RecomputeHeightMap varre cada coluna de cima para baixo procurando o
// primeiro voxel opaco ou semi-opaco.
func (c *Chunk) RecomputeHeightMap() {
	for z := int32(0); z < ChunkSize; z++ {
		for x := int32(0); x < ChunkSize; x++ {
			h := int16(-1)
			for y := int32(WorldHeight - 1); y >= 0; y-- {
				info := c.blocks[blockIndex(x, y, z)].Info()
				if info.Opaque || info.SemiOpaque {
					h = int16(y)
					break
				}
			}
			c.heightMap[x+z*ChunkSize] = h
		}
	}
}

// Clone copia os buffers de voxels do chunk (sem estado de pipeline).
// Usado apenas em testes de determinismo.
func (c *Chunk) Clone() *Chunk {
	n := NewChunk(c.Coord)
	copy(n.blocks, c.blocks)
	copy(n.skyLight, c.skyLight)
	n.heightMap = c.heightMap
	return n
}
