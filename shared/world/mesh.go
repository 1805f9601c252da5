package world

import "math"

// Mesher determinístico: BuildMesh é uma função pura dos buffers do chunk e
// dos 4 vizinhos horizontais. Duas chamadas com as mesmas entradas produzem
// buffers byte a byte idênticos, o que mantém o cache de GPU coerente e
// torna regressões de geometria testáveis por comparação direta.

// Índices dos vizinhos horizontais passados ao mesher.
const (
	NeighborNorth = 0 // -Z
	NeighborSouth = 1 // +Z
	NeighborWest  = 2 // -X
	NeighborEast  = 3 // +X
)

// Geometry acumula buffers de malha prontos para upload.
type Geometry struct {
	Vertices []float32 // xyz intercalado, coordenadas locais do chunk
	Normals  []float32
	UVs      []float32
	Colors   []uint8 // RGBA por vértice
	Indices  []uint32
}

// MeshData é o resultado imutável do mesher: um par de buffers, um para o
// pass opaco e um para o transparente (água, vidro).
type MeshData struct {
	Opaque      Geometry
	Transparent Geometry
}

// Empty reporta se nenhuma geometria foi produzida.
func (m *MeshData) Empty() bool {
	return len(m.Opaque.Vertices) == 0 && len(m.Transparent.Vertices) == 0
}

func (g *Geometry) appendQuad(pos [4][3]float32, normal [3]float32, uv [4][2]float32, cols [4][4]uint8) {
	base := uint32(len(g.Vertices) / 3)
	for i := 0; i < 4; i++ {
		g.Vertices = append(g.Vertices, pos[i][0], pos[i][1], pos[i][2])
		g.Normals = append(g.Normals, normal[0], normal[1], normal[2])
		g.UVs = append(g.UVs, uv[i][0], uv[i][1])
		g.Colors = append(g.Colors, cols[i][0], cols[i][1], cols[i][2], cols[i][3])
	}
	g.Indices = append(g.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

// Layout do atlas de texturas: grade fixa de 8x4 tiles. O índice de face da
// tabela de blocos endereça essa grade da esquerda para a direita, de cima
// para baixo.
const (
	AtlasCols = 8
	AtlasRows = 4
)

func tileUV(tile uint8) [4][2]float32 {
	col := float32(tile % AtlasCols)
	row := float32(tile / AtlasCols)
	const inset = 1.0 / 256.0
	u0 := col/AtlasCols + inset
	v0 := row/AtlasRows + inset
	u1 := (col+1)/AtlasCols - inset
	v1 := (row+1)/AtlasRows - inset
	return [4][2]float32{{u0, v1}, {u1, v1}, {u1, v0}, {u0, v0}}
}

type faceDef struct {
	dir     [3]int32 // célula frontal (vizinho que cobre esta face)
	normal  [3]float32
	corners [4][3]float32 // winding CCW visto de fora
	shade   float32       // Lambert estático por direção
}

// Sombras direcionais fixas: topo claro, fundo escuro, lados intermediários
// (eixos Z e X distintos para dar leitura de volume sem luz dinâmica).
var faceDefs = [6]faceDef{
	FaceUp: {
		dir: [3]int32{0, 1, 0}, normal: [3]float32{0, 1, 0},
		corners: [4][3]float32{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
		shade:   1.0,
	},
	FaceDown: {
		dir: [3]int32{0, -1, 0}, normal: [3]float32{0, -1, 0},
		corners: [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
		shade:   0.5,
	},
	FaceNorth: {
		dir: [3]int32{0, 0, -1}, normal: [3]float32{0, 0, -1},
		corners: [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
		shade:   0.8,
	},
	FaceSouth: {
		dir: [3]int32{0, 0, 1}, normal: [3]float32{0, 0, 1},
		corners: [4][3]float32{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
		shade:   0.8,
	},
	FaceWest: {
		dir: [3]int32{-1, 0, 0}, normal: [3]float32{-1, 0, 0},
		corners: [4][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
		shade:   0.6,
	},
	FaceEast: {
		dir: [3]int32{1, 0, 0}, normal: [3]float32{1, 0, 0},
		corners: [4][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
		shade:   0.6,
	},
}

// Curva de remapeamento de luz: gama 1.5 com piso visível, para que áreas
// de luz 0 ainda sejam legíveis em vez de preto absoluto.
var lightCurve = func() [16]float32 {
	var c [16]float32
	for i := 0; i < 16; i++ {
		c[i] = 0.1 + 0.9*float32(math.Pow(float64(i)/15.0, 1.5))
	}
	return c
}()

// Tinturas de bioma aplicadas por vértice.
var (
	grassTint   = [3]float32{0.486, 0.741, 0.419}
	foliageTint = [3]float32{0.400, 0.660, 0.300}
	waterTint   = [3]float32{0.250, 0.450, 0.900}
)

// Altura da superfície da água quando exposta ao ar.
const waterSurface = 7.0 / 8.0

// meshSampler resolve leituras de bloco e luz cruzando as bordas do chunk
// para os 4 vizinhos. Vizinhos ausentes são tratados como ar totalmente
// iluminado; o scheduler só agenda meshing com os 4 presentes, então isso
// só acontece em amostras diagonais de canto.
type meshSampler struct {
	c         *Chunk
	neighbors [4]*Chunk
}

func (s *meshSampler) block(x, y, z int32) BlockID {
	if y < 0 {
		// Fundo do mundo tratado como opaco: nunca desenhamos a face
		// inferior da camada de bedrock.
		return BlockBedrock
	}
	if y >= WorldHeight {
		return BlockAir
	}
	xOut := x < 0 || x >= ChunkSize
	zOut := z < 0 || z >= ChunkSize
	switch {
	case xOut && zOut:
		return BlockAir
	case x < 0:
		return s.neighborBlock(NeighborWest, x+ChunkSize, y, z)
	case x >= ChunkSize:
		return s.neighborBlock(NeighborEast, x-ChunkSize, y, z)
	case z < 0:
		return s.neighborBlock(NeighborNorth, x, y, z+ChunkSize)
	case z >= ChunkSize:
		return s.neighborBlock(NeighborSouth, x, y, z-ChunkSize)
	}
	return s.c.Block(x, y, z)
}

func (s *meshSampler) neighborBlock(n int, x, y, z int32) BlockID {
	if s.neighbors[n] == nil {
		return BlockAir
	}
	return s.neighbors[n].Block(x, y, z)
}

func (s *meshSampler) light(x, y, z int32) uint8 {
	if y >= WorldHeight {
		return 15
	}
	if y < 0 {
		return 0
	}
	xOut := x < 0 || x >= ChunkSize
	zOut := z < 0 || z >= ChunkSize
	switch {
	case xOut && zOut:
		return 15
	case x < 0:
		return s.neighborLight(NeighborWest, x+ChunkSize, y, z)
	case x >= ChunkSize:
		return s.neighborLight(NeighborEast, x-ChunkSize, y, z)
	case z < 0:
		return s.neighborLight(NeighborNorth, x, y, z+ChunkSize)
	case z >= ChunkSize:
		return s.neighborLight(NeighborSouth, x, y, z-ChunkSize)
	}
	return s.c.SkyLight(x, y, z)
}

func (s *meshSampler) neighborLight(n int, x, y, z int32) uint8 {
	if s.neighbors[n] == nil {
		return 15
	}
	return s.neighbors[n].SkyLight(x, y, z)
}

// cornerLight calcula a luz suavizada de um canto da face: média da célula
// frontal com as até 3 células adjacentes no plano da face, excluindo
// amostras opacas para a luz não "vazar" através de paredes.
func (s *meshSampler) cornerLight(x, y, z int32, face int, corner int) float32 {
	fd := &faceDefs[face]
	fx, fy, fz := x+fd.dir[0], y+fd.dir[1], z+fd.dir[2]

	// Eixos tangentes: os dois eixos que não são o da normal.
	var axisU, axisV int
	switch {
	case fd.dir[0] != 0:
		axisU, axisV = 1, 2
	case fd.dir[1] != 0:
		axisU, axisV = 0, 2
	default:
		axisU, axisV = 0, 1
	}

	cp := fd.corners[corner]
	su := int32(cp[axisU])*2 - 1 // -1 ou +1 conforme o canto
	sv := int32(cp[axisV])*2 - 1

	var du, dv [3]int32
	du[axisU] = su
	dv[axisV] = sv

	var sum, count float32
	sample := func(sx, sy, sz int32) {
		if s.block(sx, sy, sz).IsOpaque() {
			return
		}
		sum += float32(s.light(sx, sy, sz))
		count++
	}
	sample(fx, fy, fz)
	sample(fx+du[0], fy+du[1], fz+du[2])
	sample(fx+dv[0], fy+dv[1], fz+dv[2])
	sample(fx+du[0]+dv[0], fy+du[1]+dv[1], fz+du[2]+dv[2])

	if count == 0 {
		return float32(s.light(fx, fy, fz))
	}
	return sum / count
}

// BuildMesh gera a geometria de um chunk a partir dos seus voxels, luz e dos
// 4 vizinhos horizontais (somente leitura). Não toca em estado global nem no
// estado de pipeline do chunk; pode rodar em qualquer worker.
func BuildMesh(c *Chunk, neighbors [4]*Chunk) *MeshData {
	s := &meshSampler{c: c, neighbors: neighbors}
	md := &MeshData{}

	for y := int32(0); y < WorldHeight; y++ {
		for z := int32(0); z < ChunkSize; z++ {
			for x := int32(0); x < ChunkSize; x++ {
				id := c.Block(x, y, z)
				if id == BlockAir {
					continue
				}
				info := id.Info()

				geo := &md.Opaque
				if info.Translucent {
					geo = &md.Transparent
				}

				// Superfície líquida rebaixada quando exposta.
				lowerTop := id == BlockWater && s.block(x, y+1, z) != BlockWater

				for face := 0; face < 6; face++ {
					fd := &faceDefs[face]
					nb := s.block(x+fd.dir[0], y+fd.dir[1], z+fd.dir[2])
					if !ShowFace(id, nb) {
						continue
					}

					var pos [4][3]float32
					var cols [4][4]uint8
					for ci := 0; ci < 4; ci++ {
						cp := fd.corners[ci]
						py := cp[1]
						if lowerTop && py == 1 {
							py = waterSurface
						}
						pos[ci] = [3]float32{
							float32(x) + cp[0],
							float32(y) + py,
							float32(z) + cp[2],
						}
						cols[ci] = vertexColor(s, x, y, z, face, ci, info)
					}
					geo.appendQuad(pos, fd.normal, tileUV(info.Faces[face]), cols)
				}
			}
		}
	}
	return md
}

func vertexColor(s *meshSampler, x, y, z int32, face, corner int, info *BlockInfo) [4]uint8 {
	light := s.cornerLight(x, y, z, face, corner)

	// Interpola a curva de gama entre os dois níveis inteiros vizinhos.
	lo := int(light)
	if lo > 15 {
		lo = 15
	}
	hi := lo
	if hi < 15 {
		hi = lo + 1
	}
	frac := light - float32(lo)
	bright := lightCurve[lo] + (lightCurve[hi]-lightCurve[lo])*frac

	bright *= faceDefs[face].shade

	tint := [3]float32{1, 1, 1}
	switch info.Tint {
	case TintGrass:
		if face == FaceUp {
			tint = grassTint
		}
	case TintFoliage:
		tint = foliageTint
	case TintWater:
		tint = waterTint
	}

	alpha := uint8(255)
	if info.Liquid {
		alpha = 180
	} else if info.Translucent {
		alpha = 200
	}

	return [4]uint8{
		colorByte(bright * tint[0]),
		colorByte(bright * tint[1]),
		colorByte(bright * tint[2]),
		alpha,
	}
}

func colorByte(v float32) uint8 {
	c := v * 255.0
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return uint8(c)
}
