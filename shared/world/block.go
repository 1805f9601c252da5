package world

// BlockID identifica um tipo de bloco. O valor zero é sempre ar.
type BlockID uint8

const (
	BlockAir BlockID = iota
	BlockStone
	BlockDirt
	BlockGrass
	BlockSand
	BlockGravel
	BlockSnow
	BlockBedrock
	BlockWater
	BlockLava
	BlockOakLog
	BlockOakLeaves
	BlockGlass
	BlockCoalOre
	BlockIronOre
	BlockGoldOre
	BlockDiamondOre

	blockCount
)

// Faces de um bloco, na ordem usada pelo mesher e pelo atlas.
const (
	FaceUp    = 0 // +Y
	FaceDown  = 1 // -Y
	FaceNorth = 2 // -Z
	FaceSouth = 3 // +Z
	FaceWest  = 4 // -X
	FaceEast  = 5 // +X
)

// ToolKind categoriza a ferramenta ideal para quebrar um bloco.
type ToolKind uint8

const (
	ToolNone ToolKind = iota
	ToolPickaxe
	ToolShovel
	ToolAxe
)

// TintKind seleciona a classe de tintura aplicada pelo mesher.
type TintKind uint8

const (
	TintNone TintKind = iota
	TintGrass   // topo de grama
	TintFoliage // folhagem
	TintWater   // líquido
)

// BlockInfo descreve as propriedades de um tipo de bloco.
// Tabela de dados pura: toda decisão de gameplay/render consulta aqui,
// nunca um switch espalhado pelo código.
type BlockInfo struct {
	Name         string
	Solid        bool // colisão física
	Opaque       bool // bloqueia totalmente a luz
	SemiOpaque   bool // desenhado mas deixa luz passar com atenuação extra
	Translucent  bool // vai para o pass transparente do renderer
	Liquid       bool
	Hardness     float32
	Tool         ToolKind
	HarvestLevel uint8
	Faces        [6]uint8 // índice no atlas por face (Up, Down, N, S, W, E)
	Tint         TintKind
}

func uniformFaces(tile uint8) [6]uint8 {
	return [6]uint8{tile, tile, tile, tile, tile, tile}
}

var blockTable = [blockCount]BlockInfo{
	BlockAir: {Name: "air"},
	BlockStone: {
		Name: "stone", Solid: true, Opaque: true,
		Hardness: 1.5, Tool: ToolPickaxe,
		Faces: uniformFaces(1),
	},
	BlockDirt: {
		Name: "dirt", Solid: true, Opaque: true,
		Hardness: 0.5, Tool: ToolShovel,
		Faces: uniformFaces(2),
	},
	BlockGrass: {
		Name: "grass", Solid: true, Opaque: true,
		Hardness: 0.6, Tool: ToolShovel,
		Faces: [6]uint8{3, 2, 4, 4, 4, 4},
		Tint:  TintGrass,
	},
	BlockSand: {
		Name: "sand", Solid: true, Opaque: true,
		Hardness: 0.5, Tool: ToolShovel,
		Faces: uniformFaces(5),
	},
	BlockGravel: {
		Name: "gravel", Solid: true, Opaque: true,
		Hardness: 0.6, Tool: ToolShovel,
		Faces: uniformFaces(6),
	},
	BlockSnow: {
		Name: "snow", Solid: true, Opaque: true,
		Hardness: 0.2, Tool: ToolShovel,
		Faces: uniformFaces(7),
	},
	BlockBedrock: {
		Name: "bedrock", Solid: true, Opaque: true,
		Hardness: -1, // inquebrável
		Faces:    uniformFaces(8),
	},
	BlockWater: {
		Name: "water", SemiOpaque: true, Translucent: true, Liquid: true,
		Faces: uniformFaces(9),
		Tint:  TintWater,
	},
	BlockLava: {
		Name: "lava", Opaque: true, Liquid: true,
		Faces: uniformFaces(10),
	},
	BlockOakLog: {
		Name: "oak_log", Solid: true, Opaque: true,
		Hardness: 2.0, Tool: ToolAxe,
		Faces: [6]uint8{12, 12, 11, 11, 11, 11},
	},
	BlockOakLeaves: {
		Name: "oak_leaves", Solid: true, SemiOpaque: true,
		Hardness: 0.2,
		Faces:    uniformFaces(13),
		Tint:     TintFoliage,
	},
	BlockGlass: {
		Name: "glass", Solid: true, SemiOpaque: true, Translucent: true,
		Hardness: 0.3,
		Faces:    uniformFaces(14),
	},
	BlockCoalOre: {
		Name: "coal_ore", Solid: true, Opaque: true,
		Hardness: 3.0, Tool: ToolPickaxe, HarvestLevel: 0,
		Faces: uniformFaces(15),
	},
	BlockIronOre: {
		Name: "iron_ore", Solid: true, Opaque: true,
		Hardness: 3.0, Tool: ToolPickaxe, HarvestLevel: 1,
		Faces: uniformFaces(16),
	},
	BlockGoldOre: {
		Name: "gold_ore", Solid: true, Opaque: true,
		Hardness: 3.0, Tool: ToolPickaxe, HarvestLevel: 2,
		Faces: uniformFaces(17),
	},
	BlockDiamondOre: {
		Name: "diamond_ore", Solid: true, Opaque: true,
		Hardness: 3.0, Tool: ToolPickaxe, HarvestLevel: 2,
		Faces: uniformFaces(18),
	},
}

// Info retorna a entrada da tabela para o id. Ids fora da tabela viram ar.
func (id BlockID) Info() *BlockInfo {
	if id >= blockCount {
		return &blockTable[BlockAir]
	}
	return &blockTable[id]
}

// IsAir reporta se o bloco é vazio.
func (id BlockID) IsAir() bool { return id == BlockAir }

// IsOpaque reporta se o bloco bloqueia totalmente a luz.
func (id BlockID) IsOpaque() bool { return id.Info().Opaque }

// IsSemiOpaque reporta se o bloco atenua a luz sem bloqueá-la.
func (id BlockID) IsSemiOpaque() bool { return id.Info().SemiOpaque }

// LightAttenuation retorna o custo de propagação de luz através do voxel e
// se a luz passa. Blocos opacos param a propagação; semi-opacos custam 2
// níveis; vazio custa 1.
func LightAttenuation(id BlockID) (uint8, bool) {
	info := id.Info()
	switch {
	case info.Opaque:
		return 0, false
	case info.SemiOpaque:
		return 2, true
	default:
		return 1, true
	}
}

// ShowFace decide se a face de `self` voltada para `neighbor` é desenhada.
// Regras:
//   - vizinho vazio: desenha sempre;
//   - tipos idênticos: nunca desenha (interior contíguo);
//   - ambos opacos: nunca desenha (face enterrada);
//   - qualquer outro par (um semi-opaco, ou dois semi-opacos diferentes): desenha.
func ShowFace(self, neighbor BlockID) bool {
	if neighbor == BlockAir {
		return true
	}
	if self == neighbor {
		return false
	}
	if self.Info().Opaque && neighbor.Info().Opaque {
		return false
	}
	return true
}
