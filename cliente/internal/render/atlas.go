package render

import (
	"image"
	"image/color"

	"VoxelVision/shared/world"
)

// Atlas procedural: o viewer não depende de arquivos de textura. Cada tile
// da grade (world.AtlasCols x world.AtlasRows) recebe uma cor base com um
// ruído determinístico por pixel, e os tiles de minério ganham "pintas" da
// cor do minério sobre a base de pedra.

const atlasTilePx = 16

type tileStyle struct {
	base  color.RGBA
	speck color.RGBA // cor das pintas; alpha 0 = sem pintas
}

// Tiles de grama, folhas e água são quase acromáticos de propósito: a
// tintura de bioma é aplicada por vértice pelo mesher.
var tileStyles = map[uint8]tileStyle{
	1:  {base: color.RGBA{130, 130, 130, 255}},                                      // pedra
	2:  {base: color.RGBA{134, 96, 67, 255}},                                        // terra
	3:  {base: color.RGBA{220, 220, 220, 255}},                                      // topo de grama (tintado)
	4:  {base: color.RGBA{120, 96, 66, 255}, speck: color.RGBA{98, 140, 70, 255}},   // lateral de grama
	5:  {base: color.RGBA{218, 210, 158, 255}},                                      // areia
	6:  {base: color.RGBA{136, 126, 126, 255}, speck: color.RGBA{96, 90, 90, 255}},  // cascalho
	7:  {base: color.RGBA{240, 248, 250, 255}},                                      // neve
	8:  {base: color.RGBA{60, 60, 60, 255}, speck: color.RGBA{30, 30, 30, 255}},     // bedrock
	9:  {base: color.RGBA{235, 240, 248, 255}},                                      // água (tintada)
	10: {base: color.RGBA{207, 92, 20, 255}, speck: color.RGBA{255, 180, 40, 255}},  // lava
	11: {base: color.RGBA{101, 77, 48, 255}},                                        // tronco lateral
	12: {base: color.RGBA{151, 121, 73, 255}},                                       // tronco topo
	13: {base: color.RGBA{205, 210, 205, 255}},                                      // folhas (tintadas)
	14: {base: color.RGBA{218, 232, 238, 255}},                                      // vidro
	15: {base: color.RGBA{130, 130, 130, 255}, speck: color.RGBA{40, 40, 40, 255}},  // carvão
	16: {base: color.RGBA{130, 130, 130, 255}, speck: color.RGBA{216, 175, 147, 255}}, // ferro
	17: {base: color.RGBA{130, 130, 130, 255}, speck: color.RGBA{252, 238, 75, 255}},  // ouro
	18: {base: color.RGBA{130, 130, 130, 255}, speck: color.RGBA{93, 236, 245, 255}},  // diamante
}

// BuildAtlasImage gera a imagem RGBA do atlas. Função pura: a mesma saída
// em qualquer execução.
func BuildAtlasImage() *image.RGBA {
	w := world.AtlasCols * atlasTilePx
	h := world.AtlasRows * atlasTilePx
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for tile := 0; tile < world.AtlasCols*world.AtlasRows; tile++ {
		style, ok := tileStyles[uint8(tile)]
		if !ok {
			// Tile sem estilo: magenta de debug, fácil de ver no mundo.
			style = tileStyle{base: color.RGBA{255, 0, 255, 255}}
		}
		ox := (tile % world.AtlasCols) * atlasTilePx
		oy := (tile / world.AtlasCols) * atlasTilePx

		for py := 0; py < atlasTilePx; py++ {
			for px := 0; px < atlasTilePx; px++ {
				c := style.base
				n := pixelNoise(tile, px, py)

				if style.speck.A > 0 && n%7 == 0 {
					c = style.speck
				} else {
					// Variação sutil de brilho por pixel.
					d := int16(n%13) - 6
					c = color.RGBA{
						R: clampByte(int16(c.R) + d),
						G: clampByte(int16(c.G) + d),
						B: clampByte(int16(c.B) + d),
						A: c.A,
					}
				}
				img.SetRGBA(ox+px, oy+py, c)
			}
		}
	}
	return img
}

func pixelNoise(tile, px, py int) uint32 {
	h := uint32(tile)*2654435761 ^ uint32(px)*40503 ^ uint32(py)*70423
	h ^= h >> 13
	h *= 0x5BD1E995
	h ^= h >> 15
	return h
}

func clampByte(v int16) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
