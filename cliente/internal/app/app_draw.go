package app

import (
	"fmt"

	"VoxelVision/cliente/internal/render"
	"VoxelVision/shared/util"
	"VoxelVision/shared/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var skyColor = rl.NewColor(120, 167, 255, 255)

// Draw renderiza o frame: mundo em 3D e HUD por cima.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	rl.BeginMode3D(a.Camera.RLCamera)
	a.Renderer.Draw(a.Camera.RLCamera)
	if a.selOK {
		render.DrawSelection(a.selX, a.selY, a.selZ)
	}
	rl.EndMode3D()

	if a.Cfg.ShowDebugInfo {
		a.drawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	rl.DrawFPS(10, 10)

	look := a.Camera.CurrentLookAt
	coord, _, _ := util.WorldToChunk(int32(look.X), int32(look.Z))
	counts := a.Store.CountByState()

	lines := []string{
		fmt.Sprintf("chunk (%d,%d)  pos (%.0f, %.0f, %.0f)", coord.X, coord.Z, look.X, look.Y, look.Z),
		fmt.Sprintf("residentes %d  prontos %d  in-flight %d  modelos %d",
			a.Store.Len(), counts[world.StateReady], a.Store.InflightCount(), a.Renderer.ModelCount()),
		fmt.Sprintf("bloco na mao: %s  (1-5 troca, Esq quebra, Dir coloca)", a.placeBlock.Info().Name),
	}
	if a.selOK {
		lines = append(lines, fmt.Sprintf("mira: (%d, %d, %d) %s  luz %d",
			a.selX, a.selY, a.selZ,
			a.Store.BlockAt(a.selX, a.selY, a.selZ).Info().Name,
			a.Store.SkyLightAt(a.selX, a.selY+1, a.selZ)))
	}

	y := int32(36)
	for _, line := range lines {
		rl.DrawText(line, 11, y+1, 18, rl.Black)
		rl.DrawText(line, 10, y, 18, rl.RayWhite)
		y += 22
	}
}
