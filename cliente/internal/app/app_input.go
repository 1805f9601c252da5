package app

import (
	"math"

	"VoxelVision/shared/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Alcance máximo de edição, em voxels.
const editReach = 96.0

// handleEditInput atualiza o voxel selecionado sob o cursor e aplica
// edições: botão esquerdo quebra, direito coloca o bloco da paleta.
func (a *App) handleEditInput() {
	// Teclas de paleta.
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		a.placeBlock = world.BlockStone
	case rl.IsKeyPressed(rl.KeyTwo):
		a.placeBlock = world.BlockDirt
	case rl.IsKeyPressed(rl.KeyThree):
		a.placeBlock = world.BlockSand
	case rl.IsKeyPressed(rl.KeyFour):
		a.placeBlock = world.BlockGlass
	case rl.IsKeyPressed(rl.KeyFive):
		a.placeBlock = world.BlockOakLog
	}

	if rl.IsKeyPressed(rl.KeyF3) {
		a.Cfg.ShowDebugInfo = !a.Cfg.ShowDebugInfo
	}
	if rl.IsKeyPressed(rl.KeyF4) {
		a.Renderer.Wireframe = !a.Renderer.Wireframe
	}

	ray := rl.GetMouseRay(rl.GetMousePosition(), a.Camera.RLCamera)
	origin := mgl32.Vec3{ray.Position.X, ray.Position.Y, ray.Position.Z}
	dir := mgl32.Vec3{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}

	hit, prev, ok := a.raycastVoxel(origin, dir, editReach)
	a.selX, a.selY, a.selZ = hit[0], hit[1], hit[2]
	a.selOK = ok
	if !ok {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Store.SetBlock(hit[0], hit[1], hit[2], world.BlockAir)
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		// Coloca no voxel vazio atravessado antes do impacto.
		if a.Store.BlockAt(prev[0], prev[1], prev[2]) == world.BlockAir {
			a.Store.SetBlock(prev[0], prev[1], prev[2], a.placeBlock)
		}
	}
}

// raycastVoxel caminha o raio voxel a voxel (DDA em grade) até acertar um
// bloco sólido ou esgotar o alcance. Retorna o voxel atingido e o último
// voxel vazio atravessado antes dele.
func (a *App) raycastVoxel(origin, dir mgl32.Vec3, maxDist float32) (hit, prev [3]int32, ok bool) {
	const inf = float32(math.MaxFloat32)

	x := int32(math.Floor(float64(origin.X())))
	y := int32(math.Floor(float64(origin.Y())))
	z := int32(math.Floor(float64(origin.Z())))
	prev = [3]int32{x, y, z}

	stepOf := func(d float32) int32 {
		switch {
		case d > 0:
			return 1
		case d < 0:
			return -1
		}
		return 0
	}
	deltaOf := func(d float32) float32 {
		if d == 0 {
			return inf
		}
		return float32(math.Abs(float64(1.0 / d)))
	}
	firstOf := func(p, d float32, s int32) float32 {
		if s == 0 {
			return inf
		}
		fl := float32(math.Floor(float64(p)))
		if s > 0 {
			return (fl + 1.0 - p) / d
		}
		return (p - fl) / -d
	}

	sx, sy, sz := stepOf(dir.X()), stepOf(dir.Y()), stepOf(dir.Z())
	if sx == 0 && sy == 0 && sz == 0 {
		return hit, prev, false
	}
	dx, dy, dz := deltaOf(dir.X()), deltaOf(dir.Y()), deltaOf(dir.Z())
	tx := firstOf(origin.X(), dir.X(), sx)
	ty := firstOf(origin.Y(), dir.Y(), sy)
	tz := firstOf(origin.Z(), dir.Z(), sz)

	for t := float32(0); t <= maxDist; {
		if a.Store.BlockAt(x, y, z).Info().Solid {
			return [3]int32{x, y, z}, prev, true
		}
		prev = [3]int32{x, y, z}

		switch {
		case tx <= ty && tx <= tz:
			x += sx
			t = tx
			tx += dx
		case ty <= tz:
			y += sy
			t = ty
			ty += dy
		default:
			z += sz
			t = tz
			tz += dz
		}
	}
	return hit, prev, false
}
