package camera

import (
	"math"

	"VoxelVision/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraController gerencia a lógica de movimentação e projeção da câmera.
// Câmera orbital com alvo suavizado: o ponto observado interpola até o
// destino e o zoom afeta a velocidade de deslocamento.
type CameraController struct {
	// Estado interno do Raylib
	RLCamera rl.Camera3D

	// Configurações
	MinZoom      float32
	MaxZoom      float32
	MoveSpeed    float32
	RotateSpeed  float32
	ZoomSpeed    float32
	SmoothFactor float32 // 0.0 a 1.0 (quanto menor, mais suave/lento)

	// Estado Alvo (para interpolação suave)
	TargetLookAt rl.Vector3 // Para onde a câmera quer olhar (ponto central)
	TargetZoom   float32    // Zoom desejado
	TargetAngleY float32    // Rotação horizontal atual (radianos)
	TargetAngleX float32    // Elevação atual (radianos)

	// Estado Atual (interpolado)
	CurrentLookAt rl.Vector3
	CurrentZoom   float32
}

// New cria um novo controlador de câmera.
func New(fov float32) *CameraController {
	c := &CameraController{
		MinZoom:      5.0,
		MaxZoom:      200.0,
		MoveSpeed:    50.0,
		RotateSpeed:  2.0,
		ZoomSpeed:    10.0,
		SmoothFactor: 0.1, // Ajuste fino para sensação de peso

		TargetLookAt: rl.Vector3{X: 0, Y: 0, Z: 0},
		TargetZoom:   40.0,
		TargetAngleY: 45.0 * rl.Deg2rad,  // padrão isométrico
		TargetAngleX: -30.0 * rl.Deg2rad, // olhando de cima
	}

	// Inicializa os valores atuais com os alvos para não "saltar" no início
	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       fov,
		Projection: rl.CameraPerspective,
	}

	c.recalc()
	return c
}

// SetTarget define o ponto observado imediatamente (sem suavização).
func (c *CameraController) SetTarget(pos rl.Vector3) {
	c.TargetLookAt = pos
	c.CurrentLookAt = pos
	c.recalc()
}

// Update calcula a nova posição da câmera com base no tempo (dt).
// Deve ser chamado a cada frame.
func (c *CameraController) Update(dt float32) {
	// Amortecimento linear normalizado para 60 FPS.
	factor := c.SmoothFactor * 60.0 * dt
	if factor > 1.0 {
		factor = 1.0
	}

	curVec := mgl32.Vec3{c.CurrentLookAt.X, c.CurrentLookAt.Y, c.CurrentLookAt.Z}
	tgtVec := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}
	lerped := curVec.Add(tgtVec.Sub(curVec).Mul(factor))

	c.CurrentLookAt = rl.Vector3{X: lerped.X(), Y: lerped.Y(), Z: lerped.Z()}
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)

	c.recalc()
}

// recalc recalcula a posição da câmera a partir dos ângulos e zoom atuais
// (conversão esférica para cartesiana).
func (c *CameraController) recalc() {
	dist := c.CurrentZoom

	cosX := float32(math.Cos(float64(c.TargetAngleX)))
	sinX := float32(math.Sin(float64(c.TargetAngleX)))
	cosY := float32(math.Cos(float64(c.TargetAngleY)))
	sinY := float32(math.Sin(float64(c.TargetAngleY)))

	offsetX := dist * cosX * sinY
	offsetY := dist * -sinX // sinX negativo pois olhamos de cima para baixo
	offsetZ := dist * cosX * cosY

	c.RLCamera.Position = rl.Vector3{
		X: c.CurrentLookAt.X + offsetX,
		Y: c.CurrentLookAt.Y + offsetY,
		Z: c.CurrentLookAt.Z + offsetZ,
	}
	c.RLCamera.Target = c.CurrentLookAt
}

// Forward retorna a direção de visão atual normalizada.
func (c *CameraController) Forward() mgl32.Vec3 {
	pos := mgl32.Vec3{c.RLCamera.Position.X, c.RLCamera.Position.Y, c.RLCamera.Position.Z}
	tgt := mgl32.Vec3{c.RLCamera.Target.X, c.RLCamera.Target.Y, c.RLCamera.Target.Z}
	return tgt.Sub(pos).Normalize()
}

// HandleInput processa entrada do usuário. Retorna true se houve input de
// movimento.
func (c *CameraController) HandleInput(dt float32) bool {
	moved := false

	// Zoom com Scroll
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		moved = true
		c.TargetZoom -= wheel * c.ZoomSpeed
		if c.TargetZoom < c.MinZoom {
			c.TargetZoom = c.MinZoom
		}
		if c.TargetZoom > c.MaxZoom {
			c.TargetZoom = c.MaxZoom
		}
	}

	// Rotação com botão do meio (Orbit); esquerdo/direito editam blocos.
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			moved = true
		}
		c.TargetAngleY -= delta.X * c.RotateSpeed * 0.005
		c.TargetAngleX -= delta.Y * c.RotateSpeed * 0.005

		// Clamp na elevação para não virar a câmera de ponta cabeça
		maxElev := -5.0 * rl.Deg2rad
		minElev := -89.0 * rl.Deg2rad
		if c.TargetAngleX > float32(maxElev) {
			c.TargetAngleX = float32(maxElev)
		}
		if c.TargetAngleX < float32(minElev) {
			c.TargetAngleX = float32(minElev)
		}
	}

	// Movimento WASD relativo à câmera, projetado no plano XZ.
	camPos := mgl32.Vec3{c.RLCamera.Position.X, c.RLCamera.Position.Y, c.RLCamera.Position.Z}
	targetPos := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}

	forward := targetPos.Sub(camPos)
	forward[1] = 0
	forward = forward.Normalize()

	upVec := mgl32.Vec3{0, 1, 0}
	right := forward.Cross(upVec).Normalize()

	// Quanto mais longe o zoom, mais rápido o deslocamento.
	currentSpeed := c.MoveSpeed * (c.CurrentZoom / 50.0) * dt

	move := mgl32.Vec3{0, 0, 0}
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(right)
	}
	if rl.IsKeyDown(rl.KeyE) {
		move = move.Add(upVec)
	}
	if rl.IsKeyDown(rl.KeyQ) {
		move = move.Sub(upVec)
	}

	if move.Len() > 0 {
		move = move.Normalize().Mul(currentSpeed)
		targetPos = targetPos.Add(move)
		c.TargetLookAt = rl.Vector3{X: targetPos.X(), Y: targetPos.Y(), Z: targetPos.Z()}
		moved = true
	}

	return moved
}
