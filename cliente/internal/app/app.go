package app

import (
	"log"
	"runtime"

	"VoxelVision/cliente/internal/camera"
	"VoxelVision/cliente/internal/render"
	"VoxelVision/shared/config"
	"VoxelVision/shared/world"
	"VoxelVision/shared/worldgen"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// App amarra os subsistemas do viewer: gerador, store de chunks, renderer e
// câmera. Update e Draw rodam uma vez por frame na thread principal.
type App struct {
	Cfg      *config.Config
	Gen      *worldgen.Generator
	Store    *world.ChunkStore
	Renderer *render.Renderer
	Camera   *camera.CameraController

	// Voxel sob o cursor neste frame.
	selX, selY, selZ int32
	selOK            bool

	placeBlock world.BlockID
}

// New monta a aplicação a partir da configuração.
func New(cfg *config.Config) *App {
	gen := worldgen.New(cfg.Seed)
	renderer := render.NewRenderer()

	workers := cfg.WorkerThreads
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 4 {
			workers = 4
		}
	}

	store := world.NewChunkStore(world.StoreOptions{
		ViewRadius:          cfg.ViewRadius,
		UnloadRadius:        cfg.UnloadRadius,
		Workers:             workers,
		MaxGeneratePerFrame: cfg.MaxGeneratePerFrame,
		MaxLightPerFrame:    cfg.MaxLightPerFrame,
		MaxMeshPerFrame:     cfg.MaxMeshPerFrame,
		MaxApplyPerFrame:    cfg.MaxApplyPerFrame,
	}, gen, renderer)

	cam := camera.New(cfg.FOV)
	cam.MoveSpeed = cfg.CameraSpeed
	cam.RotateSpeed = cfg.CameraSensitivity * 6.0
	cam.ZoomSpeed = cfg.ZoomSpeed

	// Começa olhando para o centro da plataforma de spawn.
	h := gen.SurfaceHeight(0, 0)
	cam.SetTarget(rl.Vector3{X: 0.5, Y: float32(h) + 1.0, Z: 0.5})

	renderer.Wireframe = cfg.WireframeMode

	log.Printf("[App] Mundo seed=%d, spawn em y=%d, %d workers", cfg.Seed, h, workers)

	return &App{
		Cfg:        cfg,
		Gen:        gen,
		Store:      store,
		Renderer:   renderer,
		Camera:     cam,
		placeBlock: world.BlockStone,
	}
}

// Update processa input, avança a câmera e dá um passo no streaming.
func (a *App) Update(dt float32) {
	a.Camera.HandleInput(dt)
	a.Camera.Update(dt)
	a.handleEditInput()

	// O observador do streaming é o ponto que a câmera olha, não a posição
	// física dela (que se afasta com o zoom).
	look := a.Camera.CurrentLookAt
	a.Store.Update(look.X, look.Z)
}

// Shutdown para os workers e libera a GPU.
func (a *App) Shutdown() {
	a.Store.Stop()
	a.Renderer.Unload()
	log.Printf("[App] Encerrado")
}
