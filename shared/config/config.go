package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do VoxelVision.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Mundo
	Seed         int64 `json:"seed"`
	ViewRadius   int32 `json:"view_radius"`   // raio de streaming em chunks
	UnloadRadius int32 `json:"unload_radius"` // além disso o chunk é descartado

	// Pipeline de chunks
	WorkerThreads       int `json:"worker_threads"` // 0 = automático (NumCPU, mínimo 4)
	MaxGeneratePerFrame int `json:"max_generate_per_frame"`
	MaxLightPerFrame    int `json:"max_light_per_frame"`
	MaxMeshPerFrame     int `json:"max_mesh_per_frame"`
	MaxApplyPerFrame    int `json:"max_apply_per_frame"`

	// Câmera
	CameraSpeed       float32 `json:"camera_speed"`
	CameraSensitivity float32 `json:"camera_sensitivity"`
	ZoomSpeed         float32 `json:"zoom_speed"`
	FOV               float32 `json:"fov"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	WireframeMode bool `json:"wireframe_mode"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "VoxelVision",
		Fullscreen:   false,
		TargetFPS:    60,

		Seed:         42,
		ViewRadius:   8,
		UnloadRadius: 10,

		WorkerThreads:       0,
		MaxGeneratePerFrame: 2,
		MaxLightPerFrame:    2,
		MaxMeshPerFrame:     2,
		MaxApplyPerFrame:    4,

		CameraSpeed:       50.0,
		CameraSensitivity: 0.3,
		ZoomSpeed:         10.0,
		FOV:               60.0,

		ShowDebugInfo: true,
		WireframeMode: false,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
