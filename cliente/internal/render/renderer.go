package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"log"
	"math"
	"sync"
	"unsafe"

	"VoxelVision/shared/util"
	"VoxelVision/shared/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// ChunkModel guarda os modelos de GPU de um chunk: um para o pass opaco e
// um para o transparente (água, vidro).
type ChunkModel struct {
	Coord          util.ChunkCoord
	Opaque         rl.Model
	Transparent    rl.Model
	HasOpaque      bool
	HasTransparent bool
}

// Renderer é o lado de GPU do streaming: recebe malhas prontas do store
// (interface world.MeshApplier) e as desenha. Todos os métodos devem rodar
// na thread principal; o mutex só protege leituras do HUD.
type Renderer struct {
	mu     sync.RWMutex
	Models map[uint64]*ChunkModel

	Atlas     rl.Texture2D
	hasAtlas  bool
	Wireframe bool
}

// NewRenderer cria o renderizador e, se a janela já existe, gera e sobe o
// atlas procedural.
func NewRenderer() *Renderer {
	r := &Renderer{
		Models: make(map[uint64]*ChunkModel),
	}

	if rl.IsWindowReady() {
		img := BuildAtlasImage()
		rlImg := rl.NewImageFromImage(img)
		r.Atlas = rl.LoadTextureFromImage(rlImg)
		rl.UnloadImage(rlImg)
		rl.SetTextureFilter(r.Atlas, rl.FilterPoint)
		r.hasAtlas = true
		log.Printf("[Renderer] Atlas procedural %dx%d carregado",
			img.Bounds().Dx(), img.Bounds().Dy())
	}

	return r
}

// Apply implementa world.MeshApplier: sobe a malha do chunk para a GPU,
// substituindo a versão anterior. Malha vazia apenas descarta a antiga.
func (r *Renderer) Apply(coord util.ChunkCoord, data *world.MeshData) {
	if !rl.IsWindowReady() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := coord.Packed()
	if old, ok := r.Models[key]; ok {
		unloadChunkModel(old)
		delete(r.Models, key)
	}

	if data == nil || data.Empty() {
		return
	}

	cm := &ChunkModel{Coord: coord}
	if len(data.Opaque.Indices) > 0 {
		cm.Opaque = r.uploadGeometry(&data.Opaque)
		cm.HasOpaque = true
	}
	if len(data.Transparent.Indices) > 0 {
		cm.Transparent = r.uploadGeometry(&data.Transparent)
		cm.HasTransparent = true
	}
	r.Models[key] = cm
}

// Release implementa world.MeshApplier: descarta o modelo de um chunk que
// saiu do raio de streaming.
func (r *Renderer) Release(coord util.ChunkCoord) {
	if !rl.IsWindowReady() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := coord.Packed()
	if cm, ok := r.Models[key]; ok {
		unloadChunkModel(cm)
		delete(r.Models, key)
	}
}

func (r *Renderer) uploadGeometry(geo *world.Geometry) rl.Model {
	mesh := geometryToMesh(geo)
	rl.UploadMesh(&mesh, false)
	freeMeshRAM(&mesh)
	model := rl.LoadModelFromMesh(mesh)
	if r.hasAtlas && model.MaterialCount > 0 {
		materials := unsafe.Slice(model.Materials, model.MaterialCount)
		rl.SetMaterialTexture(&materials[0], rl.MapDiffuse, r.Atlas)
	}
	return model
}

// geometryToMesh converte os buffers indexados do mesher em uma rl.Mesh não
// indexada (raylib usa índices de 16 bits; expandir evita overflow em
// chunks muito densos). Os buffers vão para memória C, liberada após o
// upload.
func geometryToMesh(geo *world.Geometry) rl.Mesh {
	idxCount := len(geo.Indices)
	verts := make([]float32, 0, idxCount*3)
	normals := make([]float32, 0, idxCount*3)
	uvs := make([]float32, 0, idxCount*2)
	colors := make([]uint8, 0, idxCount*4)

	for _, idx := range geo.Indices {
		vi := int(idx) * 3
		verts = append(verts, geo.Vertices[vi], geo.Vertices[vi+1], geo.Vertices[vi+2])
		normals = append(normals, geo.Normals[vi], geo.Normals[vi+1], geo.Normals[vi+2])
		ti := int(idx) * 2
		uvs = append(uvs, geo.UVs[ti], geo.UVs[ti+1])
		ci := int(idx) * 4
		colors = append(colors, geo.Colors[ci], geo.Colors[ci+1], geo.Colors[ci+2], geo.Colors[ci+3])
	}

	var mesh rl.Mesh
	mesh.VertexCount = int32(idxCount)
	mesh.TriangleCount = int32(idxCount / 3)
	if idxCount > 0 {
		mesh.Vertices = (*float32)(copyToC(unsafe.Pointer(&verts[0]), len(verts)*4))
		mesh.Normals = (*float32)(copyToC(unsafe.Pointer(&normals[0]), len(normals)*4))
		mesh.Texcoords = (*float32)(copyToC(unsafe.Pointer(&uvs[0]), len(uvs)*4))
		mesh.Colors = (*uint8)(copyToC(unsafe.Pointer(&colors[0]), len(colors)))
	}
	return mesh
}

func copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	cSlice := unsafe.Slice((*byte)(ptr), size)
	goSlice := unsafe.Slice((*byte)(data), size)
	copy(cSlice, goSlice)
	return ptr
}

// freeMeshRAM libera a cópia em RAM após o upload para a GPU.
func freeMeshRAM(mesh *rl.Mesh) {
	if mesh.Vertices != nil {
		C.free(unsafe.Pointer(mesh.Vertices))
		mesh.Vertices = nil
	}
	if mesh.Normals != nil {
		C.free(unsafe.Pointer(mesh.Normals))
		mesh.Normals = nil
	}
	if mesh.Colors != nil {
		C.free(unsafe.Pointer(mesh.Colors))
		mesh.Colors = nil
	}
	if mesh.Texcoords != nil {
		C.free(unsafe.Pointer(mesh.Texcoords))
		mesh.Texcoords = nil
	}
}

func unloadChunkModel(cm *ChunkModel) {
	if cm.HasOpaque {
		rl.UnloadModel(cm.Opaque)
	}
	if cm.HasTransparent {
		rl.UnloadModel(cm.Transparent)
	}
}

// Draw desenha os chunks visíveis em dois passes: opaco primeiro, depois
// transparente com blend, para a água compor certo sobre o terreno.
func (r *Renderer) Draw(camera3d rl.Camera3D) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// PASS 1: OPACO
	for _, cm := range r.Models {
		if !cm.HasOpaque || !IsChunkVisible(camera3d, cm.Coord) {
			continue
		}
		r.drawModel(cm.Opaque, chunkOrigin(cm.Coord))
	}

	// PASS 2: TRANSPARENTE
	rl.BeginBlendMode(rl.BlendAlpha)
	for _, cm := range r.Models {
		if !cm.HasTransparent || !IsChunkVisible(camera3d, cm.Coord) {
			continue
		}
		r.drawModel(cm.Transparent, chunkOrigin(cm.Coord))
	}
	rl.EndBlendMode()
}

func (r *Renderer) drawModel(m rl.Model, pos rl.Vector3) {
	if r.Wireframe {
		rl.DrawModelWires(m, pos, 1.0, rl.White)
		return
	}
	rl.DrawModel(m, pos, 1.0, rl.White)
}

func chunkOrigin(coord util.ChunkCoord) rl.Vector3 {
	return rl.Vector3{
		X: float32(coord.X * world.ChunkSize),
		Y: 0,
		Z: float32(coord.Z * world.ChunkSize),
	}
}

// IsChunkVisible faz um teste de cone barato: chunks perto da câmera passam
// sempre; os demais precisam estar dentro do campo de visão alargado.
func IsChunkVisible(camera3d rl.Camera3D, coord util.ChunkCoord) bool {
	center := mgl32.Vec3{
		float32(coord.X*world.ChunkSize) + world.ChunkSize/2,
		float32(world.WorldHeight) / 4,
		float32(coord.Z*world.ChunkSize) + world.ChunkSize/2,
	}
	camPos := mgl32.Vec3{camera3d.Position.X, camera3d.Position.Y, camera3d.Position.Z}
	camTgt := mgl32.Vec3{camera3d.Target.X, camera3d.Target.Y, camera3d.Target.Z}

	toChunk := center.Sub(camPos)
	dist := toChunk.Len()
	if dist < world.ChunkSize*3 {
		return true
	}

	forward := camTgt.Sub(camPos)
	if forward.Len() == 0 {
		return true
	}

	// Meio FOV com folga de 50% cobre as bordas da tela e a diagonal do chunk.
	halfFov := float64(camera3d.Fovy) * rl.Deg2rad * 0.75
	cos := toChunk.Normalize().Dot(forward.Normalize())
	return float64(cos) > math.Cos(halfFov)
}

// DrawSelection desenha um cubo de destaque no voxel selecionado.
func DrawSelection(wx, wy, wz int32) {
	pos := rl.Vector3{
		X: float32(wx) + 0.5,
		Y: float32(wy) + 0.5,
		Z: float32(wz) + 0.5,
	}
	rl.DrawCubeWires(pos, 1.01, 1.01, 1.01, rl.Yellow)
}

// ModelCount retorna quantos chunks têm modelo na GPU (para o HUD).
func (r *Renderer) ModelCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Models)
}

// Unload libera todos os modelos e o atlas.
func (r *Renderer) Unload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cm := range r.Models {
		unloadChunkModel(cm)
	}
	r.Models = make(map[uint64]*ChunkModel)
	if r.hasAtlas {
		rl.UnloadTexture(r.Atlas)
		r.hasAtlas = false
	}
}
