package world

import (
	"testing"

	"VoxelVision/shared/util"
)

// flatGen gera um mundo mínimo: bedrock em y=0 e pedra em y=1.
type flatGen struct{}

func (flatGen) Generate(c *Chunk) {
	for z := int32(0); z < ChunkSize; z++ {
		for x := int32(0); x < ChunkSize; x++ {
			c.SetBlock(x, 0, z, BlockBedrock)
			c.SetBlock(x, 1, z, BlockStone)
		}
	}
}

func (flatGen) SurfaceHeight(wx, wz int32) int32 { return 1 }

type countingApplier struct {
	applies  int
	releases int
}

func (a *countingApplier) Apply(coord util.ChunkCoord, data *MeshData) { a.applies++ }
func (a *countingApplier) Release(coord util.ChunkCoord)               { a.releases++ }

func newFlatStore(applier MeshApplier) *ChunkStore {
	return NewChunkStore(StoreOptions{
		ViewRadius:   2,
		UnloadRadius: 4,
		Workers:      1,
	}, flatGen{}, applier)
}

// Um chunk descartado e recriado na mesma coordenada é outra encarnação;
// resultados do worker da encarnação antiga não podem tocá-la.
func TestOrphanResultIsDiscardedAfterRecreation(t *testing.T) {
	s := newFlatStore(nil)
	defer s.Stop()

	coord := util.NewChunkCoord(0, 0)
	key := coord.Packed()

	// Primeira encarnação: worker de geração em andamento.
	old := s.GetChunk(coord)
	old.State = StateGenerating
	s.inflight[key] = stageGenerate

	// Descarte com o worker ainda rodando (o purge solta o in-flight).
	s.mu.Lock()
	delete(s.chunks, key)
	s.mu.Unlock()
	delete(s.inflight, key)

	// Nova encarnação na mesma coordenada, com worker próprio.
	cur := s.GetChunk(coord)
	cur.State = StateGenerating
	s.inflight[key] = stageGenerate

	// O resultado da encarnação antiga chega primeiro: ignorado, sem
	// avançar estado nem soltar o in-flight do worker atual.
	s.handleResult(taskResult{coord: coord, chunk: old, stage: stageGenerate})
	if cur.State != StateGenerating {
		t.Fatalf("resultado órfão avançou a nova encarnação para %s", cur.State)
	}
	if !s.isInflight(key) {
		t.Fatal("resultado órfão removeu o in-flight do worker atual")
	}

	// O resultado da encarnação atual conclui normalmente.
	s.handleResult(taskResult{coord: coord, chunk: cur, stage: stageGenerate})
	if cur.State != StateGenerated {
		t.Fatalf("estado %s, esperado GENERATED", cur.State)
	}
	if s.isInflight(key) {
		t.Fatal("in-flight deveria ter sido liberado")
	}
}

func TestOrphanMeshIsNeverApplied(t *testing.T) {
	applier := &countingApplier{}
	s := newFlatStore(applier)
	defer s.Stop()

	coord := util.NewChunkCoord(0, 0)
	key := coord.Packed()

	old := s.GetChunk(coord)
	old.State = StateMeshing
	s.inflight[key] = stageMesh
	s.pendingMesh.Push(applyJob{coord: coord, chunk: old, mesh: &MeshData{}})

	// Descarte e recriação antes da fila de aplicação drenar.
	s.mu.Lock()
	delete(s.chunks, key)
	s.mu.Unlock()
	delete(s.inflight, key)

	cur := s.GetChunk(coord)
	cur.State = StateMeshing
	s.inflight[key] = stageMesh

	s.applyPendingMeshes()
	if applier.applies != 0 {
		t.Fatal("malha órfã foi aplicada")
	}
	if cur.State != StateMeshing {
		t.Fatalf("malha órfã mudou o estado para %s", cur.State)
	}
	if !s.isInflight(key) {
		t.Fatal("aplicação órfã soltou o in-flight do worker atual")
	}
}

// Enquanto um worker detém os buffers do chunk, edições são adiadas e
// aplicadas em ordem quando ele libera.
func TestEditDeferredWhileChunkInflight(t *testing.T) {
	s := newFlatStore(nil)
	defer s.Stop()

	coord := util.NewChunkCoord(0, 0)
	key := coord.Packed()
	c := s.GetChunkNow(coord)

	s.inflight[key] = stageLight
	s.SetBlock(5, 10, 5, BlockGlass)
	if c.Block(5, 10, 5) == BlockGlass {
		t.Fatal("edição aplicada com worker ativo no chunk")
	}
	if c.Dirty || c.LightDirty {
		t.Fatal("flags marcadas antes da edição ser aplicada")
	}

	// Segunda edição no mesmo voxel entra atrás da primeira.
	s.SetBlock(5, 10, 5, BlockSand)

	delete(s.inflight, key)
	s.flushPendingEdits()
	if got := c.Block(5, 10, 5); got != BlockSand {
		t.Fatalf("edições aplicadas fora de ordem: ficou %s", got.Info().Name)
	}
	if !c.Dirty || !c.LightDirty {
		t.Fatal("edição aplicada deveria marcar Dirty e LightDirty")
	}
	if len(s.edits) != 0 {
		t.Fatalf("fila de edições deveria esvaziar, restam %d", len(s.edits))
	}
}

// O mesher de um vizinho lê nossos voxels e luz de borda; edições também
// esperam ele terminar.
func TestEditDeferredWhileNeighborMeshes(t *testing.T) {
	s := newFlatStore(nil)
	defer s.Stop()

	coord := util.NewChunkCoord(0, 0)
	c := s.GetChunkNow(coord)
	east := s.GetChunkNow(util.NewChunkCoord(1, 0))
	eastKey := east.Coord.Packed()

	s.inflight[eastKey] = stageMesh
	s.SetBlock(15, 10, 8, BlockGlass) // borda leste
	if c.Block(15, 10, 8) == BlockGlass {
		t.Fatal("edição aplicada enquanto o vizinho estava em meshing")
	}

	delete(s.inflight, eastKey)
	s.flushPendingEdits()
	if c.Block(15, 10, 8) != BlockGlass {
		t.Fatal("edição adiada nunca foi aplicada")
	}
	if !east.Dirty || !east.LightDirty {
		t.Fatal("edição na borda deveria marcar o vizinho inteiro como stale")
	}
}
