package world

import (
	"log"
	"sync"

	"VoxelVision/shared/util"
)

// Generator produz o conteúdo de um chunk. Implementações devem ser funções
// puras de (seed, coordenadas): gerar o mesmo chunk duas vezes produz
// exatamente os mesmos voxels.
type Generator interface {
	Generate(c *Chunk)
	SurfaceHeight(wx, wz int32) int32
}

// MeshApplier recebe malhas prontas na thread principal. O renderer
// implementa isso fazendo upload para a GPU; testes usam um stub.
type MeshApplier interface {
	Apply(coord util.ChunkCoord, data *MeshData)
	Release(coord util.ChunkCoord)
}

// StoreOptions configura o streaming de chunks.
type StoreOptions struct {
	ViewRadius   int32 // raio de chunks visíveis ao redor do observador
	UnloadRadius int32 // além disso o chunk é descartado
	Workers      int

	// Tetos por frame de cada estágio, para espalhar o custo.
	MaxGeneratePerFrame int
	MaxLightPerFrame    int
	MaxMeshPerFrame     int
	MaxApplyPerFrame    int

	// Quantos chunks podem ser descartados por frame (evita stutter).
	MaxPurgePerFrame int
}

func (o StoreOptions) withDefaults() StoreOptions {
	if o.ViewRadius <= 0 {
		o.ViewRadius = 8
	}
	if o.UnloadRadius <= o.ViewRadius {
		o.UnloadRadius = o.ViewRadius + 2
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.MaxGeneratePerFrame <= 0 {
		o.MaxGeneratePerFrame = 2
	}
	if o.MaxLightPerFrame <= 0 {
		o.MaxLightPerFrame = 2
	}
	if o.MaxMeshPerFrame <= 0 {
		o.MaxMeshPerFrame = 2
	}
	if o.MaxApplyPerFrame <= 0 {
		o.MaxApplyPerFrame = 4
	}
	if o.MaxPurgePerFrame <= 0 {
		o.MaxPurgePerFrame = 4
	}
	return o
}

type applyJob struct {
	coord util.ChunkCoord
	chunk *Chunk
	redo  bool
	mesh  *MeshData
}

// pendingEdit é uma edição adiada porque um worker detinha os buffers do
// chunk (ou um vizinho estava em meshing, que lê nossas bordas) no momento
// do SetBlock. Aplicada na thread principal assim que o chunk liberar.
type pendingEdit struct {
	wx, wy, wz int32
	id         BlockID
}

// ChunkStore é o dono de todos os chunks residentes e o scheduler do
// pipeline EMPTY → GENERATING → GENERATED → LIGHTING → LIGHTED → MESHING →
// READY.
//
// Modelo de threads: Update, SetBlock e as consultas rodam na thread
// principal. Workers só tocam os buffers do chunk da sua task (mais leituras
// nos vizinhos para meshing); toda transição de estado acontece na thread
// principal ao drenar resultados. O conjunto in-flight garante no máximo um
// worker por chunk e serializa relight/remesh de chunks vizinhos.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[uint64]*Chunk

	gen     Generator
	applier MeshApplier
	opts    StoreOptions

	pool        *workerPool
	inflight    map[uint64]taskStage
	pendingMesh *util.ThreadSafeQueue[applyJob]
	purge       *util.UniqueQueue[uint64, util.ChunkCoord]
	spiral      []util.ChunkCoord
	edits       []pendingEdit
}

// NewChunkStore cria o store e inicia o pool de workers.
func NewChunkStore(opts StoreOptions, gen Generator, applier MeshApplier) *ChunkStore {
	opts = opts.withDefaults()
	s := &ChunkStore{
		chunks:      make(map[uint64]*Chunk),
		gen:         gen,
		applier:     applier,
		opts:        opts,
		inflight:    make(map[uint64]taskStage),
		pendingMesh: util.NewThreadSafeQueue[applyJob](),
		purge:       util.NewUniqueQueue[uint64, util.ChunkCoord](),
		// Raio +2: para um chunk na borda do raio de visão chegar a
		// READY, os vizinhos precisam estar LIGHTED, e os vizinhos
		// deles GENERATED.
		spiral: util.SpiralOffsets(opts.ViewRadius + 2),
	}
	s.pool = newWorkerPool(opts.Workers, gen)
	log.Printf("[Store] Iniciado: raio=%d descarte=%d workers=%d",
		opts.ViewRadius, opts.UnloadRadius, opts.Workers)
	return s
}

// Stop encerra os workers. Resultados ainda em trânsito são abandonados.
func (s *ChunkStore) Stop() {
	s.pool.Stop()
}

// Get retorna o chunk residente na coordenada, sem criar.
func (s *ChunkStore) Get(coord util.ChunkCoord) (*Chunk, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chunks[coord.Packed()]
	return c, ok
}

// GetChunk retorna o chunk na coordenada, criando um registro EMPTY se
// necessário. Nunca gera terreno.
func (s *ChunkStore) GetChunk(coord util.ChunkCoord) *Chunk {
	key := coord.Packed()
	s.mu.RLock()
	c, ok := s.chunks[key]
	s.mu.RUnlock()
	if ok {
		return c
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok = s.chunks[key]; ok {
		return c
	}
	c = NewChunk(coord)
	s.chunks[key] = c
	return c
}

// GetChunkNow retorna o chunk com terreno garantido: se ainda EMPTY e sem
// worker ativo, gera sincronamente na hora. Se um worker já está gerando,
// retorna o chunk como está (o chamador confere o estado).
func (s *ChunkStore) GetChunkNow(coord util.ChunkCoord) *Chunk {
	c := s.GetChunk(coord)
	if c.State == StateEmpty && !s.isInflight(coord.Packed()) {
		s.gen.Generate(c)
		c.State = StateGenerated
	}
	return c
}

func (s *ChunkStore) isInflight(key uint64) bool {
	_, ok := s.inflight[key]
	return ok
}

func (s *ChunkStore) inflightStage(key uint64) (taskStage, bool) {
	st, ok := s.inflight[key]
	return st, ok
}

// BlockAt retorna o bloco na coordenada de mundo, gerando o chunk
// sincronamente se preciso. Fora da faixa vertical retorna ar.
func (s *ChunkStore) BlockAt(wx, wy, wz int32) BlockID {
	if wy < 0 || wy >= WorldHeight {
		return BlockAir
	}
	coord, lx, lz := util.WorldToChunk(wx, wz)
	c := s.GetChunkNow(coord)
	if c.State < StateGenerated {
		// Worker ainda gerando; não tocamos nos buffers dele.
		return BlockAir
	}
	return c.Block(lx, wy, lz)
}

// SetBlock grava um bloco por coordenada de mundo e marca o chunk (e o
// vizinho, se a edição foi na borda) para relight + remesh. A malha antiga
// continua visível até a nova ficar pronta.
//
// Se um worker detém os buffers do chunk neste momento (ou um vizinho está
// em meshing, que lê nossas bordas), a edição é adiada e aplicada pelo
// próximo Update que encontrar o chunk livre; escrever agora seria uma
// corrida com o worker.
func (s *ChunkStore) SetBlock(wx, wy, wz int32, id BlockID) {
	if wy < 0 || wy >= WorldHeight {
		return
	}
	coord, _, _ := util.WorldToChunk(wx, wz)
	// Edições para um chunk com fila entram atrás delas, para nunca
	// aplicar fora de ordem.
	if s.editBlocked(coord) || s.hasPendingEdit(coord) {
		s.edits = append(s.edits, pendingEdit{wx, wy, wz, id})
		return
	}
	s.applyEdit(wx, wy, wz, id)
}

func (s *ChunkStore) hasPendingEdit(coord util.ChunkCoord) bool {
	for _, e := range s.edits {
		if c, _, _ := util.WorldToChunk(e.wx, e.wz); c == coord {
			return true
		}
	}
	return false
}

// editBlocked reporta se escrever nos buffers do chunk agora disputaria com
// um worker: o próprio chunk in-flight, ou um vizinho em meshing (o mesher
// lê os voxels e a luz de borda deste chunk).
func (s *ChunkStore) editBlocked(coord util.ChunkCoord) bool {
	return s.isInflight(coord.Packed()) || s.neighborInflight(coord, stageMesh)
}

func (s *ChunkStore) applyEdit(wx, wy, wz int32, id BlockID) {
	coord, lx, lz := util.WorldToChunk(wx, wz)
	c := s.GetChunkNow(coord)
	if c.State < StateGenerated {
		return
	}
	c.SetBlock(lx, wy, lz, id)
	c.Dirty = true
	c.LightDirty = true

	// A malha do vizinho amostra nossos voxels e nossa luz de borda.
	if lx == 0 {
		s.markNeighborStale(coord.Add(util.ChunkCoord{X: -1}))
	}
	if lx == ChunkSize-1 {
		s.markNeighborStale(coord.Add(util.ChunkCoord{X: 1}))
	}
	if lz == 0 {
		s.markNeighborStale(coord.Add(util.ChunkCoord{Z: -1}))
	}
	if lz == ChunkSize-1 {
		s.markNeighborStale(coord.Add(util.ChunkCoord{Z: 1}))
	}
}

func (s *ChunkStore) markNeighborStale(coord util.ChunkCoord) {
	if n, ok := s.Get(coord); ok {
		n.Dirty = true
		n.LightDirty = true
	}
}

// flushPendingEdits aplica as edições adiadas cujos chunks já liberaram.
// As demais continuam na fila para o próximo frame; a ordem relativa entre
// edições do mesmo voxel é preservada.
func (s *ChunkStore) flushPendingEdits() {
	if len(s.edits) == 0 {
		return
	}
	remaining := s.edits[:0]
	for _, e := range s.edits {
		coord, _, _ := util.WorldToChunk(e.wx, e.wz)
		if s.editBlocked(coord) {
			remaining = append(remaining, e)
			continue
		}
		s.applyEdit(e.wx, e.wy, e.wz, e.id)
	}
	s.edits = remaining
}

// SkyLightAt retorna a luz do céu na coordenada de mundo. Chunks que ainda
// não passaram pela iluminação (ou estão sendo re-iluminados agora)
// reportam claridade total, nunca escuridão transitória.
func (s *ChunkStore) SkyLightAt(wx, wy, wz int32) uint8 {
	if wy >= WorldHeight {
		return 15
	}
	if wy < 0 {
		return 0
	}
	coord, lx, lz := util.WorldToChunk(wx, wz)
	c, ok := s.Get(coord)
	if !ok || c.State < StateLighted {
		return 15
	}
	if st, busy := s.inflightStage(coord.Packed()); busy && st == stageLight {
		return 15
	}
	return c.SkyLight(lx, wy, lz)
}

// HeightAt retorna a altura da superfície na coluna de mundo dada. Usa o
// mapa de altura se o chunk já foi iluminado; senão pergunta ao gerador.
func (s *ChunkStore) HeightAt(wx, wz int32) int32 {
	coord, lx, lz := util.WorldToChunk(wx, wz)
	if c, ok := s.Get(coord); ok && c.State >= StateLighted && !s.isInflight(coord.Packed()) {
		return int32(c.HeightAt(lx, lz))
	}
	return s.gen.SurfaceHeight(wx, wz)
}

// Update avança o streaming em um frame. Ordem fixa: drenar resultados dos
// workers, aplicar até N malhas prontas, aplicar edições adiadas que já
// liberaram, varrer a espiral de chunks ao redor do observador avançando
// cada um no máximo um estágio, e descartar chunks além do raio de
// descarte. Deve ser chamada na thread principal.
func (s *ChunkStore) Update(observerX, observerZ float32) {
	center, _, _ := util.WorldToChunk(int32(observerX), int32(observerZ))

	s.drainResults()
	s.applyPendingMeshes()
	s.flushPendingEdits()
	s.schedule(center)
	s.evict(center)
	s.processPurge(center)
}

func (s *ChunkStore) drainResults() {
	for {
		select {
		case res := <-s.pool.Results():
			s.handleResult(res)
		default:
			return
		}
	}
}

func (s *ChunkStore) handleResult(res taskResult) {
	key := res.coord.Packed()
	c, ok := s.Get(res.coord)
	if !ok || c != res.chunk {
		// Chunk descartado (e possivelmente recriado) enquanto o worker
		// trabalhava: o resultado pertence à encarnação antiga e é
		// ignorado. O registro in-flight fica intacto; se existe, ele é
		// de um worker da encarnação atual (o purge removeu o nosso).
		return
	}

	if res.err != nil {
		log.Printf("[Store] Estágio %s falhou no chunk (%d,%d): %v",
			res.stage, res.coord.X, res.coord.Z, res.err)
		s.rollback(c, res)
		delete(s.inflight, key)
		return
	}

	switch res.stage {
	case stageGenerate:
		c.State = StateGenerated
		delete(s.inflight, key)
	case stageLight:
		if !res.redo {
			c.State = StateLighted
		}
		delete(s.inflight, key)
	case stageMesh:
		// A malha espera na fila de aplicação; o chunk continua
		// in-flight até o upload para não ser re-agendado.
		s.pendingMesh.Push(applyJob{coord: res.coord, chunk: res.chunk, redo: res.redo, mesh: res.mesh})
	}
}

// rollback devolve o chunk ao último estado estável para a task falhada ser
// re-tentada em um frame futuro.
func (s *ChunkStore) rollback(c *Chunk, res taskResult) {
	if res.redo {
		// Retrabalho falhou: re-arma as flags para tentar de novo.
		switch res.stage {
		case stageLight:
			c.LightDirty = true
		case stageMesh:
			c.Dirty = true
		}
		return
	}
	switch res.stage {
	case stageGenerate:
		c.State = StateEmpty
	case stageLight:
		c.State = StateGenerated
	case stageMesh:
		c.State = StateLighted
	}
}

func (s *ChunkStore) applyPendingMeshes() {
	for i := 0; i < s.opts.MaxApplyPerFrame; i++ {
		job, ok := s.pendingMesh.Pop()
		if !ok {
			return
		}
		c, present := s.Get(job.coord)
		if !present || c != job.chunk {
			// Malha de uma encarnação descartada; o purge já soltou o
			// in-flight dela.
			continue
		}
		delete(s.inflight, job.coord.Packed())
		if s.applier != nil {
			s.applier.Apply(job.coord, job.mesh)
		}
		if !job.redo {
			c.State = StateReady
		}
	}
}

func (s *ChunkStore) schedule(center util.ChunkCoord) {
	genBudget := s.opts.MaxGeneratePerFrame
	lightBudget := s.opts.MaxLightPerFrame
	meshBudget := s.opts.MaxMeshPerFrame

	// Papel de cada anel: meshing só dentro do raio de visão; iluminação
	// até um anel além (os gates de meshing a exigem); geração até dois.
	lightLimit := int64(s.opts.ViewRadius+1) * int64(s.opts.ViewRadius+1)
	meshLimit := int64(s.opts.ViewRadius) * int64(s.opts.ViewRadius)

	for _, off := range s.spiral {
		if genBudget == 0 && lightBudget == 0 && meshBudget == 0 {
			return
		}
		coord := center.Add(off)
		c := s.GetChunk(coord)
		key := coord.Packed()
		if s.isInflight(key) {
			continue
		}
		distSq := int64(off.X)*int64(off.X) + int64(off.Z)*int64(off.Z)

		switch c.State {
		case StateEmpty:
			if genBudget > 0 && s.submit(c, stageGenerate, false) {
				genBudget--
			}
		case StateGenerated:
			if lightBudget > 0 && distSq <= lightLimit &&
				s.neighborsAtLeast(coord, StateGenerated) &&
				!s.neighborInflight(coord, stageMesh) &&
				s.submit(c, stageLight, false) {
				lightBudget--
			}
		case StateLighted:
			if meshBudget > 0 && distSq <= meshLimit &&
				s.neighborsAtLeast(coord, StateLighted) &&
				!s.neighborInflight(coord, stageLight) &&
				s.submit(c, stageMesh, false) {
				meshBudget--
			}
		case StateReady:
			// Edições externas: refaz luz primeiro, malha depois, sem
			// derrubar a malha visível.
			if c.LightDirty {
				if lightBudget > 0 && distSq <= lightLimit &&
					!s.neighborInflight(coord, stageMesh) &&
					s.submit(c, stageLight, true) {
					c.LightDirty = false
					lightBudget--
				}
			} else if c.Dirty {
				if meshBudget > 0 && distSq <= meshLimit &&
					s.neighborsAtLeast(coord, StateLighted) &&
					!s.neighborInflight(coord, stageLight) &&
					s.submit(c, stageMesh, true) {
					c.Dirty = false
					meshBudget--
				}
			}
		}
	}
}

func (s *ChunkStore) submit(c *Chunk, stage taskStage, redo bool) bool {
	t := task{chunk: c, stage: stage, redo: redo}
	if stage == stageMesh {
		t.neighbors = s.neighborChunks(c.Coord)
	}
	if !s.pool.Submit(t) {
		return false
	}
	s.inflight[c.Coord.Packed()] = stage
	if !redo {
		switch stage {
		case stageGenerate:
			c.State = StateGenerating
		case stageLight:
			c.State = StateLighting
		case stageMesh:
			c.State = StateMeshing
		}
	}
	return true
}

var neighborOffsets = [4]util.ChunkCoord{
	NeighborNorth: {Z: -1},
	NeighborSouth: {Z: 1},
	NeighborWest:  {X: -1},
	NeighborEast:  {X: 1},
}

func (s *ChunkStore) neighborChunks(coord util.ChunkCoord) [4]*Chunk {
	var out [4]*Chunk
	for i, off := range neighborOffsets {
		if n, ok := s.Get(coord.Add(off)); ok {
			out[i] = n
		}
	}
	return out
}

func (s *ChunkStore) neighborsAtLeast(coord util.ChunkCoord, min ChunkState) bool {
	for _, off := range neighborOffsets {
		n, ok := s.Get(coord.Add(off))
		if !ok || n.State < min {
			return false
		}
	}
	return true
}

// neighborInflight reporta se algum vizinho horizontal tem um worker ativo
// no estágio dado. Serializa relight/remesh entre vizinhos: meshing lê os
// buffers de luz deles.
func (s *ChunkStore) neighborInflight(coord util.ChunkCoord, stage taskStage) bool {
	for _, off := range neighborOffsets {
		if st, ok := s.inflightStage(coord.Add(off).Packed()); ok && st == stage {
			return true
		}
	}
	return false
}

func (s *ChunkStore) evict(center util.ChunkCoord) {
	limit := int64(s.opts.UnloadRadius) * int64(s.opts.UnloadRadius)
	s.mu.RLock()
	for key, c := range s.chunks {
		if center.DistSqTo(c.Coord) > limit {
			s.purge.Enqueue(key, c.Coord)
		}
	}
	s.mu.RUnlock()
}

func (s *ChunkStore) processPurge(center util.ChunkCoord) {
	limit := int64(s.opts.UnloadRadius) * int64(s.opts.UnloadRadius)
	for i := 0; i < s.opts.MaxPurgePerFrame; i++ {
		key, coord, ok := s.purge.Dequeue()
		if !ok {
			return
		}
		// O observador pode ter voltado desde o enfileiramento.
		if center.DistSqTo(coord) <= limit {
			continue
		}
		s.mu.Lock()
		delete(s.chunks, key)
		s.mu.Unlock()
		delete(s.inflight, key)
		if s.applier != nil {
			s.applier.Release(coord)
		}
	}
}

// Len retorna o número de chunks residentes.
func (s *ChunkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// CountByState conta chunks residentes por estágio (para o HUD de debug).
func (s *ChunkStore) CountByState() map[ChunkState]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[ChunkState]int, 7)
	for _, c := range s.chunks {
		counts[c.State]++
	}
	return counts
}

// InflightCount retorna quantos chunks têm worker ativo agora.
func (s *ChunkStore) InflightCount() int {
	return len(s.inflight)
}
