package world

import (
	"fmt"
	"log"

	"VoxelVision/shared/util"
)

// Pool fixo de workers do pipeline de chunks. Cada task carrega o chunk que
// o worker passa a deter com exclusividade (garantida pelo conjunto
// in-flight do store); o resultado volta pelo canal de results e só a
// thread principal aplica transições de estado.

type taskStage uint8

const (
	stageGenerate taskStage = iota
	stageLight
	stageMesh
)

func (s taskStage) String() string {
	switch s {
	case stageGenerate:
		return "generate"
	case stageLight:
		return "light"
	case stageMesh:
		return "mesh"
	}
	return "unknown"
}

type task struct {
	chunk *Chunk
	stage taskStage
	// redo indica retrabalho de um chunk READY (edição externa);
	// o estado do chunk não muda durante um redo.
	redo      bool
	neighbors [4]*Chunk
}

type taskResult struct {
	coord util.ChunkCoord
	// chunk identifica a encarnação: um chunk descartado e recriado na
	// mesma coordenada é outro ponteiro, e resultados da encarnação
	// antiga são ignorados pelo store.
	chunk *Chunk
	stage taskStage
	redo  bool
	mesh  *MeshData
	err   error
}

type workerPool struct {
	tasks   chan task
	results chan taskResult
	stop    chan struct{}
	gen     Generator
}

func newWorkerPool(workers int, gen Generator) *workerPool {
	p := &workerPool{
		tasks:   make(chan task, 2000),
		results: make(chan taskResult, 2000),
		stop:    make(chan struct{}),
		gen:     gen,
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit enfileira uma task sem bloquear. Retorna false com a fila cheia;
// o chamador tenta de novo num frame futuro.
func (p *workerPool) Submit(t task) bool {
	select {
	case p.tasks <- t:
		return true
	default:
		return false
	}
}

func (p *workerPool) Results() <-chan taskResult {
	return p.results
}

func (p *workerPool) Stop() {
	close(p.stop)
}

func (p *workerPool) worker() {
	for {
		select {
		case t := <-p.tasks:
			p.results <- p.run(t)
		case <-p.stop:
			return
		}
	}
}

func (p *workerPool) run(t task) (res taskResult) {
	res.coord = t.chunk.Coord
	res.chunk = t.chunk
	res.stage = t.stage
	res.redo = t.redo

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Worker de chunk (%d,%d) no estágio %s: %v",
				t.chunk.Coord.X, t.chunk.Coord.Z, t.stage, r)
			res.mesh = nil
			res.err = fmt.Errorf("panic no estágio %s: %v", t.stage, r)
		}
	}()

	switch t.stage {
	case stageGenerate:
		p.gen.Generate(t.chunk)
	case stageLight:
		PropagateSkyLight(t.chunk)
	case stageMesh:
		res.mesh = BuildMesh(t.chunk, t.neighbors)
	}
	return res
}
