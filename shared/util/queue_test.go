package util

import "testing"

func TestUniqueQueue(t *testing.T) {
	q := NewUniqueQueue[int, string]()

	if !q.Enqueue(1, "a") {
		t.Fatal("primeiro enqueue deveria aceitar")
	}
	if q.Enqueue(1, "b") {
		t.Fatal("chave repetida deveria ser ignorada")
	}
	q.Enqueue(2, "c")

	if q.Len() != 2 {
		t.Fatalf("Len = %d, esperado 2", q.Len())
	}
	if !q.Contains(1) || q.Contains(3) {
		t.Fatal("Contains incorreto")
	}

	k, v, ok := q.Dequeue()
	if !ok || k != 1 || v != "a" {
		t.Fatalf("Dequeue = (%d,%q,%v), esperado (1,a,true)", k, v, ok)
	}
	// Depois de sair da fila a chave pode voltar.
	if !q.Enqueue(1, "d") {
		t.Fatal("chave removida deveria poder voltar")
	}

	q.Dequeue()
	q.Dequeue()
	if _, _, ok := q.Dequeue(); ok {
		t.Fatal("fila vazia deveria retornar false")
	}
}

func TestThreadSafeQueueFIFO(t *testing.T) {
	q := NewThreadSafeQueue[int]()
	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	for i := 0; i < 5; i++ {
		v, ok := q.Pop()
		if !ok || v != i {
			t.Fatalf("Pop = (%d,%v), esperado (%d,true)", v, ok, i)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("fila vazia deveria retornar false")
	}
}
