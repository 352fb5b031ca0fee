package taskqueue

import "testing"

func TestEnqueueDequeueFIFOOrder(t *testing.T) {
	q := New(4)
	q.Enqueue(EditRequest{DocName: "a", Content: "1"})
	q.Enqueue(EditRequest{DocName: "b", Content: "2"})
	q.Enqueue(EditRequest{DocName: "c", Content: "3"})

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.Dequeue()
		if !ok || got.DocName != want {
			t.Fatalf("Dequeue() = %+v, ok=%v; want DocName=%q", got, ok, want)
		}
	}
}

func TestEnqueueRejectsWhenFull(t *testing.T) {
	q := New(2)
	if !q.Enqueue(EditRequest{DocName: "a"}) {
		t.Fatal("enqueue 1 should succeed")
	}
	if !q.Enqueue(EditRequest{DocName: "b"}) {
		t.Fatal("enqueue 2 should succeed")
	}
	if q.Enqueue(EditRequest{DocName: "c"}) {
		t.Fatal("enqueue into full queue should fail")
	}
	if !q.IsFull() {
		t.Fatal("queue should report full")
	}
}

func TestDequeueEmpty(t *testing.T) {
	q := New(2)
	if !q.IsEmpty() {
		t.Fatal("new queue should be empty")
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatal("dequeue from empty queue should fail")
	}
}

func TestWrapAround(t *testing.T) {
	q := New(2)
	q.Enqueue(EditRequest{DocName: "a"})
	q.Enqueue(EditRequest{DocName: "b"})
	q.Dequeue()
	q.Enqueue(EditRequest{DocName: "c"}) // wraps to index 0
	got, _ := q.Dequeue()
	if got.DocName != "b" {
		t.Fatalf("Dequeue() = %q, want b", got.DocName)
	}
	got, _ = q.Dequeue()
	if got.DocName != "c" {
		t.Fatalf("Dequeue() = %q, want c", got.DocName)
	}
}

func TestSize(t *testing.T) {
	q := New(4)
	if q.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", q.Size())
	}
	q.Enqueue(EditRequest{DocName: "a"})
	q.Enqueue(EditRequest{DocName: "b"})
	if q.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", q.Size())
	}
	q.Dequeue()
	if q.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", q.Size())
	}
}

func TestDefaultCapacityUsedWhenNonPositive(t *testing.T) {
	q := New(0)
	if len(q.buf) != DefaultCapacity {
		t.Fatalf("New(0) capacity = %d, want %d", len(q.buf), DefaultCapacity)
	}
}
