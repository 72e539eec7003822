package notify

import (
	"sync"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue(4)
	Post(q, Info, "one")
	Post(q, Error, "two")

	if q.Len() != 2 {
		t.Fatalf("len = %d, want 2", q.Len())
	}
	got := q.Drain()
	if len(got) != 2 || got[0].Text != "one" || got[1].Text != "two" || got[1].Kind != Error {
		t.Errorf("drain = %+v", got)
	}
	if q.Len() != 0 {
		t.Error("queue not empty after drain")
	}
	if got := q.Drain(); len(got) != 0 {
		t.Errorf("drain on empty queue = %+v", got)
	}
}

func TestQueue_DropsOldest(t *testing.T) {
	q := NewQueue(2)
	for _, s := range []string{"a", "b", "c"} {
		Post(q, Info, s)
	}
	got := q.Drain()
	if len(got) != 2 || got[0].Text != "b" || got[1].Text != "c" {
		t.Errorf("drain = %+v, want [b c]", got)
	}
}

func TestQueue_StampsTime(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	q := NewQueue(0)
	q.now = func() time.Time { return at }
	Post(q, Success, MsgAllPromptsCompleted)

	got := q.Drain()
	if len(got) != 1 || !got[0].At.Equal(at) {
		t.Errorf("drain = %+v, want one notice at %v", got, at)
	}
}

func TestQueue_Concurrent(t *testing.T) {
	q := NewQueue(1000)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Post(q, Info, "x")
			}
		}()
	}
	wg.Wait()
	if q.Len() != 500 {
		t.Errorf("len = %d, want 500", q.Len())
	}
}

func TestSinkFuncAndDiscard(t *testing.T) {
	var got []Notice
	s := SinkFunc(func(n Notice) { got = append(got, n) })
	Post(s, Warning, "careful")
	if len(got) != 1 || got[0].Kind != Warning {
		t.Errorf("got = %+v", got)
	}

	Post(Discard, Error, "ignored")
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{Info: "info", Success: "success", Warning: "warning", Error: "error"} {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}
