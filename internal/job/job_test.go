package job

import "testing"

func TestState_Terminal(t *testing.T) {
	terminal := []State{StateSucceeded, StateFailed, StateSkipped, StateCancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []State{StateQueued, StateRunning} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestAdvancePercent_Monotonic(t *testing.T) {
	j := &Job{}
	steps := []float64{10, 25, 20, 25, 60, 55, 99.5}
	var last float64
	for _, p := range steps {
		j.AdvancePercent(p)
		if j.Percent < last {
			t.Fatalf("percent regressed: %v after %v", j.Percent, last)
		}
		last = j.Percent
	}
	if j.Percent != 99.5 {
		t.Errorf("final percent: got %v, want 99.5", j.Percent)
	}
}

func TestAdvancePercent_Caps100(t *testing.T) {
	j := &Job{Percent: 98}
	j.AdvancePercent(250)
	if j.Percent != 100 {
		t.Errorf("got %v, want 100", j.Percent)
	}
}

func TestBus_PublishAssignsSequence(t *testing.T) {
	b := NewBus(10)
	e1 := b.Publish(Event{Type: EventLog, Message: "one"})
	e2 := b.Publish(Event{Type: EventLog, Message: "two"})
	if e1.Seq != 1 || e2.Seq != 2 {
		t.Errorf("sequences: got %d, %d", e1.Seq, e2.Seq)
	}
	if e1.Time.IsZero() {
		t.Error("timestamp not assigned")
	}
}

func TestBus_Since(t *testing.T) {
	b := NewBus(10)
	for i := 0; i < 5; i++ {
		b.Publish(Event{Type: EventProgress, Percent: float64(i)})
	}
	got := b.Since(3)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Seq != 4 || got[1].Seq != 5 {
		t.Errorf("sequences: got %d, %d", got[0].Seq, got[1].Seq)
	}
}

func TestBus_TrimsToMax(t *testing.T) {
	b := NewBus(3)
	for i := 0; i < 10; i++ {
		b.Publish(Event{Type: EventLog})
	}
	got := b.Since(0)
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[0].Seq != 8 {
		t.Errorf("oldest retained seq: got %d, want 8", got[0].Seq)
	}
}
