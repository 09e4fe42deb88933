package gesture

import (
	"errors"
	"strings"
	"testing"

	"github.com/ayusman/chitram/internal/detector"
)

// fakeClassifier returns a fixed probability vector, or an error.
type fakeClassifier struct {
	probs []float64
	err   error
	calls int
}

func (f *fakeClassifier) Classify(window [][]detector.Point3D) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.probs, nil
}

func (f *fakeClassifier) Close() error { return nil }

// probsFor builds a probability vector concentrated on one class.
func probsFor(c Class, confidence float64) []float64 {
	probs := make([]float64, NumClasses)
	rest := (1.0 - confidence) / float64(NumClasses-1)
	for i := range probs {
		probs[i] = rest
	}
	probs[c] = confidence
	return probs
}

func handFixture(x, y float64) *detector.HandLandmarks {
	hand := detector.HandAt(x, y)
	return &hand
}

func TestRecognizer_NoCallUntilWindowFull(t *testing.T) {
	fake := &fakeClassifier{probs: probsFor(WriteStart, 0.9)}
	r := NewRecognizer(fake, NewWindow(4, 5), 0.7)

	for i := 0; i < 3; i++ {
		ev, err := r.Observe(handFixture(0.5, 0.5))
		if err != nil {
			t.Fatalf("Observe() error = %v", err)
		}
		if ev != nil {
			t.Fatalf("expected no event while window pending, got %v", ev)
		}
	}
	if fake.calls != 0 {
		t.Errorf("classifier invoked %d times on a pending window", fake.calls)
	}

	ev, err := r.Observe(handFixture(0.5, 0.5))
	if err != nil {
		t.Fatalf("Observe() error = %v", err)
	}
	if ev == nil {
		t.Fatal("expected event once window is full")
	}
	if fake.calls != 1 {
		t.Errorf("expected 1 classifier call, got %d", fake.calls)
	}
	if ev.Class != WriteStart || ev.Name != "write_start" {
		t.Errorf("got class %v (%s), want WriteStart", ev.Class, ev.Name)
	}
	if ev.Confidence != 0.9 {
		t.Errorf("got confidence %f, want 0.9", ev.Confidence)
	}
}

func TestRecognizer_EventCarriesFingertip(t *testing.T) {
	fake := &fakeClassifier{probs: probsFor(Pan, 0.85)}
	r := NewRecognizer(fake, NewWindow(2, 5), 0.7)

	r.Observe(handFixture(0.1, 0.1))
	ev, err := r.Observe(handFixture(0.25, 0.75))
	if err != nil {
		t.Fatalf("Observe() error = %v", err)
	}
	if ev == nil {
		t.Fatal("expected event")
	}
	if !ev.HasPos {
		t.Fatal("expected event to carry a pointer position")
	}
	if ev.X != 0.25 || ev.Y != 0.75 {
		t.Errorf("got position (%f, %f), want (0.25, 0.75)", ev.X, ev.Y)
	}
	if ev.Timestamp.IsZero() {
		t.Error("expected a timestamp on the event")
	}
}

func TestRecognizer_ConfidenceGate(t *testing.T) {
	fake := &fakeClassifier{probs: probsFor(ClearAll, 0.6)}
	r := NewRecognizer(fake, NewWindow(2, 5), 0.7)

	r.Observe(handFixture(0.5, 0.5))
	ev, err := r.Observe(handFixture(0.5, 0.5))
	if err != nil {
		t.Fatalf("Observe() error = %v", err)
	}
	if ev != nil {
		t.Errorf("expected sub-threshold classification to be dropped, got %v", ev)
	}

	// Exactly at the threshold is still rejected
	fake.probs = probsFor(ClearAll, 0.7)
	ev, _ = r.Observe(handFixture(0.5, 0.5))
	if ev != nil {
		t.Errorf("expected at-threshold classification to be dropped, got %v", ev)
	}
}

func TestRecognizer_ClassifierFailureDegrades(t *testing.T) {
	fake := &fakeClassifier{err: errors.New("interpreter crashed")}
	r := NewRecognizer(fake, NewWindow(2, 5), 0.7)

	r.Observe(handFixture(0.5, 0.5))
	ev, err := r.Observe(handFixture(0.5, 0.5))
	if ev != nil {
		t.Errorf("expected no event on classifier failure, got %v", ev)
	}
	if err == nil {
		t.Fatal("expected error to surface for logging")
	}

	// Recovery: next frames classify normally
	fake.err = nil
	fake.probs = probsFor(Undo, 0.95)
	ev, err = r.Observe(handFixture(0.5, 0.5))
	if err != nil {
		t.Fatalf("Observe() after recovery error = %v", err)
	}
	if ev == nil || ev.Class != Undo {
		t.Errorf("expected Undo event after recovery, got %v", ev)
	}
}

func TestRecognizer_NilClassifierEmitsNothing(t *testing.T) {
	r := NewRecognizer(nil, NewWindow(2, 5), 0.7)

	for i := 0; i < 6; i++ {
		ev, err := r.Observe(handFixture(0.5, 0.5))
		if err != nil {
			t.Fatalf("Observe() error = %v", err)
		}
		if ev != nil {
			t.Fatalf("expected no events without a classifier, got %v", ev)
		}
	}
}

func TestRecognizer_BadProbabilityVector(t *testing.T) {
	fake := &fakeClassifier{probs: []float64{0.5, 0.5}}
	r := NewRecognizer(fake, NewWindow(2, 5), 0.7)

	r.Observe(handFixture(0.5, 0.5))
	ev, err := r.Observe(handFixture(0.5, 0.5))
	if ev != nil {
		t.Errorf("expected no event for malformed vector, got %v", ev)
	}
	if err == nil || !strings.Contains(err.Error(), "probabilities") {
		t.Errorf("expected probability-length error, got %v", err)
	}
}

func TestRecognizer_LostHandMarksWindow(t *testing.T) {
	fake := &fakeClassifier{probs: probsFor(WriteStart, 0.9)}
	window := NewWindow(4, 2)
	r := NewRecognizer(fake, window, 0.7)

	for i := 0; i < 4; i++ {
		r.Observe(handFixture(0.5, 0.5))
	}
	if window.Len() != 4 {
		t.Fatalf("expected full window, got %d", window.Len())
	}

	// Three consecutive lost frames exceed the limit of 2
	r.Observe(nil)
	r.Observe(nil)
	r.Observe(nil)

	if window.Len() != 0 {
		t.Errorf("expected window cleared after tracking loss, got %d", window.Len())
	}
	if fake.calls != 1 {
		t.Errorf("expected no classifier calls on lost frames, got %d", fake.calls)
	}
}

func TestClassFromIndex(t *testing.T) {
	tests := []struct {
		index int
		want  Class
	}{
		{0, WriteStart},
		{11, ClearAll},
		{12, Unknown},
		{-1, Unknown},
		{100, Unknown},
	}

	for _, tt := range tests {
		if got := ClassFromIndex(tt.index); got != tt.want {
			t.Errorf("ClassFromIndex(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestClass_String(t *testing.T) {
	if WriteStart.String() != "write_start" {
		t.Errorf("WriteStart = %q", WriteStart.String())
	}
	if ClearAll.String() != "clear_all" {
		t.Errorf("ClearAll = %q", ClearAll.String())
	}
	if Unknown.String() != "unknown" {
		t.Errorf("Unknown = %q", Unknown.String())
	}
}
