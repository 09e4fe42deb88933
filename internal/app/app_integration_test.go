package app

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ayusman/chitram/internal/board"
	"github.com/ayusman/chitram/internal/capture"
	"github.com/ayusman/chitram/internal/detector"
	"github.com/ayusman/chitram/internal/gesture"
	"github.com/ayusman/chitram/internal/store"
)

// scriptClassifier returns a fixed class with high confidence.
type scriptClassifier struct {
	class gesture.Class
}

func (c *scriptClassifier) Classify(window [][]detector.Point3D) ([]float64, error) {
	probs := make([]float64, gesture.NumClasses)
	probs[int(c.class)] = 0.95
	return probs, nil
}

func (c *scriptClassifier) Close() error { return nil }

func testOptions(t *testing.T, class gesture.Class) (Options, *store.Store) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	b := board.New(board.Config{Width: 120, Height: 80})
	t.Cleanup(b.Close)

	mockDet := detector.NewMockDetector()
	mockDet.SetHands([]detector.HandLandmarks{detector.HandAt(0.25, 0.25)})

	return Options{
		Config: Config{
			CanvasWidth:     120,
			CanvasHeight:    80,
			Cooldown:        gesture.DefaultCooldown,
			Confidence:      gesture.DefaultConfidence,
			MotionThreshold: 0.5,
			MockCamera:      true,
		},
		Store:      s,
		Board:      b,
		Camera:     capture.NewMockCamera(),
		Detector:   mockDet,
		Classifier: &scriptClassifier{class: class},
	}, s
}

func TestApp_PipelineDispatchesToBoard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	opts, s := testOptions(t, gesture.WriteStart)
	a := New(opts)

	var mu sync.Mutex
	var dispatched []string
	a.OnEvent(func(ev gesture.Event) {
		mu.Lock()
		dispatched = append(dispatched, ev.Name)
		mu.Unlock()
	})

	if err := a.Start(); err != nil {
		t.Fatalf("app.Start() error = %v", err)
	}
	defer a.Stop()

	// The window needs a few frames before the classifier fires; poll
	// until the board enters drawing mode.
	deadline := time.Now().Add(5 * time.Second)
	for a.Board().Mode() != board.ModeDrawing {
		if time.Now().After(deadline) {
			t.Fatalf("board never entered drawing mode, mode = %v", a.Board().Mode())
		}
		time.Sleep(50 * time.Millisecond)
	}

	mu.Lock()
	gotCallback := len(dispatched) > 0 && dispatched[0] == "write_start"
	mu.Unlock()
	if !gotCallback {
		t.Error("event callback was not invoked with write_start")
	}

	events, err := s.Events().Recent(10)
	if err != nil {
		t.Fatalf("reading event log: %v", err)
	}
	if len(events) == 0 || events[0].Gesture != "write_start" {
		t.Errorf("event log = %v, want write_start recorded", events)
	}
}

func TestApp_DisabledPipelineDispatchesNothing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	opts, _ := testOptions(t, gesture.WriteStart)
	a := New(opts)
	a.SetEnabled(false)

	if err := a.Start(); err != nil {
		t.Fatalf("app.Start() error = %v", err)
	}
	defer a.Stop()

	time.Sleep(1500 * time.Millisecond)

	if mode := a.Board().Mode(); mode != board.ModeIdle {
		t.Errorf("disabled app changed board mode to %v", mode)
	}
}

func TestApp_RecognitionTogglePersistsAcrossRestart(t *testing.T) {
	opts, s := testOptions(t, gesture.WriteStart)

	a := New(opts)
	if !a.IsEnabled() {
		t.Fatal("fresh app should start enabled")
	}

	a.SetEnabled(false)

	raw, err := s.Settings().Get("recognition_enabled")
	if err != nil {
		t.Fatalf("toggle was not persisted: %v", err)
	}
	if raw != "false" {
		t.Errorf("persisted value = %q, want false", raw)
	}

	// A new app over the same store restores the choice.
	restarted := New(opts)
	if restarted.IsEnabled() {
		t.Error("restarted app should restore the disabled state")
	}

	restarted.SetEnabled(true)
	if v, _ := s.Settings().Get("recognition_enabled"); v != "true" {
		t.Errorf("persisted value after re-enable = %q, want true", v)
	}
}

func TestApp_StartPrunesOldEvents(t *testing.T) {
	opts, s := testOptions(t, gesture.WriteStart)

	// One row far past retention, one fresh.
	stale := time.Now().Add(-2 * eventRetention)
	if _, err := s.DB().Exec(
		`INSERT INTO events (gesture, confidence, created_at) VALUES (?, ?, ?)`,
		"save", 0.9, stale,
	); err != nil {
		t.Fatalf("failed to seed stale event: %v", err)
	}
	if err := s.Events().Append(&store.Event{Gesture: "undo", Confidence: 0.9}); err != nil {
		t.Fatalf("failed to seed fresh event: %v", err)
	}

	a := New(opts)
	a.SetEnabled(false)

	if err := a.Start(); err != nil {
		t.Fatalf("app.Start() error = %v", err)
	}
	a.Stop()

	events, err := s.Events().Recent(10)
	if err != nil {
		t.Fatalf("reading event log: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events after prune, want 1", len(events))
	}
	if events[0].Gesture != "undo" {
		t.Errorf("surviving event = %q, want undo", events[0].Gesture)
	}
}

func TestApp_StartIsIdempotent(t *testing.T) {
	opts, _ := testOptions(t, gesture.WriteStart)
	a := New(opts)

	if err := a.Start(); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	a.Stop()

	if a.Camera().IsOpen() {
		t.Error("camera should be closed after Stop")
	}
}
