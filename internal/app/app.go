// Package app wires the capture, recognition and board components into
// the running Chitram application.
package app

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/ayusman/chitram/internal/board"
	"github.com/ayusman/chitram/internal/capture"
	"github.com/ayusman/chitram/internal/detector"
	"github.com/ayusman/chitram/internal/gesture"
	"github.com/ayusman/chitram/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when nothing moves in front of the camera.
	IdleFPS = 5
	// ActiveFPS is the frame rate while the scene is active.
	ActiveFPS = 15
)

// settingRecognitionEnabled is the settings key the enabled toggle is
// persisted under, so the choice survives restarts.
const settingRecognitionEnabled = "recognition_enabled"

// eventRetention bounds the diagnostics event log; older rows are pruned
// on startup.
const eventRetention = 30 * 24 * time.Hour

// Options holds the dependencies the App orchestrates. Camera,
// Detector and Classifier may be left nil to get the defaults.
type Options struct {
	Config     Config
	Store      *store.Store
	Board      *board.Board
	Camera     capture.Camera
	Detector   detector.Detector
	Classifier gesture.Classifier
}

// App runs the gesture pipeline and feeds recognized commands to the board.
type App struct {
	config    Config
	store     *store.Store
	board     *board.Board
	camera    capture.Camera
	gate      *capture.ActivityGate
	detector  detector.Detector
	recognize *gesture.Recognizer
	debounce  *gesture.Debouncer

	mu      sync.RWMutex
	enabled bool
	stopCh  chan struct{}
	onEvent func(gesture.Event)
}

// New creates an App from the given options.
func New(opts Options) *App {
	a := &App{
		config:   opts.Config,
		store:    opts.Store,
		board:    opts.Board,
		camera:   opts.Camera,
		detector: opts.Detector,
		gate:     capture.NewActivityGate(opts.Config.MotionThreshold),
		debounce: gesture.NewDebouncer(opts.Config.Cooldown),
		enabled:  true,
	}

	if a.camera == nil {
		if opts.Config.MockCamera {
			a.camera = capture.NewMockCamera()
		} else {
			a.camera = capture.NewCamera(opts.Config.CameraID)
		}
	}

	// Try MediaPipe first, fall back to the mock detector.
	if a.detector == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}

	window := gesture.NewWindow(opts.Config.WindowSize, gesture.DefaultLostLimit)
	a.recognize = gesture.NewRecognizer(opts.Classifier, window, opts.Config.Confidence)

	// Restore the persisted toggle from the previous session.
	if a.store != nil {
		if raw, err := a.store.Settings().Get(settingRecognitionEnabled); err == nil {
			if enabled, err := strconv.ParseBool(raw); err == nil {
				a.enabled = enabled
			}
		}
	}

	return a
}

// SetEnabled enables or disables gesture recognition. The board keeps
// its state either way; disabling only stops new commands. The choice is
// persisted so it survives restarts.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	st := a.store
	a.mu.Unlock()

	if st != nil {
		if err := st.Settings().Set(settingRecognitionEnabled, strconv.FormatBool(enabled)); err != nil {
			log.Printf("Failed to persist recognition state: %v", err)
		}
	}
}

// IsEnabled returns whether gesture recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// OnEvent registers a callback invoked for every dispatched command.
// It must be set before Start.
func (a *App) OnEvent(fn func(gesture.Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onEvent = fn
}

// Board returns the whiteboard engine.
func (a *App) Board() *board.Board {
	return a.board
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Start opens the camera and begins the recognition pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	if a.store != nil {
		if removed, err := a.store.Events().Prune(eventRetention); err != nil {
			log.Printf("Failed to prune event log: %v", err)
		} else if removed > 0 {
			log.Printf("Pruned %d events past retention", removed)
		}
	}

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Recognition pipeline started")
	return nil
}

// Stop halts the pipeline and releases capture resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.gate.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Recognition pipeline stopped")
}
