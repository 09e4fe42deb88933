package app

import (
	"database/sql"
	"log"
	"time"

	"github.com/ayusman/chitram/internal/gesture"
	"github.com/ayusman/chitram/internal/store"
)

// runPipeline is the main capture loop. It reads frames at an idle or
// active rate depending on scene activity, runs hand detection, feeds
// landmark windows to the recognizer, and dispatches debounced
// commands to the board. Pointer motion bypasses the debouncer so
// strokes and panning stay continuous.
func (a *App) runPipeline(stopCh chan struct{}) {
	width, height := a.board.Size()

	activeMode := false
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			sceneActive := a.gate.Observe(frame)
			if sceneActive && !activeMode {
				activeMode = true
				a.camera.SetFPS(ActiveFPS)
				frameInterval = time.Second / time.Duration(ActiveFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to active mode")
			} else if !sceneActive && activeMode {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}

			hands, err := a.detector.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			if len(hands) == 0 {
				a.recognize.Observe(nil)
				a.board.PointerLost()
				continue
			}

			// A visible hand counts as activity even if it holds still,
			// so recognition never starves at the idle frame rate.
			a.gate.Touch()

			hand := &hands[0]

			ev, err := a.recognize.Observe(hand)
			if err != nil {
				log.Printf("Classifier error: %v", err)
			}
			if ev != nil && a.debounce.Observe(ev) {
				a.dispatch(*ev)
			}

			a.board.MovePointer(hand.FingertipAt(width, height))
		}
	}
}

// dispatch applies one debounced command to the board, records it, and
// notifies the event callback.
func (a *App) dispatch(ev gesture.Event) {
	a.board.Handle(ev)
	log.Printf("Gesture dispatched: %s (confidence: %.3f)", ev.Name, ev.Confidence)

	if a.store != nil {
		rec := &store.Event{
			Gesture:    ev.Name,
			Confidence: ev.Confidence,
		}
		if ev.HasPos {
			rec.X = sql.NullFloat64{Float64: ev.X, Valid: true}
			rec.Y = sql.NullFloat64{Float64: ev.Y, Valid: true}
		}
		if err := a.store.Events().Append(rec); err != nil {
			log.Printf("Failed to record event: %v", err)
		}
	}

	a.mu.RLock()
	fn := a.onEvent
	a.mu.RUnlock()
	if fn != nil {
		fn(ev)
	}
}
