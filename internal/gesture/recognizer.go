package gesture

import (
	"fmt"
	"time"

	"github.com/ayusman/chitram/internal/detector"
)

// Classifier is the external gesture model. It consumes a full landmark
// window (window length x 21 x 3) and returns a probability vector over
// the NumClasses known gestures.
type Classifier interface {
	Classify(window [][]detector.Point3D) ([]float64, error)

	// Close releases any resources held by the classifier.
	Close() error
}

// DefaultConfidence is the minimum probability for a classification to be
// surfaced as a gesture event.
const DefaultConfidence = 0.7

// Recognizer owns the landmark window and the classifier, and applies the
// confidence gate. It is the single producer of gesture events.
type Recognizer struct {
	window     *Window
	classifier Classifier
	threshold  float64

	now func() time.Time // overridable for tests
}

// NewRecognizer creates a Recognizer around the given classifier.
// A threshold <= 0 falls back to DefaultConfidence.
func NewRecognizer(classifier Classifier, window *Window, threshold float64) *Recognizer {
	if window == nil {
		window = NewWindow(0, 0)
	}
	if threshold <= 0 {
		threshold = DefaultConfidence
	}
	return &Recognizer{
		window:     window,
		classifier: classifier,
		threshold:  threshold,
		now:        time.Now,
	}
}

// Observe feeds one frame's landmarks into the window and, when the window
// is full, runs the classifier. It returns a gesture event when the top
// class clears the confidence threshold, or nil for "no gesture this frame".
//
// A classifier failure is returned as an error so the caller can log the
// degraded condition, but it never aborts the pipeline: the window keeps
// sliding and the next frame is classified normally.
func (r *Recognizer) Observe(hand *detector.HandLandmarks) (*Event, error) {
	if hand == nil {
		r.window.MarkLost()
		return nil, nil
	}

	if r.window.Push(hand.Points[:]) != WindowReady {
		return nil, nil
	}

	// No classifier means recognition is off; pointer tracking still works.
	if r.classifier == nil {
		return nil, nil
	}

	probs, err := r.classifier.Classify(r.window.Frames())
	if err != nil {
		return nil, fmt.Errorf("classify window: %w", err)
	}
	if len(probs) != NumClasses {
		return nil, fmt.Errorf("classifier returned %d probabilities, want %d", len(probs), NumClasses)
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}

	confidence := probs[best]
	if confidence <= r.threshold {
		return nil, nil
	}

	class := ClassFromIndex(best)
	tip := hand.Fingertip()

	return &Event{
		Class:      class,
		Name:       class.String(),
		Confidence: confidence,
		X:          tip.X,
		Y:          tip.Y,
		HasPos:     true,
		Timestamp:  r.now(),
	}, nil
}

// Window exposes the underlying landmark window.
func (r *Recognizer) Window() *Window {
	return r.window
}
