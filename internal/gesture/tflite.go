package gesture

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/ayusman/chitram/internal/detector"
)

// TFLiteClassifier implements Classifier using a Python TensorFlow Lite
// subprocess. Each request is one JSON line carrying the landmark window;
// the response is one JSON line with the probability vector.
//
// The process is started lazily on the first classification. A slow or dead
// process surfaces as an error on the affected frame only; the caller
// degrades to "no gesture this frame".
type TFLiteClassifier struct {
	modelPath string
	timeout   time.Duration
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
}

// DefaultClassifyTimeout bounds a single classifier invocation.
const DefaultClassifyTimeout = 500 * time.Millisecond

// NewTFLiteClassifier creates a classifier backed by the given .tflite model.
func NewTFLiteClassifier(modelPath string, timeout time.Duration) (*TFLiteClassifier, error) {
	if findTFLiteScript() == "" {
		return nil, fmt.Errorf("tflite_service.py not found")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("gesture model: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultClassifyTimeout
	}

	return &TFLiteClassifier{
		modelPath: modelPath,
		timeout:   timeout,
	}, nil
}

type classifyRequest struct {
	Frames [][][3]float64 `json:"frames"`
}

type classifyResponse struct {
	Probs []float64 `json:"probs"`
	Error string    `json:"error,omitempty"`
}

// Classify submits a full landmark window and returns the probability
// vector over the known gesture classes.
func (c *TFLiteClassifier) Classify(window [][]detector.Point3D) ([]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureStarted(); err != nil {
		return nil, err
	}

	req := classifyRequest{Frames: make([][][3]float64, len(window))}
	for i, frame := range window {
		req.Frames[i] = make([][3]float64, len(frame))
		for j, p := range frame {
			req.Frames[i][j] = [3]float64{p.X, p.Y, p.Z}
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode window: %w", err)
	}
	payload = append(payload, '\n')

	if _, err := c.stdin.Write(payload); err != nil {
		c.shutdown()
		return nil, fmt.Errorf("write window: %w", err)
	}

	line, err := c.readLine()
	if err != nil {
		c.shutdown()
		return nil, fmt.Errorf("read probabilities: %w", err)
	}

	var resp classifyResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("parse probabilities: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("tflite service: %s", resp.Error)
	}

	return resp.Probs, nil
}

// readLine reads one response line, bounded by the classify timeout so a
// hung interpreter cannot stall the frame tick indefinitely.
func (c *TFLiteClassifier) readLine() ([]byte, error) {
	type result struct {
		line []byte
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		line, err := c.stdout.ReadBytes('\n')
		ch <- result{line, err}
	}()

	select {
	case r := <-ch:
		return r.line, r.err
	case <-time.After(c.timeout):
		return nil, fmt.Errorf("classifier timed out after %v", c.timeout)
	}
}

// Close shuts down the Python process.
func (c *TFLiteClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shutdown()
}

func (c *TFLiteClassifier) ensureStarted() error {
	if c.started {
		return nil
	}

	scriptPath := findTFLiteScript()
	if scriptPath == "" {
		return fmt.Errorf("tflite_service.py not found")
	}

	pythonPath := findVenvPythonForModel()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	c.cmd = exec.Command(pythonPath, scriptPath, "--model", c.modelPath)

	stdin, err := c.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := c.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	c.cmd.Stderr = os.Stderr

	if err := c.cmd.Start(); err != nil {
		return fmt.Errorf("start tflite service: %w", err)
	}

	c.stdin = stdin
	c.stdout = bufio.NewReader(stdout)
	c.started = true

	return nil
}

func (c *TFLiteClassifier) shutdown() error {
	if !c.started {
		return nil
	}

	if c.stdin != nil {
		c.stdin.Close()
	}

	err := c.cmd.Wait()
	c.started = false
	c.cmd = nil
	c.stdin = nil
	c.stdout = nil

	return err
}

func findTFLiteScript() string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/tflite_service.py",
		"../scripts/tflite_service.py",
		filepath.Join(execDir, "scripts/tflite_service.py"),
		filepath.Join(os.Getenv("HOME"), ".chitram/scripts/tflite_service.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

func findVenvPythonForModel() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".chitram/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}
