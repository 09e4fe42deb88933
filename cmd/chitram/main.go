package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/chitram/internal/app"
	"github.com/ayusman/chitram/internal/artifact"
	"github.com/ayusman/chitram/internal/board"
	"github.com/ayusman/chitram/internal/gesture"
	"github.com/ayusman/chitram/internal/server"
	"github.com/ayusman/chitram/internal/store"
	"github.com/ayusman/chitram/internal/tray"
)

func main() {
	fmt.Println("Chitram - Gesture Whiteboard")

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	saver, err := artifact.NewSaver(cfg.BoardDir(), st.Artifacts())
	if err != nil {
		log.Fatalf("Failed to initialize board directory: %v", err)
	}

	b := board.New(board.Config{
		Width:  cfg.CanvasWidth,
		Height: cfg.CanvasHeight,
		Sink:   saver,
	})
	defer b.Close()

	opts := app.Options{
		Config: cfg,
		Store:  st,
		Board:  b,
	}

	// A missing classifier is not fatal: the board, pointer tracking and
	// the HTTP surface keep working with recognition switched off.
	classifier, err := gesture.NewTFLiteClassifier(cfg.ModelPath, gesture.DefaultClassifyTimeout)
	if err != nil {
		log.Printf("Gesture classifier unavailable, recognition disabled: %v", err)
	} else {
		opts.Classifier = classifier
		defer classifier.Close()
	}

	a := app.New(opts)
	if classifier == nil {
		a.SetEnabled(false)
	}

	hub := server.NewEventsHub()

	webDir := findWebDir(cfg.DataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:   webDir,
		Store:       st,
		Board:       b,
		Saver:       saver,
		Events:      hub,
		Recognition: a,
	})

	trayApp := tray.New()
	trayApp.SetEnabled(a.IsEnabled())

	a.OnEvent(func(ev gesture.Event) {
		hub.Broadcast(ev, b.State())
		trayApp.SetLastGesture(ev.Name)
	})

	trayApp.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	trayApp.OnSave(func() {
		if filename, err := b.SaveNow(); err != nil {
			log.Printf("Save failed: %v", err)
		} else {
			log.Printf("Saved board as %s", filename)
		}
	})
	trayApp.OnOpen(func() {
		openBrowser("http://" + cfg.Addr + "/")
	})
	trayApp.OnQuit(func() {
		a.Stop()
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Blocks until Quit is selected from the tray menu.
	trayApp.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks "web", "../web", "../../web", and <dataDir>/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
