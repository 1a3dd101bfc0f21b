package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
	"golang.design/x/clipboard"

	"github.com/milk9111/tilemapper/config"
	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/script"
	"github.com/milk9111/tilemapper/tilestore"
	"github.com/milk9111/tilemapper/watch"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	inboxDir := flag.String("inbox", "", "Directory watched for new tileset PNGs (overrides config)")
	appName := flag.String("app", "", "Application name for the per-user data directory (overrides config)")
	openPath := flag.String("open", "", "Map to open at startup: .json, .tmx or an exported .zip")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	log.SetLevel(cfg.LogLevel())
	if *inboxDir != "" {
		cfg.Inbox = *inboxDir
	}
	if *appName != "" {
		cfg.AppName = *appName
	}

	tiles, err := tilestore.Open(cfg.AppName)
	if err != nil {
		log.WithError(err).Warn("Tileset store unavailable, tilesets will not persist")
		tiles = tilestore.New(tilestore.NewMemory())
	}
	// composites are keyed by file ids, which do not outlive a session
	if err := tiles.ClearFileImages(); err != nil {
		log.WithError(err).Warn("Failed to clear cached composites")
	}

	initial := editor.NewState()
	initial.ZoomLevel = cfg.Editor.Zoom
	initial.ShowGrid = cfg.Editor.ShowGrid
	initial.Tilesets = tiles.AllTilesets()
	store := editor.NewStore(initial, editor.WithMaxUndo(cfg.Editor.MaxUndo))

	generators := loadGenerators(cfg.ScriptsDir)

	game := NewGame(cfg, store, tiles, generators)
	if err := clipboard.Init(); err != nil {
		log.WithError(err).Warn("Clipboard unavailable")
	} else {
		game.clipboardOK = true
	}

	if cfg.Inbox != "" {
		w, err := watch.NewWatcher(cfg.Inbox)
		if err != nil {
			log.WithField("dir", cfg.Inbox).WithError(err).Warn("Failed to watch inbox")
		} else {
			defer w.Close()
			go watchInbox(w, game.inbox)
			log.WithField("dir", cfg.Inbox).Info("Watching inbox for tilesets")
		}
	}

	if *openPath != "" {
		if err := game.open(*openPath); err != nil {
			log.WithField("path", *openPath).WithError(err).Error("Failed to open map")
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.WithError(err).Error("Editor exited")
		os.Exit(1)
	}
}

// loadGenerators returns the built-in scripts followed by any in dir.
func loadGenerators(dir string) []*script.Generator {
	gens, err := script.Builtins()
	if err != nil {
		log.WithError(err).Error("Failed to load built-in generators")
	}
	if dir == "" {
		return gens
	}
	user, err := script.LoadDir(dir)
	if err != nil {
		log.WithField("dir", dir).WithError(err).Warn("Failed to load generators")
	}
	return append(gens, user...)
}
