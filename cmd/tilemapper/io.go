package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.design/x/clipboard"

	"github.com/milk9111/tilemapper/archive"
	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/mapdata"
	"github.com/milk9111/tilemapper/watch"
)

func (g *Game) pathText() string {
	return strings.TrimSpace(g.view.pathInput.GetText())
}

// exportBundle writes every file and tileset into one zip.
func (g *Game) exportBundle() {
	path := exportPath(g.cfg.ExportDir, g.pathText(), time.Now())
	if err := writeBundle(path, g.store.State()); err != nil {
		g.setStatus("export failed: %v", err)
		return
	}
	g.setStatus("exported %s", path)
}

func writeBundle(path string, s editor.State) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return archive.Export(out, s.Files, s.Tilesets)
}

// importBundle loads a zip written by exportBundle. Tilesets replace the
// current set; maps are only brought in when the config asks for it.
func (g *Game) importBundle() {
	path := g.pathText()
	if path == "" {
		g.setStatus("enter the path of a .zip to import")
		return
	}
	if err := g.loadBundle(path); err != nil {
		g.setStatus("import failed: %v", err)
		return
	}
	g.setStatus("imported %s", path)
}

func (g *Game) loadBundle(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	tilesets, err := archive.ImportTilesets(f, info.Size())
	if err != nil {
		return err
	}
	var files []mapdata.File
	if g.cfg.Import.Files {
		if files, err = archive.ImportFiles(f, info.Size()); err != nil {
			return err
		}
	}

	g.store.Dispatch(func(s editor.State) editor.State {
		s = editor.ReplaceTilesets(s, tilesets)
		for _, file := range files {
			s = editor.ImportFile(s, file)
		}
		return s
	})
	log.WithFields(log.Fields{"path": path, "tilesets": len(tilesets), "files": len(files)}).Info("bundle imported")
	return nil
}

func (g *Game) importTMX() {
	path := g.pathText()
	if path == "" {
		g.setStatus("enter the path of a .tmx to import")
		return
	}
	if err := g.loadTMX(path); err != nil {
		g.setStatus("TMX import failed: %v", err)
		return
	}
	g.setStatus("imported %s", path)
}

func (g *Game) loadTMX(path string) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := archive.ImportTMX(os.DirFS(dir), base, g.store.State().Tilesets)
	if err != nil {
		return err
	}
	g.addFile(f)
	return nil
}

func (g *Game) openJSON() {
	path := g.pathText()
	if path == "" {
		g.setStatus("enter the path of a .json map to open")
		return
	}
	if err := g.loadJSON(path); err != nil {
		g.setStatus("open failed: %v", err)
		return
	}
	g.setStatus("opened %s", path)
}

func (g *Game) loadJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f mapdata.File
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	g.addFile(f)
	return nil
}

// addFile imports f under a fresh id and selects it.
func (g *Game) addFile(f mapdata.File) {
	f.ID = g.store.NewID()
	id := f.ID
	g.store.Dispatch(func(s editor.State) editor.State {
		return editor.SelectFile(editor.ImportFile(s, f), id)
	})
}

// open loads whatever path names, by extension.
func (g *Game) open(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return g.loadBundle(path)
	case ".tmx":
		return g.loadTMX(path)
	case ".json":
		return g.loadJSON(path)
	default:
		return fmt.Errorf("don't know how to open %s", path)
	}
}

// copyFile puts the selected file on the clipboard as JSON. Cached tile
// pixels are left out; drawing and compositing read cells from the loaded
// tilesets.
func (g *Game) copyFile() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	f, ok := g.store.State().SelectedFile()
	if !ok {
		return
	}
	data, err := json.MarshalIndent(f.StripTileData(), "", "  ")
	if err != nil {
		g.setStatus("copy failed: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("copied %s", f.Name)
}

func (g *Game) pasteFile() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	var f mapdata.File
	if err := json.Unmarshal(data, &f); err != nil {
		g.setStatus("clipboard does not hold a map")
		return
	}
	if err := f.Validate(); err != nil {
		g.setStatus("paste failed: %v", err)
		return
	}
	g.addFile(f)
	g.setStatus("pasted %s", f.Name)
}

// watchInbox feeds tileset images dropped into dir to the game. It returns
// when the watcher is closed.
func watchInbox(w *watch.Watcher, inbox chan<- mapdata.Tileset) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			ts, err := watch.ReadTileset(path)
			if err != nil {
				log.WithField("path", path).WithError(err).Warn("inbox: skipping file")
				continue
			}
			inbox <- ts
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("inbox watcher")
		}
	}
}
