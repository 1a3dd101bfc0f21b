// Package archive reads and writes the zip bundle that carries a project's
// maps and tileset images.
package archive

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/milk9111/tilemapper/mapdata"
)

const tilesetDir = "tilesets/"

// Export writes one tilesets/<id>/<name>.png entry per tileset and one
// <fileName>.json entry per file. Tile cells are written without their
// cached pixels. A tileset entry carries the exact name in its comment, since
// the entry name has path characters replaced.
func Export(w io.Writer, files []mapdata.File, tilesets []mapdata.Tileset) error {
	zw := zip.NewWriter(w)
	for _, ts := range tilesets {
		data, err := mapdata.DecodeDataURL(ts.Blob)
		if err != nil {
			return fmt.Errorf("archive: tileset %s: %w", ts.ID, err)
		}
		hdr := &zip.FileHeader{
			Name:    tilesetDir + ts.ID + "/" + sanitize(ts.Name) + ".png",
			Method:  zip.Deflate,
			Comment: ts.Name,
		}
		if err := writeHeader(zw, hdr, data); err != nil {
			return err
		}
	}

	used := make(map[string]bool)
	for _, f := range mapdata.SortedFiles(files) {
		data, err := json.MarshalIndent(f.StripTileData(), "", "  ")
		if err != nil {
			return fmt.Errorf("archive: encode file %s: %w", f.ID, err)
		}
		base := sanitize(f.Name)
		if used[base] {
			base = base + "-" + f.ID
		}
		used[base] = true
		if err := writeEntry(zw, base+".json", data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("archive: close: %w", err)
	}
	log.WithFields(log.Fields{"files": len(files), "tilesets": len(tilesets)}).Info("archive: exported")
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	return writeHeader(zw, &zip.FileHeader{Name: name, Method: zip.Deflate}, data)
}

func writeHeader(zw *zip.Writer, hdr *zip.FileHeader, data []byte) error {
	ew, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("archive: create %s: %w", hdr.Name, err)
	}
	if _, err := ew.Write(data); err != nil {
		return fmt.Errorf("archive: write %s: %w", hdr.Name, err)
	}
	return nil
}

// sanitize keeps entry names inside their directory.
func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "untitled"
	}
	return name
}

// ImportTilesets returns every tileset image in the bundle. Entries named
// tilesets/<id>/<name>.png keep their id; the flat tilesets/<name>.png form
// gets a fresh one. An entry comment, when present, is the tileset name. The result is the complete set: callers replace their
// tileset table with it.
func ImportTilesets(r io.ReaderAt, size int64) ([]mapdata.Tileset, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("archive: open: %w", err)
	}
	var res []mapdata.Tileset
	for _, zf := range zr.File {
		id, name, ok := tilesetEntry(zf.Name)
		if !ok {
			continue
		}
		data, err := readEntry(zf)
		if err != nil {
			return nil, err
		}
		if zf.Comment != "" {
			name = zf.Comment
		}
		res = append(res, mapdata.Tileset{
			ID:   id,
			Name: name,
			Blob: mapdata.EncodeDataURL(data),
		})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	log.WithField("tilesets", len(res)).Info("archive: imported tilesets")
	return res, nil
}

func tilesetEntry(name string) (id, base string, ok bool) {
	if !strings.HasPrefix(name, tilesetDir) || !strings.EqualFold(path.Ext(name), ".png") {
		return "", "", false
	}
	rest := strings.TrimPrefix(name, tilesetDir)
	base = strings.TrimSuffix(path.Base(rest), path.Ext(rest))
	switch parts := strings.Split(rest, "/"); len(parts) {
	case 1:
		return uuid.NewString(), base, true
	case 2:
		if parts[0] == "" {
			return "", "", false
		}
		return parts[0], base, true
	default:
		return "", "", false
	}
}

// ImportFiles parses every top-level .json entry of the bundle as a File.
// Entries that fail to parse or validate are logged and skipped.
func ImportFiles(r io.ReaderAt, size int64) ([]mapdata.File, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("archive: open: %w", err)
	}
	var res []mapdata.File
	for _, zf := range zr.File {
		if strings.Contains(zf.Name, "/") || !strings.EqualFold(path.Ext(zf.Name), ".json") {
			continue
		}
		data, err := readEntry(zf)
		if err != nil {
			return nil, err
		}
		var f mapdata.File
		if err := json.Unmarshal(data, &f); err != nil {
			log.WithField("entry", zf.Name).WithError(err).Warn("archive: skip file")
			continue
		}
		if err := f.Validate(); err != nil {
			log.WithField("entry", zf.Name).WithError(err).Warn("archive: skip file")
			continue
		}
		res = append(res, f)
	}
	return mapdata.SortedFiles(res), nil
}

func readEntry(zf *zip.File) ([]byte, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", zf.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("archive: read %s: %w", zf.Name, err)
	}
	return data, nil
}
