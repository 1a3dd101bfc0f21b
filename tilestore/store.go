// Package tilestore persists uploaded tilesets and cached composite file
// images in a key-value backend.
package tilestore

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/quasilyte/gdata"
	log "github.com/sirupsen/logrus"

	"github.com/milk9111/tilemapper/mapdata"
)

const (
	tableTilesets   = "tilesets"
	tableFileImages = "fileImages"
)

// Backend is the item store. *gdata.Manager satisfies it.
type Backend interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
	DeleteItem(key string) error
}

// FileImage is a cached composite of a file's tile layers.
type FileImage struct {
	ID   string `json:"id"`
	Blob string `json:"blob"`
}

// Store reads and writes the tilesets and fileImages tables. Reads never
// fail: a backend or decoding error is logged and reported as absent.
type Store struct {
	be Backend
}

// New wraps a backend.
func New(be Backend) *Store {
	return &Store{be: be}
}

// Open opens the per-user data directory for appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("tilestore: open %s: %w", appName, err)
	}
	return New(m), nil
}

// AllTilesets returns every stored tileset, ordered by name.
func (s *Store) AllTilesets() []mapdata.Tileset {
	ids := s.index(tableTilesets)
	res := make([]mapdata.Tileset, 0, len(ids))
	for _, id := range ids {
		if ts, ok := s.Tileset(id); ok {
			res = append(res, ts)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Tileset returns one tileset.
func (s *Store) Tileset(id string) (mapdata.Tileset, bool) {
	var ts mapdata.Tileset
	if !s.get(tableTilesets, id, &ts) {
		return mapdata.Tileset{}, false
	}
	return ts, true
}

// PutTileset inserts or replaces a tileset.
func (s *Store) PutTileset(ts mapdata.Tileset) error {
	return s.put(tableTilesets, ts.ID, ts)
}

// DeleteTileset removes one tileset.
func (s *Store) DeleteTileset(id string) error {
	return s.remove(tableTilesets, id)
}

// ClearTilesets removes every tileset.
func (s *Store) ClearTilesets() error {
	return s.clear(tableTilesets)
}

// ReplaceTilesets clears the table and stores tilesets in its place.
func (s *Store) ReplaceTilesets(tilesets []mapdata.Tileset) error {
	if err := s.ClearTilesets(); err != nil {
		return err
	}
	for _, ts := range tilesets {
		if err := s.PutTileset(ts); err != nil {
			return err
		}
	}
	return nil
}

// FileImage returns the cached composite for a file.
func (s *Store) FileImage(id string) (FileImage, bool) {
	var fi FileImage
	if !s.get(tableFileImages, id, &fi) {
		return FileImage{}, false
	}
	return fi, true
}

// PutFileImage caches a composite.
func (s *Store) PutFileImage(fi FileImage) error {
	return s.put(tableFileImages, fi.ID, fi)
}

// DeleteFileImage drops one cached composite.
func (s *Store) DeleteFileImage(id string) error {
	return s.remove(tableFileImages, id)
}

// ClearFileImages drops every cached composite.
func (s *Store) ClearFileImages() error {
	return s.clear(tableFileImages)
}

func indexKey(table string) string  { return table + "_index" }
func rowKey(table, id string) string { return table + "_" + id }

func (s *Store) index(table string) []string {
	data, err := s.be.LoadItem(indexKey(table))
	if err != nil {
		log.WithField("table", table).WithError(err).Warn("tilestore: load index")
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		log.WithField("table", table).WithError(err).Warn("tilestore: decode index")
		return nil
	}
	return ids
}

func (s *Store) saveIndex(table string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("tilestore: encode %s index: %w", table, err)
	}
	if err := s.be.SaveItem(indexKey(table), data); err != nil {
		return fmt.Errorf("tilestore: save %s index: %w", table, err)
	}
	return nil
}

func (s *Store) get(table, id string, v any) bool {
	if id == "" {
		return false
	}
	data, err := s.be.LoadItem(rowKey(table, id))
	if err != nil {
		log.WithFields(log.Fields{"table": table, "id": id}).WithError(err).Warn("tilestore: load")
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.WithFields(log.Fields{"table": table, "id": id}).WithError(err).Warn("tilestore: decode")
		return false
	}
	return true
}

func (s *Store) put(table, id string, v any) error {
	if id == "" {
		return fmt.Errorf("tilestore: put %s: empty id", table)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("tilestore: encode %s %s: %w", table, id, err)
	}
	if err := s.be.SaveItem(rowKey(table, id), data); err != nil {
		return fmt.Errorf("tilestore: save %s %s: %w", table, id, err)
	}
	ids := s.index(table)
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return s.saveIndex(table, append(ids, id))
}

func (s *Store) remove(table, id string) error {
	if err := s.be.DeleteItem(rowKey(table, id)); err != nil {
		return fmt.Errorf("tilestore: delete %s %s: %w", table, id, err)
	}
	ids := s.index(table)
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return s.saveIndex(table, kept)
}

func (s *Store) clear(table string) error {
	for _, id := range s.index(table) {
		if err := s.be.DeleteItem(rowKey(table, id)); err != nil {
			return fmt.Errorf("tilestore: clear %s: %w", table, err)
		}
	}
	return s.saveIndex(table, []string{})
}
