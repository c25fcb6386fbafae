// Package snapshot reads and writes the resolved data the agenda engine
// consumes: raw records from every source plus the course preferences.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"agendacal/internal/config"
	"agendacal/internal/model"
)

var ErrUnknownFormat = errors.New("snapshot: unknown file extension")

// Snapshot is one already-fetched view of upstream data.
type Snapshot struct {
	Sources     model.Sources              `yaml:"sources" json:"sources"`
	Preferences model.CoursePreferencesMap `yaml:"preferences" json:"preferences"`
}

// Load reads a snapshot from a .yaml/.yml or .json file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Decode parses data according to the file extension ext.
func Decode(ext string, data []byte) (*Snapshot, error) {
	var snap Snapshot
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownFormat
	}
	if snap.Preferences == nil {
		snap.Preferences = model.CoursePreferencesMap{}
	}
	return &snap, nil
}

// Save writes snap atomically, choosing the encoding from the extension.
func Save(path string, snap *Snapshot) error {
	if snap == nil {
		return errors.New("snapshot is nil")
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(snap)
	case ".json":
		data, err = json.MarshalIndent(snap, "", "  ")
	default:
		return ErrUnknownFormat
	}
	if err != nil {
		return err
	}
	return config.WriteFileAtomic(path, data)
}
