package ensemble

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/gzip"
)

const artifactFormat = "ridedemand-ensemble/1"

// Artifact is the on-disk form of a trained ensemble: gob, gzip-compressed.
type Artifact struct {
	Format   string
	Features []string
	Model    *Ensemble
}

// Save writes the model to path, replacing any existing file. The artifact is
// written beside the target and renamed into place so readers never observe a
// partial file.
func Save(path string, m *Ensemble, features []string) (err error) {
	if !m.Fitted() {
		return ErrNotFitted
	}
	if len(features) != m.NumFeatures {
		return fmt.Errorf("%w: %d feature names for %d features", ErrFeatureMismatch, len(features), m.NumFeatures)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".ensemble-*")
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	zw := gzip.NewWriter(tmp)
	a := Artifact{Format: artifactFormat, Features: features, Model: m}
	if err = gob.NewEncoder(zw).Encode(&a); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err = zw.Close(); err != nil {
		return fmt.Errorf("compress artifact: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync artifact: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("install artifact: %w", err)
	}
	return nil
}

// Load reads a model saved by Save and checks it was trained on features.
func Load(path string, features []string) (*Ensemble, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer zr.Close()

	var a Artifact
	if err := gob.NewDecoder(zr).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if a.Format != artifactFormat {
		return nil, fmt.Errorf("unsupported artifact format %q", a.Format)
	}
	if !slices.Equal(a.Features, features) {
		return nil, fmt.Errorf("%w: artifact trained on %v, expected %v", ErrFeatureMismatch, a.Features, features)
	}
	if !a.Model.Fitted() {
		return nil, ErrNotFitted
	}
	return a.Model, nil
}
