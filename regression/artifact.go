package regression

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"restock/forecast"
	"restock/utils"
)

// Artifact kinds understood by Decode.
const (
	KindLinear      = "linear"
	KindForest      = "forest"
	KindPersistence = "persistence"
)

// artifact is the on-disk JSON envelope shared by every model kind.
type artifact struct {
	Kind         string    `json:"kind"`
	Window       int       `json:"window"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Trees        []Tree    `json:"trees"`
}

// Decode reads one model artifact. Every model must consume exactly
// forecast.Window inputs.
func Decode(r io.Reader) (forecast.Model, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if a.Window != forecast.Window {
		return nil, fmt.Errorf("model window is %d, service forecasts from %d days", a.Window, forecast.Window)
	}

	switch a.Kind {
	case KindLinear:
		if len(a.Coefficients) != a.Window {
			return nil, fmt.Errorf("linear model has %d coefficients for window %d", len(a.Coefficients), a.Window)
		}
		return &Linear{Intercept: a.Intercept, Coefficients: a.Coefficients}, nil
	case KindForest:
		f := &Forest{Window: a.Window, Trees: a.Trees}
		if err := f.validate(); err != nil {
			return nil, fmt.Errorf("invalid forest model: %w", err)
		}
		return f, nil
	case KindPersistence:
		return &Persistence{Window: a.Window}, nil
	}
	return nil, fmt.Errorf("unknown model kind %q", a.Kind)
}

// LoadFile decodes the artifact at path.
func LoadFile(path string) (forecast.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// LoadDir loads every *.json artifact in dir, keyed by the product id suffix
// of its file name. Files without a numeric suffix are skipped; a malformed
// artifact or two files for the same product fail the whole load.
func LoadDir(dir string) (map[int]forecast.Model, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read model dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	models := make(map[int]forecast.Model)
	seen := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		pid, err := utils.ProductIDFromFilename(e.Name())
		if err != nil {
			log.Printf("Skipping model file: %v", err)
			continue
		}
		if prev, ok := seen[pid]; ok {
			return nil, fmt.Errorf("product %d has two model files: %s and %s", pid, prev, e.Name())
		}
		m, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		models[pid] = m
		seen[pid] = e.Name()
	}
	return models, nil
}

// LoadRegistry builds the process-wide registry from dir.
func LoadRegistry(dir string, mode forecast.ResolutionMode) (*forecast.Registry, error) {
	models, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	reg := forecast.NewRegistry(models, mode)
	log.Printf("Loaded %d demand models from %s (resolution mode: %s)", reg.Len(), dir, mode)
	return reg, nil
}
