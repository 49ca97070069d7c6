// file: internal/dataset/dataset.go
// version: 1.2.0
// guid: 4b5c6d7e-8f9a-4b0c-8d1e-2f3a4b5c6d7e

package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jdfalk/pokematch/internal/models"
)

// ErrNotFound is returned when a dataset name is unknown.
var ErrNotFound = errors.New("dataset not found")

const (
	manifestFile         = "manifest.yaml"
	defaultCreaturesFile = "creatures.txt"
	defaultMovesFile     = "moves.txt"
)

// manifest is the optional per-dataset manifest.yaml.
type manifest struct {
	Name          string   `yaml:"name"`
	CreaturesFile string   `yaml:"creatures_file"`
	MovesFile     string   `yaml:"moves_file"`
	Exemptions    []string `yaml:"exemptions"`
}

// Catalog loads and serves the datasets found under a root directory, one
// subdirectory per dataset. Reload fully replaces the loaded contents.
type Catalog struct {
	mu       sync.RWMutex
	root     string
	datasets map[string]models.Dataset
	order    []string
}

// NewCatalog creates a Catalog for root without loading it.
func NewCatalog(root string) *Catalog {
	return &Catalog{
		root:     root,
		datasets: make(map[string]models.Dataset),
	}
}

// Load reads every dataset subdirectory under the root. Directories that
// fail to load are skipped with a warning so one bad dataset cannot take
// down the rest of the catalog.
func (c *Catalog) Load() error {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return fmt.Errorf("failed to read datasets root %s: %w", c.root, err)
	}

	datasets := make(map[string]models.Dataset)
	var order []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ds, err := loadDataset(filepath.Join(c.root, entry.Name()), entry.Name())
		if err != nil {
			log.Printf("[WARN] Skipping dataset %s: %v", entry.Name(), err)
			continue
		}
		datasets[ds.Name] = ds
		order = append(order, ds.Name)
	}
	sort.Strings(order)

	c.mu.Lock()
	c.datasets = datasets
	c.order = order
	c.mu.Unlock()

	log.Printf("[INFO] Loaded %d dataset(s) from %s", len(order), c.root)
	return nil
}

// List returns the loaded datasets sorted by name.
func (c *Catalog) List() []models.Dataset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Dataset, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.datasets[name])
	}
	return out
}

// Get returns the named dataset or ErrNotFound.
func (c *Catalog) Get(name string) (models.Dataset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.datasets[name]
	if !ok {
		return models.Dataset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return ds, nil
}

// Len returns the number of loaded datasets.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func loadDataset(dir, fallbackName string) (models.Dataset, error) {
	m := manifest{
		Name:          fallbackName,
		CreaturesFile: defaultCreaturesFile,
		MovesFile:     defaultMovesFile,
	}
	if raw, err := os.ReadFile(filepath.Join(dir, manifestFile)); err == nil {
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return models.Dataset{}, fmt.Errorf("invalid %s: %w", manifestFile, err)
		}
		if m.Name == "" {
			m.Name = fallbackName
		}
		if m.CreaturesFile == "" {
			m.CreaturesFile = defaultCreaturesFile
		}
		if m.MovesFile == "" {
			m.MovesFile = defaultMovesFile
		}
	} else if !os.IsNotExist(err) {
		return models.Dataset{}, fmt.Errorf("failed to read %s: %w", manifestFile, err)
	}

	creatures, err := readLines(filepath.Join(dir, m.CreaturesFile))
	if err != nil {
		return models.Dataset{}, err
	}
	moves, err := readLines(filepath.Join(dir, m.MovesFile))
	if err != nil {
		return models.Dataset{}, err
	}
	if len(creatures) == 0 {
		return models.Dataset{}, fmt.Errorf("%s contains no entries", m.CreaturesFile)
	}
	if len(moves) == 0 {
		return models.Dataset{}, fmt.Errorf("%s contains no entries", m.MovesFile)
	}

	return models.Dataset{
		Name:       m.Name,
		Creatures:  creatures,
		Moves:      moves,
		Exemptions: m.Exemptions,
	}, nil
}

// readLines loads a newline-delimited name list: one trimmed entry per
// line, blank lines dropped, order preserved. This is the only place
// empty strings are filtered out, so the engine never sees one.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}
