package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/gfx/internal/graph"
	"github.com/san-kum/gfx/internal/metrics"
)

const (
	metadataFile   = "metadata.json"
	frameTimesFile = "frametimes.csv"
)

// Store lays runs out as one directory each under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Frames    int                `json:"frames"`
	Workers   int                `json:"workers"`
	Spheres   int                `json:"spheres"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewRunID names a run after its preset and the current second.
func NewRunID(preset string) string {
	if preset == "" {
		preset = "run"
	}
	return fmt.Sprintf("%s_%d", preset, time.Now().Unix())
}

// Summarize reduces a frame-time history to the metrics stored with a run.
func Summarize(h *graph.History) map[string]float64 {
	return metrics.Collect(h, metrics.Standard()...)
}

// SaveRun writes metadata.json and frametimes.csv for meta.ID. Metrics are
// filled from h when meta has none.
func (s *Store) SaveRun(meta RunMetadata, h *graph.History) error {
	if meta.ID == "" {
		return fmt.Errorf("storage: run has no id")
	}
	runDir := s.Dir(meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.Metrics == nil {
		meta.Metrics = Summarize(h)
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, frameTimesFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"frame", "seconds", "ms"}); err != nil {
		return err
	}
	for i := 0; i < h.Len(); i++ {
		v := h.At(i)
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(v, 'f', 6, 64),
			strconv.FormatFloat(v*1000, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// SaveFrame encodes img as <name>.png inside the run directory and returns
// the file path.
func (s *Store) SaveFrame(runID, name string, img image.Image) (string, error) {
	runDir := s.Dir(runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(runDir, name+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, f.Close()
}

// SaveFile writes raw bytes, such as an exported SVG, into the run directory.
func (s *Store) SaveFile(runID, name string, data []byte) (string, error) {
	runDir := s.Dir(runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(runDir, name)
	return path, os.WriteFile(path, data, 0644)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrameTimes reads a run's frame times back in seconds, oldest first.
func (s *Store) LoadFrameTimes(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), frameTimesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", record[0], err)
		}
		times = append(times, v)
	}
	return times, nil
}
