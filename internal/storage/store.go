package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/sphpost/internal/particles"
	"github.com/san-kum/sphpost/internal/report"
)

// Store keeps saved analyses, one directory per analysis.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Metric is a float64 that survives JSON when it is NaN or infinite.
type Metric float64

func (m Metric) MarshalJSON() ([]byte, error) {
	v := float64(m)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*m = Metric(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Metric(v)
	return nil
}

type AnalysisMetadata struct {
	ID        string            `json:"id"`
	Source    string            `json:"source"`
	Case      string            `json:"case"`
	Timestamp time.Time         `json:"timestamp"`
	Particles int               `json:"particles"`
	RingSize  int               `json:"ring_size"`
	Evolving  bool              `json:"evolving"`
	Metrics   map[string]Metric `json:"metrics"`
}

// Save writes summary.json and ring.csv for the case. extra holds further
// named metrics, such as those of the time series.
func (s *Store) Save(c *Case, sum *report.Summary, extra map[string]float64) (string, error) {
	id := fmt.Sprintf("%s_%d", c.ID(), time.Now().Unix())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := AnalysisMetadata{
		ID:        id,
		Source:    c.Path,
		Case:      c.ID(),
		Timestamp: time.Now(),
		Particles: c.Snapshot.N,
		RingSize:  len(c.Snapshot.Ring),
		Evolving:  c.Evolving,
		Metrics:   make(map[string]Metric),
	}
	for name, v := range sum.Metrics() {
		meta.Metrics[name] = Metric(v)
	}
	for name, v := range extra {
		meta.Metrics[name] = Metric(v)
	}

	metaFile, err := os.Create(filepath.Join(dir, "summary.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeRing(filepath.Join(dir, "ring.csv"), c.Snapshot); err != nil {
		return "", err
	}
	return id, nil
}

var ringHeader = []string{"index", "x", "y", "z", "P", "kappa", "rel"}

// RingColumns names the columns of the rows returned by LoadRing.
func RingColumns() []string {
	return append([]string(nil), ringHeader...)
}

func writeRing(path string, snap *particles.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ringHeader); err != nil {
		return err
	}
	for _, i := range snap.Ring {
		x, y, z := snap.Pos.At(i)
		row := []string{strconv.Itoa(i)}
		for _, v := range []float64{x, y, z, snap.P[i], snap.Kappa[i], snap.Rel[i]} {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]AnalysisMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []AnalysisMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]AnalysisMetadata, 0)
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(id string) (*AnalysisMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "summary.json"))
	if err != nil {
		return nil, err
	}

	var meta AnalysisMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadRing reads back the ring particles as rows of ringHeader columns.
func (s *Store) LoadRing(id string) ([][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "ring.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, nil
	}

	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: ring.csv: %v", particles.ErrMalformedData, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
