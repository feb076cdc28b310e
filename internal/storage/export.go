package storage

import (
	"encoding/json"
	"io"
)

// ExportData is a saved analysis with its ring particles inlined.
type ExportData struct {
	*AnalysisMetadata
	Columns []string   `json:"columns"`
	Ring    [][]Metric `json:"ring"`
}

// Export writes the saved analysis id to w as indented JSON.
func (s *Store) Export(w io.Writer, id string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	rows, err := s.LoadRing(id)
	if err != nil {
		return err
	}

	data := ExportData{
		AnalysisMetadata: meta,
		Columns:          RingColumns(),
		Ring:             make([][]Metric, len(rows)),
	}
	for i, row := range rows {
		data.Ring[i] = make([]Metric, len(row))
		for j, v := range row {
			data.Ring[i][j] = Metric(v)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
