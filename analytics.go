package biosim

import (
	"io"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats is one analytics record, emitted at each generation
// boundary before the world is reset.
type GenerationStats struct {
	Generation       int     `csv:"generation" json:"generation"`
	Survivors        int     `csv:"survivors" json:"survivors"`
	Kills            int     `csv:"kills" json:"kills"`
	MeanGenomeLength float64 `csv:"mean_genome_length" json:"mean_genome_length"`
	Species          int     `csv:"species" json:"species"`
}

// History accumulates per-generation statistics for the whole run.
type History struct {
	Records []*GenerationStats
}

// Record appends one boundary's statistics.
func (h *History) Record(s GenerationStats) {
	h.Records = append(h.Records, &s)
}

// Last returns the most recent record, or nil before the first boundary.
func (h *History) Last() *GenerationStats {
	if len(h.Records) == 0 {
		return nil
	}
	return h.Records[len(h.Records)-1]
}

// WriteCSV streams the run history as CSV with a header row.
func (h *History) WriteCSV(w io.Writer) error {
	return gocsv.Marshal(h.Records, w)
}

// MeanGenomeLength averages genome length over the live agents; 0 when
// none are alive.
func MeanGenomeLength(agents []*Agent) float64 {
	lengths := make([]float64, 0, len(agents))
	for _, a := range agents {
		if a.Alive {
			lengths = append(lengths, float64(len(a.Genome)))
		}
	}
	if len(lengths) == 0 {
		return 0
	}
	return stat.Mean(lengths, nil)
}
