package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/sphstep/internal/particles"
	"github.com/san-kum/sphstep/internal/sim"
)

// Store persists runs as one directory per run under a base
// directory: metadata.json, the sampled metric series and a final
// particle snapshot.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Courant   float64            `json:"courant"`
	Steppers  map[string]string  `json:"steppers"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// particleColumns are the snapshot fields written per particle;
// missing fields write as zero.
var particleColumns = []string{"x", "y", "u", "v", "rho", "h"}

// Save writes one run directory and returns its id. The caller fills
// the identifying metadata; ID, Timestamp, Steps and Metrics are taken
// from the run itself.
func (s *Store) Save(meta RunMetadata, result *sim.Result, groups []*particles.Group) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeSeries(filepath.Join(runDir, "series.csv"), result); err != nil {
		return "", err
	}
	if err := s.writeParticles(filepath.Join(runDir, "particles.csv"), groups); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeSeries(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	header := append([]string{"time", "dt"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Dts[i], 'f', 6, 64),
		}
		for _, name := range names {
			val := 0.0
			if series := result.Series[name]; i < len(series) {
				val = series[i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeParticles(path string, groups []*particles.Group) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := append([]string{"group", "idx"}, particleColumns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, g := range groups {
		for i := 0; i < g.Len(); i++ {
			row := []string{g.Name(), strconv.Itoa(i)}
			for _, col := range particleColumns {
				val := 0.0
				if f := g.Field(col); f != nil {
					val = f[i]
				}
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// List reads the metadata of every run directory, skipping anything
// unreadable.
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads back the sampled times, step sizes and metric
// series of a run.
func (s *Store) LoadSeries(runID string) ([]float64, []float64, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 1 {
		return nil, nil, nil, fmt.Errorf("run %s has an empty series", runID)
	}

	header := records[0]
	series := make(map[string][]float64, len(header)-2)
	times := make([]float64, 0, len(records)-1)
	dts := make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		dt, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		dts = append(dts, dt)
		for col := 2; col < len(header); col++ {
			val, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				val = 0
			}
			series[header[col]] = append(series[header[col]], val)
		}
	}

	return times, dts, series, nil
}

// LoadParticles rebuilds the final particle snapshot of a run. Groups
// come back in file order carrying exactly the snapshot columns.
func (s *Store) LoadParticles(runID string) ([]*particles.Group, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "particles.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("run %s has an empty particle snapshot", runID)
	}

	header := records[0]
	if len(header) < 3 {
		return nil, fmt.Errorf("run %s has a malformed particle snapshot", runID)
	}
	columns := header[2:]

	order := make([]string, 0)
	rows := make(map[string][][]string)
	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		name := record[0]
		if _, ok := rows[name]; !ok {
			order = append(order, name)
		}
		rows[name] = append(rows[name], record[2:])
	}

	groups := make([]*particles.Group, 0, len(order))
	for _, name := range order {
		g := particles.New(name, len(rows[name]), columns...)
		for i, row := range rows[name] {
			for c, col := range columns {
				val, err := strconv.ParseFloat(row[c], 64)
				if err != nil {
					val = 0
				}
				g.Set(col, i, val)
			}
		}
		groups = append(groups, g)
	}
	return groups, nil
}
