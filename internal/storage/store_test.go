package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sphstep/internal/particles"
	"github.com/san-kum/sphstep/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Times: []float64{0.1, 0.2},
		Dts:   []float64{0.1, 0.1},
		Series: map[string][]float64{
			"kinetic_energy": {1.5, 1.25},
			"total_mass":     {4.0, 4.0},
		},
		Metrics:    map[string]float64{"kinetic_energy": 1.25, "total_mass": 4.0},
		StepsTaken: 2,
	}
}

func testGroups() []*particles.Group {
	g := particles.New("fluid", 2, "x", "y", "u", "v", "rho", "h")
	g.Set("x", 0, 0.5)
	g.Set("x", 1, 1.5)
	g.Fill("rho", 1000.0)
	return []*particles.Group{g}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Scenario: "dam_break",
		Seed:     42,
		Dt:       0.1,
		Duration: 0.2,
		Courant:  0.5,
		Steppers: map[string]string{"fluid": "wcsph"},
	}
	runID, err := st.Save(meta, testResult(), testGroups())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Scenario != "dam_break" {
		t.Errorf("expected scenario dam_break, got %s", loaded.Scenario)
	}
	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
	if loaded.Steps != 2 {
		t.Errorf("expected 2 steps, got %d", loaded.Steps)
	}
	if loaded.Steppers["fluid"] != "wcsph" {
		t.Errorf("expected stepper wcsph, got %v", loaded.Steppers)
	}
	if loaded.Metrics["kinetic_energy"] != 1.25 {
		t.Errorf("expected kinetic energy 1.25, got %f", loaded.Metrics["kinetic_energy"])
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Scenario: "drop"}, testResult(), testGroups())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "series.csv", "particles.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestStoreLoadSeries(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Scenario: "channel"}, testResult(), testGroups())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	times, dts, series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if len(times) != 2 || times[0] != 0.1 || times[1] != 0.2 {
		t.Errorf("unexpected times: %v", times)
	}
	if len(dts) != 2 || dts[0] != 0.1 {
		t.Errorf("unexpected dts: %v", dts)
	}
	ke, ok := series["kinetic_energy"]
	if !ok {
		t.Fatalf("expected kinetic_energy series, got %v", series)
	}
	if len(ke) != 2 || ke[0] != 1.5 || ke[1] != 1.25 {
		t.Errorf("unexpected kinetic energy series: %v", ke)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := st.Save(RunMetadata{Scenario: "dam_break"}, testResult(), testGroups()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(RunMetadata{Scenario: "drop"}, testResult(), testGroups()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Stray files and junk directories must not break the listing.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "empty_dir"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	meta := &RunMetadata{
		Scenario: "dam_break",
		Dt:       0.1,
		Duration: 0.2,
		Courant:  0.5,
		Steps:    2,
		Steppers: map[string]string{"fluid": "wcsph"},
		Metrics:  map[string]float64{"total_mass": 4.0},
	}
	result := testResult()

	if err := ExportJSON(path, meta, result.Times, result.Dts, result.Series); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if exported.Scenario != "dam_break" {
		t.Errorf("expected scenario dam_break, got %s", exported.Scenario)
	}
	if len(exported.Times) != 2 {
		t.Errorf("expected 2 samples, got %d", len(exported.Times))
	}
	if exported.Series["kinetic_energy"][1] != 1.25 {
		t.Errorf("unexpected series payload: %v", exported.Series)
	}
	if exported.Metrics["total_mass"] != 4.0 {
		t.Errorf("unexpected metrics: %v", exported.Metrics)
	}
}

func TestStoreLoadParticles(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	solid := particles.New("wall", 1, "x", "y", "u", "v", "rho", "h")
	solid.Set("x", 0, -0.25)
	groups := append(testGroups(), solid)

	runID, err := st.Save(RunMetadata{Scenario: "dam_break"}, testResult(), groups)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.LoadParticles(runID)
	if err != nil {
		t.Fatalf("load particles failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(loaded))
	}
	if loaded[0].Name() != "fluid" || loaded[1].Name() != "wall" {
		t.Errorf("expected file order fluid,wall, got %s,%s", loaded[0].Name(), loaded[1].Name())
	}
	if loaded[0].Len() != 2 {
		t.Errorf("expected 2 fluid particles, got %d", loaded[0].Len())
	}
	x := loaded[0].Field("x")
	if x[0] != 0.5 || x[1] != 1.5 {
		t.Errorf("expected x positions 0.5,1.5, got %v", x)
	}
	rho := loaded[0].Field("rho")
	if rho[0] != 1000.0 {
		t.Errorf("expected rho 1000, got %f", rho[0])
	}
	if got := loaded[1].Field("x")[0]; got != -0.25 {
		t.Errorf("expected wall x -0.25, got %f", got)
	}
}

func TestStoreLoadParticlesMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.LoadParticles("nope_123"); err == nil {
		t.Fatal("expected error for missing run")
	}
}
