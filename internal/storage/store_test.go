package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/nbodysim/internal/nbody"
	"github.com/san-kum/nbodysim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		InitialEnergy: -0.169075164,
		FinalEnergy:   -0.169087605,
		Steps:         1000,
		Elapsed:       250 * time.Millisecond,
		Backend:       "scalar",
		Metrics:       map[string]float64{"energy_drift": 7.4e-5},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.NewRunID()
	if err != nil {
		t.Fatalf("new run id failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	if _, err := st.Save(runID, testResult(), 10, true); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Steps != 1000 {
		t.Errorf("expected 1000 steps, got %d", meta.Steps)
	}
	if meta.Backend != "scalar" {
		t.Errorf("expected scalar backend, got %s", meta.Backend)
	}
	if meta.RecordEvery != 10 || !meta.Recorded {
		t.Errorf("unexpected recording info: %+v", meta)
	}
	if meta.FinalEnergy != -0.169087605 {
		t.Errorf("expected final energy -0.169087605, got %v", meta.FinalEnergy)
	}
	if meta.ElapsedSec != 0.25 {
		t.Errorf("expected 0.25s, got %v", meta.ElapsedSec)
	}
	if meta.Metrics["energy_drift"] != 7.4e-5 {
		t.Errorf("unexpected metrics %v", meta.Metrics)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for _, id := range []string{"first", "second"} {
		if _, err := st.Save(id, testResult(), 0, false); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[1].Timestamp.Before(runs[0].Timestamp) {
		t.Error("runs not sorted by timestamp")
	}
}

func TestStoreSave_Unwritable(t *testing.T) {
	base := t.TempDir()
	st := New(base)

	// metadata.json exists as a directory, so it cannot be written.
	if err := os.MkdirAll(filepath.Join(base, "blocked", metadataFile), 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save("blocked", testResult(), 0, false); err == nil {
		t.Error("expected an error saving over a directory")
	}
	if _, err := st.Load("blocked"); err == nil {
		t.Error("expected no loadable metadata after a failed save")
	}
}

func TestStoreList_Missing(t *testing.T) {
	st := New(t.TempDir() + "/absent")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreTrajectory(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.NewRunID()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := st.LoadTrajectory(runID); !errors.Is(err, ErrNoTrajectory) {
		t.Errorf("expected ErrNoTrajectory, got %v", err)
	}

	tw, err := st.CreateTrajectory(runID)
	if err != nil {
		t.Fatal(err)
	}
	s := nbody.InitialState()
	for step := 0; step < 4; step++ {
		nbody.Advance(&s)
		tw.OnStep(step, &s)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}

	snaps, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(snaps) != 4*nbody.NumBodies {
		t.Errorf("expected %d rows, got %d", 4*nbody.NumBodies, len(snaps))
	}
	if last := snaps[len(snaps)-1]; last.Time != 3 || last.Planet != 4 {
		t.Errorf("unexpected last row %+v", last)
	}
}
