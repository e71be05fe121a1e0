package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Chenchunxuan/qbit-simulator/internal/sim"
	"github.com/Chenchunxuan/qbit-simulator/internal/storage"
	"github.com/Chenchunxuan/qbit-simulator/internal/traj"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

func withDataDir(t *testing.T, dir string) {
	t.Helper()
	old := dataDir
	dataDir = dir
	t.Cleanup(func() { dataDir = old })
}

func TestExportCSVRejectsMissingColumn(t *testing.T) {
	dir := t.TempDir()
	runDir := filepath.Join(dir, "trim-cruise_1")
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	// a hand-edited run directory with only two of the expected columns
	csvData := "time,y,z\n0.000000,1.000000,2.000000\n"
	if err := os.WriteFile(filepath.Join(runDir, "states.csv"), []byte(csvData), 0644); err != nil {
		t.Fatal(err)
	}
	withDataDir(t, dir)

	err := exportCSV(&cobra.Command{}, []string{"trim-cruise_1"})
	if err == nil {
		t.Fatal("expected an error for a run missing series columns")
	}
	if !strings.Contains(err.Error(), `"theta"`) {
		t.Errorf("error should name the missing column, got %v", err)
	}
}

func TestExportCSVRoundTripsStoredRun(t *testing.T) {
	dir := t.TempDir()
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	steps := make([]sim.Step, 3)
	for i := range steps {
		steps[i] = sim.Step{
			Time:   float64(i) * 0.01,
			State:  vehicle.State{Y: float64(i), Theta: 1.2},
			Ref:    traj.Reference{Y: float64(i)},
			Thrust: vehicle.Thrust{Top: 0.5, Bottom: 0.5},
		}
	}
	runID, err := st.Save(storage.RunMetadata{Maneuver: "trim-cruise"}, &sim.Result{Steps: steps})
	if err != nil {
		t.Fatal(err)
	}
	withDataDir(t, dir)

	if err := exportCSV(&cobra.Command{}, []string{runID}); err != nil {
		t.Fatalf("complete stored run should export: %v", err)
	}
}
