package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/nbodysim/internal/nbody"
	"github.com/san-kum/nbodysim/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

// ErrNoTrajectory is returned for runs stored without position recording.
var ErrNoTrajectory = errors.New("storage: run has no trajectory")

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
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Steps         int                `json:"steps"`
	Backend       string             `json:"backend"`
	RecordEvery   int                `json:"record_every,omitempty"`
	Recorded      bool               `json:"recorded"`
	InitialEnergy float64            `json:"initial_energy"`
	FinalEnergy   float64            `json:"final_energy"`
	ElapsedSec    float64            `json:"elapsed_sec"`
	Metrics       map[string]float64 `json:"metrics"`
}

// NewRunID creates the directory for a new run and returns its id.
func (s *Store) NewRunID() (string, error) {
	runID := fmt.Sprintf("nbody_%d", time.Now().UnixNano())
	if err := os.MkdirAll(s.runDir(runID), 0755); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) runDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// TrajectoryPath is where a run's positions are kept.
func (s *Store) TrajectoryPath(runID string) string {
	return filepath.Join(s.runDir(runID), trajectoryFile)
}

// CreateTrajectory opens the trajectory file of a run for streaming.
func (s *Store) CreateTrajectory(runID string) (*TrajectoryWriter, error) {
	return CreateTrajectoryFile(s.TrajectoryPath(runID))
}

// Save writes the metadata of a finished run.
func (s *Store) Save(runID string, result *sim.Result, recordEvery int, recorded bool) (*RunMetadata, error) {
	meta := &RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		Steps:         result.Steps,
		Backend:       result.Backend,
		Recorded:      recorded,
		InitialEnergy: result.InitialEnergy,
		FinalEnergy:   result.FinalEnergy,
		ElapsedSec:    result.Elapsed.Seconds(),
		Metrics:       result.Metrics,
	}
	if recorded {
		meta.RecordEvery = recordEvery
	}

	if err := os.MkdirAll(s.runDir(runID), 0755); err != nil {
		return nil, err
	}

	metaFile, err := os.Create(filepath.Join(s.runDir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return nil, err
	}
	if err := metaFile.Close(); err != nil {
		return nil, fmt.Errorf("storage: close metadata: %w", err)
	}

	return meta, nil
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads the recorded positions of a run.
func (s *Store) LoadTrajectory(runID string) ([]nbody.Snapshot, error) {
	snaps, err := ReadTrajectoryFile(s.TrajectoryPath(runID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoTrajectory, runID)
	}
	return snaps, err
}
