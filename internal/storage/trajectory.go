package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/nbodysim/internal/nbody"
)

var trajectoryHeader = []string{"time", "planet", "x", "y", "z"}

// ErrBadHeader is returned when a trajectory file does not start with
// time,planet,x,y,z.
var ErrBadHeader = errors.New("storage: unexpected trajectory header")

// TrajectoryWriter streams snapshots as CSV rows. It implements
// sim.Observer; write errors are kept and reported by Flush and Close.
type TrajectoryWriter struct {
	w      *csv.Writer
	closer io.Closer
	row    []string
	rows   int
	err    error
}

// NewTrajectoryWriter writes the header row to w.
func NewTrajectoryWriter(w io.Writer) (*TrajectoryWriter, error) {
	tw := &TrajectoryWriter{
		w:   csv.NewWriter(w),
		row: make([]string, len(trajectoryHeader)),
	}
	if err := tw.w.Write(trajectoryHeader); err != nil {
		return nil, err
	}
	return tw, nil
}

// CreateTrajectoryFile creates or truncates path and returns a writer that
// closes the file on Close.
func CreateTrajectoryFile(path string) (*TrajectoryWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	tw, err := NewTrajectoryWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	tw.closer = f
	return tw, nil
}

func (tw *TrajectoryWriter) OnStep(step int, s *nbody.System) {
	if tw.err != nil {
		return
	}
	for _, sn := range s.Snapshots(step) {
		if err := tw.Write(sn); err != nil {
			tw.err = err
			return
		}
	}
}

func (tw *TrajectoryWriter) Write(sn nbody.Snapshot) error {
	tw.row[0] = strconv.Itoa(sn.Time)
	tw.row[1] = strconv.Itoa(sn.Planet)
	tw.row[2] = strconv.FormatFloat(sn.X, 'f', -1, 64)
	tw.row[3] = strconv.FormatFloat(sn.Y, 'f', -1, 64)
	tw.row[4] = strconv.FormatFloat(sn.Z, 'f', -1, 64)
	if err := tw.w.Write(tw.row); err != nil {
		return err
	}
	tw.rows++
	return nil
}

// Rows returns the number of data rows written so far.
func (tw *TrajectoryWriter) Rows() int { return tw.rows }

func (tw *TrajectoryWriter) Flush() error {
	tw.w.Flush()
	if tw.err != nil {
		return tw.err
	}
	return tw.w.Error()
}

func (tw *TrajectoryWriter) Close() error {
	err := tw.Flush()
	if tw.closer != nil {
		if cerr := tw.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// ReadTrajectory parses a trajectory CSV.
func ReadTrajectory(r io.Reader) ([]nbody.Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(trajectoryHeader)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrBadHeader
	}
	if err != nil {
		return nil, err
	}
	for i, h := range trajectoryHeader {
		if header[i] != h {
			return nil, fmt.Errorf("%w: %v", ErrBadHeader, header)
		}
	}

	snaps := make([]nbody.Snapshot, 0, 1024)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		sn, err := parseSnapshot(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		snaps = append(snaps, sn)
	}
	return snaps, nil
}

// ReadTrajectoryFile opens and parses the trajectory at path.
func ReadTrajectoryFile(path string) ([]nbody.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTrajectory(f)
}

func parseSnapshot(rec []string) (nbody.Snapshot, error) {
	var sn nbody.Snapshot
	var err error
	if sn.Time, err = strconv.Atoi(rec[0]); err != nil {
		return sn, err
	}
	if sn.Planet, err = strconv.Atoi(rec[1]); err != nil {
		return sn, err
	}
	if sn.Planet < 0 || sn.Planet >= nbody.NumBodies {
		return sn, fmt.Errorf("planet index %d out of range", sn.Planet)
	}
	if sn.X, err = strconv.ParseFloat(rec[2], 64); err != nil {
		return sn, err
	}
	if sn.Y, err = strconv.ParseFloat(rec[3], 64); err != nil {
		return sn, err
	}
	if sn.Z, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return sn, err
	}
	return sn, nil
}
