// Package replay records the tick-stamped logical actions of a session so
// a run can be played back. The simulation is a fixed-timestep loop driven
// only by these actions, so feeding the same records into a fresh world
// reproduces the run.
package replay

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/hollowdeep/crawler-engine/engine/input"
)

// Record is one logical action stamped with the tick it applies on. X and Y
// carry the action payload (pick coordinates, movement axes, weapon slot).
type Record struct {
	Tick uint64
	Kind uint8
	X    float64
	Y    float64
}

// Encode writes a record in fixed-size binary form
func (r *Record) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, r.Tick); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, r.Kind); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, r.X); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, r.Y)
}

// Decode reads one record
func (r *Record) Decode(rd io.Reader) error {
	if err := binary.Read(rd, binary.LittleEndian, &r.Tick); err != nil {
		return err
	}
	if err := binary.Read(rd, binary.LittleEndian, &r.Kind); err != nil {
		return err
	}
	if err := binary.Read(rd, binary.LittleEndian, &r.X); err != nil {
		return err
	}
	return binary.Read(rd, binary.LittleEndian, &r.Y)
}

// Replay holds a recorded action stream, either being written or played
type Replay struct {
	Records []Record
	file    *os.File
	writer  *bufio.Writer
	cursor  int
}

// NewRecorder opens a replay file for recording
func NewRecorder(path string) (*Replay, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Replay{
		file:   f,
		writer: bufio.NewWriter(f),
	}, nil
}

// Record appends an action at the given tick
func (r *Replay) Record(tick uint64, a input.Action) error {
	rec := Record{Tick: tick, Kind: uint8(a.Kind), X: a.X, Y: a.Y}
	r.Records = append(r.Records, rec)
	if r.writer == nil {
		return nil
	}
	return rec.Encode(r.writer)
}

// Close flushes and closes the replay file
func (r *Replay) Close() error {
	if r.writer != nil {
		r.writer.Flush()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Load reads a replay file for playback
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rep := &Replay{}
	rd := bufio.NewReader(f)
	for {
		var rec Record
		if err := rec.Decode(rd); err != nil {
			break
		}
		rep.Records = append(rep.Records, rec)
	}
	return rep, nil
}

// FeedTick pushes every action recorded up to and including the given tick
// into the queue. Records are stored in tick order, so playback keeps a
// cursor instead of rescanning; a record is never dropped, only delivered
// late when the loop skipped its exact tick.
func (r *Replay) FeedTick(tick uint64, q *input.Queue) {
	for r.cursor < len(r.Records) && r.Records[r.cursor].Tick <= tick {
		rec := r.Records[r.cursor]
		q.Push(input.Action{
			Kind: input.ActionKind(rec.Kind),
			X:    rec.X,
			Y:    rec.Y,
		})
		r.cursor++
	}
}

// Done reports whether playback has consumed every record
func (r *Replay) Done() bool {
	return r.cursor >= len(r.Records)
}

// Rewind resets the playback cursor
func (r *Replay) Rewind() {
	r.cursor = 0
}
