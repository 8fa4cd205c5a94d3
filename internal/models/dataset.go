package models

import (
	"fmt"
	"time"

	"whiteboardLabeler/internal/errs"
)

// Dataset is the whole persisted state of the flat-file store and the
// in-memory record store every flat-file operation is applied to.
type Dataset struct {
	Whiteboards []Whiteboard `json:"whiteboards"`
	Contractors []Contractor `json:"contractors"`
}

func NewDataset() *Dataset {
	return &Dataset{
		Whiteboards: []Whiteboard{},
		Contractors: []Contractor{},
	}
}

// Validate checks the uniqueness invariants and fills nil chunk lists.
func (d *Dataset) Validate() error {
	whiteboardIDs := make(map[string]struct{}, len(d.Whiteboards))
	for i := range d.Whiteboards {
		whiteboard := &d.Whiteboards[i]
		if whiteboard.ID == "" {
			return fmt.Errorf("%w: whiteboard at index %d has no id", errs.ErrCorruptState, i)
		}
		if _, ok := whiteboardIDs[whiteboard.ID]; ok {
			return fmt.Errorf("%w: duplicate whiteboard id %q", errs.ErrCorruptState, whiteboard.ID)
		}
		whiteboardIDs[whiteboard.ID] = struct{}{}

		if whiteboard.Chunks == nil {
			whiteboard.Chunks = []Chunk{}
		}
		chunkIDs := make(map[string]struct{}, len(whiteboard.Chunks))
		for _, chunk := range whiteboard.Chunks {
			if _, ok := chunkIDs[chunk.ID]; ok {
				return fmt.Errorf("%w: duplicate chunk id %q on whiteboard %q", errs.ErrCorruptState, chunk.ID, whiteboard.ID)
			}
			chunkIDs[chunk.ID] = struct{}{}
		}
	}

	names := make(map[string]struct{}, len(d.Contractors))
	for _, contractor := range d.Contractors {
		if _, ok := names[contractor.Name]; ok {
			return fmt.Errorf("%w: duplicate contractor %q", errs.ErrCorruptState, contractor.Name)
		}
		names[contractor.Name] = struct{}{}
	}
	return nil
}

func (d *Dataset) FindWhiteboard(id string) (*Whiteboard, bool) {
	for i := range d.Whiteboards {
		if d.Whiteboards[i].ID == id {
			return &d.Whiteboards[i], true
		}
	}
	return nil, false
}

func (d *Dataset) FindContractor(name string) (*Contractor, bool) {
	for i := range d.Contractors {
		if d.Contractors[i].Name == name {
			return &d.Contractors[i], true
		}
	}
	return nil, false
}

// EnsureContractor returns the named contractor, creating it with
// processed=0 and lastProcessed=now when absent.
func (d *Dataset) EnsureContractor(name string, now time.Time) (Contractor, bool) {
	if contractor, ok := d.FindContractor(name); ok {
		return *contractor, false
	}
	contractor := Contractor{Name: name, Processed: 0, LastProcessed: now}
	d.Contractors = append(d.Contractors, contractor)
	return contractor, true
}

// RecordContribution bumps the counters of an existing contractor.
// It reports false when no such contractor exists.
func (d *Dataset) RecordContribution(name string, at time.Time) bool {
	contractor, ok := d.FindContractor(name)
	if !ok {
		return false
	}
	contractor.Processed++
	contractor.LastProcessed = at
	return true
}

// AppendChunk adds chunk to the end of its whiteboard's chunk list, marks
// the whiteboard as last touched by the chunk's contractor and records the
// contribution when that contractor is known.
func (d *Dataset) AppendChunk(chunk Chunk) error {
	whiteboard, ok := d.FindWhiteboard(chunk.WhiteboardID)
	if !ok {
		return errs.ErrWhiteboardNotFound
	}
	for _, existing := range whiteboard.Chunks {
		if existing.ID == chunk.ID {
			return fmt.Errorf("%w: duplicate chunk id %q", errs.ErrInvalidInput, chunk.ID)
		}
	}
	chunk.Position = len(whiteboard.Chunks) + 1
	whiteboard.Chunks = append(whiteboard.Chunks, chunk)
	if chunk.Contractor != "" {
		whiteboard.Contractor = chunk.Contractor
	}
	d.RecordContribution(chunk.Contractor, chunk.CreatedAt)
	return nil
}

// RemoveChunk deletes exactly one chunk. A missing whiteboard and a missing
// chunk are the same error.
func (d *Dataset) RemoveChunk(whiteboardID, chunkID string) error {
	whiteboard, ok := d.FindWhiteboard(whiteboardID)
	if !ok {
		return errs.ErrWhiteboardOrChunkNotFound
	}
	for i, chunk := range whiteboard.Chunks {
		if chunk.ID == chunkID {
			whiteboard.Chunks = append(whiteboard.Chunks[:i], whiteboard.Chunks[i+1:]...)
			return nil
		}
	}
	return errs.ErrWhiteboardOrChunkNotFound
}

func (d *Dataset) SetComplete(whiteboardID string, complete bool, contractor string) error {
	whiteboard, ok := d.FindWhiteboard(whiteboardID)
	if !ok {
		return errs.ErrWhiteboardNotFound
	}
	whiteboard.Complete = complete
	if contractor != "" {
		whiteboard.Contractor = contractor
	}
	return nil
}

func (d *Dataset) Summaries() []WhiteboardSummary {
	summaries := make([]WhiteboardSummary, 0, len(d.Whiteboards))
	for i := range d.Whiteboards {
		summaries = append(summaries, d.Whiteboards[i].ToSummary())
	}
	return summaries
}

// ExportRows flattens chunks in whiteboard-then-chunk insertion order.
func (d *Dataset) ExportRows() []ExportRow {
	rows := []ExportRow{}
	for _, whiteboard := range d.Whiteboards {
		for _, chunk := range whiteboard.Chunks {
			rows = append(rows, NewExportRow(whiteboard.ID, chunk))
		}
	}
	return rows
}

// Import appends whiteboards whose id is not yet present and returns how
// many were added.
func (d *Dataset) Import(whiteboards []Whiteboard) int {
	imported := 0
	for _, whiteboard := range whiteboards {
		if _, exists := d.FindWhiteboard(whiteboard.ID); exists {
			continue
		}
		whiteboard.Chunks = []Chunk{}
		whiteboard.Position = len(d.Whiteboards) + 1
		d.Whiteboards = append(d.Whiteboards, whiteboard)
		imported++
	}
	return imported
}

// Reset clears completion and the last contractor on every whiteboard.
func (d *Dataset) Reset() {
	for i := range d.Whiteboards {
		d.Whiteboards[i].Complete = false
		d.Whiteboards[i].Contractor = ""
	}
}
