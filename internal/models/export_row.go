package models

import (
	"strconv"
	"time"
)

var exportHeader = []string{
	"whiteboardId",
	"chunkId",
	"x",
	"y",
	"width",
	"height",
	"transcription",
	"confidence",
	"contractor",
	"createdAt",
}

// ExportRow is one flattened chunk in the CSV export.
type ExportRow struct {
	WhiteboardID  string
	ChunkID       string
	X             float64
	Y             float64
	Width         float64
	Height        float64
	Transcription string
	Confidence    string
	Contractor    string
	CreatedAt     time.Time
}

func ExportHeader() []string {
	header := make([]string, len(exportHeader))
	copy(header, exportHeader)
	return header
}

func NewExportRow(whiteboardID string, chunk Chunk) ExportRow {
	return ExportRow{
		WhiteboardID:  whiteboardID,
		ChunkID:       chunk.ID,
		X:             chunk.Coordinates.X,
		Y:             chunk.Coordinates.Y,
		Width:         chunk.Coordinates.Width,
		Height:        chunk.Coordinates.Height,
		Transcription: chunk.Transcription,
		Confidence:    string(chunk.Confidence),
		Contractor:    chunk.Contractor,
		CreatedAt:     chunk.CreatedAt,
	}
}

// CreatedAtLayout always prints milliseconds, so every createdAt cell has the
// same width.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Record renders the row in ExportHeader column order.
func (row ExportRow) Record() []string {
	return []string{
		row.WhiteboardID,
		row.ChunkID,
		formatFloat(row.X),
		formatFloat(row.Y),
		formatFloat(row.Width),
		formatFloat(row.Height),
		row.Transcription,
		row.Confidence,
		row.Contractor,
		row.CreatedAt.UTC().Format(CreatedAtLayout),
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
