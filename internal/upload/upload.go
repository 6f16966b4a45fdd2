// Package upload simulates ingesting course materials: each file walks
// through uploading and processing on a fixed timeline.
package upload

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Status is where a file is in the intake pipeline.
type Status string

const (
	StatusUploading  Status = "uploading"
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Timeline constants. Progress grows by ProgressStep every ProgressInterval
// until it reaches 100; the next tick moves the file to processing, and the
// file completes at CompleteAfter regardless of the tick loop.
const (
	ProgressInterval = 200 * time.Millisecond
	ProgressStep     = 10
	CompleteAfter    = 3500 * time.Millisecond
)

// File is one item in the intake queue.
type File struct {
	ID       string
	Name     string
	Path     string
	Size     int64
	Type     string // MIME type
	Status   Status
	Progress int // 0..100
	Err      string
	AddedAt  time.Time
}

// Kind returns the display category for the file.
func (f File) Kind() Kind {
	return KindOf(f.Type)
}

// Done reports whether the file has reached a terminal status.
func (f File) Done() bool {
	return f.Status == StatusComplete || f.Status == StatusError
}

// StatusAt returns the status and progress of a file elapsed after it was added.
func StatusAt(elapsed time.Duration) (Status, int) {
	if elapsed >= CompleteAfter {
		return StatusComplete, 100
	}
	if elapsed < 0 {
		return StatusUploading, 0
	}
	ticks := int(elapsed / ProgressInterval)
	full := 100 / ProgressStep
	if ticks > full {
		return StatusProcessing, 100
	}
	return StatusUploading, min(ticks*ProgressStep, 100)
}

// Kind groups MIME types for icon selection.
type Kind string

const (
	KindPDF    Kind = "pdf"
	KindSlides Kind = "slides"
	KindFile   Kind = "file"
)

// KindOf classifies a MIME type by substring.
func KindOf(mime string) Kind {
	switch {
	case strings.Contains(mime, "pdf"):
		return KindPDF
	case strings.Contains(mime, "presentation"), strings.Contains(mime, "ppt"):
		return KindSlides
	default:
		return KindFile
	}
}

// Icon returns a terminal glyph for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindPDF:
		return "\U0001F4C4"
	case KindSlides:
		return "\U0001F4CA"
	default:
		return "\U0001F4CE"
	}
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders bytes in 1024-based units with at most two decimals.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	i = min(i, len(sizeUnits)-1)
	v := float64(bytes) / math.Pow(1024, float64(i))
	// Round to two places, then drop trailing zeros.
	v = math.Round(v*100) / 100
	return fmt.Sprintf("%s %s", strconv.FormatFloat(v, 'f', -1, 64), sizeUnits[i])
}
