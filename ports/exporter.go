package ports

import (
	"io"

	"datastory/domain/core"
	"datastory/domain/insight"
)

// Exporter serializes a ranked story into a machine-readable document.
type Exporter interface {
	Export(reportID core.ReportID, story insight.Story) ([]byte, error)
}

// WorkbookWriter renders a ranked story into a spreadsheet stream. Where the
// stream points (file, HTTP response) is the caller's concern.
type WorkbookWriter interface {
	WriteWorkbook(story insight.Story, w io.Writer) error
}
