package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"datastory/domain/insight"
	apperrors "datastory/internal/errors"
	"datastory/ports"
)

var _ ports.WorkbookWriter = (*StoryWriter)(nil)

const (
	findingsSheet        = "Findings"
	supportingSheet      = "Supporting"
	recommendationsSheet = "Recommendations"
)

// StoryWriter renders a composed story as an xlsx workbook with one sheet per
// report section. Rows follow ranking order, so two exports of the same story
// produce the same cell contents.
type StoryWriter struct{}

// NewStoryWriter creates a workbook writer.
func NewStoryWriter() *StoryWriter {
	return &StoryWriter{}
}

// WriteWorkbook writes the story to w as an xlsx workbook.
func (sw *StoryWriter) WriteWorkbook(story insight.Story, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := sw.writeFindings(f, story); err != nil {
		return err
	}
	if err := sw.writeSupporting(f, story); err != nil {
		return err
	}
	if err := sw.writeRecommendations(f, story); err != nil {
		return err
	}

	// excelize seeds new files with "Sheet1"
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return apperrors.Wrap(err, "failed to remove default sheet")
	}
	if idx, err := f.GetSheetIndex(findingsSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.Write(w); err != nil {
		return apperrors.Wrap(err, "failed to write workbook")
	}
	return nil
}

func (sw *StoryWriter) writeFindings(f *excelize.File, story insight.Story) error {
	if _, err := f.NewSheet(findingsSheet); err != nil {
		return apperrors.Wrap(err, "failed to create findings sheet")
	}

	header := []interface{}{"Rank", "Title", "Category", "Significance", "Magnitude", "Description"}
	if err := f.SetSheetRow(findingsSheet, "A1", &header); err != nil {
		return apperrors.Wrap(err, "failed to write findings header")
	}

	for i, finding := range story.Main {
		row := []interface{}{
			finding.Rank,
			finding.Title,
			finding.Category.Label(),
			string(finding.Tier),
			finding.Magnitude,
			finding.Description,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(findingsSheet, cell, &row); err != nil {
			return apperrors.Wrap(err, "failed to write finding row")
		}
	}
	return nil
}

func (sw *StoryWriter) writeSupporting(f *excelize.File, story insight.Story) error {
	if _, err := f.NewSheet(supportingSheet); err != nil {
		return apperrors.Wrap(err, "failed to create supporting sheet")
	}

	header := []interface{}{"Title", "Category", "Description"}
	if err := f.SetSheetRow(supportingSheet, "A1", &header); err != nil {
		return apperrors.Wrap(err, "failed to write supporting header")
	}

	for i, ins := range story.Supporting {
		row := []interface{}{ins.Title, ins.Category.Label(), ins.Description}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(supportingSheet, cell, &row); err != nil {
			return apperrors.Wrap(err, "failed to write supporting row")
		}
	}
	return nil
}

func (sw *StoryWriter) writeRecommendations(f *excelize.File, story insight.Story) error {
	if _, err := f.NewSheet(recommendationsSheet); err != nil {
		return apperrors.Wrap(err, "failed to create recommendations sheet")
	}

	header := []interface{}{"#", "Recommendation"}
	if err := f.SetSheetRow(recommendationsSheet, "A1", &header); err != nil {
		return apperrors.Wrap(err, "failed to write recommendations header")
	}

	for i, rec := range story.Recommendations {
		row := []interface{}{i + 1, rec}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(recommendationsSheet, cell, &row); err != nil {
			return apperrors.Wrap(err, "failed to write recommendation row")
		}
	}
	return nil
}
