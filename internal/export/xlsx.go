// Package export writes classified results back out as spreadsheets. It only
// reads the derived columns produced by the pipeline; nothing is recomputed
// here.
package export

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/rigsight/gaslog-cli/internal/model"
)

// resultColumns defines the ordered output columns of the results sheet.
var resultColumns = []string{
	"well_id",
	"depth",
	"c1", "c2", "c3", "ic4", "nc4", "ic5", "nc5",
	"tg",
	"background_tg",
	"anomaly_ratio",
	"depth_trend",
	"tg_category",
	"tg_confidence",
	"tg_category_corrected",
	"q_value",
	"triangle_category",
	"wh", "bh", "ch",
	"three_h_category",
	"three_h_confidence",
	"final_category",
	"final_confidence",
	"rationale",
}

// WriteXLSX writes results to a workbook with a "results" sheet and a
// per-category "summary" sheet.
func WriteXLSX(path string, results []model.Result) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet("results")
	if err != nil {
		return eris.Wrap(err, "export: add results sheet")
	}

	header := sheet.AddRow()
	for _, col := range resultColumns {
		header.AddCell().SetString(col)
	}

	for _, r := range results {
		writeResultRow(sheet.AddRow(), r)
	}

	if err := writeSummary(f, results); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}

func writeResultRow(row *xlsx.Row, r model.Result) {
	row.AddCell().SetString(r.WellID)
	row.AddCell().SetFloat(r.Depth)
	for _, v := range []float64{r.C1, r.C2, r.C3, r.IC4, r.NC4, r.IC5, r.NC5, r.Tg} {
		row.AddCell().SetFloat(v)
	}
	row.AddCell().SetFloat(r.BackgroundTg)
	row.AddCell().SetFloat(r.AnomalyRatio)
	row.AddCell().SetString(string(r.DepthTrend))
	row.AddCell().SetString(string(r.TgCategory))
	row.AddCell().SetString(string(r.TgConfidence))
	row.AddCell().SetString(string(r.TgCategoryCorrected))
	row.AddCell().SetFloat(r.QValue)
	row.AddCell().SetString(string(r.TriangleCategory))
	row.AddCell().SetFloat(r.WH)
	row.AddCell().SetFloat(r.BH)
	row.AddCell().SetFloat(r.CH)
	row.AddCell().SetString(string(r.ThreeHCategory))
	row.AddCell().SetFloat(r.ThreeHConfidence)
	row.AddCell().SetString(string(r.FinalCategory))
	row.AddCell().SetFloat(r.FinalConfidence)
	row.AddCell().SetString(r.Rationale)
}

// writeSummary adds a sheet with per-well, per-category sample counts and
// depth extents.
func writeSummary(f *xlsx.File, results []model.Result) error {
	sheet, err := f.AddSheet("summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}

	header := sheet.AddRow()
	for _, col := range []string{"well_id", "final_category", "samples", "top_depth", "bottom_depth"} {
		header.AddCell().SetString(col)
	}

	for _, line := range Summarize(results) {
		row := sheet.AddRow()
		row.AddCell().SetString(line.WellID)
		row.AddCell().SetString(string(line.Category))
		row.AddCell().SetInt(line.Samples)
		row.AddCell().SetFloat(line.TopDepth)
		row.AddCell().SetFloat(line.BottomDepth)
	}

	return nil
}

// SummaryLine aggregates one (well, final category) pair.
type SummaryLine struct {
	WellID      string         `json:"well_id"`
	Category    model.Category `json:"category"`
	Samples     int            `json:"samples"`
	TopDepth    float64        `json:"top_depth"`
	BottomDepth float64        `json:"bottom_depth"`
}

// Summarize aggregates results per (well, final category), ordered by well
// then by the fixed category order.
func Summarize(results []model.Result) []SummaryLine {
	type key struct {
		well string
		cat  model.Category
	}
	agg := make(map[key]*SummaryLine)
	for _, r := range results {
		k := key{r.WellID, r.FinalCategory}
		line, ok := agg[k]
		if !ok {
			line = &SummaryLine{
				WellID:      r.WellID,
				Category:    r.FinalCategory,
				TopDepth:    r.Depth,
				BottomDepth: r.Depth,
			}
			agg[k] = line
		}
		line.Samples++
		if r.Depth < line.TopDepth {
			line.TopDepth = r.Depth
		}
		if r.Depth > line.BottomDepth {
			line.BottomDepth = r.Depth
		}
	}

	catOrder := make(map[model.Category]int)
	for i, c := range model.AllCategories() {
		catOrder[c] = i
	}

	lines := make([]SummaryLine, 0, len(agg))
	for _, line := range agg {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].WellID != lines[j].WellID {
			return lines[i].WellID < lines[j].WellID
		}
		return catOrder[lines[i].Category] < catOrder[lines[j].Category]
	})
	return lines
}

// String renders a summary line for CLI output.
func (l SummaryLine) String() string {
	return fmt.Sprintf("%s %s: %d samples (%.1f-%.1f m)", l.WellID, l.Category, l.Samples, l.TopDepth, l.BottomDepth)
}
