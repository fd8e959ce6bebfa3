package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/rigsight/gaslog-cli/internal/model"
)

// Options configures spreadsheet parsing.
type Options struct {
	SheetName string // XLSX only; empty means first sheet
	SkipRows  int    // extra rows to skip after the header
	Charset   string // CSV only; empty means detect (UTF-8, then GBK)
	// DefaultWellID is used when the source has no well column.
	DefaultWellID string
}

// buildSamples converts raw string rows (header first) into typed samples.
// A depth cell that fails to parse is malformed input and aborts; component
// cells that fail to parse become NaN so the pipeline marks the single row
// invalid instead of failing the whole file. Fully empty rows are skipped.
func buildSamples(rows [][]string, opts Options) ([]model.Sample, error) {
	if len(rows) == 0 {
		return nil, eris.New("ingest: empty table")
	}

	cm, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	data := rows[1:]
	if opts.SkipRows > 0 && opts.SkipRows <= len(data) {
		data = data[opts.SkipRows:]
	}

	var samples []model.Sample
	for i, row := range data {
		if blankRow(row) {
			continue
		}

		depthCell := cell(row, cm.depth)
		depth, err := strconv.ParseFloat(strings.TrimSpace(depthCell), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: row %d: bad depth %q", i+2, depthCell)
		}

		s := model.Sample{
			WellID: opts.DefaultWellID,
			Depth:  depth,
			C1:     numeric(row, cm.c1),
			C2:     numeric(row, cm.c2),
			C3:     numeric(row, cm.c3),
			IC4:    numeric(row, cm.ic4),
			NC4:    numeric(row, cm.nc4),
			IC5:    numeric(row, cm.ic5),
			NC5:    numeric(row, cm.nc5),
			Tg:     numeric(row, cm.tg),
		}
		if cm.well >= 0 {
			if w := strings.TrimSpace(cell(row, cm.well)); w != "" {
				s.WellID = w
			}
		}
		if cm.c4 >= 0 && strings.TrimSpace(cell(row, cm.c4)) != "" {
			v := numeric(row, cm.c4)
			s.C4 = &v
		}
		if cm.c5 >= 0 && strings.TrimSpace(cell(row, cm.c5)) != "" {
			v := numeric(row, cm.c5)
			s.C5 = &v
		}

		samples = append(samples, s)
	}

	zap.L().Debug("ingest: table parsed",
		zap.Int("rows", len(samples)),
	)

	return samples, nil
}

// cell returns row[i] or "" when the row is short or the column absent.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// numeric parses a component cell. Absent columns and empty cells read as 0
// (a documented approximation for missing components); unparseable cells read
// as NaN so the row classifies invalid without aborting the file.
func numeric(row []string, i int) float64 {
	raw := strings.TrimSpace(cell(row, i))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
