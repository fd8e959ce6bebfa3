// Package ingest parses gas-logging spreadsheets (XLSX and CSV) into typed
// sample rows. Header reconciliation handles both English and Chinese column
// names, including full-width characters and unit suffixes, so the pipeline
// downstream never guards against missing or misnamed columns.
package ingest

import (
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/width"
)

// columnMap holds the resolved index of each logical column; -1 means absent.
type columnMap struct {
	well  int
	depth int
	c1    int
	c2    int
	c3    int
	ic4   int
	nc4   int
	ic5   int
	nc5   int
	c4    int
	c5    int
	tg    int
}

// headerAliases maps normalized header strings onto logical column names.
// Chinese aliases cover the common logging-unit export headers.
var headerAliases = map[string]string{
	"well":     "well",
	"wellid":   "well",
	"wellno":   "well",
	"井号":       "well",
	"井名":       "well",
	"depth":    "depth",
	"md":       "depth",
	"井深":       "depth",
	"深度":       "depth",
	"c1":       "c1",
	"methane":  "c1",
	"甲烷":       "c1",
	"c2":       "c2",
	"ethane":   "c2",
	"乙烷":       "c2",
	"c3":       "c3",
	"propane":  "c3",
	"丙烷":       "c3",
	"ic4":      "ic4",
	"异丁烷":      "ic4",
	"nc4":      "nc4",
	"正丁烷":      "nc4",
	"ic5":      "ic5",
	"异戊烷":      "ic5",
	"nc5":      "nc5",
	"正戊烷":      "nc5",
	"c4":       "c4",
	"丁烷":       "c4",
	"c5":       "c5",
	"戊烷":       "c5",
	"tg":       "tg",
	"totalgas": "tg",
	"全烃":       "tg",
	"总烃":       "tg",
}

// normalizeHeader folds a raw header cell into its canonical lookup form:
// full-width characters narrowed, unit suffixes like "(%)" or "（m）"
// stripped, spaces and underscores removed, lowercased.
func normalizeHeader(h string) string {
	h = width.Narrow.String(h)
	h = strings.TrimSpace(h)

	// drop a trailing unit annotation
	if i := strings.IndexAny(h, "(["); i >= 0 {
		h = h[:i]
	}

	h = strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(h)
	return strings.ToLower(h)
}

// resolveColumns matches a header row against the alias table. Depth and TG
// are required; everything else is optional and defaults to zero downstream.
func resolveColumns(header []string) (columnMap, error) {
	cm := columnMap{
		well: -1, depth: -1,
		c1: -1, c2: -1, c3: -1,
		ic4: -1, nc4: -1, ic5: -1, nc5: -1,
		c4: -1, c5: -1,
		tg: -1,
	}

	for i, raw := range header {
		logical, ok := headerAliases[normalizeHeader(raw)]
		if !ok {
			continue
		}
		switch logical {
		case "well":
			cm.well = i
		case "depth":
			cm.depth = i
		case "c1":
			cm.c1 = i
		case "c2":
			cm.c2 = i
		case "c3":
			cm.c3 = i
		case "ic4":
			cm.ic4 = i
		case "nc4":
			cm.nc4 = i
		case "ic5":
			cm.ic5 = i
		case "nc5":
			cm.nc5 = i
		case "c4":
			cm.c4 = i
		case "c5":
			cm.c5 = i
		case "tg":
			cm.tg = i
		}
	}

	if cm.depth < 0 {
		return cm, eris.New("ingest: no depth column found in header")
	}
	if cm.tg < 0 {
		return cm, eris.New("ingest: no TG column found in header")
	}
	return cm, nil
}
