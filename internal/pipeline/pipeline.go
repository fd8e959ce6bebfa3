package pipeline

import (
	"context"
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rigsight/gaslog-cli/internal/model"
)

// Run classifies one well's samples. Samples are copied and sorted by depth
// ascending before any windowed computation; the input slice is never
// mutated. Duplicate or non-finite depths are malformed input and surface as
// an error; everything else degrades into per-row invalid results.
func Run(ctx context.Context, samples []model.Sample, cfg Config) ([]model.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: run")
	}

	rows := make([]model.Sample, len(samples))
	copy(rows, samples)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Depth < rows[j].Depth })

	depths := make([]float64, len(rows))
	for i, s := range rows {
		if math.IsNaN(s.Depth) || math.IsInf(s.Depth, 0) {
			return nil, eris.Errorf("pipeline: well %s: non-finite depth at row %d", s.WellID, i)
		}
		if i > 0 && s.Depth == rows[i-1].Depth {
			return nil, eris.Errorf("pipeline: well %s: duplicate depth %.3f", s.WellID, s.Depth)
		}
		depths[i] = s.Depth
	}

	// Working copy of the TG channel. Rows that fail validation still occupy
	// their window slot so neighbors keep a sane baseline; their own derived
	// fields stay zeroed below.
	valid := make([]bool, len(rows))
	tgValues := make([]float64, len(rows))
	for i, s := range rows {
		valid[i] = s.Finite()
		if valid[i] {
			tgValues[i] = s.Tg
		}
	}

	background := EstimateBackground(tgValues, cfg.BackgroundWindow)
	ratios := AnomalyRatios(tgValues, background)
	trends := AnalyzeTrends(depths, tgValues, cfg)

	results := make([]model.Result, len(rows))
	tgCategories := make([]model.Category, len(rows))
	for i, s := range rows {
		r := model.Result{Sample: s}

		if !valid[i] {
			r.DepthTrend = model.TrendStable
			r.TgCategory = model.CategoryInvalid
			r.TgConfidence = model.TgConfidenceLow
			r.TriangleCategory = model.TriangleInvalid
			r.ThreeHCategory = model.ThreeRatioInvalid
			tgCategories[i] = model.CategoryInvalid
			results[i] = r
			continue
		}

		r.BackgroundTg = background[i]
		r.AnomalyRatio = ratios[i]
		r.DepthTrend = trends[i]
		r.TgCategory, r.TgConfidence = ClassifyTg(s.Tg, ratios[i], trends[i])
		tgCategories[i] = r.TgCategory

		q, label := ClassifyTriangle(s)
		if !math.IsNaN(q) {
			r.QValue = q
		}
		r.TriangleCategory = label

		ratio := ComputeRatios(s)
		r.WH, r.BH, r.CH = ratio.WH, ratio.BH, ratio.CH
		r.ThreeHCategory, r.ThreeHConfidence = ClassifyThreeRatio(ratio)

		results[i] = r
	}

	corrected := CorrectContinuity(depths, tgCategories, cfg)

	for i := range results {
		results[i].TgCategoryCorrected = corrected[i]

		if !valid[i] {
			results[i].FinalCategory = model.CategoryInvalid
			results[i].FinalConfidence = 0
			results[i].Rationale = rationale(MethodVotes{
				TgCategory:      model.CategoryInvalid,
				TgConfidence:    model.TgConfidenceLow,
				TriangleLabel:   model.TriangleInvalid,
				ThreeRatioLabel: model.ThreeRatioInvalid,
			})
			continue
		}

		decision := Fuse(MethodVotes{
			TgCategory:       corrected[i],
			TgConfidence:     results[i].TgConfidence,
			TriangleLabel:    results[i].TriangleCategory,
			ThreeRatioLabel:  results[i].ThreeHCategory,
			ThreeRatioPoints: results[i].ThreeHConfidence,
		}, cfg)

		results[i].FinalCategory = decision.Category
		results[i].FinalConfidence = decision.Confidence
		results[i].Rationale = decision.Rationale
	}

	zap.L().Debug("pipeline: well classified",
		zap.String("well_id", rows[0].WellID),
		zap.Int("samples", len(rows)),
	)

	return results, nil
}

// RunWells groups samples by well and classifies each well independently,
// fanning wells out over an errgroup with the given concurrency limit (≤0
// means sequential). Results come back ordered by well ID then depth so
// repeated runs over the same table are byte-identical.
func RunWells(ctx context.Context, samples []model.Sample, cfg Config, concurrency int) ([]model.Result, error) {
	byWell := make(map[string][]model.Sample)
	var order []string
	for _, s := range samples {
		if _, seen := byWell[s.WellID]; !seen {
			order = append(order, s.WellID)
		}
		byWell[s.WellID] = append(byWell[s.WellID], s)
	}
	sort.Strings(order)

	if concurrency <= 0 {
		concurrency = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	perWell := make([][]model.Result, len(order))
	for i, wellID := range order {
		g.Go(func() error {
			res, err := Run(gCtx, byWell[wellID], cfg)
			if err != nil {
				return eris.Wrapf(err, "pipeline: well %s", wellID)
			}
			perWell[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []model.Result
	for _, res := range perWell {
		out = append(out, res...)
	}

	zap.L().Info("pipeline: run complete",
		zap.Int("wells", len(order)),
		zap.Int("samples", len(out)),
	)

	return out, nil
}
