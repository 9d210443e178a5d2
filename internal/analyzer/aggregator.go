package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/minsu-kang/reclaim/internal/logger"
	"github.com/minsu-kang/reclaim/internal/types"
)

// ProgressFunc receives one AnalysisProgress before each analyzer starts
// and a final one after the last completes. It is invoked on the
// goroutine running AnalyzeAll; consumers needing thread affinity
// marshal it themselves.
type ProgressFunc func(types.AnalysisProgress)

// Aggregator runs every available analyzer in registration order and
// merges their findings.
type Aggregator struct {
	registry *Registry
}

func NewAggregator(registry *Registry) *Aggregator {
	return &Aggregator{registry: registry}
}

// AnalyzeAll runs the available analyzers sequentially under one
// context. A failing analyzer is recorded in the result's error list and
// never stops the rest; cancellation aborts the whole run immediately
// and is returned instead of a result. progress may be nil.
func (a *Aggregator) AnalyzeAll(ctx context.Context, progress ProgressFunc) (*types.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	available := a.registry.Available()
	result := &types.AnalysisResult{
		AllInsights: make([]types.Insight, 0),
		ByAnalyzer:  make(map[string][]types.Insight, len(available)),
	}

	total := len(available)
	for i, an := range available {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		emit(progress, types.AnalysisProgress{
			CurrentAnalyzer: an.Name(),
			Completed:       i,
			Total:           total,
		})

		start := time.Now()
		insights, err := an.Analyze(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			logger.Warn("analyzer failed", "analyzer", an.Name(), "error", err)
			result.Errors = append(result.Errors, an.Name()+": "+err.Error())
			continue
		}

		logger.Debug("analyzer complete",
			"analyzer", an.Name(),
			"insights", len(insights),
			"elapsed_ms", time.Since(start).Milliseconds())

		result.AllInsights = append(result.AllInsights, insights...)
		result.ByAnalyzer[an.Name()] = insights
	}

	emit(progress, types.AnalysisProgress{
		CurrentAnalyzer: "Complete",
		Completed:       total,
		Total:           total,
	})

	return result, nil
}

func emit(progress ProgressFunc, p types.AnalysisProgress) {
	if progress != nil {
		progress(p)
	}
}
