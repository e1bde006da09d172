package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"

	"rdalreport/internal/observability/metrics"
	"rdalreport/internal/reporting/domain/aggregate"
	"rdalreport/internal/reporting/domain/classify"
	"rdalreport/internal/reporting/domain/code"
	"rdalreport/internal/reporting/domain/submission"

	"github.com/shopspring/decimal"
)

// ErrMissingSourceExtract is returned when a mandatory extract file is
// absent for the period.
var ErrMissingSourceExtract = errors.New("pipeline: missing source extract")

// Classifier maps observation attributes to canonical codes.
type Classifier interface {
	Classify(classify.Attributes) ([]code.Observation, error)
	Dropped() int
}

// ExtractReader reads source extracts at the input boundary.
type ExtractReader interface {
	ReadAttributed(path string) ([]classify.Attributes, error)
	ReadCoded(path string) ([]code.Observation, error)
	ReadAdjustments(path string) ([]submission.Row, error)
}

// SnapshotStore persists intermediate aggregates between stages as a
// recovery and inspection aid. Optional; runs always recompute from source.
type SnapshotStore interface {
	SaveEntries(ctx context.Context, runID string, g code.Granularity, entries []aggregate.Entry) error
}

// Summary describes one completed run.
type Summary struct {
	Classified   int
	Unclassified int
	BaseEntries  int
	Folds        map[code.Granularity]aggregate.FoldResult
	Sections     map[string]int
}

// PipelineService runs the classification, aggregation and reconciliation
// pipeline for one reporting period. Single-threaded, single pass per
// stage; one writer per period is a caller precondition.
type PipelineService struct {
	cfg       Config
	engine    Classifier
	reader    ExtractReader
	snapshots SnapshotStore
	logger    *log.Logger
}

// NewPipelineService constructs the service. The snapshot store may be nil.
func NewPipelineService(cfg Config, engine Classifier, reader ExtractReader, snapshots SnapshotStore, logger *log.Logger) (*PipelineService, error) {
	if engine == nil {
		return nil, errors.New("pipeline: nil classifier")
	}
	if reader == nil {
		return nil, errors.New("pipeline: nil extract reader")
	}
	if logger == nil {
		return nil, errors.New("pipeline: nil logger")
	}
	return &PipelineService{cfg: cfg, engine: engine, reader: reader, snapshots: snapshots, logger: logger}, nil
}

// Run executes one complete reporting period to completion or fails
// atomically. It returns the finalized submission records and a run summary.
func (s *PipelineService) Run(ctx context.Context) ([]submission.Record, Summary, error) {
	summary := Summary{
		Folds:    make(map[code.Granularity]aggregate.FoldResult),
		Sections: make(map[string]int),
	}

	baseEntries, err := s.loadEntries(ctx, s.cfg.Base, &summary)
	if err != nil {
		return nil, summary, fmt.Errorf("base extract: %w", err)
	}
	summary.BaseEntries = len(baseEntries)

	set, err := aggregate.NewReconciledSet(baseEntries, s.cfg.Base.Granularity)
	if err != nil {
		return nil, summary, err
	}

	excluded := aggregate.PrefixSet(s.cfg.ExcludedPrefixes)
	for _, overlay := range sortedOverlays(s.cfg.Overlays) {
		entries, err := s.loadEntries(ctx, overlay, &summary)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				if overlay.Mandatory {
					return nil, summary, fmt.Errorf("%w: %v extract %s", ErrMissingSourceExtract, overlay.Granularity, overlay.Path)
				}
				s.logger.Printf("overlay %v extract %s missing, proceeding with base set", overlay.Granularity, overlay.Path)
				continue
			}
			return nil, summary, fmt.Errorf("%v overlay: %w", overlay.Granularity, err)
		}

		result, err := set.Fold(entries, overlay.Granularity, excluded)
		if err != nil {
			return nil, summary, err
		}
		summary.Folds[overlay.Granularity] = result
		metrics.AddFolds(overlay.Granularity.String(), result.Folded, result.SkippedExisting, result.SkippedExcluded)
		s.logger.Printf("folded %v overlay: %d folded, %d already present, %d excluded",
			overlay.Granularity, result.Folded, result.SkippedExisting, result.SkippedExcluded)
	}

	rows := submission.Partition(set.Entries(), submission.SuppressionRule{
		Code: code.Code(s.cfg.Suppression.Code),
		Days: s.cfg.Suppression.Days,
	}, s.cfg.ReportingDate.Day)

	if s.cfg.AdjustmentsPath != "" {
		adjustments, err := s.reader.ReadAdjustments(s.cfg.AdjustmentsPath)
		if err != nil {
			return nil, summary, fmt.Errorf("adjustments: %w", err)
		}
		rows = submission.AppendAdjustments(rows, adjustments)
	}

	records, err := submission.Emit(rows, decimal.NewFromInt(s.cfg.ScaleFactor))
	if err != nil {
		return nil, summary, err
	}

	for _, rec := range records {
		summary.Sections[rec.Section.Marker()]++
	}
	summary.Unclassified = s.engine.Dropped()
	metrics.AddUnclassified(summary.Unclassified)

	return records, summary, nil
}

// loadEntries reads one extract, classifies attributed rows, and aggregates
// the observations, snapshotting the result when a store is configured.
func (s *PipelineService) loadEntries(ctx context.Context, extract ExtractConfig, summary *Summary) ([]aggregate.Entry, error) {
	var observations []code.Observation
	switch extract.Format {
	case "", "attributed":
		attrs, err := s.reader.ReadAttributed(extract.Path)
		if err != nil {
			return nil, err
		}
		for _, a := range attrs {
			classified, err := s.engine.Classify(a)
			if err != nil {
				return nil, err
			}
			observations = append(observations, classified...)
		}
	case "coded":
		coded, err := s.reader.ReadCoded(extract.Path)
		if err != nil {
			return nil, err
		}
		observations = coded
	default:
		return nil, fmt.Errorf("pipeline: unknown extract format %q", extract.Format)
	}

	summary.Classified += len(observations)
	metrics.AddClassified(len(observations))

	entries, err := aggregate.Sum(observations)
	if err != nil {
		return nil, err
	}
	aggregate.SortEntries(entries)

	if s.snapshots != nil {
		if err := s.snapshots.SaveEntries(ctx, s.cfg.RunID(), extract.Granularity, entries); err != nil {
			return nil, fmt.Errorf("snapshot %v: %w", extract.Granularity, err)
		}
	}
	return entries, nil
}

func sortedOverlays(overlays []ExtractConfig) []ExtractConfig {
	out := make([]ExtractConfig, len(overlays))
	copy(out, overlays)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Granularity.FinerThan(out[j].Granularity)
	})
	return out
}
