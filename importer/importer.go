// Package importer rebuilds the game tables from an exported game_data
// directory. A refresh runs a fixed sequence of stages, each in its own
// transaction, and reports every record or link it had to leave out.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kasuganosora/fe8rguide/audit"
	"github.com/kasuganosora/fe8rguide/model"
	"github.com/kasuganosora/fe8rguide/resource"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Options tune a refresh.
type Options struct {
	// BatchSize bounds rows per INSERT and skip rows per audit write.
	BatchSize int
	// Strict fails the refresh when a shop grouping has no abbreviation.
	Strict bool
}

// Importer runs refreshes against one database.
type Importer struct {
	db     *gorm.DB
	cur    *Curation
	opts   Options
	logger *zap.Logger
}

// New creates an Importer. A nil curation uses the built-in tables.
func New(db *gorm.DB, cur *Curation, opts Options, logger *zap.Logger) *Importer {
	if cur == nil {
		cur = DefaultCuration()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = audit.DefaultBatchSize
	}
	return &Importer{db: db, cur: cur, opts: opts, logger: logger}
}

type stage struct {
	name string
	fn   func(tx *gorm.DB) error
}

// Run loads dataPath, drops and recreates the game tables, then repopulates
// them stage by stage. A file error aborts before anything is dropped. A
// stage error aborts the run; stages committed before it stay in place and
// the refresh should simply be run again. The report and the run record are
// written in both cases.
func (im *Importer) Run(ctx context.Context, dataPath string) (*Report, error) {
	rep := newReport(uuid.NewString(), dataPath)
	log := im.logger.With(zap.String("trace_id", rep.TraceID))
	log.Info("refresh started", zap.String("data_path", dataPath))

	err := im.run(ctx, rep, log)
	rep.DurationMs = time.Since(rep.StartedAt).Milliseconds()
	if saveErr := im.saveRun(ctx, rep, err); saveErr != nil {
		log.Error("refresh run record write failed", zap.Error(saveErr))
	}
	if err != nil {
		log.Error("refresh failed", zap.Error(err), zap.Int64("duration_ms", rep.DurationMs))
		return rep, err
	}
	log.Info("refresh finished",
		zap.Int("skips", rep.TotalSkips()),
		zap.Int64("duration_ms", rep.DurationMs),
	)
	return rep, nil
}

func (im *Importer) run(ctx context.Context, rep *Report, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("importer: %w", err)
	}
	rl := resource.NewLoader(rep.DataPath)
	if err := rl.Load(); err != nil {
		return fmt.Errorf("importer: load: %w", err)
	}
	if err := model.Reset(im.db.WithContext(ctx)); err != nil {
		return fmt.Errorf("importer: reset: %w", err)
	}

	st := newState(rl, im.cur, im.opts, rep, log)
	rec := audit.New(im.db, rep.TraceID, im.opts.BatchSize, log)
	stages := []stage{
		{"categories", st.categories},
		{"skills", st.skills},
		{"items", st.items},
		{"sub_items", st.subItems},
		{"shops", st.shops},
		{"dragons_gate_shop", st.dragonsGateShop},
		{"reference", st.reference},
		{"classes", st.classes},
		{"units", st.units},
		{"arsenals", st.arsenals},
	}
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("importer: %w", err)
		}
		if err := im.runStage(ctx, st, s, rec, log); err != nil {
			return err
		}
	}
	if err := rec.Flush(ctx); err != nil {
		return fmt.Errorf("importer: %w", err)
	}
	return nil
}

// runStage commits one stage, then hands its skips to the recorder. Skips
// are written outside the stage transaction so the recorder never competes
// with it for a connection.
func (im *Importer) runStage(ctx context.Context, st *state, s stage, rec *audit.Service, log *zap.Logger) error {
	sr := &StageReport{Name: s.name, Counters: map[string]int{}}
	st.sr = sr
	start := time.Now()
	log.Info("refresh stage started", zap.String("stage", s.name))

	err := im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.fn(tx)
	})
	sr.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		st.rep.discard(s.name)
		return fmt.Errorf("importer: stage %s: %w", s.name, err)
	}
	st.rep.Stages = append(st.rep.Stages, sr)

	for _, sk := range st.rep.drain() {
		log.Debug("refresh skip",
			zap.String("stage", sk.Stage),
			zap.String("reason", string(sk.Reason)),
			zap.String("subject", sk.Subject),
			zap.String("target", sk.Target),
		)
		if err := rec.Log(ctx, audit.Entry{
			Stage:   sk.Stage,
			Reason:  string(sk.Reason),
			Subject: sk.Subject,
			Target:  sk.Target,
		}); err != nil {
			return fmt.Errorf("importer: %w", err)
		}
	}
	log.Info("refresh stage finished",
		zap.String("stage", s.name),
		zap.Int("rows", sr.Rows),
		zap.Int("links", sr.Links),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (im *Importer) saveRun(ctx context.Context, rep *Report, runErr error) error {
	raw, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	run := &model.RefreshRun{
		TraceID:    rep.TraceID,
		DataPath:   rep.DataPath,
		Report:     datatypes.JSON(raw),
		DurationMs: rep.DurationMs,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	return im.db.WithContext(ctx).Create(run).Error
}

// LastRun returns the most recent refresh run record.
func LastRun(ctx context.Context, db *gorm.DB) (*model.RefreshRun, error) {
	var run model.RefreshRun
	if err := db.WithContext(ctx).Order("id DESC").First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
