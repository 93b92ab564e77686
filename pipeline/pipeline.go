// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/emer/splithalf/rsa"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

var errNoSource = errors.New("pipeline: no Source")

// Source provides the cleaned dataset of a subject: the fetch and
// preprocessing stages that precede the analysis.
type Source interface {
	Load(ctx context.Context, subject string) (*rsa.Dataset, error)
}

// Params control how Run processes subjects.
type Params struct {

	// maximum number of subjects analyzed at once; 0 = number of CPUs
	Workers int `def:"0" min:"0"`

	// stop the whole run at the first failed subject, instead of
	// skipping it
	Abort bool `def:"false"`
}

func (pp *Params) Defaults() {
	pp.Workers = 0
	pp.Abort = false
}

// NWorkers returns the effective number of parallel workers for n subjects.
func (pp *Params) NWorkers(n int) int {
	nw := pp.Workers
	if nw <= 0 {
		nw = runtime.NumCPU()
	}
	return max(1, min(nw, n))
}

// Pipeline analyzes a list of subjects loaded from a Source.
type Pipeline struct {
	Source  Source
	Log     *zap.Logger
	Metrics *Metrics
	Params  Params
}

// New returns a Pipeline reading from src with default Params.
// src is required: Run fails on a Pipeline without Source.
// A nil log discards diagnostics.
func New(src Source, log *zap.Logger, metrics *Metrics) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	pl := &Pipeline{Source: src, Log: log, Metrics: metrics}
	pl.Params.Defaults()
	return pl
}

// Outcome is the result of one subject: either Result or Err is set.
type Outcome struct {
	Subject  string
	Result   *Result
	Err      error
	Duration time.Duration
}

// Summary holds the outcomes of a run in subject order and the grand
// average over the successful subjects.
type Summary struct {
	Outcomes []Outcome

	// shared categories of the averaged subjects
	Categories rsa.CategorySet

	// NaN-skipping mean correlation matrix; nil if no subject succeeded
	GrandAverage *mat.Dense
}

// Results returns the successful results, in subject order.
func (sm *Summary) Results() []*Result {
	var rs []*Result
	for i := range sm.Outcomes {
		if sm.Outcomes[i].Err == nil {
			rs = append(rs, sm.Outcomes[i].Result)
		}
	}
	return rs
}

// Failed returns the outcomes of failed subjects, in subject order.
func (sm *Summary) Failed() []Outcome {
	var fs []Outcome
	for _, oc := range sm.Outcomes {
		if oc.Err != nil {
			fs = append(fs, oc)
		}
	}
	return fs
}

// MeanAccuracy returns the mean accuracy over successful subjects,
// skipping NaN; NaN if there is none.
func (sm *Summary) MeanAccuracy() float64 {
	sum, n := 0.0, 0
	for _, rs := range sm.Results() {
		if math.IsNaN(rs.Accuracy) {
			continue
		}
		sum += rs.Accuracy
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Run loads and analyzes every subject, in parallel up to Params.Workers.
// Failed subjects are recorded in their Outcome; the returned error is
// non-nil only for a cancelled context, for the first failure when
// Params.Abort is set, or when the successful subjects cannot be averaged.
func (pl *Pipeline) Run(ctx context.Context, subjects []string) (*Summary, error) {
	if pl.Source == nil {
		return nil, errNoSource
	}
	sm := &Summary{Outcomes: make([]Outcome, len(subjects))}
	if len(subjects) == 0 {
		return sm, nil
	}
	nw := pl.Params.NWorkers(len(subjects))
	pl.Log.Info("starting run", zap.Int("subjects", len(subjects)), zap.Int("workers", nw))
	st := time.Now()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(nw)
	for si, subj := range subjects {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				sm.Outcomes[si] = Outcome{Subject: subj, Err: err}
				return err
			}
			oc := &sm.Outcomes[si]
			*oc = pl.runSubject(egCtx, subj)
			pl.Metrics.observe(oc)
			if oc.Err != nil && pl.Params.Abort {
				return oc.Err
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return sm, err
	}
	if err := ctx.Err(); err != nil {
		return sm, err
	}

	results := sm.Results()
	if len(results) > 0 {
		avg, cats, err := GrandAverage(results)
		if err != nil {
			return sm, err
		}
		sm.GrandAverage = avg
		sm.Categories = cats
	}
	pl.Log.Info("run complete",
		zap.Int("ok", len(results)),
		zap.Int("failed", len(subjects)-len(results)),
		zap.Float64("meanAccuracy", sm.MeanAccuracy()),
		zap.Duration("elapsed", time.Since(st)))
	return sm, nil
}

func (pl *Pipeline) runSubject(ctx context.Context, subj string) Outcome {
	st := time.Now()
	oc := Outcome{Subject: subj}
	log := pl.Log.With(zap.String("subject", subj))

	ds, err := pl.Source.Load(ctx, subj)
	if err != nil {
		oc.Err = fmt.Errorf("load subject %s: %w", subj, err)
		oc.Duration = time.Since(st)
		log.Error("load failed", zap.Error(err))
		return oc
	}
	log.Debug("loaded",
		zap.Int("samples", ds.NSamples()),
		zap.Int("channels", ds.NChannels()),
		zap.String("size", datasize.ByteSize(8*ds.NSamples()*ds.NChannels()).HumanReadable()))

	oc.Result, oc.Err = Analyze(subj, ds)
	oc.Duration = time.Since(st)
	if oc.Err != nil {
		log.Error("analysis failed, subject skipped", zap.Error(oc.Err))
		return oc
	}
	log.Info("analyzed",
		zap.Strings("categories", oc.Result.Categories),
		zap.Float64("accuracy", oc.Result.Accuracy),
		zap.Duration("duration", oc.Duration))
	return oc
}
