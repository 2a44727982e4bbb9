// Package batch turns a comma-separated application list into artifact
// trees. Applications are processed strictly one after another; a
// failure or panic inside one application's generation is contained to
// that application and recorded as a sentinel config.
package batch

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"

	"apismith/internal/apiconfig"
	"apismith/internal/artifact"
	"apismith/internal/jsgen"
	"apismith/internal/ledger"
	"apismith/internal/manifest"
	"apismith/internal/resolver"
	"apismith/internal/util/jsonutil"
)

// ParseApps splits a raw application list on commas, trims and
// lower-cases each entry, and drops empties. All-empty input yields an
// empty list, never an error.
func ParseApps(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AppResult is the outcome for one application.
type AppResult struct {
	App      string   `json:"app"`
	Provider string   `json:"provider"`
	Source   string   `json:"source"`
	Suspect  bool     `json:"suspect"`
	Files    []string `json:"files,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Report aggregates a whole batch run.
type Report struct {
	RunID      string      `json:"run_id,omitempty"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Results    []AppResult `json:"results"`
}

// Failed counts applications that ended with an error.
func (r *Report) Failed() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, res := range r.Results {
		if res.Error != "" {
			n++
		}
	}
	return n
}

// ProgressFunc observes per-application outcomes as they happen.
type ProgressFunc func(AppResult)

// Runner wires the resolver to a sink and an optional ledger.
type Runner struct {
	res      *resolver.Resolver
	sink     artifact.Sink
	ledger   ledger.Store
	logger   *zap.Logger
	progress ProgressFunc
	runID    string
	now      func() time.Time
}

func New(res *resolver.Resolver, sink artifact.Sink, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		res:    res,
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// WithLedger records one RunRecord per application. Ledger failures are
// logged and never fail the batch.
func (b *Runner) WithLedger(store ledger.Store) *Runner {
	b.ledger = store
	return b
}

// WithProgress registers a callback invoked after each application.
func (b *Runner) WithProgress(fn ProgressFunc) *Runner {
	b.progress = fn
	return b
}

// WithRunID tags ledger records and the report with a run identifier.
func (b *Runner) WithRunID(id string) *Runner {
	b.runID = id
	return b
}

// Run processes every application in order and never returns an error:
// per-application failures are recorded in the report.
func (b *Runner) Run(ctx context.Context, apps []string) *Report {
	report := &Report{
		RunID:     b.runID,
		StartedAt: b.now(),
		Results:   make([]AppResult, 0, len(apps)),
	}
	for _, app := range apps {
		result := b.processOne(ctx, app)
		report.Results = append(report.Results, result)
		if b.progress != nil {
			b.progress(result)
		}
	}
	report.FinishedAt = b.now()
	if err := b.sink.Flush(ctx); err != nil {
		b.logger.Warn("sink flush failed", zap.Error(err))
	}
	return report
}

func (b *Runner) processOne(ctx context.Context, app string) (result AppResult) {
	started := b.now()
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("generation panicked",
				zap.String("app", app),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
			result = b.writeSentinel(ctx, app, fmt.Sprintf("panic: %v", rec))
		}
		b.record(ctx, result, started)
	}()

	res := b.res.Resolve(ctx, app)
	result = AppResult{
		App:      app,
		Provider: res.Config.Provider,
		Source:   string(res.Source),
		Suspect:  res.Suspect,
	}

	files, err := b.writeArtifacts(ctx, app, res)
	result.Files = files
	if err != nil {
		result.Error = err.Error()
	}
	b.logger.Info("application processed",
		zap.String("app", app),
		zap.String("source", string(res.Source)),
		zap.Bool("suspect", res.Suspect),
		zap.Int("files", len(files)))
	return result
}

// writeArtifacts persists one application's tree. All artifacts are
// computed before the first write. Write failures are collected, not
// rolled back; the first one becomes the result error.
func (b *Runner) writeArtifacts(ctx context.Context, app string, res resolver.Resolution) ([]string, error) {
	type file struct {
		name string
		data []byte
	}
	files := make([]file, 0, 5)

	cfgJSON, err := jsonutil.MarshalNoEscapeIndent(res.Config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode descriptor set: %w", err)
	}
	files = append(files, file{"api-config.json", append(cfgJSON, '\n')})

	if data, err := manifest.DeriveIntegration(app, res.Config).EncodeYAML(); err != nil {
		b.logger.Warn("integration manifest skipped", zap.String("app", app), zap.Error(err))
	} else {
		files = append(files, file{"nango-integration.yaml", data})
	}
	if data, err := manifest.DeriveProvider(app, res.Config).EncodeYAML(); err != nil {
		b.logger.Warn("provider manifest skipped", zap.String("app", app), zap.Error(err))
	} else {
		files = append(files, file{"nango-provider.yaml", data})
	}

	if ids := jsgen.Collisions(res.Config); len(ids) > 0 {
		b.logger.Warn("endpoint methods shadowed by later duplicates",
			zap.String("app", app),
			zap.Strings("methods", ids))
	}
	files = append(files, file{"endpoints.js", []byte(jsgen.EmitClientModule(app, res.Config))})
	files = append(files, file{"README.md", []byte(EmitReadme(app, res))})

	var written []string
	var firstErr error
	for _, f := range files {
		rel := app + "/" + f.name
		if err := b.sink.Write(ctx, rel, f.data); err != nil {
			b.logger.Error("artifact write failed", zap.String("path", rel), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("write %s: %w", rel, err)
			}
			continue
		}
		written = append(written, rel)
	}
	return written, firstErr
}

// writeSentinel records the degenerate config for an application whose
// generation failed outright, so the output tree still explains itself.
func (b *Runner) writeSentinel(ctx context.Context, app, reason string) AppResult {
	cfg := sentinelConfig(app)
	result := AppResult{
		App:      app,
		Provider: cfg.Provider,
		Source:   "sentinel",
		Error:    reason,
	}
	cfgJSON, err := jsonutil.MarshalNoEscapeIndent(cfg, "", "  ")
	if err != nil {
		return result
	}
	rel := app + "/api-config.json"
	if err := b.sink.Write(ctx, rel, append(cfgJSON, '\n')); err != nil {
		b.logger.Error("sentinel write failed", zap.String("path", rel), zap.Error(err))
		return result
	}
	result.Files = []string{rel}
	return result
}

func sentinelConfig(app string) apiconfig.Config {
	return apiconfig.Config{
		Provider: apiconfig.Title(app),
		BaseURL:  fmt.Sprintf("https://api.%s.com", strings.ToLower(app)),
		Endpoints: []apiconfig.Endpoint{{
			Name:        apiconfig.SentinelName,
			Method:      "GET",
			Path:        apiconfig.SentinelPath,
			Description: fmt.Sprintf("Failed to generate config for %s", app),
		}},
	}
}

func (b *Runner) record(ctx context.Context, result AppResult, started time.Time) {
	if b.ledger == nil {
		return
	}
	rec := ledger.RunRecord{
		RunID:      b.runID,
		App:        result.App,
		Provider:   result.Provider,
		Source:     result.Source,
		Suspect:    result.Suspect,
		Files:      result.Files,
		Error:      result.Error,
		StartedAt:  started,
		FinishedAt: b.now(),
	}
	if err := b.ledger.Append(ctx, rec); err != nil {
		b.logger.Warn("ledger append failed", zap.String("app", result.App), zap.Error(err))
	}
}
