// Package resolver turns an application name into a descriptor set. The
// chain is catalog, then collaborator generation, then the fallback set;
// the first strategy that produces a config wins, and the fallback
// cannot fail, so Resolve never returns an error.
package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"apismith/internal/apiconfig"
	"apismith/internal/catalog"
	"apismith/internal/llm"
)

// Source records which strategy produced a resolution.
type Source string

const (
	SourceCatalog   Source = "catalog"
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Resolution is the outcome for one application: the descriptor set,
// its provenance and the fabrication-check verdict.
type Resolution struct {
	App     string
	Config  apiconfig.Config
	Source  Source
	Suspect bool
}

// strategy produces a resolution for app, or reports !ok to pass the
// name down the chain.
type strategy func(ctx context.Context, app string) (Resolution, bool)

type Resolver struct {
	llm   llm.Client
	log   *zap.Logger
	cache *expirable.LRU[string, Resolution]
}

// New builds a resolver. client may be nil, in which case generation is
// skipped and unknown names go straight to the fallback set.
func New(client llm.Client, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{llm: client, log: logger}
}

// WithCache keeps generated and fallback resolutions in a TTL-bounded
// LRU so repeated names within one process don't re-invoke the
// collaborator. Catalog hits bypass it.
func (r *Resolver) WithCache(size int, ttl time.Duration) *Resolver {
	if size <= 0 {
		size = 128
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	r.cache = expirable.NewLRU[string, Resolution](size, nil, ttl)
	return r
}

// Resolve walks the strategy chain in order. It never fails: every path
// degrades to a usable descriptor set.
func (r *Resolver) Resolve(ctx context.Context, app string) Resolution {
	app = strings.ToLower(strings.TrimSpace(app))
	for _, resolve := range []strategy{r.fromCatalog, r.fromCache, r.generate, r.fromFallback} {
		if res, ok := resolve(ctx, app); ok {
			return res
		}
	}
	// fromFallback always succeeds; not reached.
	return r.finish(Resolution{App: app, Config: Fallback(app), Source: SourceFallback})
}

func (r *Resolver) fromCatalog(_ context.Context, app string) (Resolution, bool) {
	cfg, ok := catalog.Lookup(app)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{App: app, Config: cfg, Source: SourceCatalog}, true
}

func (r *Resolver) fromCache(_ context.Context, app string) (Resolution, bool) {
	if r.cache == nil {
		return Resolution{}, false
	}
	res, ok := r.cache.Get(app)
	return res, ok
}

// generate asks the collaborator for a config and runs the extraction
// pipeline over the reply. Any failure reports !ok; the chain falls
// through to the fallback set.
func (r *Resolver) generate(ctx context.Context, app string) (Resolution, bool) {
	if r.llm == nil {
		return Resolution{}, false
	}
	raw, err := r.llm.Generate(ctx, systemPrompt, userPrompt(app))
	if err != nil {
		r.log.Warn("generation failed, falling back",
			zap.String("app", app), zap.Error(err))
		return Resolution{}, false
	}
	cfg, err := extractConfig(raw)
	if err != nil {
		r.log.Warn("generated response unusable, falling back",
			zap.String("app", app), zap.Error(err))
		return Resolution{}, false
	}
	return r.finish(Resolution{App: app, Config: cfg, Source: SourceGenerated}), true
}

func (r *Resolver) fromFallback(_ context.Context, app string) (Resolution, bool) {
	return r.finish(Resolution{App: app, Config: Fallback(app), Source: SourceFallback}), true
}

// finish applies the fabrication check to generated and fallback results
// and records them in the cache. Catalog hits skip this on purpose: the
// curated table is trusted and returned verbatim.
func (r *Resolver) finish(res Resolution) Resolution {
	res.Suspect = !apiconfig.LooksReal(res.Config)
	if res.Suspect {
		r.log.Warn("descriptor set may be fabricated",
			zap.String("app", res.App),
			zap.String("source", string(res.Source)),
			zap.Int("endpoints", len(res.Config.Endpoints)))
	}
	if r.cache != nil {
		r.cache.Add(res.App, res)
	}
	return res
}
