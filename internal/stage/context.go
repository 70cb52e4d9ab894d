package stage

import (
	"context"

	"github.com/kingrea/combprep/internal/artifact"
	"github.com/kingrea/combprep/internal/config"
	"github.com/kingrea/combprep/internal/logbook"
)

// ProgressFunc receives done/total counts while a stage works through its
// items.
type ProgressFunc func(done, total int)

// Context carries shared runtime dependencies into every stage.
type Context struct {
	Config    *config.Config
	Logbook   *logbook.Logbook
	Artifacts *artifact.Store
	Progress  ProgressFunc

	parent context.Context
}

// NewContext builds a Context with a fresh artifact store.
func NewContext(cfg *config.Config, lb *logbook.Logbook) *Context {
	return &Context{
		Config:    cfg,
		Logbook:   lb,
		Artifacts: artifact.NewStore(cfg),
	}
}

// WithProgress returns a copy of the context reporting progress to fn.
func (ctx *Context) WithProgress(fn ProgressFunc) *Context {
	clone := *ctx
	clone.Progress = fn
	return &clone
}

// ReportProgress forwards done/total to the progress callback, if any.
func (ctx *Context) ReportProgress(done, total int) {
	if ctx == nil || ctx.Progress == nil {
		return
	}
	ctx.Progress(done, total)
}

// WithParent returns a copy of the context bound to parent for cancellation.
func (ctx *Context) WithParent(parent context.Context) *Context {
	clone := *ctx
	clone.parent = parent
	return &clone
}

// Parent returns the bound context.Context, or context.Background.
func (ctx *Context) Parent() context.Context {
	if ctx == nil || ctx.parent == nil {
		return context.Background()
	}
	return ctx.parent
}
