// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"fsc/config"
	"fsc/markup"
	"fsc/wiki"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg  *config.Config
	Rpt  *config.Report
	Log  *zap.Logger
	Tags *markup.Registry

	// used by convert subcommand
	NoDirs    bool
	Overwrite bool
	CodePage  encoding.Encoding

	wikis         *wiki.Set
	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// MarkupOptions prepares options for markup builder from current
// configuration. Wiki providers are opened on first call and kept until Close.
// When no tag registry was set one matching configured tag set is selected.
func (e *LocalEnv) MarkupOptions() (*markup.Options, error) {
	opts := markup.DefaultOptions()
	if e.Cfg != nil {
		if e.wikis == nil {
			w, err := wiki.FromConfig(&e.Cfg.Markup.Wiki, e.Log)
			if err != nil {
				return nil, err
			}
			e.wikis = w
		}
		var err error
		if opts, err = markup.NewOptions(&e.Cfg.Markup, e.wikis.Providers()); err != nil {
			return nil, err
		}
	}
	if e.Tags == nil {
		if opts.TagSet == markup.TagSetWiki {
			e.Tags = markup.Tags()
		} else {
			e.Tags = markup.NewRegistry(opts.TagSet)
		}
	}
	return opts, nil
}

// Close releases resources acquired during program run.
func (e *LocalEnv) Close() error {
	err := e.wikis.Close()
	e.wikis = nil
	return err
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
