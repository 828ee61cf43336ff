package copier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/davecgh/go-spew/spew"

	"record-copier/internal/diagnostic"
	"record-copier/options"
	"record-copier/record"
	"record-copier/transform"
)

// Option configures a Copier.
type Option func(*Copier)

// WithTypeOptions sets the copy options configured per model type.
func WithTypeOptions(types map[string]options.CopyOptions) Option {
	return func(c *Copier) {
		for name, opts := range types {
			c.types[name] = opts
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Copier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Copier clones record graphs.
type Copier struct {
	store    record.Store
	schema   record.Schema
	provider transform.Provider
	types    map[string]options.CopyOptions
	logger   *slog.Logger

	flightMu sync.Mutex
	inflight map[string]struct{}
}

// New creates a Copier over the given collaborators.
// A nil provider falls back to transform.NewRegistry().
func New(store record.Store, schema record.Schema, provider transform.Provider, opts ...Option) *Copier {
	if provider == nil {
		provider = transform.NewRegistry()
	}

	c := &Copier{
		store:    store,
		schema:   schema,
		provider: provider,
		types:    make(map[string]options.CopyOptions),
		logger:   slog.New(slog.DiscardHandler),
		inflight: make(map[string]struct{}),
	}
	for _, apply := range opts {
		apply(c)
	}

	return c
}

// Copy clones rec and, when deep is set, the records reachable through its
// relationships. opts may be nil. A nil rec, typed nil pointers included,
// returns ErrNilRecord.
//
// A Copy already running for the same record makes this call return
// ErrCopyInProgress without doing anything. On failure every clone created
// by the store is unloaded and a *CopyError is returned.
func (c *Copier) Copy(ctx context.Context, rec record.Record, deep bool, opts *options.CopyOptions) (record.Clone, error) {
	if record.IsNil(rec) {
		return nil, ErrNilRecord
	}

	id := rec.Identity()
	if !c.acquire(id) {
		c.logger.DebugContext(ctx, "copy dropped, already in progress", "record", record.Describe(rec))
		return nil, ErrCopyInProgress
	}
	defer c.release(id)

	s := newSession(c.provider)

	clone, err := c.copyRecord(ctx, rec, deep, opts, s)
	if err != nil {
		return nil, c.rollback(ctx, rec, s, err)
	}

	if all := s.diags.All(); len(all) > 0 {
		c.logger.DebugContext(ctx, "copy finished with diagnostics",
			"record", record.Describe(rec), "clones", s.Len(), "diagnostics", s.diags.Summary())
	}

	return clone, nil
}

// InProgress reports whether a Copy of rec is currently running.
func (c *Copier) InProgress(rec record.Record) bool {
	if record.IsNil(rec) {
		return false
	}

	c.flightMu.Lock()
	defer c.flightMu.Unlock()

	_, ok := c.inflight[rec.Identity()]
	return ok
}

func (c *Copier) acquire(id string) bool {
	c.flightMu.Lock()
	defer c.flightMu.Unlock()

	if _, busy := c.inflight[id]; busy {
		return false
	}
	c.inflight[id] = struct{}{}

	return true
}

func (c *Copier) release(id string) {
	c.flightMu.Lock()
	defer c.flightMu.Unlock()

	delete(c.inflight, id)
}

// rollback unloads every store-created clone of the session, newest first.
// Unload failures are collected and never replace cause.
func (c *Copier) rollback(ctx context.Context, root record.Record, s *Session, cause error) error {
	ctx = context.WithoutCancel(ctx)

	copyErr := &CopyError{
		Record: record.Describe(root),
		Cause:  cause,
		Clones: s.Len(),
	}

	created := s.managed()
	for i := len(created) - 1; i >= 0; i-- {
		clone := created[i]
		if err := c.store.UnloadRecord(ctx, clone); err != nil {
			copyErr.RollbackErrors = append(copyErr.RollbackErrors, err)
			s.diags.AddWarning(diagnostic.CodeRollbackFailed, err.Error(), record.Describe(clone), "")
		}
	}

	s.diags.AddError(diagnostic.CodeCopyFailed, cause.Error(), copyErr.Record, "")

	if c.logger.Enabled(ctx, slog.LevelDebug) {
		c.logger.DebugContext(ctx, "copy failed, clones rolled back",
			"record", copyErr.Record,
			"clones", copyErr.Clones,
			"unloaded", len(created)-len(copyErr.RollbackErrors),
			"error", cause,
			"diagnostics", s.diags.Summary(),
			"copies", dumper.Sdump(s.identities()),
		)
	}

	return copyErr
}

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

// resolveOptions merges the built-in defaults, the options configured for
// the record's type and the given options.
func (c *Copier) resolveOptions(rec record.Record, opts *options.CopyOptions) options.CopyOptions {
	var typed *options.CopyOptions
	if t, ok := c.types[rec.ModelName()]; ok {
		typed = &t
	}

	return options.Merge(typed, opts)
}

// allocate builds the empty clone target for rec.
func (c *Copier) allocate(ctx context.Context, rec record.Record, opts options.CopyOptions) (allocation, error) {
	if !opts.AsModel() {
		if opts.ObjectDefinition != nil {
			return allocation{clone: opts.ObjectDefinition()}, nil
		}
		return allocation{clone: record.Object{}}, nil
	}

	created, err := c.store.CreateRecord(ctx, rec.ModelName())
	if err != nil {
		return allocation{}, err
	}

	clone, ok := created.(record.Clone)
	if !ok {
		return allocation{managed: created}, fmt.Errorf("%w: %s", ErrNotAClone, record.Describe(created))
	}

	return allocation{clone: clone, managed: created}, nil
}

// IsDropped reports whether err is the result of a dropped duplicate Copy.
func IsDropped(err error) bool {
	return errors.Is(err, ErrCopyInProgress)
}
