package client

import (
	"context"
	"errors"
	"time"

	"golang.org/x/exp/slog"

	"admingrid/internal/app/client/config"
	"admingrid/internal/domain/collection"
	"admingrid/internal/domain/grid"
)

// App wires the console together: configuration, logger, the HTTP source
// and the local snapshot store, and builds one grid engine per collection.
type App struct {
	config *config.Config
	log    *slog.Logger
	source *httpClient
	store  *SnapshotStore
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	source, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, err
	}

	// A broken snapshot store degrades to fresh-only loads; it never
	// blocks the console from starting.
	store, err := NewSnapshotStore(cfg.SnapshotPath)
	if err != nil {
		log.Warn("snapshot store unavailable, stale fallback disabled", "error", err)
		store = nil
	}

	return &App{
		config: cfg,
		log:    log,
		source: source,
		store:  store,
	}, nil
}

func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Collection resolves a configured collection by name.
func (a *App) Collection(name string) (collection.Config, error) {
	col, ok := a.config.Collections[name]
	if !ok {
		return collection.Config{}, collection.ErrNotConfigured
	}
	return col, nil
}

// LoadInfo describes where a grid's rows came from.
type LoadInfo struct {
	Stale     bool
	FetchedAt time.Time
}

// LoadGrid fetches a collection and returns a ready engine. On a failed
// fetch the previous successful load is served from the snapshot store when
// allowStale is set: stale-but-consistent over blank-but-fresh. An
// unauthorized response is never masked by a snapshot.
func (a *App) LoadGrid(ctx context.Context, name string, allowStale bool) (*grid.Engine, LoadInfo, error) {
	col, err := a.Collection(name)
	if err != nil {
		return nil, LoadInfo{}, err
	}

	engine, err := grid.New(a.gridOptions(col), a.log)
	if err != nil {
		return nil, LoadInfo{}, err
	}

	rows, err := a.source.ListRows(ctx, col)
	if err != nil {
		if !allowStale || a.store == nil || errors.Is(err, collection.ErrUnauthorized) {
			return nil, LoadInfo{}, err
		}
		snapRows, fetchedAt, snapErr := a.store.Load(name)
		if snapErr != nil {
			return nil, LoadInfo{}, err
		}
		a.log.Warn("reload failed, serving snapshot",
			"collection", name,
			"fetched_at", fetchedAt,
			"error", err,
		)
		engine.ReplaceRows(snapRows)
		return engine, LoadInfo{Stale: true, FetchedAt: fetchedAt}, nil
	}

	engine.ReplaceRows(rows)
	if a.store != nil {
		if err := a.store.Save(name, rows); err != nil {
			a.log.Warn("failed to store snapshot", "collection", name, "error", err)
		}
	}
	return engine, LoadInfo{FetchedAt: time.Now()}, nil
}

// gridOptions wires a collection's grid configuration to the backend
// callbacks and the default summary policy.
func (a *App) gridOptions(col collection.Config) grid.Options {
	opts := col.GridOptions()
	opts.Save = func(ctx context.Context, id string, payload map[string]any) error {
		return a.source.UpdateRow(ctx, col, id, payload)
	}
	opts.Delete = func(ctx context.Context, id string) error {
		return a.source.DeleteRow(ctx, col, id)
	}
	if opts.GroupBy != "" {
		opts.Reduce = summaryReducer(col)
	}
	return opts
}

// CreateRow normalizes raw field input the same way an edit would and posts
// a new row.
func (a *App) CreateRow(ctx context.Context, name string, fields map[string]string) error {
	col, err := a.Collection(name)
	if err != nil {
		return err
	}

	draft := make(map[string]grid.Value, len(fields))
	for k, v := range fields {
		draft[k] = grid.StringValue(v)
	}
	payload, err := grid.Normalize(draft, col.GridOptions())
	if err != nil {
		return err
	}
	return a.source.CreateRow(ctx, col, payload)
}

// Health checks backend availability.
func (a *App) Health(ctx context.Context) error {
	return a.source.Health(ctx)
}

// summaryReducer is the observed representative-row policy: a pending
// member wins, else the member with the furthest-future expiry, else the
// most recently created one. Field names come from the collection config;
// the engine itself knows nothing about this heuristic.
func summaryReducer(col collection.Config) grid.ReduceFunc {
	pendingOf := func(r grid.Row) bool {
		v, ok := r.Get(col.PendingField)
		if !ok {
			return false
		}
		switch v.Kind() {
		case grid.KindBool:
			b, _ := v.AsBool()
			return !b
		case grid.KindNumber:
			f, _ := v.AsNumber()
			return f == 0
		case grid.KindNull:
			return true
		default:
			return v.Display() == "0" || v.Display() == "false" || v.Display() == "pending"
		}
	}
	instantOf := func(r grid.Row, field string) (time.Time, bool) {
		v, ok := r.Get(field)
		if !ok {
			return time.Time{}, false
		}
		return v.Instant()
	}

	return func(members []grid.Row) grid.Row {
		if len(members) == 0 {
			return grid.Row{}
		}

		// Most recently created pending member first.
		best := -1
		var bestAt time.Time
		for i, m := range members {
			if !pendingOf(m) {
				continue
			}
			at, _ := instantOf(m, col.CreatedField)
			if best < 0 || at.After(bestAt) {
				best, bestAt = i, at
			}
		}
		if best >= 0 {
			return members[best]
		}

		// Then the furthest-future expiry.
		for i, m := range members {
			at, ok := instantOf(m, col.ExpiryField)
			if !ok {
				continue
			}
			if best < 0 || at.After(bestAt) {
				best, bestAt = i, at
			}
		}
		if best >= 0 {
			return members[best]
		}

		// Then the newest by creation time, falling back to the first.
		best, bestAt = 0, time.Time{}
		if at, ok := instantOf(members[0], col.CreatedField); ok {
			bestAt = at
		}
		for i, m := range members[1:] {
			if at, ok := instantOf(m, col.CreatedField); ok && at.After(bestAt) {
				best, bestAt = i+1, at
			}
		}
		return members[best]
	}
}

type ctxKey struct{}

// NewContext attaches the app to a command context.
func NewContext(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, app)
}

// FromContext retrieves the app attached by NewContext.
func FromContext(ctx context.Context) (*App, bool) {
	app, ok := ctx.Value(ctxKey{}).(*App)
	return app, ok
}
