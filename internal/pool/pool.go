// Package pool bounds concurrent database access to a configured [min, max]
// range of pgx connections. It is built on puddle, the resource pool
// underneath pgxpool, so lease accounting is explicit: a caller acquires a
// lease, uses the connection, and releases it on every exit path.
//
// When the pool is exhausted or the database is unreachable, Acquire reports
// common.ErrConnectionUnavailable. There is no fallback to an unpooled
// connection; masking pool exhaustion behind an ad hoc direct connection
// would hide the actual resource-pressure signal.
package pool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/puddle/v2"

	"github.com/calmouapp/calmou/internal/common"
	"github.com/calmouapp/calmou/internal/dbx"
)

const defaultMaxConns = 4

// Config holds pool settings.
type Config struct {
	// ConnString is the PostgreSQL DSN (pgx format).
	ConnString string

	// MinConns connections are dialed eagerly at construction; MaxConns
	// bounds the total number of simultaneously open connections.
	MinConns int32
	MaxConns int32

	// AcquireTimeout bounds how long Acquire waits for a free connection.
	// Zero means block until the caller's context is done.
	AcquireTimeout time.Duration

	// Connector overrides connection dialing. Tests inject fakes here;
	// when nil, pgx.Connect with ConnString is used.
	Connector func(ctx context.Context) (dbx.Querier, error)
}

// Pool is a bounded set of database connections.
type Pool struct {
	p              *puddle.Pool[dbx.Querier]
	acquireTimeout time.Duration
}

// Lease is the scoped right to use one pooled connection. Release returns
// it to the pool and is safe to call more than once.
type Lease struct {
	res  *puddle.Resource[dbx.Querier]
	once sync.Once
}

// Conn returns the leased connection handle.
func (l *Lease) Conn() dbx.Querier {
	return l.res.Value()
}

// Release returns the connection to the pool. Double release is a no-op,
// so pool accounting cannot be corrupted by defensive callers.
func (l *Lease) Release() {
	l.once.Do(l.res.Release)
}

// New constructs a pool, dialing MinConns connections up front so that
// configuration and connectivity problems surface at startup rather than on
// the first request.
func New(ctx context.Context, cfg Config) (*Pool, error) {
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultMaxConns
	}
	if cfg.MinConns < 0 || cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("pool: invalid min/max configuration [%d, %d]", cfg.MinConns, cfg.MaxConns)
	}

	connector := cfg.Connector
	if connector == nil {
		connString := cfg.ConnString
		connector = func(ctx context.Context) (dbx.Querier, error) {
			return pgx.Connect(ctx, connString)
		}
	}

	p, err := puddle.NewPool(&puddle.Config[dbx.Querier]{
		Constructor: connector,
		Destructor:  closeConn,
		MaxSize:     cfg.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("pool: %w", err)
	}

	for i := int32(0); i < cfg.MinConns; i++ {
		if err := p.CreateResource(ctx); err != nil {
			p.Close()
			return nil, fmt.Errorf("%w: %v", common.ErrConnectionUnavailable, err)
		}
	}

	return &Pool{p: p, acquireTimeout: cfg.AcquireTimeout}, nil
}

// Acquire leases a connection. It blocks while the pool is at MaxConns and
// all connections are out, until a release, the caller's context, or the
// configured acquire timeout; failure is always reported as
// common.ErrConnectionUnavailable.
func (p *Pool) Acquire(ctx context.Context) (*Lease, error) {
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	res, err := p.p.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConnectionUnavailable, err)
	}
	return &Lease{res: res}, nil
}

// Stat reports pool accounting; used by health checks and tests.
func (p *Pool) Stat() *puddle.Stat {
	return p.p.Stat()
}

// Close drains the pool and closes every connection. It blocks until all
// outstanding leases are released; subsequent Acquire calls fail.
func (p *Pool) Close() {
	p.p.Close()
}

func closeConn(q dbx.Querier) {
	c, ok := q.(interface{ Close(context.Context) error })
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = c.Close(ctx)
}
