package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/calmouapp/calmou/internal/common"
	"github.com/calmouapp/calmou/internal/dbx"
)

// --- fakes ---

type stubConn struct {
	closed atomic.Bool
}

func (s *stubConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (s *stubConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (s *stubConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (s *stubConn) Begin(ctx context.Context) (pgx.Tx, error)                     { return nil, nil }
func (s *stubConn) Close(ctx context.Context) error {
	s.closed.Store(true)
	return nil
}

func stubConnector(dialed *atomic.Int32) func(ctx context.Context) (dbx.Querier, error) {
	return func(ctx context.Context) (dbx.Querier, error) {
		if dialed != nil {
			dialed.Add(1)
		}
		return &stubConn{}, nil
	}
}

func newTestPool(t *testing.T, cfg Config) *Pool {
	t.Helper()
	if cfg.Connector == nil {
		cfg.Connector = stubConnector(nil)
	}
	p, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

// --- tests ---

func TestPool_NeverExceedsMax(t *testing.T) {
	const maxConns = 3
	const callers = 10

	p := newTestPool(t, Config{MaxConns: maxConns})

	var leased atomic.Int32
	var peak atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			lease, err := p.Acquire(context.Background())
			if err != nil {
				t.Error(err)
				return
			}
			defer lease.Release()

			n := leased.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			leased.Add(-1)
		}()
	}
	wg.Wait()

	require.LessOrEqual(t, peak.Load(), int32(maxConns))
	require.LessOrEqual(t, p.Stat().TotalResources(), int32(maxConns))
}

func TestPool_AcquireBlocksUntilRelease(t *testing.T) {
	p := newTestPool(t, Config{MaxConns: 1})

	lease, err := p.Acquire(context.Background())
	require.NoError(t, err)

	released := make(chan struct{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(released)
		lease.Release()
	}()

	lease2, err := p.Acquire(context.Background())
	require.NoError(t, err)
	defer lease2.Release()

	select {
	case <-released:
	default:
		t.Fatal("second acquire returned before the first lease was released")
	}
}

func TestPool_AcquireFailsFastWhenConfigured(t *testing.T) {
	p := newTestPool(t, Config{MaxConns: 1, AcquireTimeout: 20 * time.Millisecond})

	lease, err := p.Acquire(context.Background())
	require.NoError(t, err)
	defer lease.Release()

	_, err = p.Acquire(context.Background())
	require.ErrorIs(t, err, common.ErrConnectionUnavailable)
}

func TestPool_AcquireHonorsCallerContext(t *testing.T) {
	p := newTestPool(t, Config{MaxConns: 1})

	lease, err := p.Acquire(context.Background())
	require.NoError(t, err)
	defer lease.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = p.Acquire(ctx)
	require.ErrorIs(t, err, common.ErrConnectionUnavailable)
}

func TestPool_DoubleReleaseIsSafe(t *testing.T) {
	p := newTestPool(t, Config{MaxConns: 2})

	lease, err := p.Acquire(context.Background())
	require.NoError(t, err)
	lease.Release()
	lease.Release()

	// Accounting must be intact: both slots still acquirable.
	l1, err := p.Acquire(context.Background())
	require.NoError(t, err)
	l2, err := p.Acquire(context.Background())
	require.NoError(t, err)
	l1.Release()
	l2.Release()

	require.LessOrEqual(t, p.Stat().TotalResources(), int32(2))
}

func TestPool_MinConnsDialedEagerly(t *testing.T) {
	var dialed atomic.Int32
	p := newTestPool(t, Config{MinConns: 2, MaxConns: 4, Connector: stubConnector(&dialed)})

	require.Equal(t, int32(2), dialed.Load())
	require.Equal(t, int32(2), p.Stat().TotalResources())
}

func TestPool_ConnectorFailureSurfacesAtConstruction(t *testing.T) {
	_, err := New(context.Background(), Config{
		MinConns: 1,
		MaxConns: 2,
		Connector: func(ctx context.Context) (dbx.Querier, error) {
			return nil, errors.New("connection refused")
		},
	})
	require.ErrorIs(t, err, common.ErrConnectionUnavailable)
}

func TestPool_ConnectorFailureSurfacesOnAcquire(t *testing.T) {
	p := newTestPool(t, Config{
		MaxConns: 2,
		Connector: func(ctx context.Context) (dbx.Querier, error) {
			return nil, errors.New("connection refused")
		},
	})

	_, err := p.Acquire(context.Background())
	require.ErrorIs(t, err, common.ErrConnectionUnavailable)
}

func TestPool_InvalidRange(t *testing.T) {
	_, err := New(context.Background(), Config{MinConns: 5, MaxConns: 2, Connector: stubConnector(nil)})
	require.Error(t, err)
}

func TestPool_AcquireAfterCloseFails(t *testing.T) {
	p, err := New(context.Background(), Config{MaxConns: 1, Connector: stubConnector(nil)})
	require.NoError(t, err)
	p.Close()

	_, err = p.Acquire(context.Background())
	require.ErrorIs(t, err, common.ErrConnectionUnavailable)
}

func TestPool_CloseClosesConnections(t *testing.T) {
	conn := &stubConn{}
	p, err := New(context.Background(), Config{
		MinConns:  1,
		MaxConns:  1,
		Connector: func(ctx context.Context) (dbx.Querier, error) { return conn, nil },
	})
	require.NoError(t, err)

	p.Close()
	require.True(t, conn.closed.Load())
}

func TestInitialize_SecondCallIsNoOp(t *testing.T) {
	t.Cleanup(Shutdown)

	p1, err := Initialize(context.Background(), Config{MaxConns: 1, Connector: stubConnector(nil)})
	require.NoError(t, err)

	p2, err := Initialize(context.Background(), Config{MaxConns: 99, Connector: stubConnector(nil)})
	require.NoError(t, err)
	require.Same(t, p1, p2)
}

func TestInitialize_AfterShutdownReinitializes(t *testing.T) {
	t.Cleanup(Shutdown)

	p1, err := Initialize(context.Background(), Config{MaxConns: 1, Connector: stubConnector(nil)})
	require.NoError(t, err)

	Shutdown()

	_, err = p1.Acquire(context.Background())
	require.ErrorIs(t, err, common.ErrConnectionUnavailable)

	p2, err := Initialize(context.Background(), Config{MaxConns: 1, Connector: stubConnector(nil)})
	require.NoError(t, err)
	require.NotSame(t, p1, p2)

	lease, err := p2.Acquire(context.Background())
	require.NoError(t, err)
	lease.Release()
}
