// Package eval runs solve and analyze requests on a pool of workers.
// Each worker owns one solver and its transposition table, so searches
// run in parallel across requests while every individual search stays
// single threaded. Tables are kept warm between jobs.
package eval

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/fourscore/solver/internal/board"
	"github.com/fourscore/solver/internal/cache"
	"github.com/fourscore/solver/internal/solver"
)

// Config configures the solve pool.
type Config struct {
	Logger     zerolog.Logger
	NumWorkers int // number of parallel solvers
	QueueSize  int // pending request capacity
	TableSize  int // transposition table slots per worker
}

// Pool dispatches positions to solver workers over a shared queue.
type Pool struct {
	cfg  Config
	log  zerolog.Logger
	jobs chan job
	wg   sync.WaitGroup

	// Stats
	solved   int64
	analyzed int64
	nodes    uint64
	hits     uint64
	misses   uint64
	stores   uint64
}

type job struct {
	pos     board.Position
	analyze bool
	reply   chan Result
}

// Result is the outcome of one pool job. Analysis is set for analyze
// jobs only.
type Result struct {
	Score    int
	Outcome  solver.Outcome
	Nodes    uint64
	Elapsed  time.Duration
	Analysis *solver.Analysis
}

// NewPool creates a solve pool. Zero config fields get defaults: two
// workers, a 64-request queue, and the cache's default table size.
func NewPool(cfg Config) *Pool {
	if cfg.NumWorkers == 0 {
		cfg.NumWorkers = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 64
	}
	if cfg.TableSize == 0 {
		cfg.TableSize = cache.DefaultCapacity
	}

	return &Pool{
		cfg:  cfg,
		log:  cfg.Logger,
		jobs: make(chan job, cfg.QueueSize),
	}
}

// Status reports pool activity. Cache counters aggregate across all
// worker tables.
type Status struct {
	Workers     int    `json:"workers"`
	QueueLen    int    `json:"queue_len"`
	QueueCap    int    `json:"queue_cap"`
	Solved      int64  `json:"solved"`
	Analyzed    int64  `json:"analyzed"`
	Nodes       uint64 `json:"nodes"`
	CacheHits   uint64 `json:"cache_hits"`
	CacheMisses uint64 `json:"cache_misses"`
	CacheStores uint64 `json:"cache_stores"`
}

// GetStatus returns a snapshot of the pool's counters.
func (p *Pool) GetStatus() Status {
	return Status{
		Workers:     p.cfg.NumWorkers,
		QueueLen:    len(p.jobs),
		QueueCap:    cap(p.jobs),
		Solved:      atomic.LoadInt64(&p.solved),
		Analyzed:    atomic.LoadInt64(&p.analyzed),
		Nodes:       atomic.LoadUint64(&p.nodes),
		CacheHits:   atomic.LoadUint64(&p.hits),
		CacheMisses: atomic.LoadUint64(&p.misses),
		CacheStores: atomic.LoadUint64(&p.stores),
	}
}

// Solve computes the exact score of pos on a pool worker. It blocks
// until a worker picks up and finishes the job, or ctx ends.
func (p *Pool) Solve(ctx context.Context, pos board.Position) (Result, error) {
	return p.submit(ctx, job{pos: pos, reply: make(chan Result, 1)})
}

// Analyze computes the exact score of every legal reply in pos on a
// pool worker.
func (p *Pool) Analyze(ctx context.Context, pos board.Position) (Result, error) {
	return p.submit(ctx, job{pos: pos, analyze: true, reply: make(chan Result, 1)})
}

func (p *Pool) submit(ctx context.Context, j job) (Result, error) {
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	select {
	case res := <-j.reply:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Run starts the workers and blocks until ctx ends and all workers
// have stopped.
func (p *Pool) Run(ctx context.Context) error {
	p.log.Info().
		Int("num_workers", p.cfg.NumWorkers).
		Int("queue_size", p.cfg.QueueSize).
		Int("table_slots", p.cfg.TableSize).
		Msg("solve pool started")

	for i := 0; i < p.cfg.NumWorkers; i++ {
		workerID := i
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.runWorker(ctx, workerID)
		}()
	}

	p.wg.Wait()

	p.log.Info().
		Int64("solved", atomic.LoadInt64(&p.solved)).
		Int64("analyzed", atomic.LoadInt64(&p.analyzed)).
		Uint64("nodes", atomic.LoadUint64(&p.nodes)).
		Msg("solve pool stopped")

	return ctx.Err()
}

// runWorker serves jobs with one solver until ctx ends.
func (p *Pool) runWorker(ctx context.Context, workerID int) {
	log := p.log.With().Int("worker_id", workerID).Logger()

	s := solver.New(p.cfg.TableSize)
	log.Info().Int("table_slots", p.cfg.TableSize).Msg("worker started")

	var prev cache.Stats
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopping")
			return
		case j := <-p.jobs:
			start := time.Now()
			var res Result
			if j.analyze {
				a := s.Analyze(j.pos)
				res = Result{
					Score:    a.BestScore,
					Outcome:  solver.OutcomeOf(a.BestScore),
					Nodes:    a.Nodes,
					Analysis: &a,
				}
				atomic.AddInt64(&p.analyzed, 1)
			} else {
				score := s.Solve(j.pos)
				res = Result{
					Score:   score,
					Outcome: solver.OutcomeOf(score),
					Nodes:   s.NodeCount(),
				}
				atomic.AddInt64(&p.solved, 1)
			}
			res.Elapsed = time.Since(start)

			atomic.AddUint64(&p.nodes, res.Nodes)
			st := s.TableStats()
			atomic.AddUint64(&p.hits, st.Hits-prev.Hits)
			atomic.AddUint64(&p.misses, st.Misses-prev.Misses)
			atomic.AddUint64(&p.stores, st.Stores-prev.Stores)
			prev = st

			j.reply <- res

			log.Debug().
				Int("plies", j.pos.Plies()).
				Int("score", res.Score).
				Uint64("nodes", res.Nodes).
				Dur("elapsed", res.Elapsed).
				Msg("job done")
		}
	}
}
