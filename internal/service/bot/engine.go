package bot

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

const MediumDepth = 3

// ParseDifficulty falls back to Medium for anything it does not recognise.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s)
	default:
		return Medium
	}
}

// MoveCache remembers root decisions across games. Implementations must be
// safe for concurrent use.
type MoveCache interface {
	Lookup(ctx context.Context, key string) (column int, hit bool, err error)
	Store(ctx context.Context, key string, column int, ttl time.Duration) error
}

// Engine picks bot moves for every difficulty. It is safe for concurrent use.
type Engine struct {
	depth    int
	cache    MoveCache
	cacheTTL time.Duration
	log      zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Engine)

// WithCache enables the move cache; a nil cache is ignored.
func WithCache(cache MoveCache, ttl time.Duration) Option {
	return func(e *Engine) {
		e.cache = cache
		e.cacheTTL = ttl
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = logger
	}
}

// WithSeed makes the easy strategy deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// NewEngine uses depth for the hard difficulty; depth <= 0 means DefaultDepth.
func NewEngine(depth int, opts ...Option) *Engine {
	if depth <= 0 {
		depth = DefaultDepth
	}
	e := &Engine{
		depth: depth,
		log:   zerolog.Nop(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Depth() int {
	return e.depth
}

// ChooseMove returns the column owner should play at the given difficulty,
// or NoMove when the board is full.
func (e *Engine) ChooseMove(ctx context.Context, board *domain.Board, owner domain.Owner, difficulty Difficulty) int {
	switch difficulty {
	case Easy:
		e.rngMu.Lock()
		defer e.rngMu.Unlock()
		return chooseEasyMove(board, owner, e.rng)
	case Hard:
		return e.search(ctx, board, owner, e.depth)
	default:
		return e.search(ctx, board, owner, min(MediumDepth, e.depth))
	}
}

func (e *Engine) search(ctx context.Context, board *domain.Board, owner domain.Owner, depth int) int {
	key := cacheKey(board, owner, depth)

	if e.cache != nil {
		col, hit, err := e.cache.Lookup(ctx, key)
		if err != nil {
			e.log.Warn().Err(err).Str("key", key).Msg("move cache lookup failed")
		} else if hit && board.IsValidMove(col) {
			e.log.Debug().Int("column", col).Int("depth", depth).Msg("move cache hit")
			return col
		}
	}

	start := time.Now()
	col := ChooseBestMove(board, depth, owner)
	e.log.Debug().
		Int("column", col).
		Int("depth", depth).
		Str("owner", owner.String()).
		Dur("took", time.Since(start)).
		Msg("search finished")

	if e.cache != nil && col != NoMove {
		if err := e.cache.Store(ctx, key, col, e.cacheTTL); err != nil {
			e.log.Warn().Err(err).Str("key", key).Msg("move cache store failed")
		}
	}
	return col
}

func cacheKey(board *domain.Board, owner domain.Owner, depth int) string {
	return fmt.Sprintf("move:%d:%s:%s", depth, owner, board.Key())
}
