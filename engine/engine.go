// Package engine drives one snake session tick by tick.
//
// The engine has no timer of its own. A driver calls Tick at a fixed rate, or
// Update with the frame delta, and delivers input through SetTargetDirection.
// None of the methods are safe for concurrent use; callers serialise them.
package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hoshinonyaruko/gridsnake/grid"
	"github.com/hoshinonyaruko/gridsnake/snake"
	"github.com/hoshinonyaruko/gridsnake/structs"
)

// ErrRestartNotAllowed is returned by Restart while a session is still live.
var ErrRestartNotAllowed = errors.New("restart allowed only after game over or win")

// Option customises an Engine at construction.
type Option func(*Engine)

// WithStore replaces the in-memory high score store.
func WithStore(store HighScoreStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithHooks registers the session observers.
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithSource replaces the seeded random source used to place the apple.
func WithSource(src grid.Source) Option {
	return func(e *Engine) { e.rng = src }
}

type session struct {
	id        string
	cfg       Config
	grid      *grid.Grid
	pool      *grid.Pool
	snake     *snake.Snake
	apple     snake.Apple
	score     int
	state     structs.State
	timer     time.Duration
	startedAt time.Time
	endedAt   time.Time
}

// Engine owns the current session and the high score.
type Engine struct {
	cfg   Config
	store HighScoreStore
	hooks Hooks
	rng   grid.Source
	high  int
	s     *session
}

// New validates cfg and starts the first session in the Idle state.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = &MemoryStore{}
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		e.rng = grid.NewSource(seed)
	}
	if err := e.start(); err != nil {
		return nil, err
	}
	return e, nil
}

// start discards the previous session and builds a new one from e.cfg.
func (e *Engine) start() error {
	cfg := e.cfg
	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	head, ok := g.CellAt(cfg.InitialHead.X, cfg.InitialHead.Y)
	if !ok {
		return fmt.Errorf("%w: initial head %s outside grid", ErrInvalidConfiguration, cfg.InitialHead)
	}
	s := &session{
		id:        uuid.NewString(),
		cfg:       cfg,
		grid:      g,
		pool:      grid.NewPool(g, e.rng),
		snake:     snake.New(head),
		state:     structs.Idle,
		startedAt: time.Now(),
	}
	s.pool.Remove(head)
	if err := s.apple.Relocate(s.pool); err != nil {
		// 1x1 board: the snake already fills it and there is nothing to eat.
		log.Printf("session %s: no free cell for the apple: %v", s.id, err)
	}

	stored, err := e.store.LoadHighScore()
	if err != nil {
		log.Printf("Failed to load high score: %v", err)
	} else if stored > e.high {
		e.high = stored
	}

	e.s = s
	e.hooks.gameStart()
	e.hooks.scoreChanged(s.score, e.high)
	return nil
}

// Restart begins a new session. Only valid after game over or a win.
func (e *Engine) Restart() error {
	if !e.s.state.Terminal() {
		return ErrRestartNotAllowed
	}
	return e.start()
}

// SetConfig replaces the configuration used by the next session.
// The running session keeps its grid.
func (e *Engine) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// SetTargetDirection queues d for the next tick. The opposite of the committed
// direction is rejected. The first accepted input moves Idle to Running.
func (e *Engine) SetTargetDirection(d structs.Direction) bool {
	s := e.s
	if s.state.Terminal() {
		return false
	}
	if !s.snake.SetTargetDirection(d) {
		return false
	}
	if s.state == structs.Idle {
		s.state = structs.Running
		s.timer = 0
		e.hooks.firstInput()
	}
	return true
}

// Update accumulates elapsed time while running and performs at most one tick
// once the accumulator passes the tick interval.
func (e *Engine) Update(elapsed time.Duration) structs.Outcome {
	s := e.s
	if s.state != structs.Running {
		return structs.OutcomeNone
	}
	s.timer += elapsed
	if s.timer <= s.cfg.TickInterval {
		return structs.OutcomeNone
	}
	s.timer = 0
	return e.Tick()
}

// Tick performs one simulation step. Outside Running it does nothing.
func (e *Engine) Tick() structs.Outcome {
	s := e.s
	if s.state != structs.Running {
		return structs.OutcomeNone
	}
	s.snake.PromoteDirection()

	next, ok := s.snake.ComputeNextHead(s.grid)
	if !ok {
		return e.endGame()
	}
	// The pre-move body includes the tail tip.
	if s.snake.Occupies(next) {
		return e.endGame()
	}

	scoring := s.apple.Is(next)
	vacated, freed := s.snake.Advance(next, scoring)
	s.pool.Remove(next)
	if freed {
		s.pool.Add(vacated)
	}
	if !scoring {
		return structs.OutcomeMoved
	}

	s.score++
	if s.score > e.high {
		e.high = s.score
		if err := e.store.SaveHighScore(e.high); err != nil {
			log.Printf("Failed to save high score %d: %v", e.high, err)
		}
	}
	e.hooks.scoreChanged(s.score, e.high)

	if s.pool.Count() == 0 {
		return e.win()
	}
	if err := s.apple.Relocate(s.pool); err != nil {
		return e.win()
	}
	return structs.OutcomeScored
}

func (e *Engine) endGame() structs.Outcome {
	e.s.state = structs.GameOver
	e.s.endedAt = time.Now()
	e.hooks.gameOver()
	return structs.OutcomeGameOver
}

func (e *Engine) win() structs.Outcome {
	e.s.apple.Deactivate()
	e.s.state = structs.Won
	e.s.endedAt = time.Now()
	e.hooks.won()
	return structs.OutcomeWon
}

func (e *Engine) State() structs.State { return e.s.state }

func (e *Engine) SessionID() string { return e.s.id }

func (e *Engine) Score() int { return e.s.score }

func (e *Engine) HighScore() int { return e.high }

func (e *Engine) Head() structs.Cell { return e.s.snake.Head() }

func (e *Engine) Length() int { return e.s.snake.Len() }

func (e *Engine) Body() []structs.Cell { return e.s.snake.Body() }

func (e *Engine) Direction() structs.Direction { return e.s.snake.Direction() }

// Apple returns the apple cell and whether it is on the board.
func (e *Engine) Apple() (structs.Cell, bool) {
	return e.s.apple.Cell(), e.s.apple.Active()
}

// Available is the number of cells the snake does not occupy.
func (e *Engine) Available() int { return e.s.pool.Count() }

// TickInterval of the current session.
func (e *Engine) TickInterval() time.Duration { return e.s.cfg.TickInterval }

// Snapshot copies the session for presentation.
func (e *Engine) Snapshot() structs.Snapshot {
	s := e.s
	return structs.Snapshot{
		SessionID:   s.id,
		State:       s.state.String(),
		Width:       s.grid.Width(),
		Height:      s.grid.Height(),
		Body:        s.snake.Body(),
		Direction:   s.snake.Direction().String(),
		Apple:       s.apple.Cell(),
		AppleActive: s.apple.Active(),
		Score:       s.score,
		HighScore:   e.high,
		Camera:      s.grid.Center(),
	}
}

// Record describes a finished session. ok is false while the session is live.
func (e *Engine) Record() (rec structs.SessionRecord, ok bool) {
	s := e.s
	if !s.state.Terminal() {
		return structs.SessionRecord{}, false
	}
	return structs.SessionRecord{
		SessionID:  s.id,
		Outcome:    s.state.String(),
		Score:      s.score,
		Length:     s.snake.Len(),
		Width:      s.grid.Width(),
		Height:     s.grid.Height(),
		Body:       s.snake.Body(),
		StartedAt:  s.startedAt,
		FinishedAt: s.endedAt,
	}, true
}
