// Package uci drives an external chess engine over the UCI text protocol
// and supplies its moves to game sessions.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/lgbarn/chessrules-go/internal/config"
	chesserrors "github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
)

var (
	// ErrNoMove is returned when the engine answers "bestmove (none)".
	ErrNoMove = errors.New("engine has no move")

	// ErrEngineExited is returned when the engine closes its output.
	ErrEngineExited = errors.New("engine exited")
)

// quitGrace is how long Close waits for the engine to exit after "quit".
const quitGrace = time.Second

// UCIEngine is a running engine process. Requests are serialised; the
// process is started on first use and restarted after a failed request.
type UCIEngine struct {
	path    string
	args    []string
	depth   int
	timeout time.Duration
	cfg     *config.Config

	mu    sync.Mutex
	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string
	done  chan struct{}
}

// New creates an engine from cfg.Engine. The process is not started until
// the first request.
func New(cfg *config.Config) (*UCIEngine, error) {
	if !cfg.Engine.Enabled() {
		return nil, fmt.Errorf("no engine path: %w", chesserrors.ErrInvalidConfig)
	}
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	return &UCIEngine{
		path:    cfg.Engine.Path,
		args:    cfg.Engine.Args,
		depth:   cfg.Engine.Depth,
		timeout: cfg.Engine.Timeout,
		cfg:     cfg,
	}, nil
}

// BestMove searches pos and returns the engine's move code. It implements
// game.MoveSupplier.
func (e *UCIEngine) BestMove(ctx context.Context, pos game.Position) (string, error) {
	eval, err := e.Analyze(ctx, pos)
	if err != nil {
		return "", err
	}
	return eval.BestMove, nil
}

// Analyze searches pos to the configured depth and returns the last score
// reported along with the best move.
func (e *UCIEngine) Analyze(ctx context.Context, pos game.Position) (*Evaluation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	eval, err := e.search(ctx, pos)
	if err != nil {
		// The engine may still be thinking; start afresh next time.
		e.stop(false)
		return nil, err
	}
	return eval, nil
}

func (e *UCIEngine) search(ctx context.Context, pos game.Position) (*Evaluation, error) {
	if err := e.start(ctx); err != nil {
		return nil, err
	}
	if err := e.send(PositionCommand(pos)); err != nil {
		return nil, err
	}
	if err := e.send(fmt.Sprintf("go depth %d", e.depth)); err != nil {
		return nil, err
	}

	eval := &Evaluation{}
	line, err := e.waitFor(ctx, "bestmove", func(l string) {
		if strings.HasPrefix(l, "info") {
			e.parseInfo(l, eval)
		}
	})
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] == "(none)" {
		return nil, ErrNoMove
	}
	eval.BestMove = fields[1]
	e.cfg.Logf(2, "engine: %s (%s, depth %d)", eval.BestMove, FormatEvaluation(eval), eval.Depth)
	return eval, nil
}

// start launches the process and completes the handshake.
func (e *UCIEngine) start(ctx context.Context) error {
	if e.cmd != nil {
		return nil
	}

	cmd := exec.Command(e.path, e.args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", e.path, err)
	}

	lines := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(stdout)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()
	e.cmd, e.stdin, e.lines, e.done = cmd, stdin, lines, done
	e.cfg.Logf(1, "engine: started %s", e.path)

	for _, step := range [][2]string{{"uci", "uciok"}, {"isready", "readyok"}} {
		if err := e.send(step[0]); err != nil {
			return err
		}
		if _, err := e.waitFor(ctx, step[1], nil); err != nil {
			return fmt.Errorf("handshake: %w", err)
		}
	}
	return nil
}

func (e *UCIEngine) send(command string) error {
	e.cfg.Logf(2, "engine <- %s", command)
	_, err := io.WriteString(e.stdin, command+"\n")
	return err
}

// waitFor reads lines until one starts with prefix. Other lines are passed
// to onLine.
func (e *UCIEngine) waitFor(ctx context.Context, prefix string, onLine func(string)) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-e.lines:
			if !ok {
				return "", ErrEngineExited
			}
			e.cfg.Logf(2, "engine -> %s", line)
			if strings.HasPrefix(line, prefix) {
				return line, nil
			}
			if onLine != nil {
				onLine(line)
			}
		}
	}
}

// Close asks the engine to quit and waits briefly before killing it.
func (e *UCIEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stop(true)
	return nil
}

func (e *UCIEngine) stop(graceful bool) {
	if e.cmd == nil {
		return
	}
	if graceful {
		_ = e.send("quit")
	}
	_ = e.stdin.Close()
	close(e.done)

	exited := make(chan error, 1)
	go func() { exited <- e.cmd.Wait() }()
	wait := quitGrace
	if !graceful {
		wait = 0
	}
	select {
	case <-exited:
	case <-time.After(wait):
		_ = e.cmd.Process.Kill()
		<-exited
	}
	e.cfg.Logf(1, "engine: stopped %s", e.path)
	e.cmd, e.stdin, e.lines, e.done = nil, nil, nil, nil
}
