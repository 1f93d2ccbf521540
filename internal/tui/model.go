// Package tui is an interactive terminal board for a game session.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/output"
)

type mode int

const (
	modeNormal mode = iota
	modeInput
)

const maxLogLines = 200

// logBuffer is shared by every copy of the model so the session observer
// can write to it.
type logBuffer struct {
	lines []string
}

func (l *logBuffer) add(s string) {
	l.lines = append(l.lines, s)
	if len(l.lines) > maxLogLines {
		l.lines = l.lines[len(l.lines)-maxLogLines:]
	}
}

// engineReplyMsg carries the engine's answer for pos.
type engineReplyMsg struct {
	pos  game.Position
	code string
	err  error
}

// answered supplies a reply that has already arrived.
type answered string

func (a answered) BestMove(context.Context, game.Position) (string, error) { return string(a), nil }

// Model is the bubbletea model.
type Model struct {
	session  *game.Session
	supplier game.MoveSupplier
	out      *config.OutputConfig

	m        mode
	input    textinput.Model
	log      *logBuffer
	marked   []chess.Square
	thinking bool

	width  int
	height int
}

// NewModel builds a model around s. supplier may be nil.
func NewModel(s *game.Session, supplier game.MoveSupplier) Model {
	ti := textinput.New()
	ti.Placeholder = "e4, Nf3, e7e8q, help..."
	ti.Prompt = "> "
	ti.CharLimit = 400
	ti.Width = 60

	logs := &logBuffer{}
	logs.add("ready (press i to enter a move or command)")
	s.Subscribe(game.ObserverFunc(func(e game.Event) {
		logs.add(describeEvent(e))
	}))

	return Model{
		session:  s,
		supplier: supplier,
		out:      config.NewOutputConfig(),
		m:        modeNormal,
		input:    ti,
		log:      logs,
	}
}

func describeEvent(e game.Event) string {
	switch e.Type {
	case game.EventMove:
		line := fmt.Sprintf("ply %d: %s", e.Ply, e.SAN)
		if e.Draw.Any() || e.Status != chess.Normal {
			line += " (" + output.DescribeStatus(e.Status, e.Draw) + ")"
		}
		return line
	case game.EventPromotion:
		return fmt.Sprintf("%s: choose q, r, b or n", e.UCI)
	case game.EventRewind:
		return fmt.Sprintf("at ply %d", e.Ply)
	case game.EventReset:
		return "new game"
	default:
		return string(e.Type)
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = min(80, max(30, m.width-4))
		return m, nil

	case engineReplyMsg:
		m.thinking = false
		m.applyEngineReply(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.m {
		case modeNormal:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "i", ":":
				m.m = modeInput
				m.input.SetValue("")
				m.input.Focus()
				return m, nil
			case "left":
				m.exec("back")
				return m, nil
			case "right":
				m.exec("fwd")
				return m, nil
			case "e":
				cmd := m.exec("engine")
				return m, cmd
			}
			return m, nil

		case modeInput:
			switch msg.String() {
			case "esc":
				m.m = modeNormal
				m.input.Blur()
				return m, nil
			case "enter":
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				m.m = modeNormal
				m.input.Blur()
				if line == "" {
					return m, nil
				}
				cmd := m.exec(line)
				return m, cmd
			}

			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// exec runs one command line. Anything that is not a command is played as
// a move.
func (m *Model) exec(line string) tea.Cmd {
	m.log.add("> " + line)
	m.marked = nil

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

	switch parts[0] {
	case "help":
		m.log.add("moves: e4, Nxf3, 0-0, e7e8q; commands: back, fwd, rewind <ply>, reset, fen, text,")
		m.log.add("  import <movetext>, moves <square>, attacks [square], promote <piece>, cancel, engine")
	case "back":
		m.report(m.session.Back())
	case "fwd", "forward":
		m.report(m.session.Forward())
	case "rewind":
		ply, err := strconv.Atoi(arg)
		if err != nil {
			m.log.add(fmt.Sprintf("rewind: bad ply %q", arg))
			return nil
		}
		m.report(m.session.Rewind(ply))
	case "reset":
		m.session.Reset()
	case "fen":
		m.log.add(m.session.FEN() + " " + strings.ToLower(m.session.ToMove().String()[:1]))
	case "text":
		var buf bytes.Buffer
		output.WriteText(&buf, output.NewRecord("", m.session, nil), m.out)
		for _, l := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
			m.log.add("  " + l)
		}
	case "import":
		res := m.session.Import(arg)
		m.log.add(fmt.Sprintf("imported %d plies", res.Played))
		for _, d := range res.Diagnostics {
			m.log.add("  skipped " + d.Error())
		}
	case "moves":
		m.showMoves(arg)
	case "attacks":
		m.showAttacks(arg)
	case "promote":
		m.promote(arg)
	case "cancel":
		m.session.CancelPromotion()
		m.log.add("promotion cancelled")
	case "engine":
		return m.askEngine()
	default:
		if _, pending := m.session.PendingPromotion(); pending && len(parts) == 1 {
			m.promote(line)
			return nil
		}
		m.play(line)
	}
	return nil
}

func (m *Model) report(err error) {
	if err != nil {
		m.log.add(err.Error())
	}
}

// play tries the text as notation first and as an engine code second.
func (m *Model) play(text string) {
	err := m.session.PlaySAN(text)
	if err != nil {
		if codeErr := m.session.PlayUCI(text); codeErr == nil {
			return
		}
		m.log.add(fmt.Sprintf("%s: %v", text, err))
	}
}

func (m *Model) promote(text string) {
	t, err := chess.ParsePromotionTarget(text)
	if err != nil {
		m.log.add(err.Error())
		return
	}
	m.report(m.session.Promote(t))
}

func (m *Model) showMoves(code string) {
	sq, err := chess.SquareFromCode(code)
	if err != nil {
		m.log.add(err.Error())
		return
	}
	moves := m.session.LegalMovesFrom(sq)
	if len(moves) == 0 {
		m.log.add(fmt.Sprintf("no legal moves from %s", sq.Code()))
		return
	}
	names := make([]string, 0, len(moves))
	for _, mv := range moves {
		m.marked = append(m.marked, mv.To)
		names = append(names, m.session.SAN(mv))
	}
	m.log.add(fmt.Sprintf("%s: %s", sq.Code(), strings.Join(names, " ")))
}

func (m *Model) showAttacks(code string) {
	if code == "" {
		m.showThreats()
		return
	}
	sq, err := chess.SquareFromCode(code)
	if err != nil {
		m.log.add(err.Error())
		return
	}
	m.marked = m.session.Attacks(sq)
	codes := make([]string, 0, len(m.marked))
	for _, a := range m.marked {
		codes = append(codes, a.Code())
	}
	m.log.add(fmt.Sprintf("%s attacks: %s", sq.Code(), strings.Join(codes, " ")))
}

// showThreats marks every square the side not to move attacks and names
// the pieces giving check, if any.
func (m *Model) showThreats() {
	opponent := m.session.ToMove().Opposite()
	m.marked = m.session.Controlled(opponent)
	m.log.add(fmt.Sprintf("%s controls %d squares", opponent, len(m.marked)))
	if checkers := m.session.Checkers(); len(checkers) > 0 {
		codes := make([]string, 0, len(checkers))
		for _, sq := range checkers {
			codes = append(codes, sq.Code())
		}
		m.log.add("check from " + strings.Join(codes, " "))
	}
}

func (m *Model) askEngine() tea.Cmd {
	switch {
	case m.supplier == nil:
		m.log.add("no engine configured")
		return nil
	case m.thinking:
		m.log.add("engine is already thinking")
		return nil
	}
	m.thinking = true
	m.log.add("engine thinking...")
	pos, supplier := m.session.Position(), m.supplier
	return func() tea.Msg {
		code, err := supplier.BestMove(context.Background(), pos)
		return engineReplyMsg{pos: pos, code: code, err: err}
	}
}

func (m *Model) applyEngineReply(msg engineReplyMsg) {
	if msg.err != nil {
		m.log.add(fmt.Sprintf("engine: %v", msg.err))
		return
	}
	if m.session.Position() != msg.pos {
		m.log.add("engine reply dropped: the position changed")
		return
	}
	if _, err := m.session.EngineMove(context.Background(), answered(msg.code)); err != nil {
		m.log.add(err.Error())
	}
}

func (m Model) statusLine() string {
	s := m.session
	line := fmt.Sprintf("%s to move  ply %d/%d  %s", s.ToMove(), s.Ply(), s.Len(),
		output.DescribeStatus(s.Status(), s.Draw()))
	if p, ok := s.PendingPromotion(); ok {
		line += fmt.Sprintf("  promoting %s", p.UCI())
	}
	if m.thinking {
		line += "  engine thinking"
	}
	return line
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	modeStr := "NORMAL"
	if m.m == modeInput {
		modeStr = "INPUT"
	}
	header := titleStyle.Render(fmt.Sprintf("chess  [%s]  mode:%s", m.session.Phase(), modeStr))

	board := RenderBoard(m.session.Board(), m.marked)
	moves := output.NewRecord("", m.session, nil)
	var movetext bytes.Buffer
	cfg := *m.out
	cfg.KeepResults = false
	cfg.MaxLineLength = 36
	output.WriteMovetext(&movetext, moves, &cfg)

	logHeight := max(5, m.height-20)
	lines := m.log.lines
	logBody := strings.Join(lines[max(0, len(lines)-logHeight):], "\n")
	width := max(20, m.width-2)
	logBox := boxStyle.Width(width).Render(logBody)

	inputLine := "press i to enter a move, arrows to step, e for the engine, q to quit"
	if m.m == modeInput {
		inputLine = m.input.View()
	}
	inputBox := boxStyle.Width(width).Render(inputLine)

	return header + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", strings.TrimSpace(movetext.String())) + "\n" +
		m.statusLine() + "\n" +
		logBox + "\n" +
		inputBox + "\n"
}
