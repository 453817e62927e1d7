// Package tui is a terminal front end for a single local game.
package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benbeisheim/casualchess/internal/model"
)

// refreshMsg tells the program the game changed outside of Update, for
// example when the opponent moved.
type refreshMsg struct{}

var promotionKeys = map[string]model.PieceType{
	"q": model.Queen,
	"r": model.Rook,
	"b": model.Bishop,
	"n": model.Knight,
}

type Model struct {
	game   *model.Game
	view   model.View
	cursor model.Square
	err    error
}

func New(g *model.Game) Model {
	return Model{
		game:   g,
		view:   g.View(),
		cursor: model.Square{File: 4, Rank: 1},
	}
}

// Run plays g in the terminal until the user quits.
func Run(g *model.Game, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(New(g), opts...)
	// Send from a goroutine: the callback can fire inside Update, which
	// would block waiting on its own event loop.
	unsubscribe := g.Subscribe(func(model.View) { go p.Send(refreshMsg{}) })
	defer unsubscribe()
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.view = m.game.View()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.view.PendingPromotion != nil {
			if pt, ok := promotionKeys[msg.String()]; ok {
				m.err = m.game.ChoosePromotion(pt)
				m.view = m.game.View()
				return m, nil
			}
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor.Rank < 7 {
				m.cursor.Rank++
			}
		case "down", "j":
			if m.cursor.Rank > 0 {
				m.cursor.Rank--
			}
		case "left", "h":
			if m.cursor.File > 0 {
				m.cursor.File--
			}
		case "right", "l":
			if m.cursor.File < 7 {
				m.cursor.File++
			}
		case "enter", " ":
			m.err = m.game.SelectSquare(m.cursor)
		case "u":
			m.err = m.game.Undo()
		case "r":
			m.game.Reset()
			m.err = nil
		case "o":
			m.game.SetOpponentEnabled(!m.view.OpponentEnabled)
			m.err = nil
		}
		m.view = m.game.View()
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString("casualchess\n")
	s.WriteString("arrows/hjkl move, enter/space select, u undo, r reset, o opponent, ctrl+c quit\n\n")

	board := m.boardLines()
	info := m.infoLines()
	for i := 0; i < max(len(board), len(info)); i++ {
		if i < len(board) {
			s.WriteString(board[i])
		} else {
			s.WriteString(strings.Repeat(" ", 26))
		}
		s.WriteString("   ")
		if i < len(info) {
			s.WriteString(info[i])
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) boardLines() []string {
	lines := []string{"  a  b  c  d  e  f  g  h  "}
	for i, row := range m.view.Board {
		rank := 7 - i
		var line strings.Builder
		line.WriteString(fmt.Sprintf("%d", rank+1))
		for file, p := range row {
			sq := model.Square{File: file, Rank: rank}
			cell := " "
			if p != nil {
				cell = p.Symbol()
			}

			var bg string
			switch {
			case sq == m.cursor:
				bg = "\033[41m" // cursor
			case m.view.SelectedSquare != nil && sq == *m.view.SelectedSquare:
				bg = "\033[43m" // selected
			case slices.Contains(m.view.LegalMoves, sq):
				bg = "\033[42m" // destinations
			case (rank+file)%2 == 0:
				bg = "\033[40m"
			default:
				bg = "\033[100m"
			}
			line.WriteString(fmt.Sprintf("%s %s \033[0m", bg, cell))
		}
		line.WriteString(fmt.Sprintf("%d", rank+1))
		lines = append(lines, line.String())
	}
	return append(lines, "  a  b  c  d  e  f  g  h  ")
}

func (m Model) infoLines() []string {
	v := m.view
	lines := []string{fmt.Sprintf("%s to move", v.Turn.Title())}
	if v.Message != "" {
		lines = append(lines, v.Message)
	}

	opponent := "off"
	if v.OpponentEnabled {
		opponent = "plays " + string(v.OpponentColor)
	}
	lines = append(lines, "Opponent: "+opponent, fmt.Sprintf("Cursor: %s", m.cursor))

	if v.PendingPromotion != nil {
		lines = append(lines, "", fmt.Sprintf("Promote on %s: q r b n", v.PendingPromotion.To))
	}

	if len(v.MoveHistory) > 0 {
		lines = append(lines, "", "Moves:")
		start := max(0, len(v.MoveHistory)-8)
		for i := start; i < len(v.MoveHistory); i++ {
			r := v.MoveHistory[i]
			lines = append(lines, fmt.Sprintf("%3d. %-7s %s→%s", i+1, r.Notation, r.From, r.To))
		}
	}

	if m.err != nil {
		lines = append(lines, "", "! "+m.err.Error())
	}
	return lines
}
