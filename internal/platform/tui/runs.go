package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-whale/internal/storage"
)

// maxRuns is the number of runs loaded into the board.
const maxRuns = 100

// runsBoard is the session leaderboard shown between runs.
type runsBoard struct {
	records []storage.RunRecord
	table   table.Model
	width   int
	height  int
	err     error
}

func newRunsBoard(width, height int) runsBoard {
	b := runsBoard{width: width, height: height}
	b.table = b.createTable()
	return b
}

// createTable creates a new table with appropriate columns.
func (b *runsBoard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Ticks", Width: 8},
		{Title: "Ended by", Width: 10},
		{Title: "Time", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(b.height-8, 3)), // Leave room for title, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("25")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes the board from the session log.
func (b *runsBoard) load(rec RunRecorder) {
	b.records, b.err = nil, nil
	if rec != nil {
		b.records, b.err = rec.TopRuns(maxRuns)
	}

	rows := make([]table.Row, len(b.records))
	for i, r := range b.records {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Ticks),
			r.Cause,
			r.EndedAt.Format("15:04:05"),
		}
	}
	b.table.SetRows(rows)
	b.table.GotoTop()
}

// resize rebuilds the table for a new window size.
func (b *runsBoard) resize(width, height int) {
	b.width, b.height = width, height
	rows := b.table.Rows()
	b.table = b.createTable()
	b.table.SetRows(rows)
}

// update passes scroll keys to the table.
func (b runsBoard) update(msg tea.Msg) (runsBoard, tea.Cmd) {
	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// view renders the board.
func (b runsBoard) view() string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	sb.WriteString(titleStyle.Render(centerText("THIS SESSION", b.width)))
	sb.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	switch {
	case b.err != nil:
		content = fmt.Sprintf("Cannot read runs: %v", b.err)
	case len(b.records) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		content = emptyStyle.Render("No runs finished yet.\nDive in and set a score!")
	default:
		content = b.table.View()
	}

	sb.WriteString(lipgloss.PlaceHorizontal(b.width, lipgloss.Center, tableStyle.Render(content)))
	return sb.String()
}
