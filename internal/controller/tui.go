package controller

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	m "phototools.dev/pkg/phototools/internal/model"
)

const maxConfirmRows = 15

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI for interactive terminals: styled output and a Bubble Tea
// confirmation screen before deleting files.
type TUI struct {
	*SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd)}
}

// DisplayOrphans prints the orphan table under a styled title.
func (t *TUI) DisplayOrphans(ctx context.Context, orphans []m.FileEntry, summary m.PairingSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.printf("\n%s\n", titleStyle.Render(fmt.Sprintf("%d orphan file(s)", len(orphans))))
	t.printf("%s", renderOrphanTable(orphans))
	t.printf("%s\n", hintStyle.Render(formatSummary(summary)))

	return nil
}

// DisplayActionResult prints a colored outcome line.
func (t *TUI) DisplayActionResult(ctx context.Context, result m.ActionResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	line := formatActionResult(result)
	if result.Status == m.StatusFailed {
		line = failStyle.Render(line)
	} else {
		line = okStyle.Render(line)
	}

	t.printf("%s\n", line)
}

// ConfirmActions shows the files about to be deleted and waits for y or n.
func (t *TUI) ConfirmActions(ctx context.Context, actions []m.Action) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	program := tea.NewProgram(
		newConfirmModel(actions),
		tea.WithContext(ctx),
		tea.WithInput(t.cmd.InOrStdin()),
		tea.WithOutput(t.cmd.OutOrStdout()),
	)

	final, err := program.Run()
	if err != nil {
		return false, err
	}

	result, ok := final.(confirmModel)

	return ok && result.confirmed, nil
}

// confirmModel is the Bubble Tea model of the deletion prompt.
type confirmModel struct {
	table     table.Model
	count     int
	confirmed bool
	done      bool
}

func newConfirmModel(actions []m.Action) confirmModel {
	columns := []table.Column{
		{Title: "File", Width: 32},
		{Title: "Directory", Width: 48},
	}

	rows := make([]table.Row, 0, len(actions))
	for _, action := range actions {
		from := string(action.From)
		rows = append(rows, table.Row{filepath.Base(from), filepath.Dir(from)})
	}

	height := min(max(len(rows), 1), maxConfirmRows)

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tbl.SetStyles(styles)

	return confirmModel{table: tbl, count: len(actions)}
}

func (cm confirmModel) Init() tea.Cmd {
	return nil
}

func (cm confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			cm.confirmed = true
			cm.done = true

			return cm, tea.Quit
		case "n", "N", "q", "esc", "ctrl+c":
			cm.done = true

			return cm, tea.Quit
		}
	}

	var cmd tea.Cmd
	cm.table, cmd = cm.table.Update(msg)

	return cm, cmd
}

func (cm confirmModel) View() string {
	if cm.done {
		return ""
	}

	return titleStyle.Render(fmt.Sprintf("Delete %d file(s)?", cm.count)) + "\n\n" +
		cm.table.View() + "\n" +
		hintStyle.Render("↑/↓ scroll • y delete • n cancel") + "\n"
}
