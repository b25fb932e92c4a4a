package controller

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "phototools.dev/pkg/phototools/internal/model"
)

func testActions() []m.Action {
	return []m.Action{
		{Type: m.ActionDelete, From: "/photos/shoot/DSCF5341.JPG"},
		{Type: m.ActionDelete, From: "/photos/shoot/DSCF5342.JPG"},
	}
}

func TestConfirmModel_View(t *testing.T) {
	model := newConfirmModel(testActions())

	view := model.View()
	assert.Contains(t, view, "Delete 2 file(s)?")
	assert.Contains(t, view, "DSCF5341.JPG")
	assert.Contains(t, view, "y delete")
}

func TestConfirmModel_Update(t *testing.T) {
	tests := []struct {
		name          string
		key           tea.KeyMsg
		wantConfirmed bool
		wantDone      bool
	}{
		{"y confirms", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true, true},
		{"n cancels", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false, true},
		{"q cancels", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, false, true},
		{"ctrl+c cancels", tea.KeyMsg{Type: tea.KeyCtrlC}, false, true},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, false, true},
		{"down scrolls", tea.KeyMsg{Type: tea.KeyDown}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, cmd := newConfirmModel(testActions()).Update(tt.key)

			model, ok := updated.(confirmModel)
			require.True(t, ok)
			assert.Equal(t, tt.wantConfirmed, model.confirmed)
			assert.Equal(t, tt.wantDone, model.done)

			if tt.wantDone {
				require.NotNil(t, cmd)
				assert.Empty(t, model.View())
			}
		})
	}
}

func TestTUI_DisplayOrphans(t *testing.T) {
	cmd, out := newTestCmd("")
	ui := NewTUI(cmd)

	orphans := []m.FileEntry{{BaseID: "DSCF5359", Extension: "RAF", FullPath: "/photos/shoot/DSCF5359.RAF"}}
	require.NoError(t, ui.DisplayOrphans(context.Background(), orphans, m.PairingSummary{Orphans: 1}))

	assert.Contains(t, out.String(), "1 orphan file(s)")
	assert.Contains(t, out.String(), "DSCF5359.RAF")
}

func TestTUI_DisplayActionResult(t *testing.T) {
	cmd, out := newTestCmd("")
	ui := NewTUI(cmd)

	action := m.Action{Type: m.ActionDelete, From: "/p/A.JPG"}
	ui.DisplayActionResult(context.Background(), m.ActionResult{Action: action, Status: m.StatusDone})

	assert.Contains(t, out.String(), "/p/A.JPG deleted")
}

func TestNewUI(t *testing.T) {
	cmd, _ := newTestCmd("")

	_, isTUI := NewUI(cmd, true).(*TUI)
	assert.True(t, isTUI)

	_, isSimple := NewUI(cmd, false).(*SimpleUI)
	assert.True(t, isSimple)
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTTY(f))
}
