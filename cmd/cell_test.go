package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"manimcells.dev/pkg/manimcells/internal/domain"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

func TestCellCmd(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	cmd, _ := newTestRootCmd(t, newCellCmd())

	mockWorkflow.On("Cell", mock.Anything, domain.CellArgs{
		Path:   m.Path("scenes/intro.py"),
		Line:   12,
		Dedent: true,
	}).Return(nil).Once()

	cmd.SetArgs([]string{"cell", "scenes/intro.py", "--line", "12", "--dedent"})
	require.NoError(t, cmd.Execute())
}

func TestCellCmd_RequiresLine(t *testing.T) {
	useMockWorkflow(t)

	cmd, _ := newTestRootCmd(t, newCellCmd())
	cmd.SetArgs([]string{"cell", "scenes/intro.py"})

	assert.ErrorContains(t, cmd.Execute(), `required flag(s) "line" not set`)
}

func TestCellCmd_RequiresFile(t *testing.T) {
	useMockWorkflow(t)

	cmd, _ := newTestRootCmd(t, newCellCmd())
	cmd.SetArgs([]string{"cell", "--line", "3"})

	assert.Error(t, cmd.Execute())
}

func TestCellCmd_NoCell(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	cmd, _ := newTestRootCmd(t, newCellCmd())

	mockWorkflow.On("Cell", mock.Anything, domain.CellArgs{Path: "intro.py", Line: 1}).Return(m.ErrNoCell).Once()

	cmd.SetArgs([]string{"cell", "intro.py", "-l", "1"})
	assert.ErrorIs(t, cmd.Execute(), m.ErrNoCell)
}
