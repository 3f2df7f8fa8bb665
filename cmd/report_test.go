package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"manimcells.dev/pkg/manimcells/internal/domain"
)

func TestReportCmd(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	cmd, _ := newTestRootCmd(t, newReportCmd())

	mockWorkflow.On("ShowReport", mock.Anything, domain.ReportArgs{Path: "cells.yaml"}).Return(nil).Once()

	cmd.SetArgs([]string{"report", "cells.yaml"})
	require.NoError(t, cmd.Execute())
}

func TestReportCmd_RequiresFile(t *testing.T) {
	useMockWorkflow(t)

	cmd, _ := newTestRootCmd(t, newReportCmd())
	cmd.SetArgs([]string{"report"})

	assert.Error(t, cmd.Execute())
}
