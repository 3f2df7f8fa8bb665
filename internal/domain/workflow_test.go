package domain_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"manimcells.dev/pkg/manimcells/internal/adapter"
	adaptermocks "manimcells.dev/pkg/manimcells/internal/adapter/mocks"
	controllermocks "manimcells.dev/pkg/manimcells/internal/controller/mocks"
	"manimcells.dev/pkg/manimcells/internal/domain"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

const basicScene = `from manimlib import *


class BasicNotebook(Scene):
    def construct(self):
        ## A Manim Cell
        print("With some code")
        print("With some more code")

        ## And another Manim Cell
        print("And even more code")
`

type workflowDeps struct {
	fs       *adaptermocks.MockSourceFSAdapter
	store    *adaptermocks.MockReportStore
	ui       *controllermocks.MockUI
	watcher  *adaptermocks.MockWatcher
	workflow domain.Workflow
}

func newWorkflowDeps(t *testing.T) workflowDeps {
	t.Helper()

	detector, err := domain.NewDetector(8, 16)
	require.NoError(t, err)
	t.Cleanup(detector.Close)

	deps := workflowDeps{
		fs:      adaptermocks.NewMockSourceFSAdapter(t),
		store:   adaptermocks.NewMockReportStore(t),
		ui:      controllermocks.NewMockUI(t),
		watcher: adaptermocks.NewMockWatcher(t),
	}

	factory := func([]m.Path, time.Duration, func(string) bool) (adapter.Watcher, error) {
		return deps.watcher, nil
	}

	deps.workflow = domain.NewWorkflow(deps.fs, deps.store, deps.ui, detector, factory)

	return deps
}

func source(full, short string) m.Source {
	return m.Source{Origin: &m.File{FullPath: m.Path(full), ShortPath: m.Path(short)}}
}

func TestWorkflow_Scan(t *testing.T) {
	deps := newWorkflowDeps(t)

	sources := []m.Source{
		source("/abs/scenes/basic.py", "scenes/basic.py"),
		source("/abs/scenes/locked.py", "scenes/locked.py"),
	}

	deps.fs.On("Get", mock.Anything, []m.Path{"./scenes/..."}, mock.Anything).Return(sources, nil).Once()
	deps.fs.On("ReadFile", m.Path("/abs/scenes/basic.py")).Return([]byte(basicScene), nil).Once()
	deps.fs.On("ReadFile", m.Path("/abs/scenes/locked.py")).Return(nil, fs.ErrPermission).Once()

	var saved m.ScanReport

	deps.store.On("SaveReport", m.Path("cells.yaml"), mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(m.ScanReport) }).
		Return(nil).Once()

	deps.ui.On("DisplayScan", mock.Anything, mock.MatchedBy(func(report m.ScanReport) bool {
		return len(report.Files) == 2
	})).Return(nil).Once()

	err := deps.workflow.Scan(context.Background(), domain.ScanArgs{
		Paths:   []m.Path{"./scenes/..."},
		Threads: 2,
		Report:  "cells.yaml",
	})
	require.NoError(t, err)

	require.Len(t, saved.Files, 2)
	assert.Equal(t, m.ReportVersion, saved.Version)

	basic := saved.Files[0]
	assert.Equal(t, m.Path("scenes/basic.py"), basic.Path)
	require.Len(t, basic.Candidates, 1)
	assert.Equal(t, []m.CellReport{
		{Title: "## A Manim Cell", Line: 6, ContentStart: 7, ContentEnd: 9, DisplayEnd: 8},
		{Title: "## And another Manim Cell", Line: 10, ContentStart: 11, ContentEnd: 11, DisplayEnd: 11},
	}, basic.Candidates[0].Cells)

	assert.Equal(t, m.Path("scenes/locked.py"), saved.Files[1].Path)
	assert.Contains(t, saved.Files[1].Error, "permission denied")
}

func TestWorkflow_Scan_InvalidExclude(t *testing.T) {
	deps := newWorkflowDeps(t)

	err := deps.workflow.Scan(context.Background(), domain.ScanArgs{Exclude: []string{"("}})
	assert.ErrorContains(t, err, "invalid exclude pattern")
}

func TestWorkflow_Scan_GetError(t *testing.T) {
	deps := newWorkflowDeps(t)

	deps.fs.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	err := deps.workflow.Scan(context.Background(), domain.ScanArgs{Paths: []m.Path{"."}})
	assert.ErrorContains(t, err, "get sources: boom")
}

func TestWorkflow_Cell(t *testing.T) {
	deps := newWorkflowDeps(t)

	deps.fs.On("ReadFile", m.Path("basic.py")).Return([]byte(basicScene), nil)

	deps.ui.On("DisplayCell", mock.Anything, m.CellView{
		Path:      "basic.py",
		Candidate: m.CandidateID{Class: "BasicNotebook", Method: "construct"},
		Cell:      m.CellReport{Title: "## A Manim Cell", Line: 6, ContentStart: 7, ContentEnd: 9, DisplayEnd: 8},
		Text:      "print(\"With some code\")\nprint(\"With some more code\")\n",
	}).Return(nil).Once()

	require.NoError(t, deps.workflow.Cell(context.Background(), domain.CellArgs{Path: "basic.py", Line: 7, Dedent: true}))

	err := deps.workflow.Cell(context.Background(), domain.CellArgs{Path: "basic.py", Line: 2})
	assert.ErrorIs(t, err, m.ErrNoCell)

	err = deps.workflow.Cell(context.Background(), domain.CellArgs{Path: "basic.py", Line: 0})
	assert.ErrorIs(t, err, m.ErrLineOutOfRange)
}

func TestWorkflow_Cell_ReadError(t *testing.T) {
	deps := newWorkflowDeps(t)

	deps.fs.On("ReadFile", m.Path("missing.py")).Return(nil, fs.ErrNotExist).Once()

	err := deps.workflow.Cell(context.Background(), domain.CellArgs{Path: "missing.py", Line: 1})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWorkflow_Scene(t *testing.T) {
	deps := newWorkflowDeps(t)

	deps.fs.On("ReadFile", m.Path("basic.py")).Return([]byte(basicScene), nil)
	deps.ui.On("DisplayScene", mock.Anything, m.SceneView{
		Path:  "basic.py",
		Name:  "BasicNotebook",
		Line:  4,
		Bases: []string{"Scene"},
	}).Return(nil).Once()

	require.NoError(t, deps.workflow.Scene(context.Background(), domain.SceneArgs{Path: "basic.py", Line: 11}))

	err := deps.workflow.Scene(context.Background(), domain.SceneArgs{Path: "basic.py", Line: 1})
	assert.ErrorIs(t, err, m.ErrNoScene)
}

func TestWorkflow_ShowReport(t *testing.T) {
	deps := newWorkflowDeps(t)

	report := m.ScanReport{Version: m.ReportVersion, Files: []m.FileReport{{Path: "a.py"}}}

	deps.store.On("LoadReport", m.Path("cells.yaml")).Return(report, nil).Once()
	deps.ui.On("DisplayScan", mock.Anything, report).Return(nil).Once()

	require.NoError(t, deps.workflow.ShowReport(context.Background(), domain.ReportArgs{Path: "cells.yaml"}))
}

func TestWorkflow_Watch(t *testing.T) {
	deps := newWorkflowDeps(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scenePath := m.Path("/abs/basic.py")
	edited := strings.Replace(basicScene, "        ## And another Manim Cell\n", "", 1)

	deps.fs.On("Get", mock.Anything, []m.Path{"/abs"}, mock.Anything).
		Return([]m.Source{source(string(scenePath), "basic.py")}, nil).Once()
	deps.fs.On("ReadFile", scenePath).Return([]byte(basicScene), nil).Once()
	deps.fs.On("WatchRoots", []m.Path{"/abs"}).Return([]m.Path{"/abs"}, nil).Once()
	deps.fs.On("ReadFile", scenePath).Return([]byte(edited), nil).Once()

	deps.ui.On("DisplayWatchStart", mock.Anything, []m.Path{"/abs"}, mock.Anything).Return(nil).Once()
	deps.ui.On("DisplayLayoutChange", mock.Anything, scenePath, mock.MatchedBy(func(diff string) bool {
		return strings.Contains(diff, "-  10-11 ## And another Manim Cell") &&
			strings.Contains(diff, "-  6-8 ## A Manim Cell") &&
			strings.Contains(diff, "+  6-10 ## A Manim Cell")
	})).Return(nil).Once()

	deps.watcher.On("Start", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			callback := args.Get(1).(func([]m.Path))
			callback([]m.Path{scenePath})
			cancel()
		}).
		Return(nil).Once()
	deps.watcher.On("Stop").Return(nil).Once()

	err := deps.workflow.Watch(ctx, domain.WatchArgs{Paths: []m.Path{"/abs"}})
	require.NoError(t, err)
}

func TestWorkflow_Watch_RemovedFile(t *testing.T) {
	deps := newWorkflowDeps(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scenePath := m.Path("/abs/basic.py")

	deps.fs.On("Get", mock.Anything, mock.Anything, mock.Anything).
		Return([]m.Source{source(string(scenePath), "basic.py")}, nil).Once()
	deps.fs.On("ReadFile", scenePath).Return([]byte(basicScene), nil).Once()
	deps.fs.On("WatchRoots", mock.Anything).Return([]m.Path{"/abs"}, nil).Once()
	deps.fs.On("ReadFile", scenePath).Return(nil, fs.ErrNotExist).Once()

	deps.ui.On("DisplayWatchStart", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	deps.ui.On("DisplayLayoutChange", mock.Anything, scenePath, mock.MatchedBy(func(diff string) bool {
		return strings.Contains(diff, "-BasicNotebook.construct@0 line 5")
	})).Return(nil).Once()

	deps.watcher.On("Start", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			callback := args.Get(1).(func([]m.Path))
			callback([]m.Path{scenePath})
			cancel()
		}).
		Return(nil).Once()
	deps.watcher.On("Stop").Return(nil).Once()

	require.NoError(t, deps.workflow.Watch(ctx, domain.WatchArgs{Paths: []m.Path{"/abs"}}))
}
