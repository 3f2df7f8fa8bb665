// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// MockUI is a mock of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a mock that asserts its expectations on cleanup.
func NewMockUI(t *testing.T) *MockUI {
	mockUI := &MockUI{}
	mockUI.Test(t)
	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

func (_m *MockUI) DisplayScan(ctx context.Context, report m.ScanReport) error {
	return _m.Called(ctx, report).Error(0)
}

func (_m *MockUI) DisplayCell(ctx context.Context, view m.CellView) error {
	return _m.Called(ctx, view).Error(0)
}

func (_m *MockUI) DisplayScene(ctx context.Context, view m.SceneView) error {
	return _m.Called(ctx, view).Error(0)
}

func (_m *MockUI) DisplayWatchStart(ctx context.Context, dirs []m.Path, report m.ScanReport) error {
	return _m.Called(ctx, dirs, report).Error(0)
}

func (_m *MockUI) DisplayLayoutChange(ctx context.Context, path m.Path, diff string) error {
	return _m.Called(ctx, path, diff).Error(0)
}
