// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"manimcells.dev/pkg/manimcells/internal/domain"
)

// MockWorkflow is a mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a mock that asserts its expectations on cleanup.
func NewMockWorkflow(t *testing.T) *MockWorkflow {
	mockWorkflow := &MockWorkflow{}
	mockWorkflow.Test(t)
	t.Cleanup(func() { mockWorkflow.AssertExpectations(t) })

	return mockWorkflow
}

func (_m *MockWorkflow) Scan(ctx context.Context, args domain.ScanArgs) error {
	return _m.Called(ctx, args).Error(0)
}

func (_m *MockWorkflow) Cell(ctx context.Context, args domain.CellArgs) error {
	return _m.Called(ctx, args).Error(0)
}

func (_m *MockWorkflow) Scene(ctx context.Context, args domain.SceneArgs) error {
	return _m.Called(ctx, args).Error(0)
}

func (_m *MockWorkflow) Watch(ctx context.Context, args domain.WatchArgs) error {
	return _m.Called(ctx, args).Error(0)
}

func (_m *MockWorkflow) ShowReport(ctx context.Context, args domain.ReportArgs) error {
	return _m.Called(ctx, args).Error(0)
}
