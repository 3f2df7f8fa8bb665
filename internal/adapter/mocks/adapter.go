// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"manimcells.dev/pkg/manimcells/internal/adapter"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

// MockSourceFSAdapter is a mock of adapter.SourceFSAdapter.
type MockSourceFSAdapter struct {
	mock.Mock
}

// NewMockSourceFSAdapter creates a mock that asserts its expectations on cleanup.
func NewMockSourceFSAdapter(t *testing.T) *MockSourceFSAdapter {
	mockAdapter := &MockSourceFSAdapter{}
	mockAdapter.Test(t)
	t.Cleanup(func() { mockAdapter.AssertExpectations(t) })

	return mockAdapter
}

func (_m *MockSourceFSAdapter) Get(ctx context.Context, roots []m.Path, filter *adapter.PathFilter) ([]m.Source, error) {
	ret := _m.Called(ctx, roots, filter)

	sources, _ := ret.Get(0).([]m.Source)

	return sources, ret.Error(1)
}

func (_m *MockSourceFSAdapter) Walk(root m.Path, recursive bool, fn adapter.FilepathWalkFunc) error {
	return _m.Called(root, recursive, fn).Error(0)
}

func (_m *MockSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	ret := _m.Called(path)

	data, _ := ret.Get(0).([]byte)

	return data, ret.Error(1)
}

func (_m *MockSourceFSAdapter) HashFile(path m.Path) (string, error) {
	ret := _m.Called(path)
	return ret.String(0), ret.Error(1)
}

func (_m *MockSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	ret := _m.Called(path)

	info, _ := ret.Get(0).(os.FileInfo)

	return info, ret.Error(1)
}

func (_m *MockSourceFSAdapter) WatchRoots(roots []m.Path) ([]m.Path, error) {
	ret := _m.Called(roots)

	dirs, _ := ret.Get(0).([]m.Path)

	return dirs, ret.Error(1)
}

// MockReportStore is a mock of adapter.ReportStore.
type MockReportStore struct {
	mock.Mock
}

// NewMockReportStore creates a mock that asserts its expectations on cleanup.
func NewMockReportStore(t *testing.T) *MockReportStore {
	mockStore := &MockReportStore{}
	mockStore.Test(t)
	t.Cleanup(func() { mockStore.AssertExpectations(t) })

	return mockStore
}

func (_m *MockReportStore) SaveReport(path m.Path, report m.ScanReport) error {
	return _m.Called(path, report).Error(0)
}

func (_m *MockReportStore) LoadReport(path m.Path) (m.ScanReport, error) {
	ret := _m.Called(path)

	report, _ := ret.Get(0).(m.ScanReport)

	return report, ret.Error(1)
}

// MockWatcher is a mock of adapter.Watcher.
type MockWatcher struct {
	mock.Mock
}

// NewMockWatcher creates a mock that asserts its expectations on cleanup.
func NewMockWatcher(t *testing.T) *MockWatcher {
	mockWatcher := &MockWatcher{}
	mockWatcher.Test(t)
	t.Cleanup(func() { mockWatcher.AssertExpectations(t) })

	return mockWatcher
}

func (_m *MockWatcher) Start(ctx context.Context, callback func(paths []m.Path)) error {
	return _m.Called(ctx, callback).Error(0)
}

func (_m *MockWatcher) Stop() error {
	return _m.Called().Error(0)
}
