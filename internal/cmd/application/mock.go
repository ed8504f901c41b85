package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/esxsync/internal/sources/meraki"
	"github.com/agentstation/esxsync/pkg/devices"
	"github.com/agentstation/esxsync/pkg/syncer"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    DirectoryFunc: func() (application.Directory, error) {
//	        return &application.MockDirectory{Set: devices.NewSet(dev)}, nil
//	    },
//	}
//	cmd := devices.NewCommand(mock)
type Mock struct {
	DirectoryFunc    func() (Directory, error)
	SyncOptionsFunc  func() []syncer.Option
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Directory returns a directory using the mock function or an empty MockDirectory.
func (m *Mock) Directory() (Directory, error) {
	if m.DirectoryFunc != nil {
		return m.DirectoryFunc()
	}
	return &MockDirectory{}, nil
}

// SyncOptions returns sync defaults using the mock function or none.
func (m *Mock) SyncOptions() []syncer.Option {
	if m.SyncOptionsFunc != nil {
		return m.SyncOptionsFunc()
	}
	return nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// MockDirectory is an in-memory Directory. Queries are recorded so tests
// can assert on what a command asked for.
type MockDirectory struct {
	Orgs    []meraki.Organization
	Set     *devices.Set
	Err     error
	Queries []devices.Query
}

// Organizations returns Orgs or Err.
func (d *MockDirectory) Organizations(context.Context) ([]meraki.Organization, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Orgs, nil
}

// Devices records the query and returns Set or Err.
func (d *MockDirectory) Devices(_ context.Context, q devices.Query) (*devices.Set, error) {
	d.Queries = append(d.Queries, q)
	if d.Err != nil {
		return nil, d.Err
	}
	if d.Set == nil {
		return devices.NewSet(), nil
	}
	return d.Set, nil
}

// Ensure Mock implements Application at compile time.
var (
	_ Application = (*Mock)(nil)
	_ Directory   = (*MockDirectory)(nil)
)
