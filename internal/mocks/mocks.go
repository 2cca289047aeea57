// File: internal/mocks/mocks.go
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/xkilldash9x/paramctl/internal/config"
	"github.com/xkilldash9x/paramctl/internal/host"
)

// -- Host Mock --

// MockHost mocks the host.Host interface.
type MockHost struct {
	mock.Mock
}

var _ host.Host = (*MockHost)(nil)

func (m *MockHost) SetParameter(path string, value float64) host.Status {
	args := m.Called(path, value)
	return args.Get(0).(host.Status)
}

func (m *MockHost) GetParameter(path string) (host.Variant, host.Status) {
	args := m.Called(path)
	return args.Get(0).(host.Variant), args.Get(1).(host.Status)
}

func (m *MockHost) EmitInformationMessage(msg string, flag bool) {
	m.Called(msg, flag)
}

func (m *MockHost) EmitErrorMessage(msg string, flag bool) {
	m.Called(msg, flag)
}

// -- Config Mock --

// MockConfig mocks the config.Interface.
type MockConfig struct {
	mock.Mock
}

var _ config.Interface = (*MockConfig)(nil)

// --- Getters ---

func (m *MockConfig) Logger() config.LoggerConfig {
	args := m.Called()
	return args.Get(0).(config.LoggerConfig)
}

func (m *MockConfig) Controller() config.ControllerConfig {
	args := m.Called()
	return args.Get(0).(config.ControllerConfig)
}

func (m *MockConfig) Apply() config.ApplyConfig {
	args := m.Called()
	return args.Get(0).(config.ApplyConfig)
}

func (m *MockConfig) Sim() config.SimConfig {
	args := m.Called()
	return args.Get(0).(config.SimConfig)
}

// --- Setters ---

func (m *MockConfig) SetApplyTable(path string) {
	m.Called(path)
}

func (m *MockConfig) SetSimState(path string) {
	m.Called(path)
}

func (m *MockConfig) SetSimOpen(b bool) {
	m.Called(b)
}
