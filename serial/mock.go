package serial

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockPort is a testify mock implementation of Port for use in tests.
type MockPort struct {
	mock.Mock
}

var _ Port = (*MockPort)(nil)

func NewMockPort() *MockPort {
	return &MockPort{}
}

func (m *MockPort) Open() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPort) IsOpen() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockPort) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPort) Write(p []byte) (int, error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockPort) ReadLine(timeout time.Duration) ([]byte, error) {
	args := m.Called(timeout)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
