// Package wpclitest provides test doubles for wpcli.Executor.
package wpclitest

import (
	"context"

	"github.com/spiritoffootball/cli-tools-for-sof/pkg/wpcli"
	"github.com/stretchr/testify/mock"
)

// 🔧 MockExecutor is a testify mock of wpcli.Executor
type MockExecutor struct {
	mock.Mock
}

// NewMockExecutor creates a mock that asserts its expectations when the test ends
func NewMockExecutor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockExecutor {
	m := &MockExecutor{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockExecutor) Run(ctx context.Context, inv wpcli.Invocation) (*wpcli.Result, error) {
	args := m.Called(ctx, inv)
	res, _ := args.Get(0).(*wpcli.Result)
	return res, args.Error(1)
}

// Expect registers an invocation and the result it returns
func (m *MockExecutor) Expect(inv wpcli.Invocation, res *wpcli.Result) *mock.Call {
	return m.On("Run", mock.Anything, inv).Return(res, nil).Once()
}

// Invocations returns every invocation received, in call order
func (m *MockExecutor) Invocations() []wpcli.Invocation {
	out := make([]wpcli.Invocation, 0, len(m.Calls))
	for _, c := range m.Calls {
		if c.Method != "Run" {
			continue
		}
		out = append(out, c.Arguments.Get(1).(wpcli.Invocation))
	}
	return out
}

// OK returns a successful result with the given stdout
func OK(stdout string) *wpcli.Result {
	return &wpcli.Result{Stdout: stdout}
}

// Fail returns a failed result with the given exit code and stderr
func Fail(code int, stderr string) *wpcli.Result {
	return &wpcli.Result{ExitCode: code, Stderr: stderr}
}
