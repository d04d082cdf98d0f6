// Package mocks provides testify mocks for the outbound ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"adplan/internal/core/milp"
)

// MockSolver mocks port.Solver.
type MockSolver struct {
	mock.Mock
}

// NewMockSolver creates a MockSolver bound to t; expectations are asserted
// on test cleanup.
func NewMockSolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSolver {
	m := &MockSolver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSolver) Solve(ctx context.Context, model *milp.Model) (*milp.Solution, error) {
	args := m.Called(ctx, model)
	var sol *milp.Solution
	if args.Get(0) != nil {
		sol = args.Get(0).(*milp.Solution)
	}
	return sol, args.Error(1)
}
