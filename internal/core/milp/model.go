// Package milp holds a solver-agnostic description of a mixed-integer
// linear program: named variables with bounds and objective coefficients,
// named linear constraints and an optimization direction. Models are built
// once per formulation call and handed to a solver adapter; the package has
// no opinion about how the model is solved.
package milp

import (
	"fmt"
	"math"
)

// Direction is the optimization sense of a model.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// VariableType is the domain of a decision variable.
type VariableType int

const (
	ContinuousVariable VariableType = iota
	BinaryVariable
)

// Variable is a single decision variable. Variables are bound to the model
// that created them; using one in a constraint of a different model is
// rejected by AddConstraint.
type Variable struct {
	name      string
	typ       VariableType
	lower     float64
	upper     float64
	objective float64
	index     int
}

// Name returns the unique name given at creation.
func (v *Variable) Name() string { return v.name }

// Type returns the variable domain.
func (v *Variable) Type() VariableType { return v.typ }

// Index returns the column index of the variable in its model. Solver
// adapters use it to line up solution vectors with variables.
func (v *Variable) Index() int { return v.index }

// Bounds returns the current lower and upper bound.
func (v *Variable) Bounds() (lower, upper float64) { return v.lower, v.upper }

// SetBounds replaces the variable bounds. Binary variables keep their fixed
// {0,1} bounds and ignore the call.
func (v *Variable) SetBounds(lower, upper float64) {
	if v.typ == BinaryVariable {
		return
	}
	v.lower, v.upper = lower, upper
}

// ObjectiveCoefficient returns the variable's coefficient in the objective.
func (v *Variable) ObjectiveCoefficient() float64 { return v.objective }

// SetObjectiveCoefficient sets the variable's coefficient in the objective.
func (v *Variable) SetObjectiveCoefficient(c float64) { v.objective = c }

// Sense is the relation of a linear constraint to its right-hand side.
type Sense int

const (
	LessEq Sense = iota
	GreaterEq
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Constraint is a named linear constraint: sum(coefs[i]*vars[i]) <sense> rhs.
type Constraint struct {
	name  string
	vars  []*Variable
	coefs []float64
	sense Sense
	rhs   float64
}

// Name returns the unique constraint name.
func (c *Constraint) Name() string { return c.name }

// Sense returns the constraint relation.
func (c *Constraint) Sense() Sense { return c.sense }

// RHS returns the right-hand side constant.
func (c *Constraint) RHS() float64 { return c.rhs }

// Terms returns the variables and matching coefficients of the left-hand
// side. Both slices are owned by the constraint and must not be mutated.
func (c *Constraint) Terms() ([]*Variable, []float64) { return c.vars, c.coefs }

// Coefficient returns the coefficient of v on the left-hand side, or zero
// when v does not appear in the constraint.
func (c *Constraint) Coefficient(v *Variable) float64 {
	for i, cv := range c.vars {
		if cv == v {
			return c.coefs[i]
		}
	}
	return 0
}

// LHS evaluates the left-hand side under the given variable assignment.
func (c *Constraint) LHS(value func(*Variable) float64) float64 {
	var sum float64
	for i, v := range c.vars {
		sum += c.coefs[i] * value(v)
	}
	return sum
}

// Satisfied reports whether the constraint holds under the given assignment
// within tol.
func (c *Constraint) Satisfied(value func(*Variable) float64, tol float64) bool {
	lhs := c.LHS(value)
	switch c.sense {
	case LessEq:
		return lhs <= c.rhs+tol
	case GreaterEq:
		return lhs >= c.rhs-tol
	default:
		return math.Abs(lhs-c.rhs) <= tol
	}
}

// Model is an in-memory MILP description.
type Model struct {
	name       string
	direction  Direction
	vars       []*Variable
	cons       []*Constraint
	varsByName map[string]*Variable
	consByName map[string]*Constraint
}

// NewModel creates an empty model with the given informational name and
// optimization direction.
func NewModel(name string, dir Direction) *Model {
	return &Model{
		name:       name,
		direction:  dir,
		varsByName: make(map[string]*Variable),
		consByName: make(map[string]*Constraint),
	}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Direction returns the optimization direction.
func (m *Model) Direction() Direction { return m.direction }

// Variables returns all variables in creation order.
func (m *Model) Variables() []*Variable { return m.vars }

// Constraints returns all constraints in creation order.
func (m *Model) Constraints() []*Constraint { return m.cons }

// Variable looks up a variable by name, or nil.
func (m *Model) Variable(name string) *Variable { return m.varsByName[name] }

// Constraint looks up a constraint by name, or nil.
func (m *Model) Constraint(name string) *Constraint { return m.consByName[name] }

// AddVariable adds a continuous, non-negative variable with a zero
// objective coefficient and returns a reference to it. Names must be unique
// within the model.
func (m *Model) AddVariable(name string) (*Variable, error) {
	return m.addVariable(name, ContinuousVariable, 0, math.Inf(1))
}

// AddBinaryVariable adds a {0,1} variable with a zero objective coefficient.
func (m *Model) AddBinaryVariable(name string) (*Variable, error) {
	return m.addVariable(name, BinaryVariable, 0, 1)
}

func (m *Model) addVariable(name string, typ VariableType, lower, upper float64) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("variable name must not be empty")
	}
	if _, ok := m.varsByName[name]; ok {
		return nil, fmt.Errorf("duplicate variable %q", name)
	}
	v := &Variable{
		name:  name,
		typ:   typ,
		lower: lower,
		upper: upper,
		index: len(m.vars),
	}
	m.vars = append(m.vars, v)
	m.varsByName[name] = v
	return v, nil
}

// AddConstraint appends a named linear constraint over previously declared
// variables. The vars and coefs slices must have equal length and every
// variable must belong to this model.
func (m *Model) AddConstraint(name string, vars []*Variable, coefs []float64, sense Sense, rhs float64) error {
	if name == "" {
		return fmt.Errorf("constraint name must not be empty")
	}
	if _, ok := m.consByName[name]; ok {
		return fmt.Errorf("duplicate constraint %q", name)
	}
	if len(vars) == 0 {
		return fmt.Errorf("constraint %q has no terms", name)
	}
	if len(vars) != len(coefs) {
		return fmt.Errorf("constraint %q: inconsistent number of variables and coefficients: %d != %d", name, len(vars), len(coefs))
	}
	for _, v := range vars {
		if v == nil || v.index >= len(m.vars) || m.vars[v.index] != v {
			return fmt.Errorf("constraint %q references a variable not declared on this model", name)
		}
	}
	c := &Constraint{
		name:  name,
		vars:  vars,
		coefs: coefs,
		sense: sense,
		rhs:   rhs,
	}
	m.cons = append(m.cons, c)
	m.consByName[name] = c
	return nil
}
