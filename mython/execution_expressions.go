package mython

import "strings"

func (exec *Execution) evalExpression(expr Expression, scope *Closure) (Value, error) {
	if err := exec.step(); err != nil {
		return Empty(), err
	}
	switch e := expr.(type) {
	case *NumberLiteral:
		return NewNumber(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NoneLiteral:
		// None flows through evaluation as the empty handle.
		return Empty(), nil
	case *VariableExpr:
		return exec.evalVariable(e, scope)
	case *UnaryExpr:
		return exec.evalUnaryExpr(e, scope)
	case *BinaryExpr:
		return exec.evalBinaryExpr(e, scope)
	case *NewInstanceExpr:
		return exec.evalNewInstance(e, scope)
	case *MethodCallExpr:
		return exec.evalMethodCall(e, scope)
	case *StringifyExpr:
		return exec.evalStringify(e, scope)
	default:
		return Empty(), exec.errorAt(expr.Pos(), "unsupported expression")
	}
}

// evalVariable resolves a dotted read. The first segment is looked up in
// the current scope; each remaining segment descends into the attribute
// scope of the instance the previous segment produced.
func (exec *Execution) evalVariable(e *VariableExpr, scope *Closure) (Value, error) {
	cur := scope
	for i, name := range e.Path {
		val, ok := cur.Get(name)
		if !ok {
			return Empty(), exec.errorAt(e.Pos(), "undefined variable %s", name)
		}
		if i == len(e.Path)-1 {
			return val, nil
		}
		if val.Kind() != KindInstance {
			return Empty(), exec.errorAt(e.Pos(), "%s is not an object", strings.Join(e.Path[:i+1], "."))
		}
		cur = val.Instance().Fields()
	}
	return Empty(), exec.errorAt(e.Pos(), "empty variable path")
}

func (exec *Execution) evalUnaryExpr(e *UnaryExpr, scope *Closure) (Value, error) {
	val, err := exec.evalExpression(e.Right, scope)
	if err != nil {
		return Empty(), err
	}
	switch e.Operator {
	case OpNot:
		if val.Kind() != KindBool {
			return Empty(), exec.errorAt(e.Pos(), "invalid NOT operand")
		}
		return NewBool(!val.Bool()), nil
	case OpNeg:
		if val.Kind() != KindNumber {
			return Empty(), exec.errorAt(e.Pos(), "bad operand for unary -")
		}
		return NewNumber(-val.Number()), nil
	default:
		return Empty(), exec.errorAt(e.Pos(), "unsupported unary operator")
	}
}

// evalBinaryExpr evaluates both operands unconditionally, left first.
// and/or do not short-circuit.
func (exec *Execution) evalBinaryExpr(e *BinaryExpr, scope *Closure) (Value, error) {
	left, err := exec.evalExpression(e.Left, scope)
	if err != nil {
		return Empty(), err
	}
	right, err := exec.evalExpression(e.Right, scope)
	if err != nil {
		return Empty(), err
	}

	switch e.Operator {
	case OpAdd:
		return exec.addValues(e.Pos(), left, right)
	case OpSub, OpMul, OpDiv:
		return exec.numericOp(e.Pos(), e.Operator, left, right)
	case OpAnd, OpOr:
		return exec.logicalOp(e.Pos(), e.Operator, left, right)
	case OpEq, OpNotEq, OpLess, OpLessOrEq, OpGreater, OpGreaterOrEq:
		return exec.compareValues(e.Pos(), e.Operator, left, right)
	default:
		return Empty(), exec.errorAt(e.Pos(), "unsupported operator %s", e.Operator)
	}
}

func (exec *Execution) evalNewInstance(e *NewInstanceExpr, scope *Closure) (Value, error) {
	args := make([]Value, len(e.Args))
	for i, arg := range e.Args {
		val, err := exec.evalExpression(arg, scope)
		if err != nil {
			return Empty(), err
		}
		args[i] = val
	}

	inst := NewObjectInstance(e.Class)
	if e.Class.HasMethod(initMethod, len(args)) {
		if _, err := exec.callMethod(inst, initMethod, args, e.Pos()); err != nil {
			return Empty(), err
		}
	}
	return NewInstanceValue(inst), nil
}

func (exec *Execution) evalMethodCall(e *MethodCallExpr, scope *Closure) (Value, error) {
	obj, err := exec.evalExpression(e.Object, scope)
	if err != nil {
		return Empty(), err
	}
	if obj.Kind() != KindInstance {
		return Empty(), exec.errorAt(e.Pos(), "cannot call method %s on %s", e.Method, obj.Kind())
	}

	args := make([]Value, len(e.Args))
	for i, arg := range e.Args {
		val, err := exec.evalExpression(arg, scope)
		if err != nil {
			return Empty(), err
		}
		args[i] = val
	}
	return exec.callMethod(obj.Instance(), e.Method, args, e.Pos())
}

func (exec *Execution) evalStringify(e *StringifyExpr, scope *Closure) (Value, error) {
	val, err := exec.evalExpression(e.Value, scope)
	if err != nil {
		return Empty(), err
	}
	if isNoneish(val) {
		return NewString("None"), nil
	}
	var scratch scratchContext
	if err := exec.printValue(scratch.OutputStream(), val, e.Pos()); err != nil {
		return Empty(), err
	}
	return NewString(scratch.String()), nil
}
