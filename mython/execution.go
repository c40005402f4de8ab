package mython

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Execution is the state of one evaluation run: the host context, the
// execution limits, and the method call stack used for error reporting and
// recursion capping.
type Execution struct {
	source       string
	ctx          context.Context
	rctx         Context
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame
}

type callFrame struct {
	Method string
	Pos    Position
}

// StackFrame is one entry of a runtime error trace.
type StackFrame struct {
	Method string
	Pos    Position
}

// RuntimeError is raised during evaluation: name not found, division by
// zero, operand type mismatches, missing methods, and the like. It carries
// a source code frame and the method call stack at the point of failure.
type RuntimeError struct {
	Message   string
	CodeFrame string
	Frames    []StackFrame
}

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

var errStepQuotaExceeded = errors.New("step quota exceeded")

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Method, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Method)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

func (exec *Execution) errorAt(pos Position, format string, args ...any) error {
	message := fmt.Sprintf(format, args...)

	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) > 0 {
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Method: current.Method, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			frames = append(frames, StackFrame(exec.callStack[i]))
		}
	} else {
		frames = append(frames, StackFrame{Method: "<program>", Pos: pos})
	}

	return &RuntimeError{
		Message:   message,
		CodeFrame: formatCodeFrame(exec.source, pos),
		Frames:    frames,
	}
}

// step is checked once per statement and expression evaluated. It enforces
// the step quota and observes cancellation of the host context.
func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", errStepQuotaExceeded, exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

// execStatements runs a statement sequence against a scope. The middle
// result reports whether a return statement fired; the value is the
// returned one in that case and the empty handle otherwise.
func (exec *Execution) execStatements(stmts []Statement, scope *Closure) (Value, bool, error) {
	for _, stmt := range stmts {
		if err := exec.step(); err != nil {
			return Empty(), false, err
		}
		val, returned, err := exec.execStatement(stmt, scope)
		if err != nil {
			return Empty(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
	return Empty(), false, nil
}

func (exec *Execution) execStatement(stmt Statement, scope *Closure) (Value, bool, error) {
	switch s := stmt.(type) {
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value, scope)
		if err != nil {
			return Empty(), false, err
		}
		scope.Set(s.Name, val)
		return val, false, nil

	case *FieldAssignStmt:
		obj, err := exec.evalExpression(s.Object, scope)
		if err != nil {
			return Empty(), false, err
		}
		if obj.Kind() != KindInstance {
			return Empty(), false, exec.errorAt(s.Pos(), "cannot assign field %s: %s is not an object", s.Field, strings.Join(s.Object.Path, "."))
		}
		val, err := exec.evalExpression(s.Value, scope)
		if err != nil {
			return Empty(), false, err
		}
		obj.Instance().Fields().Set(s.Field, val)
		return val, false, nil

	case *PrintStmt:
		return Empty(), false, exec.execPrint(s, scope)

	case *IfStmt:
		cond, err := exec.evalExpression(s.Condition, scope)
		if err != nil {
			return Empty(), false, err
		}
		if cond.Kind() != KindBool {
			return Empty(), false, exec.errorAt(s.Pos(), "if condition must be a Bool, got %s", cond.Kind())
		}
		if cond.Bool() {
			return exec.execStatements(s.Consequent, scope)
		}
		if len(s.Alternate) > 0 {
			return exec.execStatements(s.Alternate, scope)
		}
		return Empty(), false, nil

	case *ReturnStmt:
		if s.Value == nil {
			return Empty(), true, nil
		}
		val, err := exec.evalExpression(s.Value, scope)
		if err != nil {
			return Empty(), false, err
		}
		return val, true, nil

	case *ClassDefStmt:
		scope.Set(s.Class.Name(), NewClassValue(s.Class))
		return Empty(), false, nil

	case *ExprStmt:
		val, err := exec.evalExpression(s.Expr, scope)
		return val, false, err

	default:
		return Empty(), false, exec.errorAt(stmt.Pos(), "unsupported statement")
	}
}

func (exec *Execution) execPrint(s *PrintStmt, scope *Closure) error {
	w := exec.rctx.OutputStream()
	for i, arg := range s.Args {
		if i > 0 {
			if _, err := fmt.Fprint(w, " "); err != nil {
				return exec.errorAt(s.Pos(), "write output: %v", err)
			}
		}
		val, err := exec.evalExpression(arg, scope)
		if err != nil {
			return err
		}
		if err := exec.printValue(w, val, arg.Pos()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "\n"); err != nil {
		return exec.errorAt(s.Pos(), "write output: %v", err)
	}
	return nil
}
