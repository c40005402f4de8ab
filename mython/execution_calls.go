package mython

import "io"

// callMethod invokes a method on an instance. A fresh call-frame scope is
// created with self and the formal parameters bound; the body's return
// value propagates out, and falling off the end yields the empty handle.
func (exec *Execution) callMethod(inst *Instance, name string, args []Value, pos Position) (Value, error) {
	cls := inst.Class()
	method := cls.GetMethod(name)
	if method == nil || len(method.Params) != len(args) {
		return Empty(), exec.errorAt(pos, "class %s has no method %s accepting %d arguments", cls.Name(), name, len(args))
	}
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return Empty(), exec.errorAt(pos, "recursion limit exceeded (%d)", exec.recursionCap)
	}

	exec.callStack = append(exec.callStack, callFrame{Method: cls.Name() + "." + name, Pos: pos})
	defer func() {
		exec.callStack = exec.callStack[:len(exec.callStack)-1]
	}()

	frame := NewClosure()
	frame.Set(selfName, NewInstanceValue(inst))
	for i, param := range method.Params {
		frame.Set(param, args[i])
	}

	val, _, err := exec.execStatements(method.Body, frame)
	return val, err
}

// printValue writes the printed form of a value. A class instance with a
// zero-argument __str__ prints through it; everything else uses the
// default rendering, with absent values printing as None.
func (exec *Execution) printValue(w io.Writer, v Value, pos Position) error {
	if v.Kind() == KindInstance {
		inst := v.Instance()
		if inst.Class().HasMethod(strMethod, 0) {
			res, err := exec.callMethod(inst, strMethod, nil, pos)
			if err != nil {
				return err
			}
			return exec.printValue(w, res, pos)
		}
	}
	if _, err := io.WriteString(w, v.String()); err != nil {
		return exec.errorAt(pos, "write output: %v", err)
	}
	return nil
}
