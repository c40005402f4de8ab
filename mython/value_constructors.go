package mython

// Empty returns the empty handle. It holds no value and prints as None.
func Empty() Value { return Value{} }

func NewNumber(n int64) Value  { return Value{kind: KindNumber, data: n} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewNone() Value           { return Value{kind: KindNone} }

func NewClassValue(c *Class) Value       { return Value{kind: KindClass, data: c} }
func NewInstanceValue(i *Instance) Value { return Value{kind: KindInstance, data: i} }
