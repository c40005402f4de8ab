package mython

import "maps"

// Class is an immutable descriptor of a user-defined class: a name, an
// ordered method list, and an optional parent. The method lookup table is
// precomputed at construction by copying the parent's table and overriding
// it with the class's own methods, so GetMethod never walks the inheritance
// chain at call time.
type Class struct {
	name    string
	methods []*Method
	parent  *Class
	table   map[string]*Method
}

// NewClass builds a class descriptor. The parent reference is shared, not
// copied; parent classes must outlive their children.
func NewClass(name string, methods []*Method, parent *Class) *Class {
	c := newForwardClass(name, parent)
	c.define(methods)
	return c
}

// newForwardClass allocates a class whose methods are not known yet, so
// method bodies can instantiate the class they are defined in. define
// completes the descriptor.
func newForwardClass(name string, parent *Class) *Class {
	c := &Class{
		name:   name,
		parent: parent,
		table:  make(map[string]*Method),
	}
	if parent != nil {
		maps.Copy(c.table, parent.table)
	}
	return c
}

func (c *Class) define(methods []*Method) {
	c.methods = methods
	for _, m := range methods {
		c.table[m.Name] = m
	}
}

func (c *Class) Name() string { return c.name }

func (c *Class) Parent() *Class { return c.parent }

// GetMethod returns the method with the given name, searching the
// precomputed table that already folds in inherited methods. It returns nil
// if the class has no such method.
func (c *Class) GetMethod(name string) *Method {
	return c.table[name]
}

// HasMethod reports whether the class has a method with the given name
// whose formal parameter count equals argc.
func (c *Class) HasMethod(name string, argc int) bool {
	m := c.table[name]
	return m != nil && len(m.Params) == argc
}

// Instance pairs a class with a mutable attribute scope. The scope is
// shared between the variable that binds the instance and the self of any
// method executing on it.
type Instance struct {
	class  *Class
	fields *Closure
}

// NewObjectInstance creates an instance of cls with an empty attribute
// scope. It does not run __init__; instance construction in the evaluator
// does.
func NewObjectInstance(cls *Class) *Instance {
	return &Instance{class: cls, fields: NewClosure()}
}

func (i *Instance) Class() *Class { return i.class }

// Fields returns the instance's attribute scope, the target of dotted
// field assignment.
func (i *Instance) Fields() *Closure { return i.fields }
