package mython

import (
	"context"
	"fmt"
	"maps"
)

// Config controls interpreter execution bounds.
type Config struct {
	// StepQuota caps the number of evaluation steps of a single run.
	// Zero means unlimited.
	StepQuota int
	// RecursionLimit caps the method call depth.
	RecursionLimit int
}

// Engine compiles and executes Mython programs.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, filling in defaults for unset limits.
func NewEngine(cfg Config) *Engine {
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = 256
	}
	return &Engine{config: cfg}
}

// ConfigSummary provides a human-readable description of the interpreter
// limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("steps=%d recursion=%d", e.config.StepQuota, e.config.RecursionLimit)
}

// Compile lexes and parses the given source. It returns a *LexicalError
// for malformed input and combined parse errors for malformed syntax.
func (e *Engine) Compile(source string) (*CompiledProgram, error) {
	lx, err := NewLexer(source)
	if err != nil {
		return nil, err
	}
	p := newParser(lx, nil)
	program, parseErrors := p.parseProgram()
	if len(parseErrors) > 0 {
		return nil, combineErrors(parseErrors)
	}
	return &CompiledProgram{engine: e, source: source, program: program, classes: p.classes}, nil
}

// CompiledProgram is a parsed program bound to the engine that compiled it.
type CompiledProgram struct {
	engine  *Engine
	source  string
	program *Program
	classes map[string]*Class
}

// Classes returns the classes declared by the program, by name.
func (p *CompiledProgram) Classes() map[string]*Class {
	out := make(map[string]*Class, len(p.classes))
	maps.Copy(out, p.classes)
	return out
}

// Run executes the program from a fresh global scope, writing program
// output through the runtime context. Evaluation stops on the first
// runtime error, when the step quota is exhausted, or when ctx is
// cancelled.
func (p *CompiledProgram) Run(ctx context.Context, rctx Context) error {
	exec := &Execution{
		source:       p.source,
		ctx:          ctx,
		rctx:         rctx,
		quota:        p.engine.config.StepQuota,
		recursionCap: p.engine.config.RecursionLimit,
	}
	_, _, err := exec.execStatements(p.program.Statements, NewClosure())
	return err
}

// Session is an incremental interpreter: globals and declared classes
// survive across Eval calls, so a REPL can build state one snippet at a
// time.
type Session struct {
	engine  *Engine
	globals *Closure
	classes map[string]*Class
}

// NewSession creates an empty interpreter session.
func (e *Engine) NewSession() *Session {
	return &Session{
		engine:  e,
		globals: NewClosure(),
		classes: make(map[string]*Class),
	}
}

// Eval compiles and runs a source snippet against the session state and
// returns the output it printed. Classes declared by the snippet become
// available to later snippets once it parses; global bindings mutate as
// the snippet executes.
func (s *Session) Eval(ctx context.Context, source string) (string, error) {
	lx, err := NewLexer(source)
	if err != nil {
		return "", err
	}
	p := newParser(lx, s.classes)
	program, parseErrors := p.parseProgram()
	if len(parseErrors) > 0 {
		return "", combineErrors(parseErrors)
	}
	maps.Copy(s.classes, p.classes)

	var scratch scratchContext
	exec := &Execution{
		source:       source,
		ctx:          ctx,
		rctx:         &scratch,
		quota:        s.engine.config.StepQuota,
		recursionCap: s.engine.config.RecursionLimit,
	}
	_, _, err = exec.execStatements(program.Statements, s.globals)
	return scratch.String(), err
}

// Globals returns the names bound in the session's global scope, sorted.
func (s *Session) Globals() []string {
	return s.globals.Names()
}

// Lookup returns the value bound to a global name.
func (s *Session) Lookup(name string) (Value, bool) {
	return s.globals.Get(name)
}

// Reset drops all session state.
func (s *Session) Reset() {
	s.globals = NewClosure()
	s.classes = make(map[string]*Class)
}
