package lang

// Env implements a lexical environment chain. Environments are shared by
// reference: the evaluator's current scope, any closure that captured the
// environment, and child frames of active calls all alias the same Env, so
// a mutation through one reference is visible to every other holder.
type Env struct {
	parent *Env
	values map[string]Value
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]Value),
	}
}

// Define binds name to value in the current frame. Redefinition overwrites.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Get retrieves a binding, searching parents if necessary.
func (e *Env) Get(name string) (Value, error) {
	if val, ok := e.values[name]; ok {
		return val, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, undefinedVariable(name)
}

// Assign updates the nearest existing binding of name, searching parents if
// needed. It never creates a binding.
func (e *Env) Assign(name string, val Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = val
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, val)
	}
	return undefinedVariable(name)
}

// Parent returns the parent environment.
func (e *Env) Parent() *Env {
	return e.parent
}
