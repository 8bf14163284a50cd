package expr

// Predicate is a compiled condition bound to a concrete object type.
type Predicate[T any] func(obj T) bool

// Binder turns a single condition into a predicate over T. Unknown
// identifiers or literals of the wrong type return an error,
// typically a *CompileError.
type Binder[T any] func(ident string, op Kind, value Value) (Predicate[T], error)

type compiledNode[T any] struct {
	pred  Predicate[T]
	op    Kind
	left  *compiledNode[T]
	right *compiledNode[T]
}

// Compiled is an expression whose conditions have all been bound to
// predicates. It is immutable and safe for concurrent use.
type Compiled[T any] struct {
	root *compiledNode[T]
}

// Compile binds every condition of the expression with the given
// binder. The first binder error aborts compilation.
func Compile[T any](e *Expression, bind Binder[T]) (*Compiled[T], error) {
	root, err := compileNode(e, bind)
	if err != nil {
		return nil, err
	}
	return &Compiled[T]{root: root}, nil
}

func compileNode[T any](e *Expression, bind Binder[T]) (*compiledNode[T], error) {
	if e.cond != nil {
		pred, err := bind(e.cond.Ident, e.cond.Op, e.cond.Value)
		if err != nil {
			return nil, err
		}
		return &compiledNode[T]{pred: pred}, nil
	}
	left, err := compileNode(e.left, bind)
	if err != nil {
		return nil, err
	}
	right, err := compileNode(e.right, bind)
	if err != nil {
		return nil, err
	}
	return &compiledNode[T]{op: e.op, left: left, right: right}, nil
}

// Evaluate runs the expression against an object. AND and OR
// short-circuit.
func (c *Compiled[T]) Evaluate(obj T) bool {
	return c.root.evaluate(obj)
}

func (n *compiledNode[T]) evaluate(obj T) bool {
	if n.pred != nil {
		return n.pred(obj)
	}
	left := n.left.evaluate(obj)
	if n.op == And && !left {
		return false
	}
	if n.op == Or && left {
		return true
	}
	return n.right.evaluate(obj)
}
