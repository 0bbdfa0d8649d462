// Package scope implements the Data Model of spec section 3: Value, Item,
// Scope, the ordered Local and Global Lookup Tables (LLUT/GLUT) and the
// process-wide Environment record updated by setenv.
//
// The ordered lookup tables pair a github.com/dolthub/swiss hash index
// with an insertion-order slice, the same pairing github.com/mna/nenuphar
// uses for machine.Map (lang/machine/map.go), extended here because,
// unlike a Starlark dict, whose iteration order nenuphar's Map never
// implemented, LLUT/GLUT order is spec-mandated (section 3:
// "insertion-ordered").
package scope

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/stillwwater/superini/lang/token"
)

// TypeTag is the declared or inferred type of a Value (spec section 4.5).
type TypeTag string

const (
	TypeNone TypeTag = ""
	TypeInt  TypeTag = "int"
	TypeI8   TypeTag = "i8"
	TypeI16  TypeTag = "i16"
	TypeI32  TypeTag = "i32"
	TypeI64  TypeTag = "i64"
	TypeU8   TypeTag = "u8"
	TypeFloat TypeTag = "float"
	TypeF32  TypeTag = "f32"
	TypeStr  TypeTag = "str"
	TypeBool TypeTag = "bool"
)

// Trace locates a Value or Scope back to its originating source: file,
// line, and enclosing scope name (spec section 3).
type Trace struct {
	Pos   token.Position
	Scope string
}

// Value is the immutable (once type-checked) right-hand side of an Item.
type Value struct {
	Text    string  // raw rhs as written, after continuation folding
	Type    TypeTag // declared or inferred
	IsEval  bool    // marked for evaluation by the eval closure
	Trace   Trace
}

// WithText returns a copy of v with Text replaced, keeping the same Trace
// and Type (the shape closures use to rewrite a value, spec section 3:
// "closures that rewrite a value produce a new Value keeping the same
// trace").
func (v Value) WithText(text string) Value {
	v.Text = text
	return v
}

// Item is a (key, Value) pair. Keys are unique and insertion-ordered
// within an LLUT.
type Item struct {
	Key   string
	Value Value
}

// ClosureCall is one pending (name, symbol-args) invocation recorded from
// a scope header, to be run by the closure runtime once the GLUT is
// fully built.
type ClosureCall struct {
	Name string
	Args []string
}

// Flags tracks the boolean state a closure may set on a Scope.
type Flags struct {
	Internal     bool
	Abstract     bool
	InlineTarget bool
}

// Scope is a named container of items (spec section 3). GlobalName is the
// name of the implicit scope collecting pre-header items, the empty
// string, matching spec section 3 ("name ... empty string for the
// __global__ scope header []"). globalDisplayName is only used when
// formatting a Trace for diagnostics, so error messages still read
// "__global__" instead of an empty scope name.
const (
	GlobalName       = ""
	globalDisplayName = "__global__"
)

type Scope struct {
	Name  string
	llut  *ordered
	// Closures pending execution, in header order; the closure runtime
	// iterates them in order and leaves the slice in place.
	Closures     []ClosureCall
	Flags        Flags
	AbstractKeys []string // required key names when Flags.Abstract
	Trace        Trace
}

func newScope(name string, trace Trace) *Scope {
	return &Scope{Name: name, llut: newOrdered(), Trace: trace}
}

// Keys returns the LLUT's keys in insertion order.
func (s *Scope) Keys() []string { return s.llut.keys() }

// Get returns the item for key and whether it exists.
func (s *Scope) Get(key string) (Item, bool) { return s.llut.get(key) }

// Has reports whether key is classified in this scope.
func (s *Scope) Has(key string) bool {
	_, ok := s.llut.get(key)
	return ok
}

// Insert adds a new item. It reports an error (via the returned bool) if
// key already exists, per spec section 4.2 ("error if the key already
// exists in that LLUT").
func (s *Scope) Insert(item Item) bool {
	return s.llut.insert(item)
}

// Set overwrites (or inserts) an item unconditionally; used by closures
// that rewrite values (eval) or synthesize new items (inline).
func (s *Scope) Set(item Item) {
	s.llut.set(item)
}

// Len returns the number of items in the LLUT.
func (s *Scope) Len() int { return s.llut.len() }

// ordered is a swiss-indexed, insertion-ordered map from key to Item. The
// swiss.Map only ever stores the index into order; order is truth for
// iteration, swiss is truth for O(1) existence/lookup.
type ordered struct {
	index *swiss.Map[string, int]
	order []Item
}

func newOrdered() *ordered {
	return &ordered{index: swiss.NewMap[string, int](8)}
}

func (o *ordered) get(key string) (Item, bool) {
	i, ok := o.index.Get(key)
	if !ok {
		return Item{}, false
	}
	return o.order[i], true
}

func (o *ordered) insert(item Item) bool {
	if _, ok := o.index.Get(item.Key); ok {
		return false
	}
	o.index.Put(item.Key, len(o.order))
	o.order = append(o.order, item)
	return true
}

func (o *ordered) set(item Item) {
	if i, ok := o.index.Get(item.Key); ok {
		o.order[i] = item
		return
	}
	o.index.Put(item.Key, len(o.order))
	o.order = append(o.order, item)
}

func (o *ordered) len() int { return len(o.order) }

func (o *ordered) keys() []string {
	keys := make([]string, len(o.order))
	for i, it := range o.order {
		keys[i] = it.Key
	}
	return keys
}

// GLUT is the Global Lookup Table: an ordered mapping from scope name to
// Scope. The implicit __global__ scope always exists (spec section 3).
type GLUT struct {
	index *swiss.Map[string, int]
	order []*Scope
}

// NewGLUT creates a GLUT with the implicit __global__ scope already
// present.
func NewGLUT() *GLUT {
	g := &GLUT{index: swiss.NewMap[string, int](8)}
	g.mustCreate(GlobalName, Trace{})
	return g
}

// Global returns the implicit __global__ scope.
func (g *GLUT) Global() *Scope {
	s, _ := g.Get(GlobalName)
	return s
}

// Get returns the scope named name, if registered.
func (g *GLUT) Get(name string) (*Scope, bool) {
	i, ok := g.index.Get(name)
	if !ok {
		return nil, false
	}
	return g.order[i], true
}

// Create registers a new scope. It returns (nil, false) if name is
// already registered (spec section 3: "a second header with the same
// name is an error"), except for GlobalName, which Create never creates
// twice (NewGLUT already did).
func (g *GLUT) Create(name string, trace Trace) (*Scope, bool) {
	if _, ok := g.index.Get(name); ok {
		return nil, false
	}
	return g.mustCreate(name, trace), true
}

func (g *GLUT) mustCreate(name string, trace Trace) *Scope {
	s := newScope(name, trace)
	g.index.Put(name, len(g.order))
	g.order = append(g.order, s)
	return s
}

// Names returns every registered scope name in insertion order.
func (g *GLUT) Names() []string {
	names := make([]string, len(g.order))
	for i, s := range g.order {
		names[i] = s.Name
	}
	return names
}

// Scopes returns every registered scope in insertion order.
func (g *GLUT) Scopes() []*Scope {
	return g.order
}

// Environment is the process-wide configuration record updated by setenv
// (spec section 3). It is threaded explicitly through the pipeline
// (Design Notes: "not as process-global state, so multiple compilations
// in one process do not bleed").
type Environment struct {
	Output string
	Sorted bool

	// Extra preserves any setenv key not recognized above, per spec
	// section 6 ("Unrecognized keys are preserved and silently ignored by
	// the core").
	Extra map[string]string
}

// NewEnvironment returns a zero-valued Environment ready for setenv
// writes.
func NewEnvironment() *Environment {
	return &Environment{Extra: make(map[string]string)}
}

// Set applies one setenv (key, value) write. Recognized keys update the
// typed fields; writes are idempotent last-writer-wins in scope-insertion
// order (spec section 5), which falls out naturally since setenv runs the
// closures in that same order.
func (e *Environment) Set(key, value string) {
	switch key {
	case "output":
		e.Output = value
	case "sorted":
		e.Sorted = value == "True" || value == "true"
	default:
		e.Extra[key] = value
	}
}

func (t Trace) String() string {
	scope := t.Scope
	if scope == "" {
		scope = globalDisplayName
	}
	return fmt.Sprintf("%s [%s]", t.Pos, scope)
}
