package bytecode

import "github.com/es3vm/es3vm/internal/values"

// Chunk is one compiled instruction stream plus the constant tables
// its table-index operands (LITERAL, LOC, FUNC) refer into. A program
// compiles to one top-level Chunk; every FunctionLiteral compiles to
// its own nested Chunk, reachable from the enclosing one through
// Funcs.
type Chunk struct {
	Code     []Instruction
	Lines    []int           // Lines[i] is Code[i]'s source line, for an uncaught throw's location (spec.md §4.3/§7)
	Literals []values.Value  // LITERAL operands: deduplicated constants
	Names    []string        // LOC operands: identifier/property names
	Funcs    []*FuncProto    // FUNC operands: nested function bodies
	Source   string          // for traceback/error reporting
}

// FuncProto is a compiled function body: its own Chunk plus the
// metadata the VM's makeFunction (vm_calls.go) needs to build a callable
// Function object bound to a closure scope at runtime.
type FuncProto struct {
	Name   string
	Params []string
	Chunk  *Chunk
}

func newChunk(source string) *Chunk {
	return &Chunk{Source: source}
}

// addLiteral interns v into the literal pool, returning its index.
// Equal primitive literals share a slot (spec.md §6.3: "LITERAL pushes
// a deduplicated literal"); objects are never interned since each
// array/object/function literal must construct a fresh instance on
// every evaluation.
func (c *Chunk) addLiteral(v values.Value) uint16 {
	if v.Kind() != values.KindObject {
		for i, existing := range c.Literals {
			if existing.SameValue(v) {
				return uint16(i)
			}
		}
	}
	c.Literals = append(c.Literals, v)
	return uint16(len(c.Literals) - 1)
}

func (c *Chunk) addName(name string) uint16 {
	for i, existing := range c.Names {
		if existing == name {
			return uint16(i)
		}
	}
	c.Names = append(c.Names, name)
	return uint16(len(c.Names) - 1)
}

func (c *Chunk) addFunc(proto *FuncProto) uint16 {
	c.Funcs = append(c.Funcs, proto)
	return uint16(len(c.Funcs) - 1)
}
