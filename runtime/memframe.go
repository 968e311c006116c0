package runtime

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// This module implements a stack of activation records.
// Activation records are used by an interpreter to allocate local storage
// for live procedure/function invocations.

// ARKind classifies an activation record.
type ARKind int8

// Kinds of activation records.
const (
	ProgramAR ARKind = iota
	ProcedureAR
	FunctionAR
)

func (k ARKind) String() string {
	switch k {
	case ProgramAR:
		return "PROGRAM"
	case ProcedureAR:
		return "PROCEDURE"
	case FunctionAR:
		return "FUNCTION"
	}
	return "AR"
}

// ActivationRecord holds the local variable bindings of one live
// procedure/function invocation (or of the program itself).
//
// StaticLink points to the record of the lexically enclosing activation,
// i.e. the record belonging to the scope the callee was *declared* in. Name
// resolution follows static links only — scoping is lexical, not dynamic.
// Caller is the dynamic back-reference to the invoking record; it documents
// the call stack's layout but never participates in lookup.
type ActivationRecord struct {
	Name       string
	Kind       ARKind
	Level      int // nesting level, 1 for the program record
	StaticLink *ActivationRecord
	Caller     *ActivationRecord
	members    map[string]Value
}

// NewActivationRecord creates an activation record, not yet pushed.
func NewActivationRecord(nm string, kind ARKind, level int, static *ActivationRecord) *ActivationRecord {
	return &ActivationRecord{
		Name:       nm,
		Kind:       kind,
		Level:      level,
		StaticLink: static,
		members:    make(map[string]Value),
	}
}

// IsRoot is a predicate: Is this the program's record?
func (ar *ActivationRecord) IsRoot() bool {
	return ar.StaticLink == nil
}

// Set binds a name in this record, overwriting any previous local binding.
func (ar *ActivationRecord) Set(name string, v Value) {
	ar.members[name] = v
}

// Get reads a local binding of this record only.
func (ar *ActivationRecord) Get(name string) (Value, bool) {
	v, ok := ar.members[name]
	return v, ok
}

// Lookup resolves a name through the static-link chain, innermost first.
// Returns the value and the record owning the binding.
func (ar *ActivationRecord) Lookup(name string) (Value, *ActivationRecord, bool) {
	for rec := ar; rec != nil; rec = rec.StaticLink {
		if v, ok := rec.members[name]; ok {
			return v, rec, true
		}
	}
	return Value{}, nil, false
}

// Assign writes a value into the innermost record of the static chain that
// already binds the name. Returns false if the name is bound nowhere — after
// semantic analysis that indicates an interpreter defect, not a user error.
func (ar *ActivationRecord) Assign(name string, v Value) bool {
	for rec := ar; rec != nil; rec = rec.StaticLink {
		if _, ok := rec.members[name]; ok {
			rec.members[name] = v
			return true
		}
	}
	return false
}

// Bindings returns a copy of the record's current bindings, for inspection.
func (ar *ActivationRecord) Bindings() map[string]Value {
	m := make(map[string]Value, len(ar.members))
	for k, v := range ar.members {
		m[k] = v
	}
	return m
}

func (ar *ActivationRecord) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (level %d)\n", ar.Name, ar.Level)
	fmt.Fprintf(&b, "Type: %s\n", ar.Kind)
	b.WriteString("Members:\n")
	keys := make([]string, 0, len(ar.members))
	for k := range ar.members {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic ordering for printing
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s = %s\n", k, ar.members[k])
	}
	return b.String()
}

// ---------------------------------------------------------------------------

// CallStack is a stack of activation records: push on call entry, pop on
// return, including returns forced by a propagating error. The bottom-most
// record belongs to the program's global scope.
//
// The stack counts pushes and pops and accepts optional observer hooks, so
// tests can verify the push/pop balance across error paths.
type CallStack struct {
	frames *arraylist.List
	pushes int
	pops   int
	OnPush func(*ActivationRecord)
	OnPop  func(*ActivationRecord)
}

// NewCallStack creates an empty call stack.
func NewCallStack() *CallStack {
	return &CallStack{frames: arraylist.New()}
}

// Depth returns the number of live activation records.
func (cs *CallStack) Depth() int {
	return cs.frames.Size()
}

// Pushes returns the number of records pushed so far.
func (cs *CallStack) Pushes() int {
	return cs.pushes
}

// Pops returns the number of records popped so far.
func (cs *CallStack) Pops() int {
	return cs.pops
}

// Current gets the current activation record of the stack (TOS).
func (cs *CallStack) Current() *ActivationRecord {
	v, ok := cs.frames.Get(cs.frames.Size() - 1)
	if !ok {
		panic("attempt to access activation record from empty call stack")
	}
	return v.(*ActivationRecord)
}

// Globals gets the bottom-most activation record, holding global bindings.
func (cs *CallStack) Globals() *ActivationRecord {
	v, ok := cs.frames.Get(0)
	if !ok {
		panic("attempt to access global activation record from empty call stack")
	}
	return v.(*ActivationRecord)
}

// Push pushes an activation record as TOS.
func (cs *CallStack) Push(ar *ActivationRecord) {
	cs.frames.Add(ar)
	cs.pushes++
	tracer().P("ar", ar.Name).Debugf("pushing activation record")
	if cs.OnPush != nil {
		cs.OnPush(ar)
	}
}

// Pop pops the top-most activation record. Returns the popped record.
func (cs *CallStack) Pop() *ActivationRecord {
	last := cs.frames.Size() - 1
	v, ok := cs.frames.Get(last)
	if !ok {
		panic("attempt to pop activation record from empty call stack")
	}
	cs.frames.Remove(last)
	cs.pops++
	ar := v.(*ActivationRecord)
	tracer().Debugf("popping activation record [%s]", ar.Name)
	if cs.OnPop != nil {
		cs.OnPop(ar)
	}
	return ar
}

func (cs *CallStack) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CALL STACK (size: %d)\n", cs.frames.Size())
	// print the top-most record first
	for i := cs.frames.Size() - 1; i >= 0; i-- {
		v, _ := cs.frames.Get(i)
		b.WriteString(v.(*ActivationRecord).String())
	}
	return b.String()
}
