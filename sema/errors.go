package sema

import (
	"fmt"

	"github.com/npillmayer/pasc"
)

// DuplicateDeclarationError reports a name declared twice in the same scope.
// Re-declaring a name of an outer scope is shadowing, not an error.
type DuplicateDeclarationError struct {
	Name string
	Pos  pasc.Position
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("duplicate declaration of '%s' at %s", e.Name, e.Pos)
}

// UndeclaredIdentifierError reports a name referenced but not declared in
// any enclosing scope.
type UndeclaredIdentifierError struct {
	Name string
	Pos  pasc.Position
}

func (e *UndeclaredIdentifierError) Error() string {
	return fmt.Sprintf("undeclared identifier '%s' at %s", e.Name, e.Pos)
}

// ArgumentCountMismatchError reports a call site whose argument count
// disagrees with the declaration.
type ArgumentCountMismatchError struct {
	Name string
	Want int
	Got  int
	Pos  pasc.Position
}

func (e *ArgumentCountMismatchError) Error() string {
	return fmt.Sprintf("'%s' expects %d argument(s), got %d at %s",
		e.Name, e.Want, e.Got, e.Pos)
}
