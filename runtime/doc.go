/*
Package runtime implements an interpreter runtime, consisting of
scopes, symbol tables, activation records and the call stack.

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Symbol Table and Scope Tree

This module implements data structures for scope trees and symbol tables
attached to them. The semantic analyzer builds the scope tree; the
interpreter walks the same nesting, so both passes agree on visibility.

Activation Records

This module implements a stack of activation records. Activation records
hold local storage for live procedure/function invocations and link to their
lexically enclosing activation for nested-procedure name resolution.


----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pasc.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("pasc.runtime")
}

// BuiltinTypeNames are the type names predeclared in the global scope.
var BuiltinTypeNames = []string{"integer", "real", "boolean"}

// NewGlobalScopeTree constructs a scope stack with the global scope pushed
// and the built-in type symbols predeclared.
func NewGlobalScopeTree(nm string) *ScopeTree {
	scopes := new(ScopeTree)
	globals := scopes.PushNewScope(nm)
	for _, t := range BuiltinTypeNames {
		globals.Define(NewSymbol(t).WithCategory(BuiltinTypeSym))
	}
	return scopes
}
