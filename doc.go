/*
Package pasc is an interpreter for a subset of Pascal.

PasC implements the classic four-stage interpreter pipeline:
lexical analysis, recursive-descent parsing into an abstract syntax tree,
semantic analysis over a tree of lexical scopes, and tree-walking
execution with an explicit stack of activation records.
Package structure is as follows:

■ scanner: Package scanner produces a lazy token stream from Pascal source text.

■ ast: Package ast defines the syntax-tree node variants built by the parser.

■ parser: Package parser turns a token stream into a syntax tree.

■ runtime: Package runtime provides scopes, symbol tables, activation records
and the call stack used by the semantic analyzer and the interpreter.

■ sema: Package sema statically validates declarations and name resolution.

■ interp: Package interp executes a validated syntax tree.

■ viz: Package viz renders syntax trees and symbol tables for inspection.

The base package contains lexical-level data types which are used throughout
all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pasc
