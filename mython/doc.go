// Package mython implements the Mython execution engine: an interpreter for
// a small dynamically typed, indentation-structured scripting language. The
// language supports the following constructs:
//   - Integer and string literals plus the constants True, False, and None.
//   - Arithmetic (+, -, *, /), logical (and, or, not), and comparison
//     operators (==, !=, <, <=, >, >=).
//   - print statements and str(...) conversion.
//   - if/else with two-space significant indentation.
//   - Single-inheritance classes with def methods; __init__ runs at
//     construction, __str__ at printing, and __add__, __eq__, and __lt__
//     participate in operator dispatch.
//   - Attribute access and assignment through dotted identifiers.
//
// Comments beginning with `#` run to the end of the line. Layout is handled
// entirely by the lexer, which synthesizes Indent and Dedent tokens; the
// parser never re-examines whitespace.
package mython
