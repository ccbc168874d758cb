// Copyright 2023-2025 The Vela Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fragment classifies the cursor position inside an incomplete Vela
// code fragment.
//
// Given the characters to the left of a cursor, Classify reverse-scans the
// last line and reports the syntactic construct the cursor is inside — an
// alias, a member reference, an unquoted atom, an operator, a call head —
// so that completion and signature-help tooling can decide what to suggest.
// The input is expected to be incomplete: trailing identifiers, dangling
// dots, unmatched parens and half-typed operators are the normal case.
//
// Classification is a pure function and never fails; anything the scanner
// cannot make sense of collapses to None.
package fragment

import (
	"bytes"
	"strings"

	"github.com/vela-lang/velacomplete/tokenizer"
)

// Character classes, bytewise. Bytes above 0x7f carry no flags and are
// treated as identifier characters; the tokenizer decides their validity.
const (
	classOperator uint8 = 1 << iota
	classStarter
	classNonStarter
	classSpace
	classTrailing
)

var charClass = func() [256]uint8 {
	var t [256]uint8
	for _, c := range []byte(`\<>+-*/:=|&~^%.!`) {
		t[c] |= classOperator
	}
	for _, c := range []byte(",([{;") {
		t[c] |= classStarter
	}
	for _, c := range []byte(`)]}"'`) {
		t[c] |= classNonStarter
	}
	t['\t'] |= classSpace
	t[' '] |= classSpace
	t['?'] |= classTrailing
	t['!'] |= classTrailing
	return t
}()

func isOperatorByte(c byte) bool { return charClass[c]&classOperator != 0 }
func isSpaceByte(c byte) bool    { return charClass[c]&classSpace != 0 }
func isNonIdentByte(c byte) bool { return charClass[c] != 0 }

// Operator prefixes that are not valid operators themselves but extend to
// valid ones. They classify as Operator while being typed, and as None in
// positions where a complete operator is required.
var incompleteOps = map[string]bool{
	"^^": true,
	"~~": true,
	"~":  true,
}

// Identifier-shaped words that are operators when they appear in call
// position.
var textualOps = map[string]bool{
	"when": true,
	"not":  true,
	"and":  true,
	"or":   true,
}

// Classify reports the cursor context for the characters to the left of the
// cursor. Only the last line of the fragment is consulted; a fragment ending
// in a newline classifies as Expr.
func Classify(fragment string, opts ...Option) Context {
	return ClassifyBytes([]byte(fragment), opts...)
}

// ClassifyBytes is Classify for a raw byte fragment.
func ClassifyBytes(fragment []byte, opts ...Option) Context {
	_ = applyOptions(opts)
	line := lastLine(fragment)
	if len(line) == 0 {
		return Expr{}
	}
	rev := make([]byte, len(line))
	for i, c := range line {
		rev[len(line)-1-i] = c
	}
	return classify(rev)
}

func lastLine(fragment []byte) []byte {
	if i := bytes.LastIndexByte(fragment, '\n'); i >= 0 {
		return fragment[i+1:]
	}
	return fragment
}

// classify is the prefix dispatcher. rev is the last line reversed, so the
// character at the cursor is rev[0]. Branch order matters: the multi-char
// operator checks must run before the ':' and '.' branches, and the
// paren/slash branches before the generic starter check.
func classify(rev []byte) Context {
	rest, spaces := stripSpaces(rev)
	switch {
	case len(rest) == 0:
		return Expr{}
	case rest[0] == '>' && at(rest, 1) == '=' && at(rest, 2) != ':':
		// => ends the input; a new expression follows. :=> stays an atom.
		return Expr{}
	case rest[0] == '>' && at(rest, 1) == '-' && at(rest, 2) != ':':
		return Expr{}
	case rest[0] == '<' && at(rest, 1) == '<' && at(rest, 2) != '<' && at(rest, 2) != ':':
		// << opens a bitstring; <<< remains an operator, :<< an atom.
		return Expr{}
	case len(rest) == 1 && rest[0] == ':':
		return UnquotedAtom{}
	case rest[0] == ':' && rest[1] != ':':
		// keyword or atom separator; what follows is a new expression
		return Expr{}
	case rest[0] == '.' && len(rest) == 1:
		return None{}
	case rest[0] == '.' && rest[1] != '.' && rest[1] != ':':
		return dotContext(rest[1:], "")
	case rest[0] == '(':
		return callContext(rest[1:])
	case rest[0] == '/':
		return arityContext(rest[1:])
	case charClass[rest[0]]&classStarter != 0:
		return Expr{}
	case spaces > 0:
		return callContext(rest)
	default:
		return identifierContext(rest, false)
	}
}

// stripSpaces consumes horizontal whitespace from the head of the reversed
// input. The count distinguishes "call without parens" from a bare
// identifier.
func stripSpaces(rev []byte) ([]byte, int) {
	n := 0
	for n < len(rev) && isSpaceByte(rev[n]) {
		n++
	}
	return rev[n:], n
}

func at(b []byte, i int) byte {
	if i < len(b) {
		return b[i]
	}
	return 0
}

type identState int

const (
	identNone identState = iota
	identMaybeOperator
	identAttribute
	identFound
)

type identResult struct {
	state identState
	attr  string // identAttribute: attribute name without '@'
	kind  tokenizer.Kind
	ascii bool
	rest  []byte // remaining reversed input after the identifier
	value string // the identifier, in source order
}

// scanIdentifier walks a run of identifier characters at the head of the
// reversed input and validates it through the identifier tokenizer.
func scanIdentifier(rev []byte) identResult {
	var acc []byte // collected in reverse order
	i := 0
	if i < len(rev) && (rev[i] == '?' || rev[i] == '!') {
		acc = append(acc, rev[i])
		i++
	}
	switch {
	case i >= len(rev):
		return identResult{state: identMaybeOperator}
	case isOperatorByte(rev[i]):
		return identResult{state: identMaybeOperator}
	case isNonIdentByte(rev[i]):
		return identResult{state: identNone}
	}
	for i < len(rev) && !isNonIdentByte(rev[i]) {
		acc = append(acc, rev[i])
		i++
	}
	name := reverseString(acc)
	rest := rev[i:]

	if name[0] == '@' {
		attr := name[1:]
		if attr == "" {
			return identResult{state: identAttribute}
		}
		id, err := tokenizer.TokenizeIdentifier(attr)
		if err != nil || id.Rest != "" {
			return identResult{state: identNone}
		}
		return identResult{state: identAttribute, attr: attr}
	}

	id, err := tokenizer.TokenizeIdentifier(name)
	if err != nil || id.Rest != "" {
		return identResult{state: identNone}
	}
	if id.HasSpecial('@') && at(rest, 0) != ':' {
		// scattered @ is only valid in atoms; module attributes were
		// handled above
		return identResult{state: identNone}
	}
	return identResult{
		state: identFound,
		kind:  id.Kind,
		ascii: id.ASCIIOnly,
		rest:  rest,
		value: name,
	}
}

// identifierContext maps a scanned identifier and what precedes it to a
// context. Row order follows the decision table: the '::' and ':' checks
// run on the raw remainder, the member-dot checks after space stripping.
func identifierContext(rev []byte, callOp bool) Context {
	res := scanIdentifier(rev)
	switch res.state {
	case identNone:
		return None{}
	case identMaybeOperator:
		return operatorContext(rev, callOp)
	case identAttribute:
		return ModuleAttribute{Name: res.attr}
	}

	if strings.HasPrefix(res.value, "?") {
		return None{}
	}

	switch {
	case at(res.rest, 0) == ':' && at(res.rest, 1) == ':':
		// a :: ends here; the identifier starts a fresh expression
		return afterOperatorRun(res)
	case at(res.rest, 0) == ':':
		return UnquotedAtom{Value: res.value}
	}

	if res.kind == tokenizer.KindAtom {
		return None{}
	}
	if res.kind == tokenizer.KindAlias && !res.ascii {
		return None{}
	}

	if bytes.HasPrefix(res.rest, []byte("..")) {
		return afterOperatorRun(res)
	}

	rest, _ := stripSpaces(res.rest)
	if at(rest, 0) == '.' && at(rest, 1) != '.' {
		if res.kind == tokenizer.KindAlias {
			return nestedAlias(rest[1:], res.value)
		}
		if res.kind == tokenizer.KindIdentifier {
			return dotContext(rest[1:], res.value)
		}
		return None{}
	}

	switch {
	case res.kind == tokenizer.KindAlias:
		return Alias{Value: res.value}
	case callOp && textualOps[res.value]:
		return Operator{Symbol: res.value}
	case res.kind == tokenizer.KindIdentifier:
		return LocalOrVar{Name: res.value}
	}
	return None{}
}

// afterOperatorRun maps an identifier that directly follows a complete
// operator run (:: or ..): the operator is done, the identifier stands
// alone.
func afterOperatorRun(res identResult) Context {
	switch {
	case res.kind == tokenizer.KindAlias && !res.ascii:
		return None{}
	case res.kind == tokenizer.KindAlias:
		return Alias{Value: res.value}
	case res.kind == tokenizer.KindIdentifier:
		return LocalOrVar{Name: res.value}
	}
	return None{}
}

// operatorContext walks a run of operator characters and validates it
// through the expression tokenizer. callOp reports that the run sits in a
// position requiring a complete operator (before '(', '/' or a separating
// space), which rules out incomplete prefixes like ^^.
func operatorContext(rev []byte, callOp bool) Context {
	var acc []byte
	i := 0
	for i < len(rev) && isOperatorByte(rev[i]) {
		acc = append(acc, rev[i])
		i++
	}
	op := reverseString(acc)
	rest := rev[i:]

	if incompleteOps[op] {
		if callOp {
			return None{}
		}
		return Operator{Symbol: op}
	}
	if strings.HasPrefix(op, ".") && incompleteOps[op[1:]] {
		if callOp {
			return None{}
		}
		return dotContext(rest, op[1:])
	}

	toks, err := tokenizer.TokenizeExpression(op)
	if err != nil {
		return None{}
	}
	switch {
	case len(toks) == 1 && toks[0].Kind == tokenizer.TokenAtom:
		return UnquotedAtom{Value: toks[0].Value}
	case len(toks) == 2 && toks[0].Kind == tokenizer.TokenDot &&
		toks[1].Kind == tokenizer.TokenOperator && categorized(toks[1].Value):
		return dotContext(rest, toks[1].Value)
	case len(toks) == 1 && toks[0].Kind == tokenizer.TokenOperator && categorized(toks[0].Value):
		return Operator{Symbol: toks[0].Value}
	}
	return None{}
}

func categorized(sym string) bool {
	return tokenizer.UnaryOp(sym) || tokenizer.BinaryOp(sym)
}

// dotContext classifies the receiver side of a member reference and wraps
// it around member. Left associativity comes from the recursion: the
// receiver of a.b.c is itself a Dot.
func dotContext(rev []byte, member string) Context {
	rev, _ = stripSpaces(rev)
	var inside Inside
	switch prev := identifierContext(rev, true).(type) {
	case LocalOrVar:
		inside = Var{Name: prev.Name}
	case UnquotedAtom:
		inside = prev
	case Alias:
		inside = prev
	case ModuleAttribute:
		inside = prev
	case Dot:
		inside = prev
	default:
		return None{}
	}
	return Dot{Inside: inside, Member: member}
}

// nestedAlias extends an alias path to the left: the receiver of Str.Case
// must itself be an alias.
func nestedAlias(rev []byte, segment string) Context {
	rev, _ = stripSpaces(rev)
	if prev, ok := identifierContext(rev, true).(Alias); ok {
		return Alias{Value: prev.Value + "." + segment}
	}
	return None{}
}

// arityContext classifies the head of a name/arity reference, after the
// slash has been consumed.
func arityContext(rev []byte) Context {
	switch ctx := identifierContext(rev, true).(type) {
	case LocalOrVar:
		return LocalArity{Name: ctx.Name}
	case Operator:
		return OperatorArity{Symbol: ctx.Symbol}
	case Dot:
		return DotArity{Inside: ctx.Inside, Member: ctx.Member}
	default:
		return None{}
	}
}

// callContext classifies a callee, after the '(' or the separating space
// has been consumed.
func callContext(rev []byte) Context {
	switch ctx := identifierContext(rev, true).(type) {
	case LocalOrVar:
		return LocalCall{Name: ctx.Name}
	case Operator:
		return OperatorCall{Symbol: ctx.Symbol}
	case Dot:
		return DotCall{Inside: ctx.Inside, Member: ctx.Member}
	default:
		return None{}
	}
}

func reverseString(rev []byte) string {
	out := make([]byte, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return string(out)
}
