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

package fragment

import "fmt"

// Context describes the syntactic construct the cursor is inside, as
// determined by Classify. It is a closed set of value types; callers switch
// on the concrete type to decide what to suggest.
//
// Variants that carry text always carry it in source (forward) order, with
// no surrounding whitespace and without the trailing character that
// triggered the classification ('(', '/' or '.').
type Context interface {
	fmt.Stringer
	contextNode()
}

// Inside is the receiver position of a member reference: the part to the
// left of the rightmost dot in expressions like a.b.c. It is a closed set;
// Dot is self-referential, forming a left-associative chain.
type Inside interface {
	fmt.Stringer
	insideNode()
}

var (
	_ Context = Expr{}
	_ Context = None{}
	_ Context = UnquotedAtom{}
	_ Context = Alias{}
	_ Context = ModuleAttribute{}
	_ Context = LocalOrVar{}
	_ Context = LocalArity{}
	_ Context = LocalCall{}
	_ Context = Operator{}
	_ Context = OperatorArity{}
	_ Context = OperatorCall{}
	_ Context = Dot{}
	_ Context = DotArity{}
	_ Context = DotCall{}

	_ Inside = Var{}
	_ Inside = Alias{}
	_ Inside = ModuleAttribute{}
	_ Inside = UnquotedAtom{}
	_ Inside = Dot{}
)

// Expr reports that any expression may start at the cursor.
type Expr struct{}

// None reports that there is no sensible completion at the cursor.
type None struct{}

// UnquotedAtom is an atom literal written without quotes, such as :foo.
// Value holds the characters typed after the colon, possibly empty.
type UnquotedAtom struct {
	Value string
}

// Alias is a capitalized namespace path, one segment or dotted, such as
// Str or Str.Case.
type Alias struct {
	Value string
}

// ModuleAttribute is an @-prefixed attribute name. Name may be empty when
// only the @ has been typed.
type ModuleAttribute struct {
	Name string
}

// LocalOrVar is a lowercase identifier that may resolve to a variable or a
// local call.
type LocalOrVar struct {
	Name string
}

// LocalArity is a lowercase identifier followed by a slash, the head of a
// name/arity reference.
type LocalArity struct {
	Name string
}

// LocalCall is a lowercase identifier in call position, before '(' or a
// separating space.
type LocalCall struct {
	Name string
}

// Operator is a validated operator token at the cursor.
type Operator struct {
	Symbol string
}

// OperatorArity is an operator followed by a slash.
type OperatorArity struct {
	Symbol string
}

// OperatorCall is an operator in call position.
type OperatorCall struct {
	Symbol string
}

// Var is a variable on the left of a dot. It only occurs inside a Dot
// chain; a bare variable at the cursor classifies as LocalOrVar.
type Var struct {
	Name string
}

// Dot is a member reference: Inside is the receiver, Member the partial
// member name to the right of the dot.
type Dot struct {
	Inside Inside
	Member string
}

// DotArity is a member reference followed by a slash.
type DotArity struct {
	Inside Inside
	Member string
}

// DotCall is a member reference in call position.
type DotCall struct {
	Inside Inside
	Member string
}

func (Expr) contextNode()            {}
func (None) contextNode()            {}
func (UnquotedAtom) contextNode()    {}
func (Alias) contextNode()           {}
func (ModuleAttribute) contextNode() {}
func (LocalOrVar) contextNode()      {}
func (LocalArity) contextNode()      {}
func (LocalCall) contextNode()       {}
func (Operator) contextNode()        {}
func (OperatorArity) contextNode()   {}
func (OperatorCall) contextNode()    {}
func (Dot) contextNode()             {}
func (DotArity) contextNode()        {}
func (DotCall) contextNode()         {}

func (UnquotedAtom) insideNode()    {}
func (Alias) insideNode()           {}
func (ModuleAttribute) insideNode() {}
func (Var) insideNode()             {}
func (Dot) insideNode()             {}

func (Expr) String() string              { return "expr" }
func (None) String() string              { return "none" }
func (c UnquotedAtom) String() string    { return fmt.Sprintf("unquoted_atom(%s)", c.Value) }
func (c Alias) String() string           { return fmt.Sprintf("alias(%s)", c.Value) }
func (c ModuleAttribute) String() string { return fmt.Sprintf("module_attribute(%s)", c.Name) }
func (c LocalOrVar) String() string      { return fmt.Sprintf("local_or_var(%s)", c.Name) }
func (c LocalArity) String() string      { return fmt.Sprintf("local_arity(%s)", c.Name) }
func (c LocalCall) String() string       { return fmt.Sprintf("local_call(%s)", c.Name) }
func (c Operator) String() string        { return fmt.Sprintf("operator(%s)", c.Symbol) }
func (c OperatorArity) String() string   { return fmt.Sprintf("operator_arity(%s)", c.Symbol) }
func (c OperatorCall) String() string    { return fmt.Sprintf("operator_call(%s)", c.Symbol) }
func (c Var) String() string             { return fmt.Sprintf("var(%s)", c.Name) }
func (c Dot) String() string             { return fmt.Sprintf("dot(%s, %s)", c.Inside, c.Member) }
func (c DotArity) String() string        { return fmt.Sprintf("dot_arity(%s, %s)", c.Inside, c.Member) }
func (c DotCall) String() string         { return fmt.Sprintf("dot_call(%s, %s)", c.Inside, c.Member) }
