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

// Package completion turns cursor contexts into concrete suggestions,
// backed by a symbol index built from Vela sources.
package completion

import (
	"strings"

	"github.com/vela-lang/velacomplete/fragment"
	"github.com/vela-lang/velacomplete/tokenizer"
)

// Suggestion is a single completion candidate.
type Suggestion struct {
	// Label is the text to insert.
	Label string
	Kind  SymbolKind
	// Detail qualifies the suggestion, e.g. the defining module.
	Detail string
}

// Completer maps classified fragments to suggestions from an Index.
type Completer struct {
	Index *Index
	// Module is the module whose functions and attributes are in scope
	// unqualified.
	Module string
}

// Suggest classifies fragment text and returns matching suggestions.
// A None context, and any context the index has no answer for, yields no
// suggestions.
func (c *Completer) Suggest(frag string) []Suggestion {
	switch ctx := fragment.Classify(frag).(type) {
	case fragment.Expr:
		return c.locals("")
	case fragment.LocalOrVar:
		return append(c.locals(ctx.Name), textualOperators(ctx.Name)...)
	case fragment.LocalCall:
		return append(c.locals(ctx.Name), textualOperators(ctx.Name)...)
	case fragment.LocalArity:
		return c.functionSuggestions(c.Index.FunctionsNamed(c.Module, ctx.Name))
	case fragment.Alias:
		return c.moduleSuggestions(ctx.Value)
	case fragment.UnquotedAtom:
		return c.moduleSuggestions(ctx.Value)
	case fragment.ModuleAttribute:
		return c.attributeSuggestions(ctx.Name)
	case fragment.Operator:
		return operatorSuggestions(ctx.Symbol)
	case fragment.OperatorCall:
		return operatorSuggestions(ctx.Symbol)
	case fragment.OperatorArity:
		return operatorSuggestions(ctx.Symbol)
	case fragment.Dot:
		if mod, ok := receiverModule(ctx.Inside); ok {
			return c.functionSuggestions(c.Index.Functions(mod, ctx.Member))
		}
	case fragment.DotCall:
		if mod, ok := receiverModule(ctx.Inside); ok {
			return c.functionSuggestions(c.Index.Functions(mod, ctx.Member))
		}
	case fragment.DotArity:
		if mod, ok := receiverModule(ctx.Inside); ok {
			return c.functionSuggestions(c.Index.FunctionsNamed(mod, ctx.Member))
		}
	}
	return nil
}

// receiverModule resolves the receiver of a member reference to a module
// path. Variables and attributes would need type information; they resolve
// to nothing.
func receiverModule(inside fragment.Inside) (string, bool) {
	switch v := inside.(type) {
	case fragment.Alias:
		return v.Value, true
	case fragment.UnquotedAtom:
		return v.Value, v.Value != ""
	}
	return "", false
}

func (c *Completer) locals(prefix string) []Suggestion {
	return c.functionSuggestions(c.Index.Functions(c.Module, prefix))
}

func (c *Completer) functionSuggestions(syms []Symbol) []Suggestion {
	out := make([]Suggestion, 0, len(syms))
	for _, sym := range syms {
		out = append(out, Suggestion{
			Label:  sym.Label(),
			Kind:   SymbolFunction,
			Detail: sym.Module,
		})
	}
	return out
}

func (c *Completer) moduleSuggestions(prefix string) []Suggestion {
	syms := c.Index.Modules(prefix)
	out := make([]Suggestion, 0, len(syms))
	for _, sym := range syms {
		out = append(out, Suggestion{Label: sym.Name, Kind: SymbolModule})
	}
	return out
}

func (c *Completer) attributeSuggestions(prefix string) []Suggestion {
	syms := c.Index.Attributes(c.Module, prefix)
	out := make([]Suggestion, 0, len(syms))
	for _, sym := range syms {
		out = append(out, Suggestion{
			Label:  sym.Name,
			Kind:   SymbolAttribute,
			Detail: sym.Module,
		})
	}
	return out
}

func operatorSuggestions(prefix string) []Suggestion {
	var out []Suggestion
	for _, sym := range tokenizer.Operators() {
		if !strings.HasPrefix(sym, prefix) {
			continue
		}
		out = append(out, Suggestion{Label: sym, Kind: SymbolOperator, Detail: operatorDetail(sym)})
	}
	return out
}

func operatorDetail(sym string) string {
	unary, binary := tokenizer.UnaryOp(sym), tokenizer.BinaryOp(sym)
	switch {
	case unary && binary:
		return "unary/binary operator"
	case unary:
		return "unary operator"
	default:
		return "binary operator"
	}
}

func textualOperators(prefix string) []Suggestion {
	var out []Suggestion
	for _, sym := range tokenizer.Operators() {
		if len(sym) == 0 || sym[0] < 'a' || sym[0] > 'z' {
			continue
		}
		if strings.HasPrefix(sym, prefix) {
			out = append(out, Suggestion{Label: sym, Kind: SymbolOperator, Detail: operatorDetail(sym)})
		}
	}
	return out
}
