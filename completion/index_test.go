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

package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *Index {
	idx := NewIndex()
	for _, sym := range []Symbol{
		{Kind: SymbolModule, Name: "Str"},
		{Kind: SymbolModule, Name: "Str.Case"},
		{Kind: SymbolModule, Name: "Stack"},
		{Kind: SymbolModule, Name: "erlang"},
		{Kind: SymbolFunction, Module: "Str", Name: "length", Arity: 1},
		{Kind: SymbolFunction, Module: "Str", Name: "pad", Arity: 2},
		{Kind: SymbolFunction, Module: "Str", Name: "pad", Arity: 3},
		{Kind: SymbolFunction, Module: "Str.Case", Name: "down", Arity: 1},
		{Kind: SymbolFunction, Module: "Stack", Name: "push", Arity: 2},
		{Kind: SymbolFunction, Module: "Stack", Name: "pop", Arity: 1},
		{Kind: SymbolAttribute, Module: "Stack", Name: "max_depth"},
		{Kind: SymbolAttribute, Module: "Stack", Name: "moduledoc"},
	} {
		idx.Add(sym)
	}
	return idx
}

func TestIndexModules(t *testing.T) {
	t.Parallel()
	idx := testIndex()

	names := func(syms []Symbol) []string {
		out := make([]string, len(syms))
		for i, s := range syms {
			out[i] = s.Name
		}
		return out
	}

	assert.Equal(t, []string{"Stack", "Str", "Str.Case"}, names(idx.Modules("St")))
	assert.Equal(t, []string{"Str", "Str.Case"}, names(idx.Modules("Str")))
	assert.Equal(t, []string{"Str.Case"}, names(idx.Modules("Str.")))
	assert.Equal(t, []string{"erlang"}, names(idx.Modules("erl")))
	assert.Empty(t, idx.Modules("Zoo"))
}

func TestIndexFunctions(t *testing.T) {
	t.Parallel()
	idx := testIndex()

	syms := idx.Functions("Str", "pa")
	require.Len(t, syms, 2)
	assert.Equal(t, "pad/2", syms[0].Label())
	assert.Equal(t, "pad/3", syms[1].Label())

	// prefix search does not cross modules
	assert.Empty(t, idx.Functions("Str", "pu"))
	assert.Len(t, idx.Functions("Stack", "p"), 2)

	// exact-name lookup does not match longer names
	idx.Add(Symbol{Kind: SymbolFunction, Module: "Str", Name: "pads", Arity: 1})
	assert.Len(t, idx.FunctionsNamed("Str", "pad"), 2)
	assert.Len(t, idx.Functions("Str", "pad"), 3)
}

func TestIndexAttributes(t *testing.T) {
	t.Parallel()
	idx := testIndex()

	syms := idx.Attributes("Stack", "m")
	require.Len(t, syms, 2)
	assert.Equal(t, "max_depth", syms[0].Name)
	assert.Equal(t, "moduledoc", syms[1].Name)
	assert.Empty(t, idx.Attributes("Str", "m"))
}

func TestIndexAddReplaces(t *testing.T) {
	t.Parallel()
	idx := NewIndex()
	idx.Add(Symbol{Kind: SymbolFunction, Module: "M", Name: "f", Arity: 1})
	idx.Add(Symbol{Kind: SymbolFunction, Module: "M", Name: "f", Arity: 1})
	assert.Equal(t, 1, idx.Len())

	// operator symbols have no key and are not indexable
	idx.Add(Symbol{Kind: SymbolOperator, Name: "+"})
	assert.Equal(t, 1, idx.Len())
}

func TestSymbolLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "pad/2", Symbol{Kind: SymbolFunction, Name: "pad", Arity: 2}.Label())
	assert.Equal(t, "Str.Case", Symbol{Kind: SymbolModule, Name: "Str.Case"}.Label())
	assert.Equal(t, "moduledoc", Symbol{Kind: SymbolAttribute, Name: "moduledoc"}.Label())
}
