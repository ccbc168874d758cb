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
	"fmt"
	"slices"
	"strings"
	"sync"

	art "github.com/plar/go-adaptive-radix-tree"
)

// SymbolKind identifies what a Symbol names.
type SymbolKind int

const (
	SymbolModule SymbolKind = iota
	SymbolFunction
	SymbolAttribute
	SymbolOperator
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolModule:
		return "module"
	case SymbolFunction:
		return "function"
	case SymbolAttribute:
		return "attribute"
	case SymbolOperator:
		return "operator"
	}
	return "unknown"
}

// Symbol is one indexed program element.
type Symbol struct {
	Kind SymbolKind
	// Module is the defining module path. Empty for module symbols, whose
	// path is Name.
	Module string
	Name   string
	// Arity is the parameter count, functions only.
	Arity int
}

// Label returns the text a completion for the symbol inserts.
func (s Symbol) Label() string {
	if s.Kind == SymbolFunction {
		return fmt.Sprintf("%s/%d", s.Name, s.Arity)
	}
	return s.Name
}

// Key separator. NUL cannot appear in a symbol name, so prefixes never
// bleed across key segments.
const sep = "\x00"

// Index is a symbol index for prefix search, backed by an adaptive radix
// tree. Safe for concurrent use.
type Index struct {
	mu   sync.RWMutex
	tree art.Tree
}

func NewIndex() *Index {
	return &Index{tree: art.New()}
}

// Add inserts sym, replacing any previous symbol with the same key.
func (ix *Index) Add(sym Symbol) {
	key, ok := symbolKey(sym)
	if !ok {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.tree.Insert(key, sym)
}

func symbolKey(sym Symbol) (art.Key, bool) {
	switch sym.Kind {
	case SymbolModule:
		return art.Key("m" + sep + sym.Name), true
	case SymbolFunction:
		return art.Key(fmt.Sprintf("f%s%s%s%s%s%d", sep, sym.Module, sep, sym.Name, sep, sym.Arity)), true
	case SymbolAttribute:
		return art.Key("a" + sep + sym.Module + sep + sym.Name), true
	}
	return nil, false
}

// Len returns the number of indexed symbols.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tree.Size()
}

// Modules returns the modules whose path starts with prefix.
func (ix *Index) Modules(prefix string) []Symbol {
	return ix.collect("m" + sep + prefix)
}

// Functions returns the functions of module whose name starts with prefix.
func (ix *Index) Functions(module, prefix string) []Symbol {
	return ix.collect("f" + sep + module + sep + prefix)
}

// FunctionsNamed returns the functions of module with exactly the given
// name, one per arity.
func (ix *Index) FunctionsNamed(module, name string) []Symbol {
	return ix.collect("f" + sep + module + sep + name + sep)
}

// Attributes returns the attributes of module whose name starts with
// prefix.
func (ix *Index) Attributes(module, prefix string) []Symbol {
	return ix.collect("a" + sep + module + sep + prefix)
}

func (ix *Index) collect(prefix string) []Symbol {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []Symbol
	ix.tree.ForEachPrefix(art.Key(prefix), func(node art.Node) bool {
		if node.Kind() != art.Leaf {
			return true
		}
		if sym, ok := node.Value().(Symbol); ok {
			out = append(out, sym)
		}
		return true
	})
	slices.SortFunc(out, compareSymbols)
	return out
}

func compareSymbols(a, b Symbol) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return a.Arity - b.Arity
}
