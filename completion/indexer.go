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
	"context"
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/vela-lang/velacomplete/reporter"
	"github.com/vela-lang/velacomplete/tokenizer"
)

// Source is one Vela source file to index.
type Source struct {
	Name    string
	Content []byte
}

// Indexer builds an Index from Vela sources. It scans definition heads
// only — modules, function clauses and module attributes — which is enough
// for name completion and keeps the scan linear in the input.
type Indexer struct {
	// The maximum parallelism to use when scanning. If unspecified or set
	// to a non-positive value, then min(runtime.NumCPU(),
	// runtime.GOMAXPROCS(-1)) is used.
	MaxParallelism int
	// Reporter receives malformed definitions. A nil reporter aborts the
	// scan on the first one.
	Reporter reporter.ErrorReporter
}

// Scan indexes the given sources. Sources are scanned in parallel, bounded
// by MaxParallelism. The returned index contains everything scanned so
// far even when the error is non-nil; a reporter that swallows errors
// yields reporter.ErrInvalidSource alongside the index.
func (ix *Indexer) Scan(ctx context.Context, sources []Source) (*Index, error) {
	idx := NewIndex()
	if len(sources) == 0 {
		return idx, nil
	}

	par := ix.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}

	h := reporter.NewHandler(ix.Reporter)
	s := semaphore.NewWeighted(int64(par))
	for _, src := range sources {
		if err := s.Acquire(ctx, 1); err != nil {
			return idx, err
		}
		go func(src Source) {
			defer s.Release(1)
			n := scanSource(h, idx, src)
			slog.Debug("indexed vela source", "name", src.Name, "symbols", n)
		}(src)
	}
	if err := s.Acquire(ctx, int64(par)); err != nil {
		return idx, err
	}
	return idx, h.Error()
}

// scanSource walks src line by line, collecting definition heads into idx.
// Returns the number of symbols added.
func scanSource(h *reporter.Handler, idx *Index, src Source) int {
	var module string
	added := 0
	for lineNo, line := range strings.Split(string(src.Content), "\n") {
		if h.ReporterError() != nil {
			return added
		}
		pos := reporter.SourcePos{Filename: src.Name, Line: lineNo + 1}
		trimmed := strings.TrimLeft(line, " \t")

		switch {
		case strings.HasPrefix(trimmed, "defmodule "):
			name := headWord(trimmed[len("defmodule "):])
			if !validModulePath(name) {
				if h.HandleErrorf(pos, "invalid module name %q", name) != nil {
					return added
				}
				continue
			}
			module = name
			idx.Add(Symbol{Kind: SymbolModule, Name: name})
			added++

		case strings.HasPrefix(trimmed, "def ") || strings.HasPrefix(trimmed, "defp "),
			strings.HasPrefix(trimmed, "defmacro ") || strings.HasPrefix(trimmed, "defmacrop "):
			head := trimmed[strings.IndexByte(trimmed, ' ')+1:]
			name, arity, ok := splitFunctionHead(head)
			if !ok {
				if h.HandleErrorf(pos, "invalid function head %q", headWord(head)) != nil {
					return added
				}
				continue
			}
			idx.Add(Symbol{Kind: SymbolFunction, Module: module, Name: name, Arity: arity})
			added++

		case strings.HasPrefix(trimmed, "@"):
			name := headWord(trimmed[1:])
			if name == "" {
				continue
			}
			id, err := tokenizer.TokenizeIdentifier(name)
			if err != nil || id.Rest != "" || id.Kind != tokenizer.KindIdentifier {
				if h.HandleErrorf(pos, "invalid attribute name %q", name) != nil {
					return added
				}
				continue
			}
			idx.Add(Symbol{Kind: SymbolAttribute, Module: module, Name: name})
			added++
		}
	}
	return added
}

// headWord cuts s at the first space, paren, comma or do-block.
func headWord(s string) string {
	end := len(s)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '(', ',', '[':
			end = i
		default:
			continue
		}
		break
	}
	return s[:end]
}

// splitFunctionHead extracts name and arity from a clause head like
// "push(stack, item) do". Trailing ? and ! are part of the name; arity is
// the number of top-level parameters in the list on the same line.
func splitFunctionHead(head string) (string, int, bool) {
	name := headWord(head)
	base := strings.TrimRight(name, "?!")
	if strings.ContainsAny(name, "?!") && len(name)-len(base) != 1 {
		return "", 0, false
	}
	if base == "" {
		return "", 0, false
	}
	id, err := tokenizer.TokenizeIdentifier(base)
	if err != nil || id.Rest != "" || id.Kind != tokenizer.KindIdentifier || id.HasSpecial('@') {
		return "", 0, false
	}
	return name, headArity(head[len(name):]), true
}

// headArity counts parameters in the clause head after the name. Guards
// and multi-line heads are out of scope; anything unparsed counts from
// what is visible on the line.
func headArity(s string) int {
	s = strings.TrimLeft(s, " \t")
	if !strings.HasPrefix(s, "(") {
		return 0
	}
	depth := 0
	args := 0
	seen := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				if seen {
					args++
				}
				return args
			}
		case ',':
			if depth == 1 {
				args++
			}
		case ' ', '\t':
		default:
			if depth == 1 {
				seen = true
			}
		}
	}
	if seen {
		args++
	}
	return args
}

// validModulePath reports whether every dot-separated segment of path is a
// plain ASCII alias.
func validModulePath(path string) bool {
	if path == "" {
		return false
	}
	for _, seg := range strings.Split(path, ".") {
		id, err := tokenizer.TokenizeIdentifier(seg)
		if err != nil || id.Rest != "" || id.Kind != tokenizer.KindAlias || !id.ASCIIOnly {
			return false
		}
	}
	return true
}
