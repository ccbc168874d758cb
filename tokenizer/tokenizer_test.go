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

package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeIdentifier(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		input    string
		expected Ident
	}{
		{"foo", Ident{Kind: KindIdentifier, Prefix: 3, ASCIIOnly: true}},
		{"_foo", Ident{Kind: KindIdentifier, Prefix: 4, ASCIIOnly: true}},
		{"foo2", Ident{Kind: KindIdentifier, Prefix: 4, ASCIIOnly: true}},
		{"Foo", Ident{Kind: KindAlias, Prefix: 3, ASCIIOnly: true}},
		{"FooBar9", Ident{Kind: KindAlias, Prefix: 7, ASCIIOnly: true}},
		{"foo_bar", Ident{Kind: KindIdentifier, Prefix: 7, ASCIIOnly: true}},
		{"foo@bar", Ident{Kind: KindIdentifier, Prefix: 7, ASCIIOnly: true, Special: "@"}},
		{"foo@bar@baz", Ident{Kind: KindIdentifier, Prefix: 11, ASCIIOnly: true, Special: "@"}},
		{"héllo", Ident{Kind: KindIdentifier, Prefix: 6, ASCIIOnly: false}},
		{"Olá", Ident{Kind: KindAlias, Prefix: 4, ASCIIOnly: false}},
		{"foo?", Ident{Kind: KindIdentifier, Prefix: 3, Rest: "?", ASCIIOnly: true}},
		{"foo!", Ident{Kind: KindIdentifier, Prefix: 3, Rest: "!", ASCIIOnly: true}},
		{"foo.bar", Ident{Kind: KindIdentifier, Prefix: 3, Rest: ".bar", ASCIIOnly: true}},
		{"foo bar", Ident{Kind: KindIdentifier, Prefix: 3, Rest: " bar", ASCIIOnly: true}},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := TokenizeIdentifier(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTokenizeIdentifierInvalid(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "2foo", "@foo", "?foo", "!", "+", " foo", ".foo"} {
		_, err := TokenizeIdentifier(input)
		assert.ErrorIs(t, err, ErrInvalidIdentifier, "input %q", input)
	}
}

func TestTokenizeExpression(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		input    string
		expected []Token
	}{
		{"+", []Token{{Kind: TokenOperator, Value: "+"}}},
		{"::", []Token{{Kind: TokenOperator, Value: "::"}}},
		{"<<<", []Token{{Kind: TokenOperator, Value: "<<<"}}},
		{"^^^", []Token{{Kind: TokenOperator, Value: "^^^"}}},
		{"..", []Token{{Kind: TokenOperator, Value: ".."}}},
		{"...", []Token{{Kind: TokenOperator, Value: "..."}}},
		{".+", []Token{{Kind: TokenDot, Value: "."}, {Kind: TokenOperator, Value: "+"}}},
		{".<>", []Token{{Kind: TokenDot, Value: "."}, {Kind: TokenOperator, Value: "<>"}}},
		{":+", []Token{{Kind: TokenAtom, Value: "+"}}},
		{":<<", []Token{{Kind: TokenAtom, Value: "<<"}}},
		{":=>", []Token{{Kind: TokenAtom, Value: "=>"}}},
		{":..", []Token{{Kind: TokenAtom, Value: ".."}}},
		{"when", []Token{{Kind: TokenOperator, Value: "when"}}},
		// greedy longest match
		{"++--", []Token{{Kind: TokenOperator, Value: "++"}, {Kind: TokenOperator, Value: "--"}}},
		{"===", []Token{{Kind: TokenOperator, Value: "==="}}},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := TokenizeExpression(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTokenizeExpressionInvalid(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", ":", "?", "a+", ":foo bar"} {
		_, err := TokenizeExpression(input)
		assert.ErrorIs(t, err, ErrUnknownToken, "input %q", input)
	}
}

func TestOperatorCategorizer(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		sym    string
		unary  bool
		binary bool
	}{
		{"+", true, true},
		{"-", true, true},
		{"!", true, false},
		{"^", true, false},
		{"&", true, false},
		{"~~~", true, false},
		{"not", true, false},
		{"*", false, true},
		{"::", false, true},
		{"|>", false, true},
		{"when", false, true},
		{"=~", false, true},
		{"^^^", false, true},
		// structural symbols categorize as neither
		{"..", false, false},
		{"...", false, false},
		{"->", false, false},
		{"=>", false, false},
		{"<<", false, false},
		{">>", false, false},
		{"%", false, false},
		// unknown
		{"??", false, false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.unary, UnaryOp(tc.sym), "UnaryOp(%q)", tc.sym)
		assert.Equal(t, tc.binary, BinaryOp(tc.sym), "BinaryOp(%q)", tc.sym)
	}
}

func TestOperatorsSorted(t *testing.T) {
	t.Parallel()
	ops := Operators()
	require.NotEmpty(t, ops)
	for i := 1; i < len(ops); i++ {
		assert.Less(t, ops[i-1], ops[i])
	}
	assert.Contains(t, ops, "|>")
	assert.Contains(t, ops, "when")
	assert.NotContains(t, ops, "..")
	assert.NotContains(t, ops, "=>")
}
