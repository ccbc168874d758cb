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

import "errors"

// ErrInvalidIdentifier is returned by TokenizeIdentifier when the input
// does not start an identifier.
var ErrInvalidIdentifier = errors.New("not a valid identifier")

// ErrUnknownToken is returned by TokenizeExpression when the input contains
// a symbol outside the operator grammar.
var ErrUnknownToken = errors.New("unknown token")
