// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package commonmark

import "fmt"

// ErrorKind classifies why Parse failed.
type ErrorKind int

const (
	// LexError means no raw-block lexer alternative matched a line that
	// wasn't at the end of input.
	LexError ErrorKind = iota
	// HeadingLevelErrorKind means the tree mapper encountered an ATX
	// heading whose hash run committed to a level outside 1..6.
	HeadingLevelErrorKind
	// InlineErrorKind means inline tokenization failed irrecoverably.
	InlineErrorKind
	// NestingLimitErrorKind means block quote nesting exceeded the
	// configured maximum depth.
	NestingLimitErrorKind
)

// Error is the error type returned by Parse.
type Error struct {
	Line int // 1-based line number, best-effort; 0 for HeadingLevelErrorKind and NestingLimitErrorKind, which carry no line
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// FormatError renders err the way a user-facing tool should, matching the
// "Problem at row <n>" convention. It accepts any error but only produces
// the row-qualified form for errors produced by this package.
func FormatError(err error) string {
	if e, ok := err.(*Error); ok {
		return fmt.Sprintf("Problem at row %d\n%s", e.Line, e.Msg)
	}
	return err.Error()
}
