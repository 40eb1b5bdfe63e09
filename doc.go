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

// Package commonmark provides a two-phase CommonMark-compatible Markdown
// parser. The block pass assembles raw, inline-unparsed blocks from the
// source text; the inline pass tokenizes each block's body against the
// table of link reference definitions gathered during the block pass.
//
// Parse is a pure function of its input: calling it repeatedly, or from
// multiple goroutines at once, is always safe.
package commonmark

// tabStopSize is the number of columns a tab advances to the next multiple
// of, matching the CommonMark tab-expansion rule.
const tabStopSize = 4

// defaultMaxNestingDepth bounds the recursion depth of nested blockquotes
// so that adversarial input can't exhaust the stack. The inline pass is not
// recursive and is not subject to this limit.
const defaultMaxNestingDepth = 128
