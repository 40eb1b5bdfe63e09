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

import "strings"

// resolveEmphasis implements §4.5's emphasis/strong resolution: a left-to-
// right scan over closing delimiters, each matched against the nearest
// compatible opener still on the stack. A matched pair is spliced into a
// single resolved Emphasis or Strong node; any part of either delimiter run
// left unconsumed stays on the stack (or in the stream) to match again.
func resolveEmphasis(nodes []*inlineNode) []*inlineNode {
	var openers []int
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		if n.kind != inDelim || n.delimCount == 0 {
			i++
			continue
		}
		if !n.canClose {
			if n.canOpen {
				openers = append(openers, i)
			}
			i++
			continue
		}

		matched := false
		for oi := len(openers) - 1; oi >= 0; oi-- {
			openerIdx := openers[oi]
			opener := nodes[openerIdx]
			if opener.delimChar != n.delimChar || opener.delimCount == 0 {
				continue
			}
			if !delimitersCompatible(opener.delimCount, n.delimCount, opener.canOpen && opener.canClose, n.canOpen && n.canClose) {
				continue
			}

			// Peel off an odd single delimiter before pairing up strongs, so
			// that for a run of 3 the innermost match is the Emphasis and
			// the Strong wraps it (not the reverse): Strong(Emphasis(...)),
			// matching the rule-of-3 nesting order.
			useLen := 1
			kind := EmphasisKind
			if opener.delimCount >= 2 && n.delimCount >= 2 && opener.delimCount%2 == 0 && n.delimCount%2 == 0 {
				useLen = 2
				kind = StrongKind
			}
			children := flattenInlineNodes(nodes[openerIdx+1 : i])
			wrapped := &inlineNode{kind: inResolved, resolved: Inline{Kind: kind, Children: children}}

			opener.delimCount -= useLen
			n.delimCount -= useLen

			var replacement []*inlineNode
			if opener.delimCount > 0 {
				replacement = append(replacement, opener)
			}
			replacement = append(replacement, wrapped)
			if n.delimCount > 0 {
				replacement = append(replacement, n)
			}
			tail := append([]*inlineNode{}, nodes[i+1:]...)
			nodes = append(append(nodes[:openerIdx:openerIdx], replacement...), tail...)

			openers = openers[:oi]
			if opener.delimCount > 0 {
				openers = append(openers, openerIdx)
			}

			if n.delimCount > 0 {
				i = openerIdx + len(replacement) - 1
			} else {
				i = openerIdx + len(replacement)
			}
			matched = true
			break
		}
		if !matched {
			if n.canOpen {
				openers = append(openers, i)
			}
			i++
		}
	}
	return nodes
}

// delimitersCompatible implements the "multiple of 3" rule: if either the
// opener or the closer can both open and close, the sum of the two runs'
// lengths must not be a multiple of 3 unless both lengths are.
func delimitersCompatible(openerLen, closerLen int, openerBoth, closerBoth bool) bool {
	if !openerBoth && !closerBoth {
		return true
	}
	if (openerLen+closerLen)%3 != 0 {
		return true
	}
	return openerLen%3 == 0 && closerLen%3 == 0
}

// flattenInlineNodes converts a fully resolved node list into the public
// Inline tree, coalescing adjacent plain text (including any delimiter
// runs and bracket markers left over unmatched, which are literal text).
func flattenInlineNodes(nodes []*inlineNode) []Inline {
	var out []Inline
	appendText := func(s string) {
		if s == "" {
			return
		}
		if n := len(out); n > 0 && out[n-1].Kind == TextKind {
			out[n-1].Text += s
			return
		}
		out = append(out, Inline{Kind: TextKind, Text: s})
	}
	for _, n := range nodes {
		switch n.kind {
		case inText:
			appendText(n.text)
		case inCodeSpan:
			out = append(out, Inline{Kind: CodeSpanKind, Text: n.text})
		case inRawHTML:
			out = append(out, Inline{Kind: HTMLInlineKind, Text: n.text})
		case inHardBreak:
			out = append(out, Inline{Kind: HardLineBreakKind})
		case inResolved:
			out = append(out, n.resolved)
		case inDelim:
			if n.delimCount > 0 {
				appendText(strings.Repeat(string(n.delimChar), n.delimCount))
			}
		case inBracket:
			if n.isImage {
				appendText("![")
			} else {
				appendText("[")
			}
		}
	}
	return out
}
