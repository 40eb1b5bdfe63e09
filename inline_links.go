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

// tryInlineLinkTail attempts to parse the "(destination "title")" tail of
// an inline-form link or image immediately following a closing ']' at
// text[pos]. It reports the byte index just past the closing ')' on
// success.
func tryInlineLinkTail(text string, pos int) (dest, title string, titlePresent bool, end int, ok bool) {
	if pos >= len(text) || text[pos] != '(' {
		return "", "", false, 0, false
	}
	rest := skipLinkWhitespace(text[pos+1:])

	if rest != "" && rest[0] == ')' {
		return "", "", false, len(text) - len(rest) + 1, true
	}

	dest, rest, ok = scanLinkDestination(rest)
	if !ok {
		return "", "", false, 0, false
	}
	rest = skipLinkWhitespace(rest)

	if afterTitle, t, ok := tryTitle(rest); ok {
		if closed := skipLinkWhitespace(afterTitle); closed != "" && closed[0] == ')' {
			title = t
			titlePresent = true
			rest = closed
		}
	}
	if rest == "" || rest[0] != ')' {
		return "", "", false, 0, false
	}
	return dest, title, titlePresent, len(text) - len(rest) + 1, true
}

// tryReferenceLinkTail attempts full, collapsed, and shortcut reference
// forms: "[label]", "[]", or nothing at all (falling back to the bracket
// content itself as the label).
func tryReferenceLinkTail(text string, pos int, rawLabel string, refs map[string]LinkDefinition) (def LinkDefinition, end int, ok bool) {
	label := rawLabel
	end = pos
	if pos < len(text) && text[pos] == '[' {
		if lbl, rest, ok := scanLinkLabel(text[pos:]); ok {
			end = pos + (len(text[pos:]) - len(rest))
			if lbl != "" {
				label = lbl
			}
		} else {
			end = pos
		}
	}
	def, ok = refs[normalizeLabel(label)]
	if !ok {
		return LinkDefinition{}, 0, false
	}
	return def, end, true
}

func skipLinkWhitespace(s string) string {
	i := 0
	for i < len(s) && isGFMWhitespace(s[i]) {
		i++
	}
	return s[i:]
}

func literalBracketNode(isImage bool) *inlineNode {
	if isImage {
		return &inlineNode{kind: inText, text: "!["}
	}
	return &inlineNode{kind: inText, text: "["}
}

func linkNode(isImage bool, children []Inline, dest, title string, titlePresent bool) *inlineNode {
	kind := LinkKind
	if isImage {
		kind = ImageKind
	}
	return &inlineNode{kind: inResolved, resolved: Inline{
		Kind:         kind,
		Children:     children,
		Destination:  dest,
		Title:        title,
		TitlePresent: titlePresent,
	}}
}

func deactivateLinkOpeners(brackets []bracketOpener) {
	for i := range brackets {
		brackets[i].active = false
	}
}
