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

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// blockTagAtoms is the fixed set of tag names that may open a raw HTML
// block on their own line (condition 6 below) without the rest-of-line
// restrictions condition 7 imposes. It's built from golang.org/x/net's atom
// table rather than a bare string set, so tag-name comparison goes through
// the same canonicalization the html package itself uses.
var blockTagAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Base: true,
	atom.Basefont: true, atom.Blockquote: true, atom.Body: true, atom.Caption: true,
	atom.Center: true, atom.Col: true, atom.Colgroup: true, atom.Dd: true,
	atom.Details: true, atom.Dialog: true, atom.Dir: true, atom.Div: true,
	atom.Dl: true, atom.Dt: true, atom.Fieldset: true, atom.Figcaption: true,
	atom.Figure: true, atom.Footer: true, atom.Form: true, atom.Frame: true,
	atom.Frameset: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Head: true,
	atom.Header: true, atom.Hr: true, atom.Html: true, atom.Iframe: true,
	atom.Legend: true, atom.Li: true, atom.Link: true, atom.Main: true,
	atom.Menu: true, atom.Menuitem: true, atom.Nav: true, atom.Noframes: true,
	atom.Ol: true, atom.Optgroup: true, atom.Option: true, atom.P: true,
	atom.Param: true, atom.Section: true, atom.Source: true, atom.Summary: true,
	atom.Table: true, atom.Tbody: true, atom.Td: true, atom.Tfoot: true,
	atom.Th: true, atom.Thead: true, atom.Title: true, atom.Tr: true,
	atom.Track: true, atom.Ul: true,
}

// literalTagAtoms is condition 1's set: script/pre/style/textarea content is
// copied verbatim (no nested-tag recognition) until the matching close tag.
var literalTagAtoms = map[atom.Atom]bool{
	atom.Script: true, atom.Pre: true, atom.Style: true, atom.Textarea: true,
}

// lexHTMLBlock recognizes a raw HTML block start condition on lines[pos]
// and consumes lines according to that condition's end condition, per the
// seven-condition table in §6.3. hasPrevBody suppresses condition 7, which
// (unlike the others) may not interrupt a paragraph.
func lexHTMLBlock(lines []string, pos int, hasPrevBody bool) (htmlText string, consumed int, ok bool) {
	line := lines[pos]
	rest, okIndent := consumeUpTo3Indent(line)
	if !okIndent || len(rest) < 2 || rest[0] != '<' {
		return "", 0, false
	}

	switch {
	case startsLiteralTag(rest):
		return collectHTMLBlock(lines, pos, func(l string) bool {
			return containsAnyCaseInsensitive(l, "</script>", "</pre>", "</style>", "</textarea>")
		}, true)
	case strings.HasPrefix(rest, "<!--"):
		return collectHTMLBlock(lines, pos, func(l string) bool {
			return strings.Contains(l, "-->")
		}, true)
	case strings.HasPrefix(rest, "<?"):
		return collectHTMLBlock(lines, pos, func(l string) bool {
			return strings.Contains(l, "?>")
		}, true)
	case len(rest) >= 3 && rest[1] == '!' && isAlpha(rest[2]):
		return collectHTMLBlock(lines, pos, func(l string) bool {
			return strings.Contains(l, ">")
		}, true)
	case strings.HasPrefix(rest, "<![CDATA["):
		return collectHTMLBlock(lines, pos, func(l string) bool {
			return strings.Contains(l, "]]>")
		}, true)
	}

	if tagName, ok := blockTagStart(rest); ok {
		if blockTagAtoms[atom.Lookup([]byte(strings.ToLower(tagName)))] {
			return collectHTMLBlock(lines, pos, lexBlankLine, false)
		}
	}

	if !hasPrevBody && looksLikeCompleteTagLine(rest) {
		return collectHTMLBlock(lines, pos, lexBlankLine, false)
	}

	return "", 0, false
}

func startsLiteralTag(rest string) bool {
	if len(rest) < 2 || rest[0] != '<' {
		return false
	}
	name, afterName := scanTagName(rest[1:])
	if name == "" {
		return false
	}
	if !literalTagAtoms[atom.Lookup([]byte(strings.ToLower(name)))] {
		return false
	}
	return afterName == "" || isSpaceOrTab(afterName[0]) || afterName[0] == '>'
}

// blockTagStart recognizes the start of an open or close tag ("<name" or
// "</name") followed by whitespace, '>', "/>", or end of line, and returns
// the bare tag name.
func blockTagStart(rest string) (name string, ok bool) {
	s := rest[1:]
	s = strings.TrimPrefix(s, "/")
	name, afterName := scanTagName(s)
	if name == "" {
		return "", false
	}
	if afterName == "" {
		return name, true
	}
	switch afterName[0] {
	case ' ', '\t', '>':
		return name, true
	case '/':
		return name, strings.HasPrefix(afterName, "/>")
	default:
		return "", false
	}
}

func scanTagName(s string) (name, rest string) {
	i := 0
	for i < len(s) && (isAlphanumeric(s[i]) || s[i] == '-') {
		i++
	}
	if i == 0 || !isAlpha(s[0]) {
		return "", s
	}
	return s[:i], s[i:]
}

// looksLikeCompleteTagLine implements condition 7: the whole line (after
// its leading indent) is a single complete open or close tag, optionally
// followed only by spaces or tabs.
func looksLikeCompleteTagLine(rest string) bool {
	end, ok := scanCompleteTag(rest)
	if !ok {
		return false
	}
	for i := end; i < len(rest); i++ {
		if !isSpaceOrTab(rest[i]) {
			return false
		}
	}
	return true
}

// scanCompleteTag scans a single open or close tag starting at s[0]=='<'
// and returns the index just past its closing '>'.
func scanCompleteTag(s string) (end int, ok bool) {
	if s == "" || s[0] != '<' {
		return 0, false
	}
	i := 1
	closing := false
	if i < len(s) && s[i] == '/' {
		closing = true
		i++
	}
	name, afterName := scanTagName(s[i:])
	if name == "" {
		return 0, false
	}
	rest := afterName
	if closing {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" || rest[0] != '>' {
			return 0, false
		}
		return len(s) - len(rest) + 1, true
	}
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return 0, false
		}
		if rest[0] == '>' {
			return len(s) - len(rest) + 1, true
		}
		if strings.HasPrefix(rest, "/>") {
			return len(s) - len(rest) + 2, true
		}
		attrName, afterAttr := scanTagName(rest)
		if attrName == "" {
			return 0, false
		}
		rest = afterAttr
		trimmed := strings.TrimLeft(rest, " \t")
		if strings.HasPrefix(trimmed, "=") {
			trimmed = trimmed[1:]
			trimmed = strings.TrimLeft(trimmed, " \t")
			if trimmed == "" {
				return 0, false
			}
			switch trimmed[0] {
			case '"':
				idx := strings.IndexByte(trimmed[1:], '"')
				if idx < 0 {
					return 0, false
				}
				rest = trimmed[1+idx+1:]
			case '\'':
				idx := strings.IndexByte(trimmed[1:], '\'')
				if idx < 0 {
					return 0, false
				}
				rest = trimmed[1+idx+1:]
			default:
				j := 0
				for j < len(trimmed) && !isSpaceOrTab(trimmed[j]) && trimmed[j] != '>' {
					j++
				}
				if j == 0 {
					return 0, false
				}
				rest = trimmed[j:]
			}
		} else {
			rest = trimmed
		}
	}
}

func containsAnyCaseInsensitive(s string, needles ...string) bool {
	for _, n := range needles {
		if containsCaseInsensitive(s, n) {
			return true
		}
	}
	return false
}

// collectHTMLBlock consumes lines[pos:] up to and including the first line
// for which endLine reports true (inclusiveEnd), or to end of input.
// inclusiveEnd controls whether the line satisfying endLine is itself part
// of the emitted HTML text; the blank-line end conditions are exclusive.
func collectHTMLBlock(lines []string, pos int, endLine func(string) bool, inclusiveEnd bool) (htmlText string, consumed int, ok bool) {
	var b strings.Builder
	i := pos
	for i < len(lines) {
		line := lines[i]
		matches := endLine(line)
		if matches && !inclusiveEnd {
			break
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		i++
		if matches {
			break
		}
	}
	return b.String(), i - pos, true
}
