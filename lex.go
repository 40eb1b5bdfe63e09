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

// lexLine attempts every raw-block lexer alternative, in the order fixed by
// §4.2, starting at lines[pos]. hasPrev/prevKind describe the most recently
// pushed raw block, which several alternatives consult (indented code
// blocks don't start a paragraph continuation; ordered lists starting a
// paragraph context must begin at 1).
//
// A successful link reference definition registers itself into st and
// reports producedBlock=false: it contributes no raw block of its own.
func lexLine(lines []string, pos int, st *parserState) (rb rawBlock, consumed int, producedBlock, matched bool) {
	if pos >= len(lines) {
		return rawBlock{}, 0, false, false
	}
	line := lines[pos]

	prev := st.top()
	hasPrev := prev != nil
	var prevKind rawBlockKind
	if hasPrev {
		prevKind = prev.kind
	}

	if label, def, n, ok := lexLinkRefDef(lines, pos); ok {
		st.addLinkDef(label, def)
		return rawBlock{}, n, false, true
	}

	if lexBlankLine(line) {
		return rawBlock{kind: rbBlank}, 1, true, true
	}

	if hasPrev && prevKind == rbBody {
		if level, ok := lexSetextUnderline(line); ok {
			prev.kind = rbHeading
			prev.level = level
			return rawBlock{}, 1, false, true
		}
	}

	if text, ok := lexBlockQuoteMarker(line); ok {
		return rawBlock{kind: rbBlockQuote, text: text}, 1, true, true
	}

	if body, lang, n, ok := lexFencedCodeBlock(lines, pos); ok {
		return rawBlock{kind: rbCodeBlock, text: body, language: lang}, n, true, true
	}

	if !(hasPrev && prevKind == rbBody) {
		if text, ok := lexIndentedCodeBlock(line); ok {
			return rawBlock{kind: rbIndentedCodeBlock, text: text}, 1, true, true
		}
	}

	if lexThematicBreak(line) {
		return rawBlock{kind: rbThematicBreak}, 1, true, true
	}

	if items, n, ok := lexUnorderedList(lines, pos); ok {
		return rawBlock{kind: rbUnorderedList, items: items}, n, true, true
	}

	if start, items, n, ok := lexOrderedList(lines, pos, hasPrev && prevKind == rbBody); ok {
		return rawBlock{kind: rbOrderedList, start: start, items: items}, n, true, true
	}

	if level, text, ok := lexATXHeading(line); ok {
		return rawBlock{kind: rbHeading, level: level, text: text}, 1, true, true
	}

	if !autolinkGuardsParagraph(line) {
		if htmlText, n, ok := lexHTMLBlock(lines, pos, hasPrev && prevKind == rbBody); ok {
			return rawBlock{kind: rbHTML, html: htmlText}, n, true, true
		}
	}

	if header, n, ok := lexTableHeader(lines, pos); ok {
		return rawBlock{kind: rbTable, header: header}, n, true, true
	}

	// Paragraph line: the fallback that always matches.
	return rawBlock{kind: rbBody, text: line}, 1, true, true
}

func lexBlankLine(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return false
		}
	}
	return true
}

// lexBlockQuoteMarker recognizes "0-3 leading spaces, then '>', optional
// space, then the rest of the line" per §4.2 step 5.
func lexBlockQuoteMarker(line string) (interior string, ok bool) {
	rest, ok := consumeUpTo3Indent(line)
	if !ok || rest == "" || rest[0] != '>' {
		return "", false
	}
	rest = rest[1:]
	if len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
		rest = rest[1:]
	}
	return rest, true
}

func lexIndentedCodeBlock(line string) (body string, ok bool) {
	return consumeIndentedCodePrefix(line)
}

// lexSetextUnderline recognizes a setext heading underline: 0-3 leading
// spaces, then a run of only '=' (level 1) or only '-' (level 2), then
// only trailing spaces to end of line. Unlike a thematic break, no spaces
// may appear within the run itself.
func lexSetextUnderline(line string) (level int, ok bool) {
	rest, okIndent := consumeUpTo3Indent(line)
	if !okIndent || rest == "" {
		return 0, false
	}
	want := rest[0]
	if want != '=' && want != '-' {
		return 0, false
	}
	i := 0
	for i < len(rest) && rest[i] == want {
		i++
	}
	for j := i; j < len(rest); j++ {
		if rest[j] != ' ' && rest[j] != '\t' {
			return 0, false
		}
	}
	if want == '=' {
		return 1, true
	}
	return 2, true
}

// lexThematicBreak recognizes "0-3 leading spaces, then >=3 of the same
// '-'/'*'/'_' character, with any spaces or tabs between and after them,
// and nothing else to end of line".
func lexThematicBreak(line string) bool {
	rest, ok := consumeUpTo3Indent(line)
	if !ok {
		return false
	}
	n := 0
	var want byte
	for i := 0; i < len(rest); i++ {
		switch b := rest[i]; b {
		case '-', '_', '*':
			if n == 0 {
				want = b
			} else if b != want {
				return false
			}
			n++
		case ' ', '\t':
			// ignore
		default:
			return false
		}
	}
	return n >= 3
}

// lexATXHeading recognizes 1-6 '#' characters, then space-or-end-of-line,
// then the heading body, with any trailing '#' run (and its preceding
// whitespace) stripped.
func lexATXHeading(line string) (level int, text string, ok bool) {
	rest, ok := consumeUpTo3Indent(line)
	if !ok {
		return 0, "", false
	}
	for level < len(rest) && rest[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	i := level
	if i >= len(rest) {
		return level, "", true
	}
	if rest[i] != ' ' && rest[i] != '\t' {
		return 0, "", false
	}
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	contentStart := i
	contentEnd := len(rest)
	for contentEnd > contentStart && isSpaceOrTab(rest[contentEnd-1]) {
		contentEnd--
	}
	j := contentEnd
	for j > contentStart && rest[j-1] == '#' {
		j--
	}
	if j < contentEnd && (j == contentStart || isSpaceOrTab(rest[j-1])) {
		contentEnd = j
		for contentEnd > contentStart && isSpaceOrTab(rest[contentEnd-1]) {
			contentEnd--
		}
	}
	return level, rest[contentStart:contentEnd], true
}

// autolinkGuardsParagraph implements the pre-emption described in §4.2
// step 2: a line starting with '<' that looks like it opens an autolink or
// email autolink (space after '<', '>' right after '<', or a scheme-like
// alpha run followed by ':'/'@'/'\\'/'+'/'.') is treated as an ordinary
// paragraph line rather than attempted as a raw HTML block.
func autolinkGuardsParagraph(line string) bool {
	if len(line) == 0 || line[0] != '<' {
		return false
	}
	rest := line[1:]
	if rest == "" {
		return false
	}
	switch rest[0] {
	case ' ', '>':
		return true
	}
	i := 0
	for i < len(rest) && isAlpha(rest[i]) {
		i++
	}
	if i == 0 || i >= len(rest) {
		return false
	}
	switch rest[i] {
	case ':', '@', '\\', '+', '.':
		return true
	default:
		return false
	}
}
