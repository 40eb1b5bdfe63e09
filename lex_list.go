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

// leadingWhitespaceWidth measures the column width of line's leading run of
// spaces and tabs (expanding tabs to tabStopSize), with no upper bound, and
// returns the remainder of the line after that run.
func leadingWhitespaceWidth(line string) (width int, rest string) {
	col := 0
	i := 0
	for i < len(line) {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += tabStopSize - col%tabStopSize
		default:
			return col, line[i:]
		}
		i++
	}
	return col, ""
}

// bulletMarker recognizes a single bullet-list marker line: 0-3 leading
// spaces, one of '-', '*', '+', then either end of line or a spacebar (a
// tab does not separate a bullet marker from its content). It reports the
// marker byte, the column the item's content starts at, and the content
// itself (which may be empty, for a marker-only item).
func bulletMarker(line string) (marker byte, contentCol int, content string, ok bool) {
	indent, rest := leadingWhitespaceWidth(line)
	if indent > 3 || rest == "" {
		return 0, 0, "", false
	}
	switch rest[0] {
	case '-', '*', '+':
		marker = rest[0]
	default:
		return 0, 0, "", false
	}
	rest = rest[1:]
	if rest == "" {
		return marker, indent + 2, "", true
	}
	if rest[0] != ' ' {
		return 0, 0, "", false
	}
	spaces := 0
	for spaces < len(rest) && isSpaceOrTab(rest[spaces]) && spaces < 4 {
		spaces++
	}
	if spaces == 0 {
		spaces = 1
	}
	return marker, indent + 1 + spaces, strings.TrimLeft(rest, " \t"), true
}

// orderedMarker recognizes a single ordered-list marker line: 0-3 leading
// spaces, 1-9 ASCII digits, then '.' or ')', then end of line or a
// spacebar (a tab does not separate the marker from its content).
func orderedMarker(line string) (num int, delim byte, contentCol int, content string, ok bool) {
	indent, rest := leadingWhitespaceWidth(line)
	if indent > 3 || rest == "" {
		return 0, 0, 0, "", false
	}
	digits := 0
	for digits < len(rest) && isDigit(rest[digits]) {
		digits++
	}
	if digits == 0 || digits > 9 {
		return 0, 0, 0, "", false
	}
	n := 0
	for i := 0; i < digits; i++ {
		n = n*10 + int(rest[i]-'0')
	}
	rest = rest[digits:]
	if rest == "" || (rest[0] != '.' && rest[0] != ')') {
		return 0, 0, 0, "", false
	}
	delim = rest[0]
	rest = rest[1:]
	col := indent + digits + 1
	if rest == "" {
		return n, delim, col + 1, "", true
	}
	if rest[0] != ' ' {
		return 0, 0, 0, "", false
	}
	spaces := 0
	for spaces < len(rest) && isSpaceOrTab(rest[spaces]) && spaces < 4 {
		spaces++
	}
	if spaces == 0 {
		spaces = 1
	}
	return n, delim, col + spaces, strings.TrimLeft(rest, " \t"), true
}

// taskMarker strips a leading GFM task-list marker ("[ ] ", "[x] ", "[X] ")
// from an item's first line of content, if present.
func taskMarker(content string) (state TaskState, rest string) {
	if len(content) < 3 || content[0] != '[' || content[2] != ']' {
		return TaskNone, content
	}
	switch content[1] {
	case ' ':
		state = TaskIncomplete
	case 'x', 'X':
		state = TaskComplete
	default:
		return TaskNone, content
	}
	rest = content[3:]
	if rest != "" && !isSpaceOrTab(rest[0]) {
		return TaskNone, content
	}
	return state, strings.TrimLeft(rest, " \t")
}

// lexUnorderedList recognizes a maximal run of bullet-list items sharing the
// same marker character, per §4.3: each item's first line carries the
// marker, and subsequent lines belong to the same item only by being
// indented at least to the marker's content column. A less-indented line
// ends the list; lazy continuation lines are not taken.
func lexUnorderedList(lines []string, pos int) (items []listItemRaw, consumed int, ok bool) {
	marker, _, _, ok := bulletMarker(lines[pos])
	if !ok {
		return nil, 0, false
	}

	i := pos
	for i < len(lines) {
		m, contentCol, content, ok := bulletMarker(lines[i])
		if !ok || m != marker {
			break
		}
		state, content := taskMarker(content)
		var body strings.Builder
		body.WriteString(content)
		i++

		for i < len(lines) {
			line := lines[i]
			if lexBlankLine(line) {
				break
			}
			if _, _, _, ok := bulletMarker(line); ok {
				break
			}
			width, rest := leadingWhitespaceWidth(line)
			if width < contentCol {
				break
			}
			if body.Len() > 0 {
				body.WriteByte('\n')
			}
			body.WriteString(rest)
			i++
		}
		items = append(items, listItemRaw{body: body.String(), task: state})

		// A single blank line may separate items; two in a row, or a
		// blank line not followed by another marker of this kind, ends
		// the list.
		if i < len(lines) && lexBlankLine(lines[i]) {
			if i+1 >= len(lines) || lexBlankLine(lines[i+1]) {
				i++
				break
			}
			if m2, _, _, ok2 := bulletMarker(lines[i+1]); !ok2 || m2 != marker {
				break
			}
			i++
		}
	}

	if len(items) == 0 {
		return nil, 0, false
	}
	return items, i - pos, true
}

// lexOrderedList recognizes a maximal run of ordered-list items sharing the
// same delimiter character, per §4.3. When inParagraphContext is true (the
// previous raw block was an ordinary paragraph line), the list can only
// start if the first item's number is 1, matching CommonMark's rule against
// ordered lists interrupting paragraphs at arbitrary start numbers.
func lexOrderedList(lines []string, pos int, inParagraphContext bool) (start int, items []listItemRaw, consumed int, ok bool) {
	num, delim, _, _, ok := orderedMarker(lines[pos])
	if !ok {
		return 0, nil, 0, false
	}
	if inParagraphContext && num != 1 {
		return 0, nil, 0, false
	}
	start = num

	i := pos
	for i < len(lines) {
		_, d, contentCol, content, ok := orderedMarker(lines[i])
		if !ok || d != delim {
			break
		}
		var body strings.Builder
		body.WriteString(content)
		i++

		for i < len(lines) {
			line := lines[i]
			if lexBlankLine(line) {
				break
			}
			if _, _, _, _, ok := orderedMarker(line); ok {
				break
			}
			width, rest := leadingWhitespaceWidth(line)
			if width < contentCol {
				break
			}
			if body.Len() > 0 {
				body.WriteByte('\n')
			}
			body.WriteString(rest)
			i++
		}
		items = append(items, listItemRaw{body: body.String()})

		if i < len(lines) && lexBlankLine(lines[i]) {
			if i+1 >= len(lines) || lexBlankLine(lines[i+1]) {
				i++
				break
			}
			if _, d2, _, _, ok2 := orderedMarker(lines[i+1]); !ok2 || d2 != delim {
				break
			}
			i++
		}
	}

	if len(items) == 0 {
		return 0, nil, 0, false
	}
	return start, items, i - pos, true
}
