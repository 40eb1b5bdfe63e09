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

// lexTableHeader recognizes a GFM table header: a pipe-delimited header row
// immediately followed by a delimiter row made up only of '-', ':', and
// whitespace cells (each naming that column's alignment). Both lines are
// consumed; the alignment row itself produces no content of its own.
func lexTableHeader(lines []string, pos int) (header []tableCellRaw, consumed int, ok bool) {
	if pos+1 >= len(lines) {
		return nil, 0, false
	}
	headerLine, okIndent := consumeUpTo3Indent(lines[pos])
	if !okIndent || !strings.Contains(headerLine, "|") {
		return nil, 0, false
	}
	delimLine, okIndent := consumeUpTo3Indent(lines[pos+1])
	if !okIndent {
		return nil, 0, false
	}

	headerCells := splitTableRow(headerLine)
	aligns, ok := parseDelimiterRow(delimLine)
	if !ok || len(headerCells) == 0 || len(headerCells) != len(aligns) {
		return nil, 0, false
	}

	header = make([]tableCellRaw, len(headerCells))
	for i, text := range headerCells {
		header[i] = tableCellRaw{text: text, align: aligns[i]}
	}
	return header, 2, true
}

// splitTableRow splits a table row on unescaped '|' characters, trimming
// one optional leading and trailing pipe and surrounding whitespace from
// each cell.
func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, unescapedTrailingPipe(trimmed))

	var cells []string
	var cur strings.Builder
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] == '\\' && i+1 < len(trimmed) && trimmed[i+1] == '|' {
			cur.WriteByte('|')
			i++
			continue
		}
		if trimmed[i] == '|' {
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteByte(trimmed[i])
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

// unescapedTrailingPipe returns "|" if s ends with an unescaped pipe
// (suitable for use with strings.TrimSuffix), else "".
func unescapedTrailingPipe(s string) string {
	if !strings.HasSuffix(s, "|") {
		return ""
	}
	backslashes := 0
	for i := len(s) - 2; i >= 0 && s[i] == '\\'; i-- {
		backslashes++
	}
	if backslashes%2 != 0 {
		return ""
	}
	return "|"
}

// parseDelimiterRow parses a table delimiter row into one ColumnAlign per
// cell. A cell must consist of optional ':' at either end around a run of
// one or more '-' characters.
func parseDelimiterRow(line string) (aligns []ColumnAlign, ok bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns = make([]ColumnAlign, len(cells))
	for i, cell := range cells {
		align, ok := parseDelimiterCell(cell)
		if !ok {
			return nil, false
		}
		aligns[i] = align
	}
	return aligns, true
}

func parseDelimiterCell(cell string) (ColumnAlign, bool) {
	left := strings.HasPrefix(cell, ":")
	if left {
		cell = cell[1:]
	}
	right := strings.HasSuffix(cell, ":")
	if right {
		cell = cell[:len(cell)-1]
	}
	if cell == "" {
		return AlignNone, false
	}
	for i := 0; i < len(cell); i++ {
		if cell[i] != '-' {
			return AlignNone, false
		}
	}
	switch {
	case left && right:
		return AlignCenter, true
	case left:
		return AlignLeft, true
	case right:
		return AlignRight, true
	default:
		return AlignNone, true
	}
}
