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

// assembleRawBlocks drives the raw-block lexer over lines and applies the
// merge rules of §4.4, producing the flat sequence of raw blocks the tree
// mapper consumes, along with the link reference definitions discovered
// along the way. It's used both for the document's top-level lines and,
// recursively, for the interior lines of a block quote — each scope gets
// its own reference namespace, populated only from its own lines.
func assembleRawBlocks(lines []string) *parserState {
	st := &parserState{links: &linkDefTable{}}
	pos := 0
	for pos < len(lines) {
		rb, n, produced, _ := lexLine(lines, pos, st)
		pos += n
		if !produced {
			continue
		}
		mergeOrPush(st, rb)
	}
	return st
}

// mergeOrPush appends rb to st, first trying the merge rules that fold a
// freshly lexed block into the one immediately preceding it.
func mergeOrPush(st *parserState, rb rawBlock) {
	top := st.top()
	if top == nil {
		st.push(rb)
		return
	}

	switch {
	case rb.kind == rbBody && top.kind == rbBody:
		top.text += "\n" + rb.text
		return
	case rb.kind == rbBody && top.kind == rbBlockQuote:
		// Lazy continuation: a plain paragraph line immediately after a
		// block quote continues the quote's last paragraph.
		top.text += "\n" + rb.text
		return
	case rb.kind == rbCodeBlock && top.kind == rbCodeBlock:
		top.text += "\n" + rb.text
		return
	case rb.kind == rbIndentedCodeBlock && top.kind == rbIndentedCodeBlock:
		top.text += "\n" + rb.text
		return
	case rb.kind == rbBlockQuote && top.kind == rbBlockQuote:
		top.text += "\n" + rb.text
		return
	}
	st.push(rb)
}
