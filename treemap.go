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

// mapRawBlocks implements §4.6: it turns one scope's raw blocks into the
// public Block tree, tokenizing inline content against that scope's own
// frozen link reference table and recursing into block quotes. depth counts
// block-quote nesting so far; mapRawBlocks refuses to recurse past
// maxDepth, reporting a NestingLimitErrorKind error instead.
func mapRawBlocks(st *parserState, depth, maxDepth int) ([]Block, error) {
	refs := st.links.freeze()
	rbs := st.rawBlocks
	var blocks []Block

	for i := 0; i < len(rbs); i++ {
		rb := rbs[i]
		switch rb.kind {
		case rbBlank:
			continue

		case rbHeading:
			if rb.level < 1 || rb.level > 6 {
				return nil, &Error{Kind: HeadingLevelErrorKind, Msg: "heading level must be between 1 and 6"}
			}
			blocks = append(blocks, Block{Kind: HeadingKind, Level: rb.level, Inlines: tokenizeInlines(rb.text, refs)})

		case rbBody:
			if strings.TrimSpace(rb.text) == "" {
				continue
			}
			inlines := tokenizeInlines(rb.text, refs)
			if len(inlines) == 0 {
				continue
			}
			blocks = append(blocks, Block{Kind: ParagraphKind, Inlines: inlines})

		case rbBlockQuote:
			if depth+1 > maxDepth {
				return nil, &Error{Kind: NestingLimitErrorKind, Msg: "block quote nesting exceeds the configured limit"}
			}
			childSt := assembleRawBlocks(splitLines(rb.text))
			children, err := mapRawBlocks(childSt, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, Block{Kind: BlockQuoteKind, Children: children})

		case rbCodeBlock:
			blocks = append(blocks, Block{Kind: CodeBlockKind, Body: rb.text, Language: rb.language})

		case rbIndentedCodeBlock:
			blocks = append(blocks, Block{Kind: CodeBlockKind, Body: rb.text})

		case rbThematicBreak:
			blocks = append(blocks, Block{Kind: ThematicBreakKind})

		case rbUnorderedList:
			items := make([]ListItem, len(rb.items))
			for j, it := range rb.items {
				items[j] = ListItem{Task: it.task, Inlines: tokenizeInlines(it.body, refs)}
			}
			blocks = append(blocks, Block{Kind: UnorderedListKind, Items: items})

		case rbOrderedList:
			orderedItems := make([][]Inline, len(rb.items))
			for j, it := range rb.items {
				orderedItems[j] = tokenizeInlines(it.body, refs)
			}
			blocks = append(blocks, Block{Kind: OrderedListKind, Start: rb.start, OrderedItems: orderedItems})

		case rbHTML:
			blocks = append(blocks, Block{Kind: HTMLBlockKind, HTML: rb.html})

		case rbTable:
			// Header-only per this module's table support: body rows are
			// an explicit Non-goal, so Rows always stays nil.
			header := make([]TableCell, len(rb.header))
			for j, c := range rb.header {
				header[j] = TableCell{Alignment: c.align, Inlines: tokenizeInlines(c.text, refs)}
			}
			blocks = append(blocks, Block{Kind: TableKind, Header: header})
		}
	}
	return blocks, nil
}
