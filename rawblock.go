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

// rawBlockKind tags the variant held by a rawBlock. Raw blocks are the
// intermediate, inline-unparsed representation produced by the raw-block
// lexer and consumed by the tree mapper.
type rawBlockKind int

const (
	rbNone rawBlockKind = iota
	rbBlank
	rbHeading
	rbBody
	rbBlockQuote
	rbCodeBlock
	rbIndentedCodeBlock
	rbThematicBreak
	rbUnorderedList
	rbOrderedList
	rbHTML
	rbTable
)

// listItemRaw is one item of an UnorderedList or OrderedList raw block.
type listItemRaw struct {
	body string
	task TaskState // only meaningful for rbUnorderedList
}

// tableCellRaw is one header cell of a Table raw block.
type tableCellRaw struct {
	text  string
	align ColumnAlign
}

// rawBlock is a tagged union over the block-level constructs the raw-block
// lexer recognizes. Only the fields relevant to Kind are populated.
type rawBlock struct {
	kind rawBlockKind

	level int    // rbHeading
	text  string // rbHeading, rbBody, rbBlockQuote, rbCodeBlock, rbIndentedCodeBlock

	language string // rbCodeBlock

	items []listItemRaw // rbUnorderedList, rbOrderedList
	start int           // rbOrderedList

	html string // rbHTML

	header []tableCellRaw // rbTable
}

// linkRefDef pairs a normalized label with the definition it names. The
// label stays in this package; LinkDefinition is the exported payload.
type linkRefDef struct {
	label string
	def   LinkDefinition
}

// LinkDefinition is the destination/title pair named by a link reference
// definition, keyed by its normalized label in the map Parse returns.
type LinkDefinition struct {
	Destination  string
	Title        string
	TitlePresent bool
}

// linkDefTable collects the link reference definitions discovered within
// one parsing scope. Each scope (the top-level document, and independently
// each recursively parsed block quote) builds its own table: a definition
// declared inside a block quote is only visible to inline content within
// that same quote, not hoisted to the enclosing document's namespace. This
// is a deliberate simplification of CommonMark's strictly document-global
// reference namespace.
type linkDefTable struct {
	defs []linkRefDef
}

// addLinkDef registers a link reference definition, keeping the first
// definition in source order when labels collide (spec invariant: label
// uniqueness, first wins).
func (t *linkDefTable) addLinkDef(label string, def LinkDefinition) {
	if label == "" {
		return
	}
	for _, existing := range t.defs {
		if existing.label == label {
			return
		}
	}
	t.defs = append(t.defs, linkRefDef{label: label, def: def})
}

// freeze builds the label -> definition map used by the inline pass.
func (t *linkDefTable) freeze() map[string]LinkDefinition {
	m := make(map[string]LinkDefinition, len(t.defs))
	for _, d := range t.defs {
		if _, exists := m[d.label]; !exists {
			m[d.label] = d.def
		}
	}
	return m
}

// parserState accumulates the results of one scope's block pass: the raw
// blocks in document order (so the last element is always the "top of
// stack" the merge rules in §4.4 examine) plus that scope's own link
// definition table.
type parserState struct {
	links     *linkDefTable
	rawBlocks []rawBlock
}

// top returns a pointer to the most recently pushed raw block, or nil if
// none has been pushed yet.
func (s *parserState) top() *rawBlock {
	if len(s.rawBlocks) == 0 {
		return nil
	}
	return &s.rawBlocks[len(s.rawBlocks)-1]
}

// push appends a freshly lexed raw block, unconditionally.
func (s *parserState) push(rb rawBlock) {
	s.rawBlocks = append(s.rawBlocks, rb)
}

// addLinkDef forwards to this scope's table.
func (s *parserState) addLinkDef(label string, def LinkDefinition) {
	s.links.addLinkDef(label, def)
}
