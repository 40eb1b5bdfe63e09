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

// BlockKind identifies the variant a Block holds. The zero value is never
// produced by Parse.
type BlockKind int

const (
	ParagraphKind BlockKind = 1 + iota
	HeadingKind
	BlockQuoteKind
	CodeBlockKind
	ThematicBreakKind
	UnorderedListKind
	OrderedListKind
	TableKind
	HTMLBlockKind
)

func (k BlockKind) String() string {
	switch k {
	case ParagraphKind:
		return "Paragraph"
	case HeadingKind:
		return "Heading"
	case BlockQuoteKind:
		return "BlockQuote"
	case CodeBlockKind:
		return "CodeBlock"
	case ThematicBreakKind:
		return "ThematicBreak"
	case UnorderedListKind:
		return "UnorderedList"
	case OrderedListKind:
		return "OrderedList"
	case TableKind:
		return "Table"
	case HTMLBlockKind:
		return "HTMLBlock"
	default:
		return "BlockKind(0)"
	}
}

// TaskState is the checkbox state of an unordered list item, if any.
type TaskState int

const (
	TaskNone TaskState = iota
	TaskIncomplete
	TaskComplete
)

// ColumnAlign is the alignment declared by a table's delimiter row.
type ColumnAlign int

const (
	AlignNone ColumnAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ListItem is one entry of an UnorderedList.
type ListItem struct {
	Task    TaskState
	Inlines []Inline
}

// TableCell is one header cell of a Table block.
type TableCell struct {
	Alignment ColumnAlign
	Inlines   []Inline
}

// Block is a structural element of a parsed document. Exactly one group of
// fields is meaningful, selected by Kind; see the per-field comments.
type Block struct {
	Kind BlockKind

	// HeadingKind
	Level int

	// ParagraphKind, HeadingKind
	Inlines []Inline

	// BlockQuoteKind
	Children []Block

	// CodeBlockKind
	Body     string
	Language string // "" means no language tag (includes indented code blocks)

	// UnorderedListKind
	Items []ListItem

	// OrderedListKind
	Start        int
	OrderedItems [][]Inline

	// TableKind
	Header []TableCell
	Rows   [][]TableCell

	// HTMLBlockKind
	HTML string
}

// InlineKind identifies the variant an Inline holds.
type InlineKind int

const (
	TextKind InlineKind = 1 + iota
	CodeSpanKind
	EmphasisKind
	StrongKind
	LinkKind
	ImageKind
	HardLineBreakKind
	HTMLInlineKind
)

func (k InlineKind) String() string {
	switch k {
	case TextKind:
		return "Text"
	case CodeSpanKind:
		return "CodeSpan"
	case EmphasisKind:
		return "Emphasis"
	case StrongKind:
		return "Strong"
	case LinkKind:
		return "Link"
	case ImageKind:
		return "Image"
	case HardLineBreakKind:
		return "HardLineBreak"
	case HTMLInlineKind:
		return "HTMLInline"
	default:
		return "InlineKind(0)"
	}
}

// Inline is a content element within a block's text, such as a run of
// plain text, emphasis, or a link.
type Inline struct {
	Kind InlineKind

	// TextKind, CodeSpanKind, HTMLInlineKind
	Text string

	// EmphasisKind, StrongKind, LinkKind, ImageKind
	Children []Inline

	// LinkKind, ImageKind
	Destination  string
	Title        string
	TitlePresent bool
}
