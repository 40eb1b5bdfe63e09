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

// Package htmlrender converts a parsed commonmark document into HTML. It is
// a consumer of the commonmark package's public Block/Inline tree, not part
// of the parser itself.
package htmlrender

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/atom"

	mdcore "github.com/inkwell-md/mdcore"
)

// SoftBreakBehavior controls how a paragraph's embedded line break (a '\n'
// in an Inline's Text that didn't qualify as a hard line break) is
// rendered.
type SoftBreakBehavior int

const (
	// SoftBreakPreserve renders a soft break as a literal newline.
	SoftBreakPreserve SoftBreakBehavior = iota
	// SoftBreakSpace renders a soft break as a single space.
	SoftBreakSpace
	// SoftBreakHarden renders a soft break as a hard line break (<br>).
	SoftBreakHarden
)

// HTMLRenderer converts commonmark.Block trees into HTML.
//
// CommonMark permits raw HTML, which can introduce XSS vulnerabilities when
// the source is untrusted. FilterTag and IgnoreRaw let a caller reduce that
// risk without a full sanitizer pass.
type HTMLRenderer struct {
	// SoftBreakBehavior determines how soft line breaks are rendered.
	SoftBreakBehavior SoftBreakBehavior
	// IgnoreRaw, if true, drops HTML blocks and raw inline HTML entirely
	// instead of passing them through.
	IgnoreRaw bool
	// FilterTag, if non-nil, reports whether an element with the given
	// lowercase tag name should have its opening '<' escaped rather than
	// passed through verbatim.
	FilterTag func(tag string) bool
}

// Render writes blocks as HTML to w. Links and images in blocks already
// carry their resolved destinations, so refs is not consulted. It returns
// the first write error encountered, if any.
func Render(w io.Writer, blocks []mdcore.Block, refs map[string]mdcore.LinkDefinition) error {
	return (&HTMLRenderer{}).Render(w, blocks, refs)
}

// Render writes blocks as HTML to w using r's options.
func (r *HTMLRenderer) Render(w io.Writer, blocks []mdcore.Block, refs map[string]mdcore.LinkDefinition) error {
	var buf []byte
	buf = r.AppendBlocks(buf, blocks, refs)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("render markdown to html: %w", err)
	}
	return nil
}

// AppendBlocks appends the rendered HTML of blocks to dst and returns the
// resulting slice.
func (r *HTMLRenderer) AppendBlocks(dst []byte, blocks []mdcore.Block, refs map[string]mdcore.LinkDefinition) []byte {
	state := &renderState{HTMLRenderer: r, dst: dst, refs: refs}
	for _, b := range blocks {
		state.block(b)
	}
	return state.dst
}

type renderState struct {
	*HTMLRenderer
	dst  []byte
	refs map[string]mdcore.LinkDefinition
}

func (r *renderState) openTag(name atom.Atom) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) block(b mdcore.Block) {
	switch b.Kind {
	case mdcore.ParagraphKind:
		r.openTag(atom.P)
		r.inlines(b.Inlines)
		r.closeTag(atom.P)
		r.dst = append(r.dst, '\n')

	case mdcore.HeadingKind:
		tag := headingAtom(b.Level)
		r.openTag(tag)
		r.inlines(b.Inlines)
		r.closeTag(tag)
		r.dst = append(r.dst, '\n')

	case mdcore.BlockQuoteKind:
		r.openTag(atom.Blockquote)
		r.dst = append(r.dst, '\n')
		for _, child := range b.Children {
			r.block(child)
		}
		r.closeTag(atom.Blockquote)
		r.dst = append(r.dst, '\n')

	case mdcore.CodeBlockKind:
		r.dst = append(r.dst, "<pre><code"...)
		if b.Language != "" {
			r.dst = append(r.dst, ` class="language-`...)
			r.dst = escapeHTML(r.dst, []byte(b.Language))
			r.dst = append(r.dst, '"')
		}
		r.dst = append(r.dst, '>')
		r.dst = escapeHTML(r.dst, []byte(b.Body))
		if b.Body != "" {
			r.dst = append(r.dst, '\n')
		}
		r.dst = append(r.dst, "</code></pre>\n"...)

	case mdcore.ThematicBreakKind:
		r.dst = append(r.dst, "<hr />\n"...)

	case mdcore.UnorderedListKind:
		r.openTag(atom.Ul)
		r.dst = append(r.dst, '\n')
		for _, item := range b.Items {
			r.dst = append(r.dst, "<li"...)
			switch item.Task {
			case mdcore.TaskIncomplete:
				r.dst = append(r.dst, `><input disabled="" type="checkbox" /> `...)
			case mdcore.TaskComplete:
				r.dst = append(r.dst, `><input checked="" disabled="" type="checkbox" /> `...)
			default:
				r.dst = append(r.dst, '>')
			}
			r.inlines(item.Inlines)
			r.dst = append(r.dst, "</li>\n"...)
		}
		r.closeTag(atom.Ul)
		r.dst = append(r.dst, '\n')

	case mdcore.OrderedListKind:
		r.dst = append(r.dst, "<ol"...)
		if b.Start != 1 {
			fmt.Fprintf((*byteSliceWriter)(&r.dst), ` start="%d"`, b.Start)
		}
		r.dst = append(r.dst, ">\n"...)
		for _, inlines := range b.OrderedItems {
			r.dst = append(r.dst, "<li>"...)
			r.inlines(inlines)
			r.dst = append(r.dst, "</li>\n"...)
		}
		r.closeTag(atom.Ol)
		r.dst = append(r.dst, '\n')

	case mdcore.TableKind:
		r.table(b)

	case mdcore.HTMLBlockKind:
		if !r.IgnoreRaw {
			r.dst = r.filterRaw(b.HTML)
			r.dst = append(r.dst, '\n')
		}
	}
}

func (r *renderState) table(b mdcore.Block) {
	r.openTag(atom.Table)
	r.dst = append(r.dst, '\n')
	r.openTag(atom.Thead)
	r.dst = append(r.dst, '\n')
	r.dst = append(r.dst, "<tr>\n"...)
	for _, cell := range b.Header {
		r.dst = append(r.dst, "<th"...)
		if align := cellAlignAttr(cell.Alignment); align != "" {
			r.dst = append(r.dst, align...)
		}
		r.dst = append(r.dst, '>')
		r.inlines(cell.Inlines)
		r.dst = append(r.dst, "</th>\n"...)
	}
	r.dst = append(r.dst, "</tr>\n"...)
	r.closeTag(atom.Thead)
	r.dst = append(r.dst, '\n')
	r.closeTag(atom.Table)
	r.dst = append(r.dst, '\n')
}

func cellAlignAttr(a mdcore.ColumnAlign) string {
	switch a {
	case mdcore.AlignLeft:
		return ` style="text-align: left"`
	case mdcore.AlignCenter:
		return ` style="text-align: center"`
	case mdcore.AlignRight:
		return ` style="text-align: right"`
	default:
		return ""
	}
}

func headingAtom(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	case 3:
		return atom.H3
	case 4:
		return atom.H4
	case 5:
		return atom.H5
	default:
		return atom.H6
	}
}

func (r *renderState) inlines(inlines []mdcore.Inline) {
	for _, in := range inlines {
		r.inline(in)
	}
}

func (r *renderState) inline(in mdcore.Inline) {
	switch in.Kind {
	case mdcore.TextKind:
		r.dst = r.appendSoftBreaks(in.Text)

	case mdcore.CodeSpanKind:
		r.openTag(atom.Code)
		r.dst = escapeHTML(r.dst, []byte(in.Text))
		r.closeTag(atom.Code)

	case mdcore.EmphasisKind:
		r.openTag(atom.Em)
		r.inlines(in.Children)
		r.closeTag(atom.Em)

	case mdcore.StrongKind:
		r.openTag(atom.Strong)
		r.inlines(in.Children)
		r.closeTag(atom.Strong)

	case mdcore.LinkKind:
		r.dst = append(r.dst, "<a href=\""...)
		r.dst = escapeHTML(r.dst, []byte(NormalizeURI(in.Destination)))
		r.dst = append(r.dst, '"')
		if in.TitlePresent {
			r.dst = append(r.dst, ` title="`...)
			r.dst = escapeHTML(r.dst, []byte(in.Title))
			r.dst = append(r.dst, '"')
		}
		r.dst = append(r.dst, '>')
		r.inlines(in.Children)
		r.dst = append(r.dst, "</a>"...)

	case mdcore.ImageKind:
		r.dst = append(r.dst, "<img src=\""...)
		r.dst = escapeHTML(r.dst, []byte(NormalizeURI(in.Destination)))
		r.dst = append(r.dst, `" alt="`...)
		r.dst = escapeHTML(r.dst, []byte(plainText(in.Children)))
		r.dst = append(r.dst, '"')
		if in.TitlePresent {
			r.dst = append(r.dst, ` title="`...)
			r.dst = escapeHTML(r.dst, []byte(in.Title))
			r.dst = append(r.dst, '"')
		}
		r.dst = append(r.dst, " />"...)

	case mdcore.HardLineBreakKind:
		r.dst = append(r.dst, "<br />\n"...)

	case mdcore.HTMLInlineKind:
		if !r.IgnoreRaw {
			r.dst = r.filterRaw(in.Text)
		}
	}
}

func (r *renderState) appendSoftBreaks(text string) []byte {
	if !strings.Contains(text, "\n") {
		return escapeHTML(r.dst, []byte(text))
	}
	lines := strings.Split(text, "\n")
	dst := r.dst
	for i, line := range lines {
		if i > 0 {
			switch r.SoftBreakBehavior {
			case SoftBreakSpace:
				dst = append(dst, ' ')
			case SoftBreakHarden:
				dst = append(dst, "<br />\n"...)
			default:
				dst = append(dst, '\n')
			}
		}
		dst = escapeHTML(dst, []byte(line))
	}
	return dst
}

// filterRaw appends a raw HTML span, escaping its leading '<' if FilterTag
// rejects the tag name it starts with.
func (r *renderState) filterRaw(raw string) []byte {
	if r.FilterTag == nil {
		return append(r.dst, raw...)
	}
	name := rawTagName(raw)
	if name == "" || !r.FilterTag(strings.ToLower(name)) {
		return append(r.dst, raw...)
	}
	dst := append(r.dst, "&lt;"...)
	return append(dst, raw[1:]...)
}

func rawTagName(raw string) string {
	i := 1
	if i < len(raw) && raw[i] == '/' {
		i++
	}
	start := i
	for i < len(raw) && (isAlphaByte(raw[i]) || isDigitByte(raw[i]) || raw[i] == '-') {
		i++
	}
	return raw[start:i]
}

func isAlphaByte(b byte) bool { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }
func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func plainText(inlines []mdcore.Inline) string {
	var sb strings.Builder
	var walk func([]mdcore.Inline)
	walk = func(ins []mdcore.Inline) {
		for _, in := range ins {
			switch in.Kind {
			case mdcore.TextKind, mdcore.CodeSpanKind:
				sb.WriteString(in.Text)
			default:
				walk(in.Children)
			}
		}
	}
	walk(inlines)
	return sb.String()
}

// FilterTagGFM matches the GitHub Flavored Markdown tagfilter extension: it
// reports whether tag is one of the small set of elements GFM always
// escapes when it appears as raw HTML.
func FilterTagGFM(tag string) bool {
	switch atom.Lookup([]byte(tag)) {
	case atom.Title, atom.Textarea, atom.Style, atom.Xmp, atom.Iframe,
		atom.Noembed, atom.Noframes, atom.Script, atom.Plaintext:
		return true
	default:
		return false
	}
}

// escapeHTML appends the HTML-escaped form of src to dst.
func escapeHTML(dst, src []byte) []byte {
	start := 0
	for i, b := range src {
		var esc string
		switch b {
		case '&':
			esc = "&amp;"
		case '\'':
			esc = "&#39;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			esc = "&quot;"
		default:
			continue
		}
		dst = append(dst, src[start:i]...)
		dst = append(dst, esc...)
		start = i + 1
	}
	return append(dst, src[start:]...)
}

// NormalizeURI percent-encodes any byte in s that isn't an RFC 3986
// reserved or unreserved URI character, leaving existing percent-escapes
// alone. This is the transform CommonMark applies to link destinations
// before they're written into an href or src attribute.
func NormalizeURI(s string) string {
	const safeSet = `;/?:@&=+$,-_.!~*'()#`
	var sb strings.Builder
	sb.Grow(len(s))
	skip := 0
	var buf [utf8.UTFMax]byte
	for i, c := range s {
		if skip > 0 {
			skip--
			sb.WriteRune(c)
			continue
		}
		switch {
		case c == '%':
			if i+2 < len(s) && isHexByte(s[i+1]) && isHexByte(s[i+2]) {
				skip = 2
				sb.WriteByte('%')
			} else {
				sb.WriteString("%25")
			}
		case c < 0x80 && (isAlphaByte(byte(c)) || isDigitByte(byte(c))) || strings.ContainsRune(safeSet, c):
			sb.WriteRune(c)
		default:
			n := utf8.EncodeRune(buf[:], c)
			for _, b := range buf[:n] {
				sb.WriteByte('%')
				sb.WriteByte(hexDigit(b >> 4))
				sb.WriteByte(hexDigit(b & 0x0f))
			}
		}
	}
	return sb.String()
}

func isHexByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexDigit(x byte) byte {
	if x < 0xa {
		return '0' + x
	}
	return 'a' + x - 0xa
}

// byteSliceWriter lets fmt.Fprintf append directly into a []byte.
type byteSliceWriter []byte

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	*w = append(*w, p...)
	return len(p), nil
}
