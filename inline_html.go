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

	"golang.org/x/net/html"
)

// decodeEntities resolves HTML5 named and numeric character references
// within inline text. golang.org/x/net/html already carries the full named
// entity table, so this defers to it rather than hand-rolling one.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// scanAutolink recognizes "<scheme:...>" and "<user@host>" autolinks
// starting at text[pos]=='<', per §4.5. The destination returned for an
// email autolink is prefixed with "mailto:", matching the scheme CommonMark
// renderers attach to it.
func scanAutolink(text string, pos int) (dest string, end int, isEmail bool, ok bool) {
	i := pos + 1
	start := i
	for i < len(text) && text[i] != '>' && text[i] != '<' && !isGFMWhitespace(text[i]) {
		i++
	}
	if i >= len(text) || text[i] != '>' || i == start {
		return "", 0, false, false
	}
	content := text[start:i]
	switch {
	case looksLikeURIScheme(content):
		return content, i + 1, false, true
	case looksLikeEmailAddress(content):
		return "mailto:" + content, i + 1, true, true
	default:
		return "", 0, false, false
	}
}

func looksLikeURIScheme(s string) bool {
	colon := strings.IndexByte(s, ':')
	if colon < 2 || colon > 32 {
		return false
	}
	scheme := s[:colon]
	if !isAlpha(scheme[0]) {
		return false
	}
	for i := 1; i < len(scheme); i++ {
		c := scheme[i]
		if !isAlphanumeric(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func looksLikeEmailAddress(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	const localExtra = ".!#$%&'*+/=?^_`{|}~-"
	for i := 0; i < len(local); i++ {
		c := local[i]
		if !isAlphanumeric(c) && !strings.ContainsRune(localExtra, rune(c)) {
			return false
		}
	}
	labels := strings.Split(domain, ".")
	for _, label := range labels {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !isAlphanumeric(c) && c != '-' {
				return false
			}
		}
	}
	return true
}

// autolinkInline builds the Link Inline an autolink resolves to: the
// visible text is the original bracketed content, not the mailto:-prefixed
// destination.
func autolinkInline(dest string, isEmail bool) Inline {
	text := dest
	if isEmail {
		text = strings.TrimPrefix(dest, "mailto:")
	}
	return Inline{
		Kind:        LinkKind,
		Destination: dest,
		Children:    []Inline{{Kind: TextKind, Text: text}},
	}
}

// scanRawInlineHTML recognizes a single raw HTML span: a complete open or
// close tag, an HTML comment, a processing instruction, a declaration, or a
// CDATA section, starting at text[pos]=='<'.
func scanRawInlineHTML(text string, pos int) (raw string, end int, ok bool) {
	rest := text[pos:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		if idx := strings.Index(rest[4:], "-->"); idx >= 0 {
			end = pos + 4 + idx + 3
			return text[pos:end], end, true
		}
		return "", 0, false
	case strings.HasPrefix(rest, "<?"):
		if idx := strings.Index(rest[2:], "?>"); idx >= 0 {
			end = pos + 2 + idx + 2
			return text[pos:end], end, true
		}
		return "", 0, false
	case strings.HasPrefix(rest, "<![CDATA["):
		if idx := strings.Index(rest[9:], "]]>"); idx >= 0 {
			end = pos + 9 + idx + 3
			return text[pos:end], end, true
		}
		return "", 0, false
	case len(rest) >= 3 && rest[1] == '!' && isAlpha(rest[2]):
		if idx := strings.IndexByte(rest[2:], '>'); idx >= 0 {
			end = pos + 2 + idx + 1
			return text[pos:end], end, true
		}
		return "", 0, false
	}
	if tagEnd, ok := scanCompleteTag(rest); ok {
		return rest[:tagEnd], pos + tagEnd, true
	}
	return "", 0, false
}
