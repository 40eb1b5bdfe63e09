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

package htmlrender

import (
	"strings"
	"testing"

	mdcore "github.com/inkwell-md/mdcore"
	"github.com/inkwell-md/mdcore/internal/normhtml"
)

func renderString(t *testing.T, r *HTMLRenderer, source string) string {
	t.Helper()
	blocks, refs, err := mdcore.Parse(source, mdcore.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", source, err)
	}
	var sb strings.Builder
	if err := r.Render(&sb, blocks, refs); err != nil {
		t.Fatalf("Render(%q) error: %v", source, err)
	}
	return sb.String()
}

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "Paragraph",
			source: "hello *world*\n",
			want:   "<p>hello <em>world</em></p>\n",
		},
		{
			name:   "Heading",
			source: "## Title\n",
			want:   "<h2>Title</h2>\n",
		},
		{
			name:   "BlockQuote",
			source: "> quoted\n",
			want:   "<blockquote>\n<p>quoted</p>\n</blockquote>\n",
		},
		{
			name:   "FencedCodeBlock",
			source: "```go\nfmt.Println(1)\n```\n",
			want:   `<pre><code class="language-go">fmt.Println(1)` + "\n</code></pre>\n",
		},
		{
			name:   "ThematicBreak",
			source: "***\n",
			want:   "<hr />\n",
		},
		{
			name:   "UnorderedList",
			source: "- one\n- two\n",
			want:   "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n",
		},
		{
			name:   "TaskList",
			source: "- [ ] todo\n- [x] done\n",
			want: "<ul>\n" +
				`<li><input disabled="" type="checkbox" /> todo</li>` + "\n" +
				`<li><input checked="" disabled="" type="checkbox" /> done</li>` + "\n" +
				"</ul>\n",
		},
		{
			name:   "OrderedListWithStart",
			source: "3. one\n4. two\n",
			want:   `<ol start="3">` + "\n<li>one</li>\n<li>two</li>\n</ol>\n",
		},
		{
			name:   "Link",
			source: "[go](https://go.dev \"Go\")\n",
			want:   `<p><a href="https://go.dev" title="Go">go</a></p>` + "\n",
		},
		{
			name:   "Image",
			source: "![alt text](/img.png)\n",
			want:   `<p><img src="/img.png" alt="alt text" /></p>` + "\n",
		},
		{
			name:   "AmpersandAndAngleBracketsEscaped",
			source: "a & b < c\n",
			want:   "<p>a &amp; b &lt; c</p>\n",
		},
		{
			name:   "TableHeaderOnly",
			source: "| a | b |\n| :- | -: |\n",
			want: "<table>\n<thead>\n<tr>\n" +
				`<th style="text-align: left">a</th>` + "\n" +
				`<th style="text-align: right">b</th>` + "\n" +
				"</tr>\n</thead>\n</table>\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := renderString(t, &HTMLRenderer{}, test.source)
			gotNorm := normhtml.NormalizeHTML([]byte(got))
			wantNorm := normhtml.NormalizeHTML([]byte(test.want))
			if string(gotNorm) != string(wantNorm) {
				t.Errorf("Render(%q) = %q; want %q (normalized %q vs %q)", test.source, got, test.want, gotNorm, wantNorm)
			}
		})
	}
}

func TestSoftBreakBehavior(t *testing.T) {
	const source = "foo\nbar\n"

	tests := []struct {
		behavior SoftBreakBehavior
		want     string
	}{
		{SoftBreakPreserve, "<p>foo\nbar</p>\n"},
		{SoftBreakSpace, "<p>foo bar</p>\n"},
	}
	for _, test := range tests {
		r := &HTMLRenderer{SoftBreakBehavior: test.behavior}
		got := renderString(t, r, source)
		if got != test.want {
			t.Errorf("with SoftBreakBehavior=%d, Render(%q) = %q; want %q", test.behavior, source, got, test.want)
		}
	}
}

func TestIgnoreRaw(t *testing.T) {
	const source = "before\n\n<div>raw</div>\n\nafter <b>bold</b> text\n"

	withRaw := renderString(t, &HTMLRenderer{}, source)
	if !strings.Contains(withRaw, "<div>raw</div>") || !strings.Contains(withRaw, "<b>bold</b>") {
		t.Errorf("Render with IgnoreRaw=false dropped raw HTML: %q", withRaw)
	}

	withoutRaw := renderString(t, &HTMLRenderer{IgnoreRaw: true}, source)
	if strings.Contains(withoutRaw, "<div>") || strings.Contains(withoutRaw, "<b>") {
		t.Errorf("Render with IgnoreRaw=true kept raw HTML: %q", withoutRaw)
	}
}

func TestFilterTagGFM(t *testing.T) {
	const source = "<script>alert(1)</script>\n"

	r := &HTMLRenderer{FilterTag: FilterTagGFM}
	got := renderString(t, r, source)
	if !strings.Contains(got, "&lt;script>") {
		t.Errorf("Render with FilterTagGFM did not escape <script>: %q", got)
	}
}

func TestNormalizeURI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/foo", "/foo"},
		{"https://example.com/a b", "https://example.com/a%20b"},
		{"https://example.com/%20", "https://example.com/%20"},
		{"https://example.com/%zz", "https://example.com/%25zz"},
	}
	for _, test := range tests {
		got := NormalizeURI(test.in)
		if got != test.want {
			t.Errorf("NormalizeURI(%q) = %q; want %q", test.in, got, test.want)
		}
	}
}
