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

// ParseOptions configures Parse. The zero value is a valid set of
// defaults.
type ParseOptions struct {
	// MaxNestingDepth caps how many block quotes may nest inside one
	// another before Parse reports an error instead of recursing further.
	// Zero means defaultMaxNestingDepth.
	MaxNestingDepth int
}

// Parse parses source as CommonMark (plus GFM table header rows and
// task-list items) and returns the document's top-level blocks along with
// the link reference definitions found at the top level. Definitions inside
// block quotes are not included in the returned map.
//
// Parse stops at the first structural error — an oversized heading level
// or block quote nesting beyond opts.MaxNestingDepth — and returns it
// rather than a partial tree.
func Parse(source string, opts ParseOptions) ([]Block, map[string]LinkDefinition, error) {
	maxDepth := opts.MaxNestingDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxNestingDepth
	}

	lines := splitLines(normalizeSource(source))
	st := assembleRawBlocks(lines)
	blocks, err := mapRawBlocks(st, 0, maxDepth)
	if err != nil {
		return nil, nil, err
	}
	return blocks, st.links.freeze(), nil
}

// normalizeSource applies the line-ending and NUL-substitution
// normalization CommonMark requires before any other processing: "\r\n"
// and lone "\r" become "\n", and NUL bytes become U+FFFD.
func normalizeSource(source string) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	source = strings.ReplaceAll(source, "\x00", "�")
	return source
}
