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
	"unicode"

	"golang.org/x/text/cases"
)

// labelFold performs the Unicode case fold CommonMark's "normalized label"
// matching rule requires. A plain ASCII strings.ToLower under-matches labels
// that only differ by non-ASCII case (e.g. "STRASSE" vs "Straße" adjacent
// cases), so this uses golang.org/x/text's locale-independent fold instead.
var labelFold = cases.Fold()

// normalizeLabel implements the link reference label normalization rule:
// Unicode case fold, then collapse internal whitespace runs to a single
// space, then trim leading/trailing space.
func normalizeLabel(label string) string {
	folded := labelFold.String(label)
	var sb strings.Builder
	sb.Grow(len(folded))
	inSpace := false
	for _, r := range folded {
		if unicode.IsSpace(r) {
			if !inSpace {
				sb.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}
