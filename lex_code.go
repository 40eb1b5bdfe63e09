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

// lexFencedCodeBlock implements the fenced code-block subparser contract
// from §6.2: the opening line is ≥3 of the same fence character ('`' or
// '~') optionally followed by an info string; the fence closes on a line
// with ≥ as many of the same character (and nothing else but trailing
// space), or at end of input.
func lexFencedCodeBlock(lines []string, pos int) (body, language string, consumed int, ok bool) {
	opener, okIndent := consumeUpTo3Indent(lines[pos])
	if !okIndent || opener == "" {
		return "", "", 0, false
	}
	fenceChar := opener[0]
	if fenceChar != '`' && fenceChar != '~' {
		return "", "", 0, false
	}
	fenceLen := 0
	for fenceLen < len(opener) && opener[fenceLen] == fenceChar {
		fenceLen++
	}
	if fenceLen < 3 {
		return "", "", 0, false
	}
	info := strings.TrimSpace(opener[fenceLen:])
	if fenceChar == '`' && strings.ContainsRune(info, '`') {
		// A backtick fence's info string can't contain a backtick.
		return "", "", 0, false
	}
	if fields := strings.Fields(info); len(fields) > 0 {
		language = fields[0]
	}

	var b strings.Builder
	i := pos + 1
	for ; i < len(lines); i++ {
		if closeLen, isFenceChar := fenceCloseLength(lines[i], fenceChar); isFenceChar && closeLen >= fenceLen {
			i++
			break
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(lines[i])
	}
	return b.String(), language, i - pos, true
}

// fenceCloseLength reports the length of a closing-fence candidate line:
// 0-3 leading spaces, a run of only fenceChar, then only trailing space.
func fenceCloseLength(line string, fenceChar byte) (n int, ok bool) {
	rest, okIndent := consumeUpTo3Indent(line)
	if !okIndent || rest == "" || rest[0] != fenceChar {
		return 0, false
	}
	i := 0
	for i < len(rest) && rest[i] == fenceChar {
		i++
	}
	for j := i; j < len(rest); j++ {
		if !isSpaceOrTab(rest[j]) {
			return 0, false
		}
	}
	return i, true
}
