// Copyright (c) 2026 The Undertaker Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cpptree

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var definedTokenRegexp = regexp.MustCompile(`defined\s*\(\s*([A-Za-z_][A-Za-z0-9_]*)\s*\)|defined\s+([A-Za-z_][A-Za-z0-9_]*)`)

// File is the owner of a conditional-block tree and its CppDefine table, per
// spec section 3. Blocks are stored in a flat arena in document order
// (index 0 is always the synthetic B00 root) and referenced elsewhere by
// BlockID rather than pointer, per spec section 9's design note.
type File struct {
	Name    string
	blocks  []*ConditionalBlock
	defines map[string]*CppDefine
	order   []string // define registration order, for deterministic emission
	nextSeq int
	cache   *constraintCache
}

// NewFile returns a File named name (typically a source path) with its B00
// root block already in place.
func NewFile(name string) *File {
	f := &File{
		Name:    name,
		defines: make(map[string]*CppDefine),
		cache:   newConstraintCache(),
	}
	f.blocks = append(f.blocks, &ConditionalBlock{
		ID:              RootBlock,
		Name:            "B00",
		Kind:            KindRoot,
		Parent:          NoBlock,
		PreviousSibling: NoBlock,
	})
	return f
}

// Block returns the block with the given ID.
func (f *File) Block(id BlockID) *ConditionalBlock { return f.blocks[id] }

// Blocks returns every block in document order, including B00 at index 0.
func (f *File) Blocks() []*ConditionalBlock { return f.blocks }

// AddBlock appends a new non-root block as a child of parent, normalizes its
// expression (stripping `defined` tokens and applying any already-registered
// CppDefine mangling), and returns its BlockID. previous_sibling is derived
// automatically: Elif/Else blocks chain off the parent's most recently added
// child, If/Ifndef blocks always start a new chain.
func (f *File) AddBlock(kind BlockKind, expression string, parent BlockID, lineStart, lineEnd int) BlockID {
	return f.AddBlockAt(kind, expression, parent, lineStart, 0, lineEnd, 0)
}

// AddBlockAt is AddBlock with column positions, for drivers whose C/CPP
// parser reports column spans (spec section 6's report header needs them).
func (f *File) AddBlockAt(kind BlockKind, expression string, parent BlockID, lineStart, colStart, lineEnd, colEnd int) BlockID {
	id := f.addChild(kind, f.normalizeDefines(stripDefined(expression)), parent, lineStart, colStart, lineEnd, colEnd)
	return id
}

func (f *File) addChild(kind BlockKind, expression string, parent BlockID, lineStart, colStart, lineEnd, colEnd int) BlockID {
	id := BlockID(len(f.blocks))
	name := "B" + itoa(f.nextSeq)
	f.nextSeq++

	prevSibling := NoBlock
	if parent != NoBlock && (kind == KindElif || kind == KindElse) {
		p := f.blocks[parent]
		if n := len(p.Children); n > 0 {
			prevSibling = p.Children[n-1]
		}
	}

	b := &ConditionalBlock{
		ID:              id,
		Name:            name,
		Kind:            kind,
		Expression:      expression,
		Parent:          parent,
		PreviousSibling: prevSibling,
		LineStart:       lineStart,
		ColStart:        colStart,
		LineEnd:         lineEnd,
		ColEnd:          colEnd,
	}
	f.blocks = append(f.blocks, b)
	if parent != NoBlock {
		pb := f.blocks[parent]
		pb.Children = append(pb.Children, id)
	}
	f.cache.Invalidate()
	return id
}

// chainPredecessors returns, for block id, every earlier sibling reachable
// by following previous_sibling back to the opening If/Ifndef of its chain
// (spec section 4.F's set S).
func (f *File) chainPredecessors(id BlockID) []BlockID {
	var out []BlockID
	cur := f.blocks[id].PreviousSibling
	for cur != NoBlock {
		out = append(out, cur)
		cur = f.blocks[cur].PreviousSibling
	}
	return out
}

func stripDefined(expression string) string {
	return definedTokenRegexp.ReplaceAllStringFunc(expression, func(m string) string {
		sub := definedTokenRegexp.FindStringSubmatch(m)
		if sub[1] != "" {
			return sub[1]
		}
		return sub[2]
	})
}

func (f *File) normalizeDefines(expression string) string {
	out := expression
	for _, sym := range f.order {
		d := f.defines[sym]
		out = RewriteSymbol(out, sym, d.ActualSymbol)
	}
	return out
}

// ItemChecker returns the predicate spec section 3 describes: false for any
// token whose leading segment (up to the first '.') names a defined symbol,
// since such tokens are internal CPP mangling artifacts, never Kconfig
// symbols.
func (f *File) ItemChecker() func(string) bool {
	return func(token string) bool {
		head := token
		if i := strings.IndexByte(token, '.'); i >= 0 {
			head = token[:i]
		}
		_, isDefine := f.defines[head]
		return !isDefine
	}
}

// Invalidate clears the file's memoized code-constraints formula. Callers
// that mutate the block tree or define table directly (rather than through
// AddBlock/Define, which already invalidate) must call this themselves.
func (f *File) Invalidate() { f.cache.Invalidate() }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// cacheKey hashes the file's current block/define state so the constraint
// cache can detect staleness without comparing large formula strings, per
// SPEC_FULL.md's xxhash wiring note.
func (f *File) cacheKey() uint64 {
	h := xxhash.New()
	for _, b := range f.blocks {
		h.Write([]byte(b.Name))
		h.Write([]byte{0})
		h.Write([]byte(b.Expression))
		h.Write([]byte{0})
	}
	names := make([]string, 0, len(f.defines))
	for name := range f.defines {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(f.defines[name].ActualSymbol))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
