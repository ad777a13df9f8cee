package block

import (
	"fmt"
	"sort"
)

// DefaultPointerSize is the placeholder slot width in bytes used when a
// width below 1 is supplied.
const DefaultPointerSize = 4

// Block represents one compiled unit: frozen content bytes plus a mapping
// from placeholder slot offsets to the blocks those slots jump to. Blocks
// are immutable after creation except for the linker-assigned offset.
type Block struct {
	handle      int
	content     []byte
	jumps       map[int]*Block
	pointerSize int

	// Final layout position, assigned by an external linker. -1 until set.
	offset int
}

// Params contains parameters for creating a new Block.
type Params struct {
	Handle      int            // Creation-order index within the program
	Content     []byte         // Frozen content bytes
	Jumps       map[int]*Block // Slot offset -> target block
	PointerSize int            // Placeholder slot width in bytes
}

// New creates a new immutable Block from the given parameters. Input slices
// and maps are copied, so later caller mutation does not affect the Block.
// A PointerSize below 1 is replaced with DefaultPointerSize; every Block
// carries a positive slot width.
func New(params Params) *Block {
	pointerSize := params.PointerSize
	if pointerSize < 1 {
		pointerSize = DefaultPointerSize
	}
	return &Block{
		handle:      params.Handle,
		content:     copyContent(params.Content),
		jumps:       copyJumps(params.Jumps),
		pointerSize: pointerSize,
		offset:      -1,
	}
}

// Handle returns this block's creation-order index within its program.
func (b *Block) Handle() int {
	return b.handle
}

// Len returns the content length in bytes.
func (b *Block) Len() int {
	return len(b.content)
}

// Bytes returns a copy of the content bytes.
func (b *Block) Bytes() []byte {
	return copyContent(b.content)
}

// ByteAt returns the content byte at the given index.
func (b *Block) ByteAt(index int) byte {
	return b.content[index]
}

// PointerSize returns the placeholder slot width in bytes.
func (b *Block) PointerSize() int {
	return b.pointerSize
}

// JumpCount returns the number of outgoing jump edges.
func (b *Block) JumpCount() int {
	return len(b.jumps)
}

// JumpOffsets returns the slot offsets carrying jump edges, ascending.
func (b *Block) JumpOffsets() []int {
	offsets := make([]int, 0, len(b.jumps))
	for off := range b.jumps {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)
	return offsets
}

// JumpTarget returns the block targeted by the slot at the given offset.
func (b *Block) JumpTarget(offset int) (*Block, bool) {
	target, ok := b.jumps[offset]
	return target, ok
}

// Offset returns the final layout position assigned by the linker, or -1
// if layout has not happened yet.
func (b *Block) Offset() int {
	return b.offset
}

// Resolved returns true once the linker has assigned a layout position.
func (b *Block) Resolved() bool {
	return b.offset >= 0
}

// SetOffset records the final layout position. This is the single permitted
// mutation on a Block and belongs to the linker.
func (b *Block) SetOffset(offset int) {
	b.offset = offset
}

// Equal reports whether two blocks are structurally equal: content lengths
// match and every byte matches, except inside placeholder slot regions,
// where the linked blocks must instead be recursively equal. Placeholder
// byte content never participates, so blocks compiled from different
// contexts compare equal when their shapes agree. The block graph is
// acyclic, so the recursion terminates.
func (b *Block) Equal(other *Block) bool {
	if b == other {
		return true
	}
	if other == nil {
		return false
	}
	if len(b.content) != len(other.content) {
		return false
	}
	if b.pointerSize != other.pointerSize {
		return false
	}
	for i := 0; i < len(b.content); {
		target, ok := b.jumps[i]
		otherTarget, otherOk := other.jumps[i]
		if ok || otherOk {
			if !ok || !otherOk {
				return false
			}
			if !target.Equal(otherTarget) {
				return false
			}
			i += b.pointerSize
			continue
		}
		if b.content[i] != other.content[i] {
			return false
		}
		i++
	}
	return true
}

// String returns a short description of the block.
func (b *Block) String() string {
	return fmt.Sprintf("block(handle=%d size=%d jumps=%d)",
		b.handle, len(b.content), len(b.jumps))
}

func copyContent(content []byte) []byte {
	if len(content) == 0 {
		return nil
	}
	c := make([]byte, len(content))
	copy(c, content)
	return c
}

func copyJumps(jumps map[int]*Block) map[int]*Block {
	if len(jumps) == 0 {
		return nil
	}
	j := make(map[int]*Block, len(jumps))
	for off, target := range jumps {
		j[off] = target
	}
	return j
}
