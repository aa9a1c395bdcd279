package block

import (
	"sort"

	"github.com/google/uuid"
)

// Block is one typed content unit within a page.
type Block struct {
	ID      string  `json:"id"`
	Type    Type    `json:"type"`
	Content Content `json:"content"`
	Order   int     `json:"order"`
}

// New returns a block of type t with a fresh id and empty content.
func New(t Type) Block {
	return Block{
		ID:      "block-" + uuid.NewString(),
		Type:    t,
		Content: Content{},
	}
}

// Clone deep-copies the block including its content.
func (b Block) Clone() Block {
	b.Content = b.Content.Clone()
	return b
}

// CloneList deep-copies every block in the list.
func CloneList(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

// Append returns a new list with b added at the end, positioned after the last block.
func Append(blocks []Block, b Block) []Block {
	out := make([]Block, 0, len(blocks)+1)
	out = append(out, blocks...)
	b.Order = len(blocks)
	return append(out, b)
}

// Remove returns a new list without the block at index i. Out of range is a no-op.
func Remove(blocks []Block, i int) []Block {
	if i < 0 || i >= len(blocks) {
		return copyList(blocks)
	}
	out := make([]Block, 0, len(blocks)-1)
	out = append(out, blocks[:i]...)
	out = append(out, blocks[i+1:]...)
	return Renumber(out)
}

// MoveUp swaps block i with block i-1. Moving the first block is a no-op.
func MoveUp(blocks []Block, i int) []Block {
	return swap(blocks, i, i-1)
}

// MoveDown swaps block i with block i+1. Moving the last block is a no-op.
func MoveDown(blocks []Block, i int) []Block {
	return swap(blocks, i, i+1)
}

func swap(blocks []Block, i, j int) []Block {
	out := copyList(blocks)
	if i < 0 || i >= len(out) || j < 0 || j >= len(out) {
		return out
	}
	out[i], out[j] = out[j], out[i]
	return Renumber(out)
}

// Renumber sets each block's Order to its index.
func Renumber(blocks []Block) []Block {
	for i := range blocks {
		blocks[i].Order = i
	}
	return blocks
}

// SortByOrder returns the blocks sorted by Order. Ties keep their input order.
func SortByOrder(blocks []Block) []Block {
	out := copyList(blocks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func copyList(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}
