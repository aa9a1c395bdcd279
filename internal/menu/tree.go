// Package menu builds the navigation tree from flat menu records, enforces
// the depth limit and renders the desktop and mobile navigation markup.
package menu

import (
	"errors"
	"sort"
)

// MaxDepth is the deepest level a menu item may occupy (root = 1).
const MaxDepth = 3

var (
	ErrDepthExceeded  = errors.New("menu depth exceeded")
	ErrCycle          = errors.New("menu item cannot be nested under itself")
	ErrParentNotFound = errors.New("parent menu item not found")
)

// Item is a flat navigation record.
type Item struct {
	ID           uint   `json:"id"`
	Label        string `json:"label"`
	Path         string `json:"path"`
	PageID       *uint  `json:"page_id"`
	Icon         string `json:"icon"`
	ParentID     *uint  `json:"parent_id"`
	Order        int    `json:"order"`
	IsVisible    bool   `json:"is_visible"`
	OpenInNewTab bool   `json:"open_in_new_tab"`
}

// Node is an item with its ordered children. Depth starts at 1 for roots.
type Node struct {
	Item
	Depth    int     `json:"depth"`
	Children []*Node `json:"children"`
}

// Options tune Build.
type Options struct {
	VisibleOnly bool
	MaxDepth    int
}

// Build arranges items into a tree. Siblings are sorted by order then id.
// Items whose parent is absent, or that sit deeper than the depth limit, are
// dropped. With VisibleOnly a hidden item removes its whole subtree.
func Build(items []Item, opts Options) []*Node {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}

	ids := make(map[uint]struct{}, len(items))
	for _, item := range items {
		ids[item.ID] = struct{}{}
	}

	children := make(map[uint][]Item)
	var roots []Item
	for _, item := range items {
		if item.ParentID == nil || *item.ParentID == 0 {
			roots = append(roots, item)
			continue
		}
		if _, ok := ids[*item.ParentID]; !ok {
			continue
		}
		children[*item.ParentID] = append(children[*item.ParentID], item)
	}

	var attach func(level []Item, depth int) []*Node
	attach = func(level []Item, depth int) []*Node {
		if depth > maxDepth {
			return nil
		}
		sortItems(level)
		nodes := make([]*Node, 0, len(level))
		for _, item := range level {
			if opts.VisibleOnly && !item.IsVisible {
				continue
			}
			node := &Node{Item: item, Depth: depth}
			node.Children = attach(children[item.ID], depth+1)
			nodes = append(nodes, node)
		}
		return nodes
	}

	return attach(roots, 1)
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].ID < items[j].ID
	})
}

// Walk visits nodes depth-first, parents before children.
func Walk(nodes []*Node, fn func(*Node)) {
	for _, node := range nodes {
		fn(node)
		Walk(node.Children, fn)
	}
}

// Index answers structural questions about a flat item set.
type Index struct {
	items    map[uint]Item
	children map[uint][]uint
}

// NewIndex indexes items by id and parent.
func NewIndex(items []Item) *Index {
	x := &Index{
		items:    make(map[uint]Item, len(items)),
		children: make(map[uint][]uint),
	}
	for _, item := range items {
		x.items[item.ID] = item
	}
	for _, item := range items {
		if item.ParentID != nil && *item.ParentID != 0 {
			x.children[*item.ParentID] = append(x.children[*item.ParentID], item.ID)
		}
	}
	return x
}

// Get returns the item with id.
func (x *Index) Get(id uint) (Item, bool) {
	item, ok := x.items[id]
	return item, ok
}

// Depth returns the level of id, 1 for a root. Broken parent chains return
// ErrParentNotFound and loops return ErrCycle.
func (x *Index) Depth(id uint) (int, error) {
	depth := 0
	seen := make(map[uint]struct{})
	current := id
	for {
		item, ok := x.items[current]
		if !ok {
			return 0, ErrParentNotFound
		}
		if _, loop := seen[current]; loop {
			return 0, ErrCycle
		}
		seen[current] = struct{}{}
		depth++
		if item.ParentID == nil || *item.ParentID == 0 {
			return depth, nil
		}
		current = *item.ParentID
	}
}

// Height returns the number of levels in the subtree rooted at id, itself included.
func (x *Index) Height(id uint) int {
	return x.height(id, map[uint]struct{}{})
}

func (x *Index) height(id uint, seen map[uint]struct{}) int {
	if _, loop := seen[id]; loop {
		return 0
	}
	seen[id] = struct{}{}
	best := 0
	for _, child := range x.children[id] {
		if h := x.height(child, seen); h > best {
			best = h
		}
	}
	return best + 1
}

// Descendants returns every id below id, breadth first.
func (x *Index) Descendants(id uint) []uint {
	var out []uint
	seen := map[uint]struct{}{id: {}}
	queue := append([]uint{}, x.children[id]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if _, ok := seen[next]; ok {
			continue
		}
		seen[next] = struct{}{}
		out = append(out, next)
		queue = append(queue, x.children[next]...)
	}
	return out
}

// CheckParent validates placing item id (0 for a new item) under parentID.
// The moved subtree must still fit within MaxDepth.
func (x *Index) CheckParent(id uint, parentID *uint) error {
	if parentID == nil || *parentID == 0 {
		if id != 0 && x.Height(id) > MaxDepth {
			return ErrDepthExceeded
		}
		return nil
	}
	if id != 0 && *parentID == id {
		return ErrCycle
	}
	if _, ok := x.items[*parentID]; !ok {
		return ErrParentNotFound
	}
	if id != 0 {
		for _, descendant := range x.Descendants(id) {
			if descendant == *parentID {
				return ErrCycle
			}
		}
	}

	parentDepth, err := x.Depth(*parentID)
	if err != nil {
		return err
	}
	height := 1
	if id != 0 {
		height = x.Height(id)
	}
	if parentDepth+height > MaxDepth {
		return ErrDepthExceeded
	}
	return nil
}

// Validate checks that every item has a reachable parent and sits within MaxDepth.
func (x *Index) Validate() error {
	for id := range x.items {
		depth, err := x.Depth(id)
		if err != nil {
			return err
		}
		if depth > MaxDepth {
			return ErrDepthExceeded
		}
	}
	return nil
}
