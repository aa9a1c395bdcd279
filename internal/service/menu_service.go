package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/intraportal/internal/db"
	"github.com/intraportal/internal/menu"
	"gorm.io/gorm"
)

var (
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrMenuOrder          = errors.New("invalid menu order batch")
	ErrMenuDepthExceeded  = menu.ErrDepthExceeded
	ErrMenuCycle          = menu.ErrCycle
	ErrMenuParentNotFound = menu.ErrParentNotFound
)

// MenuService manages the navigation tree.
type MenuService struct {
	db *gorm.DB
}

// MenuInput describes a new menu item. A PageID takes precedence over Path.
type MenuInput struct {
	Label        string
	Path         string
	PageID       *uint
	Icon         string
	ParentID     *uint
	Order        *int
	IsVisible    *bool
	OpenInNewTab bool
}

// MenuUpdate carries optional changes. PageID 0 clears the page reference and
// ParentID 0 moves the item to the top level.
type MenuUpdate struct {
	Label        *string
	Path         *string
	PageID       *uint
	Icon         *string
	ParentID     *uint
	Order        *int
	IsVisible    *bool
	OpenInNewTab *bool
}

// MenuOrder is one entry of a reorder batch.
type MenuOrder struct {
	ID       uint  `json:"id"`
	Order    int   `json:"order"`
	ParentID *uint `json:"parent_id"`
}

// NewMenuService creates a MenuService.
func NewMenuService(gdb *gorm.DB) *MenuService {
	return &MenuService{db: gdb}
}

// Flat returns every item ordered by position.
func (s *MenuService) Flat() ([]db.MenuItem, error) {
	return s.all(s.db)
}

func (s *MenuService) all(tx *gorm.DB) ([]db.MenuItem, error) {
	var items []db.MenuItem
	if err := tx.Order("sort_order asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Tree returns the nested navigation. visibleOnly prunes hidden subtrees.
func (s *MenuService) Tree(visibleOnly bool) ([]*menu.Node, error) {
	items, err := s.Flat()
	if err != nil {
		return nil, err
	}
	return menu.Build(MenuItems(items), menu.Options{VisibleOnly: visibleOnly}), nil
}

// Get fetches one item.
func (s *MenuService) Get(id uint) (*db.MenuItem, error) {
	return s.get(s.db, id)
}

func (s *MenuService) get(tx *gorm.DB, id uint) (*db.MenuItem, error) {
	var item db.MenuItem
	if err := tx.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts an item after checking that it fits within the depth limit.
func (s *MenuService) Create(input MenuInput) (*db.MenuItem, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, required("label")
	}
	visible := true
	if input.IsVisible != nil {
		visible = *input.IsVisible
	}

	item := db.MenuItem{
		Label:        label,
		Icon:         strings.TrimSpace(input.Icon),
		ParentID:     nonZero(input.ParentID),
		IsVisible:    visible,
		OpenInNewTab: input.OpenInNewTab,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		idx, err := s.index(tx)
		if err != nil {
			return err
		}
		if err := idx.CheckParent(0, item.ParentID); err != nil {
			return err
		}
		if err := resolveMenuTarget(tx, &item, nonZero(input.PageID), input.Path); err != nil {
			return err
		}
		if input.Order != nil {
			item.SortOrder = *input.Order
		} else {
			next, err := nextMenuOrder(tx, item.ParentID)
			if err != nil {
				return err
			}
			item.SortOrder = next
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies the non-nil fields of input. Moving an item re-checks depth
// for its whole subtree.
func (s *MenuService) Update(id uint, input MenuUpdate) (*db.MenuItem, error) {
	var item *db.MenuItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if item, err = s.get(tx, id); err != nil {
			return err
		}

		if input.Label != nil {
			label := strings.TrimSpace(*input.Label)
			if label == "" {
				return required("label")
			}
			item.Label = label
		}
		if input.Icon != nil {
			item.Icon = strings.TrimSpace(*input.Icon)
		}
		if input.Order != nil {
			item.SortOrder = *input.Order
		}
		if input.IsVisible != nil {
			item.IsVisible = *input.IsVisible
		}
		if input.OpenInNewTab != nil {
			item.OpenInNewTab = *input.OpenInNewTab
		}
		if input.ParentID != nil {
			parent := nonZero(input.ParentID)
			idx, err := s.index(tx)
			if err != nil {
				return err
			}
			if err := idx.CheckParent(id, parent); err != nil {
				return err
			}
			item.ParentID = parent
		}
		if input.PageID != nil || input.Path != nil {
			pageID := item.PageID
			if input.PageID != nil {
				pageID = nonZero(input.PageID)
			}
			path := item.Path
			if input.Path != nil {
				path = *input.Path
			}
			if err := resolveMenuTarget(tx, item, pageID, path); err != nil {
				return err
			}
		}
		return tx.Save(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ToggleVisibility flips is_visible.
func (s *MenuService) ToggleVisibility(id uint) (*db.MenuItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	visible := !item.IsVisible
	return s.Update(id, MenuUpdate{IsVisible: &visible})
}

// Delete removes an item together with all of its descendants.
func (s *MenuService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		idx, err := s.index(tx)
		if err != nil {
			return err
		}
		if _, ok := idx.Get(id); !ok {
			return ErrMenuItemNotFound
		}
		ids := append([]uint{id}, idx.Descendants(id)...)
		return tx.Where("id IN ?", ids).Delete(&db.MenuItem{}).Error
	})
}

// Reorder applies a batch of (id, order, parent) tuples. The batch is
// validated against the resulting tree first and then written in one
// transaction, so either every entry is applied or none is.
func (s *MenuService) Reorder(batch []MenuOrder) error {
	if len(batch) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(batch))
	for _, entry := range batch {
		if entry.ID == 0 {
			return ErrMenuOrder
		}
		if _, dup := seen[entry.ID]; dup {
			return ErrMenuOrder
		}
		seen[entry.ID] = struct{}{}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		items, err := s.all(tx)
		if err != nil {
			return err
		}
		planned := MenuItems(items)
		positions := make(map[uint]int, len(planned))
		for i, item := range planned {
			positions[item.ID] = i
		}
		for _, entry := range batch {
			pos, ok := positions[entry.ID]
			if !ok {
				return ErrMenuItemNotFound
			}
			planned[pos].Order = entry.Order
			planned[pos].ParentID = nonZero(entry.ParentID)
		}
		if err := menu.NewIndex(planned).Validate(); err != nil {
			return err
		}

		for _, entry := range batch {
			result := tx.Model(&db.MenuItem{}).Where("id = ?", entry.ID).Updates(map[string]interface{}{
				"sort_order": entry.Order,
				"parent_id":  nonZero(entry.ParentID),
			})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrMenuItemNotFound
			}
		}
		return nil
	})
}

// MoveSibling swaps an item with its previous (up) or next sibling and
// renumbers the siblings. Moving past either end is a no-op.
func (s *MenuService) MoveSibling(id uint, up bool) error {
	items, err := s.Flat()
	if err != nil {
		return err
	}
	batch, ok := SiblingSwapBatch(items, id, up)
	if !ok {
		if _, err := s.Get(id); err != nil {
			return err
		}
		return nil
	}
	return s.Reorder(batch)
}

// SiblingSwapBatch builds the reorder batch that swaps id with its neighbour
// under the same parent. It reports false when id is unknown or already at
// the boundary.
func SiblingSwapBatch(items []db.MenuItem, id uint, up bool) ([]MenuOrder, bool) {
	var target *db.MenuItem
	for i := range items {
		if items[i].ID == id {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return nil, false
	}

	var siblings []menu.Item
	for _, item := range MenuItems(items) {
		if sameParent(item.ParentID, target.ParentID) {
			siblings = append(siblings, item)
		}
	}
	nodes := menu.Build(siblingsAsRoots(siblings), menu.Options{MaxDepth: 1})

	current := -1
	for i, node := range nodes {
		if node.ID == id {
			current = i
		}
	}
	neighbour := current + 1
	if up {
		neighbour = current - 1
	}
	if current < 0 || neighbour < 0 || neighbour >= len(nodes) {
		return nil, false
	}
	nodes[current], nodes[neighbour] = nodes[neighbour], nodes[current]

	batch := make([]MenuOrder, len(nodes))
	for i, node := range nodes {
		batch[i] = MenuOrder{ID: node.ID, Order: i, ParentID: target.ParentID}
	}
	return batch, true
}

// MenuItems converts stored rows into tree items.
func MenuItems(rows []db.MenuItem) []menu.Item {
	items := make([]menu.Item, len(rows))
	for i, row := range rows {
		items[i] = menu.Item{
			ID:           row.ID,
			Label:        row.Label,
			Path:         row.Path,
			PageID:       row.PageID,
			Icon:         row.Icon,
			ParentID:     row.ParentID,
			Order:        row.SortOrder,
			IsVisible:    row.IsVisible,
			OpenInNewTab: row.OpenInNewTab,
		}
	}
	return items
}

func (s *MenuService) index(tx *gorm.DB) (*menu.Index, error) {
	items, err := s.all(tx)
	if err != nil {
		return nil, err
	}
	return menu.NewIndex(MenuItems(items)), nil
}

// resolveMenuTarget stores either a page reference with its derived path or
// a plain path.
func resolveMenuTarget(tx *gorm.DB, item *db.MenuItem, pageID *uint, path string) error {
	if pageID != nil {
		var page db.Page
		if err := tx.Select("id", "slug").First(&page, *pageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("page_id", "page not found")
			}
			return err
		}
		item.PageID = pageID
		item.Path = menu.PagePath(page.Slug)
		return nil
	}

	path = strings.TrimSpace(path)
	lower := strings.ToLower(path)
	for _, scheme := range []string{"javascript:", "data:", "vbscript:"} {
		if strings.HasPrefix(lower, scheme) {
			return invalid("path", fmt.Sprintf("%s links are not allowed", strings.TrimSuffix(scheme, ":")))
		}
	}
	item.PageID = nil
	item.Path = path
	return nil
}

func nextMenuOrder(tx *gorm.DB, parentID *uint) (int, error) {
	query := tx.Model(&db.MenuItem{})
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	var maxOrder int
	if err := query.Select("COALESCE(MAX(sort_order), -1)").Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

func sameParent(a, b *uint) bool {
	a, b = nonZero(a), nonZero(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func siblingsAsRoots(items []menu.Item) []menu.Item {
	out := make([]menu.Item, len(items))
	for i, item := range items {
		item.ParentID = nil
		out[i] = item
	}
	return out
}
