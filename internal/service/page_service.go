package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/intraportal/internal/block"
	"github.com/intraportal/internal/db"
	"github.com/intraportal/internal/menu"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrSlugTaken    = errors.New("page with this slug already exists")
)

// PageService manages block pages.
type PageService struct {
	db        *gorm.DB
	templates *TemplateService
	now       func() time.Time
}

// PageFilter narrows List.
type PageFilter struct {
	PublishedOnly bool
	Search        string
}

// PageInput describes a new page. Blocks, when nil, are seeded from Template.
// IsPublished defaults to true.
type PageInput struct {
	Title           string
	Slug            string
	Description     string
	Template        string
	IsPublished     *bool
	MetaTitle       string
	MetaDescription string
	Blocks          []block.Block
}

// PageUpdate carries optional changes. A non-nil Blocks replaces the whole list.
type PageUpdate struct {
	Title           *string
	Slug            *string
	Description     *string
	IsPublished     *bool
	MetaTitle       *string
	MetaDescription *string
	Blocks          *[]block.Block
}

// NewPageService returns a new PageService instance. templates may be nil
// when template seeding is not needed.
func NewPageService(gdb *gorm.DB, templates *TemplateService) *PageService {
	return &PageService{db: gdb, templates: templates, now: time.Now}
}

func orderedBlocks(tx *gorm.DB) *gorm.DB {
	return tx.Order("sort_order asc").Order("id asc")
}

// List returns pages ordered by title.
func (s *PageService) List(filter PageFilter) ([]db.Page, error) {
	query := s.db.Model(&db.Page{}).Preload("Blocks", orderedBlocks)
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}

	var pages []db.Page
	if err := query.Order("title asc").Order("id asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Get fetches a page with its blocks.
func (s *PageService) Get(id uint) (*db.Page, error) {
	return s.get(s.db, id)
}

func (s *PageService) get(tx *gorm.DB, id uint) (*db.Page, error) {
	var page db.Page
	if err := tx.Preload("Blocks", orderedBlocks).First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetPublishedBySlug fetches a published page. Drafts are reported as not found.
func (s *PageService) GetPublishedBySlug(slug string) (*db.Page, error) {
	var page db.Page
	err := s.db.Preload("Blocks", orderedBlocks).
		Where("slug = ? AND is_published = ?", strings.TrimSpace(slug), true).
		First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// SlugMap returns page id to slug for every page, used to resolve menu links.
func (s *PageService) SlugMap() (map[uint]string, error) {
	var rows []struct {
		ID   uint
		Slug string
	}
	if err := s.db.Model(&db.Page{}).Select("id", "slug").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]string, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Slug
	}
	return out, nil
}

// Create inserts a page and its blocks.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, required("title")
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = title
	}
	slug = Slugify(slug)
	if slug == "" {
		return nil, required("slug")
	}

	templateID := strings.TrimSpace(input.Template)
	blocks := input.Blocks
	if blocks == nil && templateID != "" && s.templates != nil {
		seeded, err := s.templates.Blocks(templateID)
		if err != nil {
			if errors.Is(err, ErrTemplateNotFound) {
				return nil, invalid("template", "unknown template")
			}
			return nil, err
		}
		blocks = seeded
	}
	rows, err := blockRows(blocks)
	if err != nil {
		return nil, err
	}

	published := true
	if input.IsPublished != nil {
		published = *input.IsPublished
	}

	page := db.Page{
		Title:           title,
		Slug:            slug,
		Description:     strings.TrimSpace(input.Description),
		Template:        templateID,
		IsPublished:     published,
		MetaTitle:       strings.TrimSpace(input.MetaTitle),
		MetaDescription: strings.TrimSpace(input.MetaDescription),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureSlugFree(tx, slug, 0); err != nil {
			return err
		}
		if err := tx.Omit("Blocks").Create(&page).Error; err != nil {
			return err
		}
		return insertBlocks(tx, page.ID, rows)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(page.ID)
}

// Update applies the non-nil fields of input. Metadata and the block list are
// written in one transaction so readers never see a half-replaced page.
func (s *PageService) Update(id uint, input PageUpdate) (*db.Page, error) {
	return s.update(s.db, id, input)
}

func (s *PageService) update(gdb *gorm.DB, id uint, input PageUpdate) (*db.Page, error) {
	var rows []db.PageBlock
	if input.Blocks != nil {
		var err error
		if rows, err = blockRows(*input.Blocks); err != nil {
			return nil, err
		}
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		page, err := s.get(tx, id)
		if err != nil {
			return err
		}
		slugChanged := false

		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title == "" {
				return required("title")
			}
			page.Title = title
		}
		if input.Slug != nil {
			slug := Slugify(*input.Slug)
			if slug == "" {
				return required("slug")
			}
			if slug != page.Slug {
				if err := ensureSlugFree(tx, slug, id); err != nil {
					return err
				}
				page.Slug = slug
				slugChanged = true
			}
		}
		if input.Description != nil {
			page.Description = strings.TrimSpace(*input.Description)
		}
		if input.IsPublished != nil {
			page.IsPublished = *input.IsPublished
		}
		if input.MetaTitle != nil {
			page.MetaTitle = strings.TrimSpace(*input.MetaTitle)
		}
		if input.MetaDescription != nil {
			page.MetaDescription = strings.TrimSpace(*input.MetaDescription)
		}

		if err := tx.Omit("Blocks").Save(page).Error; err != nil {
			return err
		}
		if input.Blocks != nil {
			if err := tx.Where("page_id = ?", id).Delete(&db.PageBlock{}).Error; err != nil {
				return err
			}
			if err := insertBlocks(tx, id, rows); err != nil {
				return err
			}
		}
		if slugChanged {
			if err := tx.Model(&db.MenuItem{}).Where("page_id = ?", id).
				Update("path", menu.PagePath(page.Slug)).Error; err != nil {
				return fmt.Errorf("refresh menu paths: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.get(gdb, id)
}

// SetPublished toggles public visibility.
func (s *PageService) SetPublished(id uint, published bool) (*db.Page, error) {
	return s.Update(id, PageUpdate{IsPublished: &published})
}

// Duplicate copies a page into a new unpublished draft with fresh block ids.
func (s *PageService) Duplicate(id uint) (*db.Page, error) {
	source, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	blocks := PageBlocks(source)
	for i := range blocks {
		blocks[i].ID = block.New(blocks[i].Type).ID
	}
	unpublished := false
	return s.Create(PageInput{
		Title:           source.Title + " (Copy)",
		Slug:            fmt.Sprintf("%s-copy-%d", source.Slug, s.now().Unix()),
		Description:     source.Description,
		Template:        source.Template,
		IsPublished:     &unpublished,
		MetaTitle:       source.MetaTitle,
		MetaDescription: source.MetaDescription,
		Blocks:          blocks,
	})
}

// Delete removes a page and its blocks. Menu items pointing at it keep their
// stored path but lose the page reference.
func (s *PageService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.MenuItem{}).Where("page_id = ?", id).Update("page_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", id).Delete(&db.PageBlock{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&db.Page{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPageNotFound
		}
		return nil
	})
}

// SavePage stores a full editor snapshot, making PageService a block.Persister.
func (s *PageService) SavePage(ctx context.Context, data block.PageData) error {
	blocks := data.Blocks
	if blocks == nil {
		blocks = []block.Block{}
	}
	_, err := s.update(s.db.WithContext(ctx), data.ID, PageUpdate{
		Title:           &data.Title,
		Slug:            &data.Slug,
		Description:     &data.Description,
		IsPublished:     &data.IsPublished,
		MetaTitle:       &data.MetaTitle,
		MetaDescription: &data.MetaDescription,
		Blocks:          &blocks,
	})
	return err
}

// PageBlocks converts stored rows into ordered blocks.
func PageBlocks(page *db.Page) []block.Block {
	blocks := make([]block.Block, 0, len(page.Blocks))
	for _, row := range page.Blocks {
		blocks = append(blocks, block.Block{
			ID:      row.BlockID,
			Type:    block.ParseType(row.Type),
			Content: block.Content(row.Content).Clone(),
			Order:   row.SortOrder,
		})
	}
	return block.SortByOrder(blocks)
}

// PageData converts a stored page into an editor snapshot.
func PageData(page *db.Page) block.PageData {
	return block.PageData{
		ID:              page.ID,
		Title:           page.Title,
		Slug:            page.Slug,
		Description:     page.Description,
		Template:        page.Template,
		IsPublished:     page.IsPublished,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		Blocks:          PageBlocks(page),
	}
}

// blockRows validates blocks and assigns positions. Missing or repeated ids
// are replaced with fresh ones.
func blockRows(blocks []block.Block) ([]db.PageBlock, error) {
	rows := make([]db.PageBlock, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))
	for i, b := range block.SortByOrder(blocks) {
		kind := strings.TrimSpace(string(b.Type))
		if kind == "" {
			return nil, invalid(fmt.Sprintf("blocks[%d].type", i), "is required")
		}
		id := strings.TrimSpace(b.ID)
		if _, dup := seen[id]; id == "" || dup {
			id = block.New(b.Type).ID
		}
		seen[id] = struct{}{}
		rows = append(rows, db.PageBlock{
			BlockID:   id,
			Type:      kind,
			Content:   db.JSONMap(b.Content.Map()),
			SortOrder: i,
		})
	}
	return rows, nil
}

func insertBlocks(tx *gorm.DB, pageID uint, rows []db.PageBlock) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].PageID = pageID
	}
	return tx.Create(&rows).Error
}

func ensureSlugFree(tx *gorm.DB, slug string, exceptID uint) error {
	query := tx.Model(&db.Page{}).Where("slug = ?", slug)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}
