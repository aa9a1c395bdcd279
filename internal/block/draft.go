package block

import (
	"context"
	"errors"
	"strings"
)

// State is the lifecycle position of a Draft.
type State int

const (
	StateLoading State = iota
	StateReady
	StateSaving
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSaving:
		return "saving"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	ErrTitleRequired = errors.New("title is required")
	ErrSlugRequired  = errors.New("slug is required")
	ErrNotReady      = errors.New("draft is not ready")
	ErrBlockNotFound = errors.New("block not found")
)

// PageData is the editable state of a page.
type PageData struct {
	ID              uint
	Title           string
	Slug            string
	Description     string
	Template        string
	IsPublished     bool
	MetaTitle       string
	MetaDescription string
	Blocks          []Block
}

// Persister stores a full page snapshot. Implementations replace the whole
// block list in one step.
type Persister interface {
	SavePage(ctx context.Context, page PageData) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, page PageData) error

// SavePage implements Persister.
func (f PersisterFunc) SavePage(ctx context.Context, page PageData) error {
	return f(ctx, page)
}

// Draft is the page editor state machine:
// loading -> ready -> saving -> ready, or saving -> error -> ready after Ack.
type Draft struct {
	state    State
	page     PageData
	expanded map[string]bool
	lastErr  error
}

// NewDraft returns a draft in the loading state.
func NewDraft() *Draft {
	return &Draft{state: StateLoading, expanded: map[string]bool{}}
}

// Load installs a page snapshot and moves to ready. Every block starts expanded.
func (d *Draft) Load(page PageData) {
	page.Blocks = Renumber(CloneList(SortByOrder(page.Blocks)))
	d.page = page
	d.expanded = make(map[string]bool, len(page.Blocks))
	for _, b := range page.Blocks {
		d.expanded[b.ID] = true
	}
	d.lastErr = nil
	d.state = StateReady
}

// State returns the current lifecycle state.
func (d *Draft) State() State { return d.state }

// Err returns the failure recorded by the last save.
func (d *Draft) Err() error { return d.lastErr }

// Page returns a deep copy of the current page data.
func (d *Draft) Page() PageData {
	page := d.page
	page.Blocks = CloneList(d.page.Blocks)
	return page
}

// Blocks returns a deep copy of the block list.
func (d *Draft) Blocks() []Block {
	return CloneList(d.page.Blocks)
}

func (d *Draft) editable() bool {
	return d.state == StateReady
}

func (d *Draft) hasBlock(i int) bool {
	return i >= 0 && i < len(d.page.Blocks)
}

// AddBlock appends a new empty block of type t and expands it.
func (d *Draft) AddBlock(t Type) (Block, error) {
	if !d.editable() {
		return Block{}, ErrNotReady
	}
	b := New(t)
	d.page.Blocks = Append(d.page.Blocks, b)
	d.expanded[b.ID] = true
	return d.page.Blocks[len(d.page.Blocks)-1].Clone(), nil
}

// DeleteBlock removes the block at index i and drops its expansion state.
func (d *Draft) DeleteBlock(i int) error {
	if !d.editable() {
		return ErrNotReady
	}
	if !d.hasBlock(i) {
		return ErrBlockNotFound
	}
	delete(d.expanded, d.page.Blocks[i].ID)
	d.page.Blocks = Remove(d.page.Blocks, i)
	return nil
}

// Direction is a move target relative to the current index.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// MoveBlock swaps block i with its neighbour. Boundaries are no-ops.
func (d *Draft) MoveBlock(i int, dir Direction) error {
	if !d.editable() {
		return ErrNotReady
	}
	if !d.hasBlock(i) {
		return ErrBlockNotFound
	}
	if dir == Up {
		d.page.Blocks = MoveUp(d.page.Blocks, i)
	} else {
		d.page.Blocks = MoveDown(d.page.Blocks, i)
	}
	return nil
}

// UpdateBlock replaces the content of block i.
func (d *Draft) UpdateBlock(i int, content Content) error {
	if !d.editable() {
		return ErrNotReady
	}
	if !d.hasBlock(i) {
		return ErrBlockNotFound
	}
	d.page.Blocks[i].Content = content.Clone()
	return nil
}

// Form returns an editor form over block i that writes edits back to the draft.
func (d *Draft) Form(i int) (*Form, bool) {
	if i < 0 || i >= len(d.page.Blocks) {
		return nil, false
	}
	b := d.page.Blocks[i]
	id := b.ID
	return NewForm(b.Type, b.Content, func(next Content) {
		for idx := range d.page.Blocks {
			if d.page.Blocks[idx].ID == id {
				_ = d.UpdateBlock(idx, next)
				return
			}
		}
	}), true
}

// Expanded reports whether block i is expanded in the editor.
func (d *Draft) Expanded(i int) bool {
	if i < 0 || i >= len(d.page.Blocks) {
		return false
	}
	return d.expanded[d.page.Blocks[i].ID]
}

// ToggleExpand flips the expansion of block i.
func (d *Draft) ToggleExpand(i int) {
	if i < 0 || i >= len(d.page.Blocks) {
		return
	}
	id := d.page.Blocks[i].ID
	d.expanded[id] = !d.expanded[id]
}

// TogglePublished flips the publication flag.
func (d *Draft) TogglePublished() error {
	if !d.editable() {
		return ErrNotReady
	}
	d.page.IsPublished = !d.page.IsPublished
	return nil
}

// SetTitle updates the page title.
func (d *Draft) SetTitle(title string) error {
	if !d.editable() {
		return ErrNotReady
	}
	d.page.Title = title
	return nil
}

// SetSlug updates the page slug.
func (d *Draft) SetSlug(slug string) error {
	if !d.editable() {
		return ErrNotReady
	}
	d.page.Slug = slug
	return nil
}

// SetMeta updates the SEO fields.
func (d *Draft) SetMeta(title, description string) error {
	if !d.editable() {
		return ErrNotReady
	}
	d.page.MetaTitle = title
	d.page.MetaDescription = description
	return nil
}

// Validate checks the fields required before a save is attempted.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.page.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(d.page.Slug) == "" {
		return ErrSlugRequired
	}
	return nil
}

// Save validates and hands the full snapshot to p. A validation failure
// leaves the draft ready and never calls p. A persister failure moves the
// draft to error until Ack.
func (d *Draft) Save(ctx context.Context, p Persister) error {
	if !d.editable() {
		return ErrNotReady
	}
	if err := d.Validate(); err != nil {
		return err
	}

	d.state = StateSaving
	snapshot := d.Page()
	snapshot.Blocks = Renumber(snapshot.Blocks)
	if err := p.SavePage(ctx, snapshot); err != nil {
		d.lastErr = err
		d.state = StateError
		return err
	}

	d.page.Blocks = Renumber(d.page.Blocks)
	d.lastErr = nil
	d.state = StateReady
	return nil
}

// Ack acknowledges a failed save and returns the draft to ready with its edits intact.
func (d *Draft) Ack() {
	if d.state == StateError {
		d.state = StateReady
	}
}
