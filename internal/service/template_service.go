package service

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/intraportal/internal/block"
	"gopkg.in/yaml.v3"
)

// ErrTemplateNotFound is returned for an unknown template id.
var ErrTemplateNotFound = errors.New("template not found")

// BlankTemplateID names the empty template.
const BlankTemplateID = "blank"

//go:embed templates.yaml
var templateCatalogue []byte

// PageTemplate is a named starter layout.
type PageTemplate struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"`
	Category    string          `yaml:"category" json:"category"`
	Thumbnail   string          `yaml:"thumbnail" json:"thumbnail"`
	Blocks      []templateBlock `yaml:"blocks" json:"blocks"`
}

type templateBlock struct {
	Type    string         `yaml:"type" json:"type"`
	Content map[string]any `yaml:"content" json:"content"`
	Order   int            `yaml:"order" json:"order"`
}

// TemplateService serves the embedded template catalogue.
type TemplateService struct {
	templates []PageTemplate
	byID      map[string]int
}

// NewTemplateService parses the embedded catalogue.
func NewTemplateService() (*TemplateService, error) {
	return parseTemplates(templateCatalogue)
}

func parseTemplates(raw []byte) (*TemplateService, error) {
	var templates []PageTemplate
	if err := yaml.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("parse template catalogue: %w", err)
	}

	svc := &TemplateService{byID: make(map[string]int, len(templates))}
	for i, tpl := range templates {
		id := strings.TrimSpace(tpl.ID)
		if id == "" {
			return nil, fmt.Errorf("template %d has no id", i)
		}
		if _, dup := svc.byID[id]; dup {
			return nil, fmt.Errorf("duplicate template id %q", id)
		}
		for j := range tpl.Blocks {
			tpl.Blocks[j].Order = j
			if tpl.Blocks[j].Content == nil {
				tpl.Blocks[j].Content = map[string]any{}
			}
		}
		svc.byID[id] = len(svc.templates)
		svc.templates = append(svc.templates, tpl)
	}
	return svc, nil
}

// List returns every template in catalogue order.
func (s *TemplateService) List() []PageTemplate {
	out := make([]PageTemplate, len(s.templates))
	for i, tpl := range s.templates {
		out[i] = tpl.clone()
	}
	return out
}

// Get returns one template.
func (s *TemplateService) Get(id string) (PageTemplate, error) {
	idx, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return PageTemplate{}, ErrTemplateNotFound
	}
	return s.templates[idx].clone(), nil
}

// Blocks instantiates the template: deep copies with fresh block ids, so two
// pages seeded from the same template never share content.
func (s *TemplateService) Blocks(id string) ([]block.Block, error) {
	tpl, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	blocks := make([]block.Block, 0, len(tpl.Blocks))
	for _, tb := range tpl.Blocks {
		b := block.New(block.ParseType(tb.Type))
		b.Content = block.Content(tb.Content).Clone()
		blocks = append(blocks, b)
	}
	return block.Renumber(blocks), nil
}

func (t PageTemplate) clone() PageTemplate {
	out := t
	out.Blocks = make([]templateBlock, len(t.Blocks))
	for i, b := range t.Blocks {
		out.Blocks[i] = templateBlock{
			Type:    b.Type,
			Content: block.Content(b.Content).Map(),
			Order:   b.Order,
		}
	}
	return out
}
