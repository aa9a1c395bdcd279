// Package block models typed page blocks: the type registry, per-type editor
// schemas, the HTML renderer and the page draft used by the editor API.
package block

import "strings"

// Type is the tag that selects how a block's content is edited and rendered.
type Type string

const (
	TypeHeroSimple   Type = "hero_simple"
	TypeHeroBanner   Type = "hero_banner"
	TypeText         Type = "text"
	TypeImage        Type = "image"
	TypeImageGallery Type = "image_gallery"
	TypeVideo        Type = "video"
	TypeTwoColumn    Type = "two_column"
	TypeCards        Type = "cards"
	TypeFeatures     Type = "features"
	TypeStats        Type = "stats"
	TypeTeamGrid     Type = "team_grid"
	TypeQuote        Type = "quote"
	TypeTestimonial  Type = "testimonial"
	TypeTimeline     Type = "timeline"
	TypeCTA          Type = "cta"
	TypeAccordion    Type = "accordion"
	TypeDivider      Type = "divider"
)

// Category groups block types in the "add block" picker.
type Category string

const (
	CategoryHeader  Category = "Header"
	CategoryContent Category = "Content"
	CategoryMedia   Category = "Media"
	CategoryLayout  Category = "Layout"
	CategoryPeople  Category = "People"
	CategoryAction  Category = "Action"
)

// Definition describes a block type for pickers and labels.
type Definition struct {
	Type        Type     `json:"id"`
	Label       string   `json:"name"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
}

var definitions = []Definition{
	{Type: TypeHeroSimple, Label: "Hero (Simple)", Icon: "type", Category: CategoryHeader, Description: "Title and subtitle header"},
	{Type: TypeHeroBanner, Label: "Hero (Image)", Icon: "image", Category: CategoryHeader, Description: "Full-width image hero with overlay text"},
	{Type: TypeText, Label: "Text Block", Icon: "type", Category: CategoryContent, Description: "Heading and paragraph"},
	{Type: TypeImage, Label: "Image", Icon: "image", Category: CategoryMedia, Description: "Single image with caption"},
	{Type: TypeImageGallery, Label: "Image Gallery", Icon: "image-plus", Category: CategoryMedia, Description: "Grid of multiple images"},
	{Type: TypeVideo, Label: "Video Embed", Icon: "play-circle", Category: CategoryMedia, Description: "YouTube or video URL"},
	{Type: TypeTwoColumn, Label: "Two Columns", Icon: "columns", Category: CategoryLayout, Description: "Side by side text content"},
	{Type: TypeCards, Label: "Card Grid", Icon: "layout-grid", Category: CategoryContent, Description: "Grid of info cards"},
	{Type: TypeFeatures, Label: "Features List", Icon: "list", Category: CategoryContent, Description: "Feature items with descriptions"},
	{Type: TypeStats, Label: "Stats / Counters", Icon: "bar-chart", Category: CategoryContent, Description: "Animated number counters"},
	{Type: TypeTeamGrid, Label: "Team Grid", Icon: "users", Category: CategoryPeople, Description: "Team members with photos"},
	{Type: TypeQuote, Label: "Quote / Blockquote", Icon: "quote", Category: CategoryContent, Description: "Highlighted quote with author"},
	{Type: TypeTestimonial, Label: "Testimonial", Icon: "message-square", Category: CategoryContent, Description: "Customer testimonial"},
	{Type: TypeTimeline, Label: "Timeline", Icon: "clock", Category: CategoryContent, Description: "Chronological events"},
	{Type: TypeCTA, Label: "Call to Action", Icon: "message-square", Category: CategoryAction, Description: "CTA with button"},
	{Type: TypeAccordion, Label: "Accordion / FAQ", Icon: "chevron-down", Category: CategoryContent, Description: "Expandable Q&A sections"},
	{Type: TypeDivider, Label: "Divider / Spacer", Icon: "minus", Category: CategoryLayout, Description: "Visual separator"},
}

var categoryOrder = []Category{
	CategoryHeader,
	CategoryContent,
	CategoryMedia,
	CategoryLayout,
	CategoryPeople,
	CategoryAction,
}

var definitionLookup = func() map[Type]Definition {
	lookup := make(map[Type]Definition, len(definitions))
	for _, def := range definitions {
		lookup[def.Type] = def
	}
	return lookup
}()

// ParseType normalizes a raw tag. The result may still be unknown.
func ParseType(raw string) Type {
	return Type(strings.ToLower(strings.TrimSpace(raw)))
}

// Known reports whether t is one of the registered block types.
func (t Type) Known() bool {
	_, ok := definitionLookup[t]
	return ok
}

// Lookup returns the definition registered for t.
func Lookup(t Type) (Definition, bool) {
	def, ok := definitionLookup[t]
	return def, ok
}

// Label returns the human label for t, or the raw tag when unknown.
func Label(t Type) string {
	if def, ok := definitionLookup[t]; ok {
		return def.Label
	}
	return string(t)
}

// All returns every definition in registry order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// CategoryGroup is a picker section.
type CategoryGroup struct {
	Category    Category     `json:"category"`
	Definitions []Definition `json:"types"`
}

// Categories groups the registry by category in picker order.
func Categories() []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		group := CategoryGroup{Category: category}
		for _, def := range definitions {
			if def.Category == category {
				group.Definitions = append(group.Definitions, def)
			}
		}
		if len(group.Definitions) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}
