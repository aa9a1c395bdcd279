package service

import (
	"testing"

	"github.com/intraportal/internal/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCatalogueUsesKnownBlockTypes(t *testing.T) {
	svc, err := NewTemplateService()
	require.NoError(t, err)

	templates := svc.List()
	require.Len(t, templates, 8)
	assert.Equal(t, BlankTemplateID, templates[0].ID)
	assert.Empty(t, templates[0].Blocks)

	for _, tpl := range templates {
		for i, b := range tpl.Blocks {
			assert.Truef(t, block.ParseType(b.Type).Known(), "%s block %d has unknown type %q", tpl.ID, i, b.Type)
			assert.Equal(t, i, b.Order)
		}
	}
}

func TestTemplateBlocksAreIndependentCopies(t *testing.T) {
	svc, err := NewTemplateService()
	require.NoError(t, err)

	first, err := svc.Blocks("corporate")
	require.NoError(t, err)
	second, err := svc.Blocks("corporate")
	require.NoError(t, err)
	require.Len(t, first, len(second))

	assert.NotEqual(t, first[0].ID, second[0].ID)
	first[0].Content["title"] = "Changed"
	assert.Equal(t, "Company Name", second[0].Content.String("title"))

	items := first[2].Content.Items("items")
	require.NotEmpty(t, items)

	again, err := svc.Get("corporate")
	require.NoError(t, err)
	assert.Equal(t, "Company Name", again.Blocks[0].Content["title"])

	_, err = svc.Blocks("missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestParseTemplatesRejectsDuplicateIDs(t *testing.T) {
	_, err := parseTemplates([]byte("- id: a\n  name: A\n- id: a\n  name: B\n"))
	assert.Error(t, err)

	_, err = parseTemplates([]byte("- name: nameless\n"))
	assert.Error(t, err)
}

func TestTemplateCatalogueKeepsPunctuatedItems(t *testing.T) {
	svc, err := NewTemplateService()
	require.NoError(t, err)

	blocks, err := svc.Blocks("service")
	require.NoError(t, err)

	var faq []block.Content
	for _, b := range blocks {
		if b.Type == block.TypeAccordion {
			faq = b.Content.Items("items")
		}
	}
	require.Len(t, faq, 3)
	assert.Equal(t, "What is included?", faq[0].String("title"))
	assert.Equal(t, "Answer...", faq[0].String("body"))
	assert.Equal(t, "What are the costs?", faq[2].String("title"))
}
