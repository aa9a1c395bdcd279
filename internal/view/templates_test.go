package view

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
)

func TestTemplatesRenderPageAndNotFound(t *testing.T) {
	tpl, err := Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}

	data := map[string]any{
		"siteName":    "Portal",
		"metaTitle":   "About",
		"year":        2026,
		"desktopMenu": template.HTML(`<ul class="menu"></ul>`),
		"page":        map[string]any{"Slug": "about", "IsPublished": true},
		"content":     template.HTML(`<section class="block">Hi</section>`),
		"breadcrumbs": []map[string]string{{"Label": "Corporate", "Href": "/corporate"}, {"Label": "About", "Href": ""}},
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "page.html", data); err != nil {
		t.Fatalf("render page: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`data-page-slug="about"`, `<ul class="menu"></ul>`, `aria-current="page">About`, `<title>About | Portal</title>`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := tpl.ExecuteTemplate(&buf, "not_found.html", map[string]any{"siteName": "Portal", "metaTitle": "Not found"}); err != nil {
		t.Fatalf("render not found: %v", err)
	}
	if !strings.Contains(buf.String(), "Page not found") {
		t.Fatalf("unexpected not found output: %s", buf.String())
	}
}
