package block

import (
	"bytes"
	"fmt"
	htmlstd "html"
	"html/template"
	"net/url"
	"strings"

	"github.com/intraportal/internal/view"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// RenderFunc writes the HTML body of one block.
type RenderFunc func(r *Renderer, b Block, buf *strings.Builder)

// Renderer dispatches blocks to per-type render functions. Unknown types
// produce an inert placeholder. Rendering has no side effects.
type Renderer struct {
	handlers  map[Type]RenderFunc
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewRenderer returns a renderer with handlers for every registered type.
func NewRenderer() *Renderer {
	return &Renderer{
		handlers: map[Type]RenderFunc{
			TypeHeroSimple:   renderHeroSimple,
			TypeHeroBanner:   renderHeroBanner,
			TypeText:         renderText,
			TypeImage:        renderImage,
			TypeImageGallery: renderImageGallery,
			TypeVideo:        renderVideo,
			TypeTwoColumn:    renderTwoColumn,
			TypeCards:        renderCards,
			TypeFeatures:     renderFeatures,
			TypeStats:        renderStats,
			TypeTeamGrid:     renderTeamGrid,
			TypeQuote:        renderQuote,
			TypeTestimonial:  renderTestimonial,
			TypeTimeline:     renderTimeline,
			TypeCTA:          renderCTA,
			TypeAccordion:    renderAccordion,
			TypeDivider:      renderDivider,
		},
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
		),
		sanitizer: newSanitizer(),
	}
}

// Handle registers or replaces the render function for t.
func (r *Renderer) Handle(t Type, fn RenderFunc) {
	if fn == nil {
		delete(r.handlers, t)
		return
	}
	r.handlers[t] = fn
}

// Render returns the HTML for a single block.
func (r *Renderer) Render(b Block) template.HTML {
	var buf strings.Builder
	handler, ok := r.handlers[b.Type]
	if !ok {
		fmt.Fprintf(&buf, `<div class="block block-unknown" data-block-type="%s" hidden><!-- block:unknown --></div>`, esc(string(b.Type)))
		return template.HTML(buf.String())
	}

	fmt.Fprintf(&buf, `<section class="block block-%s" data-block-type="%s"`, esc(string(b.Type)), esc(string(b.Type)))
	if b.ID != "" {
		fmt.Fprintf(&buf, ` data-block-id="%s"`, esc(b.ID))
	}
	buf.WriteString(">")
	handler(r, Block{ID: b.ID, Type: b.Type, Content: b.Content, Order: b.Order}, &buf)
	buf.WriteString("</section>")
	return template.HTML(buf.String())
}

// RenderPage renders blocks in Order, keeping input order for ties.
func (r *Renderer) RenderPage(blocks []Block) template.HTML {
	var buf strings.Builder
	for _, b := range SortByOrder(blocks) {
		buf.WriteString(string(r.Render(b)))
	}
	return template.HTML(buf.String())
}

// Markdown converts markdown to sanitized HTML. Lines holding only a video
// URL become player embeds.
func (r *Renderer) Markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var out bytes.Buffer
	if err := r.markdown.Convert([]byte(embedVideoLines(src)), &out); err != nil {
		return template.HTML("<p>" + esc(src) + "</p>")
	}
	return template.HTML(r.sanitizer.SanitizeBytes(out.Bytes()))
}

func esc(s string) string {
	return htmlstd.EscapeString(s)
}

// safeHref keeps relative, anchor, http(s), mailto and tel links. Anything
// else collapses to "#".
func safeHref(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "#"
	}
	if strings.HasPrefix(trimmed, "/") || strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "#"
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return trimmed
	case "":
		return trimmed
	default:
		return "#"
	}
}

func writeHeading(buf *strings.Builder, tag, class, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(buf, `<%s class="%s">%s</%s>`, tag, class, esc(value), tag)
}

func writeParagraph(buf *strings.Builder, class, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(buf, `<p class="%s">%s</p>`, class, esc(value))
}

func writeButton(buf *strings.Builder, text, link string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintf(buf, `<a class="block-button" href="%s">%s</a>`, esc(safeHref(link)), esc(text))
}

func renderHeroSimple(_ *Renderer, b Block, buf *strings.Builder) {
	writeHeading(buf, "h1", "hero-title", b.Content.String("title"))
	writeParagraph(buf, "hero-subtitle", b.Content.String("subtitle"))
}

func renderHeroBanner(_ *Renderer, b Block, buf *strings.Builder) {
	c := b.Content
	if src := c.String("image_url"); src != "" {
		fmt.Fprintf(buf, `<img class="hero-image" src="%s" alt="">`, esc(src))
	}
	if c.Bool("overlay") {
		buf.WriteString(`<div class="hero-overlay"></div>`)
	}
	buf.WriteString(`<div class="hero-body">`)
	writeHeading(buf, "h1", "hero-title", c.String("title"))
	writeParagraph(buf, "hero-subtitle", c.String("subtitle"))
	writeButton(buf, c.String("button_text"), c.String("button_link"))
	buf.WriteString(`</div>`)
}

func renderText(r *Renderer, b Block, buf *strings.Builder) {
	writeHeading(buf, "h2", "block-heading", b.Content.String("heading"))
	if body := r.Markdown(b.Content.String("body")); body != "" {
		fmt.Fprintf(buf, `<div class="block-body">%s</div>`, body)
	}
}

func renderImage(_ *Renderer, b Block, buf *strings.Builder) {
	src := b.Content.String("url")
	if src == "" {
		return
	}
	caption := b.Content.String("caption")
	fmt.Fprintf(buf, `<figure><img src="%s" alt="%s" loading="lazy">`, esc(src), esc(caption))
	if caption != "" {
		fmt.Fprintf(buf, `<figcaption>%s</figcaption>`, esc(caption))
	}
	buf.WriteString(`</figure>`)
}

func renderImageGallery(_ *Renderer, b Block, buf *strings.Builder) {
	writeHeading(buf, "h2", "block-heading", b.Content.String("title"))
	buf.WriteString(`<div class="gallery-grid">`)
	for _, item := range b.Content.Items("items") {
		src := item.String("url")
		if src == "" {
			continue
		}
		caption := item.String("caption")
		fmt.Fprintf(buf, `<figure class="gallery-item"><img src="%s" alt="%s" loading="lazy">`, esc(src), esc(caption))
		if caption != "" {
			fmt.Fprintf(buf, `<figcaption>%s</figcaption>`, esc(caption))
		}
		buf.WriteString(`</figure>`)
	}
	buf.WriteString(`</div>`)
}

func renderVideo(_ *Renderer, b Block, buf *strings.Builder) {
	title := b.Content.String("title")
	writeHeading(buf, "h2", "block-heading", title)
	raw := strings.TrimSpace(b.Content.String("url"))
	if raw != "" {
		if embed, ok := parseVideoEmbed(raw); ok {
			buf.WriteString(videoEmbedHTML(embed, title))
		} else {
			fmt.Fprintf(buf, `<p class="video-link"><a href="%s" target="_blank" rel="noopener noreferrer">%s</a></p>`, esc(safeHref(raw)), esc(raw))
		}
	}
	writeParagraph(buf, "video-caption", b.Content.String("caption"))
}

func renderTwoColumn(r *Renderer, b Block, buf *strings.Builder) {
	fmt.Fprintf(buf, `<div class="column column-left">%s</div>`, r.Markdown(b.Content.String("left_content")))
	fmt.Fprintf(buf, `<div class="column column-right">%s</div>`, r.Markdown(b.Content.String("right_content")))
}

func renderCards(_ *Renderer, b Block, buf *strings.Builder) {
	writeHeading(buf, "h2", "block-heading", b.Content.String("title"))
	buf.WriteString(`<div class="card-grid">`)
	for _, item := range b.Content.Items("items") {
		buf.WriteString(`<article class="card">`)
		writeHeading(buf, "h3", "card-title", item.String("title"))
		writeParagraph(buf, "card-description", item.String("description"))
		buf.WriteString(`</article>`)
	}
	buf.WriteString(`</div>`)
}

func renderFeatures(_ *Renderer, b Block, buf *strings.Builder) {
	writeHeading(buf, "h2", "block-heading", b.Content.String("title"))
	buf.WriteString(`<ul class="feature-list">`)
	for _, item := range b.Content.Items("items") {
		icon := item.String("icon")
		if icon == "" {
			icon = "star"
		}
		fmt.Fprintf(buf, `<li class="feature"><span class="feature-icon" data-icon="%s">%s</span><div>`, esc(icon), view.IconSVG(icon))
		writeHeading(buf, "h3", "feature-title", item.String("title"))
		writeParagraph(buf, "feature-description", item.String("description"))
		buf.WriteString(`</div></li>`)
	}
	buf.WriteString(`</ul>`)
}

func renderStats(_ *Renderer, b Block, buf *strings.Builder) {
	writeHeading(buf, "h2", "block-heading", b.Content.String("title"))
	buf.WriteString(`<dl class="stats">`)
	for _, item := range b.Content.Items("items") {
		fmt.Fprintf(buf, `<div class="stat"><dt>%s</dt><dd data-counter="%s">%s</dd></div>`,
			esc(item.String("label")), esc(item.String("value")), esc(item.String("value")))
	}
	buf.WriteString(`</dl>`)
}

func renderTeamGrid(_ *Renderer, b Block, buf *strings.Builder) {
	writeHeading(buf, "h2", "block-heading", b.Content.String("title"))
	buf.WriteString(`<div class="team-grid">`)
	for _, item := range b.Content.Items("items") {
		name := item.String("name")
		buf.WriteString(`<article class="team-member">`)
		if src := item.String("image_url"); src != "" {
			fmt.Fprintf(buf, `<img src="%s" alt="%s" loading="lazy">`, esc(src), esc(name))
		} else {
			fmt.Fprintf(buf, `<span class="avatar-initials">%s</span>`, esc(initials(name)))
		}
		writeHeading(buf, "h3", "member-name", name)
		writeParagraph(buf, "member-role", item.String("role"))
		writeParagraph(buf, "member-bio", item.String("bio"))
		buf.WriteString(`</article>`)
	}
	buf.WriteString(`</div>`)
}

func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			out = append(out, r)
			break
		}
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

func renderQuote(_ *Renderer, b Block, buf *strings.Builder) {
	fmt.Fprintf(buf, `<blockquote><p>%s</p>`, esc(b.Content.String("text")))
	if author := b.Content.String("author"); author != "" {
		fmt.Fprintf(buf, `<cite>%s</cite>`, esc(author))
	}
	buf.WriteString(`</blockquote>`)
}

func renderTestimonial(_ *Renderer, b Block, buf *strings.Builder) {
	fmt.Fprintf(buf, `<figure class="testimonial"><blockquote>%s</blockquote><figcaption>`, esc(b.Content.String("quote")))
	writeHeading(buf, "strong", "testimonial-author", b.Content.String("author"))
	writeHeading(buf, "span", "testimonial-role", b.Content.String("role"))
	buf.WriteString(`</figcaption></figure>`)
}

func renderTimeline(_ *Renderer, b Block, buf *strings.Builder) {
	writeHeading(buf, "h2", "block-heading", b.Content.String("title"))
	buf.WriteString(`<ol class="timeline">`)
	for _, item := range b.Content.Items("items") {
		buf.WriteString(`<li class="timeline-entry">`)
		writeHeading(buf, "time", "timeline-date", item.String("date"))
		writeHeading(buf, "h3", "timeline-title", item.String("title"))
		writeParagraph(buf, "timeline-description", item.String("description"))
		buf.WriteString(`</li>`)
	}
	buf.WriteString(`</ol>`)
}

func renderCTA(_ *Renderer, b Block, buf *strings.Builder) {
	writeHeading(buf, "h2", "cta-title", b.Content.String("title"))
	writeParagraph(buf, "cta-description", b.Content.String("description"))
	writeButton(buf, b.Content.String("button_text"), b.Content.String("button_link"))
}

func renderAccordion(r *Renderer, b Block, buf *strings.Builder) {
	writeHeading(buf, "h2", "block-heading", b.Content.String("title"))
	for _, item := range b.Content.Items("items") {
		fmt.Fprintf(buf, `<details class="accordion-item"><summary>%s</summary><div class="accordion-body">%s</div></details>`,
			esc(item.String("title")), r.Markdown(item.String("body")))
	}
}

func renderDivider(_ *Renderer, _ Block, buf *strings.Builder) {
	buf.WriteString(`<hr class="divider">`)
}
