package menu

import (
	"fmt"
	htmlstd "html"
	"html/template"
	"strings"

	"github.com/intraportal/internal/view"
)

// RenderOptions carries request state into the renderers.
type RenderOptions struct {
	// Current is the request path used to mark active items.
	Current string
	// PageSlugs resolves page references. Nil uses stored paths only.
	PageSlugs map[uint]string
}

type linkState struct {
	href     string
	active   bool
	trail    bool
	external bool
}

func resolveLink(node *Node, opts RenderOptions) linkState {
	href := safeHref(ResolveHref(node.Item, opts.PageSlugs))
	return linkState{
		href:     href,
		active:   IsActive(href, opts.Current),
		trail:    containsActive(node.Children, opts),
		external: IsExternal(href),
	}
}

func containsActive(nodes []*Node, opts RenderOptions) bool {
	for _, node := range nodes {
		if IsActive(ResolveHref(node.Item, opts.PageSlugs), opts.Current) {
			return true
		}
		if containsActive(node.Children, opts) {
			return true
		}
	}
	return false
}

// writeLabel writes an anchor, or a span when the item is inert.
func writeLabel(buf *strings.Builder, node *Node, link linkState, class string) {
	icon := ""
	if node.Icon != "" {
		icon = fmt.Sprintf(`<span class="menu-icon" data-icon="%s">%s</span>`, htmlstd.EscapeString(node.Icon), view.IconSVG(node.Icon))
	}
	label := htmlstd.EscapeString(node.Label)

	if link.href == "" {
		fmt.Fprintf(buf, `<span class="%s menu-inert">%s%s</span>`, class, icon, label)
		return
	}

	attrs := ""
	if link.active {
		attrs += ` aria-current="page"`
	}
	if node.OpenInNewTab {
		attrs += ` target="_blank" rel="noopener noreferrer"`
	} else if link.external {
		attrs += ` rel="noopener"`
	}
	fmt.Fprintf(buf, `<a class="%s" href="%s"%s>%s%s</a>`, class, htmlstd.EscapeString(link.href), attrs, icon, label)
}

func itemClasses(node *Node, link linkState) string {
	classes := []string{"menu-item", fmt.Sprintf("menu-depth-%d", node.Depth)}
	if len(node.Children) > 0 {
		classes = append(classes, "has-children")
	}
	if link.active {
		classes = append(classes, "is-active")
	}
	if link.trail {
		classes = append(classes, "is-active-trail")
	}
	return strings.Join(classes, " ")
}

// RenderDesktop renders hover navigation: level-2 lists are dropdowns and
// level-3 lists are side flyouts.
func RenderDesktop(nodes []*Node, opts RenderOptions) template.HTML {
	var buf strings.Builder
	buf.WriteString(`<nav class="menu menu-desktop" aria-label="Main">`)
	writeDesktopList(&buf, nodes, 1, opts)
	buf.WriteString(`</nav>`)
	return template.HTML(buf.String())
}

func writeDesktopList(buf *strings.Builder, nodes []*Node, depth int, opts RenderOptions) {
	switch depth {
	case 1:
		buf.WriteString(`<ul class="menu-level-1">`)
	case 2:
		buf.WriteString(`<ul class="menu-level-2 menu-dropdown" data-dropdown>`)
	default:
		buf.WriteString(`<ul class="menu-level-3 menu-flyout" data-flyout>`)
	}
	for _, node := range nodes {
		link := resolveLink(node, opts)
		fmt.Fprintf(buf, `<li class="%s" data-menu-id="%d">`, itemClasses(node, link), node.ID)
		writeLabel(buf, node, link, "menu-link")
		if len(node.Children) > 0 && depth < MaxDepth {
			writeDesktopList(buf, node.Children, depth+1, opts)
		}
		buf.WriteString(`</li>`)
	}
	buf.WriteString(`</ul>`)
}

// RenderMobile renders accordion navigation. Sections are <details> elements
// without the open attribute, so every level starts closed and expands on
// its own. Following a link loads a new page, which closes the menu again.
func RenderMobile(nodes []*Node, opts RenderOptions) template.HTML {
	var buf strings.Builder
	buf.WriteString(`<nav class="menu menu-mobile" aria-label="Mobile">`)
	writeMobileList(&buf, nodes, 1, opts)
	buf.WriteString(`</nav>`)
	return template.HTML(buf.String())
}

func writeMobileList(buf *strings.Builder, nodes []*Node, depth int, opts RenderOptions) {
	fmt.Fprintf(buf, `<ul class="menu-level-%d">`, depth)
	for _, node := range nodes {
		link := resolveLink(node, opts)
		fmt.Fprintf(buf, `<li class="%s" data-menu-id="%d">`, itemClasses(node, link), node.ID)
		if len(node.Children) == 0 || depth >= MaxDepth {
			writeLabel(buf, node, link, "menu-link")
			buf.WriteString(`</li>`)
			continue
		}

		fmt.Fprintf(buf, `<details class="menu-section"><summary>%s</summary>`, htmlstd.EscapeString(node.Label))
		if link.href != "" {
			buf.WriteString(`<div class="menu-section-link">`)
			writeLabel(buf, node, link, "menu-link")
			buf.WriteString(`</div>`)
		}
		writeMobileList(buf, node.Children, depth+1, opts)
		buf.WriteString(`</details></li>`)
	}
	buf.WriteString(`</ul>`)
}

// Crumb is one breadcrumb entry. Href is empty for the current page and inert items.
type Crumb struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

// Breadcrumbs returns the trail from the root to the item matching current.
// The trail is empty when no item matches.
func Breadcrumbs(nodes []*Node, opts RenderOptions) []Crumb {
	var trail []*Node
	var find func(level []*Node) bool
	find = func(level []*Node) bool {
		for _, node := range level {
			trail = append(trail, node)
			if IsActive(ResolveHref(node.Item, opts.PageSlugs), opts.Current) {
				return true
			}
			if find(node.Children) {
				return true
			}
			trail = trail[:len(trail)-1]
		}
		return false
	}
	if !find(nodes) {
		return nil
	}

	crumbs := make([]Crumb, 0, len(trail))
	for i, node := range trail {
		href := safeHref(ResolveHref(node.Item, opts.PageSlugs))
		if i == len(trail)-1 {
			href = ""
		}
		crumbs = append(crumbs, Crumb{Label: node.Label, Href: href})
	}
	return crumbs
}
