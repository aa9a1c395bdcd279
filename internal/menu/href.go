package menu

import (
	"strings"
)

// PagePath returns the public path of a page slug.
func PagePath(slug string) string {
	return "/page/" + strings.Trim(strings.TrimSpace(slug), "/")
}

// ResolveHref picks the link target of an item. A page reference wins over
// the stored path when its slug is known. Without a slug the stored path is
// used; MenuService writes /page/<slug> into it whenever the reference is
// saved or the page slug changes. An empty string means the item is inert
// and must not navigate.
func ResolveHref(item Item, pageSlugs map[uint]string) string {
	if item.PageID != nil && pageSlugs != nil {
		if slug, ok := pageSlugs[*item.PageID]; ok && strings.TrimSpace(slug) != "" {
			return PagePath(slug)
		}
	}
	path := strings.TrimSpace(item.Path)
	if path == "" || path == "#" {
		return ""
	}
	return path
}

// IsExternal reports whether href leaves the site.
func IsExternal(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "//")
}

// safeHref rejects script-bearing schemes.
func safeHref(href string) string {
	lower := strings.ToLower(strings.TrimSpace(href))
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "vbscript:") {
		return ""
	}
	return href
}

// normalizeRoute makes paths comparable: leading slash, no duplicate or trailing slashes.
func normalizeRoute(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}

// IsActive reports whether href points at current.
func IsActive(href, current string) bool {
	if href == "" || IsExternal(href) {
		return false
	}
	return normalizeRoute(href) == normalizeRoute(current)
}
