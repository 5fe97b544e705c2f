// Package wiki provides page lookup for internal links.
package wiki

import (
	"net/url"
	"strings"
)

// PageName normalizes page title the way wiki engines usually do: surrounding
// spaces are dropped and inner runs of spaces become single underscore.
func PageName(page string) string {
	return strings.Join(strings.Fields(page), "_")
}

func pageURL(base, page string) string {
	return base + url.PathEscape(PageName(page))
}

// Static is a wiki described entirely by configuration. When no pages are
// listed every page is considered to exist.
type Static struct {
	base  string
	pages map[string]struct{}
}

func NewStatic(baseURL string, pages []string) *Static {
	s := &Static{base: baseURL}
	if len(pages) > 0 {
		s.pages = make(map[string]struct{}, len(pages))
		for _, p := range pages {
			s.pages[PageName(p)] = struct{}{}
		}
	}
	return s
}

func (s *Static) HasPage(page string) bool {
	if s.pages == nil {
		return true
	}
	_, ok := s.pages[PageName(page)]
	return ok
}

func (s *Static) URLForPage(page string) string {
	return pageURL(s.base, page)
}
