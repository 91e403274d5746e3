package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// node is a possibly-absent element. Lookups on an absent node return an
// absent node and reads return "", so chains never need nil checks.
type node struct {
	sel *goquery.Selection
}

func (n node) present() bool {
	return n.sel != nil && n.sel.Length() > 0
}

// first returns the first descendant matching sel.
func (n node) first(sel cascadia.Selector) node {
	if !n.present() {
		return node{}
	}
	return node{sel: n.sel.FindMatcher(sel).First()}
}

// all returns every descendant matching sel in document order.
func (n node) all(sel cascadia.Selector) []node {
	if !n.present() {
		return nil
	}
	found := n.sel.FindMatcher(sel)
	out := make([]node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, node{sel: s})
	})
	return out
}

func (n node) attr(name string) string {
	if !n.present() {
		return ""
	}
	v, _ := n.sel.Attr(name)
	return v
}

func (n node) text() string {
	if !n.present() {
		return ""
	}
	return strings.TrimSpace(n.sel.Text())
}
