// Package dom wraps goquery with the small set of query helpers the scraper
// needs: ordered selector fallback chains, anchor extraction and
// label-anchored value lookup.
package dom

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy is one attempt in an ordered selector fallback chain. Each
// strategy is a pure lookup against the rendered document, so site-markup
// assumptions stay isolated and swappable.
type Strategy struct {
	Name     string
	Selector string
}

// Parse builds a queryable document from rendered page HTML.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// FirstMatch tries strategies in order and returns the selection of the
// first one that matches at least one node, with the strategy name for
// logging. Matches are never merged across strategies.
func FirstMatch(doc *goquery.Document, strategies []Strategy) (*goquery.Selection, string, bool) {
	for _, s := range strategies {
		sel := doc.Find(s.Selector)
		if sel.Length() > 0 {
			return sel, s.Name, true
		}
	}
	return nil, "", false
}

// Anchor is a link with its visible text cleaned up.
type Anchor struct {
	Text string
	Href string
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// Anchors extracts href and collapsed anchor text from each node in sel.
func Anchors(sel *goquery.Selection) []Anchor {
	anchors := make([]Anchor, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		text = innerWhitespace.ReplaceAllString(text, " ")
		anchors = append(anchors, Anchor{Text: text, Href: href})
	})
	return anchors
}

// ErrLabelNotFound reports that a semantic marker expected on the page is
// absent, so a label-anchored extraction cannot proceed.
var ErrLabelNotFound = errors.New("label not found")

// LabeledGroup finds the element whose trimmed text equals label, climbs to
// the nearest enclosing container that holds valueSel matches, and returns
// their texts in document order. This anchors value extraction to a named
// marker instead of positional offsets into the whole page.
func LabeledGroup(doc *goquery.Document, label, valueSel string) ([]string, error) {
	var values []string
	found := false
	doc.Find("p, span, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) != label {
			return true
		}
		for row := s.Parent(); row.Length() > 0; row = row.Parent() {
			vals := row.Find(valueSel)
			if vals.Length() == 0 {
				continue
			}
			vals.Each(func(_ int, v *goquery.Selection) {
				values = append(values, strings.TrimSpace(v.Text()))
			})
			found = true
			return false
		}
		return true
	})
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrLabelNotFound, label)
	}
	return values, nil
}
