// Package extractor walks a threadster.app download page and pulls out the
// post metadata and media links.
package extractor

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/threadster/models"
	"golang.org/x/net/html"
)

// Selectors for the mirror page markup.
var (
	selWrapper    = cascadia.MustCompile("div.download__wrapper")
	selItem       = cascadia.MustCompile("div.download_item")
	selProfilePic = cascadia.MustCompile("div.download__item__profile_pic")
	selImg        = cascadia.MustCompile("img")
	selSpan       = cascadia.MustCompile("span")
	selCaption    = cascadia.MustCompile("div.download__item__caption__text")
	selTable      = cascadia.MustCompile("table")

	// Download buttons match on the exact class attribute, not the class set.
	selAction = cascadia.MustCompile(`a[class="btn download__item__info__actions__button"]`)
)

// Extract parses a download page.
//
// The page must contain a download wrapper with at least one download item.
// Profile and caption fields are read from the first item and fall back to
// "" when missing; links are gathered from every item and deduplicated.
func Extract(body []byte) (*models.Thread, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extractor: parse html: %w", err)
	}
	doc := node{sel: goquery.NewDocumentFromNode(root).Selection}

	wrapper := doc.first(selWrapper)
	if !wrapper.present() {
		return nil, models.NewThreadError(models.ErrCodeNoContentFound, models.MsgNoContentFound, nil)
	}

	items := wrapper.all(selItem)
	if len(items) == 0 {
		return nil, models.NewThreadError(models.ErrCodeNoDownloadItems, models.MsgNoDownloadItems, nil)
	}

	profile := items[0].first(selProfilePic)
	thread := &models.Thread{
		Avatar:   profile.first(selImg).attr("src"),
		Username: profile.first(selSpan).text(),
		Caption:  items[0].first(selCaption).text(),
	}

	var links []string
	for _, item := range items {
		for _, a := range item.first(selTable).all(selAction) {
			if href := a.attr("href"); href != "" {
				links = append(links, href)
			}
		}
	}
	thread.Links = dedupe(links)

	return thread, nil
}

// dedupe drops repeated links, keeping the first occurrence of each.
func dedupe(links []string) []string {
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
