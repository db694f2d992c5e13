package extract

import (
	"io"
	"strings"

	"github.com/matheuskafuri/cardex/internal/card"
	"github.com/mmcdole/gofeed"
)

// ExtractFeed decodes an RSS/Atom payload where each item describes one
// card: title becomes the name, the item image or first image enclosure
// becomes the image URL. Unparseable feeds and imageless items yield
// nothing, matching the extractor's empty-not-error contract.
func ExtractFeed(r io.Reader) []card.Card {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil
	}

	var out []card.Card
	for _, item := range feed.Items {
		name := strings.TrimSpace(item.Title)
		image := feedImage(item)
		if name == "" || image == "" {
			continue
		}

		id := strings.TrimSpace(item.GUID)
		if id == "" {
			id = card.DeriveID(name, "", image)
		}

		out = append(out, card.Card{
			ID:       id,
			Name:     name,
			ImageURL: image,
			Info:     strings.TrimSpace(item.Description),
		})
	}
	return out
}

func feedImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}
