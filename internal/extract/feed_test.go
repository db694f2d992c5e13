package extract

import (
	"strings"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Card Catalog Updates</title>
    <item>
      <title>Aeon Knight</title>
      <guid>aeon-knight-001</guid>
      <description>Legendary knight of the first set</description>
      <enclosure url="https://img/aeon-knight.png" type="image/png" length="1024"/>
    </item>
    <item>
      <title>Imageless Card</title>
      <guid>imageless-002</guid>
    </item>
    <item>
      <title>Audio Attachment</title>
      <enclosure url="https://img/podcast.mp3" type="audio/mpeg" length="2048"/>
    </item>
  </channel>
</rss>`

func TestExtractFeed(t *testing.T) {
	got := ExtractFeed(strings.NewReader(sampleRSS))
	if len(got) != 1 {
		t.Fatalf("expected 1 card (items without images skipped), got %d", len(got))
	}
	c := got[0]
	if c.Name != "Aeon Knight" {
		t.Errorf("expected name from title, got %q", c.Name)
	}
	if c.ImageURL != "https://img/aeon-knight.png" {
		t.Errorf("expected enclosure image, got %q", c.ImageURL)
	}
	if c.ID != "aeon-knight-001" {
		t.Errorf("expected guid as id, got %q", c.ID)
	}
	if c.Info == "" {
		t.Error("expected description carried into info")
	}
}

func TestExtractFeedInvalid(t *testing.T) {
	if got := ExtractFeed(strings.NewReader("not a feed at all")); len(got) != 0 {
		t.Errorf("expected no cards from invalid feed, got %v", got)
	}
}
