package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseHTML(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

const practicePage = `<html><body>
<main>
  <h1>Something Else Entirely</h1>
  <div class="description__copy-wrapper">
    <p>An award-winning studio working across housing and culture sectors.</p>
    <p>Website</p>
    <p>Founded on the south coast, the practice focuses on retrofit.</p>
    <a href="https://www.example-architects.co.uk">Website</a>
    <a href="https://www.instagram.com/examplearchitects">Instagram</a>
  </div>
  <div class="description__contacts">
    Address 12 Harbour Lane, Brighton BN1 1AA Contact
    <a href="mailto:jane@example-architects.co.uk">Jane Doe</a>
    <a href="mailto:jane@example-architects.co.uk">jane@example-architects.co.uk</a>
    <a href="https://twitter.com/examplearch">Twitter</a>
  </div>
  <div>Years active 27 (Avg 21)</div>
  <div>Professional staff 5 - 19</div>
</main>
</body></html>`

func TestParsePractice(t *testing.T) {
	doc := parseHTML(t, practicePage)
	rec := parsePractice("https://architectdirectory.co.uk/practice/example-architects", doc)

	assert.Equal(t, "Example Architects", rec.Name)
	assert.Equal(t, "https://www.example-architects.co.uk", rec.Website)
	assert.Equal(t, "jane@example-architects.co.uk", rec.Email)
	assert.Equal(t, "Jane Doe", rec.Contact)
	assert.Equal(t, "12 Harbour Lane, Brighton BN1 1AA", rec.Address)
	assert.Contains(t, rec.Description, "award-winning studio")
	assert.Contains(t, rec.Description, "focuses on retrofit")
	assert.NotContains(t, rec.Description, "Website")
	assert.Equal(t, "27", rec.YearsActive)
	assert.Equal(t, "5 - 19", rec.Staff)
	assert.ElementsMatch(t, []string{
		"https://www.instagram.com/examplearchitects",
		"https://twitter.com/examplearch",
	}, rec.Socials)
}

func TestParsePractice_NameFallsBackToHeading(t *testing.T) {
	doc := parseHTML(t, `<html><body><h1>Studio North</h1></body></html>`)
	rec := parsePractice("https://architectdirectory.co.uk/other-page", doc)
	assert.Equal(t, "Studio North", rec.Name)
}

func TestParsePractice_DirectoryEmailIgnored(t *testing.T) {
	doc := parseHTML(t, `<html><body><main>
		<div class="description__contacts">
			<a href="mailto:info@architectdirectory.co.uk">info@architectdirectory.co.uk</a>
		</div>
	</main></body></html>`)
	rec := parsePractice("https://architectdirectory.co.uk/practice/x", doc)
	assert.Empty(t, rec.Email)
}

func TestExtractPracticeLinks(t *testing.T) {
	doc := parseHTML(t, `<html><body>
		<a href="/practice/alpha-studio/">Alpha</a>
		<a href="/practice/alpha-studio/?ref=home">Alpha again</a>
		<a href="https://architectdirectory.co.uk/practice/beta-workshop#about">Beta</a>
		<a href="/about/">Not a practice</a>
	</body></html>`)

	links := extractPracticeLinks(doc, BaseURL)
	assert.Equal(t, []string{
		"https://architectdirectory.co.uk/practice/alpha-studio",
		"https://architectdirectory.co.uk/practice/beta-workshop",
	}, links)
}

func TestNameFromSlug(t *testing.T) {
	assert.Equal(t, "Hugh Broughton Architects",
		nameFromSlug("https://architectdirectory.co.uk/practice/hugh-broughton-architects/"))
	assert.Equal(t, "", nameFromSlug("https://architectdirectory.co.uk/architects/"))
}

func TestHostClassification(t *testing.T) {
	assert.True(t, isSocialURL("https://www.instagram.com/studio"))
	assert.True(t, isSocialURL("https://x.com/studio"))
	assert.False(t, isSocialURL("https://studio.example.co.uk"))
	assert.False(t, isSocialURL("/practice/studio"))

	assert.True(t, isWebsiteCandidate("https://studio.example.co.uk"))
	assert.False(t, isWebsiteCandidate("https://www.facebook.com/studio"))
	assert.False(t, isWebsiteCandidate("https://architectdirectory.co.uk/practice/studio"))
	assert.False(t, isWebsiteCandidate("mailto:studio@example.co.uk"))
}
