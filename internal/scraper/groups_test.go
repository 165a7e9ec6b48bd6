package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netvlyx/netvlyx/internal/links"
)

func testDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func testClassifier() *links.Classifier {
	return links.NewClassifier(func(host string) bool { return true }, nil)
}

func TestExtractDownloadGroupsInHeadingSeasonWins(t *testing.T) {
	// A preceding sibling names season 2, but the heading itself names
	// season 3. The heading's own text must win.
	html := `<html><body>
		<p>Season 2</p>
		<h4>Season 3 720p Links [900MB]</h4>
		<p><a href="https://gofile.io/d/abc12">Download 720p</a></p>
	</body></html>`

	groups := ExtractDownloadGroups(testDoc(t, html), TemplateByName("generic"), testClassifier())

	require.Len(t, groups, 1)
	assert.Equal(t, "3", groups[0].Season)
	require.Len(t, groups[0].QualityVariants, 1)
	assert.Equal(t, "720p", groups[0].QualityVariants[0].Quality)
	assert.Equal(t, "900MB", groups[0].QualityVariants[0].Size)
	require.Len(t, groups[0].QualityVariants[0].Links, 1)
	assert.Equal(t, "3", groups[0].QualityVariants[0].Links[0].Season)
}

func TestExtractDownloadGroupsBackwardSeasonSearch(t *testing.T) {
	html := `<html><body>
		<h3>Series Name Season 2 Complete</h3>
		<p>Some description text.</p>
		<h4>720p Links [900MB]</h4>
		<p><a href="https://gofile.io/d/abc12">Download 720p</a></p>
	</body></html>`

	groups := ExtractDownloadGroups(testDoc(t, html), TemplateByName("generic"), testClassifier())

	require.Len(t, groups, 1)
	assert.Equal(t, "2", groups[0].Season)
	assert.Equal(t, "Season 2 - 720p Links [900MB]", groups[0].Title)
}

func TestExtractDownloadGroupsSeparatorBoundary(t *testing.T) {
	// The <hr> marks a season boundary; only the element immediately
	// before it is inspected, so season 1 must not leak across.
	html := `<html><body>
		<p>Season 1</p>
		<p>filler</p>
		<hr>
		<h4>1080p Links [2GB]</h4>
		<p><a href="https://gofile.io/d/xyz99">Download 1080p</a></p>
	</body></html>`

	groups := ExtractDownloadGroups(testDoc(t, html), TemplateByName("generic"), testClassifier())

	require.Len(t, groups, 1)
	assert.Empty(t, groups[0].Season)
}

func TestExtractDownloadGroupsStopsAtPriorQualityHeading(t *testing.T) {
	html := `<html><body>
		<p>Season 4</p>
		<h4>480p Links [300MB]</h4>
		<p><a href="https://gofile.io/d/aaa11">Download 480p</a></p>
		<h4>720p Links [900MB]</h4>
		<p><a href="https://gofile.io/d/bbb22">Download 720p</a></p>
	</body></html>`

	groups := ExtractDownloadGroups(testDoc(t, html), TemplateByName("generic"), testClassifier())

	require.Len(t, groups, 2)
	assert.Equal(t, "4", groups[0].Season)
	// The second heading's backward walk hits the 480p heading first and
	// stops rather than overshooting into season 4's context.
	assert.Empty(t, groups[1].Season)
}

func TestExtractDownloadGroupsVariantURLDedup(t *testing.T) {
	html := `<html><body>
		<h4>720p Links [900MB]</h4>
		<p><a href="https://gofile.io/d/abc12">Download 720p</a></p>
		<p><a href="https://gofile.io/d/abc12">Mirror</a></p>
		<p><a href="https://pixeldrain.com/u/def34">Alt Download</a></p>
	</body></html>`

	groups := ExtractDownloadGroups(testDoc(t, html), TemplateByName("generic"), testClassifier())

	require.Len(t, groups, 1)
	require.Len(t, groups[0].QualityVariants, 1)
	assert.Len(t, groups[0].QualityVariants[0].Links, 2)
}

func TestExtractDownloadGroupsIdempotent(t *testing.T) {
	html := `<html><body>
		<h3>Movie Title</h3>
		<h4>Season 1 480p Links [300MB]</h4>
		<p><a href="https://gofile.io/d/aaa11">Download 480p</a></p>
		<h4>Season 1 720p Links [900MB]</h4>
		<p><a href="https://gofile.io/d/bbb22">Download 720p</a></p>
	</body></html>`

	tpl := TemplateByName("generic")
	first := ExtractDownloadGroups(testDoc(t, html), tpl, testClassifier())
	second := ExtractDownloadGroups(testDoc(t, html), tpl, testClassifier())

	assert.Equal(t, first, second)
}

func TestExtractDownloadGroupsNoLinks(t *testing.T) {
	html := `<html><body><h1>Coming Soon</h1><p>No links yet.</p></body></html>`

	groups := ExtractDownloadGroups(testDoc(t, html), TemplateByName("generic"), testClassifier())

	assert.Empty(t, groups)
}

func TestExtractDownloadGroupsFlatFallback(t *testing.T) {
	// No quality headings and no template buttons: the flat pass should
	// still pick up the obvious download anchor.
	html := `<html><body>
		<p><a href="https://pixeldrain.com/u/def34">Download 1080p</a></p>
		<p><a href="https://example.com/about">About us</a></p>
	</body></html>`

	cls := links.NewClassifier(func(host string) bool {
		return strings.Contains(host, "pixeldrain")
	}, nil)
	groups := ExtractDownloadGroups(testDoc(t, html), TemplateByName("generic"), cls)

	require.Len(t, groups, 1)
	assert.Equal(t, "Downloads", groups[0].Title)
	require.Len(t, groups[0].QualityVariants, 1)
	assert.Equal(t, "1080p", groups[0].QualityVariants[0].Quality)
}

func TestExtractDownloadGroupsBatchDemotion(t *testing.T) {
	html := `<html><body>
		<h4>Season 1 Complete Zip 720p [4GB]</h4>
		<p><a href="https://gofile.io/d/abc12">Download Zip</a></p>
		<h4>720p Episode Links [900MB]</h4>
		<p><a href="https://gofile.io/d/abc12">Episode 1</a></p>
	</body></html>`

	groups := ExtractDownloadGroups(testDoc(t, html), TemplateByName("generic"), testClassifier())

	// The specific copy wins; the batch group loses its only link and is
	// dropped entirely.
	require.Len(t, groups, 1)
	assert.NotContains(t, groups[0].Title, "Zip")
}

func TestExtractDownloadGroupsCodecTag(t *testing.T) {
	html := `<html><body>
		<h4>1080p HEVC Links [1.9GB]</h4>
		<p><a href="https://gofile.io/d/abc12">Download 1080p</a></p>
	</body></html>`

	groups := ExtractDownloadGroups(testDoc(t, html), TemplateByName("generic"), testClassifier())

	require.Len(t, groups, 1)
	require.Len(t, groups[0].QualityVariants, 1)
	assert.Equal(t, "HEVC", groups[0].QualityVariants[0].Codec)
}

func TestExtractDownloadGroupsVariantsBestQualityFirst(t *testing.T) {
	// The flat pass collects 480p before 1080p in document order; the
	// assembled group still lists the better tier first.
	html := `<html><body>
		<p><a href="https://gofile.io/d/aaa11">Download 480p</a></p>
		<p><a href="https://pixeldrain.com/u/bbb22">Download 1080p</a></p>
	</body></html>`

	groups := ExtractDownloadGroups(testDoc(t, html), TemplateByName("generic"), testClassifier())

	require.Len(t, groups, 1)
	require.Len(t, groups[0].QualityVariants, 2)
	assert.Equal(t, "1080p", groups[0].QualityVariants[0].Quality)
	assert.Equal(t, "480p", groups[0].QualityVariants[1].Quality)
}
