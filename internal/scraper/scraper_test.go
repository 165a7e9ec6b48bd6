package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netvlyx/netvlyx/pkg/logger"
)

func testScraper() *Scraper {
	return New(logger.NewWithLevel(logger.LevelError), testClassifier())
}

const contentPage = `<html><body>
	<h1 class="entry-title">Example Movie (2024)</h1>
	<p>Language: Hindi + English</p>
	<p>Synopsis: A heist crew reassembles for one last score in a city that remembers them.</p>
	<h4>720p Links [900MB]</h4>
	<p><a href="https://gofile.io/d/abc12">Download 720p</a></p>
</body></html>`

func TestExtractContentDebugIsAdditive(t *testing.T) {
	s := testScraper()
	tpl := TemplateByName("generic")

	doc, err := s.Parse(contentPage)
	require.NoError(t, err)
	plain := s.ExtractContent(doc, tpl, false)

	doc, err = s.Parse(contentPage)
	require.NoError(t, err)
	debugged := s.ExtractContent(doc, tpl, true)

	assert.Nil(t, plain.Debug)
	require.NotNil(t, debugged.Debug)
	assert.Equal(t, "generic", debugged.Debug.Template)

	// Debug never alters the primary result shape.
	debugged.Debug = nil
	assert.Equal(t, plain, debugged)
}

func TestExtractContentAssemblesRecord(t *testing.T) {
	s := testScraper()
	doc, err := s.Parse(contentPage)
	require.NoError(t, err)

	record := s.ExtractContent(doc, TemplateByName("generic"), false)

	assert.Equal(t, "Example Movie (2024)", record.Title)
	assert.Equal(t, "Hindi + English", record.Metadata.Language)
	assert.Contains(t, record.Synopsis, "heist crew")
	require.Len(t, record.DownloadGroups, 1)
	assert.NotNil(t, record.Images)
}

func TestExtractContentZeroLinksNote(t *testing.T) {
	s := testScraper()
	doc, err := s.Parse(`<html><body><h1>Coming Soon</h1></body></html>`)
	require.NoError(t, err)

	record := s.ExtractContent(doc, TemplateByName("generic"), true)

	assert.Empty(t, record.DownloadGroups)
	require.NotNil(t, record.Debug)
	assert.NotEmpty(t, record.Debug.Note)
}

func TestExtractEpisodeResponseBatchDemotion(t *testing.T) {
	page := `<html><body><div>
		<h4>Season 1 Complete Batch 720p [4GB]</h4>
		<p><a href="https://gofile.io/d/ep1link">Download Batch</a> <a href="https://gofile.io/d/ziponly">Full Zip</a></p>
		<p>Episode 1</p>
		<p><a href="https://gofile.io/d/ep1link">720p</a></p>
	</div></body></html>`

	s := testScraper()
	doc, err := s.Parse(page)
	require.NoError(t, err)

	resp := s.ExtractEpisodeResponse(doc, TemplateByName("generic"), false)

	require.Len(t, resp.Episodes, 1)
	require.Len(t, resp.BatchGroups, 1)
	for _, v := range resp.BatchGroups[0].QualityVariants {
		for _, l := range v.Links {
			assert.NotEqual(t, "https://gofile.io/d/ep1link", l.URL,
				"episode-held URL must be demoted out of the batch group")
		}
	}
}

func TestExtractContentDebugSamplesAssembledLinks(t *testing.T) {
	s := testScraper()
	doc, err := s.Parse(contentPage)
	require.NoError(t, err)

	record := s.ExtractContent(doc, TemplateByName("generic"), true)

	require.NotNil(t, record.Debug)
	assert.Empty(t, record.Debug.Note)
	require.NotEmpty(t, record.Debug.SampleLinks)
	assert.Equal(t, "Download 720p -> https://gofile.io/d/abc12 [GoFile]", record.Debug.SampleLinks[0])
}
