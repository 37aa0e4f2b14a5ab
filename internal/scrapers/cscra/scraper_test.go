package cscra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

const statutePage = `<html><head><title>毒性及關注化學物質管理法</title></head>
<body><div>第 1 條</div><div>為防制毒性及關注化學物質污染環境或危害人體健康</div></body></html>`

func testSource(url string) domain.Source {
	return domain.Source{
		ID:           "src-cscra",
		Type:         "cscra",
		Slug:         "tw_cscra_moenv",
		Jurisdiction: domain.MarketTW,
		Dataset:      domain.KindRegulation,
		URL:          url,
		Config:       map[string]string{"language": "zh-TW"},
	}
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(testSource(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScraper_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(statutePage)) //nolint:errcheck
	}))
	defer server.Close()

	scraper, err := New(testSource(server.URL + "/LawClass/LawAll.aspx?pcode=M0060060"))
	require.NoError(t, err)
	defer scraper.Close()

	snapsChan, errsChan := scraper.Fetch(context.Background())

	var snapshots []domain.RawSnapshot
	for snap := range snapsChan {
		snapshots = append(snapshots, snap)
	}
	complete, ok := driven.IsSyncComplete(<-errsChan)
	require.True(t, ok)
	assert.NotEmpty(t, complete.NewCursor)

	require.Len(t, snapshots, 1)
	snap := snapshots[0]
	assert.Equal(t, "毒性及關注化學物質管理法", snap.Title)
	assert.Contains(t, string(snap.HTML), "第 1 條")
	assert.Equal(t, "M0060060", snap.Metadata["pcode"])
	assert.Equal(t, "zh-TW", snap.Metadata["language"])
}

func TestPcodeFromURL(t *testing.T) {
	assert.Equal(t, "M0060060", pcodeFromURL("https://law.moj.gov.tw/LawClass/LawAll.aspx?pcode=M0060060"))
	assert.Equal(t, "M0060060", pcodeFromURL("https://law.moj.gov.tw/ENG/LawClass/LawAll.aspx?PCode=M0060060"))
	assert.Empty(t, pcodeFromURL("https://law.moj.gov.tw/"))
}

func TestScraper_Fetch_AfterClose(t *testing.T) {
	scraper, err := New(testSource("http://example.invalid"))
	require.NoError(t, err)
	require.NoError(t, scraper.Close())

	snapsChan, errsChan := scraper.Fetch(context.Background())
	for range snapsChan {
	}
	assert.ErrorIs(t, <-errsChan, domain.ErrScraperClosed)
}

func TestScraper_Watch_NotSupported(t *testing.T) {
	scraper, err := New(testSource("http://example.invalid"))
	require.NoError(t, err)
	defer scraper.Close()

	_, err = scraper.Watch(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
