package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

func TestRegulationStore_Snapshots(t *testing.T) {
	store := NewRegulationStore()
	ctx := context.Background()

	err := store.SaveSnapshot(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"snap-old", "snap-new"} {
		require.NoError(t, store.SaveSnapshot(ctx, &domain.Snapshot{
			ID:        id,
			SourceID:  "src-1",
			Slug:      "eu_reach_eurlex",
			SHA256:    id,
			FetchedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	snap, err := store.GetSnapshot(ctx, "snap-old")
	require.NoError(t, err)
	assert.Equal(t, "snap-old", snap.ID)

	latest, err := store.LatestSnapshot(ctx, "eu_reach_eurlex")
	require.NoError(t, err)
	assert.Equal(t, "snap-new", latest.ID)

	_, err = store.LatestSnapshot(ctx, "no-such-slug")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	snaps, err := store.ListSnapshots(ctx, "eu_reach_eurlex", 1)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "snap-new", snaps[0].ID)
}

func TestRegulationStore_Sections(t *testing.T) {
	store := NewRegulationStore()
	ctx := context.Background()

	sections := []domain.Section{
		{ID: "sec-2", SnapshotID: "snap-1", Citation: "Article 2", Position: 1},
		{ID: "sec-1", SnapshotID: "snap-1", Citation: "Article 1", Position: 0},
	}
	require.NoError(t, store.SaveSections(ctx, sections))

	retrieved, err := store.GetSections(ctx, "snap-1")
	require.NoError(t, err)
	require.Len(t, retrieved, 2)
	assert.Equal(t, "sec-1", retrieved[0].ID)

	sec, err := store.GetSection(ctx, "sec-2")
	require.NoError(t, err)
	assert.Equal(t, "Article 2", sec.Citation)

	_, err = store.GetSection(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegulationStore_Listings(t *testing.T) {
	store := NewRegulationStore()
	ctx := context.Background()

	require.NoError(t, store.SaveListings(ctx, "src-eu", []domain.Listing{
		{ID: "l-eu", SourceID: "src-eu", Jurisdiction: domain.MarketEU,
			CAS: "50-00-0", ChemicalName: "Formaldehyde",
			Classification: domain.ClassificationRestricted},
	}))
	require.NoError(t, store.SaveListings(ctx, "src-tw", []domain.Listing{
		{ID: "l-tw", SourceID: "src-tw", Jurisdiction: domain.MarketTW,
			CAS: "50-00-0", ChemicalName: "formaldehyde",
			Classification: domain.ClassificationListed},
	}))

	euOnly, err := store.ListingsByCAS(ctx, []string{"50-00-0"}, domain.MarketEU)
	require.NoError(t, err)
	require.Len(t, euOnly, 1)
	assert.Equal(t, "l-eu", euOnly[0].ID)

	all, err := store.ListingsByCAS(ctx, []string{"50-00-0"}, domain.MarketGlobal)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := store.ListingsByName(ctx, "FORMALDEHYDE", domain.MarketTW)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "l-tw", byName[0].ID)

	// Replacing previous listings for a source.
	require.NoError(t, store.SaveListings(ctx, "src-eu", nil))
	euOnly, err = store.ListingsByCAS(ctx, []string{"50-00-0"}, domain.MarketEU)
	require.NoError(t, err)
	assert.Empty(t, euOnly)
}

func TestRegulationStore_DeleteBySource(t *testing.T) {
	store := NewRegulationStore()
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, &domain.Snapshot{
		ID: "snap-1", SourceID: "src-1", Slug: "eu_reach_eurlex", FetchedAt: time.Now(),
	}))
	require.NoError(t, store.SaveSections(ctx, []domain.Section{
		{ID: "sec-1", SnapshotID: "snap-1"},
	}))
	require.NoError(t, store.SaveListings(ctx, "src-1", []domain.Listing{
		{ID: "l-1", SourceID: "src-1", Jurisdiction: domain.MarketEU, CAS: "50-00-0"},
	}))

	require.NoError(t, store.DeleteBySource(ctx, "src-1"))

	_, err := store.GetSnapshot(ctx, "snap-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	secs, err := store.GetSections(ctx, "snap-1")
	require.NoError(t, err)
	assert.Empty(t, secs)

	listings, err := store.ListingsByCAS(ctx, []string{"50-00-0"}, domain.MarketGlobal)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestChemicalStore_SaveAndGet(t *testing.T) {
	store := NewChemicalStore()
	ctx := context.Background()

	err := store.Save(ctx, domain.Chemical{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	chem := domain.Chemical{Name: "Bisphenol A", CID: 6623, CASNumbers: []string{"80-05-7"}}
	require.NoError(t, store.Save(ctx, chem))

	retrieved, err := store.GetByName(ctx, "bisphenol a")
	require.NoError(t, err)
	assert.Equal(t, int64(6623), retrieved.CID)

	_, err = store.GetByName(ctx, "unobtainium")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiagnosisStore_SaveAndHistory(t *testing.T) {
	store := NewDiagnosisStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(ctx, &domain.Diagnosis{}), domain.ErrInvalidInput)

	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"diag-1", "diag-2", "diag-3"} {
		require.NoError(t, store.Save(ctx, &domain.Diagnosis{
			ID:          id,
			Chemical:    domain.Chemical{Name: "benzene"},
			Market:      domain.MarketUS,
			Status:      domain.StatusListed,
			DiagnosedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	history, err := store.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "diag-3", history[0].ID)
	assert.Equal(t, "diag-2", history[1].ID)
}

func TestSchedulerStore_Memory(t *testing.T) {
	store := NewSchedulerStore()
	ctx := context.Background()

	task, err := store.GetTask(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, task)

	require.NoError(t, store.SaveTask(ctx, &domain.ScheduledTask{
		ID: domain.TaskIDFreshnessCheck, Name: "Freshness Check", Interval: 24 * time.Hour, Enabled: true,
	}))

	task, err = store.GetTask(ctx, domain.TaskIDFreshnessCheck)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, 24*time.Hour, task.Interval)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordResult(ctx, &domain.TaskResult{
			TaskID:    domain.TaskIDFreshnessCheck,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Success:   true,
		}))
	}

	require.NoError(t, store.PruneHistory(ctx, 2))
	history, err := store.GetTaskHistory(ctx, domain.TaskIDFreshnessCheck, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, base.Add(4*time.Minute).Equal(history[0].StartedAt))
}
