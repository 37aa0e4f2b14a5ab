package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driven/storage/memory"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers"
)

func newTestSourceService() (*SourceService, *memory.SourceStore, *memory.RegulationStore) {
	sourceStore := memory.NewSourceStore()
	syncStore := memory.NewSyncStateStore()
	regStore := memory.NewRegulationStore()
	svc := NewSourceService(sourceStore, syncStore, regStore, nil, scrapers.DefaultFactory())
	return svc, sourceStore, regStore
}

func validSource() domain.Source {
	return domain.Source{
		Type:         "eurlex",
		Slug:         "eu_reach_eurlex",
		Name:         "REACH Annex XVII",
		Jurisdiction: domain.MarketEU,
		Dataset:      domain.KindRegulation,
		URL:          "https://eur-lex.europa.eu/legal-content/EN/TXT/?uri=CELEX:02006R1907",
		Enabled:      true,
	}
}

func TestSourceService_Add(t *testing.T) {
	svc, sourceStore, _ := newTestSourceService()
	ctx := context.Background()

	err := svc.Add(ctx, validSource())
	require.NoError(t, err)

	saved, err := sourceStore.GetBySlug(ctx, "eu_reach_eurlex")
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID, "an ID is assigned on add")
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestSourceService_Add_DuplicateSlug(t *testing.T) {
	svc, _, _ := newTestSourceService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, validSource()))

	err := svc.Add(ctx, validSource())
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestSourceService_Add_Invalid(t *testing.T) {
	svc, _, _ := newTestSourceService()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*domain.Source)
		wantErr error
	}{
		{
			name:    "missing slug",
			mutate:  func(s *domain.Source) { s.Slug = "" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "missing name",
			mutate:  func(s *domain.Source) { s.Name = "" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "bad jurisdiction",
			mutate:  func(s *domain.Source) { s.Jurisdiction = "MOON" },
			wantErr: domain.ErrMarketUnsupported,
		},
		{
			name:    "bad dataset kind",
			mutate:  func(s *domain.Source) { s.Dataset = "spreadsheet" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown scraper type",
			mutate:  func(s *domain.Source) { s.Type = "fax" },
			wantErr: domain.ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := validSource()
			tt.mutate(&source)
			err := svc.Add(ctx, source)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSourceService_Update(t *testing.T) {
	svc, sourceStore, _ := newTestSourceService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, validSource()))
	saved, err := sourceStore.GetBySlug(ctx, "eu_reach_eurlex")
	require.NoError(t, err)

	updated := *saved
	updated.Name = "REACH Annex XVII (consolidated)"
	require.NoError(t, svc.Update(ctx, updated))

	got, err := svc.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "REACH Annex XVII (consolidated)", got.Name)
	assert.Equal(t, saved.CreatedAt, got.CreatedAt, "creation time is preserved")
}

func TestSourceService_Update_NotFound(t *testing.T) {
	svc, _, _ := newTestSourceService()

	source := validSource()
	source.ID = "missing"
	err := svc.Update(context.Background(), source)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceService_Update_MissingID(t *testing.T) {
	svc, _, _ := newTestSourceService()

	err := svc.Update(context.Background(), validSource())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSourceService_Remove(t *testing.T) {
	svc, sourceStore, regStore := newTestSourceService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, validSource()))
	saved, err := sourceStore.GetBySlug(ctx, "eu_reach_eurlex")
	require.NoError(t, err)

	// Synced data for the source.
	require.NoError(t, regStore.SaveSnapshot(ctx, &domain.Snapshot{
		ID: "snap-1", SourceID: saved.ID, Slug: saved.Slug, SHA256: "aa",
	}))
	require.NoError(t, regStore.SaveListings(ctx, saved.ID, []domain.Listing{
		{ID: "l1", SourceID: saved.ID, Slug: saved.Slug, ChemicalName: "Cadmium", CAS: "7440-43-9"},
	}))

	require.NoError(t, svc.Remove(ctx, saved.ID))

	_, err = svc.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = regStore.GetSnapshot(ctx, "snap-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceService_Remove_NotFound(t *testing.T) {
	svc, _, _ := newTestSourceService()

	err := svc.Remove(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceService_List(t *testing.T) {
	svc, _, _ := newTestSourceService()
	ctx := context.Background()

	sources, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)

	require.NoError(t, svc.Add(ctx, validSource()))

	sources, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 1)
}

func TestSourceService_Seed(t *testing.T) {
	svc, _, _ := newTestSourceService()
	ctx := context.Background()

	added, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Positive(t, added)

	sources, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, added)

	// Seeding again is a no-op.
	again, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestSourceService_Seed_SkipsExistingSlug(t *testing.T) {
	svc, _, _ := newTestSourceService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, validSource()))

	added, err := svc.Seed(ctx)
	require.NoError(t, err)

	sources, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, added+1)
}
