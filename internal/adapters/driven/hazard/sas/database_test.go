package sas

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

func sasServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/casnos/50-00-0", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"carcinogenicity": "Group 1", "ld50_oral_rat": 100, "ghs_signal_word": "Danger"}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	return httptest.NewServer(mux)
}

func TestDatabase_Profile(t *testing.T) {
	server := sasServer(t)
	defer server.Close()

	db := New(WithBaseURL(server.URL))
	defer db.Close()

	profile, err := db.Profile(context.Background(), []string{"50-00-0"})
	require.NoError(t, err)
	assert.Equal(t, "50-00-0", profile.CAS)
	assert.Equal(t, "sas", profile.Provider)
	assert.Equal(t, "Group 1", profile.Attributes["carcinogenicity"])
	assert.False(t, profile.RetrievedAt.IsZero())
}

func TestDatabase_Profile_FallsThroughTo404(t *testing.T) {
	server := sasServer(t)
	defer server.Close()

	db := New(WithBaseURL(server.URL))
	defer db.Close()

	// The first two numbers have no entry; the third does.
	profile, err := db.Profile(context.Background(), []string{"8005-38-7", "8006-07-3", "50-00-0"})
	require.NoError(t, err)
	assert.Equal(t, "50-00-0", profile.CAS)
}

func TestDatabase_Profile_NoneFound(t *testing.T) {
	server := sasServer(t)
	defer server.Close()

	db := New(WithBaseURL(server.URL))
	defer db.Close()

	_, err := db.Profile(context.Background(), []string{"0-00-0", "1-11-1"})
	assert.ErrorIs(t, err, domain.ErrNoHazardData)
}

func TestDatabase_Profile_EmptyInput(t *testing.T) {
	db := New()
	defer db.Close()

	_, err := db.Profile(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoHazardData)

	_, err = db.Profile(context.Background(), []string{""})
	assert.ErrorIs(t, err, domain.ErrNoHazardData)
}

func TestDatabase_Profile_ServerErrorAborts(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	db := New(WithBaseURL(server.URL))
	defer db.Close()

	_, err := db.Profile(context.Background(), []string{"50-00-0", "67-64-1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoHazardData)
	// Retries on the first number, but never moves to the second.
	assert.Contains(t, err.Error(), "50-00-0")
}
