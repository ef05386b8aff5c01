package dex_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptaonline/tabletop/internal/dex"
)

const flabebeDoc = `{
	"id": 669,
	"name": "flabebe",
	"stats": [
		{"base_stat": 44, "stat": {"name": "hp"}},
		{"base_stat": 38, "stat": {"name": "attack"}},
		{"base_stat": 39, "stat": {"name": "defense"}},
		{"base_stat": 61, "stat": {"name": "special-attack"}},
		{"base_stat": 79, "stat": {"name": "special-defense"}},
		{"base_stat": 42, "stat": {"name": "speed"}}
	],
	"types": [{"type": {"name": "fairy"}}]
}`

func TestClientLookup_ParsesSpecies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon/flabebe" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(flabebeDoc))
	}))
	defer srv.Close()

	c := dex.NewClient(srv.URL, time.Second)
	sp, err := c.Lookup(context.Background(), "Flabébé")
	require.NoError(t, err)

	assert.Equal(t, 669, sp.DexNo)
	assert.Equal(t, []string{"fairy"}, sp.Types)
	assert.Equal(t, 44, sp.BaseStats.HP)
	assert.Equal(t, 61, sp.BaseStats.SpecialAttack)
	assert.Equal(t, 42, sp.BaseStats.Speed)
}

func TestClientLookup_ResourceNames(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(flabebeDoc))
	}))
	defer srv.Close()

	c := dex.NewClient(srv.URL, time.Second)
	for name, want := range map[string]string{
		"Nidoran♀":   "/pokemon/nidoran-f",
		"Nidoran♂":   "/pokemon/nidoran-m",
		"Mr. Mime":   "/pokemon/mr-mime",
		"Farfetch'd": "/pokemon/farfetchd",
		"Flabébé":    "/pokemon/flabebe",
	} {
		_, err := c.Lookup(context.Background(), name)
		require.NoError(t, err)
		assert.Equal(t, want, gotPath, "resource name for %q", name)
	}
}

func TestClientLookup_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := dex.NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "missingno")
	require.ErrorIs(t, err, dex.ErrSpeciesNotFound)
}

func TestClientLookup_TimeoutBounded(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := dex.NewClient(srv.URL, 50*time.Millisecond)
	start := time.Now()
	_, err := c.Lookup(context.Background(), "slowpoke")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClientLookup_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := dex.NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "ditto")
	require.Error(t, err)
	assert.NotErrorIs(t, err, dex.ErrSpeciesNotFound)
}
