package dex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client looks species up against a PokeAPI-shaped REST endpoint.
type Client struct {
	base    string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a Client for the given base URL. Every lookup is bounded
// by its own timeout, independent of the caller's context deadline.
//
// Precondition: base must be a valid URL; timeout must be > 0.
func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base:    strings.TrimRight(base, "/"),
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}
}

// speciesDoc mirrors the upstream /pokemon/{name} response.
type speciesDoc struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// Lookup resolves the named species.
//
// Postcondition: Returns the Species, ErrSpeciesNotFound on an upstream 404,
// or a wrapped transport/decode error.
func (c *Client) Lookup(ctx context.Context, name string) (Species, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := fmt.Sprintf("%s/pokemon/%s", c.base, url.PathEscape(apiName(name)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Species{}, fmt.Errorf("building species request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Species{}, fmt.Errorf("fetching species %q: %w", name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Species{}, fmt.Errorf("species %q: %w", name, ErrSpeciesNotFound)
	case resp.StatusCode != http.StatusOK:
		return Species{}, fmt.Errorf("fetching species %q: unexpected status %d", name, resp.StatusCode)
	}

	var doc speciesDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Species{}, fmt.Errorf("decoding species %q: %w", name, err)
	}

	sp := Species{DexNo: doc.ID, Name: name}
	for _, t := range doc.Types {
		sp.Types = append(sp.Types, t.Type.Name)
	}
	for _, s := range doc.Stats {
		switch s.Stat.Name {
		case "hp":
			sp.BaseStats.HP = s.BaseStat
		case "attack":
			sp.BaseStats.Attack = s.BaseStat
		case "defense":
			sp.BaseStats.Defense = s.BaseStat
		case "special-attack":
			sp.BaseStats.SpecialAttack = s.BaseStat
		case "special-defense":
			sp.BaseStats.SpecialDefense = s.BaseStat
		case "speed":
			sp.BaseStats.Speed = s.BaseStat
		}
	}
	return sp, nil
}

// apiName converts a display name to the upstream resource name:
// lowercased, spaces to hyphens, accents and gender signs transliterated,
// remaining punctuation stripped (Flabébé -> flabebe, Mr. Mime -> mr-mime,
// Nidoran♀ -> nidoran-f, Farfetch'd -> farfetchd). The non-ASCII runes
// handled here are the full set the upstream dex uses; any other rune is
// dropped and the lookup falls through to ErrSpeciesNotFound upstream.
func apiName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		case r == 'é', r == 'è':
			b.WriteByte('e')
		case r == '♀':
			b.WriteString("-f")
		case r == '♂':
			b.WriteString("-m")
		}
	}
	return b.String()
}
