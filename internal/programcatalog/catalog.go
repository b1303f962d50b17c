package programcatalog

import (
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// CharityTier is one FPL band of a hospital charity-care policy.
type CharityTier struct {
	MaxFPL     float64 `json:"max_fpl"`
	Discount   float64 `json:"discount"`
	Confidence float64 `json:"confidence"`
}

// Catalog holds the assistance-program reference data the recommendation
// generator consults. Immutable after construction; injected rather than
// read as globals so tests can supply synthetic catalogs.
type Catalog struct {
	expansionStates map[string]struct{}
	charityTiers    []CharityTier
}

// Default returns the compiled-in catalog.
func Default() *Catalog {
	expansion := map[string]struct{}{}
	for _, s := range []string{
		"AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "HI", "ID",
		"IL", "IN", "IA", "KY", "LA", "ME", "MD", "MA", "MI", "MN",
		"MO", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND",
		"OH", "OK", "OR", "PA", "RI", "SD", "UT", "VT", "VA", "WA", "WV",
	} {
		expansion[s] = struct{}{}
	}
	return &Catalog{
		expansionStates: expansion,
		charityTiers: []CharityTier{
			{MaxFPL: 100, Discount: 1.00, Confidence: 0.85},
			{MaxFPL: 200, Discount: 0.75, Confidence: 0.75},
			{MaxFPL: 300, Discount: 0.50, Confidence: 0.65},
			{MaxFPL: 400, Discount: 0.35, Confidence: 0.50},
		},
	}
}

// IsExpansionState reports whether the state adopted Medicaid expansion.
func (c *Catalog) IsExpansionState(state string) bool {
	_, ok := c.expansionStates[state]
	return ok
}

// CharityTierFor returns the charity-care band covering the given FPL
// percentage; false when the FPL exceeds every band.
func (c *Catalog) CharityTierFor(fpl float64) (CharityTier, bool) {
	for _, t := range c.charityTiers {
		if fpl < t.MaxFPL {
			return t, true
		}
	}
	return CharityTier{}, false
}

var (
	loadOnce sync.Once
	loaded   *Catalog
)

type remoteCatalog struct {
	ExpansionStates []string      `json:"expansion_states"`
	CharityTiers    []CharityTier `json:"charity_tiers"`
}

// Load returns the process-wide catalog. When CATALOG_URL is set the
// catalog is fetched once with a short timeout and cached; any failure
// falls back to the compiled-in defaults.
func Load() *Catalog {
	loadOnce.Do(func() {
		loaded = Default()
		url := os.Getenv("CATALOG_URL")
		if url == "" {
			return
		}
		remote, err := fetch(url)
		if err != nil {
			zap.L().Warn("catalog fetch failed, using defaults", zap.Error(err))
			return
		}
		loaded = remote
		zap.L().Info("loaded remote program catalog", zap.String("url", url))
	})
	return loaded
}

func fetch(url string) (*Catalog, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url + "/catalog")
	if err != nil {
		return nil, eris.Wrap(err, "fetching program catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, eris.Errorf("program catalog returned status %d", resp.StatusCode)
	}

	var rc remoteCatalog
	if err := json.NewDecoder(resp.Body).Decode(&rc); err != nil {
		return nil, eris.Wrap(err, "decoding program catalog")
	}
	if len(rc.ExpansionStates) == 0 || len(rc.CharityTiers) == 0 {
		return nil, eris.New("program catalog response is incomplete")
	}

	expansion := make(map[string]struct{}, len(rc.ExpansionStates))
	for _, s := range rc.ExpansionStates {
		expansion[s] = struct{}{}
	}
	return &Catalog{expansionStates: expansion, charityTiers: rc.CharityTiers}, nil
}
