package catalog

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of a catalog seed.
type seedFile struct {
	Instruments []Instrument `yaml:"instruments"`
}

// LoadFile reads a YAML catalog seed and builds a catalog from it.
// KnownFields(true)로 오타/미사용 필드 즉시 실패
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}

	var seed seedFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}

	if len(seed.Instruments) == 0 {
		return nil, fmt.Errorf("catalog seed %s has no instruments", path)
	}

	return New(seed.Instruments)
}

// Default returns the built-in catalog used when no seed file is configured.
func Default() *Catalog {
	c, err := New(defaultInstruments())
	if err != nil {
		// Built-in seed is static; a failure here is a programming error.
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

func defaultInstruments() []Instrument {
	alt := func(v int) *int { return &v }

	return []Instrument{
		{Ticker: "NVDA", Name: "NVIDIA Corporation", Score: 95, Price: 875.32, Change: 3.2, IsBuyable: true, AlternateScore: alt(88)},
		{Ticker: "AAPL", Name: "Apple Inc.", Score: 88, Price: 189.45, Change: 1.5, IsBuyable: true, AlternateScore: alt(92)},
		{Ticker: "MSFT", Name: "Microsoft Corporation", Score: 86, Price: 425.18, Change: 2.1, IsBuyable: true, AlternateScore: alt(95)},
		{Ticker: "GOOGL", Name: "Alphabet Inc.", Score: 82, Price: 175.23, Change: -0.8, IsBuyable: false, AlternateScore: alt(85)},
		{Ticker: "AMZN", Name: "Amazon.com Inc.", Score: 79, Price: 186.92, Change: 1.9, IsBuyable: false, AlternateScore: alt(90)},
		{Ticker: "META", Name: "Meta Platforms Inc.", Score: 77, Price: 512.45, Change: 2.8, IsBuyable: false, AlternateScore: alt(78)},
		{Ticker: "TSLA", Name: "Tesla Inc.", Score: 74, Price: 248.67, Change: -2.1, IsBuyable: false, AlternateScore: alt(82)},
		{Ticker: "AMD", Name: "Advanced Micro Devices", Score: 71, Price: 165.89, Change: 1.2, IsBuyable: false, AlternateScore: alt(75)},
		{Ticker: "NFLX", Name: "Netflix Inc.", Score: 68, Price: 628.34, Change: 0.5, IsBuyable: false, AlternateScore: alt(70)},
		{Ticker: "CRM", Name: "Salesforce Inc.", Score: 65, Price: 298.12, Change: -0.3, IsBuyable: false, AlternateScore: alt(68)},
	}
}
