package domain

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AssetDefinition is one immutable catalog entry. ID equals the entry's index.
type AssetDefinition struct {
	ID         int     `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	BaseCost   float64 `yaml:"base_cost" json:"base_cost"`
	BaseIncome float64 `yaml:"base_income" json:"base_income"`
}

// Catalog is the ordered asset list. Order defines the unlock chain and display order.
type Catalog []AssetDefinition

// DefaultCatalog returns the twenty built-in income sources.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: 0, Name: "Recycle Cans", BaseCost: 15, BaseIncome: 0.5},
		{ID: 1, Name: "Dog Walking", BaseCost: 100, BaseIncome: 3},
		{ID: 2, Name: "Lemonade Stand", BaseCost: 500, BaseIncome: 10},
		{ID: 3, Name: "Newspaper Route", BaseCost: 1100, BaseIncome: 25},
		{ID: 4, Name: "Car Wash", BaseCost: 5000, BaseIncome: 80},
		{ID: 5, Name: "Pizza Delivery", BaseCost: 12000, BaseIncome: 150},
		{ID: 6, Name: "Freelance Coding", BaseCost: 40000, BaseIncome: 350},
		{ID: 7, Name: "Twitch Streamer", BaseCost: 150000, BaseIncome: 1000},
		{ID: 8, Name: "Dropshipping", BaseCost: 500000, BaseIncome: 2800},
		{ID: 9, Name: "Crypto Farm", BaseCost: 1500000, BaseIncome: 7500},
		{ID: 10, Name: "Real Estate", BaseCost: 5000000, BaseIncome: 18000},
		{ID: 11, Name: "Tech Startup", BaseCost: 25000000, BaseIncome: 55000},
		{ID: 12, Name: "Space Tourism", BaseCost: 150000000, BaseIncome: 200000},
		{ID: 13, Name: "Asteroid Mining", BaseCost: 1000000000, BaseIncome: 950000},
		{ID: 14, Name: "Moon Base", BaseCost: 7500000000, BaseIncome: 4500000},
		{ID: 15, Name: "Dyson Swarm", BaseCost: 50000000000, BaseIncome: 25000000},
		{ID: 16, Name: "Warp Drive", BaseCost: 400000000000, BaseIncome: 150000000},
		{ID: 17, Name: "Time Machine", BaseCost: 3000000000000, BaseIncome: 800000000},
		{ID: 18, Name: "Reality Engine", BaseCost: 25000000000000, BaseIncome: 5000000000},
		{ID: 19, Name: "Universe Simulation", BaseCost: 200000000000000, BaseIncome: 50000000000},
	}
}

// ErrEmptyCatalog is returned when a catalog file has no assets.
var ErrEmptyCatalog = errors.New("catalog has no assets")

type catalogFile struct {
	Assets []AssetDefinition `yaml:"assets"`
}

// LoadCatalog reads a YAML catalog ("assets:" list). An empty path yields DefaultCatalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

// ParseCatalog decodes and validates YAML catalog bytes.
func ParseCatalog(b []byte) (Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	cat := Catalog(f.Assets)
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Validate checks ids match positions and costs/incomes are in range.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}
	for i, a := range c {
		if a.ID != i {
			return fmt.Errorf("asset %q: id %d does not match position %d", a.Name, a.ID, i)
		}
		if !(a.BaseCost > 0) {
			return fmt.Errorf("asset %q: base_cost must be positive", a.Name)
		}
		if !(a.BaseIncome >= 0) {
			return fmt.Errorf("asset %q: base_income must not be negative", a.Name)
		}
	}
	return nil
}

// FreshHoldings returns one zero-owned holding per asset at base cost.
func (c Catalog) FreshHoldings() []AssetHolding {
	out := make([]AssetHolding, len(c))
	for i, a := range c {
		out[i] = AssetHolding{ID: a.ID, Owned: 0, NextCost: a.BaseCost}
	}
	return out
}

// Reconcile appends a fresh holding for every catalog entry past the end of the
// state's holdings. Existing entries, including extras the catalog no longer
// has, are left exactly as they are.
func (c Catalog) Reconcile(st *SimulationState) {
	for i := len(st.Holdings); i < len(c); i++ {
		st.Holdings = append(st.Holdings, AssetHolding{ID: c[i].ID, Owned: 0, NextCost: c[i].BaseCost})
	}
}
