package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Vovarama1992/quote-agent/internal/datafile"
)

// Defaults applied when the pricing file omits the negotiation tolerances.
var (
	DefaultMaxDiscountFraction  = decimal.RequireFromString("0.10")
	DefaultLowballFloorFraction = decimal.RequireFromString("0.85")
)

// ServiceOffering is one priced catalog entry.
type ServiceOffering struct {
	ID              string
	Name            string
	TriggerKeywords []string // lowercased
	BasePrice       decimal.Decimal
	AvgDurationDays int
}

// PricingConfiguration is the catalog plus negotiation tolerances. It is built
// once at startup and only read afterwards.
type PricingConfiguration struct {
	Services             []ServiceOffering
	Disclaimer           string
	MaxDiscountFraction  decimal.Decimal
	LowballFloorFraction decimal.Decimal
}

type catalogFile struct {
	Services             []serviceEntry `json:"services" yaml:"services"`
	Disclaimer           string         `json:"disclaimer" yaml:"disclaimer"`
	MaxDiscountFraction  *float64       `json:"max_discount_fraction" yaml:"max_discount_fraction"`
	LowballFloorFraction *float64       `json:"lowball_floor_fraction" yaml:"lowball_floor_fraction"`
}

type serviceEntry struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Keywords  []string `json:"keywords" yaml:"keywords"`
	BasePrice float64  `json:"base_price" yaml:"base_price"`
	AvgDays   int      `json:"avg_days" yaml:"avg_days"`
}

// LoadConfiguration reads the pricing file at path. A missing file yields an
// empty catalog with default tolerances.
func LoadConfiguration(path string) (*PricingConfiguration, error) {
	var raw catalogFile
	if _, err := datafile.Read(path, &raw); err != nil {
		return nil, err
	}
	return buildConfiguration(raw)
}

func buildConfiguration(raw catalogFile) (*PricingConfiguration, error) {
	cfg := &PricingConfiguration{
		Disclaimer:           strings.TrimSpace(raw.Disclaimer),
		MaxDiscountFraction:  DefaultMaxDiscountFraction,
		LowballFloorFraction: DefaultLowballFloorFraction,
		Services:             make([]ServiceOffering, 0, len(raw.Services)),
	}

	if raw.MaxDiscountFraction != nil {
		cfg.MaxDiscountFraction = decimal.NewFromFloat(*raw.MaxDiscountFraction)
	}
	if raw.LowballFloorFraction != nil {
		cfg.LowballFloorFraction = decimal.NewFromFloat(*raw.LowballFloorFraction)
	}
	if !validFraction(cfg.MaxDiscountFraction) {
		return nil, fmt.Errorf("pricing: max_discount_fraction %s outside [0,1)", cfg.MaxDiscountFraction)
	}
	if !validFraction(cfg.LowballFloorFraction) {
		return nil, fmt.Errorf("pricing: lowball_floor_fraction %s outside [0,1)", cfg.LowballFloorFraction)
	}

	seen := make(map[string]bool, len(raw.Services))
	for _, entry := range raw.Services {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return nil, fmt.Errorf("pricing: service with empty id")
		}
		if seen[id] {
			return nil, fmt.Errorf("pricing: duplicate service id %q", id)
		}
		seen[id] = true

		if entry.BasePrice < 0 {
			return nil, fmt.Errorf("pricing: service %q has negative base_price", id)
		}
		if entry.AvgDays <= 0 {
			return nil, fmt.Errorf("pricing: service %q needs positive avg_days", id)
		}

		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = id
		}

		cfg.Services = append(cfg.Services, ServiceOffering{
			ID:              id,
			Name:            name,
			TriggerKeywords: normalizeKeywords(entry.Keywords),
			BasePrice:       decimal.NewFromFloat(entry.BasePrice),
			AvgDurationDays: entry.AvgDays,
		})
	}

	return cfg, nil
}

func validFraction(f decimal.Decimal) bool {
	return !f.IsNegative() && f.LessThan(decimal.NewFromInt(1))
}

// Blank keywords are dropped: an empty substring would match every query.
func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
