// quotectl evaluates the pricing and knowledge data offline.
//
// Usage:
//
//	quotectl quote "I need a standard business website"
//	quotectl negotiate --reference 800 "I can pay $700"
//	quotectl lookup "Can I see your portfolio?"
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/Vovarama1992/quote-agent/internal/knowledge"
	"github.com/Vovarama1992/quote-agent/internal/pricing"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "quotectl",
		Usage:   "Inspect quotes, counter-offers and knowledge answers without the server",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "pricing",
				Value:   "data/pricing_matrix.json",
				Usage:   "Path to the pricing catalog (json or yaml)",
				EnvVars: []string{"PRICING_FILE"},
			},
			&cli.StringFlag{
				Name:    "knowledge",
				Value:   "data/knowledge_base.json",
				Usage:   "Path to the knowledge base (json or yaml)",
				EnvVars: []string{"KNOWLEDGE_FILE"},
			},
		},
		Commands: []*cli.Command{
			quoteCommand(),
			negotiateCommand(),
			lookupCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type quoteOutput struct {
	Matched       bool     `json:"matched"`
	Services      []string `json:"services,omitempty"`
	TotalBase     string   `json:"total_base_price,omitempty"`
	RangeHigh     string   `json:"price_range_high,omitempty"`
	EstimatedDays int      `json:"estimated_days,omitempty"`
	Text          string   `json:"text,omitempty"`
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:      "quote",
		Usage:     "Compute the quote for a query",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			query, err := joinedArgs(c)
			if err != nil {
				return err
			}
			cfg, err := pricing.LoadConfiguration(c.String("pricing"))
			if err != nil {
				return fmt.Errorf("failed to load pricing: %w", err)
			}

			q, ok := pricing.ComputeQuote(query, cfg)
			if !ok {
				return printJSON(quoteOutput{Matched: false})
			}
			return printJSON(quoteOutput{
				Matched:       true,
				Services:      q.ServiceNames(),
				TotalBase:     q.TotalBasePrice.String(),
				RangeHigh:     q.PriceRangeHigh.String(),
				EstimatedDays: q.EstimatedDays,
				Text:          q.Render(cfg.Disclaimer),
			})
		},
	}
}

type negotiateOutput struct {
	Outcome          pricing.Outcome `json:"outcome"`
	ReferencePrice   string          `json:"reference_price"`
	UserOfferedPrice *string         `json:"user_offered_price"`
	DiscountFraction string          `json:"discount_fraction"`
	CounterFloor     *string         `json:"counter_floor"`
}

func negotiateCommand() *cli.Command {
	return &cli.Command{
		Name:      "negotiate",
		Usage:     "Evaluate a counter-offer against a reference price",
		ArgsUsage: "<offer message>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "reference",
				Aliases:  []string{"r"},
				Usage:    "Previously quoted price",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			message, err := joinedArgs(c)
			if err != nil {
				return err
			}
			ref, err := decimal.NewFromString(strings.TrimPrefix(c.String("reference"), "$"))
			if err != nil {
				return fmt.Errorf("invalid --reference: %w", err)
			}
			cfg, err := pricing.LoadConfiguration(c.String("pricing"))
			if err != nil {
				return fmt.Errorf("failed to load pricing: %w", err)
			}

			d, err := pricing.EvaluateOffer(message, ref, cfg)
			if err != nil {
				return err
			}
			return printJSON(negotiateOutput{
				Outcome:          d.Outcome,
				ReferencePrice:   d.ReferencePrice.String(),
				UserOfferedPrice: optional(d.UserOfferedPrice),
				DiscountFraction: d.DiscountFraction.String(),
				CounterFloor:     optional(d.CounterFloor),
			})
		},
	}
}

type lookupOutput struct {
	Found  bool   `json:"found"`
	ID     string `json:"id,omitempty"`
	Answer string `json:"answer,omitempty"`
}

func lookupCommand() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Find the knowledge answer for a query",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			query, err := joinedArgs(c)
			if err != nil {
				return err
			}
			kb, err := knowledge.Load(c.String("knowledge"))
			if err != nil {
				return fmt.Errorf("failed to load knowledge base: %w", err)
			}

			rec, ok := kb.Lookup(query)
			if !ok {
				return printJSON(lookupOutput{Found: false})
			}
			return printJSON(lookupOutput{Found: true, ID: rec.ID, Answer: rec.Answer})
		},
	}
}

func joinedArgs(c *cli.Context) (string, error) {
	if c.NArg() == 0 {
		return "", fmt.Errorf("%s: missing argument %s", c.Command.Name, c.Command.ArgsUsage)
	}
	return strings.Join(c.Args().Slice(), " "), nil
}

func optional(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
