// Package knowledge answers general questions from a static record set.
package knowledge

import (
	"strings"

	"github.com/Vovarama1992/quote-agent/internal/datafile"
)

type Record struct {
	ID       string   `json:"id" yaml:"id"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// Base is an immutable keyword index over records.
type Base struct {
	records []Record
}

// Load reads the knowledge file. A missing file gives an empty base.
func Load(path string) (*Base, error) {
	var records []Record
	if _, err := datafile.Read(path, &records); err != nil {
		return nil, err
	}
	return New(records), nil
}

func New(records []Record) *Base {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		kw := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kw = append(kw, k)
			}
		}
		r.Keywords = kw
		out = append(out, r)
	}
	return &Base{records: out}
}

func (b *Base) Len() int { return len(b.records) }

// Lookup returns the record with the most keywords contained in query. Ties
// keep the earliest record; no matching keyword at all gives ok=false.
func (b *Base) Lookup(query string) (Record, bool) {
	q := strings.ToLower(query)

	var best Record
	highest := 0
	for _, r := range b.records {
		score := 0
		for _, k := range r.Keywords {
			if strings.Contains(q, k) {
				score++
			}
		}
		if score > highest {
			highest = score
			best = r
		}
	}
	return best, highest > 0
}
