// Package fixture ships a small demo league used to seed an empty deployment and
// as a realistic data set in tests.
package fixture

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/nba-league-service/internal/league"
	"github.com/preston-bernstein/nba-league-service/internal/metrics"
)

//go:embed sample.yaml
var sample []byte

// Document decodes the embedded sample league.
func Document() (league.Document, error) {
	return Parse(sample)
}

// Parse decodes a league document from YAML. Unknown keys are rejected.
func Parse(data []byte) (league.Document, error) {
	var doc league.Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return league.Document{}, fmt.Errorf("decode sample league: %w", err)
	}
	return doc, nil
}

// NewLeague builds a league from the embedded sample.
func NewLeague(logger *slog.Logger, recorder *metrics.Recorder) (*league.League, error) {
	doc, err := Document()
	if err != nil {
		return nil, err
	}
	l, err := league.FromDocument(doc, logger, recorder)
	if err != nil {
		return nil, fmt.Errorf("load sample league: %w", err)
	}
	return l, nil
}
