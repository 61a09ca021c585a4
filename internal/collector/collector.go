package collector

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"CurveWatch/internal/model"
)

// MockFetcher returns fixed page content for development and testing.
type MockFetcher struct {
	HTML string
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPage(_ context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.HTML, nil
}

// Collector fetches the benchmark page and turns it into a clean
// tenor/yield table ready for bootstrapping.
type Collector struct {
	Fetcher   Fetcher
	MinYield  float64
	MaxYield  float64
	MinTenors int
}

// NewCollector creates a Collector with the given plausibility band.
func NewCollector(fetcher Fetcher, minYield, maxYield float64, minTenors int) *Collector {
	return &Collector{
		Fetcher:   fetcher,
		MinYield:  minYield,
		MaxYield:  maxYield,
		MinTenors: minTenors,
	}
}

// Collect fetches, parses and normalizes one curve observation.
func (c *Collector) Collect(ctx context.Context) (*model.CurveObservation, error) {
	page, err := c.Fetcher.FetchPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	date, err := ExtractCurveDate(doc)
	if err != nil {
		log.Printf("[WARN] curve date extraction failed: %v, using today", err)
		date = time.Now().Format("2006-01-02")
	}

	raw, err := ParseBenchmarkTables(doc)
	if err != nil {
		return nil, fmt.Errorf("parse benchmark tables: %w", err)
	}

	points := c.normalize(raw)
	if len(points) < c.MinTenors {
		return nil, fmt.Errorf("insufficient tenor points: %d < %d", len(points), c.MinTenors)
	}

	bonds, err := ParseBondTables(doc)
	if err != nil {
		log.Printf("[WARN] bond tables unavailable: %v", err)
		bonds = nil
	}

	log.Printf("[INFO] collected curve %s: %d tenors, %d bond quotes (source %s)",
		date, len(points), len(bonds), c.Fetcher.Name())

	return &model.CurveObservation{
		Date:      date,
		Source:    c.Fetcher.Name(),
		FetchedAt: time.Now(),
		Points:    points,
		Bonds:     bonds,
	}, nil
}

// normalize drops out-of-band and duplicate rows. A published table
// occasionally repeats a tenor between the short and long sections; the
// first occurrence wins. Ordering is left to the bootstrapper.
func (c *Collector) normalize(raw []model.TenorPoint) []model.TenorPoint {
	seen := make(map[float64]bool, len(raw))
	points := make([]model.TenorPoint, 0, len(raw))
	for _, p := range raw {
		if p.Tenor <= 0 {
			continue
		}
		if p.Yield < c.MinYield || p.Yield > c.MaxYield {
			log.Printf("[WARN] dropping implausible yield %.6f at tenor %.1f", p.Yield, p.Tenor)
			continue
		}
		if seen[p.Tenor] {
			log.Printf("[WARN] dropping duplicate tenor %.1f", p.Tenor)
			continue
		}
		seen[p.Tenor] = true
		points = append(points, p)
	}
	return points
}
