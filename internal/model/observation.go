package model

import "time"

// BondQuote is one underlying government bond row from the PHEI tables.
type BondQuote struct {
	Type   string // "sbn", "sbsn" or "retail"
	Series string
	Price  float64 // fraction of par
	Yield  float64 // decimal fraction
}

// CurveObservation is one scrape result: the cleaned tenor/yield table for
// the benchmark curve plus the underlying bond quotes, stamped with the
// publication date extracted from the page.
type CurveObservation struct {
	Date      string // YYYY-MM-DD
	Source    string
	FetchedAt time.Time
	Points    []TenorPoint
	Bonds     []BondQuote
}
