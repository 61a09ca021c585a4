package collector

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// samplePage mirrors the benchmark page layout: the publication date div,
// two government benchmark tables (tenors x10, yields x1e6), then the SBN,
// SBSN and retail bond tables.
const samplePage = `
<html><body>
<div id="dnn_ctr1477_GovernmentBondBenchmark_idIGSYC_tdTgl">Per 2-Januari-2025</div>
<table>
  <tr><th>No</th><th>Tenor Year</th><th>Today</th><th>Yesterday</th></tr>
  <tr><td>1</td><td>10</td><td>62500</td><td>62400</td></tr>
  <tr><td>2</td><td>20</td><td>65000</td><td>64800</td></tr>
</table>
<table>
  <tr><th>No</th><th>Tenor Year</th><th>Today</th><th>Yesterday</th></tr>
  <tr><td>1</td><td>50</td><td>70000</td><td>69900</td></tr>
  <tr><td>2</td><td>100</td><td>72000</td><td>71800</td></tr>
  <tr><td>3</td><td>100</td><td>72100</td><td>71900</td></tr>
  <tr><td>4</td><td>150</td><td>990000</td><td>71900</td></tr>
</table>
<table>
  <tr><th>No</th><th>Series</th><th>Price</th><th>Yield</th><th>Chg</th></tr>
  <tr><td>1</td><td>FR0101</td><td>9850</td><td>685</td><td>-</td></tr>
</table>
<table>
  <tr><th>No</th><th>Series</th><th>Price</th><th>Yield</th><th>Chg</th></tr>
  <tr><td>1</td><td>PBS038</td><td>10012</td><td>702</td><td>-</td></tr>
</table>
<table>
  <tr><th>No</th><th>Series</th><th>Price</th><th>Yield</th><th>Chg</th></tr>
  <tr><td>1</td><td>ORI026</td><td>10100</td><td>630</td><td>-</td></tr>
</table>
</body></html>`

func sampleDoc(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("parse sample page: %v", err)
	}
	return doc
}

func TestExtractCurveDate(t *testing.T) {
	date, err := ExtractCurveDate(sampleDoc(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date != "2025-01-02" {
		t.Errorf("expected 2025-01-02, got %q", date)
	}
}

func TestParseBenchmarkTables(t *testing.T) {
	points, err := ParseBenchmarkTables(sampleDoc(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// All numeric rows come through raw; filtering happens in normalize.
	if len(points) != 6 {
		t.Fatalf("expected 6 raw points, got %d", len(points))
	}
	if points[0].Tenor != 1 || points[0].Yield != 0.0625 {
		t.Errorf("unexpected first point: %+v", points[0])
	}
	if points[3].Tenor != 10 || points[3].Yield != 0.0720 {
		t.Errorf("unexpected 10Y point: %+v", points[3])
	}
}

func TestParseBondTables(t *testing.T) {
	quotes, err := ParseBondTables(sampleDoc(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("expected 3 bond quotes, got %d", len(quotes))
	}
	q := quotes[0]
	if q.Type != "sbn" || q.Series != "FR0101" || q.Price != 98.50 || q.Yield != 0.0685 {
		t.Errorf("unexpected sbn quote: %+v", q)
	}
	if quotes[1].Type != "sbsn" || quotes[2].Type != "retail" {
		t.Errorf("bond types out of order: %+v", quotes)
	}
}

func TestCollect_NormalizesObservation(t *testing.T) {
	col := NewCollector(&MockFetcher{HTML: samplePage}, 0.0001, 0.5, 3)
	obs, err := col.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.Date != "2025-01-02" {
		t.Errorf("expected date from page, got %q", obs.Date)
	}
	// The duplicate 10Y row and the 99% outlier must be gone.
	if len(obs.Points) != 4 {
		t.Fatalf("expected 4 normalized points, got %d: %+v", len(obs.Points), obs.Points)
	}
	for _, p := range obs.Points {
		if p.Yield > 0.5 {
			t.Errorf("implausible yield survived normalization: %+v", p)
		}
	}
	if len(obs.Bonds) != 3 {
		t.Errorf("expected 3 bond quotes, got %d", len(obs.Bonds))
	}
}

func TestCollect_TooFewTenors(t *testing.T) {
	col := NewCollector(&MockFetcher{HTML: samplePage}, 0.0001, 0.5, 10)
	if _, err := col.Collect(context.Background()); err == nil {
		t.Fatal("expected error for insufficient tenor points")
	}
}
