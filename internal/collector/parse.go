package collector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"CurveWatch/internal/model"
)

// The benchmark page lays its tables out in a fixed order: two government
// benchmark tables (short and long tenors), then the SBN, SBSN and retail
// underlying-bond tables.
const (
	benchmarkTableCount = 2
	bondTableOffset     = 2
)

// curveDateSelector is the DNN container holding the publication date.
const curveDateSelector = "#dnn_ctr1477_GovernmentBondBenchmark_idIGSYC_tdTgl"

// monthNumber maps Indonesian month names to their two-digit numbers.
var monthNumber = map[string]string{
	"Januari": "01", "Februari": "02", "Maret": "03", "April": "04",
	"Mei": "05", "Juni": "06", "Juli": "07", "Agustus": "08",
	"September": "09", "Oktober": "10", "November": "11", "Desember": "12",
}

var bondTableTypes = []string{"sbn", "sbsn", "retail"}

// ExtractCurveDate pulls the publication date out of the page and returns it
// as YYYY-MM-DD. The page prints it as e.g. "2-Januari-2025".
func ExtractCurveDate(doc *goquery.Document) (string, error) {
	text := strings.TrimSpace(doc.Find(curveDateSelector).Text())
	if text == "" {
		return "", fmt.Errorf("curve date element not found")
	}
	for _, field := range strings.Fields(text) {
		parts := strings.Split(field, "-")
		if len(parts) != 3 {
			continue
		}
		month, ok := monthNumber[parts[1]]
		if !ok {
			continue
		}
		day := parts[0]
		if len(day) == 1 {
			day = "0" + day
		}
		return fmt.Sprintf("%s-%s-%s", parts[2], month, day), nil
	}
	return "", fmt.Errorf("no parseable date in %q", text)
}

// ParseBenchmarkTables extracts the raw tenor/yield pairs from the two
// government benchmark tables. The page publishes tenors scaled by 10 and
// yields scaled by 1e6; both are rescaled to years and decimal fractions.
func ParseBenchmarkTables(doc *goquery.Document) ([]model.TenorPoint, error) {
	tables := doc.Find("table")
	if tables.Length() < benchmarkTableCount {
		return nil, fmt.Errorf("expected at least %d tables, found %d", benchmarkTableCount, tables.Length())
	}

	var points []model.TenorPoint
	for ti := 0; ti < benchmarkTableCount; ti++ {
		part, err := parseTenorTable(tables.Eq(ti))
		if err != nil {
			return nil, fmt.Errorf("benchmark table %d: %w", ti, err)
		}
		points = append(points, part...)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("benchmark tables contained no usable rows")
	}
	return points, nil
}

func parseTenorTable(table *goquery.Selection) ([]model.TenorPoint, error) {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil, fmt.Errorf("table has no data rows")
	}

	tenorCol, yieldCol := -1, -1
	rows.Eq(0).Find("th, td").Each(func(i int, cell *goquery.Selection) {
		switch strings.TrimSpace(cell.Text()) {
		case "Tenor Year":
			tenorCol = i
		case "Today":
			yieldCol = i
		}
	})
	if tenorCol < 0 || yieldCol < 0 {
		return nil, fmt.Errorf("header columns Tenor Year/Today not found")
	}

	var points []model.TenorPoint
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() <= tenorCol || cells.Length() <= yieldCol {
			return
		}
		tenorRaw, err1 := parseCell(cells.Eq(tenorCol).Text())
		yieldRaw, err2 := parseCell(cells.Eq(yieldCol).Text())
		if err1 != nil || err2 != nil {
			return // non-numeric row (separators, footers)
		}
		points = append(points, model.TenorPoint{
			Tenor: tenorRaw / 10,
			Yield: yieldRaw / 1e6,
		})
	})
	return points, nil
}

// ParseBondTables extracts the underlying SBN, SBSN and retail bond quotes.
// Row layout: series code, price scaled by 100, yields scaled by 1e4; the
// leading index column and trailing column are ignored.
func ParseBondTables(doc *goquery.Document) ([]model.BondQuote, error) {
	tables := doc.Find("table")
	if tables.Length() < bondTableOffset+len(bondTableTypes) {
		return nil, fmt.Errorf("expected %d bond tables, found %d total tables",
			len(bondTableTypes), tables.Length())
	}

	var quotes []model.BondQuote
	for bi, bondType := range bondTableTypes {
		rows := tables.Eq(bondTableOffset + bi).Find("tr")
		if rows.Length() < 2 {
			continue
		}
		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 4 {
				return
			}
			series := strings.TrimSpace(cells.Eq(1).Text())
			price, err1 := parseCell(cells.Eq(2).Text())
			yld, err2 := parseCell(cells.Eq(3).Text())
			if series == "" || err1 != nil || err2 != nil {
				return
			}
			quotes = append(quotes, model.BondQuote{
				Type:   bondType,
				Series: series,
				Price:  price / 100,
				Yield:  yld / 1e4,
			})
		})
	}
	return quotes, nil
}

func parseCell(text string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if cleaned == "" || cleaned == "-" {
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.ParseFloat(cleaned, 64)
}
