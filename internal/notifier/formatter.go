package notifier

import (
	"fmt"
	"strings"
	"time"

	"CurveWatch/internal/model"
)

// DigestEntry is one line of the weekly digest.
type DigestEntry struct {
	Date        string
	TenorCount  int
	Failures    int
	Yield10Y    float64
	SteepnessBp float64
}

// FormatDailyReport formats the published curve into a Telegram message.
func FormatDailyReport(date, source string, curve *model.YieldCurve, m *model.KeyMetrics) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>IDR Yield Curve</b> | %s\n\n", date))
	b.WriteString(fmt.Sprintf("Source: %s | Tenors: %d\n", source, len(curve.Points)))

	if m != nil {
		if m.Has10Y {
			b.WriteString(fmt.Sprintf("10Y Yield: %.4f\n", m.Yield10Y))
		}
		if m.HasSteepness {
			b.WriteString(fmt.Sprintf("Steepness (10Y-2Y): %+.0fbp\n", m.SteepnessBp))
		}
		b.WriteString(fmt.Sprintf("Avg Spot: %.4f | Avg Forward: %.4f\n", m.AvgSpot, m.AvgForward))
		b.WriteString(fmt.Sprintf("Yield Range: %.4f - %.4f\n", m.YieldMin, m.YieldMax))
	}

	if curve.Failures > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ <b>%d tenor(s) failed to compute:</b>\n", curve.Failures))
		for _, p := range curve.Points {
			if p.Spot.Status == model.RateFailed {
				b.WriteString(fmt.Sprintf("  %.1fY spot: %s\n", p.Tenor, p.Spot.Reason))
			}
			if p.Forward.Status == model.RateFailed {
				b.WriteString(fmt.Sprintf("  %.1fY forward: %s\n", p.Tenor, p.Forward.Reason))
			}
		}
	} else {
		b.WriteString("\nCurve fully computed ✅")
	}

	return b.String()
}

// FormatWeeklyDigest formats the last week's published curves.
func FormatWeeklyDigest(entries []DigestEntry) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>Weekly Curve Digest</b> | %s\n\n", time.Now().Format("2006-01-02")))

	if len(entries) == 0 {
		b.WriteString("No curves published this week.")
		return b.String()
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s: 10Y %.4f, %+.0fbp, %d tenors", e.Date, e.Yield10Y, e.SteepnessBp, e.TenorCount)
		if e.Failures > 0 {
			line += fmt.Sprintf(" (⚠️ %d failed)", e.Failures)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// FormatRunStatus formats the archive index state for the /status command.
func FormatRunStatus(publishedDates, totalRuns, totalFailures int, lastRunAt time.Time, lastDate string) string {
	var b strings.Builder
	b.WriteString("📦 <b>CurveWatch Status</b>\n\n")
	b.WriteString(fmt.Sprintf("Published dates: %d\n", publishedDates))
	b.WriteString(fmt.Sprintf("Total runs: %d\n", totalRuns))
	b.WriteString(fmt.Sprintf("Tenor failures to date: %d\n", totalFailures))
	if lastDate != "" {
		b.WriteString(fmt.Sprintf("Latest curve: %s\n", lastDate))
	}
	if !lastRunAt.IsZero() {
		b.WriteString(fmt.Sprintf("Last run: %s\n", lastRunAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}
