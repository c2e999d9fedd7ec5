package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/mt5journal/deals"
)

// OverClose is a close whose volume exceeded the tracked remainder of its
// position. The close was clamped to the remainder.
type OverClose struct {
	Order       string
	Line        int
	CloseVolume decimal.Decimal
	Remaining   decimal.Decimal
}

// Report summarizes the recovered problems of one pass. None of them fail
// the import.
type Report struct {
	Rows            int
	Opens           int
	Closes          int
	Trades          int
	Skipped         map[deals.SkipReason]int
	UnmatchedCloses int
	OverCloses      []OverClose
	// OpenPositions are opens never fully closed by the end of the input.
	OpenPositions []OpenPosition
}

func newReport() Report {
	return Report{Skipped: make(map[deals.SkipReason]int)}
}

func (r Report) SkippedTotal() int {
	n := 0
	for _, v := range r.Skipped {
		n += v
	}
	return n
}

// Clean reports whether the pass recovered from nothing at all.
func (r Report) Clean() bool {
	return r.SkippedTotal() == 0 && r.UnmatchedCloses == 0 && len(r.OverCloses) == 0
}

// Summary is a one-line, deterministic description for the user.
func (r Report) Summary() string {
	parts := []string{
		fmt.Sprintf("%d rows", r.Rows),
		fmt.Sprintf("%d trades", r.Trades),
	}
	if n := r.SkippedTotal(); n > 0 {
		reasons := make([]string, 0, len(r.Skipped))
		for k := range r.Skipped {
			reasons = append(reasons, string(k))
		}
		sort.Strings(reasons)
		detail := make([]string, len(reasons))
		for i, k := range reasons {
			detail[i] = fmt.Sprintf("%s=%d", k, r.Skipped[deals.SkipReason(k)])
		}
		parts = append(parts, fmt.Sprintf("%d skipped (%s)", n, strings.Join(detail, ", ")))
	}
	if r.UnmatchedCloses > 0 {
		parts = append(parts, fmt.Sprintf("%d unmatched closes", r.UnmatchedCloses))
	}
	if n := len(r.OverCloses); n > 0 {
		parts = append(parts, fmt.Sprintf("%d over-closes", n))
	}
	if n := len(r.OpenPositions); n > 0 {
		parts = append(parts, fmt.Sprintf("%d positions still open", n))
	}
	return strings.Join(parts, ", ")
}
