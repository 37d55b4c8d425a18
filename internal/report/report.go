// Package report renders analysis results.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/nightwatch/internal/domain/analytics"
)

// Options selects optional report sections.
type Options struct {
	// MinuteStrategy appends the most-frequent-minute answer.
	MinuteStrategy bool
}

// Write prints the report in its fixed line order:
//
//	[ranking]
//	Guard ID: <id>
//	<total> [<60 counters>]
//	Minute: <minute>
//	Product: <id*minute>
func Write(w io.Writer, r analytics.Report, opts Options) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%v\n", r.Ranking)
	fmt.Fprintf(&b, "Guard ID: %d\n", r.Guard)
	fmt.Fprintf(&b, "%d %v\n", r.Total, r.Table)
	fmt.Fprintf(&b, "Minute: %d\n", r.Minute)
	fmt.Fprintf(&b, "Product: %d\n", r.Product)
	if opts.MinuteStrategy {
		f := r.Frequent
		fmt.Fprintf(&b, "Most frequent minute: %d (guard %d, %d nights)\n", f.Minute, f.Guard, f.Nights)
		fmt.Fprintf(&b, "Product: %d\n", f.Product)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
