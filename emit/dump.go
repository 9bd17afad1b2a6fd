package emit

import (
	"fmt"
	"strings"
)

// Dump renders a human-readable report of res: its bytes, its
// MIR-index-to-offset mapping, and any relocations still owed to a
// linker sink. It is a reporting aid for the CLI and golden-output
// tests, not used by Emit itself.
func Dump(res Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "code (%d bytes): % X\n", len(res.Code), res.Code)

	fmt.Fprintln(&b, "offset map:")
	for i, off := range res.OffsetMap {
		fmt.Fprintf(&b, "  [%d] -> %d\n", i, off)
	}

	if len(res.Externs) == 0 {
		return b.String()
	}
	fmt.Fprintln(&b, "external relocations:")
	for _, r := range res.Externs {
		fmt.Fprintf(&b, "  offset=%d target=%d kind=%s pcrel=%v\n", r.Offset, r.Target, r.Kind, r.PCRel)
	}
	return b.String()
}
