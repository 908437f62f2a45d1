package cli

import (
	"fmt"
	"strings"

	"docscope/internal/core/ports"
)

// FormatResolveResult renders one resolved symbol for terminal output.
func FormatResolveResult(res ports.ResolveResult) string {
	var b strings.Builder

	if res.Name == "" {
		b.WriteString(fmt.Sprintf("%s (module)", res.ModuleName))
	} else {
		b.WriteString(fmt.Sprintf("%s.%s (%s in module %s)", res.ModuleName, res.Name, res.TypeLabel, res.ModuleName))
	}
	if res.Mocked {
		b.WriteString(" [mocked]")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s\n", res.Display))

	return b.String()
}

// FormatMembers renders an enumerated member set, direct members first.
func FormatMembers(res ports.MembersResult) string {
	var b strings.Builder

	direct := 0
	for _, m := range res.Members {
		if m.DirectlyDefined {
			direct++
		}
	}

	b.WriteString(fmt.Sprintf("Members of %s (%d total, %d direct)\n", res.Target, len(res.Members), direct))
	for _, m := range res.Members {
		origin := "inherited"
		if m.DirectlyDefined {
			origin = "direct"
		}
		b.WriteString(fmt.Sprintf("- %-30s %-10s %s\n", m.Name, m.TypeLabel, origin))
	}

	return b.String()
}
