package rules

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults carries the configured fallback thresholds. The loader only
// needs them to seed the template written when the rule file is missing.
type Defaults struct {
	Window  Level
	Channel Level
	Query   Level
}

// ErrSaveNotImplemented is returned by Save. Rules cannot be edited at
// runtime, so there is nothing the file could be rewritten from.
var ErrSaveNotImplemented = errors.New("saving rules is not implemented")

// Load parses the rule file into a fresh Table. A missing file is created
// from a documented template and yields an empty table. Lines that do not
// have the three-field rule shape are skipped, never fatal; the skip count
// is returned so callers can surface it to operators.
func Load(path string, def Defaults) (*Table, int, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		if werr := writeTemplate(path, def); werr != nil {
			return nil, 0, fmt.Errorf("create rule file: %w", werr)
		}
		return &Table{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()

	table := &Table{}
	skipped := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			skipped++
			continue
		}
		pat, err := ParsePattern(fields[1])
		if err != nil {
			skipped++
			continue
		}
		rule := Rule{Pattern: pat, Level: fields[2]}

		// The kind column goes through the generic matcher rather than a
		// fixed string comparison, so patterns are accepted there too.
		// Surprising, but existing rule files depend on it.
		switch {
		case matchesKind(fields[0], "window"):
			table.Windows = append(table.Windows, rule)
		case matchesKind(fields[0], "channel"):
			table.Channels = append(table.Channels, rule)
		case matchesKind(fields[0], "query"):
			table.Queries = append(table.Queries, rule)
		default:
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read rule file: %w", err)
	}
	return table, skipped, nil
}

func matchesKind(column, kind string) bool {
	_, ok := MatchName(column, kind)
	return ok
}

// Save would rewrite the rule file from an in-memory table.
func Save(path string, t *Table) error {
	return ErrSaveNotImplemented
}

// writeTemplate seeds a fresh rule file. The trailing default block mirrors
// the configured fallback thresholds, so the file documents the effective
// policy even before anyone edits it.
func writeTemplate(path string, def Defaults) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	var b strings.Builder
	b.WriteString("# actfilter rules\n")
	b.WriteString("#\n")
	b.WriteString("# One rule per line: <kind> <pattern> <level>\n")
	b.WriteString("#\n")
	b.WriteString("#   kind     window, channel or query\n")
	b.WriteString("#   pattern  exact name (case-insensitive), /regex/, or *\n")
	b.WriteString("#   level    all, messages, hilights, none - or 1-4\n")
	b.WriteString("#\n")
	b.WriteString("# Rules are checked top to bottom; the first match wins.\n")
	b.WriteString("#\n")
	b.WriteString("# Examples:\n")
	b.WriteString("#   channel  /^#dev-/   messages\n")
	b.WriteString("#   channel  #noisy     none\n")
	b.WriteString("#   query    somebot    hilights\n")
	b.WriteString("#\n")
	b.WriteString("# Defaults, mirroring the configured fallback thresholds:\n")
	fmt.Fprintf(&b, "window   *  %s\n", Spec(def.Window))
	fmt.Fprintf(&b, "channel  *  %s\n", Spec(def.Channel))
	fmt.Fprintf(&b, "query    *  %s\n", Spec(def.Query))

	return os.WriteFile(path, []byte(b.String()), 0o644)
}
