package inspect

import (
	"fmt"
	"strings"

	"github.com/danmuck/disctl/internal/protocol/record"
	"github.com/pelletier/go-toml/v2"
)

// RenderText formats a describe tree as an indented listing, one field per
// line in wire order.
func RenderText(n record.Node) string {
	var b strings.Builder
	writeNode(&b, n, 0)
	return b.String()
}

func writeNode(b *strings.Builder, n record.Node, depth int) {
	pad := strings.Repeat("    ", depth)
	switch {
	case len(n.Children) > 0 || n.Value == "":
		fmt.Fprintf(b, "%s%s (%s)\n", pad, n.Name, n.Type)
		for _, c := range n.Children {
			writeNode(b, c, depth+1)
		}
	default:
		fmt.Fprintf(b, "%s%s: %s (%s)\n", pad, n.Name, n.Value, n.Type)
	}
}

// RenderTOML formats a describe tree as a TOML document. Records become
// tables and collections become arrays of tables; leaf values are strings.
func RenderTOML(n record.Node) ([]byte, error) {
	doc := map[string]any{n.Name: tomlValue(n)}
	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("inspect: render toml: %w", err)
	}
	return out, nil
}

func tomlValue(n record.Node) any {
	if len(n.Children) == 0 {
		if isCollection(n) {
			return []map[string]any{}
		}
		return n.Value
	}
	if isCollection(n) {
		items := make([]map[string]any, 0, len(n.Children))
		for _, c := range n.Children {
			items = append(items, tomlTable(c))
		}
		return items
	}
	return tomlTable(n)
}

func tomlTable(n record.Node) map[string]any {
	table := make(map[string]any, len(n.Children))
	for _, c := range n.Children {
		table[c.Name] = tomlValue(c)
	}
	return table
}

func isCollection(n record.Node) bool {
	return strings.HasPrefix(n.Type, "[]")
}
