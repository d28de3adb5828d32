package deduplicator

import (
	"fmt"
	"sort"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/issues"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/schemautil"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/severity"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/MaximilianKoestler/hcloud-openapi/walker"
)

// CountReferences tallies the reference targets across every root of reg.
func CountReferences(reg *schema.Registry, w *walker.Walker) (map[string]int, error) {
	counts := make(map[string]int)
	err := w.WalkRegistry(reg, func(string, *walker.Context) walker.Hooks {
		return walker.Hooks{AfterVisit: func(node *schema.Node) error {
			if ref, ok := node.Type.(*schema.Ref); ok {
				counts[ref.Name]++
			}
			return nil
		}}
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// auditReferences reports every reference target used at most once.
func (d *Deduplicator) auditReferences(counts map[string]int) []Diagnostic {
	if d.SingleUse == SingleUseIgnore {
		return nil
	}
	targets := make([]string, 0, len(counts))
	for name, n := range counts {
		if n <= 1 {
			targets = append(targets, name)
		}
	}
	if len(targets) == 0 {
		return nil
	}
	sort.Strings(targets)

	d.logger().Warn(fmt.Sprintf("Found %d component entries which only occur once", len(targets)))
	diags := make([]Diagnostic, 0, len(targets))
	for _, name := range targets {
		diags = append(diags, Diagnostic{
			Code:     issues.CodeSingleUseReference,
			Path:     name,
			Message:  fmt.Sprintf("component %s is referenced %d time(s)", name, counts[name]),
			Severity: severity.SeverityWarning,
		})
	}
	return diags
}

// strip removes the transient annotations from every root, including the
// components added by extraction.
func strip(reg *schema.Registry) error {
	for _, id := range reg.IDs() {
		root, _ := reg.Get(id)
		if err := schemautil.Strip(root); err != nil {
			return fmt.Errorf("stripping %s: %w", id, err)
		}
	}
	return nil
}
