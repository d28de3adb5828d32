package deduplicator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MaximilianKoestler/hcloud-openapi/fixer"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/issues"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/schemautil"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/severity"
	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/parser"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/MaximilianKoestler/hcloud-openapi/schematypes"
	"github.com/MaximilianKoestler/hcloud-openapi/walker"
)

// Diagnostic is a non-fatal finding of a run.
type Diagnostic = issues.Issue

// Result contains the outcome of a deduplication run.
type Result struct {
	// Registry is the input registry, modified in place: occurrences are
	// references and every extracted component has been added.
	Registry *schema.Registry
	// Components are the naming file entries for the names this run
	// produced, sorted by name. Persist them only after a successful run.
	Components []schematypes.Entry
	// Extracted lists the components added to the registry, in creation order.
	Extracted []string
	// Fixes lists the rewrites of the normalization pass.
	Fixes []fixer.Fix
	// Diagnostics lists every non-fatal finding, parse diagnostics first.
	Diagnostics []Diagnostic
	// StalePins lists the naming file entries that matched nothing.
	StalePins []schematypes.StalePin
	// ReferenceCounts maps every reference target to its number of uses.
	ReferenceCounts map[string]int
	// Mode is the naming mode the run used.
	Mode Mode
}

// ExtractedCount returns the number of components added to the registry.
func (r *Result) ExtractedCount() int {
	return len(r.Extracted)
}

// WarningCount returns the number of diagnostics of warning severity or above.
func (r *Result) WarningCount() int {
	return issues.Count(r.Diagnostics, severity.SeverityWarning)
}

// Deduplicator extracts shared object shapes into named components.
type Deduplicator struct {
	// Mode selects pinned or fresh naming.
	Mode Mode
	// Pinned holds the naming file entries used in pinned mode.
	Pinned []schematypes.Entry
	// Policy holds the normalization tables.
	Policy fixer.Policy
	// SkipNormalize disables the normalization pass.
	SkipNormalize bool
	// Thresholds gate extraction of unpinned shapes.
	Thresholds Thresholds
	// SingleUse controls the report of single-use references.
	SingleUse SingleUsePolicy
	// NullableRefs keeps an occurrence's nullable flag at its reference site.
	NullableRefs bool
	// Logger receives progress and diagnostics. Defaults to parser.NopLogger.
	Logger parser.Logger
	// MaxDepth bounds the nesting depth of every walk (0 means walker.DefaultMaxDepth).
	MaxDepth int
}

// New creates a Deduplicator in fresh mode with default settings.
func New() *Deduplicator {
	return &Deduplicator{
		Mode:       ModeFresh,
		Policy:     fixer.DefaultPolicy(),
		Thresholds: DefaultThresholds(),
		SingleUse:  SingleUseWarn,
		Logger:     parser.NopLogger{},
	}
}

func (d *Deduplicator) logger() parser.Logger {
	if d.Logger == nil {
		return parser.NopLogger{}
	}
	return d.Logger
}

func (d *Deduplicator) walker() *walker.Walker {
	return walker.New(walker.WithMaxDepth(d.MaxDepth))
}

// Deduplicate runs the whole pipeline over reg, which is modified in place.
// On error reg may be partially transformed and must be discarded.
func (d *Deduplicator) Deduplicate(reg *schema.Registry) (*Result, error) {
	if reg == nil {
		return nil, fmt.Errorf("deduplicator: registry cannot be nil")
	}
	if err := d.Thresholds.validate(); err != nil {
		return nil, fmt.Errorf("deduplicator: %w", err)
	}
	result := &Result{Registry: reg, Mode: d.Mode}
	log := d.logger().With("mode", d.Mode.String())

	if !d.SkipNormalize {
		f := &fixer.Fixer{Policy: d.Policy, Logger: d.Logger, MaxDepth: d.MaxDepth}
		fixed, err := f.Fix(reg)
		if err != nil {
			return nil, fmt.Errorf("deduplicator: normalizing: %w", err)
		}
		if fixed.HasFixes() {
			result.Fixes = fixed.Fixes
			log.Debug("normalized schemas", "fixes", fixed.FixCount)
		}
	}

	hasher := schemautil.NewSchemaHasher(walker.WithMaxDepth(d.MaxDepth))
	hasher.OnMissingItems = func(loc schema.Location) {
		log.Warn(`Found array without "items"`, "path", loc.String())
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Code:     issues.CodeArrayWithoutItems,
			Path:     loc.String(),
			Message:  "array has no items schema; scored with complexity 1",
			Severity: severity.SeverityWarning,
		})
	}
	if err := hasher.HashRegistry(reg); err != nil {
		return nil, fmt.Errorf("deduplicator: hashing: %w", err)
	}

	ix, err := BuildIndex(reg, d.walker())
	if err != nil {
		reportExtractionFailure(log, err)
		return nil, fmt.Errorf("deduplicator: indexing: %w", err)
	}

	var pins map[string]struct{}
	if d.Mode == ModePinned {
		pins = pinnedPaths(d.Pinned)
	}
	candidates := selectCandidates(ix, d.Thresholds, pins)
	log.Debug("selected candidates", "shapes", ix.Len(), "candidates", len(candidates))

	var alloc *allocation
	if d.Mode == ModePinned {
		alloc, err = allocatePinned(candidates, d.Pinned, reg)
		if err != nil {
			return nil, fmt.Errorf("deduplicator: naming: %w", err)
		}
		result.StalePins = schematypes.StalePins(d.Pinned, ix.Locations())
		result.Diagnostics = append(result.Diagnostics, logDiagnostics(log, staleDiagnostics(result.StalePins))...)
	} else {
		alloc = allocateFresh(candidates, reg)
	}

	result.Extracted, err = d.extract(reg, alloc)
	if err != nil {
		reportExtractionFailure(log, err)
		return nil, fmt.Errorf("deduplicator: extracting: %w", err)
	}
	result.Diagnostics = append(result.Diagnostics, logDiagnostics(log, d.applyPinnedDescriptions(reg, alloc))...)

	if d.Mode == ModePinned {
		result.Components = slices.Clone(alloc.matched)
	} else {
		result.Components = freshEntries(reg, alloc)
	}
	schematypes.Sort(result.Components)
	log.Info(fmt.Sprintf("Extracted %d shared objects from the schemas.", len(alloc.named)))

	result.ReferenceCounts, err = CountReferences(reg, d.walker())
	if err != nil {
		return nil, fmt.Errorf("deduplicator: auditing: %w", err)
	}
	result.Diagnostics = append(result.Diagnostics, d.auditReferences(result.ReferenceCounts)...)

	if err := strip(reg); err != nil {
		return nil, fmt.Errorf("deduplicator: %w", err)
	}
	return result, nil
}

// logDiagnostics logs each diagnostic at its severity and returns them.
func logDiagnostics(log parser.Logger, diags []Diagnostic) []Diagnostic {
	for _, diag := range diags {
		attrs := []any{"code", string(diag.Code), "path", diag.Path}
		if diag.Context != "" {
			attrs = append(attrs, "context", diag.Context)
		}
		switch diag.Severity {
		case severity.SeverityError:
			log.Error(diag.Message, attrs...)
		case severity.SeverityInfo:
			log.Debug(diag.Message, attrs...)
		default:
			log.Warn(diag.Message, attrs...)
		}
	}
	return diags
}

// reportExtractionFailure logs the violated extraction invariant before the
// run aborts. Other errors are left to the caller.
func reportExtractionFailure(log parser.Logger, err error) {
	var extractErr *oaserrors.ExtractionError
	if !errors.As(err, &extractErr) {
		return
	}
	diag := Diagnostic{
		Code:     issues.CodeExtractionFailed,
		Path:     extractErr.Path,
		Message:  extractErr.Message,
		Severity: severity.SeverityError,
	}
	if extractErr.Hash != "" {
		diag.Context = "hash " + extractErr.Hash
	}
	logDiagnostics(log, []Diagnostic{diag})
}

// freshEntries builds a naming file entry per derived name, pinned at the
// shortest nested location and carrying the component's final description.
func freshEntries(reg *schema.Registry, alloc *allocation) []schematypes.Entry {
	entries := make([]schematypes.Entry, 0, len(alloc.named))
	for _, occ := range alloc.named {
		entry := schematypes.Entry{Name: occ.Name, Path: occ.ShortestNestedLocation()}
		if component, found := reg.Get(occ.Name); found {
			entry.Description = component.Description
		}
		entries = append(entries, entry)
	}
	return entries
}

func staleDiagnostics(stale []schematypes.StalePin) []Diagnostic {
	diags := make([]Diagnostic, 0, len(stale))
	for _, pin := range stale {
		diag := Diagnostic{
			Code:     issues.CodeStalePin,
			Path:     pin.Entry.Location().String(),
			Message:  fmt.Sprintf("pinned name %s matched no object in the input", pin.Entry.Name),
			Severity: severity.SeverityWarning,
		}
		if pin.Closest != "" {
			diag.Context = fmt.Sprintf("closest location: %s (similarity %.2f)", pin.Closest, pin.Similarity)
		}
		diags = append(diags, diag)
	}
	return diags
}
