package validate

import (
	"fmt"

	"archcheck/internal/model"
	"archcheck/internal/parse"

	"go.uber.org/zap"
)

// Engine runs the full validation suite against one architecture and one
// filesystem snapshot. It holds no state between runs: validation is a pure
// function of the supplied records plus the tree under root, so repeated
// runs against an unchanged project yield identical results.
type Engine struct {
	root     string
	registry *parse.Registry
	exclude  map[string]bool
	log      *zap.Logger
}

// New creates an Engine rooted at the given project directory. The root is
// explicit and threaded through every check; the engine never consults the
// process working directory.
func New(root string, registry *parse.Registry, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		root:     root,
		registry: registry,
		exclude:  DefaultExcludedDirs(),
		log:      log,
	}
}

// ExcludeDirs adds directory names the bottom-up scan should skip, on top
// of the defaults.
func (e *Engine) ExcludeDirs(names ...string) {
	for _, name := range names {
		e.exclude[name] = true
	}
}

// Root returns the project root the engine validates against.
func (e *Engine) Root() string { return e.root }

// Validate runs every check in fixed order - duplicate ids, traceability,
// dependencies, code inventory, test inventory - and returns the
// concatenated findings. An empty result means the architecture is valid.
func (e *Engine) Validate(arch *model.Architecture) []Issue {
	e.log.Debug("running architecture validation",
		zap.String("root", e.root),
		zap.Int("goals", len(arch.Goals)),
		zap.Int("solutions", len(arch.Solutions)),
		zap.Int("implementations", len(arch.Implementations)))

	var issues []Issue
	issues = append(issues, DuplicateIDs(arch)...)
	issues = append(issues, Traceability(arch.Implementations, arch.Solutions, arch.Goals)...)
	issues = append(issues, Dependencies(arch.Solutions)...)
	issues = append(issues, CodeInventory(e.root, arch.Implementations, arch.Goals, e.registry, e.exclude)...)
	issues = append(issues, TestInventory(e.root, arch.Goals, arch.Implementations)...)

	e.log.Debug("validation complete", zap.Int("issues", len(issues)))
	return issues
}

// DuplicateIDs reports entity ids declared more than once within their
// collection. Lookups everywhere resolve to the first declaration, so a
// duplicate silently shadows a record; surfacing it keeps that from masking
// a real modeling error.
func DuplicateIDs(arch *model.Architecture) []Issue {
	var issues []Issue

	report := func(kind, id string) {
		issues = append(issues, Issue{
			Kind:    KindDuplicateID,
			Message: fmt.Sprintf("duplicate %s id %s (first declaration wins)", kind, id),
		})
	}

	seen := make(map[string]bool)
	for _, g := range arch.Goals {
		if seen[g.ID] {
			report("goal", g.ID)
		}
		seen[g.ID] = true
	}
	seen = make(map[string]bool)
	for _, s := range arch.Solutions {
		if seen[s.ID] {
			report("solution", s.ID)
		}
		seen[s.ID] = true
	}
	seen = make(map[string]bool)
	for _, impl := range arch.Implementations {
		if seen[impl.ID] {
			report("implementation", impl.ID)
		}
		seen[impl.ID] = true
	}

	return issues
}
