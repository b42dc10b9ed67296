// Package templates holds the catalogue of feature emitters. Each emitter
// renders one coherent fragment of a generated header for one ClassInfo.
//
// The registry is populated once via RegisterBuiltins and seals itself on
// first read, so concurrent generation calls never race with registration.
package templates

import (
	"sync"

	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/errors"
	"github.com/teranos/atlas/mustache"
)

// Emitter is one feature's code generator. Only applicable emitters
// contribute to a header; applicability is decided per ClassInfo.
type Emitter interface {
	// ID is the unique dotted identifier, e.g. "operators.io.ostream"
	ID() string

	// SortKey groups related fragments in the output; fragments are
	// ordered by (SortKey, ID) at assembly time
	SortKey() string

	// ShouldApply reports whether this emitter contributes for ci
	ShouldApply(ci *classinfo.ClassInfo) bool

	// PrepareVariables produces the substitution context for Template
	PrepareVariables(ci *classinfo.ClassInfo) mustache.Context

	// Template returns the static mustache source for the fragment
	Template() string

	// RequiredIncludes lists includes unconditionally needed when this
	// emitter applies
	RequiredIncludes() []string

	// RequiredPreamble returns a snippet that must precede the type
	// definition, or ""
	RequiredPreamble(ci *classinfo.ClassInfo) string

	// Postamble reports whether the fragment belongs after the type's
	// namespace closes (hash and formatter specializations) instead of
	// inside the class body
	Postamble() bool
}

// customRenderer lets an emitter replace the default render pipeline
type customRenderer interface {
	Render(ci *classinfo.ClassInfo) string
}

// Render runs the default pipeline: PrepareVariables + Template + mustache.
// Emitters with their own Render method (multi-target casts) override it.
func Render(e Emitter, ci *classinfo.ClassInfo) string {
	if custom, ok := e.(customRenderer); ok {
		return custom.Render(ci)
	}
	return mustache.Render(e.Template(), e.PrepareVariables(ci))
}

// Registry is an insertion-ordered emitter catalogue. Registration is only
// permitted before the first read; the registry seals itself after that.
type Registry struct {
	mu       sync.RWMutex
	sealed   bool
	emitters []Emitter
	byID     map[string]Emitter
}

// NewRegistry creates an empty, unsealed registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Emitter)}
}

// Register adds an emitter. It fails on duplicate IDs and after sealing.
func (r *Registry) Register(e Emitter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return errors.AssertionFailedf("registry is sealed; cannot register %q after first read", e.ID())
	}
	if _, exists := r.byID[e.ID()]; exists {
		return errors.AssertionFailedf("duplicate emitter id %q", e.ID())
	}
	r.byID[e.ID()] = e
	r.emitters = append(r.emitters, e)
	return nil
}

// seal marks the registry read-only
func (r *Registry) seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Lookup finds an emitter by ID. The first lookup seals the registry.
func (r *Registry) Lookup(id string) (Emitter, bool) {
	r.seal()
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	return e, ok
}

// VisitApplicable invokes fn for each emitter, in registration order, whose
// ShouldApply holds for ci. Visiting seals the registry. Output ordering is
// decided later by (SortKey, ID), not by registration order.
func (r *Registry) VisitApplicable(ci *classinfo.ClassInfo, fn func(Emitter)) {
	r.seal()
	r.mu.RLock()
	emitters := r.emitters
	r.mu.RUnlock()

	for _, e := range emitters {
		if e.ShouldApply(ci) {
			fn(e)
		}
	}
}

// Len reports how many emitters are registered
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.emitters)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, populating it on first use.
// Population happens exactly once, before any generation call can read it.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		if err := RegisterBuiltins(defaultRegistry); err != nil {
			panic(err)
		}
	})
	return defaultRegistry
}

// RegisterBuiltins populates r with every feature emitter Atlas ships
func RegisterBuiltins(r *Registry) error {
	groups := [][]Emitter{
		binaryArithmeticEmitters(),
		unaryEmitters(),
		comparisonEmitters(),
		logicalEmitters(),
		streamEmitters(),
		accessEmitters(),
		conversionEmitters(),
		supportEmitters(),
		constraintEmitters(),
	}
	for _, group := range groups {
		for _, e := range group {
			if err := r.Register(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// emitterBase carries the static identity shared by all emitters
type emitterBase struct {
	id        string
	sortKey   string
	includes  []string
	postamble bool
}

func (e emitterBase) ID() string                                   { return e.id }
func (e emitterBase) SortKey() string                              { return e.sortKey }
func (e emitterBase) RequiredIncludes() []string                   { return e.includes }
func (e emitterBase) RequiredPreamble(*classinfo.ClassInfo) string { return "" }
func (e emitterBase) Postamble() bool                              { return e.postamble }

// baseVars is the substitution context every emitter starts from
func baseVars(ci *classinfo.ClassInfo) mustache.Context {
	return mustache.Context{
		"class_name":          ci.ClassName,
		"underlying_type":     ci.UnderlyingType,
		"full_qualified_name": ci.FullQualifiedName,
		"const_expr":          ci.ConstExpr(),
		"has_constraint":      ci.HasConstraint(),
	}
}
