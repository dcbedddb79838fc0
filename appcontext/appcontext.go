package appcontext

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Key identifies a capability in the registry. The set of keys is closed:
// callers declare their keys as constants rather than relying on runtime
// type identity.
type Key string

// Generator lazily constructs a capability instance. The context it receives
// carries the registry that triggered construction, so a generator may
// resolve other capabilities while building its own.
type Generator func(ctx context.Context) any

// Fixed returns a Generator that always yields v. Useful for installing
// pre-built instances as scope overrides.
func Fixed(v any) Generator {
	return func(context.Context) any { return v }
}

// Scope describes the overrides and fallbacks installed by Run for the
// dynamic extent of its body.
type Scope struct {
	// Name labels the scope in cycle reports. Optional.
	Name string

	// Overrides take precedence over everything resolved further out,
	// including memoized defaults.
	Overrides map[Key]Generator

	// Fallbacks are consulted only when no scope in the chain supplies the
	// key. Outer fallbacks win over inner ones.
	Fallbacks map[Key]Generator
}

// AppContext is one level of the ambient capability registry. Resolution
// walks from the innermost scope to the root; the first override found wins.
// An override value is memoized in the scope that declared it. A fallback
// value is memoized in the scope that initiated the lookup: a default built
// at the root lives for the process, while a default built under a child
// scope composes that scope's overrides and dies with it, so overrides never
// leak into the root through a composed default.
type AppContext struct {
	name   string
	parent *AppContext

	mu        sync.Mutex
	overrides map[Key]Generator
	fallbacks map[Key]Generator
	values    map[Key]any
	inflight  map[Key]chan struct{}
}

// Option configures a new AppContext.
type Option func(*AppContext)

// WithFallbacks installs fallback generators, typically on the root registry.
func WithFallbacks(fallbacks map[Key]Generator) Option {
	return func(ac *AppContext) {
		for k, g := range fallbacks {
			ac.fallbacks[k] = g
		}
	}
}

// WithOverrides installs override generators.
func WithOverrides(overrides map[Key]Generator) Option {
	return func(ac *AppContext) {
		for k, g := range overrides {
			ac.overrides[k] = g
		}
	}
}

// New creates a registry with no parent.
func New(name string, opts ...Option) *AppContext {
	ac := &AppContext{
		name:      name,
		overrides: make(map[Key]Generator),
		fallbacks: make(map[Key]Generator),
		values:    make(map[Key]any),
		inflight:  make(map[Key]chan struct{}),
	}
	for _, opt := range opts {
		opt(ac)
	}
	return ac
}

// Name returns the scope label.
func (ac *AppContext) Name() string { return ac.name }

// registryKey is a private context key type to avoid collisions.
type registryKey struct{}

// chainCtxKey carries the keys currently under construction, for cycle
// detection across composed generators.
type chainCtxKey struct{}

// With embeds the registry in the context. Capability resolution downstream
// of ctx starts at ac.
func With(ctx context.Context, ac *AppContext) context.Context {
	return context.WithValue(ctx, registryKey{}, ac)
}

// From extracts the active registry from the context. Returns nil if none
// has been embedded; callers that need a guaranteed registry fall back to
// their process root.
func From(ctx context.Context) *AppContext {
	if ac, ok := ctx.Value(registryKey{}).(*AppContext); ok {
		return ac
	}
	return nil
}

// Run pushes a child scope for the dynamic extent of body. The child rides
// the derived context, so the prior scope is restored on any exit from body,
// including panic: the caller's context is never mutated.
//
// Nested Run calls nest scopes; the innermost override for a key wins.
func Run(ctx context.Context, scope Scope, body func(ctx context.Context) error) error {
	return body(Child(ctx, scope))
}

// Child derives a child scope of the registry in ctx and returns a context
// carrying it. Run is the usual entry point; Child suits helpers that hand
// a prepared context back to their caller.
func Child(ctx context.Context, scope Scope) context.Context {
	child := &AppContext{
		name:      scope.Name,
		parent:    From(ctx),
		overrides: make(map[Key]Generator, len(scope.Overrides)),
		fallbacks: make(map[Key]Generator, len(scope.Fallbacks)),
		values:    make(map[Key]any),
		inflight:  make(map[Key]chan struct{}),
	}
	for k, g := range scope.Overrides {
		child.overrides[k] = g
	}
	for k, g := range scope.Fallbacks {
		child.fallbacks[k] = g
	}
	return With(ctx, child)
}

// Get resolves key starting at the innermost scope. Override generators run
// at most once per declaring scope. Fallback generators run at most once per
// initiating scope; with no child scope active that is once per process.
// Returns (nil, false) when nothing in the chain supplies the key.
//
// First access may perform real initialization work inside the generator.
// Concurrent first access from multiple goroutines yields a single instance:
// one caller constructs, the rest wait for it.
func (ac *AppContext) Get(ctx context.Context, key Key) (any, bool) {
	if chain := constructionChain(ctx); slices.Contains(chain, key) {
		panic(&CycleError{Chain: append(slices.Clone(chain), key)})
	}

	// Generators resolve their own dependencies from the scope that
	// initiated this lookup. Values they compose are memoized no further
	// out than that scope, so the composition cannot outlive an override
	// it captured.
	ctx = With(ctx, ac)

	// Overrides and memoized values, innermost first.
	for s := ac; s != nil; s = s.parent {
		if v, ok := s.resolve(ctx, key, s.overrides); ok {
			return v, true
		}
	}

	// Fallbacks, outermost first: a root default beats a scope-local one.
	// The value is constructed and memoized here in the initiating scope,
	// never in the declaring one: a default built while a child scope is
	// active dies with that scope instead of publishing the scope's
	// overrides process-wide.
	var chain []*AppContext
	for s := ac; s != nil; s = s.parent {
		chain = append(chain, s)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		s := chain[i]
		s.mu.Lock()
		gen, ok := s.fallbacks[key]
		s.mu.Unlock()
		if ok {
			return ac.construct(ctx, key, gen), true
		}
	}

	return nil, false
}

// resolve returns the memoized value for key, or constructs it from table
// and memoizes it in this scope.
func (s *AppContext) resolve(ctx context.Context, key Key, table map[Key]Generator) (any, bool) {
	s.mu.Lock()
	if v, ok := s.values[key]; ok {
		s.mu.Unlock()
		return v, true
	}
	gen, ok := table[key]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	return s.construct(ctx, key, gen), true
}

// construct returns the value memoized for key in this scope, running gen to
// produce it when absent. Generators run outside the scope lock so they can
// reenter the registry for other keys; an in-flight marker keeps racing
// first accesses from constructing twice.
func (s *AppContext) construct(ctx context.Context, key Key, gen Generator) any {
	s.mu.Lock()
	for {
		if v, ok := s.values[key]; ok {
			s.mu.Unlock()
			return v
		}
		if done, busy := s.inflight[key]; busy {
			s.mu.Unlock()
			<-done
			s.mu.Lock()
			continue
		}
		done := make(chan struct{})
		s.inflight[key] = done
		s.mu.Unlock()

		v := runGenerator(ctx, key, gen, func() {
			s.mu.Lock()
			delete(s.inflight, key)
			close(done)
			s.mu.Unlock()
		})

		s.mu.Lock()
		s.values[key] = v
		s.mu.Unlock()
		return v
	}
}

// runGenerator invokes gen with key appended to the construction chain.
// cleanup always runs, so a panicking generator does not wedge waiters.
func runGenerator(ctx context.Context, key Key, gen Generator, cleanup func()) any {
	defer cleanup()
	chain := append(slices.Clone(constructionChain(ctx)), key)
	return gen(context.WithValue(ctx, chainCtxKey{}, chain))
}

func constructionChain(ctx context.Context) []Key {
	chain, _ := ctx.Value(chainCtxKey{}).([]Key)
	return chain
}

// Reset discards the memoized value for key in this scope, so the next Get
// constructs it again. Test-only teardown hook.
func (ac *AppContext) Reset(key Key) {
	ac.mu.Lock()
	delete(ac.values, key)
	ac.mu.Unlock()
}

// ResetAll discards every memoized value in this scope.
func (ac *AppContext) ResetAll() {
	ac.mu.Lock()
	ac.values = make(map[Key]any)
	ac.mu.Unlock()
}

// Value resolves key from the registry carried in ctx and asserts it to T.
// Returns the zero value and false when the key is unresolved, resolves to
// nil, or holds a different type.
func Value[T any](ctx context.Context, key Key) (T, bool) {
	var zero T
	ac := From(ctx)
	if ac == nil {
		return zero, false
	}
	v, ok := ac.Get(ctx, key)
	if !ok || v == nil {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// MustValue is Value for capabilities that are guaranteed to resolve.
// A miss is a misconfigured process, not a recoverable condition, so it
// panics rather than returning an error.
func MustValue[T any](ctx context.Context, key Key) T {
	v, ok := Value[T](ctx, key)
	if !ok {
		panic(fmt.Sprintf("appcontext: %s not configured and no default registered", key))
	}
	return v
}

// CycleError reports a capability whose construction depends, directly or
// through other generators, on itself.
type CycleError struct {
	Chain []Key
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, k := range e.Chain {
		parts[i] = string(k)
	}
	return "appcontext: circular dependency: " + strings.Join(parts, " -> ")
}
