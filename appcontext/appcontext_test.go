package appcontext

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

const (
	keyLogger Key = "logger"
	keyClock  Key = "clock"
)

type fakeService struct {
	name string
}

func rootCtx(t *testing.T, fallbacks map[Key]Generator) context.Context {
	t.Helper()
	root := New("root", WithFallbacks(fallbacks))
	return With(context.Background(), root)
}

func TestGet_OverrideBeatsDefault(t *testing.T) {
	def := &fakeService{name: "default"}
	override := &fakeService{name: "override"}

	ctx := rootCtx(t, map[Key]Generator{keyLogger: Fixed(def)})

	err := Run(ctx, Scope{Overrides: map[Key]Generator{keyLogger: Fixed(override)}}, func(ctx context.Context) error {
		got := MustValue[*fakeService](ctx, keyLogger)
		if got != override {
			t.Errorf("Get inside scope = %v, want override", got.name)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestGet_DefaultIsMemoized(t *testing.T) {
	calls := 0
	ctx := rootCtx(t, map[Key]Generator{
		keyLogger: func(context.Context) any {
			calls++
			return &fakeService{name: "default"}
		},
	})

	first := MustValue[*fakeService](ctx, keyLogger)
	second := MustValue[*fakeService](ctx, keyLogger)

	if first != second {
		t.Error("Get() returned distinct default instances")
	}
	if calls != 1 {
		t.Errorf("generator ran %d times, want 1", calls)
	}
}

func TestGet_MissingKey(t *testing.T) {
	ctx := rootCtx(t, nil)

	if v, ok := Value[*fakeService](ctx, keyClock); ok {
		t.Errorf("Value() = %v, want absent", v)
	}
}

func TestMustValue_MissingKeyPanics(t *testing.T) {
	ctx := rootCtx(t, nil)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustValue() did not panic for unconfigured key")
		}
		if !strings.Contains(r.(string), string(keyClock)) {
			t.Errorf("panic message %q does not name the key", r)
		}
	}()
	MustValue[*fakeService](ctx, keyClock)
}

func TestRun_RestoresPriorResolution(t *testing.T) {
	def := &fakeService{name: "default"}
	override := &fakeService{name: "override"}
	ctx := rootCtx(t, map[Key]Generator{keyLogger: Fixed(def)})

	err := Run(ctx, Scope{Overrides: map[Key]Generator{keyLogger: Fixed(override)}}, func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := MustValue[*fakeService](ctx, keyLogger); got != def {
		t.Errorf("Get after scope = %v, want default", got.name)
	}
}

func TestRun_RestoresOnPanic(t *testing.T) {
	def := &fakeService{name: "default"}
	override := &fakeService{name: "override"}
	ctx := rootCtx(t, map[Key]Generator{keyLogger: Fixed(def)})

	func() {
		defer func() { _ = recover() }()
		_ = Run(ctx, Scope{Overrides: map[Key]Generator{keyLogger: Fixed(override)}}, func(ctx context.Context) error {
			panic("abnormal exit")
		})
	}()

	if got := MustValue[*fakeService](ctx, keyLogger); got != def {
		t.Errorf("Get after panicking scope = %v, want default", got.name)
	}
}

func TestRun_NestedScopes(t *testing.T) {
	outer := &fakeService{name: "outer"}
	inner := &fakeService{name: "inner"}
	ctx := rootCtx(t, nil)

	err := Run(ctx, Scope{Overrides: map[Key]Generator{keyLogger: Fixed(outer)}}, func(ctx context.Context) error {
		err := Run(ctx, Scope{Overrides: map[Key]Generator{keyLogger: Fixed(inner)}}, func(ctx context.Context) error {
			if got := MustValue[*fakeService](ctx, keyLogger); got != inner {
				t.Errorf("inner scope Get = %v, want inner", got.name)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if got := MustValue[*fakeService](ctx, keyLogger); got != outer {
			t.Errorf("outer scope Get after inner exit = %v, want outer", got.name)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRun_BodyError(t *testing.T) {
	ctx := rootCtx(t, nil)
	want := errors.New("body failed")

	err := Run(ctx, Scope{}, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("Run() error = %v, want %v", err, want)
	}
}

func TestGet_OverrideMemoizedPerScope(t *testing.T) {
	calls := 0
	ctx := rootCtx(t, nil)

	err := Run(ctx, Scope{Overrides: map[Key]Generator{
		keyLogger: func(context.Context) any {
			calls++
			return &fakeService{name: "scoped"}
		},
	}}, func(ctx context.Context) error {
		a := MustValue[*fakeService](ctx, keyLogger)
		b := MustValue[*fakeService](ctx, keyLogger)
		if a != b {
			t.Error("scoped override not memoized within scope")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("override generator ran %d times, want 1", calls)
	}
}

func TestGet_GeneratorComposition(t *testing.T) {
	ctx := rootCtx(t, map[Key]Generator{
		keyClock: Fixed(&fakeService{name: "clock"}),
		keyLogger: func(ctx context.Context) any {
			// Defaults may build on other capabilities.
			clock := MustValue[*fakeService](ctx, keyClock)
			return &fakeService{name: "logger-with-" + clock.name}
		},
	})

	got := MustValue[*fakeService](ctx, keyLogger)
	if got.name != "logger-with-clock" {
		t.Errorf("composed default = %q, want %q", got.name, "logger-with-clock")
	}
}

func TestGet_CyclePanics(t *testing.T) {
	root := New("root")
	root.fallbacks[keyLogger] = func(ctx context.Context) any {
		return MustValue[*fakeService](ctx, keyClock)
	}
	root.fallbacks[keyClock] = func(ctx context.Context) any {
		return MustValue[*fakeService](ctx, keyLogger)
	}
	ctx := With(context.Background(), root)

	defer func() {
		r := recover()
		cycle, ok := r.(*CycleError)
		if !ok {
			t.Fatalf("recover() = %v, want *CycleError", r)
		}
		want := "logger -> clock -> logger"
		if !strings.Contains(cycle.Error(), want) {
			t.Errorf("CycleError = %q, want chain %q", cycle.Error(), want)
		}
	}()
	MustValue[*fakeService](ctx, keyLogger)
}

func TestGet_ConcurrentFirstAccess(t *testing.T) {
	calls := 0
	ctx := rootCtx(t, map[Key]Generator{
		keyLogger: func(context.Context) any {
			calls++
			return &fakeService{name: "default"}
		},
	})

	const workers = 16
	results := make([]*fakeService, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = MustValue[*fakeService](ctx, keyLogger)
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("generator ran %d times under racing first access, want 1", calls)
	}
	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("worker %d got a distinct instance", i)
		}
	}
}

func TestReset_ForcesReconstruction(t *testing.T) {
	calls := 0
	root := New("root", WithFallbacks(map[Key]Generator{
		keyLogger: func(context.Context) any {
			calls++
			return &fakeService{name: "default"}
		},
	}))
	ctx := With(context.Background(), root)

	first := MustValue[*fakeService](ctx, keyLogger)
	root.Reset(keyLogger)
	second := MustValue[*fakeService](ctx, keyLogger)

	if first == second {
		t.Error("Reset() did not discard the memoized default")
	}
	if calls != 2 {
		t.Errorf("generator ran %d times, want 2", calls)
	}
}

func TestFrom_NoRegistry(t *testing.T) {
	if ac := From(context.Background()); ac != nil {
		t.Errorf("From(bare ctx) = %v, want nil", ac)
	}
	if _, ok := Value[*fakeService](context.Background(), keyLogger); ok {
		t.Error("Value() on bare ctx reported a hit")
	}
}

func TestGet_FallbackOuterWins(t *testing.T) {
	rootVal := &fakeService{name: "root"}
	scopedVal := &fakeService{name: "scoped"}
	ctx := rootCtx(t, map[Key]Generator{keyLogger: Fixed(rootVal)})

	err := Run(ctx, Scope{Fallbacks: map[Key]Generator{keyLogger: Fixed(scopedVal)}}, func(ctx context.Context) error {
		if got := MustValue[*fakeService](ctx, keyLogger); got != rootVal {
			t.Errorf("Get = %v, want root fallback to win over scoped fallback", got.name)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestGet_DefaultBuiltUnderScopeDoesNotOutliveOverride(t *testing.T) {
	ctx := rootCtx(t, map[Key]Generator{
		keyClock: Fixed(&fakeService{name: "real"}),
		keyLogger: func(ctx context.Context) any {
			clock := MustValue[*fakeService](ctx, keyClock)
			return &fakeService{name: "logger-with-" + clock.name}
		},
	})

	// First construction of the composed default happens while an override
	// for its dependency is active.
	err := Run(ctx, Scope{Overrides: map[Key]Generator{
		keyClock: Fixed(&fakeService{name: "fake"}),
	}}, func(ctx context.Context) error {
		got := MustValue[*fakeService](ctx, keyLogger)
		if got.name != "logger-with-fake" {
			t.Errorf("Get inside scope = %q, want composition over the override", got.name)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// After the scope exits, the process default must not retain the
	// override it composed; it is rebuilt from the root's own view.
	if got := MustValue[*fakeService](ctx, keyLogger); got.name != "logger-with-real" {
		t.Errorf("Get after scope = %q, want the root composition", got.name)
	}
}

func TestGet_DefaultBuiltUnderScopeIsMemoizedInThatScope(t *testing.T) {
	calls := 0
	ctx := rootCtx(t, map[Key]Generator{
		keyLogger: func(context.Context) any {
			calls++
			return &fakeService{name: "default"}
		},
	})

	err := Run(ctx, Scope{}, func(ctx context.Context) error {
		a := MustValue[*fakeService](ctx, keyLogger)
		b := MustValue[*fakeService](ctx, keyLogger)
		if a != b {
			t.Error("default not memoized within the initiating scope")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("generator ran %d times inside one scope, want 1", calls)
	}
}
