// Package appcontext provides an ambient capability registry with scoped
// overrides and lazy default fallback.
//
// Core types:
//   - AppContext: one scope in a parent-linked chain of override maps
//   - Key: closed capability tag (no runtime type reflection)
//   - Generator: lazy constructor for a capability
//   - Scope: overrides and fallbacks installed by Run
//
// Resolution order for Get(key): innermost scope to root, memoized values
// and overrides first; then fallbacks, root first. Defaults installed as
// root fallbacks are constructed on first use; accessed with no child scope
// active, the instance is reused for the process lifetime. A default first
// accessed under a child scope composes that scope's overrides and is
// memoized in the scope itself, never further out, so nothing scoped leaks
// into the process defaults. Overrides installed via Run are visible only
// within the dynamic extent of the body and are restored automatically on
// return or panic, because the scope rides the derived context.Context.
//
// Example usage:
//
//	root := appcontext.New("flutter", appcontext.WithFallbacks(map[appcontext.Key]appcontext.Generator{
//	    "logger": func(ctx context.Context) any { return logging.NewStdout(term, stdio) },
//	}))
//	ctx := appcontext.With(context.Background(), root)
//
//	err := appcontext.Run(ctx, appcontext.Scope{
//	    Name:      "test",
//	    Overrides: map[appcontext.Key]appcontext.Generator{"logger": appcontext.Fixed(fake)},
//	}, func(ctx context.Context) error {
//	    logger := appcontext.MustValue[logging.Logger](ctx, "logger") // fake
//	    ...
//	    return nil
//	})
//
// Generators may resolve other capabilities through the context they are
// handed; a generator that reaches its own key again panics with a
// CycleError naming the full chain.
package appcontext
