// Package flutter is the dependency surface of the tool. It exposes typed
// accessors over an ambient registry (package appcontext): every core
// dependency has a lazy process-wide default, and any call chain can shadow
// a dependency for its own duration by running under a child scope.
//
// Accessors work on any context, including context.Background(); when the
// context carries no registry the process root is attached on the fly.
// Required accessors (FS, Logger, Platform, ...) always return a value,
// constructing the default on first use. Optional accessors (AndroidSDK,
// DeviceManager, ...) return nil until a scope provides a generator.
//
//	err := flutter.RunInScope(ctx, appcontext.Scope{
//		Name:      "test",
//		Overrides: map[appcontext.Key]appcontext.Generator{
//			flutter.KeyFileSystem: appcontext.Fixed(fsys.NewMemory()),
//		},
//	}, func(ctx context.Context) error {
//		return doWork(ctx, flutter.FS(ctx))
//	})
package flutter
