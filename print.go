package flutter

import "context"

// PrintError writes an error message through the ambient logger.
func PrintError(ctx context.Context, format string, args ...any) {
	Logger(ctx).Errorf(format, args...)
}

// PrintWarning writes a warning through the ambient logger.
func PrintWarning(ctx context.Context, format string, args ...any) {
	Logger(ctx).Warningf(format, args...)
}

// PrintStatus writes normal progress output through the ambient logger.
func PrintStatus(ctx context.Context, format string, args ...any) {
	Logger(ctx).Statusf(format, args...)
}

// PrintTrace writes verbose-only output through the ambient logger.
func PrintTrace(ctx context.Context, format string, args ...any) {
	Logger(ctx).Tracef(format, args...)
}

// PrintBox draws message in a titled box through the ambient logger.
func PrintBox(ctx context.Context, message, title string) {
	Logger(ctx).PrintBox(message, title)
}
