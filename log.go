package bollywood

import "log/slog"

// withAddress returns a logger tagged with addr's debug id, for use at
// lifecycle transition points.
func withAddress(log *slog.Logger, addr *Address) *slog.Logger {
	return log.With(slog.String("address", addr.String()))
}
