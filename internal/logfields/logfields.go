package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyEvent      = "event"
	KeyRevision   = "revision"
	KeyPackage    = "package"
	KeyManifest   = "manifest"
	KeyStatus     = "status"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyArtifact   = "artifact_dir"
	KeyDurationMS = "duration_ms"
	KeyChanged    = "changed_paths"
	KeyPlanned    = "planned"
	KeyAttempt    = "attempt"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }
func Revision(r string) slog.Attr     { return slog.String(KeyRevision, r) }
func Package(name string) slog.Attr   { return slog.String(KeyPackage, name) }
func Manifest(path string) slog.Attr  { return slog.String(KeyManifest, path) }
func Status(s string) slog.Attr       { return slog.String(KeyStatus, s) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func ArtifactDir(d string) slog.Attr  { return slog.String(KeyArtifact, d) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func ChangedPaths(n int) slog.Attr    { return slog.Int(KeyChanged, n) }
func Planned(n int) slog.Attr         { return slog.Int(KeyPlanned, n) }
func Attempt(n int) slog.Attr         { return slog.Int(KeyAttempt, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
