// Package exitcode provides standardized exit codes for exportsync
package exitcode

// Exit codes for the exportsync CLI. Only returned under --strict or for
// command-line usage errors; a best-effort sync always exits with Success.
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	ProjectNotFound = 3
	ManifestError   = 4
	FileSystemError = 5
	NoEntries       = 6
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ProjectNotFound:
		return "Project root not found"
	case ManifestError:
		return "Manifest error"
	case FileSystemError:
		return "File system error"
	case NoEntries:
		return "No entry points found"
	default:
		return "Unknown error"
	}
}
