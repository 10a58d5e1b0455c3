// Package settings holds build metadata and the per-invocation options of the
// colorder CLI.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "colorder"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-dev",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Output formats understood by the CLI.
const (
	OutputTable    = "table"
	OutputYAML     = "yaml"
	OutputJSON     = "json"
	OutputTOML     = "toml"
	OutputCSV      = "csv"
	OutputMarkdown = "markdown"
	OutputHTML     = "html"
	OutputTree     = "tree"
)

// Outputs lists every supported output format in help order.
var Outputs = []string{OutputTable, OutputYAML, OutputJSON, OutputTOML, OutputCSV, OutputMarkdown, OutputHTML, OutputTree}

// Run holds the options for a single execution of the CLI.
type Run struct {
	MinLogLevel int8
	ConfigFile  string
	Output      string
	Filter      string
	Width       int
	NoColor     bool
	Interactive bool
}

// NewCliParams returns the defaults used before flags are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Output:      OutputTable,
	}
}

// ValidOutput reports whether name is one of Outputs.
func ValidOutput(name string) bool {
	for _, o := range Outputs {
		if o == name {
			return true
		}
	}
	return false
}
