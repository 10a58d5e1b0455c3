package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/colorder/internal/accounts"
)

// stdinArg names standard input explicitly.
const stdinArg = "-"

// loadInput reads accounts from the file argument, from stdin when it is "-"
// or piped, and otherwise returns the built-in sample rows.
func loadInput(in io.Reader, args []string, inputFormat string, lgr logr.Logger) ([]accounts.Account, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	var (
		data   []byte
		err    error
		source string
	)
	switch {
	case path != "" && path != stdinArg:
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		source = path
	case path == stdinArg || stdinIsPiped():
		data, err = io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		source = "stdin"
	default:
		lgr.V(1).Info("no input given, using sample accounts")
		return accounts.Sample(), nil
	}

	format, err := resolveInputFormat(inputFormat, path)
	if err != nil {
		return nil, err
	}
	rows, err := accounts.Load(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	lgr.V(1).Info("loaded accounts", "source", source, "format", string(format), "rows", len(rows))
	return rows, nil
}

// resolveInputFormat maps --input-format to an accounts.Format. An empty
// value picks by file extension; JSON is read by the YAML decoder.
func resolveInputFormat(name, path string) (accounts.Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return accounts.FormatForPath(path), nil
	case "yaml", "yml", "json":
		return accounts.FormatYAML, nil
	case "csv":
		return accounts.FormatCSV, nil
	default:
		return "", fmt.Errorf("invalid --input-format %q (expected yaml|json|csv)", name)
	}
}
