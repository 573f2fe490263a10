package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bialog/bialog/internal/api"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// tabPadding is the column padding of tabular output.
const tabPadding = 2

// ErrUnsupportedOutput is returned for an unknown --output value.
var ErrUnsupportedOutput = errors.New("unsupported output format")

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON:
		return nil
	default:
		return fmt.Errorf("%w: %q (use %s or %s)", ErrUnsupportedOutput, format, outputTable, outputJSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// apiError wraps err for op and adds a sign-in hint for rejected tokens.
func apiError(op string, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return fmt.Errorf("%s: %w (run 'bialog login' to sign in)", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// splitArgs splits comma or space separated arguments.
func splitArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		for _, part := range strings.FieldsFunc(a, func(r rune) bool { return r == ',' || r == ' ' }) {
			out = append(out, part)
		}
	}
	return out
}
