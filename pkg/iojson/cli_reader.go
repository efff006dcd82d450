package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned when neither a file nor piped stdin is available.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use -f flag or pipe JSON input")

// FileReader decodes a JSON document of type T from the --file flag or stdin.
type FileReader[T any] struct {
	fileFlagValue string

	// Stdin overrides os.Stdin. Terminal detection only applies to *os.File.
	Stdin io.Reader
}

// Flag returns the --file / -f flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// Read decodes the input.
func (fr *FileReader[T]) Read() (T, error) {
	var zero T

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return zero, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return Decode[T](f)
	}

	stdin := fr.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return zero, ErrNoInput
	}

	return Decode[T](stdin)
}

// Decode reads a single JSON value of type T from r, rejecting unknown fields.
func Decode[T any](r io.Reader) (T, error) {
	var out T

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("decode JSON: %w", err)
	}
	return out, nil
}
