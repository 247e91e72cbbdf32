package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the syntax a recipe is written in.
type Format string

const (
	FormatYAML Format = "yaml" // also JSON, which is a YAML subset
	FormatTOML Format = "toml"
	FormatCUE  Format = "cue"
)

// Error codes for LoadError.
const (
	ErrCodeNotFound    = "E101"
	ErrCodeBadFormat   = "E102"
	ErrCodeParseFailed = "E103"
	ErrCodeUnknownKey  = "E104"
)

// LoadError represents an error that occurred while reading a recipe.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", &LoadError{
			Code:    ErrCodeBadFormat,
			Message: fmt.Sprintf("unsupported recipe extension %q (want .yaml, .yml, .json, .toml or .cue)", filepath.Ext(path)),
		}
	}
}

// Load reads and decodes the recipe at path.
func Load(path string) (*Document, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("failed to read recipe file: %v", err),
			Err:     err,
		}
	}

	return Parse(data, format, path)
}

// Parse decodes a recipe from data. filename is only used in positions
// of error messages and may be empty.
func Parse(data []byte, format Format, filename string) (*Document, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		return decodeTOML(data)
	case FormatCUE:
		return decodeCUE(data, filename)
	default:
		return nil, &LoadError{Code: ErrCodeBadFormat, Message: fmt.Sprintf("unknown recipe format %q", format)}
	}
}

func decodeYAML(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown keys
	if err := decoder.Decode(&doc); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeParseFailed,
			Message: fmt.Sprintf("failed to parse YAML: %v", err),
			Err:     err,
		}
	}
	return &doc, nil
}

func decodeTOML(data []byte) (*Document, error) {
	var doc Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeParseFailed,
			Message: fmt.Sprintf("failed to parse TOML: %v", err),
			Err:     err,
		}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &LoadError{
			Code:    ErrCodeUnknownKey,
			Message: fmt.Sprintf("unknown keys: %s", strings.Join(keys, ", ")),
		}
	}
	return &doc, nil
}

// decodeCUE evaluates the CUE source, exports it to JSON and decodes the
// JSON as YAML.
func decodeCUE(data []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	var opts []cue.BuildOption
	if filename != "" {
		opts = append(opts, cue.Filename(filename))
	}

	value := ctx.CompileBytes(data, opts...)
	if err := value.Err(); err != nil {
		return nil, cueLoadError("compiling CUE", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError("validating CUE", err)
	}

	exported, err := value.MarshalJSON()
	if err != nil {
		return nil, cueLoadError("exporting CUE", err)
	}
	return decodeYAML(exported)
}

// cueLoadError extracts position info from CUE errors.
func cueLoadError(stage string, err error) error {
	loadErr := &LoadError{
		Code:    ErrCodeParseFailed,
		Message: fmt.Sprintf("%s: %v", stage, err),
		Err:     err,
	}

	// CUE errors may contain multiple errors; report the first position
	var cueErr cueerrors.Error
	if errors.As(err, &cueErr) {
		if positions := cueerrors.Positions(cueErr); len(positions) > 0 {
			loadErr.Pos = positions[0]
		}
	}
	return loadErr
}
