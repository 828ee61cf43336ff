package options

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownKeys is returned when a TOML options file has keys no option uses.
var ErrUnknownKeys = errors.New("unknown option keys")

// File is the document holding per-type copy options, in YAML or TOML.
//
//	version: "1"
//	types:
//	  Post:
//	    ignore_attributes: [slug]
//	    copy_by_reference: [author]
//	    relationships:
//	      comments:
//	        deep: true
//	        overwrite: {approved: false}
type File struct {
	Version string                 `yaml:"version" toml:"version"`
	Types   map[string]CopyOptions `yaml:"types"   toml:"types"`
}

// LoadFile loads and parses an options file from the given path. Files with
// a .toml extension are parsed as TOML, anything else as YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse options YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// ParseTOML parses TOML data into a File. Keys that match no option are an error.
//
//	[types.Post]
//	ignore_attributes = ["slug"]
//
//	[types.Post.relationships.comments]
//	deep = true
func ParseTOML(data []byte) (*File, error) {
	var f File

	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse options TOML: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Types == nil {
		f.Types = map[string]CopyOptions{}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
