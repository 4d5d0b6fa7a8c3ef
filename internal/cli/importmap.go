package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "github.com/denoup/denoup/pkg/errors"
)

// importMapCandidates are probed in order when no file argument is given.
var importMapCandidates = []string{"deno.json", "import_map.json", "deno.jsonc"}

// importMap is a dependency manifest with an "imports" object. Fields other
// than "imports" are kept as raw JSON and written back untouched.
type importMap struct {
	Path    string
	Imports map[string]string

	fields map[string]json.RawMessage
}

// findImportMap locates the dependency manifest in dir.
func findImportMap(dir string) (string, error) {
	for _, name := range importMapCandidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeFileNotFound, "no deno.json or import_map.json found in %s", dir)
}

// loadImportMap reads and parses the manifest at path.
func loadImportMap(path string) (*importMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "read %s", path)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		if filepath.Ext(path) == ".jsonc" {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "%s contains comments; convert it to plain JSON first", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "parse %s", path)
	}

	imports := map[string]string{}
	if raw, ok := fields["imports"]; ok {
		if err := json.Unmarshal(raw, &imports); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "imports field of %s", path)
		}
	}
	return &importMap{Path: path, Imports: imports, fields: fields}, nil
}

// save writes the manifest back, replacing only the "imports" object.
// Keys are serialized in sorted order.
func (m *importMap) save() error {
	raw, err := json.Marshal(m.Imports)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode imports")
	}
	if m.fields == nil {
		m.fields = map[string]json.RawMessage{}
	}
	m.fields["imports"] = raw

	data, err := json.MarshalIndent(m.fields, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode %s", m.Path)
	}
	data = append(data, '\n')
	if err := os.WriteFile(m.Path, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "write %s", m.Path)
	}
	return nil
}
