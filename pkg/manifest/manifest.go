package manifest

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dargo/pkg/errors"
	"github.com/matzehuels/dargo/pkg/tomledit"
)

// FileName is the manifest looked up inside a directory.
const FileName = "Cargo.toml"

// Manifest is one loaded Cargo.toml.
type Manifest struct {
	Path string

	doc      *tomledit.Document
	original string
	mode     fs.FileMode
	file     cargoFile
	meta     toml.MetaData
	raw      map[string]any
}

type cargoFile struct {
	Package *struct {
		Name    string `toml:"name"`
		Version any    `toml:"version"`
	} `toml:"package"`
	Workspace *struct {
		Members []string `toml:"members"`
		Exclude []string `toml:"exclude"`
	} `toml:"workspace"`
}

// ResolvePath turns a file or directory argument into an absolute manifest
// path. Directories resolve to the Cargo.toml inside them.
func ResolvePath(p string) (string, error) {
	if p == "" {
		p = "."
	}
	info, err := os.Stat(p)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.New(errors.ErrCodeManifestNotFound, "manifest not found at %s", p)
		}
		return "", errors.Wrap(errors.ErrCodeManifestNotFound, err, "stat %s", p)
	}
	if info.IsDir() {
		p = filepath.Join(p, FileName)
		if _, err := os.Stat(p); err != nil {
			return "", errors.New(errors.ErrCodeManifestNotFound, "could not find %s in %s", FileName, filepath.Dir(p))
		}
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeManifestNotFound, err, "resolve %s", p)
	}
	return abs, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.ErrCodeManifestNotFound, "manifest not found at %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeManifestNotFound, err, "read %s", path)
	}
	m, err := Parse(path, string(data))
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(path); err == nil {
		m.mode = info.Mode().Perm()
	}
	return m, nil
}

// Parse builds a manifest from text. path is only used for messages, member
// discovery and Save.
func Parse(path, text string) (*Manifest, error) {
	m := &Manifest{Path: path, original: text, mode: 0o644}
	meta, err := toml.Decode(text, &m.file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	m.meta = meta
	if _, err := toml.Decode(text, &m.raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	doc, err := tomledit.Parse(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	m.doc = doc
	return m, nil
}

// Name returns the package name, or the directory name for a virtual
// manifest.
func (m *Manifest) Name() string {
	if m.file.Package != nil && m.file.Package.Name != "" {
		return m.file.Package.Name
	}
	return filepath.Base(filepath.Dir(m.Path))
}

// IsVirtual reports whether the manifest only declares a workspace.
func (m *Manifest) IsVirtual() bool {
	return m.file.Package == nil && m.file.Workspace != nil
}

// String returns the current document text.
func (m *Manifest) String() string { return m.doc.String() }

// Changed reports whether any edit altered the text since it was loaded or
// last saved.
func (m *Manifest) Changed() bool { return m.doc.String() != m.original }

// Save writes the document back to Path with its original file mode. It
// does nothing when the text is unchanged and reports whether it wrote.
func (m *Manifest) Save() (bool, error) {
	if !m.Changed() {
		return false, nil
	}
	text := m.doc.String()
	var probe map[string]any
	if _, err := toml.Decode(text, &probe); err != nil {
		return false, errors.Wrap(errors.ErrCodeInternal, err, "edited %s is not valid TOML", m.Path)
	}
	if err := os.WriteFile(m.Path, []byte(text), m.mode); err != nil {
		return false, errors.Wrap(errors.ErrCodeInternal, err, "write %s", m.Path)
	}
	m.original = text
	return true, nil
}
