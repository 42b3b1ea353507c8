package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded myton.toml. Zero values mean "not set"; Defined
// reports which keys the file actually carried so flags can tell an explicit
// value from a default.
type Manifest struct {
	Path string `toml:"-"`
	Root string `toml:"-"`

	Run         RunSection         `toml:"run"`
	Diagnostics DiagnosticsSection `toml:"diagnostics"`
	Trace       TraceSection       `toml:"trace"`
	Test        TestSection        `toml:"test"`

	meta toml.MetaData
}

type RunSection struct {
	Main string `toml:"main"`
}

type DiagnosticsSection struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

type TraceSection struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

type TestSection struct {
	Dir  string `toml:"dir"`
	Jobs int    `toml:"jobs"`
}

var (
	// ErrNoMain indicates that [run].main is missing when a script path is required.
	ErrNoMain = errors.New("missing [run].main")
	// ErrUnknownKey is wrapped when the manifest carries keys this version does not understand.
	ErrUnknownKey = errors.New("unknown manifest key")
)

// LoadManifest parses a myton.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if m.Diagnostics.Max < 0 {
		return nil, fmt.Errorf("%s: [diagnostics].max must be >= 0", path)
	}
	if m.Test.Jobs < 0 {
		return nil, fmt.Errorf("%s: [test].jobs must be >= 0", path)
	}
	switch m.Diagnostics.Color {
	case "", "auto", "on", "off":
	default:
		return nil, fmt.Errorf("%s: invalid [diagnostics].color %q (want auto|on|off)", path, m.Diagnostics.Color)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	m.Path = abs
	m.Root = filepath.Dir(abs)
	m.meta = meta
	return &m, nil
}

// Discover finds and loads the manifest above startDir. A missing manifest
// is not an error: it yields (nil, false, nil).
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// Defined reports whether the manifest set the given key, e.g. ("trace", "level").
func (m *Manifest) Defined(key ...string) bool {
	if m == nil {
		return false
	}
	return m.meta.IsDefined(key...)
}

// MainScript returns [run].main resolved against the manifest directory.
func (m *Manifest) MainScript() (string, error) {
	if m == nil || strings.TrimSpace(m.Run.Main) == "" {
		return "", ErrNoMain
	}
	return m.resolve(m.Run.Main), nil
}

// TestDir returns [test].dir resolved against the manifest directory, or "".
func (m *Manifest) TestDir() string {
	if m == nil || strings.TrimSpace(m.Test.Dir) == "" {
		return ""
	}
	return m.resolve(m.Test.Dir)
}

// TraceOutput returns [trace].output resolved against the manifest
// directory. The stream names stderr/stdout pass through.
func (m *Manifest) TraceOutput() string {
	if m == nil {
		return ""
	}
	switch out := strings.TrimSpace(m.Trace.Output); out {
	case "", "stderr", "stdout":
		return out
	default:
		return m.resolve(out)
	}
}

func (m *Manifest) resolve(p string) string {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}
