// Package manifest loads declarative link manifests and applies them in
// order. It is the run sequencer sitting above the convergence engine:
// one Converge call per entry, entries applied strictly in file order,
// which is also what guarantees per-path serialization within a run.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/types"
)

// Entry is one declared link. Unset kind defaults to symbolic, unset
// action to create.
type Entry struct {
	Target      string `toml:"target" yaml:"target"`
	Destination string `toml:"to" yaml:"to"`
	Kind        string `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Owner       string `toml:"owner,omitempty" yaml:"owner,omitempty"`
	Group       string `toml:"group,omitempty" yaml:"group,omitempty"`
	Action      string `toml:"action,omitempty" yaml:"action,omitempty"`
}

// Descriptor converts the entry into the engine's desired-state form.
func (e Entry) Descriptor() types.LinkDescriptor {
	return types.LinkDescriptor{
		TargetPath:  e.Target,
		Destination: e.Destination,
		Kind:        types.LinkKind(e.Kind),
		Owner:       e.Owner,
		Group:       e.Group,
	}
}

// ConvergeAction returns the entry's action, defaulting to create.
func (e Entry) ConvergeAction() types.Action {
	if e.Action == "" {
		return types.ActionCreate
	}
	return types.Action(e.Action)
}

// Manifest is an ordered list of link entries.
type Manifest struct {
	Links []Entry `toml:"link" yaml:"links"`
}

// Load reads a manifest file, dispatching on extension: .toml, .yaml and
// .yml are supported.
func Load(fsys types.FS, path string) (Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return Manifest{}, errors.Wrap(err, errors.ErrManifestLoad, "failed to read manifest").WithPath(path)
	}
	return Parse(data, filepath.Ext(path), path)
}

// Parse decodes manifest bytes in the format implied by ext.
func Parse(data []byte, ext, path string) (Manifest, error) {
	var m Manifest
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return Manifest{}, errors.Wrap(err, errors.ErrManifestParse, "invalid TOML manifest").WithPath(path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Manifest{}, errors.Wrap(err, errors.ErrManifestParse, "invalid YAML manifest").WithPath(path)
		}
	default:
		return Manifest{}, errors.Newf(errors.ErrManifestParse, "unsupported manifest format %q", ext).WithPath(path)
	}

	if err := m.validate(path); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func (m Manifest) validate(path string) error {
	for i, e := range m.Links {
		if e.Target == "" {
			return errors.Newf(errors.ErrManifestParse, "link %d: target is required", i).WithPath(path)
		}
		if e.Kind != "" && !types.LinkKind(e.Kind).Valid() {
			return errors.Newf(errors.ErrManifestParse, "link %d: unknown kind %q", i, e.Kind).WithPath(path)
		}
		switch e.ConvergeAction() {
		case types.ActionCreate:
			if e.Destination == "" {
				return errors.Newf(errors.ErrManifestParse, "link %d: destination is required for create", i).WithPath(path)
			}
		case types.ActionDelete:
		default:
			return errors.Newf(errors.ErrManifestParse, "link %d: unknown action %q", i, e.Action).WithPath(path)
		}
	}
	return nil
}
