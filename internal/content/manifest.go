package content

import (
	"fmt"
	"io/fs"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the pack-relative path of the story manifest.
const ManifestFile = "story.yaml"

// SupportedFormat is the newest pack format this build reads. Packs with
// the same major version are accepted.
const SupportedFormat = "v1.0.0"

// Manifest describes a story pack.
type Manifest struct {
	Title  string `yaml:"title" validate:"required"`
	Author string `yaml:"author"`
	Format string `yaml:"format" validate:"required"`
	Slides int    `yaml:"slides" validate:"required,min=1"`
}

// LoadManifest reads and checks the manifest of fsys.
func LoadManifest(fsys fs.FS, wantSlides int) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := getValidator().Struct(m); err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}
	if err := checkFormat(m.Format); err != nil {
		return nil, err
	}
	if m.Slides != wantSlides {
		return nil, fmt.Errorf("manifest declares %d slides, book has %d", m.Slides, wantSlides)
	}
	return &m, nil
}

func checkFormat(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("manifest format %q is not a version", v)
	}
	if semver.Major(v) != semver.Major(SupportedFormat) {
		return fmt.Errorf("manifest format %s not supported (want %s)", v, semver.Major(SupportedFormat))
	}
	if semver.Compare(v, SupportedFormat) > 0 {
		return fmt.Errorf("manifest format %s is newer than %s", v, SupportedFormat)
	}
	return nil
}
