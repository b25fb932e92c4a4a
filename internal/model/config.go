package model

import (
	"fmt"
	"strings"
)

// Default extensions, matching Fujifilm cameras.
const (
	DefaultRawExt       = "RAF"
	DefaultDevelopedExt = "JPG"
)

// ExtensionConfig is the immutable pairing configuration: the two recognized
// extensions and the class being checked for orphans.
type ExtensionConfig struct {
	rawExt       string
	developedExt string
	subject      FileClass
	foldBaseCase bool
}

// ConfigOption customizes an ExtensionConfig at construction time.
type ConfigOption func(*ExtensionConfig)

// WithFoldBaseCase makes base identifier grouping case-insensitive.
func WithFoldBaseCase(fold bool) ConfigOption {
	return func(c *ExtensionConfig) {
		c.foldBaseCase = fold
	}
}

// NewExtensionConfig validates and builds an ExtensionConfig.
// Extensions may be given with or without a leading dot. Empty extensions,
// equal extensions (ignoring case) and a subject other than raw or developed
// are rejected with ErrInvalidConfig.
func NewExtensionConfig(rawExt, developedExt string, subject FileClass, opts ...ConfigOption) (ExtensionConfig, error) {
	raw := normalizeExt(rawExt)
	developed := normalizeExt(developedExt)

	if raw == "" {
		return ExtensionConfig{}, fmt.Errorf("%w: raw extension is empty", ErrInvalidConfig)
	}

	if developed == "" {
		return ExtensionConfig{}, fmt.Errorf("%w: developed extension is empty", ErrInvalidConfig)
	}

	if strings.EqualFold(raw, developed) {
		return ExtensionConfig{}, fmt.Errorf("%w: raw and developed extensions are both %q", ErrInvalidConfig, raw)
	}

	if subject != ClassRaw && subject != ClassDeveloped {
		return ExtensionConfig{}, fmt.Errorf("%w: subject class must be raw or developed, got %s", ErrInvalidConfig, subject)
	}

	cfg := ExtensionConfig{
		rawExt:       raw,
		developedExt: developed,
		subject:      subject,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg, nil
}

// DefaultExtensionConfig returns the RAF/JPG configuration for the given subject.
func DefaultExtensionConfig(subject FileClass) (ExtensionConfig, error) {
	return NewExtensionConfig(DefaultRawExt, DefaultDevelopedExt, subject)
}

func normalizeExt(ext string) string {
	return strings.TrimPrefix(strings.TrimSpace(ext), ".")
}

// RawExt returns the raw extension without a leading dot.
func (c ExtensionConfig) RawExt() string { return c.rawExt }

// DevelopedExt returns the developed extension without a leading dot.
func (c ExtensionConfig) DevelopedExt() string { return c.developedExt }

// Subject returns the class being hunted for orphans.
func (c ExtensionConfig) Subject() FileClass { return c.subject }

// FoldBaseCase reports whether base identifiers are compared case-insensitively.
func (c ExtensionConfig) FoldBaseCase() bool { return c.foldBaseCase }

// Counterpart returns the class whose presence saves a subject file.
func (c ExtensionConfig) Counterpart() FileClass {
	if c.subject == ClassRaw {
		return ClassDeveloped
	}

	return ClassRaw
}

// Validate rejects configurations not built by NewExtensionConfig, such as
// the zero value.
func (c ExtensionConfig) Validate() error {
	if c.subject != ClassRaw && c.subject != ClassDeveloped {
		return fmt.Errorf("%w: subject class must be raw or developed, got %s", ErrInvalidConfig, c.subject)
	}

	if c.rawExt == "" || c.developedExt == "" {
		return fmt.Errorf("%w: extensions are not set", ErrInvalidConfig)
	}

	return nil
}

// Mode returns the operating mode matching the subject class.
func (c ExtensionConfig) Mode() Mode {
	if c.subject == ClassRaw {
		return ModeRAW
	}

	return ModeIMG
}
