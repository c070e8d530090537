package testsupport

import (
	"path/filepath"
	"testing"

	"compsplit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose index lives in a unique temp directory
// per test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Dictionary.IndexPath = filepath.Join(base, "index", "dictionary.db")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithWordlist writes lines as the config's dictionary wordlist.
func WithWordlist(lines ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dictionary.Path = WriteWordlist(b.t, filepath.Join(b.baseDir, "words.txt"), lines...)
	}
}

// WithFloor overrides the dictionary floor on the test config.
func WithFloor(floor int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dictionary.Floor = floor
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Dictionary.IndexPath))
}
