//go:build !windows && !linux

package provider

// New has no native sink on this platform; events read as disabled and
// writes are discarded.
func New(cfg Config) (Provider, error) {
	return Disabled(cfg.Name), nil
}
