//go:build windows

package provider

import "github.com/helsaawy/go-tracelog/internal/provider/etw"

// New registers cfg with ETW.
func New(cfg Config) (Provider, error) {
	return etw.New(cfg.Name, cfg.ID, cfg.GroupID)
}
