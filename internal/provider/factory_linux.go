//go:build linux

package provider

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/helsaawy/go-tracelog/pkg/userevents"
)

var probeOnce sync.Once

// New registers cfg with the user_events facility.
func New(cfg Config) (Provider, error) {
	if cfg.Registrar == nil && !userevents.Available() {
		probeOnce.Do(func() {
			logrus.WithField("provider", cfg.Name).
				Warn("user_events facility is unavailable; trace events are disabled")
		})
	}
	return userevents.New(cfg.Name, cfg.GroupName, cfg.DefaultKeyword, cfg.Registrar)
}
