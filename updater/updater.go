package updater

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Updater schedules periodic rule reloads, for deployments where the rule
// file is synced from elsewhere and file watching is unreliable (network
// mounts).
type Updater struct {
	c   *cron.Cron
	log *zap.Logger
}

// New registers reload under spec (standard cron format; descriptors like
// @hourly work too). An empty spec yields a no-op updater.
func New(spec string, reload func() error, log *zap.Logger) (*Updater, error) {
	u := &Updater{log: log}
	if spec == "" {
		return u, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		log.Info("scheduled rule reload", zap.String("schedule", spec))
		if err := reload(); err != nil {
			log.Error("scheduled reload failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	u.c = c
	return u, nil
}

// Start begins the schedule. Safe to call on a no-op updater.
func (u *Updater) Start() {
	if u.c != nil {
		u.c.Start()
	}
}

// Stop halts the schedule and waits for a running reload to finish.
func (u *Updater) Stop() {
	if u.c != nil {
		<-u.c.Stop().Done()
	}
}
