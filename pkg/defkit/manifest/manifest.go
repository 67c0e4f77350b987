package manifest

import (
	"fmt"
	"time"

	"github.com/randalmurphal/defkit/pkg/defkit"
)

// Manifest is the parsed form of a repository declaration.
type Manifest struct {
	// Name is the repository name.
	Name string `yaml:"repository" json:"repository"`

	// Jobs declares the eager job namespace, in order.
	Jobs []JobSpec `yaml:"jobs" json:"jobs"`

	// Schedules declares the eager schedule namespace, in order.
	Schedules []ScheduleSpec `yaml:"schedules" json:"schedules"`

	// Sensors declares the eager sensor namespace, in order.
	Sensors []SensorSpec `yaml:"sensors" json:"sensors"`
}

// JobSpec declares one job.
type JobSpec struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description,omitempty"`
	Tags        map[string]string `yaml:"tags" json:"tags,omitempty"`
	Ops         []string          `yaml:"ops" json:"ops,omitempty"`
}

// ScheduleSpec declares one schedule.
type ScheduleSpec struct {
	Name string `yaml:"name" json:"name"`
	Cron string `yaml:"cron" json:"cron"`
	Job  string `yaml:"job" json:"job"`
}

// SensorSpec declares one sensor. Interval is a Go duration string
// (e.g. "30s").
type SensorSpec struct {
	Name     string `yaml:"name" json:"name"`
	Interval string `yaml:"interval" json:"interval"`
	Job      string `yaml:"job" json:"job"`
}

// Definition builds the job definition a spec declares.
func (s JobSpec) Definition() *defkit.JobDefinition {
	var opts []defkit.JobOption
	if s.Description != "" {
		opts = append(opts, defkit.WithDescription(s.Description))
	}
	if len(s.Tags) > 0 {
		opts = append(opts, defkit.WithTags(s.Tags))
	}
	if len(s.Ops) > 0 {
		opts = append(opts, defkit.WithOps(s.Ops...))
	}
	return defkit.NewJob(s.Name, opts...)
}

// Definition builds the schedule definition a spec declares.
func (s ScheduleSpec) Definition() *defkit.ScheduleDefinition {
	return defkit.NewSchedule(s.Name, s.Cron, s.Job)
}

// Definition builds the sensor definition a spec declares.
// Returns an error if the interval string does not parse.
func (s SensorSpec) Definition() (*defkit.SensorDefinition, error) {
	interval, err := time.ParseDuration(s.Interval)
	if err != nil {
		return nil, fmt.Errorf("sensor %q: parse interval: %w", s.Name, err)
	}
	return defkit.NewSensor(s.Name, interval, s.Job), nil
}

// Repository constructs the repository the manifest declares. Definitions
// are registered eagerly in declaration order; extra options (discovery
// functions, logging, metrics) are appended after the manifest's own.
func (m Manifest) Repository(opts ...defkit.RepositoryOption) (*defkit.Repository, error) {
	var repoOpts []defkit.RepositoryOption

	for _, spec := range m.Jobs {
		repoOpts = append(repoOpts, defkit.WithJob(spec.Definition()))
	}
	for _, spec := range m.Schedules {
		repoOpts = append(repoOpts, defkit.WithSchedule(spec.Definition()))
	}
	for _, spec := range m.Sensors {
		def, err := spec.Definition()
		if err != nil {
			return nil, err
		}
		repoOpts = append(repoOpts, defkit.WithSensor(def))
	}

	repoOpts = append(repoOpts, opts...)
	return defkit.NewRepository(m.Name, repoOpts...)
}
