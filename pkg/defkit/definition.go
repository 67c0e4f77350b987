package defkit

import (
	"fmt"
	"time"
)

// Definition is the minimal contract for values held by an Index: a
// readable name. The name is the key under which the definition lives in
// the merged namespace.
type Definition interface {
	Name() string
}

// JobDefinition describes a runnable workflow job.
type JobDefinition struct {
	name        string
	description string
	tags        map[string]string
	ops         []string
}

// JobOption configures a JobDefinition.
type JobOption func(*JobDefinition)

// WithDescription sets the job's human-readable description.
func WithDescription(desc string) JobOption {
	return func(j *JobDefinition) {
		j.description = desc
	}
}

// WithTags sets the job's tags.
func WithTags(tags map[string]string) JobOption {
	return func(j *JobDefinition) {
		j.tags = tags
	}
}

// WithOps sets the ordered op names the job executes.
func WithOps(ops ...string) JobOption {
	return func(j *JobDefinition) {
		j.ops = ops
	}
}

// NewJob creates a job definition.
func NewJob(name string, opts ...JobOption) *JobDefinition {
	j := &JobDefinition{name: name}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Name returns the job's name.
func (j *JobDefinition) Name() string { return j.name }

// Description returns the job's description.
func (j *JobDefinition) Description() string { return j.description }

// Tags returns the job's tags. The returned map should not be modified.
func (j *JobDefinition) Tags() map[string]string { return j.tags }

// Ops returns the ordered op names the job executes.
// The returned slice should not be modified.
func (j *JobDefinition) Ops() []string { return j.ops }

// ScheduleDefinition triggers a job on a cron schedule.
type ScheduleDefinition struct {
	name string
	cron string
	job  string
}

// NewSchedule creates a schedule definition targeting the named job.
func NewSchedule(name, cron, job string) *ScheduleDefinition {
	return &ScheduleDefinition{name: name, cron: cron, job: job}
}

// Name returns the schedule's name.
func (s *ScheduleDefinition) Name() string { return s.name }

// Cron returns the schedule's cron expression.
func (s *ScheduleDefinition) Cron() string { return s.cron }

// Job returns the name of the job the schedule triggers.
func (s *ScheduleDefinition) Job() string { return s.job }

// SensorDefinition triggers a job when polled conditions are met.
type SensorDefinition struct {
	name     string
	interval time.Duration
	job      string
}

// NewSensor creates a sensor definition targeting the named job.
// interval is the minimum time between sensor evaluations.
func NewSensor(name string, interval time.Duration, job string) *SensorDefinition {
	return &SensorDefinition{name: name, interval: interval, job: job}
}

// Name returns the sensor's name.
func (s *SensorDefinition) Name() string { return s.name }

// Interval returns the minimum time between sensor evaluations.
func (s *SensorDefinition) Interval() time.Duration { return s.interval }

// Job returns the name of the job the sensor triggers.
func (s *SensorDefinition) Job() string { return s.job }

// ValidateJob checks a job definition for use with WithValidation.
func ValidateJob(j *JobDefinition) (*JobDefinition, error) {
	if j.name == "" {
		return nil, fmt.Errorf("%w: job has no name", ErrInvalidDefinition)
	}
	return j, nil
}

// ValidateSchedule checks a schedule definition for use with WithValidation.
func ValidateSchedule(s *ScheduleDefinition) (*ScheduleDefinition, error) {
	if s.name == "" {
		return nil, fmt.Errorf("%w: schedule has no name", ErrInvalidDefinition)
	}
	if s.cron == "" {
		return nil, fmt.Errorf("%w: schedule %q has no cron expression", ErrInvalidDefinition, s.name)
	}
	if s.job == "" {
		return nil, fmt.Errorf("%w: schedule %q has no target job", ErrInvalidDefinition, s.name)
	}
	return s, nil
}

// ValidateSensor checks a sensor definition for use with WithValidation.
func ValidateSensor(s *SensorDefinition) (*SensorDefinition, error) {
	if s.name == "" {
		return nil, fmt.Errorf("%w: sensor has no name", ErrInvalidDefinition)
	}
	if s.interval <= 0 {
		return nil, fmt.Errorf("%w: sensor %q interval must be positive", ErrInvalidDefinition, s.name)
	}
	if s.job == "" {
		return nil, fmt.Errorf("%w: sensor %q has no target job", ErrInvalidDefinition, s.name)
	}
	return s, nil
}
