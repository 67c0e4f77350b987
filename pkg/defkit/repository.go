package defkit

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/randalmurphal/defkit/pkg/defkit/observability"
)

// repositoryConfig holds configuration for a Repository.
type repositoryConfig struct {
	jobEntries      []Entry[*JobDefinition]
	scheduleEntries []Entry[*ScheduleDefinition]
	sensorEntries   []Entry[*SensorDefinition]

	jobDiscovery      func() ([]*JobDefinition, error)
	scheduleDiscovery func() ([]*ScheduleDefinition, error)
	sensorDiscovery   func() ([]*SensorDefinition, error)

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	tracing observability.SpanManager
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*repositoryConfig)

// WithJob adds a ready job definition to the repository.
func WithJob(def *JobDefinition) RepositoryOption {
	return func(c *repositoryConfig) {
		if def == nil {
			c.jobEntries = append(c.jobEntries, FromAny[*JobDefinition]("", nil))
			return
		}
		c.jobEntries = append(c.jobEntries, Eager(def.Name(), def))
	}
}

// WithJobFactory adds a job under name, constructed on first lookup.
func WithJobFactory(name string, fn func() (*JobDefinition, error)) RepositoryOption {
	return func(c *repositoryConfig) {
		c.jobEntries = append(c.jobEntries, Factory(name, fn))
	}
}

// WithSchedule adds a ready schedule definition to the repository.
func WithSchedule(def *ScheduleDefinition) RepositoryOption {
	return func(c *repositoryConfig) {
		if def == nil {
			c.scheduleEntries = append(c.scheduleEntries, FromAny[*ScheduleDefinition]("", nil))
			return
		}
		c.scheduleEntries = append(c.scheduleEntries, Eager(def.Name(), def))
	}
}

// WithScheduleFactory adds a schedule under name, constructed on first lookup.
func WithScheduleFactory(name string, fn func() (*ScheduleDefinition, error)) RepositoryOption {
	return func(c *repositoryConfig) {
		c.scheduleEntries = append(c.scheduleEntries, Factory(name, fn))
	}
}

// WithSensor adds a ready sensor definition to the repository.
func WithSensor(def *SensorDefinition) RepositoryOption {
	return func(c *repositoryConfig) {
		if def == nil {
			c.sensorEntries = append(c.sensorEntries, FromAny[*SensorDefinition]("", nil))
			return
		}
		c.sensorEntries = append(c.sensorEntries, Eager(def.Name(), def))
	}
}

// WithSensorFactory adds a sensor under name, constructed on first lookup.
func WithSensorFactory(name string, fn func() (*SensorDefinition, error)) RepositoryOption {
	return func(c *repositoryConfig) {
		c.sensorEntries = append(c.sensorEntries, Factory(name, fn))
	}
}

// WithJobDiscovery sets the deferred bulk source for jobs.
func WithJobDiscovery(fn func() ([]*JobDefinition, error)) RepositoryOption {
	return func(c *repositoryConfig) {
		c.jobDiscovery = fn
	}
}

// WithScheduleDiscovery sets the deferred bulk source for schedules.
func WithScheduleDiscovery(fn func() ([]*ScheduleDefinition, error)) RepositoryOption {
	return func(c *repositoryConfig) {
		c.scheduleDiscovery = fn
	}
}

// WithSensorDiscovery sets the deferred bulk source for sensors.
func WithSensorDiscovery(fn func() ([]*SensorDefinition, error)) RepositoryOption {
	return func(c *repositoryConfig) {
		c.sensorDiscovery = fn
	}
}

// WithRepositoryLogger sets the structured logger for all three indexes.
func WithRepositoryLogger(logger *slog.Logger) RepositoryOption {
	return func(c *repositoryConfig) {
		c.logger = logger
	}
}

// WithRepositoryMetrics sets the metrics recorder for all three indexes.
func WithRepositoryMetrics(recorder observability.MetricsRecorder) RepositoryOption {
	return func(c *repositoryConfig) {
		c.metrics = recorder
	}
}

// WithRepositoryTracing sets the span manager for all three indexes.
func WithRepositoryTracing(sm observability.SpanManager) RepositoryOption {
	return func(c *repositoryConfig) {
		c.tracing = sm
	}
}

// Repository bundles one definition index per kind: jobs, schedules, and
// sensors. Schedules and sensors are validated against the job namespace
// on first resolution; a schedule or sensor targeting an unknown job
// fails with an UnknownJobError.
//
// Each repository gets a unique load ID, carried in its log records.
type Repository struct {
	name   string
	loadID string

	jobs      *Index[*JobDefinition]
	schedules *Index[*ScheduleDefinition]
	sensors   *Index[*SensorDefinition]
}

// NewRepository creates a repository from its definition sources.
func NewRepository(name string, opts ...RepositoryOption) (*Repository, error) {
	var cfg repositoryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	loadID := uuid.New().String()
	logger := observability.EnrichLogger(cfg.logger, name, loadID)

	jobs, err := New("job", cfg.jobEntries,
		WithValidation(ValidateJob),
		WithDiscovery(cfg.jobDiscovery),
		WithLogger[*JobDefinition](logger),
		WithMetrics[*JobDefinition](cfg.metrics),
		WithTracing[*JobDefinition](cfg.tracing),
	)
	if err != nil {
		return nil, err
	}

	schedules, err := New("schedule", cfg.scheduleEntries,
		WithValidation(func(s *ScheduleDefinition) (*ScheduleDefinition, error) {
			s, err := ValidateSchedule(s)
			if err != nil {
				return nil, err
			}
			ok, err := jobs.Has(s.Job())
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &UnknownJobError{Kind: "schedule", Name: s.Name(), Job: s.Job()}
			}
			return s, nil
		}),
		WithDiscovery(cfg.scheduleDiscovery),
		WithLogger[*ScheduleDefinition](logger),
		WithMetrics[*ScheduleDefinition](cfg.metrics),
		WithTracing[*ScheduleDefinition](cfg.tracing),
	)
	if err != nil {
		return nil, err
	}

	sensors, err := New("sensor", cfg.sensorEntries,
		WithValidation(func(s *SensorDefinition) (*SensorDefinition, error) {
			s, err := ValidateSensor(s)
			if err != nil {
				return nil, err
			}
			ok, err := jobs.Has(s.Job())
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &UnknownJobError{Kind: "sensor", Name: s.Name(), Job: s.Job()}
			}
			return s, nil
		}),
		WithDiscovery(cfg.sensorDiscovery),
		WithLogger[*SensorDefinition](logger),
		WithMetrics[*SensorDefinition](cfg.metrics),
		WithTracing[*SensorDefinition](cfg.tracing),
	)
	if err != nil {
		return nil, err
	}

	return &Repository{
		name:      name,
		loadID:    loadID,
		jobs:      jobs,
		schedules: schedules,
		sensors:   sensors,
	}, nil
}

// Name returns the repository's name.
func (r *Repository) Name() string { return r.name }

// LoadID returns the unique ID assigned when the repository was built.
func (r *Repository) LoadID() string { return r.loadID }

// GetJob resolves a job by name.
func (r *Repository) GetJob(name string) (*JobDefinition, error) {
	return r.jobs.Get(name)
}

// HasJob reports whether a job exists.
func (r *Repository) HasJob(name string) (bool, error) {
	return r.jobs.Has(name)
}

// JobNames returns every job name, eager names first.
func (r *Repository) JobNames() ([]string, error) {
	return r.jobs.Names()
}

// Jobs returns every job, sorted by name.
func (r *Repository) Jobs() ([]*JobDefinition, error) {
	return r.jobs.All()
}

// GetSchedule resolves a schedule by name.
func (r *Repository) GetSchedule(name string) (*ScheduleDefinition, error) {
	return r.schedules.Get(name)
}

// HasSchedule reports whether a schedule exists.
func (r *Repository) HasSchedule(name string) (bool, error) {
	return r.schedules.Has(name)
}

// ScheduleNames returns every schedule name, eager names first.
func (r *Repository) ScheduleNames() ([]string, error) {
	return r.schedules.Names()
}

// Schedules returns every schedule, sorted by name.
func (r *Repository) Schedules() ([]*ScheduleDefinition, error) {
	return r.schedules.All()
}

// GetSensor resolves a sensor by name.
func (r *Repository) GetSensor(name string) (*SensorDefinition, error) {
	return r.sensors.Get(name)
}

// HasSensor reports whether a sensor exists.
func (r *Repository) HasSensor(name string) (bool, error) {
	return r.sensors.Has(name)
}

// SensorNames returns every sensor name, eager names first.
func (r *Repository) SensorNames() ([]string, error) {
	return r.sensors.Names()
}

// Sensors returns every sensor, sorted by name.
func (r *Repository) Sensors() ([]*SensorDefinition, error) {
	return r.sensors.All()
}
