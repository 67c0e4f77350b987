package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/randalmurphal/defkit/pkg/defkit"
)

// Kind names used for the built-in definition kinds.
const (
	KindJob      = "job"
	KindSchedule = "schedule"
	KindSensor   = "sensor"
)

// Discovery returns a deferred bulk source reading every record of a kind
// from the store and decoding each payload with decode. The result is
// suitable for defkit.WithDiscovery: the store is queried on the first
// index access that needs the full namespace, and errors from the query
// or the decoder surface to that caller.
func Discovery[T defkit.Definition](s *Store, kind string, decode func(name string, data []byte) (T, error)) func() ([]T, error) {
	return func() ([]T, error) {
		records, err := s.List(kind)
		if err != nil {
			return nil, err
		}
		defs := make([]T, 0, len(records))
		for _, rec := range records {
			def, err := decode(rec.Name, rec.Data)
			if err != nil {
				return nil, fmt.Errorf("decode %s %q: %w", kind, rec.Name, err)
			}
			defs = append(defs, def)
		}
		return defs, nil
	}
}

// jobPayload is the stored JSON form of a job definition.
type jobPayload struct {
	Description string            `json:"description,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Ops         []string          `json:"ops,omitempty"`
}

// schedulePayload is the stored JSON form of a schedule definition.
type schedulePayload struct {
	Cron string `json:"cron"`
	Job  string `json:"job"`
}

// sensorPayload is the stored JSON form of a sensor definition.
// Interval is a Go duration string.
type sensorPayload struct {
	Interval string `json:"interval"`
	Job      string `json:"job"`
}

// SaveJob writes a job definition's record to the store.
func SaveJob(s *Store, def *defkit.JobDefinition) error {
	data, err := json.Marshal(jobPayload{
		Description: def.Description(),
		Tags:        def.Tags(),
		Ops:         def.Ops(),
	})
	if err != nil {
		return fmt.Errorf("encode job %q: %w", def.Name(), err)
	}
	return s.Put(KindJob, def.Name(), data)
}

// SaveSchedule writes a schedule definition's record to the store.
func SaveSchedule(s *Store, def *defkit.ScheduleDefinition) error {
	data, err := json.Marshal(schedulePayload{
		Cron: def.Cron(),
		Job:  def.Job(),
	})
	if err != nil {
		return fmt.Errorf("encode schedule %q: %w", def.Name(), err)
	}
	return s.Put(KindSchedule, def.Name(), data)
}

// SaveSensor writes a sensor definition's record to the store.
func SaveSensor(s *Store, def *defkit.SensorDefinition) error {
	data, err := json.Marshal(sensorPayload{
		Interval: def.Interval().String(),
		Job:      def.Job(),
	})
	if err != nil {
		return fmt.Errorf("encode sensor %q: %w", def.Name(), err)
	}
	return s.Put(KindSensor, def.Name(), data)
}

// JobDiscovery returns a deferred bulk source of the store's jobs.
func JobDiscovery(s *Store) func() ([]*defkit.JobDefinition, error) {
	return Discovery(s, KindJob, func(name string, data []byte) (*defkit.JobDefinition, error) {
		var p jobPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		var opts []defkit.JobOption
		if p.Description != "" {
			opts = append(opts, defkit.WithDescription(p.Description))
		}
		if len(p.Tags) > 0 {
			opts = append(opts, defkit.WithTags(p.Tags))
		}
		if len(p.Ops) > 0 {
			opts = append(opts, defkit.WithOps(p.Ops...))
		}
		return defkit.NewJob(name, opts...), nil
	})
}

// ScheduleDiscovery returns a deferred bulk source of the store's schedules.
func ScheduleDiscovery(s *Store) func() ([]*defkit.ScheduleDefinition, error) {
	return Discovery(s, KindSchedule, func(name string, data []byte) (*defkit.ScheduleDefinition, error) {
		var p schedulePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return defkit.NewSchedule(name, p.Cron, p.Job), nil
	})
}

// SensorDiscovery returns a deferred bulk source of the store's sensors.
func SensorDiscovery(s *Store) func() ([]*defkit.SensorDefinition, error) {
	return Discovery(s, KindSensor, func(name string, data []byte) (*defkit.SensorDefinition, error) {
		var p sensorPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		interval, err := time.ParseDuration(p.Interval)
		if err != nil {
			return nil, fmt.Errorf("parse interval: %w", err)
		}
		return defkit.NewSensor(name, interval, p.Job), nil
	})
}
