package manifest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/defkit/pkg/defkit"
)

func TestJobSpecDefinition(t *testing.T) {
	spec := JobSpec{
		Name:        "ingest",
		Description: "pull raw events",
		Tags:        map[string]string{"team": "data"},
		Ops:         []string{"fetch", "store"},
	}

	def := spec.Definition()
	assert.Equal(t, "ingest", def.Name())
	assert.Equal(t, "pull raw events", def.Description())
	assert.Equal(t, map[string]string{"team": "data"}, def.Tags())
	assert.Equal(t, []string{"fetch", "store"}, def.Ops())
}

func TestScheduleSpecDefinition(t *testing.T) {
	spec := ScheduleSpec{Name: "nightly", Cron: "0 2 * * *", Job: "ingest"}

	def := spec.Definition()
	assert.Equal(t, "nightly", def.Name())
	assert.Equal(t, "0 2 * * *", def.Cron())
	assert.Equal(t, "ingest", def.Job())
}

func TestSensorSpecDefinition(t *testing.T) {
	spec := SensorSpec{Name: "new-files", Interval: "30s", Job: "ingest"}

	def, err := spec.Definition()
	require.NoError(t, err)
	assert.Equal(t, "new-files", def.Name())
	assert.Equal(t, 30*time.Second, def.Interval())
}

func TestSensorSpecBadInterval(t *testing.T) {
	spec := SensorSpec{Name: "new-files", Interval: "not-a-duration", Job: "ingest"}

	_, err := spec.Definition()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sensor "new-files"`)
}

func TestRepositoryFromManifest(t *testing.T) {
	m := Manifest{
		Name: "etl",
		Jobs: []JobSpec{
			{Name: "ingest"},
			{Name: "report"},
		},
		Schedules: []ScheduleSpec{
			{Name: "nightly", Cron: "0 2 * * *", Job: "ingest"},
		},
		Sensors: []SensorSpec{
			{Name: "new-files", Interval: "1m", Job: "report"},
		},
	}

	repo, err := m.Repository()
	require.NoError(t, err)
	assert.Equal(t, "etl", repo.Name())

	names, err := repo.JobNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"ingest", "report"}, names)

	schedule, err := repo.GetSchedule("nightly")
	require.NoError(t, err)
	assert.Equal(t, "ingest", schedule.Job())

	sensor, err := repo.GetSensor("new-files")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, sensor.Interval())
}

func TestRepositoryBadSensorInterval(t *testing.T) {
	m := Manifest{
		Name:    "etl",
		Sensors: []SensorSpec{{Name: "s", Interval: "nope", Job: "j"}},
	}

	_, err := m.Repository()
	require.Error(t, err)
}

func TestRepositoryExtraOptions(t *testing.T) {
	m := Manifest{
		Name: "etl",
		Jobs: []JobSpec{{Name: "ingest"}},
	}

	repo, err := m.Repository(defkit.WithJobDiscovery(func() ([]*defkit.JobDefinition, error) {
		return []*defkit.JobDefinition{defkit.NewJob("report")}, nil
	}))
	require.NoError(t, err)

	names, err := repo.JobNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"ingest", "report"}, names)
}

func TestRepositoryDuplicateJobFails(t *testing.T) {
	m := Manifest{
		Name: "etl",
		Jobs: []JobSpec{{Name: "ingest"}, {Name: "ingest"}},
	}

	_, err := m.Repository()
	require.Error(t, err)
	assert.ErrorIs(t, err, defkit.ErrDuplicateDefinition)
}
