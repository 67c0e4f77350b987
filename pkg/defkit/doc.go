/*
Package defkit provides a lazy, validating, name-indexed catalog of
workflow definitions.

# Overview

defkit is a Go library for resolving definition names (jobs, schedules,
sensors, or any user-defined kind) to fully constructed definitions.
Definitions can be supplied three ways:

  - eagerly, as ready instances,
  - as zero-argument factories, invoked and cached on first lookup,
  - in bulk, by a deferred discovery function whose result names are
    unknown until it runs.

All three sources merge into one namespace. The index detects name
collisions between sources, checks that constructed definitions carry
the name they were registered under, runs an external validation
function on every definition before handing it out, and guarantees that
expensive construction work happens at most once per name regardless of
access pattern or ordering.

# Basic Usage

Create an index for one definition kind and resolve by name:

	ingest := defkit.NewJob("ingest")
	index, err := defkit.New("job", []defkit.Entry[*defkit.JobDefinition]{
	    defkit.Eager("ingest", ingest),
	    defkit.Factory("report", func() (*defkit.JobDefinition, error) {
	        return defkit.NewJob("report"), nil
	    }),
	}, defkit.WithValidation(defkit.ValidateJob))
	if err != nil {
	    log.Fatal(err)
	}

	job, err := index.Get("report") // invokes the factory once
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(job.Name()) // "report"

# Deferred Discovery

A discovery function produces definitions in bulk, at most once per
index, on the first call that needs the full namespace:

	index, err := defkit.New("sensor", nil,
	    defkit.WithValidation(defkit.ValidateSensor),
	    defkit.WithDiscovery(func() ([]*defkit.SensorDefinition, error) {
	        return loadSensorsFromPlugins()
	    }))

	names, err := index.Names() // runs discovery, validates every result

# Repositories

A Repository bundles one index per definition kind and wires
cross-kind validation (schedules and sensors must target a known job):

	repo, err := defkit.NewRepository("etl",
	    defkit.WithJob(defkit.NewJob("ingest")),
	    defkit.WithSchedule(defkit.NewSchedule("nightly", "0 2 * * *", "ingest")),
	)

# Thread Safety

All Index and Repository methods are safe for concurrent use. Factories
and the discovery function run under the index lock, so "at most once"
holds even when the first access races.
*/
package defkit
