/*
Package manifest loads repository definitions from YAML or JSON files.

# Overview

A manifest declares a repository's jobs, schedules, and sensors by name.
Loading a manifest and building it produces a defkit.Repository whose
eager namespace matches the manifest, in declaration order.

# Basic Usage

Load a manifest file and build the repository:

	m, err := manifest.Load("etl.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	repo, err := m.Repository()
	if err != nil {
	    log.Fatal(err)
	}

	job, err := repo.GetJob("ingest")

# Manifest Format

YAML and JSON are supported; the format is picked by file extension
(.yaml, .yml, .json):

	repository: etl
	jobs:
	  - name: ingest
	    description: Pull raw events
	    ops: [fetch, normalize, store]
	  - name: report
	    tags:
	      team: analytics
	schedules:
	  - name: nightly
	    cron: "0 2 * * *"
	    job: ingest
	sensors:
	  - name: new-files
	    interval: 30s
	    job: ingest

Sensor intervals are strings parsed with time.ParseDuration.
*/
package manifest
