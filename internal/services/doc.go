// Package services implements the business logic layer: the product store
// and the orchestration of analysis and scoring runs over it. Handlers stay
// thin; everything a run needs (window resolution, peer grouping, benchmark
// lookups, concurrency) lives here.
package services
