package metrics

import "time"

// BuildOutcomeLabel is the final status of a build.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess BuildOutcomeLabel = "success"
	BuildOutcomeFailed  BuildOutcomeLabel = "failed"
)

// Build stages observed with ObserveStageDuration.
const (
	StageSource   = "source"
	StageScan     = "scan"
	StageAssemble = "assemble"
	StageWrite    = "write"
)

// Recorder defines observability hooks for navigation builds.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetCategoryPages(category string, n int)
	SetLocaleNodes(locale string, pages, sections int)
	IncTitleFallback(category string)
	IncRebuildTrigger(trigger string)
	SetLastBuild(t time.Time)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) SetCategoryPages(string, int)               {}
func (NoopRecorder) SetLocaleNodes(string, int, int)            {}
func (NoopRecorder) IncTitleFallback(string)                    {}
func (NoopRecorder) IncRebuildTrigger(string)                   {}
func (NoopRecorder) SetLastBuild(time.Time)                     {}
