package domain

// PipelineState is a step of the verification pipeline.
type PipelineState string

const (
	StateIdle        PipelineState = "idle"
	StateChecking    PipelineState = "checking"
	StateCacheHit    PipelineState = "cache_hit"
	StateAcquiring   PipelineState = "acquiring"
	StateClassifying PipelineState = "classifying"
	StatePersisting  PipelineState = "persisting"
	StateReady       PipelineState = "ready"
	StateFailed      PipelineState = "failed"
)
