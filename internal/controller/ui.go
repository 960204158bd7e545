// Package controller provides output adapters for displaying prep progress
// and triage results.
package controller

import (
	m "github.com/mouse-blink/stakeout/internal/model"
)

// Stage identifies a step of the prep pipeline for progress display.
type Stage int

// Pipeline stages, in execution order.
const (
	StageNeutralize Stage = iota
	StageInject
	StagePreflight
	StageFallback
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageNeutralize:
		return "neutralize"
	case StageInject:
		return "inject"
	case StagePreflight:
		return "preflight"
	case StageFallback:
		return "fallback"
	case StageDone:
		return "done"
	}

	return "unknown"
}

// UI defines the interface for displaying prep progress and triage output.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start() error
	Close()
	DisplayStage(stage Stage, detail string)
	DisplayPrepOutcome(mode m.InjectionMode, requests []m.BreakpointRequest, reason string)
	DisplayFrames(frames []m.TraceFrame, classes []m.FrameClass) error
}
