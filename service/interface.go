// Package service manages the lifecycle of long-lived infrastructure:
// the audio device, the telemetry exporter, the terminal
package service

// Service defines the lifecycle interface for infrastructure subsystems
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - configuration from parsed flags/env
//  3. Start() - acquire devices, launch goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	// Return nil or empty slice if no dependencies
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// Func adapts plain functions into a Service
type Func struct {
	ServiceName string
	Requires    []string
	OnInit      func(args ...any) error
	OnStart     func() error
	OnStop      func() error
}

func (f *Func) Name() string           { return f.ServiceName }
func (f *Func) Dependencies() []string { return f.Requires }

func (f *Func) Init(args ...any) error {
	if f.OnInit == nil {
		return nil
	}
	return f.OnInit(args...)
}

func (f *Func) Start() error {
	if f.OnStart == nil {
		return nil
	}
	return f.OnStart()
}

func (f *Func) Stop() error {
	if f.OnStop == nil {
		return nil
	}
	return f.OnStop()
}
