// Package telemetry provides OpenTelemetry initialization and helpers for
// distributed tracing across the Scribe backend.
//
// The package configures OTLP HTTP export for traces and logs, with support
// for local collectors and hosted backends.
package telemetry
