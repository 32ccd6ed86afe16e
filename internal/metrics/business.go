package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("scribe/business")

	// Pipeline metrics
	PipelineRunsTotal   metric.Int64Counter
	PipelineRunDuration metric.Float64Histogram
	StageDuration       metric.Float64Histogram
	StageFailuresTotal  metric.Int64Counter

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram
)

func Init() error {
	var err error

	PipelineRunsTotal, err = meter.Int64Counter(
		"pipeline.runs.total",
		metric.WithDescription("Total number of transcribe-and-notes pipeline runs"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	PipelineRunDuration, err = meter.Float64Histogram(
		"pipeline.run.duration",
		metric.WithDescription("End-to-end duration of a pipeline run"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return err
	}

	StageDuration, err = meter.Float64Histogram(
		"pipeline.stage.duration",
		metric.WithDescription("Duration of one pipeline stage (transcription or notes)"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60, 120),
	)
	if err != nil {
		return err
	}

	StageFailuresTotal, err = meter.Int64Counter(
		"pipeline.stage.failures.total",
		metric.WithDescription("Total number of pipeline stages that produced no result"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external provider API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external provider API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	return nil
}
