// Package metrics records navigation build metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics stay
// optional without nil checks at call sites. PrometheusRecorder registers its
// collectors on a private registry that can be exported to a node_exporter
// textfile after each build.
package metrics
