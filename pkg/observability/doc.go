/*
Package observability exposes Prometheus metrics for the keyboard: dwell
sessions started and cancelled, activations by source, and prediction
lookups. Metrics plug into the dwell engine through lifecycle hooks.
*/
package observability
