// Package tracing integrates observability back-ends with the gridlock
// engine to provide tracing of detection and resolution passes.  All
// instrumentation is kept in a separate package so that applications which do
// not require tracing can exclude it from their build.
package tracing
