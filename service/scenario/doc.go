// Package scenario supplies predefined allocation configurations, including
// deliberately deadlocked ones, replayed against a fresh resource model for
// simulation when no live deadlock exists.  Additional definitions load from
// YAML documents through the abstract file system.
package scenario
