// Package detector decides deadlock presence.  It extracts cycles from
// derived graphs via depth-first traversal with recursion-stack markers and
// suppresses cycles that external releases could still break.  The package
// also provides the banker's safety analysis used to cross-check resolution
// outcomes.
package detector
