// Package concert defines the canonical concert schema and the pure
// normalization rules that map venue-native raw records into it.
//
// Normalization is total: it never fails, and unrecognized date, time or
// status values pass through (or default) rather than aborting a record.
// Validation is a separate, explicit step so callers decide what to do
// with incomplete records.
package concert
