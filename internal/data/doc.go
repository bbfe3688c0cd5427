/*
Package data holds the building blocks of the generic data-binding model.

Subpackages:
  - arraymap: insertion-ordered key/value store backed by one flat buffer
  - catalog: per-type field tables mapping wire names to accessors
  - coerce: string to typed value conversion for declared fields
  - record: declared fields plus an overflow store, exposed as one mapping

The URL and header models in providers/http build on these packages.
*/
package data
