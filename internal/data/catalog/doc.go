/*
Package catalog maps external (wire) names to the declared fields of a record
type.

A catalog is an explicit accessor table: each Field carries its wire name,
declared type and a getter/setter pair. Tables come from one of two sources:

  - a Schema registered with Register, written by hand next to the type
  - struct tags of the form `key:"Name"`, read once through reflection for
    types without a registered schema

Catalogs are built at most once per (type, mode) pair and shared across
goroutines. Name collisions, exact or under case folding for IgnoreCase
catalogs, are configuration errors reported when the schema is registered.

Enumerations have their own table of enumerants and wire names; see Enum.

Example Usage:

	type Query struct {
	    record.Record
	    Terms []string `key:"q"`
	    Sort  string   `key:"sort"`
	}

	cat, err := catalog.Of(reflect.TypeFor[Query](), catalog.CaseSensitive)
	field, ok := cat.Field("q")
*/
package catalog
