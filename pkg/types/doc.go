// Package types defines the entities, configuration and standard errors shared
// by the theme allocator, the snapshot source and the report writer.
//
// Rows arrive untyped from the conference database. They are grouped into
// Abstract values before allocation, and the allocator returns an Assignment
// that lists every theme of the Catalog in dictionary order.
package types
