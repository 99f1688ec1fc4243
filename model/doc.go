// Package model is a schema-driven type system for JSON documents.
//
// Generate walks the definitions of a JSON Schema document once and
// synthesizes one Type per concrete object, array or string definition,
// registering it under "#/definitions/<name>". Instances (Object, Array,
// String) wrap decoded values. Nested values governed by a reference to a
// generated type are wrapped on first read and cached in their slot, so a
// document can be navigated by key or by attribute name without decoding it
// into static structs.
//
// Validate checks any instance against the fragment of its own type. The
// full schema document backs every validator, so references inside a
// fragment resolve even when a sub-node is validated on its own.
//
// A System is read-only once Generate returns and may be shared between
// goroutines. Instances are not synchronized.
package model
