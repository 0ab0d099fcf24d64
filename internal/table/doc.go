// Package table edits Markdown pipe tables and writes them back into their
// documents.
//
// Serialize renders a header and body rows as a pipe table. Patch replaces
// a table in a document given its source text and its ordinal among
// identical tables. Model holds the cells of one table and implements the
// structural edits; a table never shrinks below one row and one column.
//
// A Synchronizer binds open table models to stable handles so repeated
// edits keep reaching the right table even when several tables share the
// same source text.
package table
