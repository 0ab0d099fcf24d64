// Package markdown splits a Markdown document into table and non-table
// segments.
//
// Tables are located with goldmark's GFM table extension. Every table
// becomes a TableSegment carrying its exact source text, its cells as plain
// text and its column alignments. The text between tables is passed through
// verbatim as OtherSegments, so the segments of a document cover it
// completely apart from whitespace-only gaps.
//
// Parsing never fails: anything that is not a pipe table is other text.
package markdown
