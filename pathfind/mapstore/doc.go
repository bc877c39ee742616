// Package mapstore loads grid maps from text files and caches them.
//
// Map files are plain text, one row per line: 'O' is an obstacle, 'S' the
// start, 'G' the goal, 'R'/'M'/'W' terrain cells, and anything else a free
// cell. Blank lines are skipped; all remaining lines must have equal length.
package mapstore
