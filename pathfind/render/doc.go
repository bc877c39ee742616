// Package render draws grids with search-result overlays, as ASCII text for
// terminals and as PNG images for export.
package render
