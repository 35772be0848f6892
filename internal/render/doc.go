// Package render rasterizes composed pages.
//
// Polygons are filled with golang.org/x/image/vector using a plain linear fit
// of the area bounds into each cell; there is no map projection. Text uses the
// Go fonts. Output is TIFF for exports and PNG for previews.
package render
