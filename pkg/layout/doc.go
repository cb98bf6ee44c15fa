// Package layout converts logical placements into page-space rectangles.
//
// All physical geometry is expressed in English Metric Units ([EMU]), the
// integer unit shared by office document formats (914400 per inch). Working
// in integer EMU keeps the column arithmetic exact: the canvas interior is
// divided into equal columns once, and every derived left edge and width is
// a sum of those integer quantities.
//
// A [Mapper] is built from a deck's tokens and a target [Canvas]. It maps
// grid placements (column, span, vertical offset, row height) and box
// placements (absolute x, y, w, h in a declared unit) to [Rect] values the
// renderer hands to a document writer.
package layout
