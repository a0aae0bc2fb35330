// Package listing renders the patch names of a K4 bank dump.
//
// Four formats are supported: a plain "A-1: NAME" list, a 16-row grid
// with one column per bank, an HTML table and JSON.
package listing
