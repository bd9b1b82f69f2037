// Package colfmt cuts one line of a coordinate file into typed fields.
//
// Old style PDB files keep every item of an ATOM or HETATM record in fixed
// columns. A Table says which columns hold which item and what type the
// item should become (string, integer, float or single character). Parse
// takes a line and a table, cuts out the requested columns, trims the white
// space and converts.
//
// PQR files look like PDB files, but the numbers are separated by white
// space and have no fixed width, so the PQR table counts tokens rather
// than columns. Counting from the end keeps x, y, z, charge and radius in
// place when the optional chain identifier is missing.
//
// Nothing here keeps state between calls. The same line and table always
// give the same Row or the same error.
package colfmt
