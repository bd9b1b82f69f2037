// Package atom has the two things we know about an atom in a structure:
// its Type, which is a force field or chemical type shared by many atoms,
// and its Record, which is one atom from one coordinate file.
//
// Both are write once. A Record is made with a name and serial number,
// usually from a line of a PDB or PQR file, and after that every other
// field starts out unset. Each may be set once. Reading a field that was
// never set gives ErrFieldNotSet, setting it a second time gives
// ErrFieldImmutable and leaves the first value alone. Name, serial and
// a Type's label have no setters at all.
//
// Nothing is locked. If two goroutines set the same field of the same
// record, the caller must serialise them; once a record has been filled in
// it may be read from as many goroutines as you like.
//
// # Equality and hashing
//
// Two Types are equal if their labels are equal, whatever else has been
// set, and Type.Hash looks only at the label.
// Two Records are equal if name, serial and type are equal. Record.Hash
// uses name and type but not serial, so records that differ only in
// serial number have the same hash. Equal records always hash the same,
// which is all a hash has to promise.
package atom
