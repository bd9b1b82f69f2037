// 18 Oct 2026

/*
Kymia reads atoms from PDB and PQR coordinate files. Every ATOM and HETATM
line becomes an atom record whose fields can be set once and never
changed. Files may be gzipped.

Usage:

	kymia [global flags] command [flags] args

The commands are:

	read file [file...]
		Read files and print the format, the number of atoms and the
		number of lines that had to be skipped. With --types, atom types
		are assigned from a YAML table. --list prints every atom and
		--coords prints the coordinates.
	attype directory
		Read every file under a directory with a few goroutines and
		write a csv file of atom names and how often they were seen.
	fetch code
		Download a structure from RCSB, PDBe or PDBj (--site).

The global flags are:

	--config file
		YAML settings, instead of ./kymia.yaml or ~/.config/kymia/kymia.yaml
	--log dest
		"", stdout, stderr or a file name to append to
	--loglevel level
		debug, info, warn or error

Every setting can also come from the environment, so
KYMIA_READ_STRICT=true is the same as read --strict.
*/
package main
