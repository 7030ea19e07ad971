// Package projection maps intervals through a pairwise alignment.
//
// Given an alignment's edit script and a sorted list of blocks on one of its
// two sequences, Project returns for every block the part of it the alignment
// actually covers, the matching interval on the other sequence, and the slice
// of the edit script that realizes the mapping. The script is walked once, in
// the order it is stored; for reverse-strand alignments query coordinates are
// mirrored on the way in and out.
//
// Project is pure: it reads its inputs, allocates its outputs, and may be
// called concurrently for independent alignments.
package projection
