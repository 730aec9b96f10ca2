// SPDX-License-Identifier: MIT

// Package report turns simulation output into something a person can read.
//
// Decode maps a ket back to the dominant level of every space it spans. The
// decoder picks the basis index with the largest |amplitude|; ties go to the
// smallest flat index, so decoding the basis ket of a decoded state returns
// the same Levels.
//
// ClassifyTrajectory sorts a state's probability history into one of three
// categories using a single threshold:
//
//	Final         last sample > threshold
//	Initial       first sample > threshold (and not Final)
//	Intermediate  everything else
//
// A Report bundles one run: labels, sample times, the probability matrix
// (rows = states, columns = samples) and the classification. Reports are
// written as JSON, MessagePack or CSV; the first two can be read back.
package report
