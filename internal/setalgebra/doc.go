// Package setalgebra compares several lists of tokens at once.
//
// CompareAll reports, for every list, the values that appear in no other list,
// plus a synthetic "common" entry holding the values present in every list.
// CompareSubset computes the intersection or union over a caller-chosen
// selection of lists, in selection order.
//
// Membership tests are hash based, so work is linear in the total number of
// tokens while preserving first-occurrence ordering from the input lists.
package setalgebra
