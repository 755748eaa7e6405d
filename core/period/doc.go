// Package period normalizes heterogeneous period strings from the
// statistical agencies into one canonical {isoDate, label} pair.
//
// The function is pure and deterministic: quarterly "YYYY-Qn" maps to the
// first calendar month of the quarter, monthly "YYYY-MM" to the first of the
// month, annual "YYYY" to January 1st. Unrecognized formats pass through
// unchanged rather than erroring, because some providers carry ad-hoc period
// labels that downstream consumers still want to see.
package period
