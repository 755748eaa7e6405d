// Package utils provides common utility functions shared across features.
// It includes helpers for coercing the loosely-typed JSON values agency APIs
// return (numbers vs quoted strings) into the canonical decimal-as-string
// representation.
package utils
