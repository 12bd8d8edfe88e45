// Package noise provides the coherent value-noise field behind the camo pattern.
//
// All randomness lives in the PermutationTable, built once per pattern run from
// an injected random source. Sampling is pure: the same table and coordinates
// always yield the same value.
package noise
