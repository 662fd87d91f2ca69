// Package migrations holds the gymcore schema history. Each file registers
// its migrations from init(); cmd/gymcore imports the package for that side
// effect.
package migrations
