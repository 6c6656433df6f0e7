// Package adder supplies the add operation for the example program, standing
// in for the header dependency the original C fixture had.
package adder

// Add returns the sum of a and b.
func Add(a, b int) int {
	return a + b
}
