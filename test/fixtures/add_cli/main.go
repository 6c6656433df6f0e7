// Command add is a deliberately small example program that adds two integers
// given on the command line. Scarab's tests and docs use it as a known-simple
// project to index, so it should stay tiny and stable.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/scarab-search/scarab/test/fixtures/add_cli/adder"
)

// run implements the program against an arbitrary writer so tests can drive
// it in-process. It returns the process exit code.
func run(out io.Writer, args []string) int {
	if len(args) != 3 {
		fmt.Fprintf(out, "Usage: %s <num1> <num2>\n", args[0])
		return 1
	}
	num1 := atoi(args[1])
	num2 := atoi(args[2])
	result := adder.Add(num1, num2)
	fmt.Fprintf(out, "The sum of %d and %d is %d\n", num1, num2, result)
	return 0
}

// atoi converts leading decimal text to an int the way C's atoi does: skip
// whitespace, take an optional sign and any digits that follow, and silently
// yield 0 for anything else. Trailing garbage is ignored, not an error.
func atoi(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0
	}
	// The only possible error is a range overflow, for which strconv returns
	// the saturated value, same as strtol.
	n, _ := strconv.Atoi(s[start:i])
	return n
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}

func main() {
	os.Exit(run(os.Stdout, os.Args))
}
