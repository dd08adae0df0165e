package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// stdinPrompter resolves ambiguous contact lookups by asking on stdin.
type stdinPrompter struct{}

func (stdinPrompter) SelectKey(candidates []string) (int, bool) {
	fmt.Println("Multiple matches found:")
	for i, key := range candidates {
		fmt.Printf("%d. %s\n", i+1, titleCase(key))
	}
	fmt.Print("Select number >>> ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(candidates) {
		return 0, false
	}
	return n - 1, true
}
