package k4

import (
	"fmt"
	"sort"
)

const (
	// WaveCount is the number of PCM waves in the K4 (numbered 1-256)
	WaveCount = 256

	// UnnamedWave is shown for waves the table has no name for
	UnnamedWave = "*unknown*"
)

// WaveTable maps wave numbers to display names. The names come from the
// user's configuration; an empty table is valid.
type WaveTable struct {
	names map[int]string
}

// NewWaveTable builds a table, rejecting numbers outside 1-256.
func NewWaveTable(names map[int]string) (*WaveTable, error) {
	t := &WaveTable{names: make(map[int]string, len(names))}
	for n, name := range names {
		if err := checkWaveNumber(n); err != nil {
			return nil, err
		}
		t.names[n] = name
	}
	return t, nil
}

func checkWaveNumber(n int) error {
	if n < 1 || n > WaveCount {
		return fmt.Errorf("bad wave number: %d (must be 1...%d)", n, WaveCount)
	}
	return nil
}

// Name returns the name of wave n, or UnnamedWave.
func (t *WaveTable) Name(n int) (string, error) {
	if err := checkWaveNumber(n); err != nil {
		return "", err
	}
	if name, ok := t.names[n]; ok {
		return name, nil
	}
	return UnnamedWave, nil
}

// Named returns the numbers that have a name, in ascending order.
func (t *WaveTable) Named() []int {
	numbers := make([]int, 0, len(t.names))
	for n := range t.names {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}
