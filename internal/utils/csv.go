package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/facette/natsort"
)

type CSV [][]string

func (data CSV) Less(i, j int) bool {
	return natsort.Compare(data[i][0], data[j][0])
}

func (data CSV) Len() int {
	return len(data)
}
func (data CSV) Swap(i, j int) {
	data[i], data[j] = data[j], data[i]
}

// WriteAsCSV writes rows under path/filename with a header line, rows
// naturally sorted on their first column.
func WriteAsCSV(data CSV, path, filename string, columns []string) error {
	if path != "" {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
	}
	f, err := os.Create(filepath.Join(path, filename))
	if err != nil {
		return fmt.Errorf("unable to open output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	sort.Sort(data)
	if err := w.WriteAll(data); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
