package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteDataset serializes the dataset into accounts.txt and activities.txt
// under the provided directory.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	accountsPath := filepath.Join(dir, "accounts.txt")
	if err := writeLines(accountsPath, dataset.Accounts); err != nil {
		return err
	}

	activitiesPath := filepath.Join(dir, "activities.txt")
	if err := writeLines(activitiesPath, dataset.Activities); err != nil {
		return err
	}

	return nil
}

func writeLines(path string, lines []string) error {
	body := strings.Join(lines, "\n")
	if body != "" {
		body += "\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
