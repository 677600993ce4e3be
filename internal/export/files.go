package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmaerten/github-stats/internal/models"
	"github.com/vmaerten/github-stats/pkg/logger"
)

// WriteReports writes every report format into the output directory,
// creating it if needed. File names embed nothing variable; each run
// overwrites the previous one.
func WriteReports(dir string, result *models.RepositoryStatistics) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	if err := writeFile(filepath.Join(dir, "summary.csv"), func(f *os.File) error {
		return WriteCSV(f, result)
	}); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, "details.csv"), func(f *os.File) error {
		return WriteDetailCSV(f, result)
	}); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, "report.md"), func(f *os.File) error {
		return WriteMarkdown(f, result)
	}); err != nil {
		return err
	}

	workbook, err := BuildWorkbook(result)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer workbook.Close()
	if err := workbook.SaveAs(filepath.Join(dir, "report.xlsx")); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	logger.Infof("Reports written to %s", dir)
	return nil
}

// WriteCommentReport writes the comment-extraction report.
func WriteCommentReport(dir string, report *models.UserCommentReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("comments-%s.md", report.User))
	if err := writeFile(path, func(f *os.File) error {
		return WriteCommentsMarkdown(f, report)
	}); err != nil {
		return err
	}

	logger.Infof("Comment report written to %s", path)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
