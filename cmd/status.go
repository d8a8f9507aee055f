package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"uplog/internal/inspect"
	"uplog/internal/ui"
)

var flagStatusCount int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent log entries and repository state",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&flagStatusCount, "count", "n", 5, "number of entries and commits to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}

	insp, err := inspect.Open(cfg.RepoDir)
	if err != nil {
		return err
	}

	branch, err := insp.Branch()
	if err != nil {
		branch = "(no commits yet)"
	}
	fmt.Printf("Branch: %s\n", color.CyanString(branch))

	remotes, err := insp.Remotes()
	if err != nil {
		return err
	}
	if len(remotes) == 0 {
		fmt.Println(color.YellowString("No remotes configured; run 'uplog init'"))
	}
	for _, r := range remotes {
		fmt.Printf("Remote: %s -> %s\n", color.CyanString(r.Name), r.URL)
	}

	fmt.Println()
	fmt.Println(color.New(color.Bold).Sprint("Recent commits"))
	commits, err := insp.RecentCommits(flagStatusCount)
	if err == nil && len(commits) > 0 {
		table := ui.NewTable(os.Stdout, []string{"Hash", "Message", "When"})
		for _, c := range commits {
			table.Append([]string{c.ShortHash, c.Message, ui.FormatRelativeTime(c.When)})
		}
		table.Render()
	} else {
		fmt.Println("  (none)")
	}

	fmt.Println()
	fmt.Println(color.New(color.Bold).Sprint("Recent log entries"))
	logPath := filepath.Join(cfg.RepoDir, cfg.LogFile)
	for _, line := range tailLines(logPath, flagStatusCount) {
		fmt.Printf("  %s\n", line)
	}

	return nil
}

// tailLines returns up to n final lines of the log file; a missing file
// yields a single explanatory line rather than an error.
func tailLines(path string, n int) []string {
	data, err := os.ReadFile(path) // #nosec G304 - configured log path
	if err != nil {
		return []string{"(no log file yet)"}
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
