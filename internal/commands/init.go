package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a sample config",
	Long:  `Creates a sample .budget.yaml config file in the current directory.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".budget.yaml"

	wrote, err := writeIfNotExists(configPath, sampleConfig, initFlags.force)
	if err != nil {
		return err
	}

	if wrote {
		fmt.Printf("Created %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Set root: in .budget.yaml, or export " + financesEnv + "=/path/to/finances")
		fmt.Println("  2. Add one file per expense, e.g. food/coffee.txt with 'name: Coffee' and 'cost: 4.50'")
		fmt.Println("  3. Run: budget  OR  budget food --verbose")
	}
	return nil
}

func writeIfNotExists(path, content string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

const sampleConfig = `# budget configuration

# Finances directory (or set FINANCES, or pass --dir)
# root: ~/finances

# File name globs treated as budget records
patterns:
  - "*.txt"
  - "*.md"

# Where tags come from: path (directory names), inline (@tag in the file), or both
tag_source: path

# How positional tags combine: all or any
match: all

# Records with this tag are hidden unless --archive is given
archive_tag: archive

# Output format: text or json
format: text

# Files parsed in parallel
workers: 1

# Report unparsable files as warnings instead of failing
keep_going: false

# Paths relative to root that are never scanned
# exclude:
#   paths:
#     - templates
`
