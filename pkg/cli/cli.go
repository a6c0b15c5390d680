package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"yawm/pkg/commands"
	"yawm/pkg/timeutil"
)

// Options holds the parsed command line flags
type Options struct {
	ConfigPath string
	Verbose    bool

	Add       string
	Date      string
	BlockType string

	ImportFile string
	ExportFile string
	ExportWeek string

	DatabaseCmd string
	Yes         bool
}

// ParseFlags reads the command line into Options
func ParseFlags() Options {
	var o Options
	flag.StringVar(&o.ConfigPath, "config", "", "Path to the config file")
	flag.BoolVar(&o.Verbose, "verbose", false, "Log to stdout as well as the log file")
	flag.StringVar(&o.Add, "add", "", "Quick-add a block: \"HH:MM <minutes> <activity>\"")
	flag.StringVar(&o.Date, "date", "", "Date (YYYY-MM-DD) for -add, defaults to today")
	flag.StringVar(&o.BlockType, "type", "neutral", "Block type for -add")
	flag.StringVar(&o.ImportFile, "import", "", "Import plans from a JSON file")
	flag.StringVar(&o.ExportFile, "export", "", "Export all plans to a JSON file")
	flag.StringVar(&o.ExportWeek, "export-week", "", "Export the week covering -date as a text schedule")
	flag.StringVar(&o.DatabaseCmd, "database", "", "Database maintenance command: purge")
	flag.BoolVar(&o.Yes, "yes", false, "Answer yes to confirmation prompts")
	flag.Parse()

	if o.Date == "" {
		o.Date = timeutil.TodayISO()
	}
	return o
}

// HandleCommands runs any non-interactive command from the flags.
// Returns true when a command ran and the program should exit
// instead of starting the UI.
func HandleCommands(db *sql.DB, opts Options) bool {
	switch {
	case opts.Add != "":
		if err := commands.QuickAdd(db, opts.Add, opts.Date, opts.BlockType); err != nil {
			fmt.Fprintf(os.Stderr, "add failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added block to %s\n", opts.Date)
		return true

	case opts.ExportFile != "":
		if err := commands.ExportPlans(db, opts.ExportFile); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported plans to %s\n", opts.ExportFile)
		return true

	case opts.ExportWeek != "":
		if err := commands.ExportWeek(db, opts.ExportWeek, opts.Date); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported weekly schedule to %s\n", opts.ExportWeek)
		return true

	case opts.ImportFile != "":
		n, err := commands.ImportPlans(db, opts.ImportFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d plan(s) from %s\n", n, opts.ImportFile)
		return true

	case opts.DatabaseCmd != "":
		if opts.DatabaseCmd != "purge" {
			fmt.Fprintf(os.Stderr, "unknown database command %q\n", opts.DatabaseCmd)
			os.Exit(1)
		}
		if err := commands.Purge(db, opts.Yes); err != nil {
			fmt.Fprintf(os.Stderr, "purge failed: %v\n", err)
			os.Exit(1)
		}
		return true
	}
	return false
}
