package commands

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"yawm/pkg/utils"
)

// Purge deletes every plan, routine day and custom type. Asks for
// confirmation on stdin unless yes is set.
func Purge(db *sql.DB, yes bool) error {
	if !yes {
		fmt.Print("This deletes ALL plans and blocks. Type 'yes' to continue: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	for _, table := range []string{"routine_days", "plans", "custom_types"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("purging %s: %w", table, err)
		}
	}
	utils.Log("Purged all tables")
	fmt.Println("Database purged.")
	return nil
}
