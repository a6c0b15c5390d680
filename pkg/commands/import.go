package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"yawm/pkg/database"
	"yawm/pkg/utils"
)

// ImportPlans loads a JSON export into the database. Imported plans
// get fresh ids so an import never collides with existing plans.
// Returns the number of plans imported.
func ImportPlans(db *sql.DB, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var in exportFile
	if err := json.Unmarshal(data, &in); err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, dump := range in.Plans {
		p := dump.Plan
		p.ID = uuid.New().String()
		if err := database.AddPlan(db, p); err != nil {
			return 0, err
		}
		for dayKey, blocks := range dump.Days {
			if len(blocks) == 0 {
				continue
			}
			for i := range blocks {
				if blocks[i].ID == "" {
					blocks[i].ID = uuid.New().String()
				}
			}
			if err := database.ReplaceDayBlocks(db, p.ID, dayKey, blocks); err != nil {
				return 0, err
			}
		}
	}

	for name, color := range in.CustomTypes {
		if err := database.AddCustomType(db, name, color); err != nil {
			return 0, err
		}
	}

	utils.Log("Imported %d plan(s) from %s", len(in.Plans), path)
	return len(in.Plans), nil
}
