package commands

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"yawm/pkg/database"
	"yawm/pkg/timeutil"
	"yawm/pkg/utils"
)

// QuickAdd appends a block to the plan day covering the given date.
// The entry format is "HH:MM <minutes> <activity...>", for example
// "09:00 90 Deep work".
func QuickAdd(db *sql.DB, entry, dateISO, blockType string) error {
	parts := strings.Fields(entry)
	if len(parts) < 3 {
		return fmt.Errorf("expected \"HH:MM <minutes> <activity>\", got %q", entry)
	}
	start := parts[0]
	if !strings.Contains(start, ":") {
		return fmt.Errorf("bad start time %q", start)
	}
	duration, err := strconv.Atoi(parts[1])
	if err != nil || duration < 15 {
		return fmt.Errorf("bad duration %q, need minutes >= 15", parts[1])
	}
	activity := strings.Join(parts[2:], " ")

	plan, err := database.PlanCovering(db, dateISO)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("no plan covers %s", dateISO)
	}

	dayKey := timeutil.DayKey(timeutil.ParseISO(dateISO))
	blocks, err := database.LoadDayBlocks(db, plan.ID, dayKey)
	if err != nil {
		return err
	}
	blocks = append(blocks, database.Block{
		ID:       uuid.New().String(),
		Time:     start,
		Duration: duration,
		Activity: activity,
		Type:     blockType,
	})
	if err := database.ReplaceDayBlocks(db, plan.ID, dayKey, blocks); err != nil {
		return err
	}
	utils.Log("Quick-added %q to plan %s on %s", activity, plan.Label, dateISO)
	return nil
}
