package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"yawm/pkg/database"
	"yawm/pkg/timeutil"
	"yawm/pkg/utils"
)

// planDump is the on-disk shape of an exported plan: the plan row plus
// its seven weekday block lists.
type planDump struct {
	Plan database.Plan               `json:"plan"`
	Days map[string][]database.Block `json:"days"`
}

type exportFile struct {
	Plans       []planDump        `json:"plans"`
	CustomTypes map[string]string `json:"custom_types,omitempty"`
}

// ExportPlans writes every plan, its routine days and the custom type
// registry to a JSON file.
func ExportPlans(db *sql.DB, path string) error {
	plans, err := database.LoadPlans(db)
	if err != nil {
		return err
	}

	out := exportFile{}
	for _, p := range plans {
		dump := planDump{Plan: p, Days: map[string][]database.Block{}}
		for _, dayKey := range timeutil.DayKeys {
			blocks, err := database.LoadDayBlocks(db, p.ID, dayKey)
			if err != nil {
				return err
			}
			dump.Days[dayKey] = blocks
		}
		out.Plans = append(out.Plans, dump)
	}

	out.CustomTypes, err = database.LoadCustomTypes(db)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	utils.Log("Exported %d plan(s) to %s", len(out.Plans), path)
	return nil
}

// ExportWeek writes a readable weekly schedule of the plan covering
// the given date to a text file.
func ExportWeek(db *sql.DB, path, dateISO string) error {
	plan, err := database.PlanCovering(db, dateISO)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("no plan covers %s", dateISO)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s to %s)\n\n", plan.Label, plan.StartDate, plan.EndDate)
	for _, dayKey := range timeutil.DayKeys {
		blocks, err := database.LoadDayBlocks(db, plan.ID, dayKey)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "%s\n", timeutil.DayLabels[dayKey])
		if len(blocks) == 0 {
			b.WriteString("  (free)\n\n")
			continue
		}
		sort.SliceStable(blocks, func(x, y int) bool {
			return timeutil.TimeToMinutes(blocks[x].Time) < timeutil.TimeToMinutes(blocks[y].Time)
		})
		for _, blk := range blocks {
			startMin := timeutil.TimeToMinutes(blk.Time)
			end := timeutil.MinutesToTime(float64(startMin + blk.Duration))
			fmt.Fprintf(&b, "  %s - %s  %s\n", blk.Time, end, blk.Activity)
			for _, t := range blk.Tasks {
				box := "[ ]"
				if t.Done {
					box = "[x]"
				}
				fmt.Fprintf(&b, "             %s %s\n", box, t.Text)
			}
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return err
	}
	utils.Log("Exported weekly schedule of %s to %s", plan.Label, path)
	return nil
}
