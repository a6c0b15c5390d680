package database

import (
	"database/sql"
	"encoding/json"

	"yawm/pkg/timeutil"
	"yawm/pkg/utils"
)

// LoadPlans retrieves all plans ordered by start date
func LoadPlans(db *sql.DB) ([]Plan, error) {
	rows, err := db.Query(`
		SELECT id, label, color, startdate, enddate, created, lastmodified
		FROM plans
		ORDER BY startdate ASC, created ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(
			&p.ID,
			&p.Label,
			&p.Color,
			&p.StartDate,
			&p.EndDate,
			&p.Created,
			&p.LastModified,
		); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	utils.Log("Loaded %d plans from database", len(plans))

	return plans, rows.Err()
}

// PlanCovering returns the first plan whose date range includes the
// given ISO date, or nil if no plan covers it
func PlanCovering(db *sql.DB, dateISO string) (*Plan, error) {
	plans, err := LoadPlans(db)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if timeutil.DateInRange(dateISO, plans[i].StartDate, plans[i].EndDate) {
			return &plans[i], nil
		}
	}
	return nil, nil
}

// AddPlan inserts a new plan and its seven empty routine days
func AddPlan(db *sql.DB, plan Plan) error {
	_, err := db.Exec(
		`INSERT INTO plans (id, label, color, startdate, enddate, created, lastmodified)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		plan.ID, plan.Label, plan.Color, plan.StartDate, plan.EndDate,
	)
	if err != nil {
		return err
	}
	for _, dayKey := range timeutil.DayKeys {
		if _, err := db.Exec(
			`INSERT OR IGNORE INTO routine_days (plan_id, day_key, blocks) VALUES (?, ?, '[]')`,
			plan.ID, dayKey,
		); err != nil {
			return err
		}
	}
	utils.Log("Added plan: %s (%s - %s)", plan.Label, plan.StartDate, plan.EndDate)
	return nil
}

// UpdatePlan updates an existing plan's label, color and date range
func UpdatePlan(db *sql.DB, plan Plan) error {
	_, err := db.Exec(
		`UPDATE plans SET label = ?, color = ?, startdate = ?, enddate = ?, lastmodified = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		plan.Label, plan.Color, plan.StartDate, plan.EndDate, plan.ID,
	)
	utils.Log("Updated plan: %s", plan.ID)
	return err
}

// DeletePlan removes a plan and all of its routine days
func DeletePlan(db *sql.DB, id string) error {
	if _, err := db.Exec("DELETE FROM routine_days WHERE plan_id = ?", id); err != nil {
		return err
	}
	_, err := db.Exec("DELETE FROM plans WHERE id = ?", id)
	return err
}

// LoadDayBlocks returns the block list for one weekday of a plan.
// A missing row yields an empty list.
func LoadDayBlocks(db *sql.DB, planID, dayKey string) ([]Block, error) {
	var raw string
	err := db.QueryRow(
		"SELECT blocks FROM routine_days WHERE plan_id = ? AND day_key = ?",
		planID, dayKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return []Block{}, nil
	}
	if err != nil {
		return nil, err
	}

	var blocks []Block
	if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []Block{}
	}
	return blocks, nil
}

// ReplaceDayBlocks stores the complete replacement block list for one
// weekday of a plan. Blocks are never mutated row-by-row: callers read
// the current list, compute a new one and hand the whole thing back.
func ReplaceDayBlocks(db *sql.DB, planID, dayKey string, blocks []Block) error {
	if blocks == nil {
		blocks = []Block{}
	}
	raw, err := json.Marshal(blocks)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO routine_days (plan_id, day_key, blocks) VALUES (?, ?, ?)
		 ON CONFLICT(plan_id, day_key) DO UPDATE SET blocks = excluded.blocks`,
		planID, dayKey, string(raw),
	)
	utils.Log("Replaced %d blocks for %s/%s", len(blocks), planID, dayKey)
	return err
}

// LoadCustomTypes returns the user-defined type color registry
func LoadCustomTypes(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query("SELECT typekey, color FROM custom_types")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make(map[string]string)
	for rows.Next() {
		var ct CustomType
		if err := rows.Scan(&ct.Key, &ct.Color); err != nil {
			return nil, err
		}
		types[ct.Key] = ct.Color
	}
	return types, rows.Err()
}

// AddCustomType registers or recolors a user-defined block type
func AddCustomType(db *sql.DB, key, color string) error {
	_, err := db.Exec(
		`INSERT INTO custom_types (typekey, color) VALUES (?, ?)
		 ON CONFLICT(typekey) DO UPDATE SET color = excluded.color`,
		key, color,
	)
	return err
}

// RemoveCustomType deletes a user-defined block type
func RemoveCustomType(db *sql.DB, key string) error {
	_, err := db.Exec("DELETE FROM custom_types WHERE typekey = ?", key)
	return err
}
