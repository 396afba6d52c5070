package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/vijay-prabhu/empscore/internal/model"
)

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// column is a selected source column, optionally renamed
type column struct {
	name string
	as   string
}

func cols(names ...string) []column {
	out := make([]column, len(names))
	for i, n := range names {
		out[i] = column{name: n}
	}
	return out
}

func (c column) String() string {
	if c.as == "" {
		return c.name
	}
	return c.name + " AS " + c.as
}

// Pull reads every source table into a snapshot
func (db *DB) Pull(ctx context.Context) (*model.Snapshot, error) {
	t := db.tables
	snap := &model.Snapshot{}

	steps := []struct {
		table string
		cols  []column
		pull  func(table string, cols []column) error
	}{
		{t.PersonalInfo, cols("emp_id", "recalculate_score_eligible", "updated_time"), func(tb string, c []column) error {
			return selectTable(ctx, db, tb, c, &snap.PersonalInfo)
		}},
		{t.WorkInfo, cols("emp_id", "work_exp_id", "start_date", "end_date", "employment_type", "domain"), func(tb string, c []column) error {
			return selectTable(ctx, db, tb, c, &snap.WorkInfo)
		}},
		{t.TechnologyStack, cols("emp_id", "technology_description"), func(tb string, c []column) error {
			return selectTable(ctx, db, tb, c, &snap.TechnologyStack)
		}},
		{t.Certificates, cols("emp_id", "certificate_id", "certificate_name", "certificate_completion_date"), func(tb string, c []column) error {
			return selectTable(ctx, db, tb, c, &snap.Certificates)
		}},
		{t.Education, cols("emp_id", "education_id", "education_type_desc"), func(tb string, c []column) error {
			return selectTable(ctx, db, tb, c, &snap.Education)
		}},
		{t.Interviews, cols("emp_id", "int_date", "int_status_desc"), func(tb string, c []column) error {
			return selectTable(ctx, db, tb, c, &snap.Interviews)
		}},
		{t.Offers, []column{{name: "emp_id"}, {name: offerIDColumn, as: "id"}}, func(tb string, c []column) error {
			return selectTable(ctx, db, tb, c, &snap.Offers)
		}},
		{t.Referrals, []column{{name: "emp_id"}, {name: referralIDColumn, as: "id"}}, func(tb string, c []column) error {
			return selectTable(ctx, db, tb, c, &snap.Referrals)
		}},
		{t.Reportings, []column{{name: "emp_id"}, {name: reportingIDColumn, as: "id"}}, func(tb string, c []column) error {
			return selectTable(ctx, db, tb, c, &snap.Reportings)
		}},
		{t.ScoreMeta, cols("score_name", "category", "range_start", "range_end", "score"), func(tb string, c []column) error {
			return selectTable(ctx, db, tb, c, &snap.ScoreMeta)
		}},
	}

	for _, s := range steps {
		if err := s.pull(s.table, s.cols); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// selectTable checks that table carries every required column, then scans
// all of its rows into dest
func selectTable[T any](ctx context.Context, db *DB, table string, columns []column, dest *[]T) error {
	have, err := db.columns(ctx, table)
	if err != nil {
		return err
	}

	names := make([]string, len(columns))
	selects := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
		selects[i] = c.String()
	}
	if err := model.RequireColumns(table, have, names...); err != nil {
		return err
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), table)
	if err := db.SelectContext(ctx, dest, query); err != nil {
		return fmt.Errorf("failed to read %s: %w", table, err)
	}
	return nil
}

// columns returns the column names of table
func (db *DB) columns(ctx context.Context, table string) ([]string, error) {
	if !identRE.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", table))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	for i := range names {
		names[i] = strings.ToLower(names[i])
	}
	return names, nil
}
