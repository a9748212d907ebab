package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder_ToSQL(t *testing.T) {
	query, args, err := Select("*").From("leagues").
		Where(
			Expr("LOWER(name) = LOWER(?)", "LCK"),
			IsNull("deleted_at"),
		).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT * FROM leagues WHERE LOWER(name) = LOWER($1) AND deleted_at IS NULL ORDER BY id LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query:\n got  %s\n want %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"LCK"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestSelectBuilder_PlaceholderNumbering(t *testing.T) {
	query, args, err := Select("*").From("matches").
		Where(
			Eq("team_a_public_id", "t1"),
			Eq("team_b_public_id", "geng"),
			IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT * FROM matches WHERE team_a_public_id = $1 AND team_b_public_id = $2 AND deleted_at IS NULL"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
	if _, _, err := Select().From("leagues").ToSQL(); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}

func TestInsertBuilder_ToSQL(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("public_id", "name", "win_rate").
		Values("lck-t1", "T1", 0.68).
		Values("lck-geng", "Gen.G", 0.71).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "INSERT INTO teams (public_id, name, win_rate) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestInsertBuilder_RejectsRaggedRows(t *testing.T) {
	_, _, err := InsertInto("teams").
		Columns("public_id", "name").
		Values("lck-t1").
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for row width mismatch")
	}
}
