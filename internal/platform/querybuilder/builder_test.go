package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "title").
		From("tournaments").
		Where(Eq("id", int64(7)), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		Offset(20).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, title FROM tournaments WHERE id = $1 AND deleted_at IS NULL ORDER BY id LIMIT 10 OFFSET 20"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ForUpdate(t *testing.T) {
	query, args, err := Select("*").
		From("teams").
		Where(Eq("tournament_id", int64(1)), Eq("id", int64(2)), IsNull("deleted_at")).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM teams WHERE tournament_id = $1 AND id = $2 AND deleted_at IS NULL FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ForShare(t *testing.T) {
	query, _, err := Select("*").
		From("tournaments").
		Where(Eq("id", int64(3)), IsNull("deleted_at")).
		ForUpdate().
		ForShare().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM tournaments WHERE id = $1 AND deleted_at IS NULL FOR SHARE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestNotInAndIsNotNull(t *testing.T) {
	query, args, err := Select("id").
		From("clubs").
		Where(NotIn("id", []any{int64(1), int64(3)}), IsNotNull("title")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM clubs WHERE id NOT IN ($1, $2) AND title IS NOT NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, _, err = Select("id").From("clubs").Where(NotIn("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM clubs WHERE 1=1" {
		t.Fatalf("unexpected empty NOT IN query: %s", query)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("clubs").
		Columns("title", "created_at").
		Values("Arsenal", "now").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO clubs (title, created_at) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Arsenal" || args[1] != "now" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_Increments(t *testing.T) {
	query, args, err := Update("teams").
		SetExpr("points", "points + ?", 3).
		SetExpr("wins", "wins + ?", 1).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(9)), IsNull("deleted_at")).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE teams SET points = points + $1, wins = wins + $2, updated_at = NOW() WHERE id = $3 AND deleted_at IS NULL RETURNING *"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 3 || args[1] != 1 || args[2] != int64(9) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID    int64  `db:"-"`
		Title string `db:"title"`
		skip  string
	}

	query, args, err := InsertModel("clubs", row{ID: 1, Title: "Juventus", skip: "x"}, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}
	if query != "INSERT INTO clubs (title) VALUES ($1) RETURNING id" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "Juventus" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestExprBindsInOrder(t *testing.T) {
	query, args, err := Select("id").
		From("matches").
		Where(
			Eq("tournament_id", int64(4)),
			Expr("(team1_id = ? OR team2_id = ?)", int64(8), int64(8)),
			In("id", nil),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM matches WHERE tournament_id = $1 AND (team1_id = $2 OR team2_id = $3) AND 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != int64(8) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RejectsShortRow(t *testing.T) {
	_, _, err := InsertInto("teams").
		Columns("tournament_id", "user_id", "club_id").
		Values(int64(1), int64(2), int64(3)).
		Values(int64(1), int64(2)).
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for mismatched row length")
	}
}
