package postgres

import "testing"

func TestTournamentByIDSelectBuilder_Locks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lock  func(id int64) (string, []any, error)
		query string
	}{
		{
			name:  "plain",
			lock:  func(id int64) (string, []any, error) { return tournamentByIDSelectBuilder(id).ToSQL() },
			query: "SELECT * FROM tournaments WHERE id = $1 AND deleted_at IS NULL",
		},
		{
			name:  "for update",
			lock:  func(id int64) (string, []any, error) { return tournamentByIDSelectBuilder(id).ForUpdate().ToSQL() },
			query: "SELECT * FROM tournaments WHERE id = $1 AND deleted_at IS NULL FOR UPDATE",
		},
		{
			name:  "for share",
			lock:  func(id int64) (string, []any, error) { return tournamentByIDSelectBuilder(id).ForShare().ToSQL() },
			query: "SELECT * FROM tournaments WHERE id = $1 AND deleted_at IS NULL FOR SHARE",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			query, args, err := tc.lock(9)
			if err != nil {
				t.Fatalf("build query: %v", err)
			}
			if query != tc.query {
				t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", tc.query, query)
			}
			if len(args) != 1 || args[0] != int64(9) {
				t.Fatalf("unexpected args: %+v", args)
			}
		})
	}
}
