package mocks

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v2"
)

// BuildConn returns a mocked connection that is closed when the test ends.
// Unmet expectations fail the test.
func BuildConn(t *testing.T) pgxmock.PgxConnIface {
	db, err := pgxmock.NewConn()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err.Error())
	}
	t.Cleanup(func() {
		if err := db.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
		_ = db.Close(context.Background())
	})
	return db
}
