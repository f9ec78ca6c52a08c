package bookings

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB opens a postgres-dialect session that only builds SQL.
// Nothing connects, so the generated statements can be asserted offline.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestLockEventEmitsRowLock(t *testing.T) {
	db := newDryRunDB(t)

	var event admissionEvent
	result := lockEvent(db, uuid.New(), &event)
	require.NoError(t, result.Error)

	sql := result.Statement.SQL.String()
	assert.Contains(t, sql, "FOR UPDATE")
	assert.Contains(t, sql, "events")
}
