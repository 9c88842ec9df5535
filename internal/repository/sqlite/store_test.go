package sqlite

import (
	"anton/sportpath-core/internal/event"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestStore opens a private in-memory database through the same Open
// path production uses.
func newTestStore(t *testing.T) (*gorm.DB, *event.Bus) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := Open(dsn)
	require.NoError(t, err)
	return db, event.NewBus()
}

// countChanges tallies published changes per scope.
func countChanges(bus *event.Bus) map[event.Scope]int {
	counts := map[event.Scope]int{}
	bus.Subscribe(func(c event.Change) { counts[c.Scope]++ })
	return counts
}

func localDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
