package parts

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupPartsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	partsTable := `
CREATE TABLE IF NOT EXISTS parts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  model_number TEXT NOT NULL UNIQUE,
  count INTEGER NOT NULL DEFAULT 0,
  cost TEXT NOT NULL DEFAULT '0',
  room TEXT NOT NULL DEFAULT '',
  threshold INTEGER NOT NULL DEFAULT 5,
  is_misc INTEGER NOT NULL DEFAULT 0,
  appliance_type TEXT NOT NULL DEFAULT '',
  order_link TEXT,
  order_status TEXT NOT NULL DEFAULT 'not_ordered',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderHistories := `
CREATE TABLE IF NOT EXISTS order_histories (
  id TEXT PRIMARY KEY,
  part_id TEXT NOT NULL,
  order_date DATE NOT NULL,
  purchased_quantity INTEGER NOT NULL,
  total_cost TEXT NOT NULL DEFAULT '0',
  tracking_number TEXT NOT NULL DEFAULT '',
  estimated_delivery DATE,
  delivered_date DATE,
  budget_category TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	auditEntries := `
CREATE TABLE IF NOT EXISTS audit_entries (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  action TEXT NOT NULL,
  entity_type TEXT NOT NULL,
  entity_id TEXT NOT NULL,
  detail TEXT,
  created_at DATETIME
);`

	for _, stmt := range []string{partsTable, orderHistories, auditEntries} {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}
