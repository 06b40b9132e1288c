package turntasks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/RoyceColton/Maintenance-Inventory-System/internal/audit"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
)

func setupTurnTaskTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	stmts := []string{`
CREATE TABLE IF NOT EXISTS turn_tasks (
  id TEXT PRIMARY KEY,
  unit TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'open',
  items TEXT NOT NULL DEFAULT '{}',
  done_items TEXT NOT NULL DEFAULT '{}',
  due_date DATE,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS audit_entries (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  action TEXT NOT NULL,
  entity_type TEXT NOT NULL,
  entity_id TEXT NOT NULL,
  detail TEXT,
  created_at DATETIME
);`}
	for _, stmt := range stmts {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func buildTurnTaskService(t *testing.T) (Service, *audit.Repository) {
	t.Helper()

	conn := setupTurnTaskTestDB(t)
	client, err := db.NewWithConn(conn)
	require.NoError(t, err)

	svc, err := NewService(NewRepository(conn), client, audit.NewRepository(conn))
	require.NoError(t, err)
	return svc, audit.NewRepository(conn)
}

func TestCreateTaskOpensChecklist(t *testing.T) {
	svc, auditRepo := buildTurnTaskService(t)
	actor := uuid.New()
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	task, err := svc.CreateTask(context.Background(), actor, CreateTaskInput{
		Unit:    " 204B ",
		Items:   []string{"Replace filters", " Patch walls ", ""},
		DueDate: &due,
	})
	require.NoError(t, err)
	assert.Equal(t, "204B", task.Unit)
	assert.Equal(t, enums.TurnTaskStatusOpen, task.Status)
	assert.Equal(t, []string{"Replace filters", "Patch walls"}, task.Items)
	assert.Empty(t, task.DoneItems)

	entries, err := auditRepo.List(context.Background(), audit.ListFilter{UserID: &actor})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, enums.AuditActionTurnTaskCreate, entries[0].Action)
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _ := buildTurnTaskService(t)
	actor := uuid.New()

	_, err := svc.CreateTask(context.Background(), actor, CreateTaskInput{Unit: "", Items: []string{"x"}})
	assertTaskCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateTask(context.Background(), actor, CreateTaskInput{Unit: "101", Items: []string{"", "  "}})
	assertTaskCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateTask(context.Background(), actor, CreateTaskInput{Unit: "101", Items: []string{"paint", "paint"}})
	assertTaskCode(t, err, pkgerrors.CodeValidation)
}

func TestCompleteItemAdvancesStatus(t *testing.T) {
	svc, _ := buildTurnTaskService(t)
	actor := uuid.New()

	task, err := svc.CreateTask(context.Background(), actor, CreateTaskInput{
		Unit:  "305",
		Items: []string{"paint", "clean"},
	})
	require.NoError(t, err)

	task, err = svc.CompleteItem(context.Background(), actor, task.ID, "paint")
	require.NoError(t, err)
	assert.Equal(t, enums.TurnTaskStatusInProgress, task.Status)
	assert.Equal(t, []string{"paint"}, task.DoneItems)

	task, err = svc.CompleteItem(context.Background(), actor, task.ID, "clean")
	require.NoError(t, err)
	assert.Equal(t, enums.TurnTaskStatusDone, task.Status)
}

func TestCompleteItemRejectsRepeatsAndUnknowns(t *testing.T) {
	svc, _ := buildTurnTaskService(t)
	actor := uuid.New()

	task, err := svc.CreateTask(context.Background(), actor, CreateTaskInput{
		Unit:  "305",
		Items: []string{"paint"},
	})
	require.NoError(t, err)

	_, err = svc.CompleteItem(context.Background(), actor, task.ID, "mop")
	assertTaskCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.CompleteItem(context.Background(), actor, task.ID, "paint")
	require.NoError(t, err)
	_, err = svc.CompleteItem(context.Background(), actor, task.ID, "paint")
	assertTaskCode(t, err, pkgerrors.CodeStateConflict)

	_, err = svc.CompleteItem(context.Background(), actor, uuid.New(), "paint")
	assertTaskCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateTaskReplacesItemsAndPrunesDone(t *testing.T) {
	svc, _ := buildTurnTaskService(t)
	actor := uuid.New()

	task, err := svc.CreateTask(context.Background(), actor, CreateTaskInput{
		Unit:  "112",
		Items: []string{"paint", "clean", "mop"},
	})
	require.NoError(t, err)
	_, err = svc.CompleteItem(context.Background(), actor, task.ID, "paint")
	require.NoError(t, err)
	_, err = svc.CompleteItem(context.Background(), actor, task.ID, "clean")
	require.NoError(t, err)

	items := []string{"paint", "reseal tub"}
	updated, err := svc.UpdateTask(context.Background(), actor, task.ID, UpdateTaskInput{Items: &items})
	require.NoError(t, err)
	assert.Equal(t, []string{"paint"}, updated.DoneItems)
	assert.Equal(t, enums.TurnTaskStatusInProgress, updated.Status)

	bad := "closed"
	_, err = svc.UpdateTask(context.Background(), actor, task.ID, UpdateTaskInput{Status: &bad})
	assertTaskCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateTaskExplicitStatusWins(t *testing.T) {
	svc, _ := buildTurnTaskService(t)
	actor := uuid.New()

	task, err := svc.CreateTask(context.Background(), actor, CreateTaskInput{
		Unit:  "410",
		Items: []string{"paint"},
	})
	require.NoError(t, err)

	status := "done"
	updated, err := svc.UpdateTask(context.Background(), actor, task.ID, UpdateTaskInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, enums.TurnTaskStatusDone, updated.Status)
}

func TestListTasksFiltersByStatus(t *testing.T) {
	svc, _ := buildTurnTaskService(t)
	actor := uuid.New()

	open, err := svc.CreateTask(context.Background(), actor, CreateTaskInput{
		Unit:  "unit-" + uuid.NewString()[:8],
		Items: []string{"paint"},
	})
	require.NoError(t, err)
	done, err := svc.CreateTask(context.Background(), actor, CreateTaskInput{
		Unit:  "unit-" + uuid.NewString()[:8],
		Items: []string{"paint"},
	})
	require.NoError(t, err)
	_, err = svc.CompleteItem(context.Background(), actor, done.ID, "paint")
	require.NoError(t, err)

	status := enums.TurnTaskStatusOpen
	tasks, err := svc.ListTasks(context.Background(), ListFilter{Status: &status})
	require.NoError(t, err)
	assert.True(t, containsTask(tasks, open.ID))
	assert.False(t, containsTask(tasks, done.ID))
}

func containsTask(tasks []TaskDTO, id uuid.UUID) bool {
	for i := range tasks {
		if tasks[i].ID == id {
			return true
		}
	}
	return false
}

func assertTaskCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}
