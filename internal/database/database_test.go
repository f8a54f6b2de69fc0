package database_test

import (
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-web/internal/config"
	"github.com/yukikurage/todo-web/internal/database"
	"github.com/yukikurage/todo-web/internal/models"
	"github.com/yukikurage/todo-web/internal/testutil"
	"gorm.io/driver/mysql"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := database.Dialector(&config.Config{DBDriver: driver, DBName: "todo"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := database.Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestDialector_MySQLKeepsDueDatesOnTheirDay(t *testing.T) {
	d, err := database.Dialector(&config.Config{
		DBDriver:   "mysql",
		DBUser:     "todo",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     "3306",
		DBName:     "todo",
	})
	require.NoError(t, err)

	cfg, err := mysqldriver.ParseDSN(d.(*mysql.Dialector).DSN)
	require.NoError(t, err)
	assert.Equal(t, "db:3306", cfg.Addr)
	assert.Equal(t, "todo", cfg.DBName)
	assert.True(t, cfg.ParseTime)

	// the driver writes time values as v.In(cfg.Loc)
	due, err := time.ParseInLocation(time.DateOnly, "2030-01-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, cfg.Loc)
	assert.Equal(t, "2030-01-01 00:00:00", due.In(cfg.Loc).Format(time.DateTime))
}

func TestAutoMigrate_CreatesIndexesIdempotently(t *testing.T) {
	db := testutil.NewDB(t)

	// second run must skip existing indexes
	require.NoError(t, database.AutoMigrate(db))

	for _, name := range []string{
		"idx_tasks_user_status",
		"idx_tasks_user_priority",
		"idx_tasks_user_category",
		"idx_tasks_user_due_date",
	} {
		assert.True(t, db.Migrator().HasIndex(&models.Task{}, name), name)
	}
}

func TestScopes(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "password")
	bob := testutil.CreateUser(t, db, "bob", "password")

	testutil.CreateTask(t, db, alice.ID, "Pay 100% of rent")
	testutil.CreateTask(t, db, alice.ID, "Pay 100 dollars")
	testutil.CreateTask(t, db, alice.ID, "snake_case rename")
	testutil.CreateTask(t, db, alice.ID, "snakeXcase rename")
	testutil.CreateTask(t, db, bob.ID, "Pay 100% of bills")

	find := func(keyword string) []string {
		var tasks []models.Task
		require.NoError(t, db.Scopes(database.OwnedBy(alice.ID), database.TitleContains(keyword)).
			Order("id").Find(&tasks).Error)
		titles := make([]string, len(tasks))
		for i, task := range tasks {
			titles[i] = task.Title
		}
		return titles
	}

	assert.Equal(t, []string{"Pay 100% of rent"}, find("100%"))
	assert.Equal(t, []string{"snake_case rename"}, find("snake_case"))
	assert.Len(t, find("Pay"), 2)
	assert.Empty(t, find("!"))
}

func TestOrderByStatus_DeclarationOrder(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "alice", "password")

	testutil.CreateTask(t, db, user.ID, "done", testutil.WithStatus(models.TaskStatusCompleted))
	testutil.CreateTask(t, db, user.ID, "todo", testutil.WithStatus(models.TaskStatusNotStarted))
	testutil.CreateTask(t, db, user.ID, "doing", testutil.WithStatus(models.TaskStatusInProgress))

	var tasks []models.Task
	require.NoError(t, db.Scopes(database.OwnedBy(user.ID), database.OrderByStatus()).Find(&tasks).Error)
	require.Len(t, tasks, 3)
	assert.Equal(t, "todo", tasks[0].Title)
	assert.Equal(t, "doing", tasks[1].Title)
	assert.Equal(t, "done", tasks[2].Title)
}
