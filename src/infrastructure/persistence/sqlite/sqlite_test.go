package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk/src/config"
	"github.com/staffdesk/staffdesk/src/domain"
	"github.com/staffdesk/staffdesk/src/domain/repository"
)

var ignoreTimestamps = cmpopts.IgnoreFields(domain.Employee{}, "CreatedAt", "UpdatedAt")

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	logger := zerolog.Nop()

	db, err := config.SqliteConnection(context.Background(), config.SqliteMemory, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, EnsureSchema(context.Background(), db))
	// idempotent
	require.NoError(t, EnsureSchema(context.Background(), db))

	return db
}

func employee(name, email, department string, salary float64) domain.Employee {
	return domain.Employee{
		Name:       name,
		Email:      email,
		Position:   "Analista",
		Department: department,
		Salary:     salary,
		HireDate:   "2022-11-05",
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	employees := NewEmployeeRepository(openDB(t))

	// insert
	ana := employee("Ana", "ana@empresa.com", "Analítica", 60000)
	require.NoError(t, employees.Insert(ctx, &ana))
	assert.NotZero(t, ana.ID)
	assert.False(t, ana.CreatedAt.IsZero())
	assert.Equal(t, ana.CreatedAt, ana.UpdatedAt)

	// get
	got, err := employees.GetById(ctx, ana.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(ana, *got); diff != "" {
		t.Errorf("GetById mismatch (-want +got):\n%s", diff)
	}

	// update
	ana.Position = "Analista Senior"
	ana.Salary = 70000
	changes, err := employees.Update(ctx, &ana)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)

	got, err = employees.GetById(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Analista Senior", got.Position)
	assert.Equal(t, float64(70000), got.Salary)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	// delete
	changes, err = employees.Delete(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)

	got, err = employees.GetById(ctx, ana.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	changes, err = employees.Delete(ctx, ana.ID)
	require.NoError(t, err)
	assert.Zero(t, changes)
}

func TestUpdateUnknownEmployee(t *testing.T) {
	t.Parallel()
	employees := NewEmployeeRepository(openDB(t))

	ghost := employee("Nadie", "nadie@empresa.com", "Ventas", 1)
	ghost.ID = 42

	changes, err := employees.Update(context.Background(), &ghost)
	require.NoError(t, err)
	assert.Zero(t, changes)
}

func TestGetAllNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	employees := NewEmployeeRepository(openDB(t))

	empty, err := employees.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first := employee("Primero", "primero@empresa.com", "Ventas", 1000)
	second := employee("Segundo", "segundo@empresa.com", "Ventas", 2000)
	require.NoError(t, employees.Insert(ctx, &first))
	require.NoError(t, employees.Insert(ctx, &second))

	all, err := employees.GetAll(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]domain.Employee{second, first}, all, ignoreTimestamps); diff != "" {
		t.Errorf("GetAll mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	employees := NewEmployeeRepository(openDB(t))

	original := employee("Ana", "ana@empresa.com", "Analítica", 60000)
	require.NoError(t, employees.Insert(ctx, &original))

	copycat := employee("Otra Ana", "ana@empresa.com", "Ventas", 50000)
	assert.ErrorIs(t, employees.Insert(ctx, &copycat), domain.ErrDuplicateEmail)

	other := employee("Luis", "luis@empresa.com", "Ventas", 50000)
	require.NoError(t, employees.Insert(ctx, &other))

	other.Email = original.Email
	_, err := employees.Update(ctx, &other)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestSeedIfEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	employees := NewEmployeeRepository(db)

	samples := []domain.Employee{
		employee("Juan", "juan@empresa.com", "Tecnología", 75000),
		employee("María", "maria@empresa.com", "Operaciones", 65000),
	}

	inserted, err := employees.SeedIfEmpty(ctx, samples)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	inserted, err = employees.SeedIfEmpty(ctx, samples)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	count, err := NewStatisticsRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSeedIsAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	employees := NewEmployeeRepository(db)

	samples := []domain.Employee{
		employee("Juan", "juan@empresa.com", "Tecnología", 75000),
		employee("Juan Bis", "juan@empresa.com", "Tecnología", 75000),
	}

	_, err := employees.SeedIfEmpty(ctx, samples)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	count, err := NewStatisticsRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStatistics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	employees := NewEmployeeRepository(db)
	stats := NewStatisticsRepository(db)

	// empty table
	count, err := stats.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	total, err := stats.TotalSalary(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	average, err := stats.AverageSalary(ctx)
	require.NoError(t, err)
	assert.Zero(t, average)

	departments, err := stats.ByDepartment(ctx)
	require.NoError(t, err)
	assert.Empty(t, departments)

	// populated table
	for _, e := range []domain.Employee{
		employee("Juan", "juan@empresa.com", "Tecnología", 75000),
		employee("María", "maria@empresa.com", "Operaciones", 65000),
		employee("Carlos", "carlos@empresa.com", "Diseño", 55000),
		employee("Ana", "ana@empresa.com", "Tecnología", 60000),
	} {
		e := e
		require.NoError(t, employees.Insert(ctx, &e))
	}

	count, err = stats.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	total, err = stats.TotalSalary(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(255000), total)

	average, err = stats.AverageSalary(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(63750), average)

	departments, err = stats.ByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, []repository.DepartmentCount{
		{Department: "Diseño", Count: 1},
		{Department: "Operaciones", Count: 1},
		{Department: "Tecnología", Count: 2},
	}, departments)
}

func TestTimeFormatSortsChronologically(t *testing.T) {
	t.Parallel()

	earlier, err := parseTime("2024-01-01T10:00:00.000000000Z")
	require.NoError(t, err)
	later := earlier.Add(500 * 1000) // half a millisecond

	assert.Less(t, formatTime(earlier), formatTime(later))

	parsed, err := parseTime(formatTime(later))
	require.NoError(t, err)
	assert.True(t, later.Equal(parsed))
}
