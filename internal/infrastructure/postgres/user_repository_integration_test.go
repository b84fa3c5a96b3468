//go:build integration

package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	"github.com/oksasatya/user-management-api/internal/domain/repository"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	if err := godotenv.Load("../../../.env.test"); err != nil {
		log.Println("no .env.test found; relying on environment")
	}
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		log.Fatal("TEST_DATABASE_URL environment variable is not set")
	}

	var err error
	testPool, err = NewPool(context.Background(), dbURL, 5, 1, time.Hour)
	if err != nil {
		log.Fatalf("unable to create connection pool: %v", err)
	}
	defer testPool.Close()

	code := m.Run()
	os.Exit(code)
}

func seedUser(t *testing.T, r *UserRepository, name, email string) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: email, Password: "x"}
	require.NoError(t, r.Create(context.Background(), u))
	t.Cleanup(func() {
		_, _ = testPool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func TestCreateAssignsServerFields(t *testing.T) {
	r := NewUserRepository(testPool)
	u := seedUser(t, r, "Alice", fmt.Sprintf("alice+%d@example.com", time.Now().UnixNano()))

	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.False(t, u.UpdatedAt.IsZero())
}

func TestCreateDuplicateEmail(t *testing.T) {
	r := NewUserRepository(testPool)
	email := fmt.Sprintf("dup+%d@example.com", time.Now().UnixNano())
	seedUser(t, r, "First", email)

	err := r.Create(context.Background(), &entity.User{Name: "Second", Email: email, Password: "x"})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestListSearchMatchesNameOrEmail(t *testing.T) {
	r := NewUserRepository(testPool)
	marker := fmt.Sprintf("srch%d", time.Now().UnixNano())
	a := seedUser(t, r, "User "+marker, fmt.Sprintf("a+%s@example.com", marker))
	b := seedUser(t, r, "Unrelated", fmt.Sprintf("b+%s@example.com", marker))

	users, total, err := r.List(context.Background(), marker, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)
	// ordered by ascending id
	assert.Equal(t, a.ID, users[0].ID)
	assert.Equal(t, b.ID, users[1].ID)

	// case-insensitive
	_, total, err = r.List(context.Background(), "SRCH", 1, 10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(2))
}

func TestFindByEmailIsCaseInsensitive(t *testing.T) {
	r := NewUserRepository(testPool)
	email := fmt.Sprintf("Mixed.Case+%d@Example.com", time.Now().UnixNano())
	u := seedUser(t, r, "Mixed", email)

	got, err := r.FindByEmail(context.Background(), strings.ToLower(email))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = r.FindByEmail(context.Background(), strings.ToUpper(email))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

// The dev seeding in cmd/seed relies on ON CONFLICT (lower(email)) matching
// the expression index users_email_key; pin that arbiter inference here.
func TestUpsertConflictsOnLowerEmail(t *testing.T) {
	email := fmt.Sprintf("upsert+%d@example.com", time.Now().UnixNano())
	upsert := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (lower(email)) DO UPDATE SET name = EXCLUDED.name, updated_at = now()
		RETURNING id
	`

	var first, second int64
	require.NoError(t, testPool.QueryRow(context.Background(), upsert, "First", email, "x").Scan(&first))
	t.Cleanup(func() {
		_, _ = testPool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, first)
	})
	require.NoError(t, testPool.QueryRow(context.Background(), upsert, "Second", email, "x").Scan(&second))
	assert.Equal(t, first, second)

	var name string
	require.NoError(t, testPool.QueryRow(context.Background(), `SELECT name FROM users WHERE id = $1`, first).Scan(&name))
	assert.Equal(t, "Second", name)
}

func TestDeleteTwiceReturnsNotFound(t *testing.T) {
	r := NewUserRepository(testPool)
	u := seedUser(t, r, "Gone", fmt.Sprintf("gone+%d@example.com", time.Now().UnixNano()))

	require.NoError(t, r.Delete(context.Background(), u.ID))
	assert.ErrorIs(t, r.Delete(context.Background(), u.ID), repository.ErrNotFound)
}

func TestUpdateMissingRow(t *testing.T) {
	r := NewUserRepository(testPool)
	err := r.Update(context.Background(), &entity.User{ID: -1, Name: "x", Email: "x@example.com", Password: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
