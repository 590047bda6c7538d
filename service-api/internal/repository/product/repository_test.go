package product

import (
	"context"
	"regexp"
	"testing"
	"time"

	"product-api/pkg/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{"id", "user_id", "name", "name", "description", "price", "created_at", "updated_at"}

func newMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	p := &model.Product{
		ID: uuid.New(), UserID: uuid.New(), Name: "Lamp", Description: "Desk lamp",
		Price: 19.99, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs(p.ID, p.UserID, p.Name, p.Description, p.Price, p.CreatedAt, p.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow("19.99"))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.InDelta(t, 19.99, p.Price, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ReturnsStoredPrice(t *testing.T) {
	tests := []struct {
		name   string
		sent   float64
		stored string
		want   float64
	}{
		{name: "whole", sent: 20, stored: "20.00", want: 20},
		{name: "rounded by column", sent: 0.005, stored: "0.01", want: 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)
			p := &model.Product{ID: uuid.New(), UserID: uuid.New(), Name: "Lamp", Description: "d", Price: tt.sent}

			mock.ExpectQuery(regexp.QuoteMeta("RETURNING price")).
				WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(tt.stored))

			require.NoError(t, repo.Create(context.Background(), p))
			assert.InDelta(t, tt.want, p.Price, 0.0001)
		})
	}
}

func TestCreate_Error(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), &model.Product{ID: uuid.New()})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetByID(t *testing.T) {
	repo, mock := newMock(t)
	id, owner := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(id, owner, "Jane", "Lamp", "Desk lamp", "19.99", now, now))

	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Jane", p.OwnerName)
	assert.Equal(t, owner, p.UserID)
	assert.InDelta(t, 19.99, p.Price, 0.0001)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products p")).
		WillReturnRows(sqlmock.NewRows(productColumns))

	p, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetAll(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.created_at DESC")).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(uuid.New(), uuid.New(), "Jane", "B", "second", "2.00", now, now).
			AddRow(uuid.New(), uuid.New(), "John", "A", "first", "1.00", now.Add(-time.Hour), now))

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "B", products[0].Name)
	assert.Equal(t, "John", products[1].OwnerName)
}

func TestGetAll_Empty(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products p")).
		WillReturnRows(sqlmock.NewRows(productColumns))

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestUpdate(t *testing.T) {
	repo, mock := newMock(t)
	p := &model.Product{ID: uuid.New(), Name: "Lamp", Description: "d", Price: 5, UpdatedAt: time.Now()}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).
		WithArgs(p.Name, p.Description, p.Price, p.UpdatedAt, p.ID).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow("5.00"))

	assert.NoError(t, repo.Update(context.Background(), p))
	assert.Equal(t, 5.0, p.Price)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).
		WillReturnRows(sqlmock.NewRows([]string{"price"}))

	err := repo.Update(context.Background(), &model.Product{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), id))
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), ErrNotFound)
}
