package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ian-deans/bamazon-example/internal/core/domain"
	"github.com/shopspring/decimal"
)

func TestFetchAllItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "price", "stock"}).
		AddRow(int64(1), "Widget", "19.99", 5).
		AddRow(int64(2), "Gizmo", "4.25", 3)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, stock FROM items ORDER BY id`)).
		WillReturnRows(rows)

	adapter := NewMySQLAdapter(db)
	items, err := adapter.FetchAllItems(context.Background())
	if err != nil {
		t.Fatalf("FetchAllItems failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 1 || items[0].Name != "Widget" || items[0].Stock != 5 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if !items[0].UnitPrice.Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("expected price 19.99, got %s", items[0].UnitPrice)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFetchAllItems_QueryError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, stock FROM items ORDER BY id`)).
		WillReturnError(errors.New("connection refused"))

	adapter := NewMySQLAdapter(db)
	if _, err := adapter.FetchAllItems(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestDecrementStock_Success(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE items`)).
		WithArgs(2, int64(1), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	adapter := NewMySQLAdapter(db)
	if err := adapter.DecrementStock(context.Background(), 1, 2); err != nil {
		t.Fatalf("DecrementStock failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDecrementStock_InsufficientStock(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	// guard fails, no rows updated
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE items`)).
		WithArgs(10, int64(1), 10).
		WillReturnResult(sqlmock.NewResult(0, 0))

	adapter := NewMySQLAdapter(db)
	err := adapter.DecrementStock(context.Background(), 1, 10)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got: %v", err)
	}
}

func TestDecrementStock_StoreError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE items`)).
		WithArgs(1, int64(7), 1).
		WillReturnError(errors.New("connection lost"))

	adapter := NewMySQLAdapter(db)
	err := adapter.DecrementStock(context.Background(), 7, 1)
	if err == nil || errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected store error, got: %v", err)
	}
}

func TestCreateOrder(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	order := domain.Order{
		ID:     "order-1",
		Total:  decimal.RequireFromString("44.23"),
		Status: domain.OrderStatusConfirmed,
		Lines: []domain.LineItem{
			{ItemID: 1, Name: "Widget", Quantity: 2,
				UnitPrice: decimal.RequireFromString("19.99"),
				LineCost:  decimal.RequireFromString("39.98")},
			{ItemID: 2, Name: "Gizmo", Quantity: 1,
				UnitPrice: decimal.RequireFromString("4.25"),
				LineCost:  decimal.RequireFromString("4.25")},
		},
		CreatedAt: time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(order.ID, "44.23", string(domain.OrderStatusConfirmed), order.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs(order.ID, int64(1), 2, "19.99", "39.98").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs(order.ID, int64(2), 1, "4.25", "4.25").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	adapter := NewMySQLAdapter(db)
	if err := adapter.CreateOrder(context.Background(), order); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateOrder_RollsBackOnInsertFailure(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	order := domain.Order{
		ID:        "order-2",
		Total:     decimal.RequireFromString("19.99"),
		Status:    domain.OrderStatusConfirmed,
		CreatedAt: time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	adapter := NewMySQLAdapter(db)
	if err := adapter.CreateOrder(context.Background(), order); err == nil {
		t.Error("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
