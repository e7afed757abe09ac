package persistence

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/pos-backoffice/internal/config"
)

func TestNewPostgres_NoDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewPostgres: %v", err)
	}
	if pg.PoolHandle() != nil {
		t.Error("expected nil pool without DSN")
	}
	if err := pg.Ping(context.Background()); err == nil {
		t.Error("expected ping error without pool")
	}
	pg.Close()
}

func TestNilHandles(t *testing.T) {
	var pg *Postgres
	if pg.PoolHandle() != nil {
		t.Error("nil Postgres should return nil pool")
	}
	pg.Close()

	var r *Redis
	if err := r.Ping(context.Background()); err == nil {
		t.Error("nil Redis should fail ping")
	}
	r.Close()
}

func TestRunMigrations_NoPool(t *testing.T) {
	if err := RunMigrations(context.Background(), nil, "does-not-matter", zap.NewNop()); err != nil {
		t.Errorf("expected skip without pool, got %v", err)
	}
}
