package connector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // регистрируем pgx драйвер для database/sql
)

// PGConn объединяет пул pgx для запросов и *sql.DB для миграций
type PGConn struct {
	Pool  *pgxpool.Pool
	SQLDB *sql.DB
}

// Ping проверяет живость подключения
func (p *PGConn) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

// Close закрывает оба подключения
func (p *PGConn) Close() {
	p.Pool.Close()
	if p.SQLDB != nil {
		p.SQLDB.Close()
	}
}

// PGDial возвращает DialFunc, устанавливающий подключение к PostgreSQL
func PGDial(dsn string) DialFunc {
	return func(ctx context.Context) (Conn, error) {
		if dsn == "" {
			return nil, fmt.Errorf("database DSN is required")
		}

		poolCfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database config: %w", err)
		}

		poolCfg.MaxConns = 10
		poolCfg.MinConns = 1
		poolCfg.MaxConnLifetime = time.Hour
		poolCfg.MaxConnIdleTime = 30 * time.Minute

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to open sql database: %w", err)
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			pool.Close()
			sqlDB.Close()
			return nil, fmt.Errorf("failed to ping sql database: %w", err)
		}

		return &PGConn{Pool: pool, SQLDB: sqlDB}, nil
	}
}
