package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abastos/inventario-api/pkg/config"
)

// Parámetros del pool. MaxConns acotado por el límite de conexiones del plan
// de base de datos típico de una PyME.
const (
	poolMaxConns          = 20
	poolMinConns          = 2
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	poolHealthCheckPeriod = time.Minute
)

// NewPool abre el pool de conexiones PostgreSQL y verifica conectividad con un
// ping. Registra el codec NUMERIC -> shopspring/decimal en cada conexión, de
// modo que precios y agregados financieros nunca pasen por float64.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("postgres: parsear DSN: %w", err)
	}

	poolCfg.MaxConns = poolMaxConns
	poolCfg.MinConns = poolMinConns
	poolCfg.MaxConnLifetime = poolMaxConnLifetime
	poolCfg.MaxConnIdleTime = poolMaxConnIdleTime
	poolCfg.HealthCheckPeriod = poolHealthCheckPeriod

	// Contenedores sin stack IPv6 fallan contra hosts que resuelven solo AAAA;
	// preferir la dirección A cuando exista.
	poolCfg.ConnConfig.DialFunc = dialIPv4Preferido

	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

// dialIPv4Preferido marca "tcp4" cuando el host tiene dirección IPv4; si no la
// tiene, cae al dial normal y deja que el resolver decida.
func dialIPv4Preferido(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return dialer.DialContext(ctx, network, addr)
	}
	if ip := net.ParseIP(host); ip != nil {
		return dialer.DialContext(ctx, network, addr)
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return dialer.DialContext(ctx, network, addr)
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(v4.String(), port))
		}
	}
	return dialer.DialContext(ctx, network, addr)
}
