package stmt

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	// Drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type ConnectionConfig struct {
	Name             string
	Driver           string
	ConnectionString string
	// DB, when set, is used instead of opening ConnectionString.
	DB          *sql.DB
	Dialect     *Dialect
	Policy      Policy
	Interpolate bool
	LogLevel    LogLevel
	// Logger overrides LogLevel.
	Logger Logger
}

// DB is the execution collaborator for builders: it owns the connection pool
// and turns result sets into Records.
type DB struct {
	Name        string
	Dialect     *Dialect
	conn        *sqlx.DB
	policy      Policy
	interpolate bool
	logger      Logger
}

// Connect opens a connection described by conf. Nothing is sent to the server
// until the first statement or Ping.
func Connect(conf ConnectionConfig) (*DB, error) {
	var err error
	dialect := conf.Dialect
	if dialect == nil {
		driver := conf.Driver
		if driver == "" {
			driver = Dialects.PostgreSQL.DriverName
		}
		dialect, err = DialectFor(driver)
		if err != nil {
			return nil, err
		}
	}

	logger := conf.Logger
	if logger == nil {
		logger, err = newZapLogger(conf.LogLevel)
		if err != nil {
			return nil, err
		}
	}

	var conn *sqlx.DB
	if conf.DB != nil {
		conn = sqlx.NewDb(conf.DB, dialect.DriverName)
	} else {
		if conf.ConnectionString == "" {
			return nil, fmt.Errorf("connection %q: connection string is empty", conf.Name)
		}
		conn, err = sqlx.Open(dialect.DriverName, conf.ConnectionString)
		if err != nil {
			return nil, err
		}
	}

	return &DB{
		Name:        conf.Name,
		Dialect:     dialect,
		conn:        conn,
		policy:      conf.Policy,
		interpolate: conf.Interpolate,
		logger:      logger,
	}, nil
}

// Builder returns an empty Builder bound to db.
func (db *DB) Builder() *Builder {
	return New(db, WithDialect(db.Dialect), WithPolicy(db.policy), WithInterpolation(db.interpolate))
}

// Query implements Executor.
func (db *DB) Query(ctx context.Context, statement string, args ...any) ([]Record, error) {
	db.logger.Debugf("executing %s %v", statement, args)
	rows, err := db.conn.QueryxContext(ctx, statement, args...)
	if err != nil {
		db.logger.Errorf("statement %s failed: %v", statement, err)
		return nil, &BackendError{Statement: statement, Err: err}
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		db.logger.Errorf("reading rows of %s: %v", statement, err)
		return nil, &BackendError{Statement: statement, Err: err}
	}
	db.logger.Debugf("statement returned %d rows", len(records))
	return records, nil
}

// Raw runs a hand written statement after checking it with the connection's
// Policy.
func (db *DB) Raw(ctx context.Context, statement string, args ...any) ([]Record, error) {
	if err := db.policy.CheckText(statement); err != nil {
		db.logger.Warnf("rejected %s: %v", statement, err)
		return nil, err
	}
	return db.Query(ctx, statement, args...)
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// SQLDB exposes the underlying pool.
func (db *DB) SQLDB() *sql.DB {
	return db.conn.DB
}

func (db *DB) Close() error {
	if z, ok := db.logger.(*zapLogger); ok {
		_ = z.sync()
	}
	return db.conn.Close()
}

func scanRecords(rows *sqlx.Rows) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	records := []Record{}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		records = append(records, NewRecord(columns, values))
	}
	return records, rows.Err()
}
