package database

import (
	"database/sql"
	"errors"
	"net"
	"os"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var (
	Db                      *sql.DB
	GracefulShutdownChannel = make(chan os.Signal, 1)
)

// Client-side MySQL error numbers that indicate the connection to the
// server is gone. Statement-level errors (bad SQL, duplicate keys,
// constraint violations) are never in this set.
var connectionErrorNumbers = map[uint16]bool{
	2002: true, // CR_CONNECTION_ERROR
	2003: true, // CR_CONN_HOST_ERROR
	2006: true, // CR_SERVER_GONE_ERROR
	2013: true, // CR_SERVER_LOST
}

// Connect sets up the connection pool and stores the handler in the global Db
func Connect(
	user string,
	password string,
	dbName string,
	host string,
	port int,
	gracefulShutdownChannel chan os.Signal) {
	GracefulShutdownChannel = gracefulShutdownChannel

	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	cfg.DBName = dbName
	cfg.ParseTime = true

	var err error
	Db, err = sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		zap.S().Fatalf("Failed to open database: %s", err)
	}

	minConns := runtime.NumCPU()
	if minConns < 4 {
		minConns = 4
	}
	Db.SetMaxIdleConns(minConns)
	Db.SetConnMaxIdleTime(5 * time.Minute)
	Db.SetConnMaxLifetime(10 * time.Minute)

	go pingDB()
}

func pingDB() {
	for {
		err := Db.Ping()
		if err != nil {
			zap.S().Errorf("Failed to ping database: %s", err)
		}
		time.Sleep(5 * time.Second)
	}
}

// IsAvailable reports whether the database answers a ping
func IsAvailable() bool {
	if Db == nil {
		return false
	}
	return Db.Ping() == nil
}

// Shutdown closes all database connections
func Shutdown() {
	if Db == nil {
		return
	}
	err := Db.Close()
	if err != nil {
		zap.S().Errorf("Failed to close database: %s", err)
	}
}

// ErrorHandling logs and handles database errors. Connection-class errors
// escalate to a graceful shutdown, statement-level errors do not.
func ErrorHandling(sqlStatement string, err error, isCritical bool) {
	stackTrace := make([]byte, 1024*8)
	written := runtime.Stack(stackTrace, false)

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && connectionErrorNumbers[mysqlErr.Number] {
		zap.S().Errorw(
			"MySQL failed: connection error",
			"error", err,
			"sqlStatement", sqlStatement,
			"stackTrace", string(stackTrace[:written]),
		)
		isCritical = true
	} else {
		zap.S().Errorw(
			"MySQL failed.",
			"error", err,
			"sqlStatement", sqlStatement,
			"stackTrace", string(stackTrace[:written]),
		)
	}

	if isCritical {
		select {
		case GracefulShutdownChannel <- syscall.SIGTERM:
		default: // shutdown already requested
		}
	}
}

// Transaction runs f inside a transaction and commits if f returns nil,
// otherwise it rolls back and returns f's error.
func Transaction(f func(tx *sql.Tx) error) error {
	tx, err := Db.Begin()
	if err != nil {
		return err
	}
	err = f(tx)
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			zap.S().Errorf("Failed to rollback transaction: %s", rollbackErr)
		}
		return err
	}
	return tx.Commit()
}
