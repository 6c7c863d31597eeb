package utils

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// MySQLDSN builds a DSN from the MYSQL_* keys. ok is false when MYSQL_HOST is
// unset, in which case callers fall back to in-memory stores
func MySQLDSN(config *Config) (dsn string, ok bool) {
	host := config.Get("MYSQL_HOST")
	if host == "" {
		return "", false
	}

	dbConfig := mysql.Config{
		User:                 config.Get("MYSQL_USER"),
		Passwd:               config.Get("MYSQL_PASSWORD"),
		Net:                  "tcp",
		Addr:                 fmt.Sprintf("%s:%s", host, config.GetWithDefault("MYSQL_PORT", "3306")),
		DBName:               config.Get("MYSQL_DATABASE"),
		ParseTime:            true,
		AllowNativePasswords: true,
	}

	return dbConfig.FormatDSN(), true
}
