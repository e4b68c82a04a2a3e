package database

import (
	"strconv"
	"strings"
)

// DSNBuilder assembles a libpq keyword/value connection string for postgres.
type DSNBuilder struct {
	user         string
	password     string
	host         string
	port         int
	databaseName string
}

func NewDSNBuilder() *DSNBuilder {
	return &DSNBuilder{}
}

func (b *DSNBuilder) SetUser(user string) *DSNBuilder {
	b.user = user
	return b
}

func (b *DSNBuilder) SetPassword(password string) *DSNBuilder {
	b.password = password
	return b
}

func (b *DSNBuilder) SetHost(host string) *DSNBuilder {
	b.host = host
	return b
}

func (b *DSNBuilder) SetPort(port int) *DSNBuilder {
	b.port = port
	return b
}

func (b *DSNBuilder) SetDatabaseName(databaseName string) *DSNBuilder {
	b.databaseName = databaseName
	return b
}

// Build renders the DSN. Empty fields and a zero port are omitted so the
// driver falls back to its own defaults for them.
func (b *DSNBuilder) Build() string {
	parts := make([]string, 0, 7)
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+quoteDSNValue(value))
		}
	}
	add("host", b.host)
	add("user", b.user)
	add("password", b.password)
	add("dbname", b.databaseName)
	if b.port > 0 {
		add("port", strconv.Itoa(b.port))
	}
	add("sslmode", "disable")
	add("TimeZone", "UTC")
	return strings.Join(parts, " ")
}

// quoteDSNValue single-quotes values libpq would otherwise split or unescape.
func quoteDSNValue(value string) string {
	if !strings.ContainsAny(value, ` '\`+"\t\n") {
		return value
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(value) + "'"
}
