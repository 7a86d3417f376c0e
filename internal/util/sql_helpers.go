package util

import (
	"database/sql"
	"time"
)

// StringToNullString converts a string to sql.NullString.
// An empty string is treated as NULL.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullStringOr returns the string value, or fallback when it is NULL or empty.
func NullStringOr(ns sql.NullString, fallback string) string {
	if !ns.Valid || ns.String == "" {
		return fallback
	}
	return ns.String
}

// NullTimeOr returns the time value, or fallback when it is NULL.
func NullTimeOr(nt sql.NullTime, fallback time.Time) time.Time {
	if !nt.Valid {
		return fallback
	}
	return nt.Time
}
