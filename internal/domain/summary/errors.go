package summary

import "errors"

var (
	ErrNoDataFound        = errors.New("no records found for the selected dates")
	ErrNoSourceConfigured = errors.New("no terminal source configured")
)
