// Package export writes task backups as JSON, gzip-compressed JSON or XLSX
// workbooks, and reads JSON backups back after validating them against the
// generated task schema.
package export
