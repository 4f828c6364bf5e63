// Package tasks holds the task model, its file-backed store and the
// aggregations that feed the charts.
package tasks
