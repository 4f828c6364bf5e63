// Package charttui is the terminal dashboard for SmartTask.
//
// The dashboard owns the frame loop: every frame message advances the chart
// animations through [charts.Manager.Tick], rasterizes the canvases and
// prints them with half-block cells, two pixels per terminal cell.
package charttui
