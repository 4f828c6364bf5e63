// Package canvas implements [charts.Surface] on top of go-chart renderers,
// producing PNG or SVG output, and groups surfaces into a [Document] keyed
// by canvas id.
package canvas
