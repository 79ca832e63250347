// Package sparkline renders inline tristate charts into a dom.Tree.
//
// The series is read from the element text, for example
//
//	<span id="graph">-1,0,1,1</span>
//
// and replaced by a relatively positioned span holding one absolutely
// positioned span per value. Positive values fill the top half of the chart,
// negative values the bottom half and zeroes draw a two pixel bar across the
// middle. Bars are 4px wide with 1px spacing on a 16px high chart unless
// overridden with options:
//
//	sparkline.Init(doc, "graph", sparkline.WithHeight(20))
package sparkline
