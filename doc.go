// Package oxyplot draws statistical charts in the style of R's ggplot2 and
// renders them through gonum/plot.
//
//
// Data Representation: Data Frames
//
// Data is held in a column oriented DataFrame, usually read from CSV with
// ReadCSV. Internaly every column is a []float64:
//     Float   continous data
//     Int     discrete numbers, e.g. an identifier
//     String  discrete text, stored as index into the frame's StringPool
//     Vector  a []float64 per row, e.g. the outliers of a boxplot
//
//
// Building a Plot
//
// A Plot consists of Layers. Each layer maps fields of its data frame to
// aesthetics (x, y, text, ...), optionally applies a statistical transform
// (Stat) and draws the result with a Geom:
//
//     p := &oxyplot.Plot{Title: "Iodate", Data: df}
//     p.Add(&oxyplot.Layer{
//         DataMapping: oxyplot.AesMapping{"x": "Instrument", "y": "O2µmol/L"},
//         Stat:        oxyplot.StatBoxplot{},
//         Geom:        oxyplot.GeomBoxplot{},
//     })
//     err := p.Save("iodate.svg")
//
// Geoms are broken down into fundamental geoms which render to Grobs, the
// gonum plotters finally drawn. String fields mapped to x or y make the
// scale discrete: its levels are placed at 0, 1, 2... in order of first
// appearance.
package oxyplot
