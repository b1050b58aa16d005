// Package visualize は学習結果を gonum/plot の散布図として描画します。
package visualize

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/mllab/linear"
	"github.com/YuminosukeSato/mllab/pkg/errors"
)

// ChartSize は保存する図の幅と高さ
const ChartSize = 5 * vg.Inch

var (
	pointColor    = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	lineColor     = color.RGBA{R: 255, A: 255}
	classColors   = []color.RGBA{{R: 40, G: 90, B: 220, A: 255}, {R: 230, G: 120, B: 20, A: 255}}
	boundaryColor = color.RGBA{A: 255}
)

// Save は p を path に書き出す。形式は拡張子(png, svg, pdf など)で決まる。
func Save(p *plot.Plot, path string) error {
	if err := p.Save(ChartSize, ChartSize, path); err != nil {
		return errors.Wrapf(err, "save chart %s", path)
	}
	return nil
}

// RegressionPlot は X[i][0] に対する y の散布図と、学習した直線を描く。
func RegressionPlot(X [][]float64, y []float64, line linear.LineParams, xLabel string) (*plot.Plot, error) {
	if len(X) == 0 {
		return nil, errors.NewModelError("RegressionPlot", "empty data", errors.ErrEmptyData)
	}
	if len(y) != len(X) {
		return nil, errors.NewDimensionError("RegressionPlot", len(X), len(y), 0)
	}

	p := plot.New()
	p.Title.Text = "Linear Regression"
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "y"

	pts := make(plotter.XYs, len(X))
	minX, maxX := math.Inf(1), math.Inf(-1)
	for i, row := range X {
		if len(row) == 0 {
			return nil, errors.NewDimensionError("RegressionPlot", 1, 0, 1)
		}
		pts[i].X, pts[i].Y = row[0], y[i]
		minX, maxX = math.Min(minX, row[0]), math.Max(maxX, row[0])
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "scatter")
	}
	s.Color = pointColor

	l, err := plotter.NewLine(plotter.XYs{
		{X: minX, Y: line.Predict(minX)},
		{X: maxX, Y: line.Predict(maxX)},
	})
	if err != nil {
		return nil, errors.Wrap(err, "fitted line")
	}
	l.Color = lineColor
	l.LineStyle.Width = vg.Points(2)

	p.Add(s, l, plotter.NewGrid())
	p.Legend.Add("data", s)
	p.Legend.Add("fit", l)
	return p, nil
}

// ClassificationPlot は2特徴量のデータをクラスごとに色分けして描き、
// ロジスティック回帰の決定境界 w0*x0 + w1*x1 + b = 0 を重ねる。
// w1 が 0 の場合、境界は縦線になる。
func ClassificationPlot(X [][]float64, y []float64, params linear.LogisticParams, featureNames []string) (*plot.Plot, error) {
	if len(X) == 0 {
		return nil, errors.NewModelError("ClassificationPlot", "empty data", errors.ErrEmptyData)
	}
	if len(y) != len(X) {
		return nil, errors.NewDimensionError("ClassificationPlot", len(X), len(y), 0)
	}
	if len(params.Weights) != 2 {
		return nil, errors.NewDimensionError("ClassificationPlot", 2, len(params.Weights), 1)
	}

	p := plot.New()
	p.Title.Text = "Logistic Regression"
	if len(featureNames) == 2 {
		p.X.Label.Text = featureNames[0]
		p.Y.Label.Text = featureNames[1]
	}

	classes := [2]plotter.XYs{}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, row := range X {
		if len(row) != 2 {
			return nil, errors.NewDimensionError("ClassificationPlot", 2, len(row), 1)
		}
		k := 0
		if y[i] == 1 {
			k = 1
		}
		classes[k] = append(classes[k], plotter.XY{X: row[0], Y: row[1]})
		minX, maxX = math.Min(minX, row[0]), math.Max(maxX, row[0])
		minY, maxY = math.Min(minY, row[1]), math.Max(maxY, row[1])
	}

	for k, pts := range classes {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, errors.Wrap(err, "scatter")
		}
		s.Color = classColors[k]
		if k == 1 {
			s.Shape = draw.TriangleGlyph{}
		}
		p.Add(s)
		p.Legend.Add(classLabel(k), s)
	}

	w0, w1, b := params.Weights[0], params.Weights[1], params.Bias
	var boundary plotter.XYs
	switch {
	case w1 != 0:
		boundary = plotter.XYs{
			{X: minX, Y: -(w0*minX + b) / w1},
			{X: maxX, Y: -(w0*maxX + b) / w1},
		}
	case w0 != 0:
		x := -b / w0
		boundary = plotter.XYs{{X: x, Y: minY}, {X: x, Y: maxY}}
	}
	if boundary != nil {
		l, err := plotter.NewLine(boundary)
		if err != nil {
			return nil, errors.Wrap(err, "decision boundary")
		}
		l.Color = boundaryColor
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
		p.Legend.Add("boundary", l)
		// 境界の外れた部分で軸が広がりすぎないようデータ範囲に合わせる
		p.Y.Min, p.Y.Max = minY-0.5, maxY+0.5
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

func classLabel(k int) string {
	if k == 1 {
		return "class 1"
	}
	return "class 0"
}
