// Package dataset は学習用データセット(特徴量行列・ラベル・特徴量名)と
// 組み込みの教材データを提供します。
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

// Dataset は特徴量行列とラベルベクトル、特徴量の表示名の組です。
// Features の各行は同じ長さで、len(Labels) == len(Features) です。
type Dataset struct {
	Name         string
	Features     [][]float64
	Labels       []float64
	FeatureNames []string

	// Categories はカテゴリ値で符号化された特徴量の値ラベルです。
	// Categories[j][v] が特徴量 j の値 v の名前になります。数値特徴量では nil。
	Categories [][]string
}

// Validate は形状の不変条件を検査します。原因ごとに異なるエラーを返します。
func (d *Dataset) Validate() error {
	if len(d.Features) == 0 {
		return errors.NewModelError("Dataset.Validate", "no rows", errors.ErrEmptyData)
	}
	if len(d.Labels) != len(d.Features) {
		return errors.NewDimensionError("Dataset.Validate", len(d.Features), len(d.Labels), 0)
	}
	width := len(d.Features[0])
	if width == 0 {
		return errors.NewModelError("Dataset.Validate", "no features", errors.ErrEmptyData)
	}
	for i, row := range d.Features {
		if len(row) != width {
			return errors.Wrapf(errors.ErrRaggedRows, "row %d has %d features, want %d", i, len(row), width)
		}
	}
	if len(d.FeatureNames) != width {
		return errors.NewDimensionError("Dataset.Validate", width, len(d.FeatureNames), 1)
	}
	return nil
}

// NumSamples は行数を返す
func (d *Dataset) NumSamples() int {
	return len(d.Features)
}

// NumFeatures は行の幅を返す。空のデータセットでは0。
func (d *Dataset) NumFeatures() int {
	if len(d.Features) == 0 {
		return 0
	}
	return len(d.Features[0])
}

// Column は特徴量 j の列のコピーを返す
func (d *Dataset) Column(j int) []float64 {
	col := make([]float64, len(d.Features))
	for i, row := range d.Features {
		col[i] = row[j]
	}
	return col
}

// Matrix は特徴量を gonum の行列として返します。空のデータセットには使えません。
func (d *Dataset) Matrix() (*mat.Dense, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	n, p := d.NumSamples(), d.NumFeatures()
	data := make([]float64, 0, n*p)
	for _, row := range d.Features {
		data = append(data, row...)
	}
	return mat.NewDense(n, p, data), nil
}

// CategoryName は特徴量 j の値 v の名前を返す。数値特徴量や範囲外の値では ""。
func (d *Dataset) CategoryName(j int, v float64) string {
	if j < 0 || j >= len(d.Categories) {
		return ""
	}
	names := d.Categories[j]
	idx := int(v)
	if float64(idx) != v || idx < 0 || idx >= len(names) {
		return ""
	}
	return names[idx]
}

// Clone はディープコピーを返す
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Name:         d.Name,
		Features:     make([][]float64, len(d.Features)),
		Labels:       append([]float64(nil), d.Labels...),
		FeatureNames: append([]string(nil), d.FeatureNames...),
	}
	for i, row := range d.Features {
		out.Features[i] = append([]float64(nil), row...)
	}
	if d.Categories != nil {
		out.Categories = make([][]string, len(d.Categories))
		for j, names := range d.Categories {
			out.Categories[j] = append([]string(nil), names...)
		}
	}
	return out
}
