package model

import (
	"github.com/YuminosukeSato/mllab/pkg/errors"
)

// ValidateXY は学習データの形状を検査し、行の幅(特徴量数)を返す。
// 空データ、行数とラベル数の不一致、行の長さの不揃いはそれぞれ別のエラーになる。
func ValidateXY(op string, X [][]float64, y []float64) (int, error) {
	if len(X) == 0 {
		return 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(y) != len(X) {
		return 0, errors.NewDimensionError(op, len(X), len(y), 0)
	}
	width := len(X[0])
	if width == 0 {
		return 0, errors.NewModelError(op, "rows have no features", errors.ErrEmptyData)
	}
	if err := CheckWidth(op, X, width); err != nil {
		return 0, err
	}
	return width, nil
}

// CheckWidth は全ての行が width 列であることを検査する。
func CheckWidth(op string, X [][]float64, width int) error {
	for i, row := range X {
		if len(row) != width {
			return errors.Wrapf(errors.ErrRaggedRows, "%s: row %d has %d features, want %d", op, i, len(row), width)
		}
	}
	return nil
}
