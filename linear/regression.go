// Package linear は線形モデル(勾配降下法による単回帰とロジスティック回帰、
// 正規方程式による最小二乗回帰)を提供します。
package linear

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mllab/core/model"
	"github.com/YuminosukeSato/mllab/core/parallel"
	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/pkg/log"
)

// LinearRegression は正規方程式で解く最小二乗線形回帰モデル。
// 勾配降下法の結果と比較するための基準解として使う。
type LinearRegression struct {
	model.BaseEstimator

	weights   []float64
	intercept float64
}

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit はモデルを訓練データで学習させる
// 正規方程式 w = (X^T * X)^(-1) * X^T * y を使用
func (lr *LinearRegression) Fit(X [][]float64, y []float64) error {
	const op = "LinearRegression.Fit"
	c, err := model.ValidateXY(op, X, y)
	if err != nil {
		return err
	}
	r := len(X)

	// 切片項のために X に 1 の列を追加
	// X_with_intercept = [1, X]
	XWithIntercept := mat.NewDense(r, c+1, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			XWithIntercept.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				XWithIntercept.Set(i, j+1, X[i][j])
			}
		}
	})

	var XTX mat.Dense
	XTX.Mul(XWithIntercept.T(), XWithIntercept)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return errors.NewModelError(op, "singular matrix", errors.ErrSingularMatrix)
	}

	var XTy mat.VecDense
	XTy.MulVec(XWithIntercept.T(), mat.NewVecDense(r, append([]float64(nil), y...)))

	// 重みを計算: (X^T * X)^(-1) * X^T * y
	var w mat.VecDense
	w.MulVec(&XTXInv, &XTy)

	lr.intercept = w.AtVec(0)
	lr.weights = make([]float64, c)
	for j := 0; j < c; j++ {
		lr.weights[j] = w.AtVec(j + 1)
	}
	lr.SetFitted()

	log.GetLoggerWithName("linear").Debug("fit finished",
		log.ModelNameKey, "LinearRegression",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)
	return nil
}

// PredictBatch は各行に対する予測値を返す
func (lr *LinearRegression) PredictBatch(X [][]float64) ([]float64, error) {
	if err := lr.CheckFitted("LinearRegression", "PredictBatch"); err != nil {
		return nil, err
	}
	if err := model.CheckWidth("LinearRegression.PredictBatch", X, len(lr.weights)); err != nil {
		return nil, err
	}
	w, b := lr.weights, lr.intercept
	return parallel.MapRows(X, parallel.DefaultThreshold, func(row []float64) float64 {
		return floats.Dot(row, w) + b
	}), nil
}

// Weights は学習された重み（係数）のコピーを返す
func (lr *LinearRegression) Weights() []float64 {
	return append([]float64(nil), lr.weights...)
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// Line は1特徴量モデルの傾きと切片を返す
func (lr *LinearRegression) Line() (LineParams, error) {
	if err := lr.CheckFitted("LinearRegression", "Line"); err != nil {
		return LineParams{}, err
	}
	if len(lr.weights) != 1 {
		return LineParams{}, errors.NewDimensionError("LinearRegression.Line", 1, len(lr.weights), 1)
	}
	return LineParams{Slope: lr.weights[0], Intercept: lr.intercept}, nil
}
