package linear

import (
	"github.com/YuminosukeSato/mllab/core/model"
	"github.com/YuminosukeSato/mllab/core/parallel"
	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/pkg/log"
)

const (
	// DefaultRegressionLearningRate は GradientDescentRegressor の既定の学習率
	DefaultRegressionLearningRate = 0.01
	// DefaultEpochs は勾配降下法の既定のエポック数
	DefaultEpochs = 100
)

// LineParams は単回帰直線 y = Slope*x + Intercept のパラメータ
type LineParams struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Predict は Slope*x + Intercept を返す
func (p LineParams) Predict(x float64) float64 {
	return p.Slope*x + p.Intercept
}

// FitLine は全バッチ勾配降下法で平均二乗誤差を最小化する直線を求める。
// 各行の X[i][0] のみを使い、それ以降の列は無視する。
// 傾きと切片は 0 から始まり、各エポックで
//
//	dSlope     = (-2/n) Σ x_i (y_i - pred_i)
//	dIntercept = (-2/n) Σ (y_i - pred_i)
//
// を計算して一度だけ更新する。発散した場合はエラーではなく ConvergenceWarning を出す。
func FitLine(X [][]float64, y []float64, cfg GDConfig) (LineParams, error) {
	const op = "FitLine"
	n := len(X)
	if n == 0 {
		return LineParams{}, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return LineParams{}, errors.NewDimensionError(op, n, len(y), 0)
	}
	for _, row := range X {
		if len(row) == 0 {
			return LineParams{}, errors.NewDimensionError(op, 1, 0, 1)
		}
	}
	if err := cfg.Validate(); err != nil {
		return LineParams{}, err
	}

	var p LineParams
	var diverged error
	nf := float64(n)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		var gradSlope, gradIntercept float64
		for i, row := range X {
			x := row[0]
			residual := y[i] - p.Predict(x)
			gradSlope += x * residual
			gradIntercept += residual
		}
		gradSlope *= -2 / nf
		gradIntercept *= -2 / nf

		p.Slope -= cfg.LearningRate * gradSlope
		p.Intercept -= cfg.LearningRate * gradIntercept

		// 最初に発散したエポックだけを記録し、学習は最後まで続ける
		if diverged == nil {
			diverged = errors.CheckScalar("slope_update", p.Slope, epoch+1)
		}
		if diverged == nil {
			diverged = errors.CheckScalar("intercept_update", p.Intercept, epoch+1)
		}
	}

	if diverged != nil {
		errors.Warn(errors.NewConvergenceWarning("GradientDescentRegressor", cfg.Epochs, diverged.Error()))
	}
	return p, nil
}

// GradientDescentRegressor は勾配降下法で学習する単回帰モデル。
// 学習のたびにパラメータは丸ごと置き換えられる。同じインスタンスを並行に学習させてはいけない。
type GradientDescentRegressor struct {
	model.BaseEstimator

	cfg    GDConfig
	params LineParams
}

// NewGradientDescentRegressor は学習率0.01、100エポックを既定とする回帰モデルを作成する
func NewGradientDescentRegressor(opts ...Option) *GradientDescentRegressor {
	return &GradientDescentRegressor{cfg: newConfig(DefaultRegressionLearningRate, DefaultEpochs, opts)}
}

// Fit は設定済みのハイパーパラメータで学習する
func (r *GradientDescentRegressor) Fit(X [][]float64, y []float64) error {
	return r.Train(X, y, r.cfg.LearningRate, r.cfg.Epochs)
}

// Train は指定したハイパーパラメータで学習する。エラー時は以前の状態が保たれる。
func (r *GradientDescentRegressor) Train(X [][]float64, y []float64, learningRate float64, epochs int) error {
	logger := log.GetLoggerWithName("linear").With(log.ModelNameKey, "GradientDescentRegressor")
	logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(X),
		log.LearningRateKey, learningRate,
		log.EpochsKey, epochs,
	)

	params, err := FitLine(X, y, GDConfig{LearningRate: learningRate, Epochs: epochs})
	if err != nil {
		logger.Error("fit failed", err, log.OperationKey, log.OperationFit)
		return err
	}

	r.params = params
	r.SetFitted()

	logger.Debug("fit finished",
		log.OperationKey, log.OperationFit,
		"slope", params.Slope,
		"intercept", params.Intercept,
	)
	return nil
}

// Predict は slope*x + intercept を返す。未学習のモデルは0を返す。
func (r *GradientDescentRegressor) Predict(x float64) float64 {
	return r.Params().Predict(x)
}

// PredictBatch は各行の X[i][0] に対する予測値を返す
func (r *GradientDescentRegressor) PredictBatch(X [][]float64) ([]float64, error) {
	if err := r.CheckFitted("GradientDescentRegressor", "PredictBatch"); err != nil {
		return nil, err
	}
	for i, row := range X {
		if len(row) == 0 {
			return nil, errors.Wrapf(errors.ErrRaggedRows, "GradientDescentRegressor.PredictBatch: row %d is empty", i)
		}
	}
	p := r.Params()
	return parallel.MapRows(X, parallel.DefaultThreshold, func(row []float64) float64 {
		return p.Predict(row[0])
	}), nil
}

// Params は現在のパラメータのコピーを返す
func (r *GradientDescentRegressor) Params() LineParams {
	return r.params
}

// Config は Fit が使うハイパーパラメータを返す
func (r *GradientDescentRegressor) Config() GDConfig {
	return r.cfg
}
