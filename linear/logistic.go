package linear

import (
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/mllab/core/model"
	"github.com/YuminosukeSato/mllab/core/parallel"
	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/pkg/log"
)

// DefaultLogisticLearningRate は LogisticRegression の既定の学習率
const DefaultLogisticLearningRate = 0.1

// DecisionThreshold 以上の確率をクラス1とする
const DecisionThreshold = 0.5

// LogisticParams は二値ロジスティック回帰の重みとバイアス
type LogisticParams struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Probability は sigmoid(w·x + b) を返す。len(x) は len(Weights) と等しくなければならない。
func (p LogisticParams) Probability(x []float64) float64 {
	return sigmoid(floats.Dot(x, p.Weights) + p.Bias)
}

// Predict は確率が0.5以上なら1、それ以外は0を返す
func (p LogisticParams) Predict(x []float64) float64 {
	if p.Probability(x) >= DecisionThreshold {
		return 1
	}
	return 0
}

// Clone はディープコピーを返す
func (p LogisticParams) Clone() LogisticParams {
	return LogisticParams{Weights: append([]float64(nil), p.Weights...), Bias: p.Bias}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + errors.StabilizeExp(-z))
}

// FitLogistic は交差エントロピーの勾配による全バッチ勾配降下法で重みを求める。
// 重みは行の幅に合わせて確保され、バイアスとともに 0 から始まる。
// 各エポックで全サンプルの勾配
//
//	dw_j += (sigmoid(w·x + b) - y) * x_j / n
//	db   += (sigmoid(w·x + b) - y) / n
//
// を集計してから一度だけ更新する。ラベルが {0,1} かどうかは検査しない。
func FitLogistic(X [][]float64, y []float64, cfg GDConfig) (LogisticParams, error) {
	width, err := model.ValidateXY("FitLogistic", X, y)
	if err != nil {
		return LogisticParams{}, err
	}
	if err := cfg.Validate(); err != nil {
		return LogisticParams{}, err
	}

	p := LogisticParams{Weights: make([]float64, width)}
	dw := make([]float64, width)
	nf := float64(len(X))
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for j := range dw {
			dw[j] = 0
		}
		var db float64
		for i, row := range X {
			residual := p.Probability(row) - y[i]
			floats.AddScaled(dw, residual/nf, row)
			db += residual / nf
		}
		floats.AddScaled(p.Weights, -cfg.LearningRate, dw)
		p.Bias -= cfg.LearningRate * db
	}

	if err := errors.CheckNumericalStability("gradient_update", append(p.Clone().Weights, p.Bias), cfg.Epochs); err != nil {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", cfg.Epochs, err.Error()))
	}
	return p, nil
}

// LogisticRegression は勾配降下法で学習する二値ロジスティック回帰モデル。
// 学習のたびに重みとバイアスは 0 から学習し直される。
type LogisticRegression struct {
	model.BaseEstimator

	cfg    GDConfig
	params LogisticParams
}

// NewLogisticRegression は学習率0.1、100エポックを既定とする分類器を作成する
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	return &LogisticRegression{cfg: newConfig(DefaultLogisticLearningRate, DefaultEpochs, opts)}
}

// Fit は設定済みのハイパーパラメータで学習する
func (m *LogisticRegression) Fit(X [][]float64, y []float64) error {
	return m.Train(X, y, m.cfg.LearningRate, m.cfg.Epochs)
}

// Train は指定したハイパーパラメータで学習する。エラー時は以前の状態が保たれる。
func (m *LogisticRegression) Train(X [][]float64, y []float64, learningRate float64, epochs int) error {
	logger := log.GetLoggerWithName("linear").With(log.ModelNameKey, "LogisticRegression")
	logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(X),
		log.LearningRateKey, learningRate,
		log.EpochsKey, epochs,
	)

	params, err := FitLogistic(X, y, GDConfig{LearningRate: learningRate, Epochs: epochs})
	if err != nil {
		logger.Error("fit failed", err, log.OperationKey, log.OperationFit)
		return err
	}
	m.params = params
	m.SetFitted()

	logger.Debug("fit finished",
		log.OperationKey, log.OperationFit,
		log.FeaturesKey, len(params.Weights),
		"bias", params.Bias,
	)
	return nil
}

// PredictProba は x がクラス1である確率を返す
func (m *LogisticRegression) PredictProba(x []float64) (float64, error) {
	if err := m.checkRow("PredictProba", x); err != nil {
		return 0, err
	}
	return m.params.Probability(x), nil
}

// Predict は x のクラス(0 または 1)を返す
func (m *LogisticRegression) Predict(x []float64) (float64, error) {
	if err := m.checkRow("Predict", x); err != nil {
		return 0, err
	}
	return m.params.Predict(x), nil
}

// PredictBatch は各行のクラスを返す
func (m *LogisticRegression) PredictBatch(X [][]float64) ([]float64, error) {
	if err := m.CheckFitted("LogisticRegression", "PredictBatch"); err != nil {
		return nil, err
	}
	if err := model.CheckWidth("LogisticRegression.PredictBatch", X, len(m.params.Weights)); err != nil {
		return nil, err
	}
	p := m.params
	return parallel.MapRows(X, parallel.DefaultThreshold, p.Predict), nil
}

// PredictProbaBatch は各行がクラス1である確率を返す
func (m *LogisticRegression) PredictProbaBatch(X [][]float64) ([]float64, error) {
	if err := m.CheckFitted("LogisticRegression", "PredictProbaBatch"); err != nil {
		return nil, err
	}
	if err := model.CheckWidth("LogisticRegression.PredictProbaBatch", X, len(m.params.Weights)); err != nil {
		return nil, err
	}
	p := m.params
	return parallel.MapRows(X, parallel.DefaultThreshold, p.Probability), nil
}

// Params は学習した重みとバイアスのコピーを返す
func (m *LogisticRegression) Params() LogisticParams {
	return m.params.Clone()
}

// Config は Fit が使うハイパーパラメータを返す
func (m *LogisticRegression) Config() GDConfig {
	return m.cfg
}

func (m *LogisticRegression) checkRow(method string, x []float64) error {
	if err := m.CheckFitted("LogisticRegression", method); err != nil {
		return err
	}
	if len(x) != len(m.params.Weights) {
		return errors.NewDimensionError("LogisticRegression."+method, len(m.params.Weights), len(x), 1)
	}
	return nil
}
