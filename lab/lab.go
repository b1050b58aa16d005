// Package lab は各教材の一連の流れ(分割・学習・予測・評価)をまとめて実行します。
package lab

import (
	"math/rand"

	"github.com/YuminosukeSato/mllab/dataset"
	"github.com/YuminosukeSato/mllab/explain"
	"github.com/YuminosukeSato/mllab/linear"
	"github.com/YuminosukeSato/mllab/metrics"
	"github.com/YuminosukeSato/mllab/model_selection"
	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/pkg/log"
	"github.com/YuminosukeSato/mllab/preprocessing"
	"github.com/YuminosukeSato/mllab/tree"
)

// 各教材の既定のハイパーパラメータ
const (
	LinearLearningRate   = 0.01
	LogisticLearningRate = 0.1
	DefaultEpochs        = 100
	DefaultTreeDepth     = 3
)

type config struct {
	learningRate float64
	epochs       int
	testSize     float64
	maxDepth     int
	scale        bool
	data         *dataset.Dataset
	rng          *rand.Rand
	seed         *int64
}

// Option は教材の既定値を上書きする
type Option func(*config)

// WithLearningRate は勾配降下法のステップ幅を設定する
func WithLearningRate(lr float64) Option { return func(c *config) { c.learningRate = lr } }

// WithEpochs は勾配降下法のエポック数を設定する
func WithEpochs(n int) Option { return func(c *config) { c.epochs = n } }

// WithTestSize はテスト用の割合を設定する
func WithTestSize(f float64) Option { return func(c *config) { c.testSize = f } }

// WithMaxDepth は決定木の深さの上限を設定する
func WithMaxDepth(d int) Option { return func(c *config) { c.maxDepth = d } }

// WithScaling はロジスティック回帰の前に特徴量を標準化する
func WithScaling(on bool) Option { return func(c *config) { c.scale = on } }

// WithDataset は教材の組み込みデータセットを置き換える
func WithDataset(d *dataset.Dataset) Option { return func(c *config) { c.data = d } }

// WithSeed は訓練用・テスト用の分割を再現可能にする
func WithSeed(seed int64) Option { return func(c *config) { c.seed = &seed } }

// WithRand は分割に r を使う
func WithRand(r *rand.Rand) Option { return func(c *config) { c.rng = r } }

func newConfig(lr float64, data func() *dataset.Dataset, opts []Option) *config {
	c := &config{
		learningRate: lr,
		epochs:       DefaultEpochs,
		testSize:     model_selection.DefaultTestSize,
		maxDepth:     DefaultTreeDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.data == nil {
		c.data = data()
	}
	return c
}

func (c *config) split() (model_selection.Partition, error) {
	if err := c.data.Validate(); err != nil {
		return model_selection.Partition{}, err
	}
	var opts []model_selection.SplitOption
	switch {
	case c.rng != nil:
		opts = append(opts, model_selection.WithRand(c.rng))
	case c.seed != nil:
		opts = append(opts, model_selection.WithRandomState(*c.seed))
	}
	return model_selection.TrainTestSplit(c.data.Features, c.data.Labels, c.testSize, opts...)
}

// LinearResult は RunLinear の結果
type LinearResult struct {
	Dataset     *dataset.Dataset
	Split       model_selection.Partition
	Params      linear.LineParams
	Predictions []float64
	MSE         float64
	// Reference は訓練行に対する最小二乗法の解析解。計算できない場合
	// (x の異なる値が2つ未満など)は nil。
	Reference *linear.LineParams
}

// RunLinear はデータを分割し、訓練行で勾配降下法により直線を学習して、
// テスト行での MSE を測る。
func RunLinear(opts ...Option) (*LinearResult, error) {
	c := newConfig(LinearLearningRate, dataset.Linear, opts)
	logger := log.GetLoggerWithName("lab").With(log.ModelNameKey, "GradientDescentRegressor")

	p, err := c.split()
	if err != nil {
		return nil, err
	}
	if len(p.XTrain) == 0 || len(p.XTest) == 0 {
		return nil, errors.NewValueError("RunLinear", "train and test partitions must both be non-empty")
	}

	reg := linear.NewGradientDescentRegressor(linear.WithLearningRate(c.learningRate), linear.WithEpochs(c.epochs))
	if err := reg.Fit(p.XTrain, p.YTrain); err != nil {
		return nil, err
	}
	preds, err := reg.PredictBatch(p.XTest)
	if err != nil {
		return nil, err
	}
	mse, err := metrics.MSE(p.YTest, preds)
	if err != nil {
		return nil, err
	}

	res := &LinearResult{Dataset: c.data, Split: p, Params: reg.Params(), Predictions: preds, MSE: mse}
	ols := linear.NewLinearRegression()
	firstColumn := make([][]float64, len(p.XTrain))
	for i, row := range p.XTrain {
		firstColumn[i] = row[:1]
	}
	if err := ols.Fit(firstColumn, p.YTrain); err != nil {
		logger.Warn("closed-form reference unavailable", log.ErrAttrKey, err)
	} else if line, err := ols.Line(); err == nil {
		res.Reference = &line
	}

	logger.Info("linear lab finished",
		log.PhaseKey, log.PhaseTesting,
		log.LossKey, mse,
		log.SamplesKey, len(p.XTest),
	)
	return res, nil
}

// Prompt はこの結果についての説明依頼文を返す
func (r *LinearResult) Prompt() string {
	return explain.LinearRegressionPrompt(r.Params, r.MSE)
}

// LogisticResult は RunLogistic の結果
type LogisticResult struct {
	Dataset         *dataset.Dataset
	Split           model_selection.Partition
	Params          linear.LogisticParams
	Predictions     []float64
	AccuracyPercent float64
	Confusion       metrics.ConfusionMatrix
	// Scaler は特徴量を標準化した場合に設定される。その場合 Params は
	// 標準化後の特徴量に対するもの。
	Scaler *preprocessing.StandardScaler
}

// RunLogistic はデータを分割し、訓練行でロジスティック回帰を学習して、
// テスト行で評価する。
func RunLogistic(opts ...Option) (*LogisticResult, error) {
	c := newConfig(LogisticLearningRate, dataset.Iris, opts)

	p, err := c.split()
	if err != nil {
		return nil, err
	}
	if len(p.XTrain) == 0 || len(p.XTest) == 0 {
		return nil, errors.NewValueError("RunLogistic", "train and test partitions must both be non-empty")
	}

	res := &LogisticResult{Dataset: c.data, Split: p}
	XTrain, XTest := p.XTrain, p.XTest
	if c.scale {
		res.Scaler = preprocessing.NewStandardScalerDefault()
		if XTrain, err = res.Scaler.FitTransform(XTrain); err != nil {
			return nil, err
		}
		if XTest, err = res.Scaler.Transform(XTest); err != nil {
			return nil, err
		}
	}

	clf := linear.NewLogisticRegression(linear.WithLearningRate(c.learningRate), linear.WithEpochs(c.epochs))
	if err := clf.Fit(XTrain, p.YTrain); err != nil {
		return nil, err
	}
	if res.Predictions, err = clf.PredictBatch(XTest); err != nil {
		return nil, err
	}
	res.Params = clf.Params()
	res.AccuracyPercent = metrics.AccuracyPercent(p.YTest, res.Predictions)
	res.Confusion = metrics.NewConfusionMatrix(p.YTest, res.Predictions)

	log.GetLoggerWithName("lab").Info("logistic lab finished",
		log.ModelNameKey, "LogisticRegression",
		log.PhaseKey, log.PhaseTesting,
		log.AccuracyKey, res.AccuracyPercent,
		log.SamplesKey, len(p.XTest),
	)
	return res, nil
}

// Prompt はこの結果についての説明依頼文を返す
func (r *LogisticResult) Prompt() string {
	return explain.LogisticRegressionPrompt(r.AccuracyPercent, r.Confusion)
}

// TreeResult は RunTree の結果
type TreeResult struct {
	Dataset  *dataset.Dataset
	MaxDepth int
	Root     tree.Node
	// TrainAccuracyPercent は木の構築に使った行で測った正解率
	TrainAccuracyPercent float64
}

// RunTree はデータセット全体で決定木を構築する
func RunTree(opts ...Option) (*TreeResult, error) {
	c := newConfig(0, dataset.PlayTennis, opts)
	if err := c.data.Validate(); err != nil {
		return nil, err
	}

	clf := tree.NewDecisionTreeClassifier(tree.WithMaxDepth(c.maxDepth))
	if err := clf.Train(c.data.Features, c.data.Labels); err != nil {
		return nil, err
	}
	preds, err := clf.PredictBatch(c.data.Features)
	if err != nil {
		return nil, err
	}
	res := &TreeResult{
		Dataset:              c.data,
		MaxDepth:             c.maxDepth,
		Root:                 clf.Root(),
		TrainAccuracyPercent: metrics.AccuracyPercent(c.data.Labels, preds),
	}

	log.GetLoggerWithName("lab").Info("tree lab finished",
		log.ModelNameKey, "DecisionTreeClassifier",
		log.MaxDepthKey, c.maxDepth,
		log.DepthKey, clf.Depth(),
		log.LeavesKey, clf.NumLeaves(),
		log.AccuracyKey, res.TrainAccuracyPercent,
	)
	return res, nil
}

// Prompt はこの結果についての説明依頼文を返す
func (r *TreeResult) Prompt() string {
	return explain.DecisionTreePrompt(r.MaxDepth)
}
