// Package model_selection はラベル付きデータの訓練用・テスト用への分割を提供します。
package model_selection

import (
	"math"
	"math/rand"

	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/pkg/log"
)

// DefaultTestSize は呼び出し側が指定しない場合のテスト用の割合
const DefaultTestSize = 0.3

// Partition は TrainTestSplit の結果。行は入力と共有されるため読み取り専用として扱う。
type Partition struct {
	XTrain [][]float64
	YTrain []float64
	XTest  [][]float64
	YTest  []float64
}

type splitConfig struct {
	rng *rand.Rand
}

// SplitOption は TrainTestSplit の設定を行う関数
type SplitOption func(*splitConfig)

// WithRandomState はシャッフルを再現可能にする
func WithRandomState(seed int64) SplitOption {
	return func(c *splitConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand は r を乱数源として使う。r は並行利用に安全ではないため、
// ゴルーチン間で共有する場合は呼び出しを直列化すること。
func WithRand(r *rand.Rand) SplitOption {
	return func(c *splitConfig) {
		if r != nil {
			c.rng = r
		}
	}
}

// TrainTestSplit は行の添字を Fisher–Yates で一度だけシャッフルし、
// floor(n*(1-testSize)) の位置で切る。切れ目より前が訓練用、残りがテスト用になる。
// 行とラベルの対応は保たれる。
func TrainTestSplit(X [][]float64, y []float64, testSize float64, opts ...SplitOption) (Partition, error) {
	n := len(X)
	if n == 0 {
		return Partition{}, errors.NewModelError("TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return Partition{}, errors.NewDimensionError("TrainTestSplit", n, len(y), 0)
	}
	if !(testSize > 0 && testSize < 1) {
		return Partition{}, errors.NewValidationError("test_size", "must be in the open interval (0, 1)", testSize)
	}

	cfg := &splitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := cfg.rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	cut := int(math.Floor(float64(n) * (1 - testSize)))
	p := Partition{
		XTrain: make([][]float64, 0, cut),
		YTrain: make([]float64, 0, cut),
		XTest:  make([][]float64, 0, n-cut),
		YTest:  make([]float64, 0, n-cut),
	}
	for k, idx := range perm {
		if k < cut {
			p.XTrain = append(p.XTrain, X[idx])
			p.YTrain = append(p.YTrain, y[idx])
		} else {
			p.XTest = append(p.XTest, X[idx])
			p.YTest = append(p.YTest, y[idx])
		}
	}

	log.GetLoggerWithName("model_selection").Debug("train/test split",
		log.OperationKey, log.OperationSplit,
		log.SamplesKey, n,
		log.TestSizeKey, testSize,
		"train.samples", len(p.XTrain),
		"test.samples", len(p.XTest),
	)
	return p, nil
}
