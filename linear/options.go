package linear

import (
	"math"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

// GDConfig は勾配降下法のハイパーパラメータ
type GDConfig struct {
	LearningRate float64
	Epochs       int
}

// Option は勾配降下法モデルの設定を行う関数
type Option func(*GDConfig)

// WithLearningRate は各更新のステップ幅を設定する
func WithLearningRate(lr float64) Option {
	return func(c *GDConfig) {
		c.LearningRate = lr
	}
}

// WithEpochs は全バッチ更新の回数を設定する
func WithEpochs(epochs int) Option {
	return func(c *GDConfig) {
		c.Epochs = epochs
	}
}

// Validate は正の有限値でない学習率と負のエポック数を拒否する
func (c GDConfig) Validate() error {
	if !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 0) {
		return errors.NewValidationError("learning_rate", "must be a positive finite number", c.LearningRate)
	}
	if c.Epochs < 0 {
		return errors.NewValidationError("epochs", "must be non-negative", c.Epochs)
	}
	return nil
}

func newConfig(lr float64, epochs int, opts []Option) GDConfig {
	cfg := GDConfig{LearningRate: lr, Epochs: epochs}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
