// Package metrics はモデル評価のための指標(正解率、2×2混同行列、回帰誤差)を提供します。
package metrics

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

// AccuracyPercent は添字ごとに一致した割合を 0〜100 で返す。
// 空の入力や長さの異なる入力では NaN を返す。
func AccuracyPercent(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return math.NaN()
	}
	correct := 0
	for i, v := range yTrue {
		if v == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)) * 100
}

// Accuracy は正解率を 0〜1 で返す。空の入力と長さの不一致はエラー。
func Accuracy(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	return AccuracyPercent(yTrue, yPred) / 100, nil
}

// ConfusionMatrix は二値ラベル {0,1} の 2×2 集計で、[actual][predicted] で引く。
//
//	[0][0] true negatives   [0][1] false positives
//	[1][0] false negatives  [1][1] true positives
type ConfusionMatrix [2][2]int

// NewConfusionMatrix は yTrue の各添字について集計する。0 と 1 以外のラベルを
// 含む組(および yPred に対応する要素がない添字)は数えない。
func NewConfusionMatrix(yTrue, yPred []float64) ConfusionMatrix {
	var cm ConfusionMatrix
	for i, actual := range yTrue {
		if i >= len(yPred) {
			break
		}
		a, okA := binaryIndex(actual)
		p, okP := binaryIndex(yPred[i])
		if okA && okP {
			cm[a][p]++
		}
	}
	return cm
}

func binaryIndex(v float64) (int, bool) {
	switch v {
	case 0:
		return 0, true
	case 1:
		return 1, true
	}
	return 0, false
}

func (cm ConfusionMatrix) TN() int { return cm[0][0] }
func (cm ConfusionMatrix) FP() int { return cm[0][1] }
func (cm ConfusionMatrix) FN() int { return cm[1][0] }
func (cm ConfusionMatrix) TP() int { return cm[1][1] }

// Total は集計された組の数
func (cm ConfusionMatrix) Total() int {
	return cm.TN() + cm.FP() + cm.FN() + cm.TP()
}

// Accuracy は (TP+TN)/Total を返す。何も集計されていなければ NaN。
func (cm ConfusionMatrix) Accuracy() float64 {
	if cm.Total() == 0 {
		return math.NaN()
	}
	return float64(cm.TP()+cm.TN()) / float64(cm.Total())
}

// Precision は TP/(TP+FP) を返す。陽性の予測がなければ0を返し、
// UndefinedMetricWarning を出す。
func (cm ConfusionMatrix) Precision() float64 {
	return ratio("precision", "no predicted positive samples", cm.TP(), cm.TP()+cm.FP())
}

// Recall は TP/(TP+FN) を返す。実際の陽性がなければ0を返し、
// UndefinedMetricWarning を出す。
func (cm ConfusionMatrix) Recall() float64 {
	return ratio("recall", "no true positive samples", cm.TP(), cm.TP()+cm.FN())
}

// F1 は適合率と再現率の調和平均を返す。両方0なら0。
func (cm ConfusionMatrix) F1() float64 {
	p, r := cm.Precision(), cm.Recall()
	return errors.SafeDivide(2*p*r, p+r)
}

// String は混同行列を小さな表として返す
func (cm ConfusionMatrix) String() string {
	return fmt.Sprintf("              Pred 0  Pred 1\nActual 0  %8d %7d\nActual 1  %8d %7d",
		cm.TN(), cm.FP(), cm.FN(), cm.TP())
}

func ratio(metric, condition string, num, den int) float64 {
	if den == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning(metric, condition, 0))
		return 0
	}
	return float64(num) / float64(den)
}
