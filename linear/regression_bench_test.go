//go:build go1.22

package linear

import (
	"math/rand/v2"
	"testing"
)

// createBenchmarkData はベンチマーク用のデータを生成する
func createBenchmarkData(rows, cols int) ([][]float64, []float64, []float64) {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	trueWeights := make([]float64, cols)
	for j := range trueWeights {
		trueWeights[j] = float64(j+1) * 0.5
	}

	X := make([][]float64, rows)
	y := make([]float64, rows)
	labels := make([]float64, rows)
	for i := 0; i < rows; i++ {
		X[i] = make([]float64, cols)
		sum := 1.0 // 切片
		for j := 0; j < cols; j++ {
			X[i][j] = rng.Float64()*2.0 - 1.0
			sum += X[i][j] * trueWeights[j]
		}
		y[i] = sum + (rng.Float64()-0.5)*0.1
		if sum > 1 {
			labels[i] = 1
		}
	}
	return X, y, labels
}

var benchSizes = []struct {
	name string
	rows int
	cols int
}{
	{"Small_100x10", 100, 10},
	{"Medium_1000x10", 1000, 10}, // 並列処理の閾値
	{"Medium_2000x10", 2000, 10},
	{"Large_10000x20", 10000, 20},
}

func BenchmarkLinearRegressionFit(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			X, y, _ := createBenchmarkData(size.rows, size.cols)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := NewLinearRegression().Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLogisticRegressionFit(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			X, _, labels := createBenchmarkData(size.rows, size.cols)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := NewLogisticRegression(WithEpochs(50)).Fit(X, labels); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// 閾値の前後で逐次処理と並列処理を比較する
func BenchmarkLogisticRegressionPredictBatch(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			X, _, labels := createBenchmarkData(size.rows, size.cols)
			m := NewLogisticRegression(WithEpochs(10))
			if err := m.Fit(X, labels); err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := m.PredictBatch(X); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
