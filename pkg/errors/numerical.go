package errors

import (
	"math"
)

// CheckNumericalStability は値に NaN または Inf が含まれていれば
// NumericalInstabilityError を返します。
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// CheckScalar は単一のスカラー値の数値的安定性を検査します。
func CheckScalar(operation string, value float64, iteration int) error {
	return CheckNumericalStability(operation, []float64{value}, iteration)
}

// SafeDivide は分母が0またはほぼ0の場合に0を返します。
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}

// StabilizeExp は Inf へのオーバーフローを避けるため入力を制限して exp を計算します。
func StabilizeExp(value float64) float64 {
	const maxExp = 700.0 // exp(700) は float64 の最大値に近い
	if value > maxExp {
		return math.Exp(maxExp)
	}
	if value < -maxExp {
		return 0
	}
	return math.Exp(value)
}
