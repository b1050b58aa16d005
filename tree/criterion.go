package tree

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// entropy はラベル集合のシャノンエントロピー(底2、0 log 0 = 0)を返す。
// 和はラベル値の昇順に取るので、同じ集合に対して常に同じ値になる。
func entropy(labels []float64) float64 {
	n := float64(len(labels))
	if n == 0 {
		return 0
	}
	counts := lo.CountValues(labels)
	h := 0.0
	for _, label := range sortedKeys(counts) {
		p := float64(counts[label]) / n
		h -= p * math.Log2(p)
	}
	return h
}

// mostCommonLabel は最頻ラベルを返す。同数の場合は値の大きいラベルを選ぶ。
func mostCommonLabel(labels []float64) float64 {
	counts := lo.CountValues(labels)
	best, bestCount := 0.0, -1
	for _, label := range sortedKeys(counts) {
		if counts[label] >= bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best
}

func sortedKeys(counts map[float64]int) []float64 {
	keys := lo.Keys(counts)
	sort.Float64s(keys)
	return keys
}

// candidate は対象行に対する特徴量と閾値の分割候補
type candidate struct {
	feature   int
	threshold float64
	gain      float64
	left      []int
	right     []int
}

// bestSplit は情報利得が最大の分割を探す。特徴量は昇順、閾値は範囲内の行に
// 現れた順に走査し、利得が厳密に大きい候補だけが置き換わる(同点は先勝ち)。
// 片側が空になる閾値は候補にしない。利得が正の候補がなければ ok は false。
func bestSplit(X [][]float64, y []float64, idx []int) (best candidate, ok bool) {
	labels := labelsAt(y, idx)
	parent := entropy(labels)
	n := float64(len(idx))
	width := len(X[idx[0]])

	best.gain = math.Inf(-1)
	for f := 0; f < width; f++ {
		values := lo.Map(idx, func(i int, _ int) float64 { return X[i][f] })
		for _, t := range lo.Uniq(values) {
			left, right := partition(X, idx, f, t)
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			weighted := float64(len(left))/n*entropy(labelsAt(y, left)) +
				float64(len(right))/n*entropy(labelsAt(y, right))
			gain := parent - weighted
			if gain > best.gain {
				best = candidate{feature: f, threshold: t, gain: gain, left: left, right: right}
			}
		}
	}
	return best, best.gain > 0
}

// partition は X[i][f] <= t の行を左、それ以外を右に分ける。
func partition(X [][]float64, idx []int, f int, t float64) (left, right []int) {
	for _, i := range idx {
		if X[i][f] <= t {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

func labelsAt(y []float64, idx []int) []float64 {
	return lo.Map(idx, func(i int, _ int) float64 { return y[i] })
}
