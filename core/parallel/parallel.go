// Package parallel は行単位の処理をCPUコア数に応じて分割実行するヘルパーです。
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold はこの件数以下なら逐次処理とする行数です。
const DefaultThreshold = 1000

// Parallelize は items をCPUコアごとの連続した範囲に分け、各範囲で fn を並行に実行します。
// 全ての範囲が終わるまで戻りません。
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// 切り上げ除算
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold は items <= threshold なら呼び出し元のゴルーチンで
// fn(0, items) を実行し、それ以外は Parallelize を使います。
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// MapRows は各行 rows[i] に fn を適用した結果を返します。
// 行数が threshold を超える場合のみ並列に実行されます。fn は並行に呼ばれても
// 安全でなければなりません。
func MapRows(rows [][]float64, threshold int, fn func(row []float64) float64) []float64 {
	out := make([]float64, len(rows))
	ParallelizeWithThreshold(len(rows), threshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = fn(rows[i])
		}
	})
	return out
}
