package model

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。既存の学習結果は丸ごと置き換えられる。
	Fit(X [][]float64, y []float64) error
}

// BatchPredictor は複数行をまとめて予測できるモデルのインターフェース
type BatchPredictor interface {
	// PredictBatch は各行の予測値を返す
	PredictBatch(X [][]float64) ([]float64, error)
}

// Classifier は 0/1 ラベルを予測する二値分類器
type Classifier interface {
	Fitter
	BatchPredictor
	IsFitted() bool
}

// Regressor は連続値を予測する回帰モデル
type Regressor interface {
	Fitter
	BatchPredictor
	IsFitted() bool
}
