package dataset

import (
	"sort"

	"github.com/samber/lo"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

var iris = Dataset{
	Name: "iris",
	Features: [][]float64{
		{5.1, 3.5}, {4.9, 3.0}, {4.7, 3.2}, {4.6, 3.1}, {5.0, 3.6},
		{7.0, 3.2}, {6.4, 3.2}, {6.9, 3.1}, {5.5, 2.3}, {6.5, 2.8},
	},
	Labels:       []float64{0, 0, 0, 0, 0, 1, 1, 1, 1, 1},
	FeatureNames: []string{"Sepal Length", "Sepal Width"},
}

var linearData = Dataset{
	Name:         "linear",
	Features:     [][]float64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}, {10}},
	Labels:       []float64{2.5, 3.5, 4.0, 5.1, 6.2, 6.8, 8.1, 8.5, 9.7, 10.2},
	FeatureNames: []string{"X"},
}

// 特徴量 Outlook, Temperature, Humidity, Windy から PlayTennis を予測する
var playTennis = Dataset{
	Name: "playtennis",
	Features: [][]float64{
		{0, 0, 0, 0},
		{0, 0, 0, 1},
		{1, 0, 0, 0},
		{2, 1, 0, 0},
		{2, 2, 1, 0},
		{2, 2, 1, 1},
		{1, 2, 1, 1},
		{0, 1, 0, 0},
		{0, 2, 1, 0},
		{2, 1, 1, 0},
		{0, 1, 1, 1},
		{1, 1, 0, 1},
		{1, 0, 1, 0},
		{2, 1, 0, 1},
	},
	Labels:       []float64{0, 0, 1, 1, 1, 0, 1, 0, 1, 1, 1, 1, 1, 0},
	FeatureNames: []string{"Outlook", "Temperature", "Humidity", "Windy"},
	Categories: [][]string{
		{"Sunny", "Overcast", "Rainy"},
		{"Hot", "Mild", "Cool"},
		{"High", "Normal"},
		{"False", "True"},
	},
}

// Iris は Sepal Length / Sepal Width で線形分離できる10行の二値分類データです。
func Iris() *Dataset { return iris.Clone() }

// Linear は1特徴量の回帰データ(x = 1..10)です。
func Linear() *Dataset { return linearData.Clone() }

// PlayTennis はカテゴリ値で符号化された14行のテニス判定データです。
func PlayTennis() *Dataset { return playTennis.Clone() }

var builtins = map[string]func() *Dataset{
	"iris":       Iris,
	"linear":     Linear,
	"playtennis": PlayTennis,
}

// Names は組み込みデータセットの名前を辞書順で返す
func Names() []string {
	names := lo.Keys(builtins)
	sort.Strings(names)
	return names
}

// Load は指定した組み込みデータセットの新しいコピーを返す
func Load(name string) (*Dataset, error) {
	f, ok := builtins[name]
	if !ok {
		return nil, errors.NewValidationError("dataset", "unknown built-in dataset", name)
	}
	return f(), nil
}
