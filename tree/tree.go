// Package tree は情報利得(エントロピー)で分割する二値決定木分類器を提供します。
package tree

import (
	"github.com/YuminosukeSato/mllab/core/model"
	"github.com/YuminosukeSato/mllab/core/parallel"
	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/pkg/log"
)

// DefaultMaxDepth は指定がない場合の最大深さ
const DefaultMaxDepth = 5

// Node は *Leaf または *Split のいずれか
type Node interface {
	// NumSamples はこのノードに到達した訓練行の数
	NumSamples() int
	isNode()
}

// Leaf は到達した行すべてに Value を予測する
type Leaf struct {
	Value   float64
	Samples int
}

// Split は x[Feature] <= Threshold の行を Left へ、それ以外を Right へ送る。
// 子ノードは各 Split が所有する。
type Split struct {
	Feature   int
	Threshold float64
	Gain      float64
	Samples   int
	Left      Node
	Right     Node
}

func (l *Leaf) NumSamples() int  { return l.Samples }
func (s *Split) NumSamples() int { return s.Samples }
func (*Leaf) isNode()            {}
func (*Split) isNode()           {}

// Build は深さ 0 から再帰的に木を構築する。各ノードでは次の順に葉にする:
// ラベルが1種類、サンプルが2未満、深さが maxDepth 以上、正の利得を持つ分割がない。
// 葉の値は最頻ラベル(同数なら大きい方)。
func Build(X [][]float64, y []float64, maxDepth int) (Node, error) {
	if _, err := model.ValidateXY("tree.Build", X, y); err != nil {
		return nil, err
	}
	if maxDepth < 0 {
		return nil, errors.NewValidationError("max_depth", "must be non-negative", maxDepth)
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return build(X, y, idx, 0, maxDepth), nil
}

func build(X [][]float64, y []float64, idx []int, depth, maxDepth int) Node {
	labels := labelsAt(y, idx)
	if isPure(labels) || len(idx) < 2 || depth >= maxDepth {
		return &Leaf{Value: mostCommonLabel(labels), Samples: len(idx)}
	}

	best, ok := bestSplit(X, y, idx)
	if !ok {
		return &Leaf{Value: mostCommonLabel(labels), Samples: len(idx)}
	}
	return &Split{
		Feature:   best.feature,
		Threshold: best.threshold,
		Gain:      best.gain,
		Samples:   len(idx),
		Left:      build(X, y, best.left, depth+1, maxDepth),
		Right:     build(X, y, best.right, depth+1, maxDepth),
	}
}

func isPure(labels []float64) bool {
	for _, l := range labels[1:] {
		if l != labels[0] {
			return false
		}
	}
	return true
}

// Predict は x について root から葉までたどる。x は木が分割に使う特徴量を
// すべて含む幅でなければならない。nil の木は0を返す。
func Predict(root Node, x []float64) float64 {
	for {
		switch n := root.(type) {
		case *Leaf:
			return n.Value
		case *Split:
			if x[n.Feature] <= n.Threshold {
				root = n.Left
			} else {
				root = n.Right
			}
		default:
			return 0
		}
	}
}

// Depth は根から葉までの最長経路上の分割数を返す。nil の木の深さは0。
func Depth(root Node) int {
	s, ok := root.(*Split)
	if !ok {
		return 0
	}
	return 1 + max(Depth(s.Left), Depth(s.Right))
}

// NumLeaves は root の葉の数を数える
func NumLeaves(root Node) int {
	switch n := root.(type) {
	case *Leaf:
		return 1
	case *Split:
		return NumLeaves(n.Left) + NumLeaves(n.Right)
	}
	return 0
}

// Walk は全ノードについて行きがけ順に深さとともに fn を呼ぶ
func Walk(root Node, fn func(n Node, depth int)) {
	var walk func(Node, int)
	walk = func(n Node, depth int) {
		if n == nil {
			return
		}
		fn(n, depth)
		if s, ok := n.(*Split); ok {
			walk(s.Left, depth+1)
			walk(s.Right, depth+1)
		}
	}
	walk(root, 0)
}

// TreeOption は DecisionTreeClassifier の設定を行う関数
type TreeOption func(*DecisionTreeClassifier)

// WithMaxDepth は再帰の深さの上限を設定する
func WithMaxDepth(depth int) TreeOption {
	return func(c *DecisionTreeClassifier) {
		c.maxDepth = depth
	}
}

// DecisionTreeClassifier はエントロピー基準の決定木分類器。
// 学習のたびに木は作り直される。
type DecisionTreeClassifier struct {
	model.BaseEstimator

	maxDepth  int
	nFeatures int
	root      Node
}

// NewDecisionTreeClassifier は DefaultMaxDepth を既定とする分類器を作成する
func NewDecisionTreeClassifier(opts ...TreeOption) *DecisionTreeClassifier {
	c := &DecisionTreeClassifier{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fit は X と y から木を構築する。エラー時は以前の木が保たれる。
func (c *DecisionTreeClassifier) Fit(X [][]float64, y []float64) error {
	logger := log.GetLoggerWithName("tree").With(log.ModelNameKey, "DecisionTreeClassifier")
	logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(X),
		log.MaxDepthKey, c.maxDepth,
	)

	root, err := Build(X, y, c.maxDepth)
	if err != nil {
		logger.Error("fit failed", err, log.OperationKey, log.OperationFit)
		return err
	}
	c.root = root
	c.nFeatures = len(X[0])
	c.SetFitted()

	logger.Debug("fit finished",
		log.OperationKey, log.OperationFit,
		log.DepthKey, Depth(root),
		log.LeavesKey, NumLeaves(root),
	)
	return nil
}

// Train は Fit と同じ
func (c *DecisionTreeClassifier) Train(X [][]float64, y []float64) error {
	return c.Fit(X, y)
}

// Predict は x が到達する葉のラベルを返す
func (c *DecisionTreeClassifier) Predict(x []float64) (float64, error) {
	if err := c.CheckFitted("DecisionTreeClassifier", "Predict"); err != nil {
		return 0, err
	}
	if len(x) != c.nFeatures {
		return 0, errors.NewDimensionError("DecisionTreeClassifier.Predict", c.nFeatures, len(x), 1)
	}
	return Predict(c.root, x), nil
}

// PredictBatch は各行を予測する
func (c *DecisionTreeClassifier) PredictBatch(X [][]float64) ([]float64, error) {
	if err := c.CheckFitted("DecisionTreeClassifier", "PredictBatch"); err != nil {
		return nil, err
	}
	if err := model.CheckWidth("DecisionTreeClassifier.PredictBatch", X, c.nFeatures); err != nil {
		return nil, err
	}
	root := c.root
	return parallel.MapRows(X, parallel.DefaultThreshold, func(row []float64) float64 {
		return Predict(root, row)
	}), nil
}

// Root は構築した木を返す。学習前は nil。木はコピーされず共有されるため、
// 呼び出し側で変更してはならない。
func (c *DecisionTreeClassifier) Root() Node {
	return c.root
}

// MaxDepth は設定された深さの上限を返す
func (c *DecisionTreeClassifier) MaxDepth() int {
	return c.maxDepth
}

// Depth は構築した木の深さを返す
func (c *DecisionTreeClassifier) Depth() int {
	return Depth(c.root)
}

// NumLeaves は構築した木の葉の数を返す
func (c *DecisionTreeClassifier) NumLeaves() int {
	return NumLeaves(c.root)
}
