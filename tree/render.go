package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatOptions は木のテキスト表示を制御する
type FormatOptions struct {
	// FeatureNames[j] は特徴量 j の表示名。無ければ "feature[j]"。
	FeatureNames []string
	// ClassNames[v] は葉の値 v の表示名。例: {"No", "Yes"}
	ClassNames []string
	// Target は葉に表示する目的変数名。例: "Play"
	Target string
}

// Format は木を字下げしたテキスト図として w に書き出す。
//
//	Humidity <= 0.00? (gain 0.1518, samples 14)
//	├── True: Leaf: Play = No (samples 7)
//	└── False: Leaf: Play = Yes (samples 7)
func Format(w io.Writer, root Node, opts FormatOptions) error {
	if root == nil {
		_, err := fmt.Fprintln(w, "(empty tree)")
		return err
	}
	var b strings.Builder
	b.WriteString(opts.describe(root))
	b.WriteByte('\n')
	opts.children(&b, root, "")
	_, err := io.WriteString(w, b.String())
	return err
}

// String は特徴量を添字のまま表示した木を返す
func String(root Node) string {
	var b strings.Builder
	_ = Format(&b, root, FormatOptions{})
	return b.String()
}

func (o FormatOptions) children(b *strings.Builder, n Node, prefix string) {
	s, ok := n.(*Split)
	if !ok {
		return
	}
	fmt.Fprintf(b, "%s├── True: %s\n", prefix, o.describe(s.Left))
	o.children(b, s.Left, prefix+"│   ")
	fmt.Fprintf(b, "%s└── False: %s\n", prefix, o.describe(s.Right))
	o.children(b, s.Right, prefix+"    ")
}

func (o FormatOptions) describe(n Node) string {
	switch n := n.(type) {
	case *Leaf:
		return fmt.Sprintf("Leaf: %s = %s (samples %d)", o.target(), o.className(n.Value), n.Samples)
	case *Split:
		return fmt.Sprintf("%s <= %.2f? (gain %.4f, samples %d)", o.featureName(n.Feature), n.Threshold, n.Gain, n.Samples)
	}
	return ""
}

func (o FormatOptions) featureName(j int) string {
	if j < len(o.FeatureNames) {
		return o.FeatureNames[j]
	}
	return fmt.Sprintf("feature[%d]", j)
}

func (o FormatOptions) className(v float64) string {
	i := int(v)
	if float64(i) == v && i >= 0 && i < len(o.ClassNames) {
		return o.ClassNames[i]
	}
	return fmt.Sprintf("%g", v)
}

func (o FormatOptions) target() string {
	if o.Target == "" {
		return "class"
	}
	return o.Target
}

// jsonNode は外部の描画ツール向けのノード表現
type jsonNode struct {
	Type        string    `json:"type"`
	Value       *float64  `json:"value,omitempty"`
	Feature     *int      `json:"feature,omitempty"`
	FeatureName string    `json:"feature_name,omitempty"`
	Threshold   *float64  `json:"threshold,omitempty"`
	Gain        *float64  `json:"gain,omitempty"`
	Samples     int       `json:"samples"`
	Left        *jsonNode `json:"left,omitempty"`
	Right       *jsonNode `json:"right,omitempty"`
}

// MarshalJSON は root を "type" が "leaf" または "split" の入れ子オブジェクトとして
// エンコードする。featureNames は nil でもよい。
func MarshalJSON(root Node, featureNames []string) ([]byte, error) {
	return json.MarshalIndent(toJSON(root, featureNames), "", "  ")
}

func toJSON(n Node, names []string) *jsonNode {
	switch n := n.(type) {
	case *Leaf:
		v := n.Value
		return &jsonNode{Type: "leaf", Value: &v, Samples: n.Samples}
	case *Split:
		f, t, g := n.Feature, n.Threshold, n.Gain
		out := &jsonNode{
			Type:      "split",
			Feature:   &f,
			Threshold: &t,
			Gain:      &g,
			Samples:   n.Samples,
			Left:      toJSON(n.Left, names),
			Right:     toJSON(n.Right, names),
		}
		if f < len(names) {
			out.FeatureName = names[f]
		}
		return out
	}
	return nil
}
