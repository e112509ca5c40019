// file: internals/features/spp/predictor/decision_tree.go
package predictor

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	encoder "sppku_backend/internals/features/spp/encoder"
	model "sppku_backend/internals/features/spp/model"
)

// children_left/right untuk leaf
const leafNode = -1

var ErrEmptyTree = errors.New("decision tree kosong")

// artifact = export JSON dari pohon CART terlatih (array per node)
type artifact struct {
	Classes       []string    `json:"classes"`
	NFeatures     int         `json:"n_features"`
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// DecisionTree: immutable setelah load, aman untuk goroutine paralel.
type DecisionTree struct {
	classes   []model.Tier
	left      []int
	right     []int
	feature   []int
	threshold []float64
	value     [][]float64
}

var _ Predictor = (*DecisionTree)(nil)

// LoadDecisionTree membaca artifact dari file (sekali saat startup).
func LoadDecisionTree(path string) (*DecisionTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("baca model %s: %w", path, err)
	}
	t, err := ParseDecisionTree(data)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return t, nil
}

func ParseDecisionTree(data []byte) (*DecisionTree, error) {
	var a artifact
	if err := sonic.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	classes := make([]model.Tier, len(a.Classes))
	for i, c := range a.Classes {
		classes[i] = model.NormalizeTier(c)
	}

	return &DecisionTree{
		classes:   classes,
		left:      a.ChildrenLeft,
		right:     a.ChildrenRight,
		feature:   a.Feature,
		threshold: a.Threshold,
		value:     a.Value,
	}, nil
}

func (a *artifact) validate() error {
	if a.NFeatures != encoder.VectorWidth {
		return fmt.Errorf("n_features=%d, harus %d", a.NFeatures, encoder.VectorWidth)
	}
	if len(a.Classes) == 0 {
		return errors.New("classes kosong")
	}
	for _, c := range a.Classes {
		if !model.NormalizeTier(c).Valid() {
			return fmt.Errorf("class tidak dikenal: %q", c)
		}
	}

	n := len(a.ChildrenLeft)
	if n == 0 {
		return ErrEmptyTree
	}
	if len(a.ChildrenRight) != n || len(a.Feature) != n || len(a.Threshold) != n || len(a.Value) != n {
		return fmt.Errorf("panjang array node tidak sama (n=%d)", n)
	}

	for i := 0; i < n; i++ {
		l, r := a.ChildrenLeft[i], a.ChildrenRight[i]
		if l == leafNode || r == leafNode {
			if l != r {
				return fmt.Errorf("node %d: hanya satu child", i)
			}
			if len(a.Value[i]) != len(a.Classes) {
				return fmt.Errorf("node %d: value %d kelas, harus %d", i, len(a.Value[i]), len(a.Classes))
			}
			continue
		}
		// child selalu setelah parent (urutan preorder) → traversal pasti berhenti
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("node %d: child di luar jangkauan (%d, %d)", i, l, r)
		}
		if f := a.Feature[i]; f < 0 || f >= encoder.VectorWidth {
			return fmt.Errorf("node %d: feature %d di luar jangkauan", i, f)
		}
	}
	return nil
}

// Predict menelusuri pohon: kiri jika x[f] <= threshold.
func (t *DecisionTree) Predict(v encoder.Vector) (model.Tier, error) {
	if t == nil || len(t.left) == 0 {
		return "", ErrEmptyTree
	}

	node := 0
	for t.left[node] != leafNode {
		// threshold dilatih atas input float32
		x := float64(float32(v[t.feature[node]]))
		if x <= t.threshold[node] {
			node = t.left[node]
		} else {
			node = t.right[node]
		}
	}
	return t.classes[argmax(t.value[node])], nil
}

// Classes: label kelas sesuai urutan model
func (t *DecisionTree) Classes() []model.Tier {
	return append([]model.Tier(nil), t.classes...)
}

func (t *DecisionTree) NodeCount() int { return len(t.left) }

// argmax, seri → index terkecil
func argmax(xs []float64) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}
