package forest

import (
	"math/rand"
	"sort"
)

// treeNode is one node of a regression tree. Leaf nodes have no children
// and carry the mean target of the samples that reached them.
type treeNode struct {
	Feature   int       `json:"f,omitempty"`
	Threshold float64   `json:"t,omitempty"`
	Left      *treeNode `json:"l,omitempty"`
	Right     *treeNode `json:"r,omitempty"`
	Value     float64   `json:"v"`
}

func (n *treeNode) leaf() bool { return n.Left == nil }

func (n *treeNode) predict(x []float64) float64 {
	for !n.leaf() {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// growTree builds a variance-reduction CART tree over the given sample
// indices. maxFeatures features are drawn per split without replacement.
func growTree(x [][]float64, y []float64, samples []int, depth, maxDepth, minLeaf, maxFeatures int, rng *rand.Rand) *treeNode {
	node := &treeNode{Value: meanTarget(y, samples)}
	if depth >= maxDepth || len(samples) < 2*minLeaf {
		return node
	}

	feat, threshold, ok := bestSplit(x, y, samples, minLeaf, maxFeatures, rng)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range samples {
		if x[i][feat] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < minLeaf || len(right) < minLeaf {
		return node
	}

	node.Feature = feat
	node.Threshold = threshold
	node.Left = growTree(x, y, left, depth+1, maxDepth, minLeaf, maxFeatures, rng)
	node.Right = growTree(x, y, right, depth+1, maxDepth, minLeaf, maxFeatures, rng)
	return node
}

// bestSplit scans a random feature subset for the split with the largest
// sum-of-squares reduction.
func bestSplit(x [][]float64, y []float64, samples []int, minLeaf, maxFeatures int, rng *rand.Rand) (feature int, threshold float64, ok bool) {
	numFeatures := len(x[samples[0]])
	order := rng.Perm(numFeatures)
	if maxFeatures > 0 && maxFeatures < numFeatures {
		order = order[:maxFeatures]
	}

	type pair struct {
		v, y float64
	}
	bestGain := 0.0
	pairs := make([]pair, len(samples))

	total := 0.0
	totalSq := 0.0
	for _, i := range samples {
		total += y[i]
		totalSq += y[i] * y[i]
	}
	n := float64(len(samples))
	baseSSE := totalSq - total*total/n

	for _, f := range order {
		for k, i := range samples {
			pairs[k] = pair{v: x[i][f], y: y[i]}
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].v < pairs[b].v })

		leftSum, leftSq := 0.0, 0.0
		for k := 0; k < len(pairs)-1; k++ {
			leftSum += pairs[k].y
			leftSq += pairs[k].y * pairs[k].y
			if pairs[k].v == pairs[k+1].v {
				continue
			}
			nl := float64(k + 1)
			nr := n - nl
			if int(nl) < minLeaf || int(nr) < minLeaf {
				continue
			}
			rightSum := total - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			gain := baseSSE - sse
			if gain > bestGain {
				bestGain = gain
				feature = f
				threshold = (pairs[k].v + pairs[k+1].v) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func meanTarget(y []float64, samples []int) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range samples {
		sum += y[i]
	}
	return sum / float64(len(samples))
}
