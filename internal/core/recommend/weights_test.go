package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()

	assert.Equal(t, 0.5, w.Similarity)
	assert.Equal(t, 0.5, w.Context)
	assert.Equal(t, 0.0, w.Method)
	assert.Equal(t, 0.0, w.Category)
}

func TestWeightsSetClampsOutOfRange(t *testing.T) {
	w := DefaultWeights()

	// 超出範圍夾限而不是回報錯誤
	w.Set(DimSimilarity, 1.7)
	assert.Equal(t, 1.0, w.Similarity)

	w.Set(DimContext, -0.3)
	assert.Equal(t, 0.0, w.Context)
}

func TestWeightsSetSnapsToStep(t *testing.T) {
	w := DefaultWeights()

	w.Set(DimMethod, 0.34)
	assert.Equal(t, 0.3, w.Method)

	w.Set(DimCategory, 0.55)
	assert.Equal(t, 0.6, w.Category)
}

func TestWeightsGet(t *testing.T) {
	w := Weights{Similarity: 0.1, Context: 0.2, Method: 0.3, Category: 0.4}

	assert.Equal(t, 0.1, w.Get(DimSimilarity))
	assert.Equal(t, 0.2, w.Get(DimContext))
	assert.Equal(t, 0.3, w.Get(DimMethod))
	assert.Equal(t, 0.4, w.Get(DimCategory))
	assert.Equal(t, 0.0, w.Get(Dimension("unknown")))
}

func TestWeightsSnapshotIsIndependent(t *testing.T) {
	w := DefaultWeights()
	snapshot := w

	// 送出後再調整不影響快照
	w.Set(DimSimilarity, 0.9)
	assert.Equal(t, 0.5, snapshot.Similarity)
}
