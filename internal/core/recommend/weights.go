package recommend

import "math"

// Dimension 權重維度
type Dimension string

const (
	DimSimilarity Dimension = "similarity" // 食材間語意相似度 (W2V)
	DimContext    Dimension = "context"    // 食譜文脈相似度 (D2V)
	DimMethod     Dimension = "method"     // 調理法適合度
	DimCategory   Dimension = "category"   // 料理分類適合度
)

// Weights 四維評分權重
//
// 各維度獨立、不做正規化也不要求總和為一；如何解讀原始權重是遠端服務的事。
// 值型別：送出請求時以複製快照傳遞，避免送出後的調整影響進行中的請求。
type Weights struct {
	Similarity float64
	Context    float64
	Method     float64
	Category   float64
}

// DefaultWeights 回傳預設權重
func DefaultWeights() Weights {
	return Weights{
		Similarity: 0.5,
		Context:    0.5,
		Method:     0.0,
		Category:   0.0,
	}
}

// Set 設定單一維度的權重
//
// 超出 [0,1] 的輸入夾限而不是拒絕，並對齊 0.1 刻度。
func (w *Weights) Set(dim Dimension, value float64) {
	value = clampStep(value)
	switch dim {
	case DimSimilarity:
		w.Similarity = value
	case DimContext:
		w.Context = value
	case DimMethod:
		w.Method = value
	case DimCategory:
		w.Category = value
	}
}

// Get 取得單一維度的權重
func (w Weights) Get(dim Dimension) float64 {
	switch dim {
	case DimSimilarity:
		return w.Similarity
	case DimContext:
		return w.Context
	case DimMethod:
		return w.Method
	case DimCategory:
		return w.Category
	}
	return 0
}

// clampStep 夾限到 [0,1] 並對齊 0.1 刻度
func clampStep(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return math.Round(v*10) / 10
}
