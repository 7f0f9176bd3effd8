package recommend

// recommendRequest 單一／多重推薦共用的請求結構
//
// target 一律是陣列：單一目標時包成一個元素，維持 wire 相容。
type recommendRequest struct {
	RecipeID    int      `json:"recipe_id"`
	Target      []string `json:"target"`
	Stopwords   []string `json:"stopwords"`
	WSimilarity float64  `json:"w_similarity"`
	WContext    float64  `json:"w_context"`
	WMethod     float64  `json:"w_method"`
	WCategory   float64  `json:"w_category"`
}

// customRequest 自訂食材文脈的推薦請求（協作端點用）
type customRequest struct {
	ContextIngs []string `json:"context_ings"`
	Target      []string `json:"target"`
	Stopwords   []string `json:"stopwords"`
	Excluded    []string `json:"excluded"`
}

// SingleCandidate 單一目標食材的替代候選
//
// 分數皆為 0.0–1.0；列表順序就是服務端的排名順序，客戶端不得重排。
type SingleCandidate struct {
	Substitute string  `json:"substitute"`
	FinalScore float64 `json:"final_score"`
	Similarity float64 `json:"similarity"`
	Context    float64 `json:"context"`
	Method     float64 `json:"method"`
	Category   float64 `json:"category"`
}

// Combination 多重目標的聯合替代組合
//
// substitutes 與送出的 target 順序逐位對齊。SavingScore 是原服務附帶的
// 參考值，排名與驗證都不使用。
type Combination struct {
	Substitutes []string `json:"substitutes"`
	Score       float64  `json:"score"`
	SavingScore int      `json:"saving_score,omitempty"`
}
