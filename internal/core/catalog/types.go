package catalog

// Recipe 食譜
//
// 取得後不再變動；ingredients 保留服務回傳的順序，重複項不去除（僅供顯示）。
type Recipe struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Method      string   `json:"method,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// RecipeList 分頁食譜列表
type RecipeList struct {
	Total   int      `json:"total"`
	Recipes []Recipe `json:"recipes"`
}
