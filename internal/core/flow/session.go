package flow

import (
	"context"
	"strings"
	"sync"

	"substitute-finder/internal/core/catalog"
	"substitute-finder/internal/core/recommend"
	"substitute-finder/internal/infrastructure/config"
	"substitute-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// noExpand 表示沒有展開任何結果
const noExpand = -1

// Session 互動流程控制器
//
// 單一使用者、單一會期的狀態機：階段、目前選取、目前結果與轉移都收在
// 這裡，不存在散落各處的共享旗標。推薦請求同一時間最多一個在途，
// 送出時擷取選取與權重的不可變快照，並配發一個 token；回應只有在
// token 仍然有效、階段也沒變時才會被採納，過期回應直接丟棄。
type Session struct {
	mu          sync.Mutex
	catalog     *catalog.Client
	recommender *recommend.Client
	pageSize    int

	stage Stage

	// 瀏覽狀態
	query         string
	searchResults []catalog.Recipe
	recipes       []catalog.Recipe
	total         int
	listing       bool

	// 選取狀態
	recipe  *catalog.Recipe
	targets []string
	weights recommend.Weights

	// 結果狀態
	results       recommend.ResultSet
	resultTargets []string
	expanded      int
	loading       bool
	token         string
}

// NewSession 創建互動會期
func NewSession(cfg *config.Config, catalogClient *catalog.Client, recommendClient *recommend.Client) *Session {
	return &Session{
		catalog:     catalogClient,
		recommender: recommendClient,
		pageSize:    cfg.Catalog.PageSize,
		stage:       StageBrowsing,
		weights: recommend.Weights{
			Similarity: cfg.Weights.Similarity,
			Context:    cfg.Weights.Context,
			Method:     cfg.Weights.Method,
			Category:   cfg.Weights.Category,
		},
		results:  recommend.EmptyResult(),
		expanded: noExpand,
	}
}

// Search 以料理名搜尋食譜
//
// 空白查詢不發出網路請求，直接維持現況。
func (s *Session) Search(ctx context.Context, query string) []catalog.Recipe {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	s.mu.Lock()
	s.query = query
	s.mu.Unlock()

	results := s.catalog.SearchRecipes(ctx, query)

	s.mu.Lock()
	s.searchResults = results
	s.mu.Unlock()
	return results
}

// LoadMore 載入下一頁食譜並接在現有列表後面
//
// 分頁請求彼此序列化：前一頁還沒回來就再觸發是客戶端的錯，直接拒絕。
// 與推薦請求互相獨立，推薦在途時仍可翻頁。
func (s *Session) LoadMore(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.listing {
		s.mu.Unlock()
		return 0, common.ErrRequestInFlight
	}
	if s.total > 0 && len(s.recipes) >= s.total {
		s.mu.Unlock()
		return 0, nil
	}
	offset := len(s.recipes)
	limit := s.pageSize
	s.listing = true
	s.mu.Unlock()

	page := s.catalog.ListRecipes(ctx, limit, offset)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.listing = false
	if page.Total > 0 {
		s.total = page.Total
	}
	// 接續點必須仍是送出請求時的長度，對不上就不能接，避免重複或跳頁
	if len(s.recipes) != offset {
		return 0, nil
	}
	s.recipes = append(s.recipes, page.Recipes...)
	return len(page.Recipes), nil
}

// SelectRecipe 選定食譜並進入食材選取階段
//
// 選定時清空先前的目標與結果。
func (s *Session) SelectRecipe(recipe catalog.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageBrowsing {
		return common.ErrInvalidSelection
	}

	r := recipe
	s.recipe = &r
	s.targets = nil
	s.clearResultsLocked()
	s.stage = StageSelecting

	common.LogInfo("已選定食譜",
		zap.Int("recipe_id", recipe.ID),
		zap.String("name", recipe.Name),
	)
	return nil
}

// ToggleIngredient 切換目標食材的選取狀態
//
// 已選取的再點一次就移除；不屬於目前食譜的食材一律拒絕，
// 選取集合永遠是食譜食材的子集。
func (s *Session) ToggleIngredient(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageSelecting || s.recipe == nil {
		return common.ErrInvalidSelection
	}

	for i, t := range s.targets {
		if t == name {
			s.targets = append(s.targets[:i], s.targets[i+1:]...)
			return nil
		}
	}

	member := false
	for _, ing := range s.recipe.Ingredients {
		if ing == name {
			member = true
			break
		}
	}
	if !member {
		return common.ErrInvalidSelection
	}

	s.targets = append(s.targets, name)
	return nil
}

// SetWeight 調整單一維度的權重
func (s *Session) SetWeight(dim recommend.Dimension, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights.Set(dim, value)
}

// Submit 送出推薦請求並進入結果階段
//
// 零目標或已有請求在途時拒絕（不轉移、不發請求）。送出當下擷取
// 選取與權重快照，之後的調整不影響這次請求。
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.stage != StageSelecting || s.recipe == nil {
		s.mu.Unlock()
		return common.ErrInvalidSelection
	}
	if len(s.targets) == 0 {
		s.mu.Unlock()
		return common.ErrInvalidSelection
	}
	if s.loading {
		s.mu.Unlock()
		return common.ErrRequestInFlight
	}

	recipe := s.recipe
	targets := append([]string(nil), s.targets...)
	weights := s.weights
	token := common.GenerateUUID()

	s.token = token
	s.loading = true
	s.stage = StageViewing
	s.results = recommend.EmptyResult()
	s.resultTargets = targets
	s.expanded = noExpand
	s.mu.Unlock()

	common.LogInfo("送出替代推薦",
		zap.Int("recipe_id", recipe.ID),
		zap.Int("targets", len(targets)),
	)

	result := s.recommender.BuildAndSend(ctx, recipe, targets, weights)
	s.commitResults(token, result)
	return nil
}

// commitResults 採納推薦回應
//
// token 已被換掉或階段已離開結果頁，代表使用者在請求在途時導覽走了，
// 這份回應屬於過期請求，直接丟棄。
func (s *Session) commitResults(token string, result recommend.ResultSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != token || s.stage != StageViewing {
		common.LogDebug("丟棄過期的推薦回應", zap.String("token", token))
		return
	}

	s.results = result
	s.expanded = noExpand
	s.loading = false
}

// ToggleExpand 切換結果的分數明細展開狀態
//
// 一次只展開一筆：展開新的一筆會自動收合前一筆，再點同一筆則收合。
func (s *Session) ToggleExpand(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageViewing || index < 0 || index >= s.results.Len() {
		return
	}
	if s.expanded == index {
		s.expanded = noExpand
	} else {
		s.expanded = index
	}
}

// Back 回到上一個階段
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.stage {
	case StageViewing:
		s.clearResultsLocked()
		s.stage = StageSelecting
	case StageSelecting:
		s.recipe = nil
		s.targets = nil
		s.stage = StageBrowsing
	}
}

// Reset 回到初始瀏覽狀態
//
// 選取、查詢文字、結果與展開狀態全部清空；任何階段都可觸發。
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stage = StageBrowsing
	s.query = ""
	s.searchResults = nil
	s.recipe = nil
	s.targets = nil
	s.clearResultsLocked()
}

// clearResultsLocked 清空結果相關狀態（呼叫端須持有鎖）
//
// 換掉 token，讓在途請求的回應失效。
func (s *Session) clearResultsLocked() {
	s.results = recommend.EmptyResult()
	s.resultTargets = nil
	s.expanded = noExpand
	s.loading = false
	s.token = ""
}

// --- 讀取存取器 ---

// Stage 目前階段
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Query 目前查詢文字
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SearchResults 目前搜尋結果
func (s *Session) SearchResults() []catalog.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Recipe(nil), s.searchResults...)
}

// Recipes 已載入的食譜列表（跨頁累積、順序不變）
func (s *Session) Recipes() []catalog.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Recipe(nil), s.recipes...)
}

// Total 服務端回報的食譜總數
func (s *Session) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// HasMore 是否還有下一頁
func (s *Session) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recipes) < s.total
}

// Recipe 目前選定的食譜
func (s *Session) Recipe() *catalog.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipe
}

// Targets 目前選取的目標食材（依選取順序）
func (s *Session) Targets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.targets...)
}

// Weights 目前權重
func (s *Session) Weights() recommend.Weights {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weights
}

// Results 目前結果集合
func (s *Session) Results() recommend.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// ResultTargets 結果對應的目標食材快照（與組合逐位對齊）
func (s *Session) ResultTargets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.resultTargets...)
}

// ResultPairs 指定組合與目標食材的逐位配對
func (s *Session) ResultPairs(index int) []recommend.SubstitutionPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.Pairs(index, s.resultTargets)
}

// Expanded 目前展開的結果索引（沒有展開時為 -1）
func (s *Session) Expanded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded
}

// Loading 推薦請求是否在途
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
