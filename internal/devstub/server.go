// Package devstub 提供遠端評分服務的本地開發替身。
//
// 端點形狀與正式服務一致，分數是決定性的假資料（依排名遞減），
// 讓客戶端不用連上真正的模型服務也能完整走過三階段流程。
package devstub

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"substitute-finder/internal/core/recommend"
	"substitute-finder/internal/infrastructure/config"
	"substitute-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// recipeRecord stub 內建的食譜資料
type recipeRecord struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Method      string   `json:"method,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// fixtures 內建韓式食譜樣本
var fixtures = []recipeRecord{
	{ID: 7, Name: "김치찌개", Ingredients: []string{"돼지고기", "두부", "대파", "김치", "고춧가루"}, Method: "끓이기", Category: "찌개"},
	{ID: 12, Name: "된장찌개", Ingredients: []string{"된장", "애호박", "두부", "양파", "청양고추"}, Method: "끓이기", Category: "찌개"},
	{ID: 23, Name: "불고기", Ingredients: []string{"소고기", "양파", "당근", "간장", "설탕"}, Method: "볶기", Category: "구이"},
	{ID: 31, Name: "잡채", Ingredients: []string{"당면", "시금치", "당근", "소고기", "표고버섯"}, Method: "볶기", Category: "반찬"},
	{ID: 45, Name: "비빔밥", Ingredients: []string{"밥", "고사리", "콩나물", "소고기", "고추장"}, Method: "비비기", Category: "밥"},
}

// substitutePool 假替代品池（依目標回傳其他食材）
var substitutePool = []string{
	"소고기", "닭고기", "돼지고기", "두부", "버섯", "애호박", "양파", "대파", "당근", "감자",
}

// recommendRequest 與正式服務相同的請求結構
type recommendRequest struct {
	RecipeID    int      `json:"recipe_id"`
	Target      []string `json:"target"`
	Stopwords   []string `json:"stopwords"`
	WSimilarity float64  `json:"w_similarity"`
	WContext    float64  `json:"w_context"`
	WMethod     float64  `json:"w_method"`
	WCategory   float64  `json:"w_category"`
}

// customRequest 自訂文脈請求
type customRequest struct {
	ContextIngs []string `json:"context_ings"`
	Target      []string `json:"target"`
	Stopwords   []string `json:"stopwords"`
	Excluded    []string `json:"excluded"`
}

// SetupRouter 設置 stub 路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", handleHealth)
	router.GET("/recipes", handleListRecipes)
	router.GET("/recipes/search", handleSearchRecipes)
	router.GET("/recipes/:id", handleGetRecipe)
	router.POST("/recommend/single", handleRecommendSingle)
	router.POST("/recommend/multi", handleRecommendMulti)
	router.POST("/recommend/custom/single", handleRecommendCustom)

	common.LogInfo("Stub router setup completed",
		zap.Int("recipes", len(fixtures)),
	)
	return router
}

// handleHealth 健康檢查
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "substitute-finder-stub"})
}

// handleListRecipes 分頁食譜列表
func handleListRecipes(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}

	end := offset + limit
	if offset > len(fixtures) {
		offset = len(fixtures)
	}
	if end > len(fixtures) {
		end = len(fixtures)
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   len(fixtures),
		"recipes": fixtures[offset:end],
	})
}

// handleSearchRecipes 料理名搜尋
func handleSearchRecipes(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusOK, []recipeRecord{})
		return
	}

	results := make([]recipeRecord, 0)
	for _, r := range fixtures {
		if strings.Contains(r.Name, q) {
			results = append(results, r)
		}
	}
	c.JSON(http.StatusOK, results)
}

// handleGetRecipe 單一食譜詳細資料
func handleGetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	for _, r := range fixtures {
		if r.ID == id {
			c.JSON(http.StatusOK, r)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
}

// handleRecommendSingle 單一目標替代推薦
func handleRecommendSingle(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Target) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one target required"})
		return
	}

	c.JSON(http.StatusOK, fakeCandidates(req.Target[0], req.WSimilarity, req.WContext, req.WMethod, req.WCategory))
}

// handleRecommendMulti 多重目標替代推薦
func handleRecommendMulti(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Target) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least two targets required"})
		return
	}

	// 三組組合，分數依排名遞減；substitutes 與 target 逐位對齊
	combos := make([]recommend.Combination, 0, 3)
	for rank := 0; rank < 3; rank++ {
		subs := make([]string, len(req.Target))
		for i, target := range req.Target {
			subs[i] = pickSubstitute(target, rank+i)
		}
		combos = append(combos, recommend.Combination{
			Substitutes: subs,
			Score:       0.9 - 0.12*float64(rank),
			SavingScore: 3 - rank,
		})
	}
	c.JSON(http.StatusOK, combos)
}

// handleRecommendCustom 自訂文脈單一替代推薦
func handleRecommendCustom(c *gin.Context) {
	var req customRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Target) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one target required"})
		return
	}

	c.JSON(http.StatusOK, fakeCandidates(req.Target[0], 0.5, 0.5, 0, 0))
}

// fakeCandidates 產生決定性的候選列表（排名遞減）
func fakeCandidates(target string, wSim, wCtx, wMethod, wCat float64) []recommend.SingleCandidate {
	candidates := make([]recommend.SingleCandidate, 0, 5)
	rank := 0
	for _, sub := range substitutePool {
		if sub == target {
			continue
		}
		if rank >= 5 {
			break
		}
		sim := 0.9 - 0.1*float64(rank)
		ctx := 0.8 - 0.1*float64(rank)
		method := 0.6 - 0.1*float64(rank)
		cat := 0.5 - 0.1*float64(rank)
		final := wSim*sim + wCtx*ctx + wMethod*method + wCat*cat
		if final > 1 {
			final = 1
		}
		candidates = append(candidates, recommend.SingleCandidate{
			Substitute: sub,
			FinalScore: final,
			Similarity: sim,
			Context:    ctx,
			Method:     method,
			Category:   cat,
		})
		rank++
	}
	return candidates
}

// pickSubstitute 從池中挑一個不等於目標的替代品
func pickSubstitute(target string, seed int) string {
	for i := 0; i < len(substitutePool); i++ {
		sub := substitutePool[(seed+i)%len(substitutePool)]
		if sub != target {
			return sub
		}
	}
	return target
}
