package recommend

import (
	"context"
	"encoding/json"
	"net/http"

	"substitute-finder/internal/core/catalog"
	"substitute-finder/internal/infrastructure/config"
	"substitute-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 推薦請求客戶端
//
// 依選取數量決定請求形狀：恰好一個目標走 single、兩個以上走 multi，
// 單次送出絕不會同時發出兩種。失敗一律降級為空結果（見 ResultSet）。
type Client struct {
	client *resty.Client
}

// NewClient 創建推薦請求客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Service.BaseURL).
		SetTimeout(cfg.Service.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{client: client}
}

// BuildAndSend 打包並送出推薦請求
//
// 前置條件：targets 非空，且每個目標都是 recipe 的食材（由互動層保證）。
func (c *Client) BuildAndSend(ctx context.Context, recipe *catalog.Recipe, targets []string, weights Weights) ResultSet {
	if recipe == nil || len(targets) == 0 {
		common.LogWarn("推薦請求前置條件不符", zap.Error(common.ErrInvalidSelection))
		return EmptyResult()
	}

	req := recommendRequest{
		RecipeID:    recipe.ID,
		Target:      targets,
		Stopwords:   []string{},
		WSimilarity: weights.Similarity,
		WContext:    weights.Context,
		WMethod:     weights.Method,
		WCategory:   weights.Category,
	}

	if len(targets) == 1 {
		return c.sendSingle(ctx, req)
	}
	return c.sendMulti(ctx, req)
}

// sendSingle 送出單一目標請求
func (c *Client) sendSingle(ctx context.Context, req recommendRequest) ResultSet {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/recommend/single")

	if err != nil {
		common.LogWarn("單一替代推薦請求失敗",
			zap.Error(err),
			zap.String("code", common.ErrCodeTransportFailure),
			zap.Int("recipe_id", req.RecipeID),
		)
		return EmptyResult()
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("單一替代推薦回傳非成功狀態",
			zap.Int("status", resp.StatusCode()),
			zap.String("code", common.ErrCodeTransportFailure),
			zap.Int("recipe_id", req.RecipeID),
		)
		return EmptyResult()
	}

	var candidates []SingleCandidate
	if err := json.Unmarshal(resp.Body(), &candidates); err != nil {
		common.LogWarn("解析單一替代推薦回應失敗",
			zap.Error(err),
			zap.String("code", common.ErrCodeInvalidResponse),
		)
		return EmptyResult()
	}

	if len(candidates) == 0 {
		common.LogDebug("單一替代推薦沒有任何候選",
			zap.String("code", common.ErrCodeEmptyResult),
			zap.Int("recipe_id", req.RecipeID),
		)
	}

	common.LogInfo("單一替代推薦完成",
		zap.Int("recipe_id", req.RecipeID),
		zap.String("target", req.Target[0]),
		zap.Int("candidates", len(candidates)),
	)
	return SingleResult(candidates)
}

// sendMulti 送出多重目標請求
func (c *Client) sendMulti(ctx context.Context, req recommendRequest) ResultSet {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/recommend/multi")

	if err != nil {
		common.LogWarn("多重替代推薦請求失敗",
			zap.Error(err),
			zap.String("code", common.ErrCodeTransportFailure),
			zap.Int("recipe_id", req.RecipeID),
		)
		return EmptyResult()
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("多重替代推薦回傳非成功狀態",
			zap.Int("status", resp.StatusCode()),
			zap.String("code", common.ErrCodeTransportFailure),
			zap.Int("recipe_id", req.RecipeID),
		)
		return EmptyResult()
	}

	var combos []Combination
	if err := json.Unmarshal(resp.Body(), &combos); err != nil {
		common.LogWarn("解析多重替代推薦回應失敗",
			zap.Error(err),
			zap.String("code", common.ErrCodeInvalidResponse),
		)
		return EmptyResult()
	}

	if len(combos) == 0 {
		common.LogDebug("多重替代推薦沒有任何組合",
			zap.String("code", common.ErrCodeEmptyResult),
			zap.Int("recipe_id", req.RecipeID),
		)
	}

	common.LogInfo("多重替代推薦完成",
		zap.Int("recipe_id", req.RecipeID),
		zap.Int("targets", len(req.Target)),
		zap.Int("combinations", len(combos)),
	)
	return MultiResult(combos, len(req.Target))
}

// CustomSingle 自訂食材文脈的單一替代推薦
//
// 協作端點：不屬於三階段流程，互動層不會呼叫，保留給外部整合使用。
func (c *Client) CustomSingle(ctx context.Context, target string, contextIngs []string) []SingleCandidate {
	req := customRequest{
		ContextIngs: contextIngs,
		Target:      []string{target},
		Stopwords:   []string{},
		Excluded:    []string{},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/recommend/custom/single")

	if err != nil || resp.StatusCode() != http.StatusOK {
		common.LogWarn("自訂文脈推薦請求失敗",
			zap.String("code", common.ErrCodeTransportFailure),
			zap.String("target", target),
		)
		return nil
	}

	var candidates []SingleCandidate
	if err := json.Unmarshal(resp.Body(), &candidates); err != nil {
		common.LogWarn("解析自訂文脈推薦回應失敗",
			zap.Error(err),
			zap.String("code", common.ErrCodeInvalidResponse),
		)
		return nil
	}

	return candidates
}
