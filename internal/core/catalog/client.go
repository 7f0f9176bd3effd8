package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"substitute-finder/internal/infrastructure/config"
	"substitute-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 食譜目錄客戶端
//
// 瀏覽屬於 best-effort：任何傳輸失敗都降級為空結果，由呼叫端以
// len(recipes) < limit 判斷分頁是否到底。
type Client struct {
	client *resty.Client
}

// NewClient 創建食譜目錄客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Service.BaseURL).
		SetTimeout(cfg.Service.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{client: client}
}

// ListRecipes 取得分頁食譜列表
func (c *Client) ListRecipes(ctx context.Context, limit, offset int) RecipeList {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetQueryParam("offset", fmt.Sprintf("%d", offset)).
		Get("/recipes")

	if err != nil {
		common.LogWarn("取得食譜列表失敗",
			zap.Error(err),
			zap.String("code", common.ErrCodeTransportFailure),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return RecipeList{}
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("食譜列表回傳非成功狀態",
			zap.Int("status", resp.StatusCode()),
			zap.String("code", common.ErrCodeTransportFailure),
			zap.Int("offset", offset),
		)
		return RecipeList{}
	}

	var result RecipeList
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		common.LogWarn("解析食譜列表失敗",
			zap.Error(err),
			zap.String("code", common.ErrCodeInvalidResponse),
		)
		return RecipeList{}
	}

	common.LogDebug("食譜列表已取得",
		zap.Int("total", result.Total),
		zap.Int("count", len(result.Recipes)),
		zap.Int("offset", offset),
	)
	return result
}

// SearchRecipes 以料理名搜尋食譜
//
// 空白查詢由互動層擋下，不會走到這裡。
func (c *Client) SearchRecipes(ctx context.Context, query string) []Recipe {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get("/recipes/search")

	if err != nil {
		common.LogWarn("食譜搜尋失敗",
			zap.Error(err),
			zap.String("code", common.ErrCodeTransportFailure),
			zap.String("query", query),
		)
		return nil
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("食譜搜尋回傳非成功狀態",
			zap.Int("status", resp.StatusCode()),
			zap.String("code", common.ErrCodeTransportFailure),
			zap.String("query", query),
		)
		return nil
	}

	var result []Recipe
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		common.LogWarn("解析搜尋結果失敗",
			zap.Error(err),
			zap.String("code", common.ErrCodeInvalidResponse),
		)
		return nil
	}

	return result
}

// GetRecipe 取得單一食譜詳細資料
//
// 深連結用的協作端點，核心流程不會呼叫；失敗時回傳 nil。
func (c *Client) GetRecipe(ctx context.Context, id int) *Recipe {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/recipes/%d", id))

	if err != nil || resp.StatusCode() != http.StatusOK {
		common.LogWarn("取得食譜詳細資料失敗",
			zap.String("code", common.ErrCodeTransportFailure),
			zap.Int("id", id),
		)
		return nil
	}

	var result Recipe
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		common.LogWarn("解析食譜詳細資料失敗",
			zap.Error(err),
			zap.String("code", common.ErrCodeInvalidResponse),
		)
		return nil
	}

	return &result
}
