package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"substitute-finder/internal/core/catalog"
	"substitute-finder/internal/core/flow"
	"substitute-finder/internal/core/recommend"
	"substitute-finder/internal/infrastructure/config"
	"substitute-finder/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// medals 前三名的獎牌標示（純顯示慣例，與排名計算無關）
var medals = []string{"🥇", "🥈", "🥉"}

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.App.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("啟動應用",
		zap.String("version", cfg.App.Version),
		zap.String("service_base_url", cfg.Service.BaseURL),
	)

	session := flow.NewSession(cfg, catalog.NewClient(cfg), recommend.NewClient(cfg))
	ctx := context.Background()

	// 進場先載入第一頁
	if _, err := session.LoadMore(ctx); err != nil {
		common.LogWarn("初始列表載入失敗", zap.Error(err))
	}

	fmt.Println("=== 대체 식재료 추천 / 替代食材推薦 ===")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		render(session)
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		handle(ctx, session, line)
	}

	common.LogInfo("Client exited")
}

// render 依目前階段畫出狀態
func render(s *flow.Session) {
	switch s.Stage() {
	case flow.StageBrowsing:
		recipes := s.Recipes()
		if results := s.SearchResults(); len(results) > 0 {
			fmt.Printf("-- 搜尋「%s」結果 --\n", s.Query())
			recipes = results
		} else {
			fmt.Printf("-- 食譜列表（%d / %d）--\n", len(recipes), s.Total())
		}
		for i, r := range recipes {
			fmt.Printf("  [%d] %s #%d（食材 %d 項）\n", i, r.Name, r.ID, len(r.Ingredients))
		}
		fmt.Println("指令: search <關鍵字> | more | pick <編號> | quit")

	case flow.StageSelecting:
		r := s.Recipe()
		targets := s.Targets()
		fmt.Printf("-- %s #%d：選取要替代的食材 --\n", r.Name, r.ID)
		for i, ing := range r.Ingredients {
			mark := " "
			for _, t := range targets {
				if t == ing {
					mark = "✔"
					break
				}
			}
			fmt.Printf("  [%d]%s %s\n", i, mark, ing)
		}
		w := s.Weights()
		fmt.Printf("權重: similarity=%.1f context=%.1f method=%.1f category=%.1f\n",
			w.Similarity, w.Context, w.Method, w.Category)
		fmt.Println("指令: <編號> 切換選取 | w <維度> <值> | go | back | home")

	case flow.StageViewing:
		targets := s.ResultTargets()
		results := s.Results()
		if results.IsEmpty() {
			// 服務不可用與零候選共用同一訊息
			fmt.Println("추천 결과가 없습니다 / 沒有推薦結果，請改選其他食材")
		} else {
			renderResults(s, results, targets)
		}
		fmt.Println("指令: <編號> 展開明細 | back | home")
	}
}

// renderResults 顯示排名結果（順序即服務端排名，不重排）
func renderResults(s *flow.Session, results recommend.ResultSet, targets []string) {
	expanded := s.Expanded()
	switch results.Kind() {
	case recommend.KindSingle:
		fmt.Printf("-- 「%s」的替代推薦 --\n", targets[0])
		for i, cand := range results.Candidates() {
			fmt.Printf("  [%d] %s %s  %d점\n", i, medal(i), cand.Substitute, recommend.Percentify(cand.FinalScore))
			if i == expanded {
				fmt.Printf("      유사도 %d%%  문맥 %d%%  조리법 %d%%  카테고리 %d%%\n",
					recommend.Percentify(cand.Similarity),
					recommend.Percentify(cand.Context),
					recommend.Percentify(cand.Method),
					recommend.Percentify(cand.Category))
			}
		}
	case recommend.KindMulti:
		fmt.Printf("-- %s 的最佳替代組合 --\n", strings.Join(targets, " + "))
		for i := range results.Combinations() {
			combo := results.Combinations()[i]
			fmt.Printf("  [%d] %s 조합 %d  %d점\n", i, medal(i), i+1, recommend.Percentify(combo.Score))
			if i == expanded {
				for _, pair := range s.ResultPairs(i) {
					fmt.Printf("      %s → %s\n", pair.Target, pair.Substitute)
				}
			}
		}
	}
}

func medal(rank int) string {
	if rank < len(medals) {
		return medals[rank]
	}
	return fmt.Sprintf("%d.", rank+1)
}

// handle 解析並執行一行指令
func handle(ctx context.Context, s *flow.Session, line string) {
	if line == "" {
		return
	}
	fields := strings.Fields(line)

	switch s.Stage() {
	case flow.StageBrowsing:
		switch fields[0] {
		case "search":
			if len(fields) > 1 {
				s.Search(ctx, strings.Join(fields[1:], " "))
			}
		case "more":
			if _, err := s.LoadMore(ctx); err != nil {
				fmt.Println("載入中，請稍候")
			}
		case "pick":
			if len(fields) == 2 {
				pickRecipe(s, fields[1])
			}
		}

	case flow.StageSelecting:
		switch fields[0] {
		case "go":
			if err := s.Submit(ctx); err != nil {
				fmt.Println("請先選取至少一項食材")
			}
		case "back":
			s.Back()
		case "home":
			s.Reset()
		case "w":
			if len(fields) == 3 {
				if v, err := strconv.ParseFloat(fields[2], 64); err == nil {
					s.SetWeight(recommend.Dimension(fields[1]), v)
				}
			}
		default:
			if idx, err := strconv.Atoi(fields[0]); err == nil {
				r := s.Recipe()
				if r != nil && idx >= 0 && idx < len(r.Ingredients) {
					_ = s.ToggleIngredient(r.Ingredients[idx])
				}
			}
		}

	case flow.StageViewing:
		switch fields[0] {
		case "back":
			s.Back()
		case "home":
			s.Reset()
		default:
			if idx, err := strconv.Atoi(fields[0]); err == nil {
				s.ToggleExpand(idx)
			}
		}
	}
}

// pickRecipe 依顯示編號選定食譜
func pickRecipe(s *flow.Session, arg string) {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return
	}
	list := s.Recipes()
	if results := s.SearchResults(); len(results) > 0 {
		list = results
	}
	if idx < 0 || idx >= len(list) {
		return
	}
	if err := s.SelectRecipe(list[idx]); err != nil {
		common.LogWarn("選定食譜失敗", zap.Error(err))
	}
}
