package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"substitute-finder/internal/core/catalog"
	"substitute-finder/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Service: config.ServiceConfig{
			BaseURL: baseURL,
			Timeout: 5 * time.Second,
		},
	}
}

// fakeService 假評分服務，記錄每個端點被呼叫的次數與最後一份請求
type fakeService struct {
	singleCalls int
	multiCalls  int
	lastRequest recommendRequest
	singleBody  []SingleCandidate
	multiBody   []Combination
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/recommend/single", func(w http.ResponseWriter, r *http.Request) {
		f.singleCalls++
		_ = json.NewDecoder(r.Body).Decode(&f.lastRequest)
		_ = json.NewEncoder(w).Encode(f.singleBody)
	})
	mux.HandleFunc("/recommend/multi", func(w http.ResponseWriter, r *http.Request) {
		f.multiCalls++
		_ = json.NewDecoder(r.Body).Decode(&f.lastRequest)
		_ = json.NewEncoder(w).Encode(f.multiBody)
	})
	return mux
}

func kimchiJjigae() *catalog.Recipe {
	return &catalog.Recipe{
		ID:          7,
		Name:        "김치찌개",
		Ingredients: []string{"돼지고기", "두부", "대파"},
	}
}

func TestBuildAndSendSingleTarget(t *testing.T) {
	fake := &fakeService{
		singleBody: []SingleCandidate{{Substitute: "소고기", FinalScore: 0.91}},
	}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	weights := Weights{Similarity: 0.5, Context: 0.5}

	rs := client.BuildAndSend(context.Background(), kimchiJjigae(), []string{"돼지고기"}, weights)

	// 恰好一個目標只會走 single，絕不會碰 multi
	assert.Equal(t, 1, fake.singleCalls)
	assert.Equal(t, 0, fake.multiCalls)

	// 單一目標仍包成一個元素的陣列，stopwords 為空集合
	assert.Equal(t, []string{"돼지고기"}, fake.lastRequest.Target)
	assert.Equal(t, []string{}, fake.lastRequest.Stopwords)
	assert.Equal(t, 0.5, fake.lastRequest.WSimilarity)
	assert.Equal(t, 0.5, fake.lastRequest.WContext)
	assert.Equal(t, 0.0, fake.lastRequest.WMethod)
	assert.Equal(t, 0.0, fake.lastRequest.WCategory)

	require.Equal(t, KindSingle, rs.Kind())
	assert.Equal(t, "소고기", rs.Candidates()[0].Substitute)
}

func TestBuildAndSendMultiTarget(t *testing.T) {
	fake := &fakeService{
		multiBody: []Combination{
			{Substitutes: []string{"소고기", "버섯"}, Score: 0.85},
		},
	}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	rs := client.BuildAndSend(context.Background(), kimchiJjigae(), []string{"돼지고기", "두부"}, DefaultWeights())

	// 兩個以上的目標只會走 multi
	assert.Equal(t, 0, fake.singleCalls)
	assert.Equal(t, 1, fake.multiCalls)

	// 目標順序原樣送出，組合的 substitutes 與這個順序逐位對齊
	assert.Equal(t, []string{"돼지고기", "두부"}, fake.lastRequest.Target)

	require.Equal(t, KindMulti, rs.Kind())
	pairs := rs.Pairs(0, []string{"돼지고기", "두부"})
	require.Len(t, pairs, 2)
	assert.Equal(t, "소고기", pairs[0].Substitute)
	assert.Equal(t, "버섯", pairs[1].Substitute)
}

func TestBuildAndSendTransportFailureCollapsesToEmpty(t *testing.T) {
	// 服務不可達與零候選刻意收斂成同一個空結果狀態（沿襲來源行為）
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close() // 直接關掉模擬連不上

	client := NewClient(testConfig(srv.URL))
	rs := client.BuildAndSend(context.Background(), kimchiJjigae(), []string{"돼지고기"}, DefaultWeights())

	assert.True(t, rs.IsEmpty())
}

func TestBuildAndSendNonSuccessStatusCollapsesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	rs := client.BuildAndSend(context.Background(), kimchiJjigae(), []string{"돼지고기", "두부"}, DefaultWeights())

	assert.True(t, rs.IsEmpty())
}

func TestBuildAndSendZeroCandidates(t *testing.T) {
	fake := &fakeService{singleBody: []SingleCandidate{}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	rs := client.BuildAndSend(context.Background(), kimchiJjigae(), []string{"돼지고기"}, DefaultWeights())

	// 與傳輸失敗不可區分：同樣是空結果
	assert.True(t, rs.IsEmpty())
}

func TestBuildAndSendRejectsEmptyTargets(t *testing.T) {
	fake := &fakeService{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	rs := client.BuildAndSend(context.Background(), kimchiJjigae(), nil, DefaultWeights())

	assert.True(t, rs.IsEmpty())
	assert.Equal(t, 0, fake.singleCalls)
	assert.Equal(t, 0, fake.multiCalls)
}

func TestBuildAndSendMultiMismatchDegrades(t *testing.T) {
	fake := &fakeService{
		multiBody: []Combination{
			{Substitutes: []string{"소고기"}, Score: 0.85}, // 長度 1 ≠ 目標數 2
		},
	}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	rs := client.BuildAndSend(context.Background(), kimchiJjigae(), []string{"돼지고기", "두부"}, DefaultWeights())

	assert.True(t, rs.IsEmpty())
}

func TestCustomSingle(t *testing.T) {
	var got customRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recommend/custom/single", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode([]SingleCandidate{{Substitute: "두부", FinalScore: 0.7}})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	candidates := client.CustomSingle(context.Background(), "돼지고기", []string{"김치", "대파"})

	require.Len(t, candidates, 1)
	assert.Equal(t, []string{"돼지고기"}, got.Target)
	assert.Equal(t, []string{"김치", "대파"}, got.ContextIngs)
	assert.Equal(t, []string{}, got.Excluded)
}
