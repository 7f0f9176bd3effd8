package recommend

import (
	"math"

	"substitute-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Kind 結果集合的判別標記
type Kind string

const (
	KindEmpty  Kind = "empty"  // 沒有結果（包含傳輸失敗與零候選）
	KindSingle Kind = "single" // 單一目標的候選列表
	KindMulti  Kind = "multi"  // 多重目標的組合列表
)

// ResultSet 推薦結果集合
//
// 以 tagged variant 取代「兩個各自可空的集合」：單次送出只會有一種形狀。
// 列表順序就是服務端排名（位置 0 為最佳），客戶端不重排；
// 前三名的獎牌標示純粹是顯示慣例。
type ResultSet struct {
	kind       Kind
	candidates []SingleCandidate
	combos     []Combination
}

// EmptyResult 回傳空結果
//
// 傳輸失敗與零候選刻意共用同一個狀態，畫面只顯示「沒有推薦結果」；
// 這是沿襲來源行為的已知精度損失，測試有記載。
func EmptyResult() ResultSet {
	return ResultSet{kind: KindEmpty}
}

// SingleResult 以候選列表建立結果集合
func SingleResult(candidates []SingleCandidate) ResultSet {
	if len(candidates) == 0 {
		return EmptyResult()
	}
	return ResultSet{kind: KindSingle, candidates: candidates}
}

// MultiResult 以組合列表建立結果集合
//
// 每個組合的 substitutes 長度必須等於送出的目標數；任何一筆不符都視為
// 服務端違約，整份回應降級為空結果，而不是渲染對不齊的配對。
func MultiResult(combos []Combination, targetCount int) ResultSet {
	if len(combos) == 0 {
		return EmptyResult()
	}
	for i, combo := range combos {
		if len(combo.Substitutes) != targetCount {
			common.LogWarn("組合長度與目標數不符，整份結果作廢",
				zap.Int("index", i),
				zap.Int("substitutes", len(combo.Substitutes)),
				zap.Int("targets", targetCount),
				zap.String("code", common.ErrCodeInvalidResponse),
			)
			return EmptyResult()
		}
	}
	return ResultSet{kind: KindMulti, combos: combos}
}

// Kind 回傳結果形狀
func (r ResultSet) Kind() Kind {
	return r.kind
}

// IsEmpty 是否沒有可顯示的結果
func (r ResultSet) IsEmpty() bool {
	return r.kind == KindEmpty
}

// Len 結果筆數
func (r ResultSet) Len() int {
	switch r.kind {
	case KindSingle:
		return len(r.candidates)
	case KindMulti:
		return len(r.combos)
	}
	return 0
}

// Candidates 單一目標的候選列表（KindSingle 以外回傳 nil）
func (r ResultSet) Candidates() []SingleCandidate {
	if r.kind != KindSingle {
		return nil
	}
	return r.candidates
}

// Combinations 多重目標的組合列表（KindMulti 以外回傳 nil）
func (r ResultSet) Combinations() []Combination {
	if r.kind != KindMulti {
		return nil
	}
	return r.combos
}

// SubstitutionPair 目標食材與替代品的逐位配對
type SubstitutionPair struct {
	Target     string
	Substitute string
}

// Pairs 將指定組合與目標順序逐位拉鏈
//
// MultiResult 已保證長度相等，這裡只處理索引範圍。
func (r ResultSet) Pairs(index int, targets []string) []SubstitutionPair {
	if r.kind != KindMulti || index < 0 || index >= len(r.combos) {
		return nil
	}
	combo := r.combos[index]
	pairs := make([]SubstitutionPair, 0, len(targets))
	for i, target := range targets {
		pairs = append(pairs, SubstitutionPair{
			Target:     target,
			Substitute: combo.Substitutes[i],
		})
	}
	return pairs
}

// Percentify 將 0.0–1.0 的分數轉為整數百分比
//
// 僅供顯示；內部儲存與比較一律維持 0.0–1.0。
func Percentify(score float64) int {
	return int(math.Round(score * 100))
}
