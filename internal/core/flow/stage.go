package flow

// Stage 互動流程的階段
//
// 同一時間只會有一個階段生效，畫面要顯示哪一塊資料以此為準。
// 階段只能透過 Session 的轉移操作變更，不開放外部直接指定。
type Stage string

const (
	// StageBrowsing 瀏覽／搜尋食譜
	StageBrowsing Stage = "browsing"
	// StageSelecting 選取要替代的食材與權重
	StageSelecting Stage = "selecting-ingredients"
	// StageViewing 檢視排名後的替代結果
	StageViewing Stage = "viewing-results"
)
