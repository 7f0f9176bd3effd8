package common

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 預定義錯誤代碼
const (
	ErrCodeTransportFailure = "TRANSPORT_FAILURE" // 遠端服務無法連線或回傳非 2xx
	ErrCodeEmptyResult      = "EMPTY_RESULT"      // 服務可連線但沒有任何候選
	ErrCodeInvalidResponse  = "INVALID_RESPONSE"  // 回應格式違反契約（如組合長度不符）
	ErrCodeInvalidSelection = "INVALID_SELECTION" // 選取狀態不滿足前置條件
	ErrCodeRequestInFlight  = "REQUEST_IN_FLIGHT" // 已有請求進行中，拒絕重複送出
)

// 預定義錯誤
//
// 注意：TransportFailure 與 EmptyResult 在畫面上刻意收斂成同一個「沒有推薦結果」
// 狀態，那幾種情境只以錯誤代碼出現在客戶端日誌，不會以 error 形式往上傳。
var (
	ErrInvalidSelection = NewError(ErrCodeInvalidSelection, "選取狀態不符前置條件", nil)
	ErrRequestInFlight  = NewError(ErrCodeRequestInFlight, "已有請求進行中", nil)
)
