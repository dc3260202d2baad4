package errs

var (
	SystemError   = ErrorCode{Code: 505001, Msg: "系统错误"}
	OrderNotFound = ErrorCode{Code: 505002, Msg: "订单未找到"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
