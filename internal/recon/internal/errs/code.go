package errs

var (
	SystemError         = ErrorCode{Code: 507001, Msg: "系统错误"}
	OrderAlreadyClosed  = ErrorCode{Code: 507002, Msg: "订单已处于终态"}
	RefundUnrecoverable = ErrorCode{Code: 507003, Msg: "退款状态异常, 需要人工介入"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
