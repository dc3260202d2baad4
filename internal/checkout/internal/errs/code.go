package errs

var (
	SystemError        = ErrorCode{Code: 506001, Msg: "系统错误"}
	NoAddress          = ErrorCode{Code: 506002, Msg: "请先填写收货地址"}
	BookNotFound       = ErrorCode{Code: 506003, Msg: "图书不存在或已下架"}
	InvalidCart        = ErrorCode{Code: 506004, Msg: "购物车非法"}
	SessionNotPaid     = ErrorCode{Code: 506005, Msg: "支付尚未完成"}
	RefundedToCustomer = ErrorCode{Code: 506006, Msg: "订单无法履约, 款项已原路退回"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
