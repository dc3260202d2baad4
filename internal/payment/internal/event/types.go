package event

const paymentEventName = "payment_events"

// PaymentEvent 支付会话完成事件, 只携带会话序列号
// 消费方拿着序列号回查网关, 事件本身不作为金额或状态的依据
type PaymentEvent struct {
	SessionSN string `json:"session_sn"`
}
