// Copyright 2024 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wechat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ecodeclub/bookstore/internal/payment/internal/domain"
	"github.com/gotomicro/ego/core/elog"
	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments/native"
	"github.com/wechatpay-apiv3/wechatpay-go/services/refunddomestic"
)

var (
	errUnknownTradeState  = errors.New("未知的微信事务状态")
	errUnknownRefundState = errors.New("未知的微信退款状态")
)

//go:generate mockgen -source=./session.go -package=wechatmocks -destination=./mocks/session.mock.go SessionAPIService RefundAPIService
type SessionAPIService interface {
	Prepay(ctx context.Context, req native.PrepayRequest) (resp *native.PrepayResponse, result *core.APIResult, err error)
	QueryOrderByOutTradeNo(ctx context.Context, req native.QueryOrderByOutTradeNoRequest) (resp *payments.Transaction, result *core.APIResult, err error)
}

type RefundAPIService interface {
	Create(ctx context.Context, req refunddomestic.CreateRequest) (resp *refunddomestic.Refund, result *core.APIResult, err error)
	QueryByOutRefundNo(ctx context.Context, req refunddomestic.QueryByOutRefundNoRequest) (resp *refunddomestic.Refund, result *core.APIResult, err error)
}

// sessionAttach 随支付会话往返的元数据
// 完成结算时从网关回读, 而不是相信客户端重新提交的值
type sessionAttach struct {
	ShippingServiceID int64 `json:"shipping_service_id"`
}

type SessionPaymentService struct {
	svc       SessionAPIService
	refundSvc RefundAPIService
	l         *elog.Component

	appID     string
	mchID     string
	notifyURL string
	// 在微信 native 里面，分别是
	// SUCCESS：支付成功
	// REFUND：转入退款
	// NOTPAY：未支付
	// CLOSED：已关闭
	// REVOKED：已撤销（付款码支付）
	// USERPAYING：用户支付中（付款码支付）
	// PAYERROR：支付失败(其他原因，如银行返回失败)
	tradeStateToSessionStatus map[string]domain.SessionStatus
	// REFUND 也映射为已完成: 款项曾被捕获, 退款进度由退款查询单独跟踪
	refundStateToRefundStatus map[string]domain.RefundStatus
}

func NewSessionPaymentService(svc SessionAPIService, refundSvc RefundAPIService, appid, mchid, notifyURL string) *SessionPaymentService {
	return &SessionPaymentService{
		svc:       svc,
		refundSvc: refundSvc,
		l:         elog.DefaultLogger,
		appID:     appid,
		mchID:     mchid,
		notifyURL: notifyURL,
		tradeStateToSessionStatus: map[string]domain.SessionStatus{
			"SUCCESS":    domain.SessionStatusComplete,
			"REFUND":     domain.SessionStatusComplete,
			"NOTPAY":     domain.SessionStatusOpen,
			"USERPAYING": domain.SessionStatusOpen,
			"CLOSED":     domain.SessionStatusExpired,
			"REVOKED":    domain.SessionStatusExpired,
			"PAYERROR":   domain.SessionStatusExpired,
		},
		refundStateToRefundStatus: map[string]domain.RefundStatus{
			"PROCESSING": domain.RefundStatusPending,
			"SUCCESS":    domain.RefundStatusSucceeded,
			"CLOSED":     domain.RefundStatusFailed,
			"ABNORMAL":   domain.RefundStatusFailed,
		},
	}
}

// CreateSession 打开一个托管支付会话, 返回支付URL
func (s *SessionPaymentService) CreateSession(ctx context.Context, session domain.Session) (domain.Session, error) {
	if session.AmountTotal <= 0 {
		return domain.Session{}, fmt.Errorf("会话金额非法: %d", session.AmountTotal)
	}
	attach, err := json.Marshal(sessionAttach{ShippingServiceID: session.ChosenServiceID})
	if err != nil {
		return domain.Session{}, fmt.Errorf("序列化会话元数据失败: %w", err)
	}
	resp, _, err := s.svc.Prepay(ctx,
		native.PrepayRequest{
			Appid:       core.String(s.appID),
			Mchid:       core.String(s.mchID),
			Description: core.String(session.Description),
			OutTradeNo:  core.String(session.SN),
			TimeExpire:  core.Time(time.Now().Add(time.Minute * 30)),
			NotifyUrl:   core.String(s.notifyURL),
			Attach:      core.String(string(attach)),
			Amount: &native.Amount{
				Currency: core.String("CNY"),
				Total:    core.Int64(session.AmountTotal),
			},
		},
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("创建支付会话失败: %w", err)
	}
	session.PayURL = *resp.CodeUrl
	session.Status = domain.SessionStatusOpen
	return session, nil
}

// GetSession 回查网关获取会话的最新状态, 状态推断以此为准
func (s *SessionPaymentService) GetSession(ctx context.Context, sessionSN string) (domain.Session, error) {
	txn, _, err := s.svc.QueryOrderByOutTradeNo(ctx, native.QueryOrderByOutTradeNoRequest{
		OutTradeNo: core.String(sessionSN),
		Mchid:      core.String(s.mchID),
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("查询支付会话失败: %w", err)
	}
	return s.toSessionDomain(txn)
}

// ConvertCallbackTransactionToDomain 把支付通知里的事务转成会话
func (s *SessionPaymentService) ConvertCallbackTransactionToDomain(txn *payments.Transaction) (domain.Session, error) {
	return s.toSessionDomain(txn)
}

func (s *SessionPaymentService) toSessionDomain(txn *payments.Transaction) (domain.Session, error) {
	status, ok := s.tradeStateToSessionStatus[*txn.TradeState]
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: %s", errUnknownTradeState, *txn.TradeState)
	}
	res := domain.Session{
		SN:        *txn.OutTradeNo,
		Status:    status,
		RawStatus: *txn.TradeState,
	}
	if txn.TransactionId != nil {
		res.PaymentID = *txn.TransactionId
	}
	if txn.Amount != nil && txn.Amount.Total != nil {
		res.AmountTotal = *txn.Amount.Total
	}
	if txn.Attach != nil && *txn.Attach != "" {
		var attach sessionAttach
		if err := json.Unmarshal([]byte(*txn.Attach), &attach); err != nil {
			s.l.Warn("解析会话元数据失败",
				elog.FieldErr(err),
				elog.String("session_sn", res.SN))
		} else {
			res.ChosenServiceID = attach.ShippingServiceID
		}
	}
	return res, nil
}

// EnsureRefund 幂等地保证退款存在
// 先按退款序列号查询, 查不到才创建, 避免上一次崩溃的运行留下的退款被重复发起
func (s *SessionPaymentService) EnsureRefund(ctx context.Context, sessionSN string, amount int64) (domain.Refund, error) {
	refundSN := s.refundSN(sessionSN)
	resp, _, err := s.refundSvc.QueryByOutRefundNo(ctx, refunddomestic.QueryByOutRefundNoRequest{
		OutRefundNo: core.String(refundSN),
	})
	switch {
	case err == nil:
		return s.toRefundDomain(resp)
	case !isRefundNotFound(err):
		return domain.Refund{}, fmt.Errorf("查询退款失败: %w", err)
	}

	created, _, err := s.refundSvc.Create(ctx, refunddomestic.CreateRequest{
		OutTradeNo:  core.String(sessionSN),
		OutRefundNo: core.String(refundSN),
		Reason:      core.String("订单无法履约, 全额退款"),
		Amount: &refunddomestic.AmountReq{
			Refund:   core.Int64(amount),
			Total:    core.Int64(amount),
			Currency: core.String("CNY"),
		},
	})
	if err != nil {
		return domain.Refund{}, fmt.Errorf("创建退款失败: %w", err)
	}
	return s.toRefundDomain(created)
}

// GetRefund 查询既有退款, 不存在时返回 zero 值与 false
func (s *SessionPaymentService) GetRefund(ctx context.Context, sessionSN string) (domain.Refund, bool, error) {
	resp, _, err := s.refundSvc.QueryByOutRefundNo(ctx, refunddomestic.QueryByOutRefundNoRequest{
		OutRefundNo: core.String(s.refundSN(sessionSN)),
	})
	if err != nil {
		if isRefundNotFound(err) {
			return domain.Refund{}, false, nil
		}
		return domain.Refund{}, false, fmt.Errorf("查询退款失败: %w", err)
	}
	refund, err := s.toRefundDomain(resp)
	if err != nil {
		return domain.Refund{}, false, err
	}
	return refund, true, nil
}

// refundSN 由会话序列号推导, 保证一个会话至多对应一笔退款
func (s *SessionPaymentService) refundSN(sessionSN string) string {
	return fmt.Sprintf("R%s", sessionSN)
}

func (s *SessionPaymentService) toRefundDomain(refund *refunddomestic.Refund) (domain.Refund, error) {
	raw := string(*refund.Status)
	status, ok := s.refundStateToRefundStatus[raw]
	if !ok {
		return domain.Refund{}, fmt.Errorf("%w: %s", errUnknownRefundState, raw)
	}
	res := domain.Refund{
		SN:        *refund.OutRefundNo,
		Status:    status,
		RawStatus: raw,
	}
	if refund.OutTradeNo != nil {
		res.SessionSN = *refund.OutTradeNo
	}
	if refund.TransactionId != nil {
		res.PaymentID = *refund.TransactionId
	}
	if refund.Amount != nil && refund.Amount.Refund != nil {
		res.Amount = *refund.Amount.Refund
	}
	return res, nil
}

func isRefundNotFound(err error) bool {
	var apiErr *core.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
