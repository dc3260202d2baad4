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

package web

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/bookstore/internal/checkout/internal/domain"
	"github.com/ecodeclub/bookstore/internal/checkout/internal/service"
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc   service.Service
	cache ecache.Cache
}

func NewHandler(svc service.Service, cache ecache.Cache) *Handler {
	return &Handler{svc: svc, cache: cache}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/checkout")
	g.POST("/session", ginx.BS[CreateSessionReq](h.CreateSession))
	g.POST("/complete", ginx.BS[CompleteCheckoutReq](h.CompleteCheckout))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) CreateSession(ctx *ginx.Context, req CreateSessionReq, sess session.Session) (ginx.Result, error) {
	if err := h.checkRequestID(ctx.Request.Context(), req.RequestID); err != nil {
		return systemErrorResult, fmt.Errorf("请求ID错误: %w", err)
	}
	cs, err := h.svc.CreateSession(ctx.Request.Context(), sess.Claims().Uid,
		slice.Map(req.Items, func(idx int, src CartItem) domain.CartItem {
			return domain.CartItem{BookID: src.BookID, Quantity: src.Quantity}
		}), req.ShippingServiceID)
	switch {
	case errors.Is(err, service.ErrNoAddress):
		return noAddressResult, err
	case errors.Is(err, service.ErrBookNotFound):
		return bookNotFoundResult, err
	case errors.Is(err, service.ErrInvalidCart):
		return invalidCartResult, err
	case err != nil:
		return systemErrorResult, fmt.Errorf("创建结账会话失败: %w", err)
	}
	return ginx.Result{
		Data: CreateSessionResp{SN: cs.SN, PayURL: cs.PayURL},
	}, nil
}

// CompleteCheckout 支付页回跳后的确认入口
// 与支付事件消费者走同一条幂等的完成结算路径
func (h *Handler) CompleteCheckout(ctx *ginx.Context, req CompleteCheckoutReq, _ session.Session) (ginx.Result, error) {
	o, err := h.svc.CompleteCheckout(ctx.Request.Context(), req.SessionSN)
	switch {
	case errors.Is(err, service.ErrSessionNotCompleted):
		return sessionNotPaidResult, err
	case errors.Is(err, service.ErrRefundedNotFulfilled):
		return refundedResult, err
	case err != nil:
		return systemErrorResult, fmt.Errorf("完成结算失败: %w", err)
	}
	return ginx.Result{
		Data: CompleteCheckoutResp{OrderSN: o.SN, Status: o.Status.ToUint8()},
	}, nil
}

func (h *Handler) checkRequestID(ctx context.Context, requestID string) error {
	if requestID == "" {
		return fmt.Errorf("请求ID为空")
	}
	key := fmt.Sprintf("checkout:session:%s", requestID)
	val := h.cache.Get(ctx, key)
	if !val.KeyNotFound() {
		return fmt.Errorf("重复请求")
	}
	if err := h.cache.Set(ctx, key, requestID, time.Hour*24); err != nil {
		return fmt.Errorf("缓存请求ID失败: %w", err)
	}
	return nil
}
