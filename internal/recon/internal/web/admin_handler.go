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
	"errors"

	"github.com/ecodeclub/bookstore/internal/recon/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = (*AdminHandler)(nil)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/admin/order")
	g.POST("/cancel", ginx.B[CancelOrderReq](h.CancelOrder))
	g.POST("/emit", ginx.B[EmitTicketReq](h.EmitTicket))
	g.POST("/reconcile", ginx.B[ReconcileOrderReq](h.ReconcileOrder))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

// CancelOrder 管理员取消订单, 先退款再释放运单
func (h *AdminHandler) CancelOrder(ctx *ginx.Context, req CancelOrderReq) (ginx.Result, error) {
	err := h.svc.CancelOrder(ctx, req.OrderID)
	switch {
	case err == nil:
		return ginx.Result{Msg: "OK"}, nil
	case errors.Is(err, service.ErrAlreadyTerminal):
		return alreadyClosedResult, err
	case errors.Is(err, service.ErrRefundUnrecoverable):
		return refundUnrecoverableResult, err
	default:
		return systemErrorResult, err
	}
}

func (h *AdminHandler) EmitTicket(ctx *ginx.Context, req EmitTicketReq) (ginx.Result, error) {
	err := h.svc.EmitTicket(ctx, req.OrderID)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

// ReconcileOrder 手动触发单个订单对账, 不用等定时任务
func (h *AdminHandler) ReconcileOrder(ctx *ginx.Context, req ReconcileOrderReq) (ginx.Result, error) {
	err := h.svc.ReconcileOrder(ctx, req.OrderID)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}
