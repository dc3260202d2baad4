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
	"fmt"

	"github.com/ecodeclub/bookstore/internal/order/internal/domain"
	"github.com/ecodeclub/bookstore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/bookstore/internal/order/internal/service"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/list", ginx.BS[ListOrdersReq](h.ListOrders))
	g.POST("/detail", ginx.BS[RetrieveOrderDetailReq](h.RetrieveOrderDetail))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) ListOrders(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	os, total, err := h.svc.ListOrders(ctx.Request.Context(), req.Offset, req.Limit, sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询订单列表失败: %w", err)
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(os, func(idx int, src domain.Order) Order {
				return toOrderVO(src)
			}),
		},
	}, nil
}

func (h *Handler) RetrieveOrderDetail(ctx *ginx.Context, req RetrieveOrderDetailReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindUserVisibleOrder(ctx.Request.Context(), req.SN, sess.Claims().Uid)
	if err != nil {
		if errors.Is(err, dao.ErrRecordNotFound) {
			return orderNotFoundResult, fmt.Errorf("订单未找到: %w", err)
		}
		return systemErrorResult, fmt.Errorf("查询订单详情失败: %w", err)
	}
	return ginx.Result{
		Data: RetrieveOrderDetailResp{Order: toOrderVO(order)},
	}, nil
}
