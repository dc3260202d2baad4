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

package order

import (
	"github.com/ecodeclub/bookstore/internal/order/internal/domain"
	"github.com/ecodeclub/bookstore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/bookstore/internal/order/internal/service"
	"github.com/ecodeclub/bookstore/internal/order/internal/web"
)

type (
	Handler          = web.Handler
	Order            = domain.Order
	OrderItem        = domain.OrderItem
	OrderStatus      = domain.OrderStatus
	CancelReason     = domain.CancelReason
	ShippingSnapshot = domain.ShippingSnapshot
	ShippingAddress  = domain.ShippingAddress
	ShippingOption   = domain.ShippingOption
	ShippingVolume   = domain.ShippingVolume
	ShippingProduct  = domain.ShippingProduct
	Service          = service.Service
)

const (
	StatusPreparing = domain.StatusPreparing
	StatusInTransit = domain.StatusInTransit
	StatusDelivered = domain.StatusDelivered
	StatusCanceled  = domain.StatusCanceled

	CancelReasonNone    = domain.CancelReasonNone
	CancelReasonAdmin   = domain.CancelReasonAdmin
	CancelReasonCarrier = domain.CancelReasonCarrier
)

var (
	ErrRecordNotFound            = dao.ErrRecordNotFound
	ErrOrderConcurrentlyModified = dao.ErrRecordChangedConcurrently
	ErrOrderAlreadyTerminal      = dao.ErrOrderAlreadyTerminal
)

type Module struct {
	Hdl *Handler
	Svc Service
}
