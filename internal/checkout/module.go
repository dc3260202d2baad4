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

package checkout

import (
	"github.com/ecodeclub/bookstore/internal/checkout/internal/domain"
	"github.com/ecodeclub/bookstore/internal/checkout/internal/event"
	"github.com/ecodeclub/bookstore/internal/checkout/internal/service"
	"github.com/ecodeclub/bookstore/internal/checkout/internal/web"
)

type (
	Handler         = web.Handler
	CartItem        = domain.CartItem
	CheckoutSession = domain.CheckoutSession
	Service         = service.Service
	PaymentConsumer = event.PaymentConsumer
)

var (
	ErrNoAddress               = service.ErrNoAddress
	ErrBookNotFound            = service.ErrBookNotFound
	ErrInvalidCart             = service.ErrInvalidCart
	ErrSessionNotCompleted     = service.ErrSessionNotCompleted
	ErrMissingShippingSnapshot = service.ErrMissingShippingSnapshot
	ErrRefundedNotFulfilled    = service.ErrRefundedNotFulfilled
)

type Module struct {
	Hdl *Handler
	Svc Service
	C   *PaymentConsumer
}
