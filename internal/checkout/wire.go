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

//go:build wireinject

package checkout

import (
	"github.com/ecodeclub/bookstore/internal/checkout/internal/event"
	"github.com/ecodeclub/bookstore/internal/checkout/internal/service"
	"github.com/ecodeclub/bookstore/internal/checkout/internal/web"
	"github.com/ecodeclub/bookstore/internal/checkout/ioc"
	"github.com/ecodeclub/bookstore/internal/order"
	"github.com/ecodeclub/bookstore/internal/payment"
	"github.com/ecodeclub/bookstore/internal/pkg/sequencenumber"
	"github.com/ecodeclub/bookstore/internal/product"
	"github.com/ecodeclub/bookstore/internal/shipping"
	"github.com/ecodeclub/bookstore/internal/user"
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
)

func InitModule(q mq.MQ, cache ecache.Cache,
	um *user.Module, pm *product.Module, sm *shipping.Module,
	paym *payment.Module, om *order.Module) (*Module, error) {
	wire.Build(
		wire.FieldsOf(new(*user.Module), "Svc"),
		wire.FieldsOf(new(*product.Module), "Svc"),
		wire.FieldsOf(new(*shipping.Module), "Svc"),
		wire.FieldsOf(new(*payment.Module), "Svc"),
		wire.FieldsOf(new(*order.Module), "Svc"),
		sequencenumber.NewGenerator,
		ioc.InitWarehouseAddress,
		service.NewService,
		web.NewHandler,
		event.NewPaymentConsumer,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}
