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

package recon

import (
	"github.com/ecodeclub/bookstore/internal/order"
	"github.com/ecodeclub/bookstore/internal/payment"
	"github.com/ecodeclub/bookstore/internal/recon/internal/event"
	"github.com/ecodeclub/bookstore/internal/recon/internal/service"
	"github.com/ecodeclub/bookstore/internal/recon/internal/web"
	"github.com/ecodeclub/bookstore/internal/recon/ioc"
	"github.com/ecodeclub/bookstore/internal/shipping"
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
)

func InitModule(q mq.MQ,
	om *order.Module, paym *payment.Module, sm *shipping.Module) (*Module, error) {
	wire.Build(
		wire.FieldsOf(new(*order.Module), "Svc"),
		wire.FieldsOf(new(*payment.Module), "Svc"),
		wire.FieldsOf(new(*shipping.Module), "Svc"),
		event.NewOrderStatusEventProducer,
		ioc.InitConfig,
		service.NewService,
		web.NewAdminHandler,
		ioc.InitReconcileOrdersJob,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}
