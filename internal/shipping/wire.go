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

package shipping

import (
	"time"

	"github.com/ecodeclub/bookstore/internal/shipping/internal/service"
	"github.com/ecodeclub/bookstore/internal/shipping/internal/service/client"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

func InitModule() *Module {
	wire.Build(
		initCarrierClient,
		service.NewService,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}

func initCarrierClient() client.CarrierAPIService {
	type Config struct {
		BaseURL        string `yaml:"baseURL"`
		Token          string `yaml:"token"`
		TimeoutSeconds int64  `yaml:"timeoutSeconds"`
	}
	var cfg Config
	err := econf.UnmarshalKey("carrier", &cfg)
	if err != nil {
		panic(err)
	}
	return client.NewRestyCarrierClient(cfg.BaseURL, cfg.Token, time.Duration(cfg.TimeoutSeconds)*time.Second)
}
