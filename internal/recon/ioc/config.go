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

package ioc

import (
	"time"

	"github.com/ecodeclub/bookstore/internal/recon/internal/job"
	"github.com/ecodeclub/bookstore/internal/recon/internal/service"
	"github.com/gotomicro/ego/core/econf"
)

func InitConfig() service.Config {
	type Config struct {
		TreatCanceledAsDelivered bool `yaml:"treatCanceledAsDelivered"`
		RequireRefundSettled     bool `yaml:"requireRefundSettled"`
	}
	var cfg Config
	err := econf.UnmarshalKey("recon", &cfg)
	if err != nil {
		panic(err)
	}
	return service.Config{
		TreatCanceledAsDelivered: cfg.TreatCanceledAsDelivered,
		RequireRefundSettled:     cfg.RequireRefundSettled,
	}
}

func InitReconcileOrdersJob(svc service.Service) *job.ReconcileOrdersJob {
	timeout := econf.GetDuration("recon.jobTimeout")
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return job.NewReconcileOrdersJob(svc, timeout)
}
