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

package job

import (
	"context"
	"time"

	"github.com/ecodeclub/bookstore/internal/recon/internal/service"
)

// ReconcileOrdersJob 周期性遍历所有非终态订单做对账
type ReconcileOrdersJob struct {
	svc     service.Service
	timeout time.Duration
}

func NewReconcileOrdersJob(svc service.Service, timeout time.Duration) *ReconcileOrdersJob {
	return &ReconcileOrdersJob{svc: svc, timeout: timeout}
}

func (j *ReconcileOrdersJob) Name() string {
	return "ReconcileOrdersJob"
}

func (j *ReconcileOrdersJob) Run() error {
	ctx, cancelFunc := context.WithTimeout(context.Background(), j.timeout)
	defer cancelFunc()
	return j.svc.ReconcileAllOpenOrders(ctx)
}
