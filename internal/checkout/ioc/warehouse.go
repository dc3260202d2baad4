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
	"github.com/ecodeclub/bookstore/internal/shipping"
	"github.com/gotomicro/ego/core/econf"
)

// InitWarehouseAddress 书仓发货地址, 报价和购票的起点
func InitWarehouseAddress() shipping.Address {
	var addr shipping.Address
	err := econf.UnmarshalKey("checkout.warehouse", &addr)
	if err != nil {
		panic(err)
	}
	return addr
}
