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

package domain

type Book struct {
	ID         int64
	SN         string
	Title      string
	AuthorName string
	// 单价, 单位为分
	Price int64
	Stock int64
	// 物流所需的物理属性
	WeightGrams int64
	WidthCm     int64
	HeightCm    int64
	LengthCm    int64
	Ctime       int64
	Utime       int64
}
