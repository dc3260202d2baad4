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

package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
)

type BookDAO interface {
	FindByID(ctx context.Context, id int64) (Book, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Book, error)
	Create(ctx context.Context, b Book) (int64, error)
}

type BookGORMDAO struct {
	db *egorm.Component
}

func NewBookGORMDAO(db *egorm.Component) BookDAO {
	return &BookGORMDAO{db: db}
}

func (d *BookGORMDAO) FindByID(ctx context.Context, id int64) (Book, error) {
	var res Book
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *BookGORMDAO) FindByIDs(ctx context.Context, ids []int64) ([]Book, error) {
	var res []Book
	err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

func (d *BookGORMDAO) Create(ctx context.Context, b Book) (int64, error) {
	now := time.Now().UnixMilli()
	b.Ctime, b.Utime = now, now
	err := d.db.WithContext(ctx).Create(&b).Error
	return b.Id, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Book{})
}

type Book struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:图书自增ID"`
	SN          string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_book_sn;comment:图书序列号"`
	Title       string `gorm:"type:varchar(512);not null;comment:书名"`
	AuthorName  string `gorm:"type:varchar(255);not null;comment:作者名称"`
	Price       int64  `gorm:"not null;comment:单价;单位为分, 999表示9.99元"`
	Stock       int64  `gorm:"not null;comment:库存数量,取消订单时回补"`
	WeightGrams int64  `gorm:"not null;comment:重量,单位为克"`
	WidthCm     int64  `gorm:"not null;comment:宽度,单位为厘米"`
	HeightCm    int64  `gorm:"not null;comment:高度,单位为厘米"`
	LengthCm    int64  `gorm:"not null;comment:长度,单位为厘米"`
	Ctime       int64
	Utime       int64
}
