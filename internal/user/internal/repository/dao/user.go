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

type UserDAO interface {
	FindByID(ctx context.Context, id int64) (User, error)
	FindAddressByUID(ctx context.Context, uid int64) (Address, error)
	CreateAddress(ctx context.Context, addr Address) (int64, error)
}

type UserGORMDAO struct {
	db *egorm.Component
}

func NewUserGORMDAO(db *egorm.Component) UserDAO {
	return &UserGORMDAO{db: db}
}

func (d *UserGORMDAO) FindByID(ctx context.Context, id int64) (User, error) {
	var res User
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *UserGORMDAO) FindAddressByUID(ctx context.Context, uid int64) (Address, error) {
	var res Address
	// 一个用户最多保留一条收货地址, 取最近更新的一条
	err := d.db.WithContext(ctx).Where("uid = ?", uid).Order("utime DESC").First(&res).Error
	return res, err
}

func (d *UserGORMDAO) CreateAddress(ctx context.Context, addr Address) (int64, error) {
	now := time.Now().UnixMilli()
	addr.Ctime, addr.Utime = now, now
	err := d.db.WithContext(ctx).Create(&addr).Error
	return addr.Id, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&User{}, &Address{})
}

type User struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:用户自增ID"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_user_email;comment:邮箱"`
	Nickname string `gorm:"type:varchar(255);not null;comment:昵称"`
	Ctime    int64
	Utime    int64
}

type Address struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:收货地址自增ID"`
	Uid        int64  `gorm:"not null;index:idx_address_uid;comment:用户ID"`
	Name       string `gorm:"type:varchar(255);not null;default:'';comment:收件人姓名"`
	Street     string `gorm:"type:varchar(255);not null;comment:街道"`
	Number     string `gorm:"type:varchar(64);not null;comment:门牌号"`
	City       string `gorm:"type:varchar(255);not null;comment:城市"`
	State      string `gorm:"type:varchar(64);not null;comment:州/省"`
	PostalCode string `gorm:"type:varchar(32);not null;comment:邮编,承运商报价的目的地"`
	Ctime      int64
	Utime      int64
}
