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

package service

import (
	"context"
	"fmt"

	"github.com/ecodeclub/bookstore/internal/shipping/internal/domain"
	"github.com/ecodeclub/bookstore/internal/shipping/internal/service/client"
	"github.com/ecodeclub/ekit/slice"
)

// ErrTicketCancelRejected 承运商明确拒绝取消, 与瞬时失败区分开
var ErrTicketCancelRejected = client.ErrTicketCancelRejected

//go:generate mockgen -source=./service.go -package=shippingmocks -destination=../../mocks/shipping.mock.go Service
type Service interface {
	Quote(ctx context.Context, from domain.Address, toPostalCode string, products []domain.Product) ([]domain.ShippingOption, error)
	CreateTicket(ctx context.Context, from, to domain.Address, serviceID int64, products []domain.Product, volumes []domain.Package) (string, error)
	EmitTicket(ctx context.Context, ticketID string) (domain.TicketEmission, error)
	GetTicket(ctx context.Context, ticketID string) (domain.Ticket, error)
	CancelTicket(ctx context.Context, ticketID string) error
}

func NewService(api client.CarrierAPIService) Service {
	return &carrierService{
		api: api,
		// 承运商侧的状态字面值,
		// pending 与 active 都表示票据已创建但包裹未交付承运商
		ticketStatusMapping: map[string]domain.TicketStatus{
			"active":   domain.TicketStatusActive,
			"pending":  domain.TicketStatusActive,
			"released": domain.TicketStatusReleased,
			"posted":   domain.TicketStatusReleased,
			"canceled": domain.TicketStatusCanceled,
		},
	}
}

type carrierService struct {
	api                 client.CarrierAPIService
	ticketStatusMapping map[string]domain.TicketStatus
}

func (c *carrierService) Quote(ctx context.Context, from domain.Address, toPostalCode string, products []domain.Product) ([]domain.ShippingOption, error) {
	options, err := c.api.Quote(ctx, client.QuoteRequest{
		FromPostalCode: from.PostalCode,
		ToPostalCode:   toPostalCode,
		Products:       c.toProductDTOs(products),
	})
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("承运商未返回任何报价: to=%s", toPostalCode)
	}
	return slice.Map(options, func(idx int, src client.QuoteOption) domain.ShippingOption {
		return domain.ShippingOption{
			ServiceID:   src.ServiceID,
			ServiceName: src.ServiceName,
			Price:       src.Price,
			DaysMin:     src.DaysMin,
			DaysMax:     src.DaysMax,
			Packages: slice.Map(src.Packages, func(idx int, p client.PackageDTO) domain.Package {
				return domain.Package{
					WeightGrams: p.WeightGrams,
					WidthCm:     p.WidthCm,
					HeightCm:    p.HeightCm,
					LengthCm:    p.LengthCm,
				}
			}),
		}
	}), nil
}

func (c *carrierService) CreateTicket(ctx context.Context, from, to domain.Address, serviceID int64, products []domain.Product, volumes []domain.Package) (string, error) {
	ticket, err := c.api.CreateTicket(ctx, client.CreateTicketRequest{
		From:      c.toAddressDTO(from),
		To:        c.toAddressDTO(to),
		ServiceID: serviceID,
		Products:  c.toProductDTOs(products),
		Volumes: slice.Map(volumes, func(idx int, src domain.Package) client.PackageDTO {
			return client.PackageDTO{
				WeightGrams: src.WeightGrams,
				WidthCm:     src.WidthCm,
				HeightCm:    src.HeightCm,
				LengthCm:    src.LengthCm,
			}
		}),
	})
	if err != nil {
		return "", err
	}
	return ticket.ID, nil
}

func (c *carrierService) EmitTicket(ctx context.Context, ticketID string) (domain.TicketEmission, error) {
	emission, err := c.api.EmitTicket(ctx, ticketID)
	if err != nil {
		return domain.TicketEmission{}, err
	}
	return domain.TicketEmission{
		TicketID: emission.ID,
		Tracking: emission.Tracking,
		PrintURL: emission.PrintURL,
		Price:    emission.Price,
	}, nil
}

func (c *carrierService) GetTicket(ctx context.Context, ticketID string) (domain.Ticket, error) {
	ticket, err := c.api.GetTicket(ctx, ticketID)
	if err != nil {
		return domain.Ticket{}, err
	}
	return domain.Ticket{
		ID:        ticket.ID,
		Status:    c.toTicketStatus(ticket.Status),
		RawStatus: ticket.Status,
		Tracking:  ticket.Tracking,
		Price:     ticket.Price,
		Utime:     ticket.UpdatedAt,
	}, nil
}

func (c *carrierService) CancelTicket(ctx context.Context, ticketID string) error {
	return c.api.CancelTicket(ctx, ticketID)
}

func (c *carrierService) toTicketStatus(raw string) domain.TicketStatus {
	status, ok := c.ticketStatusMapping[raw]
	if !ok {
		return domain.TicketStatusUnknown
	}
	return status
}

func (c *carrierService) toProductDTOs(products []domain.Product) []client.ProductDTO {
	return slice.Map(products, func(idx int, src domain.Product) client.ProductDTO {
		return client.ProductDTO{
			ID:          src.BookID,
			Name:        src.Title,
			Quantity:    src.Quantity,
			UnitPrice:   src.UnitPrice,
			WeightGrams: src.WeightGrams,
			WidthCm:     src.WidthCm,
			HeightCm:    src.HeightCm,
			LengthCm:    src.LengthCm,
		}
	})
}

func (c *carrierService) toAddressDTO(addr domain.Address) client.AddressDTO {
	return client.AddressDTO{
		Name:       addr.Name,
		Street:     addr.Street,
		Number:     addr.Number,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
	}
}
