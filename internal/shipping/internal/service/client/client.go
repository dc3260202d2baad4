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

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

//go:generate mockgen -source=./client.go -package=clientmocks -destination=./mocks/client.mock.go CarrierAPIService
type CarrierAPIService interface {
	Quote(ctx context.Context, req QuoteRequest) ([]QuoteOption, error)
	CreateTicket(ctx context.Context, req CreateTicketRequest) (TicketDTO, error)
	EmitTicket(ctx context.Context, ticketID string) (EmissionDTO, error)
	GetTicket(ctx context.Context, ticketID string) (TicketDTO, error)
	CancelTicket(ctx context.Context, ticketID string) error
}

// ErrTicketCancelRejected 承运商明确拒绝取消运单
// 超时或5xx不会返回该错误, 调用方应将其视为瞬时失败
var ErrTicketCancelRejected = fmt.Errorf("承运商拒绝取消运单")

type RestyCarrierClient struct {
	client *resty.Client
}

func NewRestyCarrierClient(baseURL, token string, timeout time.Duration) *RestyCarrierClient {
	cli := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &RestyCarrierClient{client: cli}
}

func (c *RestyCarrierClient) Quote(ctx context.Context, req QuoteRequest) ([]QuoteOption, error) {
	var res []QuoteOption
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&res).
		Post("/quotes")
	if err != nil {
		return nil, fmt.Errorf("请求承运商报价失败: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("承运商报价返回错误: %s", resp.Status())
	}
	return res, nil
}

func (c *RestyCarrierClient) CreateTicket(ctx context.Context, req CreateTicketRequest) (TicketDTO, error) {
	var res TicketDTO
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&res).
		Post("/tickets")
	if err != nil {
		return TicketDTO{}, fmt.Errorf("创建运单失败: %w", err)
	}
	if resp.IsError() {
		return TicketDTO{}, fmt.Errorf("创建运单返回错误: %s", resp.Status())
	}
	return res, nil
}

func (c *RestyCarrierClient) EmitTicket(ctx context.Context, ticketID string) (EmissionDTO, error) {
	var res EmissionDTO
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&res).
		Post(fmt.Sprintf("/tickets/%s/emit", ticketID))
	if err != nil {
		return EmissionDTO{}, fmt.Errorf("打印面单失败: %w", err)
	}
	if resp.IsError() {
		return EmissionDTO{}, fmt.Errorf("打印面单返回错误: %s", resp.Status())
	}
	return res, nil
}

func (c *RestyCarrierClient) GetTicket(ctx context.Context, ticketID string) (TicketDTO, error) {
	var res TicketDTO
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&res).
		Get(fmt.Sprintf("/tickets/%s", ticketID))
	if err != nil {
		return TicketDTO{}, fmt.Errorf("查询运单失败: %w", err)
	}
	if resp.IsError() {
		return TicketDTO{}, fmt.Errorf("查询运单返回错误: %s", resp.Status())
	}
	return res, nil
}

func (c *RestyCarrierClient) CancelTicket(ctx context.Context, ticketID string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/tickets/%s/cancel", ticketID))
	if err != nil {
		return fmt.Errorf("取消运单失败: %w", err)
	}
	// 4xx表示承运商明确拒绝, 5xx仍视为瞬时失败
	if resp.StatusCode() >= http.StatusBadRequest && resp.StatusCode() < http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", ErrTicketCancelRejected, resp.Status())
	}
	if resp.IsError() {
		return fmt.Errorf("取消运单返回错误: %s", resp.Status())
	}
	return nil
}

type QuoteRequest struct {
	FromPostalCode string       `json:"from_postal_code"`
	ToPostalCode   string       `json:"to_postal_code"`
	Products       []ProductDTO `json:"products"`
}

type QuoteOption struct {
	ServiceID   int64        `json:"service_id"`
	ServiceName string       `json:"service_name"`
	Price       int64        `json:"price"`
	DaysMin     int64        `json:"days_min"`
	DaysMax     int64        `json:"days_max"`
	Packages    []PackageDTO `json:"packages"`
}

type CreateTicketRequest struct {
	From      AddressDTO   `json:"from"`
	To        AddressDTO   `json:"to"`
	ServiceID int64        `json:"service_id"`
	Products  []ProductDTO `json:"products"`
	Volumes   []PackageDTO `json:"volumes"`
}

type TicketDTO struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Tracking  string `json:"tracking"`
	Price     int64  `json:"price"`
	UpdatedAt int64  `json:"updated_at"`
}

type EmissionDTO struct {
	ID       string `json:"id"`
	Tracking string `json:"tracking"`
	PrintURL string `json:"print_url"`
	Price    int64  `json:"price"`
}

type ProductDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitary_value"`
	WeightGrams int64  `json:"weight_grams"`
	WidthCm     int64  `json:"width_cm"`
	HeightCm    int64  `json:"height_cm"`
	LengthCm    int64  `json:"length_cm"`
}

type PackageDTO struct {
	WeightGrams int64 `json:"weight_grams"`
	WidthCm     int64 `json:"width_cm"`
	HeightCm    int64 `json:"height_cm"`
	LengthCm    int64 `json:"length_cm"`
}

type AddressDTO struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}
