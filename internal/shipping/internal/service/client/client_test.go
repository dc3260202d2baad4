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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *RestyCarrierClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRestyCarrierClient(srv.URL, "test-token", 2*time.Second)
}

func TestRestyCarrierClient_Quote(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/quotes", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req QuoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "100000", req.FromPostalCode)
		assert.Equal(t, "200000", req.ToPostalCode)
		require.Len(t, req.Products, 1)
		assert.Equal(t, int64(2), req.Products[0].Quantity)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]QuoteOption{
			{
				ServiceID:   11,
				ServiceName: "标准快递",
				Price:       1200,
				DaysMin:     2,
				DaysMax:     5,
				Packages: []PackageDTO{
					{WeightGrams: 1000, WidthCm: 15, HeightCm: 4, LengthCm: 23},
				},
			},
			{ServiceID: 12, ServiceName: "次日达", Price: 2600, DaysMin: 1, DaysMax: 1},
		})
	})

	options, err := c.Quote(context.Background(), QuoteRequest{
		FromPostalCode: "100000",
		ToPostalCode:   "200000",
		Products: []ProductDTO{
			{ID: 100, Name: "Go语言实战", Quantity: 2, UnitPrice: 5900, WeightGrams: 500},
		},
	})
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, int64(11), options[0].ServiceID)
	assert.Equal(t, int64(1200), options[0].Price)
	require.Len(t, options[0].Packages, 1)
	assert.Equal(t, int64(1000), options[0].Packages[0].WeightGrams)
}

func TestRestyCarrierClient_QuoteServerError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Quote(context.Background(), QuoteRequest{ToPostalCode: "200000"})
	assert.Error(t, err)
}

func TestRestyCarrierClient_CreateTicket(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tickets", r.URL.Path)

		var req CreateTicketRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(11), req.ServiceID)
		assert.Equal(t, "200000", req.To.PostalCode)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TicketDTO{ID: "ticket-1", Status: "pending"})
	})

	ticket, err := c.CreateTicket(context.Background(), CreateTicketRequest{
		From:      AddressDTO{PostalCode: "100000"},
		To:        AddressDTO{PostalCode: "200000"},
		ServiceID: 11,
	})
	require.NoError(t, err)
	assert.Equal(t, "ticket-1", ticket.ID)
	assert.Equal(t, "pending", ticket.Status)
}

func TestRestyCarrierClient_GetTicket(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tickets/ticket-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TicketDTO{
			ID: "ticket-1", Status: "released", Tracking: "TRK123", Price: 990, UpdatedAt: 1700000000000,
		})
	})

	ticket, err := c.GetTicket(context.Background(), "ticket-1")
	require.NoError(t, err)
	assert.Equal(t, "released", ticket.Status)
	assert.Equal(t, "TRK123", ticket.Tracking)
	assert.Equal(t, int64(990), ticket.Price)
}

func TestRestyCarrierClient_EmitTicket(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tickets/ticket-1/emit", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(EmissionDTO{
			ID: "ticket-1", Tracking: "TRK123", PrintURL: "https://carrier.example.com/print/1", Price: 1500,
		})
	})

	emission, err := c.EmitTicket(context.Background(), "ticket-1")
	require.NoError(t, err)
	assert.Equal(t, "TRK123", emission.Tracking)
	assert.Equal(t, "https://carrier.example.com/print/1", emission.PrintURL)
	assert.Equal(t, int64(1500), emission.Price)
}

func TestRestyCarrierClient_CancelTicket(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		statusCode int
		assertErr  require.ErrorAssertionFunc
	}{
		{
			name:       "取消成功",
			statusCode: http.StatusOK,
			assertErr:  require.NoError,
		},
		{
			name:       "4xx是明确拒绝",
			statusCode: http.StatusConflict,
			assertErr: func(t require.TestingT, err error, _ ...any) {
				require.ErrorIs(t, err, ErrTicketCancelRejected)
			},
		},
		{
			name:       "5xx是瞬时失败",
			statusCode: http.StatusInternalServerError,
			assertErr: func(t require.TestingT, err error, _ ...any) {
				require.Error(t, err)
				require.NotErrorIs(t, err, ErrTicketCancelRejected)
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/tickets/ticket-1/cancel", r.URL.Path)
				w.WriteHeader(tc.statusCode)
			})
			tc.assertErr(t, c.CancelTicket(context.Background(), "ticket-1"))
		})
	}
}
