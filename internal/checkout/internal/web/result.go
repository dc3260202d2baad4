package web

import (
	"github.com/ecodeclub/bookstore/internal/checkout/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	noAddressResult = ginx.Result{
		Code: errs.NoAddress.Code,
		Msg:  errs.NoAddress.Msg,
	}
	bookNotFoundResult = ginx.Result{
		Code: errs.BookNotFound.Code,
		Msg:  errs.BookNotFound.Msg,
	}
	invalidCartResult = ginx.Result{
		Code: errs.InvalidCart.Code,
		Msg:  errs.InvalidCart.Msg,
	}
	sessionNotPaidResult = ginx.Result{
		Code: errs.SessionNotPaid.Code,
		Msg:  errs.SessionNotPaid.Msg,
	}
	refundedResult = ginx.Result{
		Code: errs.RefundedToCustomer.Code,
		Msg:  errs.RefundedToCustomer.Msg,
	}
)
