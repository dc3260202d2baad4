package web

import (
	"github.com/ecodeclub/bookstore/internal/recon/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	alreadyClosedResult = ginx.Result{
		Code: errs.OrderAlreadyClosed.Code,
		Msg:  errs.OrderAlreadyClosed.Msg,
	}
	refundUnrecoverableResult = ginx.Result{
		Code: errs.RefundUnrecoverable.Code,
		Msg:  errs.RefundUnrecoverable.Msg,
	}
)
