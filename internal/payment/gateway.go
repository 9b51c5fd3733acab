// Package payment provides the default payment gateway. The in-process
// gateway approves every charge and refund; real gateway integration is out
// of scope, and tests swap in failing implementations through the
// domain.Gateway interface.
package payment

import (
	"context"

	"github.com/mei131412/gui-airline/internal/domain"
)

type InProcessGateway struct{}

func NewInProcessGateway() *InProcessGateway {
	return &InProcessGateway{}
}

func (g *InProcessGateway) Charge(ctx context.Context, amount int64, method string) error {
	return nil
}

func (g *InProcessGateway) Refund(ctx context.Context, amount int64, method string) error {
	return nil
}

var _ domain.Gateway = (*InProcessGateway)(nil)
