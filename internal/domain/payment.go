package domain

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

// Gateway is the external charging capability a reservation depends on. The
// production implementation approves everything; tests inject failures.
type Gateway interface {
	Charge(ctx context.Context, amount int64, method string) error
	Refund(ctx context.Context, amount int64, method string) error
}

// Payment tracks one monetary transaction. The amount and method are fixed at
// construction; the status moves Pending -> Completed -> Refunded with no way
// back. The status carries its own lock: readers hold the live pointer and
// may query it while the owning reservation is being cancelled.
type Payment struct {
	ID        string
	Amount    int64
	Method    string
	CreatedAt time.Time

	mu     sync.RWMutex
	status PaymentStatus
}

func NewPayment(amount int64, method string) *Payment {
	return &Payment{
		ID:        uuid.NewString(),
		Amount:    amount,
		Method:    method,
		CreatedAt: time.Now(),
		status:    PaymentStatusPending,
	}
}

func (p *Payment) Status() PaymentStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// MarkCompleted moves Pending to Completed. Any other starting status is
// left untouched.
func (p *Payment) MarkCompleted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != PaymentStatusPending {
		return false
	}
	p.status = PaymentStatusCompleted
	return true
}

// MarkRefunded moves Completed to Refunded. Refunding a pending or already
// refunded payment fails with no mutation.
func (p *Payment) MarkRefunded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != PaymentStatusCompleted {
		return false
	}
	p.status = PaymentStatusRefunded
	return true
}
