package usecase

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

// BillingUC implements the billing use case interface
type BillingUC struct {
	cfg         *models.Config
	billingRepo billing.BillingRepo
	billingGW   billing.BillingGW
	audit       *logger.AuditLogger
	providers   map[string]billing.PaymentProvider
	// methods maps a payment method onto the provider serving it
	methods map[string]string
	nodeID  string
	now     func() time.Time
}

// NewBillingUC creates a new billing use case
func NewBillingUC(
	cfg *models.Config,
	billingRepo billing.BillingRepo,
	billingGW billing.BillingGW,
	audit *logger.AuditLogger,
	providers ...billing.PaymentProvider,
) (*BillingUC, error) {
	if cfg == nil {
		return nil, fmt.Errorf("billing config is required")
	}
	base := strings.ToUpper(cfg.Billing.BaseCurrency)
	if _, ok := cfg.Billing.Rules.Rates[base]; !ok {
		return nil, fmt.Errorf("no exchange rate for base currency %q", base)
	}
	if audit == nil {
		audit = logger.NewAuditLogger(io.Discard)
	}

	uc := &BillingUC{
		cfg:         cfg,
		billingRepo: billingRepo,
		billingGW:   billingGW,
		audit:       audit,
		providers:   make(map[string]billing.PaymentProvider, len(providers)),
		methods:     make(map[string]string),
		nodeID:      uuid.NewString(),
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, p := range providers {
		uc.providers[p.Name()] = p
	}
	for name, rule := range cfg.Billing.Rules.Providers {
		for _, method := range rule.Methods {
			uc.methods[method] = name
		}
	}
	return uc, nil
}

func (uc *BillingUC) baseCurrency() string {
	return strings.ToUpper(uc.cfg.Billing.BaseCurrency)
}

// newTransactionID returns a time-ordered (v7) id
func newTransactionID() uuid.UUID {
	if id, err := uuid.NewV7(); err == nil {
		return id
	}
	return uuid.New()
}
