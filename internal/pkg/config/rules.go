package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

// DefaultBillingRules returns the provider rules used when no rules file is present
func DefaultBillingRules() models.BillingRules {
	return models.BillingRules{
		Providers: map[string]models.ProviderRule{
			models.ProviderYooKassa: {
				Currency:  "RUB",
				MinAmount: 10000,
				Methods:   []string{models.MethodYooKassa, models.MethodSBP, models.MethodCardRU, models.MethodYooMoney},
			},
			models.ProviderStripe: {
				Currency:  "USD",
				MinAmount: 500,
				Methods:   []string{models.MethodCard},
			},
			models.ProviderCryptoCloud: {
				Currency:  "USD",
				MinAmount: 1000,
				Methods:   []string{models.MethodCrypto},
			},
			models.ProviderLiqPay: {
				Currency:  "UAH",
				MinAmount: 5000,
				Methods:   []string{models.MethodLiqPay},
			},
			models.ProviderBalance: {
				Currency:  "RUB",
				MinAmount: 1,
				Methods:   []string{models.MethodBalance},
			},
		},
		Rates: map[string]string{
			"RUB": "1",
			"USD": "90",
			"UAH": "2.4",
		},
	}
}

// LoadBillingRules reads provider rules from a yaml, json or toml file
func LoadBillingRules(path string) (models.BillingRules, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("BILLING_RULES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return models.BillingRules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules := models.BillingRules{}
	if err := v.Unmarshal(&rules); err != nil {
		return models.BillingRules{}, fmt.Errorf("failed to decode rules file: %w", err)
	}

	return normalizeRules(rules), nil
}

// normalizeRules fills gaps from the defaults and upper-cases currency codes
func normalizeRules(rules models.BillingRules) models.BillingRules {
	defaults := DefaultBillingRules()

	providers := make(map[string]models.ProviderRule, len(defaults.Providers))
	for name, rule := range defaults.Providers {
		providers[name] = rule
	}
	for name, rule := range rules.Providers {
		rule.Currency = strings.ToUpper(rule.Currency)
		if rule.Currency == "" {
			rule.Currency = providers[name].Currency
		}
		if len(rule.Methods) == 0 {
			rule.Methods = providers[name].Methods
		}
		providers[strings.ToLower(name)] = rule
	}

	rates := make(map[string]string, len(defaults.Rates))
	for code, rate := range defaults.Rates {
		rates[code] = rate
	}
	for code, rate := range rules.Rates {
		rates[strings.ToUpper(code)] = rate
	}

	return models.BillingRules{Providers: providers, Rates: rates}
}
