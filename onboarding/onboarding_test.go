package onboarding

import (
	"testing"

	"healthbridge-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func completeBusiness() *models.Business {
	avg := 120.0
	monthly := 4500.0
	max := 900.0
	terms := true
	return &models.Business{
		ID:                              uuid.New(),
		Email:                           "owner@clinic.example",
		LegalName:                       "Clinic LLC",
		Website:                         "https://clinic.example",
		Description:                     "Outpatient clinic",
		BusinessType:                    models.BusinessTypeLLC,
		EIN:                             "12-3456789",
		Address:                         "1 Main St",
		Phone:                           "+1 555 0100",
		IndustryMccCode:                 "8011",
		AverageTransactionSize:          &avg,
		AverageMonthlyTransactionVolume: &monthly,
		MaximumTransactionSize:          &max,
		AcceptTermsOfService:            &terms,
	}
}

func TestIsComplete(t *testing.T) {
	t.Run("all fields present", func(t *testing.T) {
		assert.True(t, IsComplete(completeBusiness()))
	})

	t.Run("nil business", func(t *testing.T) {
		assert.False(t, IsComplete(nil))
	})

	t.Run("each required field missing", func(t *testing.T) {
		cases := map[string]func(b *models.Business){
			"legalName":       func(b *models.Business) { b.LegalName = "" },
			"website":         func(b *models.Business) { b.Website = "" },
			"description":     func(b *models.Business) { b.Description = "" },
			"ein":             func(b *models.Business) { b.EIN = "" },
			"address":         func(b *models.Business) { b.Address = "" },
			"phone":           func(b *models.Business) { b.Phone = "" },
			"industryMccCode": func(b *models.Business) { b.IndustryMccCode = "" },
			"email":           func(b *models.Business) { b.Email = "" },
			"businessType":    func(b *models.Business) { b.BusinessType = "" },
			"avgTxSize":       func(b *models.Business) { b.AverageTransactionSize = nil },
			"monthlyVolume":   func(b *models.Business) { b.AverageMonthlyTransactionVolume = nil },
			"maxTxSize":       func(b *models.Business) { b.MaximumTransactionSize = nil },
			"terms nil":       func(b *models.Business) { b.AcceptTermsOfService = nil },
			"terms false": func(b *models.Business) {
				f := false
				b.AcceptTermsOfService = &f
			},
		}

		for name, clear := range cases {
			b := completeBusiness()
			clear(b)
			assert.False(t, IsComplete(b), "expected incomplete when %s missing", name)
		}
	})

	t.Run("zero transaction size is incomplete", func(t *testing.T) {
		b := completeBusiness()
		zero := 0.0
		b.AverageTransactionSize = &zero
		assert.False(t, IsComplete(b))
	})
}

func TestDecide(t *testing.T) {
	complete := completeBusiness()
	incomplete := completeBusiness()
	incomplete.EIN = ""

	tests := []struct {
		name     string
		business *models.Business
		path     string
		want     string
	}{
		{"login always allowed", nil, "/auth/login", ""},
		{"login allowed when complete", complete, "/auth/login", ""},
		{"incomplete redirected to intake", incomplete, "/dashboard", PathIntake},
		{"missing business redirected to intake", nil, "/dashboard", PathIntake},
		{"incomplete allowed on intake", incomplete, "/kyb-intake", ""},
		{"complete bounced off intake", complete, "/kyb-intake", PathDashboard},
		{"complete allowed on dashboard", complete, "/dashboard", ""},
		{"complete allowed elsewhere", complete, "/dashboard/health", ""},
		{"path case-insensitive", incomplete, "/Dashboard", PathIntake},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.business, tt.path))
		})
	}
}

func TestDecideIdempotent(t *testing.T) {
	b := completeBusiness()
	b.Phone = ""

	first := Decide(b, "/dashboard")
	second := Decide(b, "/dashboard")
	assert.Equal(t, first, second)
	assert.Equal(t, PathIntake, first)
}
