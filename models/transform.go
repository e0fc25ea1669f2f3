package models

import (
	"github.com/google/uuid"
)

// Payload shapes exchanged with the dashboard. They mirror the persisted rows
// but keep optional booleans as pointers so "not sent" and "false" stay
// distinguishable. The transforms below are pure and total: any payload maps
// to a row with no missing fields, and any row maps back with stable defaults.

type TaxInfo struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	HomeAddress  string `json:"homeAddress"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	FilingStatus string `json:"filingStatus"`
	Dependents   int    `json:"dependents"`

	StandardDeduction *bool   `json:"standardDeduction"`
	CustomDeduction   float64 `json:"customDeduction"`

	Years      []PersonalYearPayload `json:"years"`
	Businesses []BusinessPayload     `json:"businesses"`
}

type PersonalYearPayload struct {
	Year                 int     `json:"year"`
	WagesIncome          float64 `json:"wagesIncome"`
	PassiveIncome        float64 `json:"passiveIncome"`
	UnearnedIncome       float64 `json:"unearnedIncome"`
	CapitalGains         float64 `json:"capitalGains"`
	LongTermCapitalGains float64 `json:"longTermCapitalGains"`
	HouseholdIncome      float64 `json:"householdIncome"`
	OrdinaryIncome       float64 `json:"ordinaryIncome"`
	IsActive             *bool   `json:"isActive"`
}

type BusinessPayload struct {
	BusinessName    string `json:"businessName"`
	EntityType      string `json:"entityType"`
	EIN             string `json:"ein"`
	BusinessAddress string `json:"businessAddress"`
	BusinessCity    string `json:"businessCity"`
	BusinessState   string `json:"businessState"`
	BusinessZip     string `json:"businessZip"`
	Industry        string `json:"industry"`
	YearEstablished int    `json:"yearEstablished"`
	EmployeeCount   int    `json:"employeeCount"`
	IsActive        *bool  `json:"isActive"`

	Years []BusinessYearPayload `json:"years"`
}

type BusinessYearPayload struct {
	Year               int     `json:"year"`
	OrdinaryK1Income   float64 `json:"ordinaryK1Income"`
	GuaranteedK1Income float64 `json:"guaranteedK1Income"`
	AnnualRevenue      float64 `json:"annualRevenue"`
	EmployeeCount      int     `json:"employeeCount"`
	IsActive           *bool   `json:"isActive"`
}

func boolOrTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}

func ClientFromTaxInfo(info TaxInfo, accountID, createdBy uuid.UUID) Client {
	filing := info.FilingStatus
	if filing == "" {
		filing = FilingSingle
	}
	client := Client{
		AccountID:         accountID,
		CreatedByUserID:   createdBy,
		FullName:          info.FullName,
		Email:             info.Email,
		Phone:             info.Phone,
		HomeAddress:       info.HomeAddress,
		City:              info.City,
		State:             info.State,
		ZipCode:           info.ZipCode,
		FilingStatus:      filing,
		Dependents:        info.Dependents,
		StandardDeduction: boolOrTrue(info.StandardDeduction),
		CustomDeduction:   info.CustomDeduction,
	}
	for _, y := range info.Years {
		client.PersonalYears = append(client.PersonalYears, PersonalYearFromPayload(uuid.Nil, y))
	}
	for _, b := range info.Businesses {
		client.Businesses = append(client.Businesses, BusinessFromPayload(uuid.Nil, b))
	}
	return client
}

func TaxInfoFromClient(c Client) TaxInfo {
	std := c.StandardDeduction
	info := TaxInfo{
		FullName:          c.FullName,
		Email:             c.Email,
		Phone:             c.Phone,
		HomeAddress:       c.HomeAddress,
		City:              c.City,
		State:             c.State,
		ZipCode:           c.ZipCode,
		FilingStatus:      c.FilingStatus,
		Dependents:        c.Dependents,
		StandardDeduction: &std,
		CustomDeduction:   c.CustomDeduction,
	}
	for _, y := range c.PersonalYears {
		info.Years = append(info.Years, PayloadFromPersonalYear(y))
	}
	for _, b := range c.Businesses {
		info.Businesses = append(info.Businesses, PayloadFromBusiness(b))
	}
	return info
}

func PersonalYearFromPayload(clientID uuid.UUID, p PersonalYearPayload) PersonalYear {
	return PersonalYear{
		ClientID:             clientID,
		Year:                 p.Year,
		WagesIncome:          p.WagesIncome,
		PassiveIncome:        p.PassiveIncome,
		UnearnedIncome:       p.UnearnedIncome,
		CapitalGains:         p.CapitalGains,
		LongTermCapitalGains: p.LongTermCapitalGains,
		HouseholdIncome:      p.HouseholdIncome,
		OrdinaryIncome:       p.OrdinaryIncome,
		IsActive:             boolOrTrue(p.IsActive),
	}
}

func PayloadFromPersonalYear(y PersonalYear) PersonalYearPayload {
	active := y.IsActive
	return PersonalYearPayload{
		Year:                 y.Year,
		WagesIncome:          y.WagesIncome,
		PassiveIncome:        y.PassiveIncome,
		UnearnedIncome:       y.UnearnedIncome,
		CapitalGains:         y.CapitalGains,
		LongTermCapitalGains: y.LongTermCapitalGains,
		HouseholdIncome:      y.HouseholdIncome,
		OrdinaryIncome:       y.OrdinaryIncome,
		IsActive:             &active,
	}
}

func BusinessFromPayload(clientID uuid.UUID, p BusinessPayload) Business {
	entity := p.EntityType
	if entity == "" {
		entity = EntityLLC
	}
	b := Business{
		ClientID:        clientID,
		BusinessName:    p.BusinessName,
		EntityType:      entity,
		EIN:             p.EIN,
		BusinessAddress: p.BusinessAddress,
		BusinessCity:    p.BusinessCity,
		BusinessState:   p.BusinessState,
		BusinessZip:     p.BusinessZip,
		Industry:        p.Industry,
		YearEstablished: p.YearEstablished,
		EmployeeCount:   p.EmployeeCount,
		IsActive:        boolOrTrue(p.IsActive),
	}
	for _, y := range p.Years {
		b.Years = append(b.Years, BusinessYearFromPayload(uuid.Nil, y))
	}
	return b
}

func PayloadFromBusiness(b Business) BusinessPayload {
	active := b.IsActive
	p := BusinessPayload{
		BusinessName:    b.BusinessName,
		EntityType:      b.EntityType,
		EIN:             b.EIN,
		BusinessAddress: b.BusinessAddress,
		BusinessCity:    b.BusinessCity,
		BusinessState:   b.BusinessState,
		BusinessZip:     b.BusinessZip,
		Industry:        b.Industry,
		YearEstablished: b.YearEstablished,
		EmployeeCount:   b.EmployeeCount,
		IsActive:        &active,
	}
	for _, y := range b.Years {
		p.Years = append(p.Years, PayloadFromBusinessYear(y))
	}
	return p
}

func BusinessYearFromPayload(businessID uuid.UUID, p BusinessYearPayload) BusinessYear {
	return BusinessYear{
		BusinessID:         businessID,
		Year:               p.Year,
		OrdinaryK1Income:   p.OrdinaryK1Income,
		GuaranteedK1Income: p.GuaranteedK1Income,
		AnnualRevenue:      p.AnnualRevenue,
		EmployeeCount:      p.EmployeeCount,
		IsActive:           boolOrTrue(p.IsActive),
	}
}

func PayloadFromBusinessYear(y BusinessYear) BusinessYearPayload {
	active := y.IsActive
	return BusinessYearPayload{
		Year:               y.Year,
		OrdinaryK1Income:   y.OrdinaryK1Income,
		GuaranteedK1Income: y.GuaranteedK1Income,
		AnnualRevenue:      y.AnnualRevenue,
		EmployeeCount:      y.EmployeeCount,
		IsActive:           &active,
	}
}
