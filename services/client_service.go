package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNameRequired     = errors.New("client full name is required")
	ErrEmailRequired    = errors.New("client email is required")
	ErrUnknownTool      = errors.New("unknown tool slug")
	ErrUnknownStatus    = errors.New("unknown enrollment status")
	ErrBusinessMismatch = errors.New("business does not belong to client")
)

// ClientService owns every multi-table read and write around clients,
// businesses, tax years and tool enrollments. Composite writes run in a single
// transaction; there is no best-effort path.
type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

// CreateClient creates the client with its personal years and businesses
// (including their business years) atomically. When no personal year is
// supplied, a zeroed row for the current tax year is created so the client
// always has a year to edit.
func (s *ClientService) CreateClient(accountID, createdBy uuid.UUID, info models.TaxInfo) (*models.Client, error) {
	if info.FullName == "" {
		return nil, ErrNameRequired
	}
	if info.Email == "" {
		return nil, ErrEmailRequired
	}

	if len(info.Years) == 0 {
		info.Years = []models.PersonalYearPayload{{Year: time.Now().Year()}}
	}
	info.Years = dedupePersonalYears(info.Years)

	client := models.ClientFromTaxInfo(info, accountID, createdBy)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&client).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &client, nil
}

// Years arriving twice for the same tax year collapse to the last one sent.
func dedupePersonalYears(years []models.PersonalYearPayload) []models.PersonalYearPayload {
	seen := make(map[int]int, len(years))
	var out []models.PersonalYearPayload
	for _, y := range years {
		if i, ok := seen[y.Year]; ok {
			out[i] = y
			continue
		}
		seen[y.Year] = len(out)
		out = append(out, y)
	}
	return out
}

// ClientListFilters narrows the unified client list.
type ClientListFilters struct {
	ToolSlug        string
	CreatedBy       uuid.UUID
	OperatorID      uuid.UUID
	IncludeArchived bool
}

// UnifiedClient is the composed, UI-ready row: the client with nested
// businesses and years plus its tool enrollments joined in.
type UnifiedClient struct {
	models.Client
	BusinessOwner bool                    `json:"businessOwner"`
	Enrollments   []models.ToolEnrollment `json:"enrollments"`
	EnrolledTools []string                `json:"enrolledTools"`
}

// UnifiedClientList fetches clients with nested businesses/years, separately
// fetches enrollments, and joins them in memory. An operator with no linked
// accounts gets an empty list, not an error.
func (s *ClientService) UnifiedClientList(accountID uuid.UUID, f ClientListFilters) ([]UnifiedClient, error) {
	q := s.db.Where("account_id = ?", accountID)
	if !f.IncludeArchived {
		q = q.Where("archived = ?", false)
	}
	if f.CreatedBy != uuid.Nil {
		q = q.Where("created_by_user_id = ?", f.CreatedBy)
	}
	if f.OperatorID != uuid.Nil {
		var links []models.AccountLink
		if err := s.db.Where("operator_user_id = ?", f.OperatorID).Find(&links).Error; err != nil {
			return nil, fmt.Errorf("resolve account links: %w", err)
		}
		if len(links) == 0 {
			return []UnifiedClient{}, nil
		}
		ids := make([]uuid.UUID, 0, len(links))
		for _, l := range links {
			ids = append(ids, l.ClientID)
		}
		q = q.Where("id IN ?", ids)
	}

	var clients []models.Client
	if err := q.Preload("Businesses.Years").Preload("PersonalYears").
		Order("full_name").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	if len(clients) == 0 {
		return []UnifiedClient{}, nil
	}

	clientIDs := make([]uuid.UUID, 0, len(clients))
	for _, c := range clients {
		clientIDs = append(clientIDs, c.ID)
	}
	var enrollments []models.ToolEnrollment
	if err := s.db.Where("client_id IN ?", clientIDs).Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	byClient := make(map[uuid.UUID][]models.ToolEnrollment)
	for _, e := range enrollments {
		byClient[e.ClientID] = append(byClient[e.ClientID], e)
	}

	out := make([]UnifiedClient, 0, len(clients))
	for _, c := range clients {
		row := UnifiedClient{
			Client:        c,
			BusinessOwner: len(c.Businesses) > 0,
			Enrollments:   byClient[c.ID],
		}
		for _, e := range row.Enrollments {
			if e.Status == models.EnrollmentActive {
				row.EnrolledTools = append(row.EnrolledTools, e.ToolSlug)
			}
		}
		if f.ToolSlug != "" && !contains(row.EnrolledTools, f.ToolSlug) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// GetClient looks a client up by id within the account. Archived clients are
// still returned here; only listings hide them.
func (s *ClientService) GetClient(accountID, clientID uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := s.db.Preload("Businesses.Years").Preload("PersonalYears").
		Where("account_id = ? AND id = ?", accountID, clientID).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateClient overwrites the client row from the payload. Last writer wins;
// there is no version check on the row.
func (s *ClientService) UpdateClient(accountID, clientID uuid.UUID, info models.TaxInfo) (*models.Client, error) {
	var client models.Client
	if err := s.db.Where("account_id = ? AND id = ?", accountID, clientID).First(&client).Error; err != nil {
		return nil, err
	}

	fresh := models.ClientFromTaxInfo(info, client.AccountID, client.CreatedByUserID)
	client.FullName = fresh.FullName
	client.Email = fresh.Email
	client.Phone = fresh.Phone
	client.HomeAddress = fresh.HomeAddress
	client.City = fresh.City
	client.State = fresh.State
	client.ZipCode = fresh.ZipCode
	client.FilingStatus = fresh.FilingStatus
	client.Dependents = fresh.Dependents
	client.StandardDeduction = fresh.StandardDeduction
	client.CustomDeduction = fresh.CustomDeduction

	if err := s.db.Save(&client).Error; err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return &client, nil
}

// ArchiveClient hides the client from listings but keeps the row.
func (s *ClientService) ArchiveClient(accountID, clientID uuid.UUID) error {
	now := time.Now()
	result := s.db.Model(&models.Client{}).
		Where("account_id = ? AND id = ?", accountID, clientID).
		Updates(map[string]interface{}{"archived": true, "archived_at": &now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteClient is the explicit admin delete, separate from archive.
func (s *ClientService) DeleteClient(accountID, clientID uuid.UUID) error {
	result := s.db.Where("account_id = ? AND id = ?", accountID, clientID).
		Delete(&models.Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateBusiness attaches a business (and any supplied years) to a client.
func (s *ClientService) CreateBusiness(accountID, clientID uuid.UUID, payload models.BusinessPayload) (*models.Business, error) {
	if _, err := s.GetClient(accountID, clientID); err != nil {
		return nil, err
	}
	business := models.BusinessFromPayload(clientID, payload)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&business).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}
	return &business, nil
}

// UpdateBusiness overwrites the business row from the payload.
func (s *ClientService) UpdateBusiness(accountID, businessID uuid.UUID, payload models.BusinessPayload) (*models.Business, error) {
	business, err := s.businessInAccount(accountID, businessID)
	if err != nil {
		return nil, err
	}

	fresh := models.BusinessFromPayload(business.ClientID, payload)
	business.BusinessName = fresh.BusinessName
	business.EntityType = fresh.EntityType
	business.EIN = fresh.EIN
	business.BusinessAddress = fresh.BusinessAddress
	business.BusinessCity = fresh.BusinessCity
	business.BusinessState = fresh.BusinessState
	business.BusinessZip = fresh.BusinessZip
	business.Industry = fresh.Industry
	business.YearEstablished = fresh.YearEstablished
	business.EmployeeCount = fresh.EmployeeCount
	business.IsActive = fresh.IsActive

	if err := s.db.Save(business).Error; err != nil {
		return nil, fmt.Errorf("update business: %w", err)
	}
	return business, nil
}

func (s *ClientService) businessInAccount(accountID, businessID uuid.UUID) (*models.Business, error) {
	var business models.Business
	err := s.db.Joins("JOIN clients ON clients.id = businesses.client_id").
		Where("businesses.id = ? AND clients.account_id = ?", businessID, accountID).
		First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// UpsertPersonalYear writes the year keyed by (client, year): an existing row
// is updated, never duplicated.
func (s *ClientService) UpsertPersonalYear(accountID, clientID uuid.UUID, payload models.PersonalYearPayload) (*models.PersonalYear, error) {
	if _, err := s.GetClient(accountID, clientID); err != nil {
		return nil, err
	}
	year := models.PersonalYearFromPayload(clientID, payload)
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_id"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"wages_income", "passive_income", "unearned_income",
			"capital_gains", "long_term_capital_gains",
			"household_income", "ordinary_income", "is_active", "updated_at",
		}),
	}).Create(&year).Error
	if err != nil {
		return nil, fmt.Errorf("upsert personal year: %w", err)
	}

	var saved models.PersonalYear
	if err := s.db.Where("client_id = ? AND year = ?", clientID, payload.Year).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpsertBusinessYear writes the year keyed by (business, year).
func (s *ClientService) UpsertBusinessYear(accountID, businessID uuid.UUID, payload models.BusinessYearPayload) (*models.BusinessYear, error) {
	if _, err := s.businessInAccount(accountID, businessID); err != nil {
		return nil, err
	}
	year := models.BusinessYearFromPayload(businessID, payload)
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "business_id"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ordinary_k1_income", "guaranteed_k1_income",
			"annual_revenue", "employee_count", "is_active", "updated_at",
		}),
	}).Create(&year).Error
	if err != nil {
		return nil, fmt.Errorf("upsert business year: %w", err)
	}

	var saved models.BusinessYear
	if err := s.db.Where("business_id = ? AND year = ?", businessID, payload.Year).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// EnrollClientInTool enrolls a (client, business) pair in a tool. For the rd
// tool the business is first copied into the R&D subsystem's table; that copy
// failing aborts the whole enrollment. The enrollment itself upserts on the
// (client, business, tool) key, so re-enrolling reactivates instead of
// duplicating.
func (s *ClientService) EnrollClientInTool(accountID, clientID, businessID uuid.UUID, toolSlug, notes string, enrolledBy uuid.UUID) (*models.ToolEnrollment, error) {
	if !models.ValidToolSlug(toolSlug) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, toolSlug)
	}
	business, err := s.businessInAccount(accountID, businessID)
	if err != nil {
		return nil, err
	}
	if business.ClientID != clientID {
		return nil, ErrBusinessMismatch
	}

	enrollment := models.ToolEnrollment{
		ClientID:         clientID,
		BusinessID:       businessID,
		ToolSlug:         toolSlug,
		Status:           models.EnrollmentActive,
		EnrolledByUserID: enrolledBy,
		EnrolledAt:       time.Now(),
		Notes:            notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if toolSlug == models.ToolRD {
			rd := models.RDBusiness{
				ClientID:        clientID,
				BusinessID:      business.ID,
				BusinessName:    business.BusinessName,
				EntityType:      business.EntityType,
				EIN:             business.EIN,
				Industry:        business.Industry,
				YearEstablished: business.YearEstablished,
				EmployeeCount:   business.EmployeeCount,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "business_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"business_name", "entity_type", "ein", "industry",
					"year_established", "employee_count", "updated_at",
				}),
			}).Create(&rd).Error; err != nil {
				return fmt.Errorf("copy business into rd subsystem: %w", err)
			}
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "client_id"}, {Name: "business_id"}, {Name: "tool_slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "notes", "enrolled_at", "enrolled_by_user_id", "updated_at",
			}),
		}).Create(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	var saved models.ToolEnrollment
	if err := s.db.Where("client_id = ? AND business_id = ? AND tool_slug = ?",
		clientID, businessID, toolSlug).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateEnrollmentStatus sets the status directly. The enum is validated but
// no transition table is enforced; inactive and completed are terminal only
// by convention.
func (s *ClientService) UpdateEnrollmentStatus(accountID, enrollmentID uuid.UUID, status string) (*models.ToolEnrollment, error) {
	if !models.ValidEnrollmentStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, status)
	}
	var enrollment models.ToolEnrollment
	err := s.db.Joins("JOIN clients ON clients.id = tool_enrollments.client_id").
		Where("tool_enrollments.id = ? AND clients.account_id = ?", enrollmentID, accountID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	enrollment.Status = status
	if err := s.db.Save(&enrollment).Error; err != nil {
		return nil, fmt.Errorf("update enrollment: %w", err)
	}
	return &enrollment, nil
}

// ListEnrollments returns a client's enrollments.
func (s *ClientService) ListEnrollments(accountID, clientID uuid.UUID) ([]models.ToolEnrollment, error) {
	if _, err := s.GetClient(accountID, clientID); err != nil {
		return nil, err
	}
	var enrollments []models.ToolEnrollment
	if err := s.db.Where("client_id = ?", clientID).Order("enrolled_at DESC").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}
