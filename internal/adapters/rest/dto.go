package rest

import (
	"time"

	"crm-service/internal/core/domain"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// --- Запросы ---

// PropertyRequest - тело POST/PUT объекта. PUT трактуется как полная
// замена: незаполненные опциональные поля обнуляются.
type PropertyRequest struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	PropertyType         string   `json:"property_type"`
	Category             string   `json:"category"`
	Address              string   `json:"address"`
	City                 string   `json:"city"`
	District             string   `json:"district"`
	Area                 int      `json:"area"`
	Rooms                int      `json:"rooms"`
	Floor                *int     `json:"floor"`
	TotalFloors          *int     `json:"total_floors"`
	YearBuilt            *int     `json:"year_built"`
	Exposure             string   `json:"exposure"`
	Heating              string   `json:"heating"`
	PriceEur             *float64 `json:"price_eur"`
	MonthlyRentEur       *float64 `json:"monthly_rent_eur"`
	ManagementFeePercent *float64 `json:"management_fee_percent"`
	Status               string   `json:"status"`
	SellerID             *int64   `json:"seller_id"`
	AssignedAgentID      *int64   `json:"assigned_agent_id"`
}

func (req *PropertyRequest) toDomain() *domain.Property {
	return &domain.Property{
		Title:                req.Title,
		Description:          req.Description,
		PropertyType:         req.PropertyType,
		Category:             req.Category,
		Address:              req.Address,
		City:                 req.City,
		District:             req.District,
		Area:                 req.Area,
		Rooms:                req.Rooms,
		Floor:                req.Floor,
		TotalFloors:          req.TotalFloors,
		YearBuilt:            req.YearBuilt,
		Exposure:             req.Exposure,
		Heating:              req.Heating,
		PriceEur:             req.PriceEur,
		MonthlyRentEur:       req.MonthlyRentEur,
		ManagementFeePercent: req.ManagementFeePercent,
		Status:               req.Status,
		SellerID:             req.SellerID,
		AssignedAgentID:      req.AssignedAgentID,
	}
}

type BuyerRequest struct {
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Phone             string   `json:"phone"`
	Email             string   `json:"email"`
	BudgetMin         *float64 `json:"budget_min"`
	BudgetMax         *float64 `json:"budget_max"`
	PreferredLocation string   `json:"preferred_location"`
	PropertyType      string   `json:"property_type"`
	RoomsMin          *int     `json:"rooms_min"`
	RoomsMax          *int     `json:"rooms_max"`
	Status            string   `json:"status"`
	Source            string   `json:"source"`
	AssignedAgentID   *int64   `json:"assigned_agent_id"`
	Notes             string   `json:"notes"`
}

func (req *BuyerRequest) toDomain() *domain.Buyer {
	return &domain.Buyer{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Email:             req.Email,
		BudgetMin:         req.BudgetMin,
		BudgetMax:         req.BudgetMax,
		PreferredLocation: req.PreferredLocation,
		PropertyType:      req.PropertyType,
		RoomsMin:          req.RoomsMin,
		RoomsMax:          req.RoomsMax,
		Status:            req.Status,
		Source:            req.Source,
		AssignedAgentID:   req.AssignedAgentID,
		Notes:             req.Notes,
	}
}

type SellerRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Status          string `json:"status"`
	AssignedAgentID *int64 `json:"assigned_agent_id"`
	Notes           string `json:"notes"`
}

func (req *SellerRequest) toDomain() *domain.Seller {
	return &domain.Seller{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Email:           req.Email,
		Status:          req.Status,
		AssignedAgentID: req.AssignedAgentID,
		Notes:           req.Notes,
	}
}

type TenantRequest struct {
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	PropertyID    int64    `json:"property_id"`
	ContractStart string   `json:"contract_start"`
	ContractEnd   string   `json:"contract_end"`
	Deposit       *float64 `json:"deposit"`
	MonthlyRent   *float64 `json:"monthly_rent"`
	Status        string   `json:"status"`
}

// toDomain парсит даты контракта; формат уже проверен JSON-схемой.
func (req *TenantRequest) toDomain() (*domain.Tenant, error) {
	start, err := time.Parse(dateLayout, req.ContractStart)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(dateLayout, req.ContractEnd)
	if err != nil {
		return nil, err
	}
	return &domain.Tenant{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Email:         req.Email,
		PropertyID:    req.PropertyID,
		ContractStart: start,
		ContractEnd:   end,
		Deposit:       req.Deposit,
		MonthlyRent:   req.MonthlyRent,
		Status:        req.Status,
	}, nil
}

type TaskRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DueDate         string `json:"due_date"`
	DueTime         string `json:"due_time"`
	Priority        string `json:"priority"`
	Status          string `json:"status"`
	TaskType        string `json:"task_type"`
	BuyerID         *int64 `json:"buyer_id"`
	SellerID        *int64 `json:"seller_id"`
	PropertyID      *int64 `json:"property_id"`
	AssignedAgentID *int64 `json:"assigned_agent_id"`
}

func (req *TaskRequest) toDomain() (*domain.Task, error) {
	due, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, err
	}
	return &domain.Task{
		Title:           req.Title,
		Description:     req.Description,
		DueDate:         due,
		DueTime:         req.DueTime,
		Priority:        req.Priority,
		Status:          req.Status,
		TaskType:        req.TaskType,
		BuyerID:         req.BuyerID,
		SellerID:        req.SellerID,
		PropertyID:      req.PropertyID,
		AssignedAgentID: req.AssignedAgentID,
	}, nil
}

type UserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Ответы ---

type PropertyResponse struct {
	ID                   int64      `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	PropertyType         string     `json:"property_type"`
	Category             string     `json:"category"`
	Address              string     `json:"address"`
	City                 string     `json:"city"`
	District             string     `json:"district"`
	Area                 int        `json:"area"`
	Rooms                int        `json:"rooms"`
	Floor                *int       `json:"floor"`
	TotalFloors          *int       `json:"total_floors"`
	YearBuilt            *int       `json:"year_built"`
	Exposure             string     `json:"exposure,omitempty"`
	Heating              string     `json:"heating,omitempty"`
	PriceEur             *float64   `json:"price_eur"`
	MonthlyRentEur       *float64   `json:"monthly_rent_eur"`
	ManagementFeePercent *float64   `json:"management_fee_percent"`
	PricePerSqm          *float64   `json:"price_per_sqm"`
	Status               string     `json:"status"`
	Viewings             int        `json:"viewings"`
	LastViewing          *time.Time `json:"last_viewing"`
	SellerID             *int64     `json:"seller_id"`
	AssignedAgentID      *int64     `json:"assigned_agent_id"`
	ArchivedAt           *time.Time `json:"archived_at"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func propertyToResponse(p domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:                   p.ID,
		Title:                p.Title,
		Description:          p.Description,
		PropertyType:         p.PropertyType,
		Category:             p.Category,
		Address:              p.Address,
		City:                 p.City,
		District:             p.District,
		Area:                 p.Area,
		Rooms:                p.Rooms,
		Floor:                p.Floor,
		TotalFloors:          p.TotalFloors,
		YearBuilt:            p.YearBuilt,
		Exposure:             p.Exposure,
		Heating:              p.Heating,
		PriceEur:             p.PriceEur,
		MonthlyRentEur:       p.MonthlyRentEur,
		ManagementFeePercent: p.ManagementFeePercent,
		PricePerSqm:          p.PricePerSqm(),
		Status:               p.Status,
		Viewings:             p.Viewings,
		LastViewing:          p.LastViewing,
		SellerID:             p.SellerID,
		AssignedAgentID:      p.AssignedAgentID,
		ArchivedAt:           p.ArchivedAt,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func propertiesToResponse(items []domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, len(items))
	for i, p := range items {
		out[i] = propertyToResponse(p)
	}
	return out
}

type BuyerResponse struct {
	ID                int64      `json:"id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Phone             string     `json:"phone"`
	Email             string     `json:"email,omitempty"`
	BudgetMin         *float64   `json:"budget_min"`
	BudgetMax         *float64   `json:"budget_max"`
	PreferredLocation string     `json:"preferred_location,omitempty"`
	PropertyType      string     `json:"property_type,omitempty"`
	RoomsMin          *int       `json:"rooms_min"`
	RoomsMax          *int       `json:"rooms_max"`
	Status            string     `json:"status"`
	Source            string     `json:"source,omitempty"`
	AssignedAgentID   *int64     `json:"assigned_agent_id"`
	Notes             string     `json:"notes,omitempty"`
	ArchivedAt        *time.Time `json:"archived_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func buyerToResponse(b domain.Buyer) BuyerResponse {
	return BuyerResponse{
		ID:                b.ID,
		FirstName:         b.FirstName,
		LastName:          b.LastName,
		Phone:             b.Phone,
		Email:             b.Email,
		BudgetMin:         b.BudgetMin,
		BudgetMax:         b.BudgetMax,
		PreferredLocation: b.PreferredLocation,
		PropertyType:      b.PropertyType,
		RoomsMin:          b.RoomsMin,
		RoomsMax:          b.RoomsMax,
		Status:            b.Status,
		Source:            b.Source,
		AssignedAgentID:   b.AssignedAgentID,
		Notes:             b.Notes,
		ArchivedAt:        b.ArchivedAt,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func buyersToResponse(items []domain.Buyer) []BuyerResponse {
	out := make([]BuyerResponse, len(items))
	for i, b := range items {
		out[i] = buyerToResponse(b)
	}
	return out
}

type SellerResponse struct {
	ID              int64      `json:"id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email,omitempty"`
	Status          string     `json:"status"`
	AssignedAgentID *int64     `json:"assigned_agent_id"`
	Notes           string     `json:"notes,omitempty"`
	ArchivedAt      *time.Time `json:"archived_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func sellerToResponse(s domain.Seller) SellerResponse {
	return SellerResponse{
		ID:              s.ID,
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		Phone:           s.Phone,
		Email:           s.Email,
		Status:          s.Status,
		AssignedAgentID: s.AssignedAgentID,
		Notes:           s.Notes,
		ArchivedAt:      s.ArchivedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func sellersToResponse(items []domain.Seller) []SellerResponse {
	out := make([]SellerResponse, len(items))
	for i, s := range items {
		out[i] = sellerToResponse(s)
	}
	return out
}

type TenantResponse struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	PropertyID    int64     `json:"property_id"`
	ContractStart string    `json:"contract_start"`
	ContractEnd   string    `json:"contract_end"`
	Deposit       *float64  `json:"deposit"`
	MonthlyRent   *float64  `json:"monthly_rent"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func tenantToResponse(t domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:            t.ID,
		FirstName:     t.FirstName,
		LastName:      t.LastName,
		Phone:         t.Phone,
		Email:         t.Email,
		PropertyID:    t.PropertyID,
		ContractStart: formatDate(t.ContractStart),
		ContractEnd:   formatDate(t.ContractEnd),
		Deposit:       t.Deposit,
		MonthlyRent:   t.MonthlyRent,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func tenantsToResponse(items []domain.Tenant) []TenantResponse {
	out := make([]TenantResponse, len(items))
	for i, t := range items {
		out[i] = tenantToResponse(t)
	}
	return out
}

type TaskResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DueDate         string    `json:"due_date"`
	DueTime         string    `json:"due_time,omitempty"`
	Priority        string    `json:"priority"`
	Status          string    `json:"status"`
	TaskType        string    `json:"task_type,omitempty"`
	BuyerID         *int64    `json:"buyer_id"`
	SellerID        *int64    `json:"seller_id"`
	PropertyID      *int64    `json:"property_id"`
	AssignedAgentID *int64    `json:"assigned_agent_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func taskToResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		DueDate:         formatDate(t.DueDate),
		DueTime:         t.DueTime,
		Priority:        t.Priority,
		Status:          t.Status,
		TaskType:        t.TaskType,
		BuyerID:         t.BuyerID,
		SellerID:        t.SellerID,
		PropertyID:      t.PropertyID,
		AssignedAgentID: t.AssignedAgentID,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func tasksToResponse(items []domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(items))
	for i, t := range items {
		out[i] = taskToResponse(t)
	}
	return out
}

// UserResponse не содержит хеша пароля.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func userToResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// PropertyDetailsResponse - объект со связанными записями.
type PropertyDetailsResponse struct {
	PropertyResponse
	Seller        *SellerResponse  `json:"seller"`
	AssignedAgent *UserResponse    `json:"assigned_agent"`
	ActiveTenants []TenantResponse `json:"active_tenants"`
	OpenTasks     []TaskResponse   `json:"open_tasks"`
}

func detailsToResponse(d *domain.PropertyDetails) PropertyDetailsResponse {
	resp := PropertyDetailsResponse{
		PropertyResponse: propertyToResponse(d.Property),
		ActiveTenants:    tenantsToResponse(d.ActiveTenants),
		OpenTasks:        tasksToResponse(d.OpenTasks),
	}
	if d.Seller != nil {
		s := sellerToResponse(*d.Seller)
		resp.Seller = &s
	}
	if d.AssignedAgent != nil {
		u := userToResponse(*d.AssignedAgent)
		resp.AssignedAgent = &u
	}
	return resp
}

// SearchResponse - конверт кросс-поиска.
type SearchResponse struct {
	Query        string `json:"query"`
	Type         string `json:"type"`
	TotalResults int    `json:"total_results"`
	Results      struct {
		Properties []PropertyResponse `json:"properties"`
		Buyers     []BuyerResponse    `json:"buyers"`
		Sellers    []SellerResponse   `json:"sellers"`
		Tasks      []TaskResponse     `json:"tasks"`
	} `json:"results"`
}

func searchToResponse(res *domain.SearchResults) SearchResponse {
	resp := SearchResponse{
		Query:        res.Query,
		Type:         res.Type,
		TotalResults: res.TotalResults,
	}
	resp.Results.Properties = propertiesToResponse(res.Properties)
	resp.Results.Buyers = buyersToResponse(res.Buyers)
	resp.Results.Sellers = sellersToResponse(res.Sellers)
	resp.Results.Tasks = tasksToResponse(res.Tasks)
	return resp
}

// QuickMatchResponse - результат точечного поиска: ровно одно из
// полей-сущностей не nil.
type QuickMatchResponse struct {
	Type     string            `json:"type"`
	Property *PropertyResponse `json:"property,omitempty"`
	Buyer    *BuyerResponse    `json:"buyer,omitempty"`
	Seller   *SellerResponse   `json:"seller,omitempty"`
	Task     *TaskResponse     `json:"task,omitempty"`
}

func quickMatchToResponse(m *domain.QuickMatch) QuickMatchResponse {
	resp := QuickMatchResponse{Type: m.Type}
	if m.Property != nil {
		p := propertyToResponse(*m.Property)
		resp.Property = &p
	}
	if m.Buyer != nil {
		b := buyerToResponse(*m.Buyer)
		resp.Buyer = &b
	}
	if m.Seller != nil {
		s := sellerToResponse(*m.Seller)
		resp.Seller = &s
	}
	if m.Task != nil {
		t := taskToResponse(*m.Task)
		resp.Task = &t
	}
	return resp
}
