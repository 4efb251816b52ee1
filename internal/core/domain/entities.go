package domain

import "time"

// Роли пользователей CRM.
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// Статусы сущностей. Архивация моделируется отдельно через ArchivedAt,
// статус описывает только бизнес-состояние записи.
const (
	PropertyStatusAvailable = "available"
	PropertyStatusRented    = "rented"
	PropertyStatusSold      = "sold"
	PropertyStatusManaged   = "managed"

	BuyerStatusActive    = "active"
	BuyerStatusConverted = "converted"
	BuyerStatusInactive  = "inactive"

	SellerStatusActive   = "active"
	SellerStatusInactive = "inactive"

	TenantStatusActive = "active"
	TenantStatusEnded  = "ended"

	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
	TaskStatusCancelled = "cancelled"
)

// Типы недвижимости (режим сделки).
const (
	PropertyTypeSale    = "sale"
	PropertyTypeRent    = "rent"
	PropertyTypeManaged = "managed"
)

// User - пользователь CRM (агент или администратор).
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// Seller - собственник, продающий или сдающий объекты.
type Seller struct {
	ID              int64
	FirstName       string
	LastName        string
	Phone           string
	Email           string
	Status          string
	AssignedAgentID *int64
	Notes           string
	ArchivedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Buyer - покупатель/арендатор с предпочтениями по поиску.
type Buyer struct {
	ID                int64
	FirstName         string
	LastName          string
	Phone             string
	Email             string
	BudgetMin         *float64
	BudgetMax         *float64
	PreferredLocation string
	PropertyType      string
	RoomsMin          *int
	RoomsMax          *int
	Status            string
	Source            string
	AssignedAgentID   *int64
	Notes             string
	ArchivedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Property - объект недвижимости. Активен ровно один режим ценообразования:
// sale -> PriceEur, rent/managed -> MonthlyRentEur.
type Property struct {
	ID                   int64
	Title                string
	Description          string
	PropertyType         string
	Category             string
	Address              string
	City                 string
	District             string
	Area                 int
	Rooms                int
	Floor                *int
	TotalFloors          *int
	YearBuilt            *int
	Exposure             string
	Heating              string
	PriceEur             *float64
	MonthlyRentEur       *float64
	ManagementFeePercent *float64
	Status               string
	Viewings             int
	LastViewing          *time.Time
	SellerID             *int64
	AssignedAgentID      *int64
	ArchivedAt           *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PricePerSqm - производное значение для отображения, не хранится в базе.
func (p *Property) PricePerSqm() *float64 {
	if p.PriceEur == nil || p.Area <= 0 {
		return nil
	}
	v := *p.PriceEur / float64(p.Area)
	return &v
}

// Tenant - арендатор, привязанный к конкретному объекту.
type Tenant struct {
	ID            int64
	FirstName     string
	LastName      string
	Phone         string
	Email         string
	PropertyID    int64
	ContractStart time.Time
	ContractEnd   time.Time
	Deposit       *float64
	MonthlyRent   *float64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Task - задача агента, опционально связанная с другими сущностями.
type Task struct {
	ID              int64
	Title           string
	Description     string
	DueDate         time.Time
	DueTime         string // "HH:MM", пустая строка если время не задано
	Priority        string
	Status          string
	TaskType        string
	BuyerID         *int64
	SellerID        *int64
	PropertyID      *int64
	AssignedAgentID *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PropertyDetails - объект вместе со связанными записями для детальной страницы.
type PropertyDetails struct {
	Property      Property
	Seller        *Seller
	AssignedAgent *User
	ActiveTenants []Tenant
	OpenTasks     []Task
}
