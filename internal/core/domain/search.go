package domain

// SearchQuery - классифицированный поисковый запрос. Эвристики считаются
// один раз в use case и переиспользуются всеми типами сущностей.
type SearchQuery struct {
	Text          string
	NormalizedID  int64  // валиден только при IsID
	PhoneDigits   string // запрос без пробелов, валиден только при IsPhoneNumber
	IsID          bool
	IsPhoneNumber bool
}

// Типы сущностей в кросс-поиске.
const (
	SearchTypeAll        = "all"
	SearchTypeProperties = "properties"
	SearchTypeBuyers     = "buyers"
	SearchTypeSellers    = "sellers"
	SearchTypeTasks      = "tasks"
)

// SearchResults - объединенный конверт результатов по типам сущностей.
// Корзины не пересекаются, дедупликация между ними не нужна.
type SearchResults struct {
	Query        string
	Type         string
	TotalResults int
	Properties   []Property
	Buyers       []Buyer
	Sellers      []Seller
	Tasks        []Task
}

// QuickMatch - результат точечного поиска по ID: первая найденная сущность
// в фиксированном порядке приоритета (property, buyer, seller, task).
type QuickMatch struct {
	Type     string
	Property *Property
	Buyer    *Buyer
	Seller   *Seller
	Task     *Task
}

// Suggestion - подсказка автодополнения.
type Suggestion struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}
