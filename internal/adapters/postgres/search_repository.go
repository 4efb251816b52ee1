package postgres

import (
	"context"
	"fmt"
	"strings"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SearchRepository struct {
	pool *pgxpool.Pool
}

func NewSearchRepository(pool *pgxpool.Pool) (*SearchRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &SearchRepository{pool: pool}, nil
}

// buildSearchWhere строит WHERE для поискового запроса одного типа:
// OR-группа ILIKE по текстовым полям плюс, в зависимости от классификации,
// равенство по первичному ключу и предикат по телефону (запрос без пробелов).
func buildSearchWhere(q domain.SearchQuery, textFields []string, phoneField string, excludeArchived bool) (string, []interface{}) {
	args := []interface{}{"%" + q.Text + "%"}
	or := make([]string, 0, len(textFields)+2)
	for _, f := range textFields {
		or = append(or, fmt.Sprintf("%s ILIKE $1", f))
	}
	if q.IsID {
		args = append(args, q.NormalizedID)
		or = append(or, fmt.Sprintf("id = $%d", len(args)))
	}
	if q.IsPhoneNumber && phoneField != "" {
		args = append(args, "%"+q.PhoneDigits+"%")
		or = append(or, fmt.Sprintf("%s ILIKE $%d", phoneField, len(args)))
	}

	where := "WHERE (" + strings.Join(or, " OR ") + ")"
	if excludeArchived {
		where += " AND archived_at IS NULL"
	}
	return where, args
}

// SearchProperties - релевантность аппроксимируется популярностью:
// сначала самые просматриваемые, затем самые свежие.
func (r *SearchRepository) SearchProperties(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Property, error) {
	where, args := buildSearchWhere(q, []string{"title", "address", "district", "description"}, "", true)
	query := fmt.Sprintf("SELECT %s FROM properties %s ORDER BY viewings DESC, created_at DESC LIMIT $%d",
		propertyColumns, where, len(args)+1)

	rows, err := r.pool.Query(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Property, 0, limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r *SearchRepository) SearchBuyers(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Buyer, error) {
	where, args := buildSearchWhere(q, []string{"first_name", "last_name", "email", "preferred_location"}, "phone", true)
	query := fmt.Sprintf("SELECT %s FROM buyers %s ORDER BY created_at DESC LIMIT $%d",
		buyerColumns, where, len(args)+1)

	rows, err := r.pool.Query(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("failed to search buyers: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Buyer, 0, limit)
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan buyer: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func (r *SearchRepository) SearchSellers(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Seller, error) {
	where, args := buildSearchWhere(q, []string{"first_name", "last_name", "email"}, "phone", true)
	query := fmt.Sprintf("SELECT %s FROM sellers %s ORDER BY created_at DESC LIMIT $%d",
		sellerColumns, where, len(args)+1)

	rows, err := r.pool.Query(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("failed to search sellers: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Seller, 0, limit)
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seller: %w", err)
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

func (r *SearchRepository) SearchTasks(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Task, error) {
	// У задач нет архива, ближайший дедлайн - лучший прокси релевантности
	where, args := buildSearchWhere(q, []string{"title", "description"}, "", false)
	query := fmt.Sprintf("SELECT %s FROM tasks %s ORDER BY due_date ASC, id ASC LIMIT $%d",
		taskColumns, where, len(args)+1)

	rows, err := r.pool.Query(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Task, 0, limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

func (r *SearchRepository) suggestStrings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Suggestion query failed", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SearchRepository) SuggestPropertyTitles(ctx context.Context, prefix string, limit int) ([]string, error) {
	return r.suggestStrings(ctx,
		`SELECT title FROM properties WHERE archived_at IS NULL AND title ILIKE $1
		 ORDER BY viewings DESC LIMIT $2`,
		"%"+prefix+"%", limit)
}

func (r *SearchRepository) SuggestBuyerNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	return r.suggestStrings(ctx,
		`SELECT first_name || ' ' || last_name FROM buyers
		 WHERE archived_at IS NULL AND (first_name ILIKE $1 OR last_name ILIKE $1)
		 ORDER BY created_at DESC LIMIT $2`,
		"%"+prefix+"%", limit)
}

func (r *SearchRepository) SuggestDistricts(ctx context.Context, prefix string, limit int) ([]string, error) {
	return r.suggestStrings(ctx,
		`SELECT DISTINCT district FROM properties
		 WHERE archived_at IS NULL AND district != '' AND district ILIKE $1
		 ORDER BY district ASC LIMIT $2`,
		"%"+prefix+"%", limit)
}
